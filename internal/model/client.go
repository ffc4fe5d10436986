package model

type IDProofType string

const (
	IDProofAadhaar        IDProofType = "aadhaar"
	IDProofPAN            IDProofType = "pan"
	IDProofPassport       IDProofType = "passport"
	IDProofDrivingLicense IDProofType = "driving-license"
	IDProofVoterID        IDProofType = "voter-id"
	IDProofGST            IDProofType = "gst-certificate"
	IDProofOther          IDProofType = "other"
)

// Client is a customer: an individual or an organization.
type Client struct {
	BaseModel
	Name             string      `gorm:"type:varchar(150);not null" json:"name"`
	Email            string      `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone            string      `gorm:"type:varchar(20)" json:"phone"`
	AlternatePhone   string      `gorm:"type:varchar(20)" json:"alternate_phone"`
	Address          string      `gorm:"type:text" json:"address"`
	City             string      `gorm:"type:varchar(100)" json:"city"`
	State            string      `gorm:"type:varchar(100)" json:"state"`
	Pincode          string      `gorm:"type:varchar(10)" json:"pincode"`
	ContactPerson    string      `gorm:"type:varchar(150)" json:"contact_person"`
	OrganizationName string      `gorm:"type:varchar(200)" json:"organization_name"`
	GSTNumber        string      `gorm:"type:varchar(15)" json:"gst_number"`
	IDProofType      IDProofType `gorm:"type:varchar(30)" json:"id_proof_type"`
	IDProofNumber    string      `gorm:"type:varchar(50)" json:"id_proof_number"`
	IsActive         bool        `gorm:"not null" json:"is_active"`
	Notes            string      `gorm:"type:text" json:"notes"`
}
