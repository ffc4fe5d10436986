package validator

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var (
	validate = validator.New()

	adsIDPattern = regexp.MustCompile(`^\d{11}$`)
)

func init() {
	// 11-digit inventory unit identifier
	validate.RegisterValidation("ads_id", func(fl validator.FieldLevel) bool {
		return IsAdsID(fl.Field().String())
	})
}

// IsAdsID reports whether s is a well-formed 11-digit ads id.
func IsAdsID(s string) bool {
	return adsIDPattern.MatchString(s)
}

func ValidateStruct(data interface{}) []*ErrorResponse {
	var errs []*ErrorResponse
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []*ErrorResponse{{FailedField: "", Tag: err.Error()}}
	}
	for _, err := range verrs {
		var element ErrorResponse
		element.FailedField = err.StructNamespace()
		element.Tag = err.Tag()
		element.Value = err.Param()
		errs = append(errs, &element)
	}
	return errs
}

// FirstError formats the first validation failure, or returns "" when data is valid.
func FirstError(data interface{}) string {
	errs := ValidateStruct(data)
	if len(errs) == 0 {
		return ""
	}
	return fmt.Sprintf("Field '%s' failed on tag '%s'", errs[0].FailedField, errs[0].Tag)
}
