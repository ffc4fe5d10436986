package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestReferenceFor(t *testing.T) {
	assert.Equal(t, "ADS12345678901", ReferenceFor("12345678901"))

	p := &Product{AdsID: "10000000001", ReferenceNumber: "stale"}
	assert.NoError(t, p.BeforeSave(nil))
	assert.Equal(t, "ADS10000000001", p.ReferenceNumber)
}

func TestProductStatusSellable(t *testing.T) {
	assert.True(t, StatusAvailable.Sellable())
	assert.True(t, StatusReturned.Sellable())
	assert.False(t, StatusSold.Sellable())
	assert.False(t, StatusLeased.Sellable())
	assert.False(t, StatusLeasedInMaintenance.Sellable())
}

func TestOrderIDFor(t *testing.T) {
	date := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "ORD004220240305", OrderIDFor(42, date))
	assert.Equal(t, "ORD1234520240305", OrderIDFor(12345, date))
}

func TestTotalQuantity(t *testing.T) {
	items := []OrderItem{{AdsID: "1", Quantity: 2}, {AdsID: "2", Quantity: 3}}
	assert.Equal(t, 5, TotalQuantity(items))
	assert.Equal(t, 0, TotalQuantity(nil))
}

func TestSalesBuyProfit(t *testing.T) {
	s := &SalesBuy{CostPrice: decimal.NewFromInt(30000), SellingPrice: decimal.NewFromInt(42500)}
	assert.NoError(t, s.BeforeSave(nil))
	assert.True(t, s.Profit.Equal(decimal.NewFromInt(12500)))
}

func TestSalesRentMonthlyValue(t *testing.T) {
	r := &SalesRent{LeaseAmount: decimal.NewFromInt(6000), PaymentFrequency: FrequencyQuarterly}
	assert.True(t, r.MonthlyValue().Equal(decimal.NewFromInt(2000)))

	r.PaymentFrequency = FrequencyMonthly
	assert.True(t, r.MonthlyValue().Equal(decimal.NewFromInt(6000)))
}

func TestEventTypeValid(t *testing.T) {
	assert.Len(t, EventTypes, 13)
	assert.True(t, EventRecoveryReceived.Valid())
	assert.False(t, EventType("SHIPPED").Valid())
}

func TestEventCreatedAtIsServerSet(t *testing.T) {
	past := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	e := &ProductDateEvent{CreatedAt: past}
	assert.NoError(t, e.BeforeCreate(nil))
	assert.WithinDuration(t, time.Now(), e.CreatedAt, time.Second)
}

func TestSessionExpired(t *testing.T) {
	now := time.Now()
	s := &Session{ExpiresAt: now.Add(time.Hour)}
	assert.False(t, s.Expired(now))
	assert.True(t, s.Expired(now.Add(time.Hour)))
}

func TestUserPassword(t *testing.T) {
	u := &User{}
	assert.NoError(t, u.SetPassword("secret123"))
	assert.True(t, u.CheckPassword("secret123"))
	assert.False(t, u.CheckPassword("wrong"))
	assert.Equal(t, "EMP0007", EmployeeIDFor(7))
}
