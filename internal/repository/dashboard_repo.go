package repository

import (
	"context"
	"time"

	"ads-inventory-ws/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DashboardRepository interface {
	GetDashboardStats(ctx context.Context, today time.Time) (*DashboardStats, error)
	GetSalesMovement(ctx context.Context, start, end time.Time) ([]SalesMovementData, error)
}

// SalesMovementData is one day of the sales chart.
type SalesMovementData struct {
	Date  string `json:"date"`
	Buys  int64  `json:"buys"`
	Rents int64  `json:"rents"`
}

// DashboardStats is the overview card data.
type DashboardStats struct {
	TotalProducts    int64            `json:"total_products"`
	ProductsByStatus map[string]int64 `json:"products_by_status"`
	ProductsByHealth map[string]int64 `json:"products_by_health"`

	TotalClients  int64 `json:"total_clients"`
	ActiveClients int64 `json:"active_clients"`

	OrdersByType map[string]int64 `json:"orders_by_type"`

	BuyRevenue decimal.Decimal `json:"buy_revenue"`
	BuyCost    decimal.Decimal `json:"buy_cost"`
	BuyProfit  decimal.Decimal `json:"buy_profit"`

	ActiveLeases            int64           `json:"active_leases"`
	ActiveLeaseMonthlyValue decimal.Decimal `json:"active_lease_monthly_value"`
	PendingRentPayments     int64           `json:"pending_rent_payments"`

	RecoveryByStatus map[string]int64 `json:"recovery_by_status"`
	OpenRequirements int64            `json:"open_requirements"`
}

type labelCount struct {
	Label string
	Count int64
}

type buyTotals struct {
	Revenue decimal.Decimal
	Cost    decimal.Decimal
	Profit  decimal.Decimal
}

type dashboardRepo struct {
	db *gorm.DB
}

func NewDashboardRepo(db *gorm.DB) DashboardRepository {
	return &dashboardRepo{db}
}

func (r *dashboardRepo) countBy(ctx context.Context, m interface{}, column string) (map[string]int64, error) {
	var rows []labelCount
	err := r.db.WithContext(ctx).Model(m).
		Select(column + " AS label, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, row := range rows {
		out[row.Label] = row.Count
	}
	return out, nil
}

func (r *dashboardRepo) GetDashboardStats(ctx context.Context, today time.Time) (*DashboardStats, error) {
	var stats DashboardStats
	var err error
	db := r.db.WithContext(ctx)

	if err = db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if stats.ProductsByStatus, err = r.countBy(ctx, &model.Product{}, "status"); err != nil {
		return nil, err
	}
	if stats.ProductsByHealth, err = r.countBy(ctx, &model.Product{}, "health"); err != nil {
		return nil, err
	}

	if err = db.Model(&model.Client{}).Count(&stats.TotalClients).Error; err != nil {
		return nil, err
	}
	if err = db.Model(&model.Client{}).Where("is_active = ?", true).Count(&stats.ActiveClients).Error; err != nil {
		return nil, err
	}

	if stats.OrdersByType, err = r.countBy(ctx, &model.Order{}, "order_type"); err != nil {
		return nil, err
	}

	var totals buyTotals
	err = db.Model(&model.SalesBuy{}).
		Select("COALESCE(SUM(selling_price), 0) AS revenue, COALESCE(SUM(cost_price), 0) AS cost, COALESCE(SUM(profit), 0) AS profit").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	stats.BuyRevenue, stats.BuyCost, stats.BuyProfit = totals.Revenue, totals.Cost, totals.Profit

	// Frequencies differ per lease, so the monthly figure is normalized row by row.
	var leases []model.SalesRent
	err = db.Select("id", "lease_amount", "payment_frequency").
		Where("end_date IS NULL OR end_date >= ?", today).
		Find(&leases).Error
	if err != nil {
		return nil, err
	}
	stats.ActiveLeases = int64(len(leases))
	stats.ActiveLeaseMonthlyValue = decimal.Zero
	for i := range leases {
		stats.ActiveLeaseMonthlyValue = stats.ActiveLeaseMonthlyValue.Add(leases[i].MonthlyValue())
	}
	stats.ActiveLeaseMonthlyValue = stats.ActiveLeaseMonthlyValue.Round(2)

	if err = db.Model(&model.SalesRent{}).Where("payment_status <> ?", model.RentComplete).Count(&stats.PendingRentPayments).Error; err != nil {
		return nil, err
	}

	if stats.RecoveryByStatus, err = r.countBy(ctx, &model.RecoveryItem{}, "status"); err != nil {
		return nil, err
	}
	if err = db.Model(&model.ClientRequirement{}).Where("status = ?", model.RequirementOpen).Count(&stats.OpenRequirements).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

// GetSalesMovement returns one point per day in [start, end], zero-filled.
func (r *dashboardRepo) GetSalesMovement(ctx context.Context, start, end time.Time) ([]SalesMovementData, error) {
	var buyDates, rentDates []time.Time
	db := r.db.WithContext(ctx)

	err := db.Model(&model.SalesBuy{}).
		Where("sale_date BETWEEN ? AND ?", start, end).
		Pluck("sale_date", &buyDates).Error
	if err != nil {
		return nil, err
	}
	err = db.Model(&model.SalesRent{}).
		Where("start_date BETWEEN ? AND ?", start, end).
		Pluck("start_date", &rentDates).Error
	if err != nil {
		return nil, err
	}

	const layout = "2006-01-02"
	index := make(map[string]int)
	var results []SalesMovementData
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(layout)
		index[key] = len(results)
		results = append(results, SalesMovementData{Date: key})
	}
	for _, d := range buyDates {
		if i, ok := index[d.Format(layout)]; ok {
			results[i].Buys++
		}
	}
	for _, d := range rentDates {
		if i, ok := index[d.Format(layout)]; ok {
			results[i].Rents++
		}
	}

	return results, nil
}
