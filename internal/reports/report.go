// Package reports builds the downloadable monthly report offered on the
// dashboard: summary metrics, recent payments, overdue accounts and
// per-property occupancy.
package reports

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"rentflow-portal/internal/billing"
	"rentflow-portal/internal/database"
	"rentflow-portal/internal/format"
	"rentflow-portal/internal/models"
	"rentflow-portal/internal/search"
)

type Report struct {
	Title       string    `json:"title"`
	GeneratedAt time.Time `json:"generated_at"`

	Summary         database.DashboardStats `json:"summary"`
	RecentPayments  []PaymentLine           `json:"recent_payments"`
	OverdueAccounts []OverdueLine           `json:"overdue_accounts"`
	Properties      []PropertyLine          `json:"properties"`
}

type PaymentLine struct {
	Tenant   string  `json:"tenant"`
	Unit     string  `json:"unit"`
	Property string  `json:"property"`
	Amount   float64 `json:"amount"`
	Method   string  `json:"method"`
	Date     string  `json:"date"`
}

type OverdueLine struct {
	Tenant      string  `json:"tenant"`
	Unit        string  `json:"unit"`
	Amount      float64 `json:"amount"`
	DaysOverdue int     `json:"days_overdue"`
}

type PropertyLine struct {
	Name          string  `json:"name"`
	TotalUnits    int     `json:"total_units"`
	Occupied      int     `json:"occupied"`
	Revenue       float64 `json:"revenue"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

// Filename names the downloaded file for the given extension, carrying the
// generation date.
func Filename(now time.Time, ext string) string {
	return fmt.Sprintf("rentflow-report-%s.%s", now.Format("2006-01-02"), ext)
}

// Build assembles the monthly report from live rows.
func Build(db *database.DB, now time.Time) (*Report, error) {
	stats, err := db.GetDashboardStats(now)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Title:       fmt.Sprintf("RentFlow Monthly Report - %s", now.Format("January 2006")),
		GeneratedAt: now,
		Summary:     *stats,
	}

	payments, err := db.GetPayments(database.PaymentFilters{
		Status: string(models.PaymentStatusCompleted),
		Limit:  10,
	})
	if err != nil {
		return nil, err
	}
	for _, p := range payments {
		report.RecentPayments = append(report.RecentPayments, PaymentLine{
			Tenant:   p.TenantName,
			Unit:     p.UnitNumber,
			Property: p.PropertyName,
			Amount:   p.Amount,
			Method:   format.StatusLabel(string(p.PaymentMethod)),
			Date:     format.Date(p.PaymentDate, format.DateShort),
		})
	}

	outstanding, err := db.GetOutstandingInvoices()
	if err != nil {
		return nil, err
	}
	for _, inv := range outstanding {
		if inv.Status != models.InvoiceStatusOverdue {
			continue
		}
		report.OverdueAccounts = append(report.OverdueAccounts, OverdueLine{
			Tenant:      inv.TenantName,
			Unit:        inv.UnitNumber,
			Amount:      inv.Balance(),
			DaysOverdue: billing.DaysOverdue(inv.DueDate, now),
		})
	}
	// Largest debts first
	report.OverdueAccounts = search.SortBy(report.OverdueAccounts,
		func(l OverdueLine) float64 { return l.Amount }, search.Desc)

	properties, err := db.GetProperties()
	if err != nil {
		return nil, err
	}
	for _, prop := range properties {
		revenue, err := db.MonthlyCollectedRevenue(prop.ID, now)
		if err != nil {
			return nil, err
		}
		report.Properties = append(report.Properties, PropertyLine{
			Name:          prop.Name,
			TotalUnits:    prop.TotalUnits,
			Occupied:      prop.OccupiedUnits,
			Revenue:       revenue,
			OccupancyRate: billing.OccupancyRate(prop.OccupiedUnits, prop.TotalUnits),
		})
	}

	return report, nil
}

// JSON serializes the report as indented JSON.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// Excel renders the report as an xlsx workbook with one sheet per section.
func (r *Report) Excel() (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Summary"
	f.SetSheetName("Sheet1", summarySheet)

	summaryRows := [][]interface{}{
		{"RentFlow Monthly Report", r.Title},
		{"Generated", r.GeneratedAt.Format("2006-01-02 15:04")},
		{},
		{"Total properties", r.Summary.TotalProperties},
		{"Total units", r.Summary.TotalUnits},
		{"Occupied units", r.Summary.OccupiedUnits},
		{"Vacant units", r.Summary.VacantUnits},
		{"Occupancy rate", format.Percentage(r.Summary.OccupancyRate, 1)},
		{"Expected revenue", format.Currency(r.Summary.TotalRevenue)},
		{"Collected revenue", format.Currency(r.Summary.CollectedRevenue)},
		{"Pending revenue", format.Currency(r.Summary.PendingRevenue)},
		{"Collection rate", format.Percentage(r.Summary.CollectionRate, 1)},
		{"Overdue amount", format.Currency(r.Summary.OverdueAmount)},
		{"Overdue invoices", r.Summary.OverdueCount},
	}
	for i, row := range summaryRows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return nil, err
		}
	}

	const paymentsSheet = "Recent Payments"
	if _, err := f.NewSheet(paymentsSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(paymentsSheet, "A1",
		&[]interface{}{"Tenant", "Unit", "Property", "Amount", "Method", "Date"}); err != nil {
		return nil, err
	}
	for i, p := range r.RecentPayments {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{p.Tenant, p.Unit, p.Property, p.Amount, p.Method, p.Date}
		if err := f.SetSheetRow(paymentsSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	const overdueSheet = "Overdue Accounts"
	if _, err := f.NewSheet(overdueSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(overdueSheet, "A1",
		&[]interface{}{"Tenant", "Unit", "Amount", "Days Overdue"}); err != nil {
		return nil, err
	}
	for i, a := range r.OverdueAccounts {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{a.Tenant, a.Unit, a.Amount, a.DaysOverdue}
		if err := f.SetSheetRow(overdueSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	const propertiesSheet = "Properties"
	if _, err := f.NewSheet(propertiesSheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(propertiesSheet, "A1",
		&[]interface{}{"Property", "Units", "Occupied", "Revenue", "Occupancy"}); err != nil {
		return nil, err
	}
	for i, p := range r.Properties {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{p.Name, p.TotalUnits, p.Occupied, p.Revenue,
			format.Percentage(p.OccupancyRate, 1)}
		if err := f.SetSheetRow(propertiesSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	return f.WriteToBuffer()
}
