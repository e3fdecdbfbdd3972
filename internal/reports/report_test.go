package reports

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rentflow-portal/internal/database"
	"rentflow-portal/internal/models"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	db := database.NewFromGorm(gdb)
	require.NoError(t, db.InitSchema())

	require.NoError(t, db.CreateProperty(&models.Property{
		ID: "prop-1", Name: "Sunset Apartments", Address: "123 Mombasa Road",
		PenaltyRate: 10, PenaltyType: models.PenaltyTypePercentage,
		BillingDay: 1, GracePeriodDays: 5,
	}))
	require.NoError(t, db.CreateTenant(&models.Tenant{
		ID: "ten-1", FullName: "Grace Wanjiku", Phone: "254712345678",
		Status: models.TenantStatusActive,
	}))
	tenantID := "ten-1"
	require.NoError(t, db.CreateUnit(&models.Unit{
		ID: "unit-1", PropertyID: "prop-1", UnitNumber: "A-101", RentAmount: 25000,
		Status: models.UnitStatusOccupied, CurrentTenantID: &tenantID,
	}))

	due := time.Now().AddDate(0, 0, -30)
	require.NoError(t, db.CreateInvoice(&models.Invoice{
		ID: "inv-1", InvoiceNumber: "INV-TEST-1", TenantID: "ten-1", UnitID: "unit-1",
		PropertyID: "prop-1", PeriodStart: due, PeriodEnd: due.AddDate(0, 1, -1),
		DueDate: due, Subtotal: 25000, TotalAmount: 25000,
		Status: models.InvoiceStatusOverdue,
	}))
	require.NoError(t, db.CreatePayment(&models.Payment{
		TenantID: "ten-1", Amount: 18000, PaymentDate: time.Now(),
		PaymentMethod: models.PaymentMethodMpesa, PaymentStatus: models.PaymentStatusCompleted,
	}))

	return db
}

func TestBuild(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC)

	report, err := Build(db, now)
	require.NoError(t, err)

	require.Equal(t, "RentFlow Monthly Report - April 2026", report.Title)
	require.Equal(t, 1, report.Summary.TotalProperties)

	require.Len(t, report.OverdueAccounts, 1)
	require.Equal(t, "Grace Wanjiku", report.OverdueAccounts[0].Tenant)
	require.InDelta(t, 25000, report.OverdueAccounts[0].Amount, 0.001)
	require.Greater(t, report.OverdueAccounts[0].DaysOverdue, 0)

	require.Len(t, report.Properties, 1)
	require.Equal(t, "Sunset Apartments", report.Properties[0].Name)
	require.InDelta(t, 100, report.Properties[0].OccupancyRate, 0.001)

	require.Len(t, report.RecentPayments, 1)
	require.Equal(t, "Mpesa", report.RecentPayments[0].Method)
}

func TestReportJSON(t *testing.T) {
	db := newTestDB(t)

	report, err := Build(db, time.Now())
	require.NoError(t, err)

	data, err := report.JSON()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Contains(t, decoded, "summary")
	require.Contains(t, decoded, "overdue_accounts")
	// Indented output
	require.True(t, bytes.Contains(data, []byte("\n  ")))
}

func TestReportExcel(t *testing.T) {
	db := newTestDB(t)

	report, err := Build(db, time.Now())
	require.NoError(t, err)

	buf, err := report.Excel()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	require.ElementsMatch(t,
		[]string{"Summary", "Recent Payments", "Overdue Accounts", "Properties"},
		f.GetSheetList())

	rows, err := f.GetRows("Overdue Accounts")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Grace Wanjiku", rows[1][0])
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
	require.Equal(t, "rentflow-report-2026-04-15.json", Filename(now, "json"))
	require.Equal(t, "rentflow-report-2026-04-15.xlsx", Filename(now, "xlsx"))
}
