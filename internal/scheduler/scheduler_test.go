package scheduler

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rentflow-portal/internal/config"
	"rentflow-portal/internal/database"
	"rentflow-portal/internal/models"
)

func newTestScheduler(t *testing.T) (*Scheduler, *database.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	db := database.NewFromGorm(gdb)
	require.NoError(t, db.InitSchema())

	cfg := config.DefaultConfig()
	cfg.Timezone = "UTC"
	return NewScheduler(db, cfg), db
}

func seedOccupiedUnit(t *testing.T, db *database.DB) {
	t.Helper()
	require.NoError(t, db.CreateProperty(&models.Property{
		ID: "prop-1", Name: "Sunset Apartments", Address: "123 Mombasa Road",
		WaterRate: 50, PenaltyRate: 10, PenaltyType: models.PenaltyTypePercentage,
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
}

func TestGenerateMonthlyInvoices(t *testing.T) {
	s, db := newTestScheduler(t)
	seedOccupiedUnit(t, db)

	now := time.Date(2026, 3, 2, 2, 0, 0, 0, time.UTC)
	generated, err := s.generateMonthlyInvoices(now)
	require.NoError(t, err)
	require.Equal(t, 1, generated)

	var invoices []models.Invoice
	require.NoError(t, db.Gorm().Find(&invoices).Error)
	require.Len(t, invoices, 1)
	require.Equal(t, models.InvoiceStatusSent, invoices[0].Status)
	require.InDelta(t, 25000, invoices[0].TotalAmount, 0.001)
	require.Equal(t, "ten-1", invoices[0].TenantID)

	// Rerunning the same day must not double-invoice
	generated, err = s.generateMonthlyInvoices(now)
	require.NoError(t, err)
	require.Equal(t, 0, generated)
}

func TestGenerateInvoiceIncludesWaterLine(t *testing.T) {
	s, db := newTestScheduler(t)
	seedOccupiedUnit(t, db)

	require.NoError(t, db.CreateMeterReading(&models.MeterReading{
		UnitID: "unit-1", CurrentReading: 23,
		ReadingDate: time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC),
	}))

	now := time.Date(2026, 3, 2, 2, 0, 0, 0, time.UTC)
	generated, err := s.generateMonthlyInvoices(now)
	require.NoError(t, err)
	require.Equal(t, 1, generated)

	var invoices []models.Invoice
	require.NoError(t, db.Gorm().Preload("Items").Find(&invoices).Error)
	require.Len(t, invoices, 1)
	// Rent 25000 plus 23 units of water at 50
	require.InDelta(t, 26150, invoices[0].TotalAmount, 0.001)
	require.Len(t, invoices[0].Items, 2)

	// The reading is consumed by the invoice
	readings, err := db.GetMeterReadings(database.ReadingFilters{UnitID: "unit-1", Unbilled: true})
	require.NoError(t, err)
	require.Empty(t, readings)
}

func TestFlagOverdueAppliesPenaltyOnce(t *testing.T) {
	s, db := newTestScheduler(t)
	seedOccupiedUnit(t, db)

	due := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.CreateInvoice(&models.Invoice{
		ID: "inv-1", InvoiceNumber: "INV-2602-TEST", TenantID: "ten-1", UnitID: "unit-1",
		PropertyID: "prop-1", PeriodStart: due, PeriodEnd: due.AddDate(0, 1, -1),
		DueDate: due, Subtotal: 25000, TotalAmount: 25000,
		Status: models.InvoiceStatusSent,
	}))

	// Within grace: nothing happens
	flagged, err := s.flagOverdueInvoices(due.AddDate(0, 0, 3))
	require.NoError(t, err)
	require.Equal(t, 0, flagged)

	// Past due plus grace: flagged, 10% penalty applied
	now := due.AddDate(0, 0, 20)
	flagged, err = s.flagOverdueInvoices(now)
	require.NoError(t, err)
	require.Equal(t, 1, flagged)

	inv, err := db.GetInvoiceByID("inv-1")
	require.NoError(t, err)
	require.Equal(t, models.InvoiceStatusOverdue, inv.Status)

	var penalties []models.Penalty
	require.NoError(t, db.Gorm().Find(&penalties).Error)
	require.Len(t, penalties, 1)
	require.InDelta(t, 2500, penalties[0].Amount, 0.001)

	// A second pass must not stack another penalty
	flagged, err = s.flagOverdueInvoices(now.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Equal(t, 0, flagged)
	require.NoError(t, db.Gorm().Find(&penalties).Error)
	require.Len(t, penalties, 1)
}

func TestFlagOverdueFixedPenalty(t *testing.T) {
	s, db := newTestScheduler(t)

	require.NoError(t, db.CreateProperty(&models.Property{
		ID: "prop-2", Name: "City View Tower", Address: "789 Kenyatta Avenue",
		PenaltyRate: 500, PenaltyType: models.PenaltyTypeFixed,
		BillingDay: 1, GracePeriodDays: 5,
	}))
	require.NoError(t, db.CreateTenant(&models.Tenant{
		ID: "ten-2", FullName: "John Kiprop", Phone: "254756789012",
		Status: models.TenantStatusActive,
	}))

	due := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.CreateInvoice(&models.Invoice{
		ID: "inv-2", InvoiceNumber: "INV-2602-FIXD", TenantID: "ten-2", UnitID: "unit-x",
		PropertyID: "prop-2", PeriodStart: due, PeriodEnd: due.AddDate(0, 1, -1),
		DueDate: due, Subtotal: 55000, TotalAmount: 55000,
		Status: models.InvoiceStatusSent,
	}))

	flagged, err := s.flagOverdueInvoices(due.AddDate(0, 0, 30))
	require.NoError(t, err)
	require.Equal(t, 1, flagged)

	// Flat 500 regardless of the 55000 balance
	var penalties []models.Penalty
	require.NoError(t, db.Gorm().Find(&penalties).Error)
	require.Len(t, penalties, 1)
	require.InDelta(t, 500, penalties[0].Amount, 0.001)
}

func TestBillingDayNotReachedYet(t *testing.T) {
	s, db := newTestScheduler(t)
	seedOccupiedUnit(t, db)

	require.NoError(t, db.Gorm().Model(&models.Property{}).Where("id = ?", "prop-1").
		Update("billing_day", 15).Error)

	generated, err := s.generateMonthlyInvoices(time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, 0, generated)

	generated, err = s.generateMonthlyInvoices(time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Equal(t, 1, generated)
}

func TestParseDailyRunTime(t *testing.T) {
	s, _ := newTestScheduler(t)
	require.Equal(t, "0 2 * * *", s.parseDailyRunTime("02:00"))
	require.Equal(t, "30 14 * * *", s.parseDailyRunTime("14:30"))
	require.Equal(t, "0 2 * * *", s.parseDailyRunTime("bogus"))
}
