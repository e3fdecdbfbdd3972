package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rentflow-portal/internal/models"
)

// newTestDB opens a per-test in-memory database to avoid cross-test
// interference.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	db := NewFromGorm(gdb)
	require.NoError(t, db.InitSchema())
	return db
}

func seedPortfolio(t *testing.T, db *DB) {
	t.Helper()

	prop := &models.Property{
		ID: "prop-1", Name: "Sunset Apartments", Address: "123 Mombasa Road",
		WaterRate: 50, PenaltyRate: 10, PenaltyType: models.PenaltyTypePercentage,
		BillingDay: 1, GracePeriodDays: 5,
	}
	require.NoError(t, db.CreateProperty(prop))

	tenant := &models.Tenant{
		ID: "ten-1", FullName: "Grace Wanjiku", Phone: "254712345678",
		Status: models.TenantStatusActive,
	}
	require.NoError(t, db.CreateTenant(tenant))

	units := []*models.Unit{
		{ID: "unit-1", PropertyID: "prop-1", UnitNumber: "A-101", RentAmount: 25000,
			Status: models.UnitStatusOccupied, CurrentTenantID: &tenant.ID},
		{ID: "unit-2", PropertyID: "prop-1", UnitNumber: "A-102", RentAmount: 18000,
			Status: models.UnitStatusVacant},
	}
	for _, u := range units {
		require.NoError(t, db.CreateUnit(u))
	}

	unitID := "unit-1"
	require.NoError(t, db.Gorm().Model(&models.Tenant{}).Where("id = ?", "ten-1").
		Update("current_unit_id", &unitID).Error)
}

func TestPropertyDerivedUnitCounts(t *testing.T) {
	db := newTestDB(t)
	seedPortfolio(t, db)

	props, err := db.GetProperties()
	require.NoError(t, err)
	require.Len(t, props, 1)
	require.Equal(t, 2, props[0].TotalUnits)
	require.Equal(t, 1, props[0].OccupiedUnits)

	// Counts track unit rows, not a stored column
	require.NoError(t, db.CreateUnit(&models.Unit{
		ID: "unit-3", PropertyID: "prop-1", UnitNumber: "A-103", RentAmount: 20000,
		Status: models.UnitStatusOccupied,
	}))

	prop, err := db.GetPropertyByID("prop-1")
	require.NoError(t, err)
	require.Equal(t, 3, prop.TotalUnits)
	require.Equal(t, 2, prop.OccupiedUnits)
}

func TestUnitDisplayFields(t *testing.T) {
	db := newTestDB(t)
	seedPortfolio(t, db)

	unit, err := db.GetUnitByID("unit-1")
	require.NoError(t, err)
	require.Equal(t, "Sunset Apartments", unit.PropertyName)
	require.Equal(t, "Grace Wanjiku", unit.CurrentTenantName)
}

func TestUnitUniquePerProperty(t *testing.T) {
	db := newTestDB(t)
	seedPortfolio(t, db)

	err := db.CreateUnit(&models.Unit{
		PropertyID: "prop-1", UnitNumber: "A-101", RentAmount: 10000,
	})
	require.Error(t, err)
}

func TestMeterReadingChainsPrevious(t *testing.T) {
	db := newTestDB(t)
	seedPortfolio(t, db)

	first := &models.MeterReading{UnitID: "unit-1", CurrentReading: 100,
		ReadingDate: time.Now().Add(-48 * time.Hour)}
	require.NoError(t, db.CreateMeterReading(first))
	require.InDelta(t, 0, first.PreviousReading, 0.001)
	require.InDelta(t, 100, first.Consumption, 0.001)

	second := &models.MeterReading{UnitID: "unit-1", CurrentReading: 123,
		ReadingDate: time.Now()}
	require.NoError(t, db.CreateMeterReading(second))
	require.InDelta(t, 100, second.PreviousReading, 0.001)
	require.InDelta(t, 23, second.Consumption, 0.001)
}

func TestMeterReadingRejectsBelowPrevious(t *testing.T) {
	db := newTestDB(t)
	seedPortfolio(t, db)

	require.NoError(t, db.CreateMeterReading(&models.MeterReading{
		UnitID: "unit-1", CurrentReading: 100, ReadingDate: time.Now().Add(-time.Hour)}))

	err := db.CreateMeterReading(&models.MeterReading{
		UnitID: "unit-1", CurrentReading: 99, ReadingDate: time.Now()})
	require.ErrorIs(t, err, ErrReadingBelowPrevious)

	// A flat reading (no consumption) is fine
	require.NoError(t, db.CreateMeterReading(&models.MeterReading{
		UnitID: "unit-1", CurrentReading: 100, ReadingDate: time.Now()}))
}

func TestConsumptionRecomputedOnLoad(t *testing.T) {
	db := newTestDB(t)
	seedPortfolio(t, db)

	require.NoError(t, db.Gorm().Create(&models.MeterReading{
		ID: "read-1", UnitID: "unit-1", PreviousReading: 1245, CurrentReading: 1268,
		ReadingDate: time.Now(),
	}).Error)

	readings, err := db.GetMeterReadings(ReadingFilters{UnitID: "unit-1"})
	require.NoError(t, err)
	require.Len(t, readings, 1)
	require.InDelta(t, 23, readings[0].Consumption, 0.001)
}

func seedInvoice(t *testing.T, db *DB, id string, total float64, status models.InvoiceStatus, due time.Time) {
	t.Helper()
	require.NoError(t, db.CreateInvoice(&models.Invoice{
		ID: id, InvoiceNumber: "INV-TEST-" + id, TenantID: "ten-1", UnitID: "unit-1",
		PropertyID: "prop-1", PeriodStart: due, PeriodEnd: due.AddDate(0, 1, -1),
		DueDate: due, Subtotal: total, TotalAmount: total, Status: status,
	}))
}

func TestIssueInvoiceMarksReadingsBilled(t *testing.T) {
	db := newTestDB(t)
	seedPortfolio(t, db)

	reading := &models.MeterReading{UnitID: "unit-1", CurrentReading: 23,
		ReadingDate: time.Now()}
	require.NoError(t, db.CreateMeterReading(reading))

	inv := &models.Invoice{
		ID: "inv-1", InvoiceNumber: "INV-TEST-inv-1", TenantID: "ten-1", UnitID: "unit-1",
		PropertyID: "prop-1", PeriodStart: time.Now(), PeriodEnd: time.Now().AddDate(0, 1, -1),
		DueDate: time.Now(), Subtotal: 26150, TotalAmount: 26150,
		Status: models.InvoiceStatusSent,
	}
	require.NoError(t, db.IssueInvoice(inv, []string{reading.ID}))

	unbilled, err := db.GetMeterReadings(ReadingFilters{UnitID: "unit-1", Unbilled: true})
	require.NoError(t, err)
	require.Empty(t, unbilled)
}

func TestIssueInvoiceRollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	seedPortfolio(t, db)

	reading := &models.MeterReading{UnitID: "unit-1", CurrentReading: 23,
		ReadingDate: time.Now()}
	require.NoError(t, db.CreateMeterReading(reading))

	seedInvoice(t, db, "inv-1", 25000, models.InvoiceStatusSent, time.Now())

	// Duplicate primary key makes the insert fail
	dup := &models.Invoice{
		ID: "inv-1", InvoiceNumber: "INV-TEST-dup", TenantID: "ten-1", UnitID: "unit-1",
		PropertyID: "prop-1", PeriodStart: time.Now(), PeriodEnd: time.Now().AddDate(0, 1, -1),
		DueDate: time.Now(), Subtotal: 26150, TotalAmount: 26150,
		Status: models.InvoiceStatusSent,
	}
	require.Error(t, db.IssueInvoice(dup, []string{reading.ID}))

	// The reading stays billable for the next run
	unbilled, err := db.GetMeterReadings(ReadingFilters{UnitID: "unit-1", Unbilled: true})
	require.NoError(t, err)
	require.Len(t, unbilled, 1)
}

func TestCreatePaymentSettlesInvoice(t *testing.T) {
	db := newTestDB(t)
	seedPortfolio(t, db)
	seedInvoice(t, db, "inv-1", 25000, models.InvoiceStatusSent, time.Now())

	invoiceID := "inv-1"
	require.NoError(t, db.CreatePayment(&models.Payment{
		TenantID: "ten-1", InvoiceID: &invoiceID, Amount: 18000,
		PaymentMethod: models.PaymentMethodMpesa, PaymentStatus: models.PaymentStatusCompleted,
	}))

	inv, err := db.GetInvoiceByID("inv-1")
	require.NoError(t, err)
	require.Equal(t, models.InvoiceStatusPartial, inv.Status)
	require.InDelta(t, 7000, inv.Balance(), 0.001)

	require.NoError(t, db.CreatePayment(&models.Payment{
		TenantID: "ten-1", InvoiceID: &invoiceID, Amount: 7000,
		PaymentMethod: models.PaymentMethodCash, PaymentStatus: models.PaymentStatusCompleted,
	}))

	inv, err = db.GetInvoiceByID("inv-1")
	require.NoError(t, err)
	require.Equal(t, models.InvoiceStatusPaid, inv.Status)
	require.InDelta(t, 0, inv.Balance(), 0.001)
}

func TestPendingPaymentLeavesInvoiceAlone(t *testing.T) {
	db := newTestDB(t)
	seedPortfolio(t, db)
	seedInvoice(t, db, "inv-1", 25000, models.InvoiceStatusSent, time.Now())

	invoiceID := "inv-1"
	require.NoError(t, db.CreatePayment(&models.Payment{
		TenantID: "ten-1", InvoiceID: &invoiceID, Amount: 25000,
		PaymentMethod: models.PaymentMethodMpesa, PaymentStatus: models.PaymentStatusPending,
	}))

	inv, err := db.GetInvoiceByID("inv-1")
	require.NoError(t, err)
	require.Equal(t, models.InvoiceStatusSent, inv.Status)
	require.InDelta(t, 0, inv.AmountPaid, 0.001)
}

func TestTenantBalanceDerived(t *testing.T) {
	db := newTestDB(t)
	seedPortfolio(t, db)
	seedInvoice(t, db, "inv-1", 25000, models.InvoiceStatusSent, time.Now())

	invoiceID := "inv-1"
	require.NoError(t, db.CreatePayment(&models.Payment{
		TenantID: "ten-1", InvoiceID: &invoiceID, Amount: 10000,
		PaymentMethod: models.PaymentMethodMpesa, PaymentStatus: models.PaymentStatusCompleted,
	}))

	tenant, err := db.GetTenantByID("ten-1")
	require.NoError(t, err)
	require.InDelta(t, 15000, tenant.Balance, 0.001)
	require.InDelta(t, 10000, tenant.TotalPaid, 0.001)

	// Draft invoices stay out of the balance
	seedInvoice(t, db, "inv-draft", 99000, models.InvoiceStatusDraft, time.Now())
	tenant, err = db.GetTenantByID("ten-1")
	require.NoError(t, err)
	require.InDelta(t, 15000, tenant.Balance, 0.001)
}

func TestMarkInvoiceOverdueWithPenalty(t *testing.T) {
	db := newTestDB(t)
	seedPortfolio(t, db)
	seedInvoice(t, db, "inv-1", 25000, models.InvoiceStatusSent, time.Now().AddDate(0, 0, -30))

	invoiceID := "inv-1"
	penalty := &models.Penalty{
		ID: "pen-1", TenantID: "ten-1", InvoiceID: &invoiceID,
		Amount: 2500, Reason: "Late payment penalty", AppliedDate: time.Now(),
	}
	require.NoError(t, db.MarkInvoiceOverdue("inv-1", penalty))

	inv, err := db.GetInvoiceByID("inv-1")
	require.NoError(t, err)
	require.Equal(t, models.InvoiceStatusOverdue, inv.Status)

	has, err := db.HasPenaltyForInvoice("inv-1")
	require.NoError(t, err)
	require.True(t, has)

	amount, count, err := db.OverdueSummary()
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
	require.InDelta(t, 25000, amount, 0.001)
}

func TestDashboardStats(t *testing.T) {
	db := newTestDB(t)
	seedPortfolio(t, db)

	now := time.Now()
	seedInvoice(t, db, "inv-1", 25000, models.InvoiceStatusSent, now)
	invoiceID := "inv-1"
	require.NoError(t, db.CreatePayment(&models.Payment{
		TenantID: "ten-1", InvoiceID: &invoiceID, Amount: 20000, PaymentDate: now,
		PaymentMethod: models.PaymentMethodMpesa, PaymentStatus: models.PaymentStatusCompleted,
	}))

	stats, err := db.GetDashboardStats(now)
	require.NoError(t, err)
	require.Equal(t, 1, stats.TotalProperties)
	require.Equal(t, 2, stats.TotalUnits)
	require.Equal(t, 1, stats.OccupiedUnits)
	require.Equal(t, 1, stats.VacantUnits)
	require.InDelta(t, 50, stats.OccupancyRate, 0.001)

	// Expected revenue is the occupied rent roll
	require.InDelta(t, 25000, stats.TotalRevenue, 0.001)
	require.InDelta(t, 20000, stats.CollectedRevenue, 0.001)
	require.InDelta(t, 80, stats.CollectionRate, 0.001)
}

func TestCreateActiveLeaseAssignsUnit(t *testing.T) {
	db := newTestDB(t)
	seedPortfolio(t, db)

	require.NoError(t, db.CreateTenant(&models.Tenant{
		ID: "ten-2", FullName: "Peter Ochieng", Phone: "254723456789",
		Status: models.TenantStatusPending,
	}))

	require.NoError(t, db.CreateLease(&models.Lease{
		TenantID: "ten-2", UnitID: "unit-2", PropertyID: "prop-1",
		StartDate: time.Now(), RentAmount: 18000,
		Status: models.LeaseStatusActive,
	}))

	unit, err := db.GetUnitByID("unit-2")
	require.NoError(t, err)
	require.Equal(t, models.UnitStatusOccupied, unit.Status)
	require.Equal(t, "Peter Ochieng", unit.CurrentTenantName)

	tenant, err := db.GetTenantByID("ten-2")
	require.NoError(t, err)
	require.Equal(t, models.TenantStatusActive, tenant.Status)
	require.Equal(t, "A-102", tenant.CurrentUnitNumber)

	leases, err := db.GetLeases(LeaseFilters{TenantID: "ten-2"})
	require.NoError(t, err)
	require.Len(t, leases, 1)
}

func TestPendingLeaseLeavesUnitAlone(t *testing.T) {
	db := newTestDB(t)
	seedPortfolio(t, db)

	require.NoError(t, db.CreateLease(&models.Lease{
		TenantID: "ten-1", UnitID: "unit-2", PropertyID: "prop-1",
		StartDate: time.Now().AddDate(0, 1, 0), RentAmount: 18000,
		Status: models.LeaseStatusPending,
	}))

	unit, err := db.GetUnitByID("unit-2")
	require.NoError(t, err)
	require.Equal(t, models.UnitStatusVacant, unit.Status)
}

func TestCreateLeaseRollsBackOnFailure(t *testing.T) {
	db := newTestDB(t)
	seedPortfolio(t, db)

	// Force the tenant update to fail mid-way
	require.NoError(t, db.Gorm().Migrator().DropTable(&models.Tenant{}))

	err := db.CreateLease(&models.Lease{
		TenantID: "ten-1", UnitID: "unit-2", PropertyID: "prop-1",
		StartDate: time.Now(), RentAmount: 18000,
		Status: models.LeaseStatusActive,
	})
	require.Error(t, err)

	var leaseCount int64
	require.NoError(t, db.Gorm().Model(&models.Lease{}).Count(&leaseCount).Error)
	require.EqualValues(t, 0, leaseCount)

	var unit models.Unit
	require.NoError(t, db.Gorm().Where("id = ?", "unit-2").First(&unit).Error)
	require.Equal(t, models.UnitStatusVacant, unit.Status)
	require.Nil(t, unit.CurrentTenantID)
}

func TestCollectedBetween(t *testing.T) {
	db := newTestDB(t)
	seedPortfolio(t, db)

	now := time.Now()
	require.NoError(t, db.CreatePayment(&models.Payment{
		TenantID: "ten-1", Amount: 5000, PaymentDate: now,
		PaymentMethod: models.PaymentMethodCash, PaymentStatus: models.PaymentStatusCompleted,
	}))
	require.NoError(t, db.CreatePayment(&models.Payment{
		TenantID: "ten-1", Amount: 9000, PaymentDate: now.AddDate(0, -2, 0),
		PaymentMethod: models.PaymentMethodCash, PaymentStatus: models.PaymentStatusCompleted,
	}))
	// Pending payments never count
	require.NoError(t, db.CreatePayment(&models.Payment{
		TenantID: "ten-1", Amount: 1000, PaymentDate: now,
		PaymentMethod: models.PaymentMethodCash, PaymentStatus: models.PaymentStatusPending,
	}))

	total, err := db.CollectedBetween(now.AddDate(0, 0, -7), now.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.InDelta(t, 5000, total, 0.001)
}
