// Package seed loads the demo portfolio on first boot so the portal has
// data to show without a real backend feed. Seeding is skipped when any
// property already exists.
package seed

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"rentflow-portal/internal/database"
	"rentflow-portal/internal/models"
)

// DemoPassword is the sign-in password for every seeded account.
const DemoPassword = "rentflow123"

// Run populates the demo dataset if the database is empty.
func Run(db *database.DB) error {
	existing, err := db.GetProperties()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Println("Seed: demo data already present, skipping")
		return nil
	}

	now := time.Now()

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []models.User{
		{ID: "user-bruce", Email: "bruce@rentflow.co.ke", FullName: "Bruce Mwikya", Role: models.RoleAdmin, Phone: "0711000001"},
		{ID: "user-mary", Email: "mary@rentflow.co.ke", FullName: "Mary Wanjiku", Role: models.RoleCaretaker, Phone: "0711000002"},
		{ID: "user-peter", Email: "peter@rentflow.co.ke", FullName: "Peter Kamande", Role: models.RoleCaretaker, Phone: "0711000003"},
	}
	for i := range users {
		users[i].PasswordHash = string(hash)
		if err := db.CreateUser(&users[i]); err != nil {
			return err
		}
	}

	properties := []models.Property{
		{ID: "prop-sunset", OwnerID: "user-bruce", Name: "Sunset Apartments", Address: "123 Mombasa Road", City: "Nairobi", County: "Nairobi", PropertyType: "apartment", WaterRate: 50, PenaltyRate: 10, PenaltyType: models.PenaltyTypePercentage, BillingDay: 1, GracePeriodDays: 5},
		{ID: "prop-greenvalley", OwnerID: "user-bruce", Name: "Green Valley Estate", Address: "456 Ngong Road", City: "Nairobi", County: "Nairobi", PropertyType: "house", WaterRate: 45, PenaltyRate: 10, PenaltyType: models.PenaltyTypePercentage, BillingDay: 1, GracePeriodDays: 5},
		{ID: "prop-cityview", OwnerID: "user-bruce", Name: "City View Tower", Address: "789 Kenyatta Avenue", City: "Nairobi", County: "Nairobi", PropertyType: "apartment", WaterRate: 55, PenaltyRate: 500, PenaltyType: models.PenaltyTypeFixed, BillingDay: 1, GracePeriodDays: 5},
		{ID: "prop-riverside", OwnerID: "user-bruce", Name: "Riverside Gardens", Address: "321 Riverside Drive", City: "Nairobi", County: "Nairobi", PropertyType: "mixed", WaterRate: 60, PenaltyRate: 10, PenaltyType: models.PenaltyTypePercentage, BillingDay: 1, GracePeriodDays: 5},
	}
	for i := range properties {
		if err := db.CreateProperty(&properties[i]); err != nil {
			return err
		}
	}

	tenants := []models.Tenant{
		{ID: "ten-grace", FullName: "Grace Wanjiku", Phone: "0712345678", Email: "grace@email.com", Status: models.TenantStatusActive, MoveInDate: date(2023, 6, 15)},
		{ID: "ten-peter", FullName: "Peter Ochieng", Phone: "0723456789", Email: "peter@email.com", Status: models.TenantStatusActive, MoveInDate: date(2023, 8, 1)},
		{ID: "ten-mary", FullName: "Mary Njeri", Phone: "0734567890", Status: models.TenantStatusActive, MoveInDate: date(2024, 1, 10)},
		{ID: "ten-alice", FullName: "Alice Kamau", Phone: "0745678901", Email: "alice@email.com", Status: models.TenantStatusActive, MoveInDate: date(2022, 3, 20)},
		{ID: "ten-john", FullName: "John Kiprop", Phone: "0756789012", Status: models.TenantStatusActive, MoveInDate: date(2023, 11, 5)},
		{ID: "ten-james", FullName: "James Mwangi", Phone: "0767890123", Email: "james.m@email.com", Status: models.TenantStatusActive, MoveInDate: date(2024, 2, 1)},
		{ID: "ten-sarah", FullName: "Sarah Mutua", Phone: "0778901234", Status: models.TenantStatusActive, MoveInDate: date(2023, 9, 12)},
		{ID: "ten-david", FullName: "David Otieno", Phone: "0789012345", Status: models.TenantStatusActive, MoveInDate: date(2023, 4, 3)},
	}
	for i := range tenants {
		if err := db.CreateTenant(&tenants[i]); err != nil {
			return err
		}
	}

	units := []models.Unit{
		{ID: "unit-a101", PropertyID: "prop-sunset", UnitNumber: "A-101", Bedrooms: 2, Bathrooms: 1, RentAmount: 25000, DepositAmount: 25000, Status: models.UnitStatusOccupied, CurrentTenantID: ptr("ten-grace"), MeterNumber: "WM-001234"},
		{ID: "unit-a102", PropertyID: "prop-sunset", UnitNumber: "A-102", Bedrooms: 2, Bathrooms: 1, RentAmount: 25000, DepositAmount: 25000, Status: models.UnitStatusOccupied, CurrentTenantID: ptr("ten-peter"), MeterNumber: "WM-001235"},
		{ID: "unit-a103", PropertyID: "prop-sunset", UnitNumber: "A-103", Bedrooms: 1, Bathrooms: 1, RentAmount: 18000, DepositAmount: 18000, Status: models.UnitStatusVacant, MeterNumber: "WM-001236"},
		{ID: "unit-b103", PropertyID: "prop-sunset", UnitNumber: "B-103", Bedrooms: 2, Bathrooms: 1, RentAmount: 22000, DepositAmount: 22000, Status: models.UnitStatusOccupied, CurrentTenantID: ptr("ten-alice"), MeterNumber: "WM-001240"},
		{ID: "unit-b201", PropertyID: "prop-sunset", UnitNumber: "B-201", Bedrooms: 3, Bathrooms: 2, RentAmount: 32000, DepositAmount: 32000, Status: models.UnitStatusMaintenance, MeterNumber: "WM-001237"},
		{ID: "unit-b202", PropertyID: "prop-sunset", UnitNumber: "B-202", Bedrooms: 2, Bathrooms: 1, RentAmount: 25000, DepositAmount: 25000, Status: models.UnitStatusOccupied, CurrentTenantID: ptr("ten-james"), MeterNumber: "WM-001238"},
		{ID: "unit-c301", PropertyID: "prop-greenvalley", UnitNumber: "C-301", Bedrooms: 2, Bathrooms: 1, RentAmount: 38000, DepositAmount: 38000, Status: models.UnitStatusOccupied, CurrentTenantID: ptr("ten-mary"), MeterNumber: "WM-002145"},
		{ID: "unit-a501", PropertyID: "prop-cityview", UnitNumber: "A-501", Bedrooms: 3, Bathrooms: 2, RentAmount: 55000, DepositAmount: 55000, Status: models.UnitStatusOccupied, CurrentTenantID: ptr("ten-john"), MeterNumber: "WM-003001"},
		{ID: "unit-c102", PropertyID: "prop-cityview", UnitNumber: "C-102", Bedrooms: 2, Bathrooms: 1, RentAmount: 28000, DepositAmount: 28000, Status: models.UnitStatusOccupied, CurrentTenantID: ptr("ten-sarah"), MeterNumber: "WM-003002"},
		{ID: "unit-b401", PropertyID: "prop-riverside", UnitNumber: "B-401", Bedrooms: 3, Bathrooms: 2, RentAmount: 35000, DepositAmount: 35000, Status: models.UnitStatusOccupied, CurrentTenantID: ptr("ten-david"), MeterNumber: "WM-004001"},
		{ID: "unit-d101", PropertyID: "prop-riverside", UnitNumber: "D-101", Bedrooms: 1, Bathrooms: 1, RentAmount: 20000, DepositAmount: 20000, Status: models.UnitStatusReserved, MeterNumber: "WM-004002"},
	}
	for i := range units {
		if err := db.CreateUnit(&units[i]); err != nil {
			return err
		}
	}

	// Tie tenants back to their units
	tenantUnits := map[string]string{
		"ten-grace": "unit-a101", "ten-peter": "unit-a102", "ten-mary": "unit-c301",
		"ten-alice": "unit-b103", "ten-john": "unit-a501", "ten-james": "unit-b202",
		"ten-sarah": "unit-c102", "ten-david": "unit-b401",
	}
	for tenantID, unitID := range tenantUnits {
		uid := unitID
		if err := db.Gorm().Model(&models.Tenant{}).Where("id = ?", tenantID).
			Update("current_unit_id", &uid).Error; err != nil {
			return err
		}
	}

	// One active lease per occupied unit, dated from the move-in
	unitProps := map[string]string{}
	unitRents := map[string]float64{}
	for _, u := range units {
		unitProps[u.ID] = u.PropertyID
		unitRents[u.ID] = u.RentAmount
	}
	for i := range tenants {
		unitID, ok := tenantUnits[tenants[i].ID]
		if !ok {
			continue
		}
		lease := models.Lease{
			ID:            "lease-" + tenants[i].ID,
			TenantID:      tenants[i].ID,
			UnitID:        unitID,
			PropertyID:    unitProps[unitID],
			StartDate:     *tenants[i].MoveInDate,
			RentAmount:    unitRents[unitID],
			DepositAmount: unitRents[unitID],
			Status:        models.LeaseStatusActive,
		}
		if err := db.Gorm().Create(&lease).Error; err != nil {
			return err
		}
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)
	lastMonthStart := monthStart.AddDate(0, -1, 0)
	lastMonthEnd := monthStart.AddDate(0, 0, -1)

	invoices := []models.Invoice{
		// Current month rent, already settled
		{ID: "inv-grace", InvoiceNumber: "INV-" + now.Format("0601") + "-GR01", TenantID: "ten-grace", UnitID: "unit-a101", PropertyID: "prop-sunset", PeriodStart: monthStart, PeriodEnd: monthEnd, DueDate: monthStart, Subtotal: 25000, TotalAmount: 25000, AmountPaid: 25000, Status: models.InvoiceStatusPaid,
			Items: []models.InvoiceItem{{Description: "Monthly rent", ItemType: models.InvoiceItemRent, Quantity: 1, UnitPrice: 25000, Amount: 25000}}},
		{ID: "inv-peter", InvoiceNumber: "INV-" + now.Format("0601") + "-PE01", TenantID: "ten-peter", UnitID: "unit-a102", PropertyID: "prop-sunset", PeriodStart: monthStart, PeriodEnd: monthEnd, DueDate: monthStart, Subtotal: 25000, TotalAmount: 25000, AmountPaid: 18000, Status: models.InvoiceStatusPartial,
			Items: []models.InvoiceItem{{Description: "Monthly rent", ItemType: models.InvoiceItemRent, Quantity: 1, UnitPrice: 25000, Amount: 25000}}},
		// Last month, never paid: the scheduler's overdue fodder
		{ID: "inv-alice", InvoiceNumber: "INV-" + lastMonthStart.Format("0601") + "-AL01", TenantID: "ten-alice", UnitID: "unit-b103", PropertyID: "prop-sunset", PeriodStart: lastMonthStart, PeriodEnd: lastMonthEnd, DueDate: lastMonthStart, Subtotal: 45000, TotalAmount: 45000, Status: models.InvoiceStatusOverdue,
			Items: []models.InvoiceItem{{Description: "Monthly rent", ItemType: models.InvoiceItemRent, Quantity: 1, UnitPrice: 22000, Amount: 22000}, {Description: "Rent arrears", ItemType: models.InvoiceItemOther, Quantity: 1, UnitPrice: 23000, Amount: 23000}}},
		{ID: "inv-john", InvoiceNumber: "INV-" + lastMonthStart.Format("0601") + "-JO01", TenantID: "ten-john", UnitID: "unit-a501", PropertyID: "prop-cityview", PeriodStart: lastMonthStart, PeriodEnd: lastMonthEnd, DueDate: lastMonthStart, Subtotal: 28000, TotalAmount: 28000, Status: models.InvoiceStatusOverdue,
			Items: []models.InvoiceItem{{Description: "Water and service charges", ItemType: models.InvoiceItemWater, Quantity: 1, UnitPrice: 28000, Amount: 28000}}},
		// Current month, still open
		{ID: "inv-david", InvoiceNumber: "INV-" + now.Format("0601") + "-DA01", TenantID: "ten-david", UnitID: "unit-b401", PropertyID: "prop-riverside", PeriodStart: monthStart, PeriodEnd: monthEnd, DueDate: monthStart, Subtotal: 35000, TotalAmount: 35000, Status: models.InvoiceStatusSent,
			Items: []models.InvoiceItem{{Description: "Monthly rent", ItemType: models.InvoiceItemRent, Quantity: 1, UnitPrice: 35000, Amount: 35000}}},
	}
	for i := range invoices {
		if err := db.CreateInvoice(&invoices[i]); err != nil {
			return err
		}
	}

	payments := []models.Payment{
		{ID: "pay-grace", InvoiceID: ptr("inv-grace"), TenantID: "ten-grace", UnitID: ptr("unit-a101"), PropertyID: "prop-sunset", Amount: 25000, PaymentMethod: models.PaymentMethodMpesa, PaymentStatus: models.PaymentStatusCompleted, MpesaReceiptNumber: "QWE123RTY456", PaymentDate: now.Add(-15 * time.Minute), RecordedBy: "user-mary"},
		{ID: "pay-peter", InvoiceID: ptr("inv-peter"), TenantID: "ten-peter", UnitID: ptr("unit-a102"), PropertyID: "prop-sunset", Amount: 18000, PaymentMethod: models.PaymentMethodMpesa, PaymentStatus: models.PaymentStatusCompleted, MpesaReceiptNumber: "ASD456FGH789", PaymentDate: now.Add(-45 * time.Minute), RecordedBy: "user-mary"},
		{ID: "pay-mary", TenantID: "ten-mary", UnitID: ptr("unit-c301"), PropertyID: "prop-greenvalley", Amount: 32000, PaymentMethod: models.PaymentMethodBankTransfer, PaymentStatus: models.PaymentStatusCompleted, TransactionID: "BNK001234", PaymentDate: now.Add(-2 * time.Hour), RecordedBy: "user-bruce"},
		{ID: "pay-james", TenantID: "ten-james", UnitID: ptr("unit-b202"), PropertyID: "prop-sunset", Amount: 22000, PaymentMethod: models.PaymentMethodMpesa, PaymentStatus: models.PaymentStatusCompleted, MpesaReceiptNumber: "ZXC789VBN012", PaymentDate: now.Add(-3 * time.Hour), RecordedBy: "user-mary"},
		{ID: "pay-sarah", TenantID: "ten-sarah", UnitID: ptr("unit-c102"), PropertyID: "prop-cityview", Amount: 28000, PaymentMethod: models.PaymentMethodCash, PaymentStatus: models.PaymentStatusCompleted, PaymentDate: now.Add(-5 * time.Hour), RecordedBy: "user-peter"},
		{ID: "pay-david", InvoiceID: ptr("inv-david"), TenantID: "ten-david", UnitID: ptr("unit-b401"), PropertyID: "prop-riverside", Amount: 35000, PaymentMethod: models.PaymentMethodMpesa, PaymentStatus: models.PaymentStatusPending, PaymentDate: now.Add(-8 * time.Hour), RecordedBy: "user-peter"},
	}
	for i := range payments {
		// Invoice totals above already reflect these amounts, so bypass the
		// paying transaction and insert the rows directly.
		if err := db.Gorm().Create(&payments[i]).Error; err != nil {
			return err
		}
	}

	readings := []struct {
		id, unitID, tenantID string
		previous, current    float64
		age                  time.Duration
		billed               bool
	}{
		{"read-a101", "unit-a101", "ten-grace", 1245, 1268, 2 * time.Hour, true},
		{"read-a102", "unit-a102", "ten-peter", 890, 918, 2 * time.Hour, true},
		{"read-b201", "unit-b201", "", 456, 456, 3 * time.Hour, false},
		{"read-c301", "unit-c301", "ten-mary", 2100, 2145, 24 * time.Hour, false},
		{"read-a501", "unit-a501", "ten-john", 780, 812, 48 * time.Hour, true},
	}
	for _, r := range readings {
		reading := models.MeterReading{
			ID:              r.id,
			UnitID:          r.unitID,
			PreviousReading: r.previous,
			CurrentReading:  r.current,
			ReadingDate:     now.Add(-r.age),
			RecordedBy:      "user-mary",
			IsBilled:        r.billed,
		}
		if r.tenantID != "" {
			reading.TenantID = ptr(r.tenantID)
		}
		if err := db.Gorm().Create(&reading).Error; err != nil {
			return err
		}
	}

	log.Printf("Seed: loaded demo portfolio (%d properties, %d units, %d tenants)",
		len(properties), len(units), len(tenants))
	return nil
}

func ptr(s string) *string {
	return &s
}

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}
