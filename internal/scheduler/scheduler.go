package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"rentflow-portal/internal/billing"
	"rentflow-portal/internal/config"
	"rentflow-portal/internal/database"
	"rentflow-portal/internal/models"

	"github.com/google/uuid"
)

// Scheduler handles the recurring billing tasks: generating monthly rent
// invoices on each property's billing day and flagging invoices that have
// gone past due plus grace, applying the property's late fee.
type Scheduler struct {
	cron      *cron.Cron
	db        *database.DB
	config    *config.Config
	location  *time.Location
	isRunning bool
}

// NewScheduler creates a new scheduler
func NewScheduler(db *database.DB, cfg *config.Config) *Scheduler {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("Scheduler: Unknown timezone '%s', falling back to UTC", cfg.Timezone)
		loc = time.UTC
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		db:       db,
		config:   cfg,
		location: loc,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	if !s.config.Billing.DailyRunEnabled {
		log.Println("Scheduler: Daily billing run is disabled in configuration")
		return nil
	}

	cronSpec := s.parseDailyRunTime(s.config.Billing.DailyRunTime)

	_, err := s.cron.AddFunc(cronSpec, func() {
		log.Println("Scheduler: Starting daily billing job...")
		if err := s.runDailyBilling(time.Now().In(s.location)); err != nil {
			log.Printf("Scheduler: Daily billing failed: %v", err)
		} else {
			log.Println("Scheduler: Daily billing completed successfully")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Scheduler: Started with daily run at %s (cron: %s)", s.config.Billing.DailyRunTime, cronSpec)

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	if s.isRunning {
		s.cron.Stop()
		s.isRunning = false
		log.Println("Scheduler: Stopped")
	}
}

// RunNow immediately executes the daily billing job (for manual trigger)
func (s *Scheduler) RunNow() error {
	log.Println("Scheduler: Manual trigger - starting billing job...")
	return s.runDailyBilling(time.Now().In(s.location))
}

// runDailyBilling executes the daily billing routine
func (s *Scheduler) runDailyBilling(now time.Time) error {
	generated, err := s.generateMonthlyInvoices(now)
	if err != nil {
		return err
	}

	flagged, err := s.flagOverdueInvoices(now)
	if err != nil {
		return err
	}

	log.Printf("Scheduler: Daily billing completed. Invoices generated: %d, Flagged overdue: %d",
		generated, flagged)
	return nil
}

// generateMonthlyInvoices creates a rent invoice for every occupied unit of
// each property whose billing day has arrived this month. Units already
// invoiced for the current period are skipped, so the job is safe to rerun.
func (s *Scheduler) generateMonthlyInvoices(now time.Time) (int, error) {
	properties, err := s.db.GetProperties()
	if err != nil {
		return 0, err
	}

	periodStart, periodEnd := billing.Period(now)
	generated := 0

	for _, prop := range properties {
		if now.Day() < prop.BillingDay {
			continue
		}

		units, err := s.db.GetUnits(database.UnitFilters{
			Status:     string(models.UnitStatusOccupied),
			PropertyID: prop.ID,
		})
		if err != nil {
			return generated, err
		}

		for _, unit := range units {
			if unit.CurrentTenantID == nil {
				log.Printf("Scheduler: Occupied unit %s has no tenant, skipping", unit.ID)
				continue
			}
			tenantID := *unit.CurrentTenantID

			exists, err := s.db.HasInvoiceForPeriod(tenantID, unit.ID, periodStart)
			if err != nil {
				return generated, err
			}
			if exists {
				continue
			}

			if _, err := s.issueInvoice(&prop, &unit, tenantID, now, periodStart, periodEnd); err != nil {
				log.Printf("Scheduler: Failed to issue invoice for unit %s: %v", unit.ID, err)
				continue
			}
			generated++
		}
	}

	return generated, nil
}

// issueInvoice assembles and saves a rent invoice, adding a water line when
// the unit has an unbilled meter reading.
func (s *Scheduler) issueInvoice(prop *models.Property, unit *models.Unit, tenantID string,
	now, periodStart, periodEnd time.Time) (*models.Invoice, error) {

	items := []models.InvoiceItem{
		{
			ID:          uuid.New().String(),
			Description: fmt.Sprintf("Rent for %s - %s", unit.UnitNumber, now.Format("January 2006")),
			ItemType:    models.InvoiceItemRent,
			Quantity:    1,
			UnitPrice:   unit.RentAmount,
			Amount:      unit.RentAmount,
		},
	}

	var billedReadings []string
	if prop.WaterRate > 0 {
		readings, err := s.db.GetMeterReadings(database.ReadingFilters{
			UnitID:   unit.ID,
			Unbilled: true,
		})
		if err != nil {
			return nil, err
		}
		for _, r := range readings {
			if r.Consumption <= 0 {
				continue
			}
			items = append(items, models.InvoiceItem{
				ID: uuid.New().String(),
				Description: fmt.Sprintf("Water: %.1f units @ %.2f (%s)",
					r.Consumption, prop.WaterRate, r.ReadingDate.Format("2006-01-02")),
				ItemType:  models.InvoiceItemWater,
				Quantity:  r.Consumption,
				UnitPrice: prop.WaterRate,
				Amount:    billing.WaterBill(r.Consumption, prop.WaterRate),
			})
			billedReadings = append(billedReadings, r.ID)
		}
	}

	var subtotal float64
	for _, item := range items {
		subtotal += item.Amount
	}
	tax := subtotal * s.config.Billing.TaxRatePercent / 100

	inv := &models.Invoice{
		ID:            uuid.New().String(),
		InvoiceNumber: billing.NewInvoiceNumber(now),
		TenantID:      tenantID,
		UnitID:        unit.ID,
		PropertyID:    prop.ID,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		DueDate:       billing.DueDate(now, prop.BillingDay),
		Subtotal:      subtotal,
		TaxAmount:     tax,
		TotalAmount:   subtotal + tax,
		Status:        models.InvoiceStatusSent,
	}

	if err := s.db.IssueInvoice(inv, billedReadings); err != nil {
		return nil, err
	}
	return inv, nil
}

// flagOverdueInvoices moves outstanding invoices past due date plus grace to
// overdue and applies the property's late fee once per invoice.
func (s *Scheduler) flagOverdueInvoices(now time.Time) (int, error) {
	invoices, err := s.db.GetOutstandingInvoices()
	if err != nil {
		return 0, err
	}

	flagged := 0
	for _, inv := range invoices {
		prop, err := s.db.GetPropertyByID(inv.PropertyID)
		if err != nil {
			log.Printf("Scheduler: Failed to load property for invoice %s: %v", inv.ID, err)
			continue
		}

		if !inv.IsPastDue(now, prop.GracePeriodDays) {
			continue
		}

		hasPenalty, err := s.db.HasPenaltyForInvoice(inv.ID)
		if err != nil {
			return flagged, err
		}
		if hasPenalty && inv.Status == models.InvoiceStatusOverdue {
			continue
		}

		var penalty *models.Penalty
		if !hasPenalty && prop.PenaltyRate > 0 {
			invoiceID := inv.ID
			penalty = &models.Penalty{
				ID:          uuid.New().String(),
				TenantID:    inv.TenantID,
				InvoiceID:   &invoiceID,
				Amount:      billing.Penalty(inv.Balance(), prop.PenaltyRate, prop.PenaltyType),
				Reason:      fmt.Sprintf("Late payment penalty for invoice %s", inv.InvoiceNumber),
				AppliedDate: now,
			}
		}

		if err := s.db.MarkInvoiceOverdue(inv.ID, penalty); err != nil {
			log.Printf("Scheduler: Failed to flag invoice %s overdue: %v", inv.ID, err)
			continue
		}
		flagged++
	}

	return flagged, nil
}

// parseDailyRunTime converts HH:MM format to cron specification
// Example: "02:00" -> "0 2 * * *" (run at 2:00 AM every day)
func (s *Scheduler) parseDailyRunTime(timeStr string) string {
	var hour, minute int
	n, _ := fmt.Sscanf(timeStr, "%d:%d", &hour, &minute)
	if n == 2 {
		return fmt.Sprintf("%d %d * * *", minute, hour)
	}

	log.Printf("Scheduler: Failed to parse time '%s', using default 02:00", timeStr)
	return "0 2 * * *"
}
