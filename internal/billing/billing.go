// Package billing holds the derived-metric calculators behind the
// dashboard and the invoice scheduler. All rates are recomputed from their
// source numbers at call time; nothing here reads stored aggregates.
package billing

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"rentflow-portal/internal/models"
)

// WaterBill computes the water charge for a consumption at a per-unit rate.
func WaterBill(consumption, ratePerUnit float64) float64 {
	return consumption * ratePerUnit
}

// Penalty computes a late-payment penalty. A percentage penalty is rounded
// to the nearest shilling; a fixed penalty is the rate itself, independent
// of the overdue amount.
func Penalty(amount, rate float64, penaltyType models.PenaltyType) float64 {
	if penaltyType == models.PenaltyTypePercentage {
		return math.Round(amount * rate / 100)
	}
	return rate
}

// OccupancyRate is the percentage of units occupied. Zero units means zero
// occupancy, not a division error.
func OccupancyRate(occupied, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(occupied) / float64(total) * 100
}

// CollectionRate is the percentage of expected revenue actually received.
func CollectionRate(collected, expected float64) float64 {
	if expected == 0 {
		return 0
	}
	return collected / expected * 100
}

// NewInvoiceNumber generates an invoice number like "INV-2409-4F2A".
func NewInvoiceNumber(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:4])
	return fmt.Sprintf("INV-%s-%s", now.Format("0601"), suffix)
}

// DueDate resolves the due date of the billing period containing now for a
// property billed on billingDay of each month. Days beyond the month's end
// clamp to the last day.
func DueDate(now time.Time, billingDay int) time.Time {
	year, month, _ := now.Date()
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, now.Location()).Day()
	if billingDay < 1 {
		billingDay = 1
	}
	if billingDay > lastDay {
		billingDay = lastDay
	}
	return time.Date(year, month, billingDay, 0, 0, 0, 0, now.Location())
}

// Period returns the start and end of the calendar month containing now.
func Period(now time.Time) (start, end time.Time) {
	year, month, _ := now.Date()
	start = time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	end = time.Date(year, month+1, 0, 0, 0, 0, 0, now.Location())
	return start, end
}

// DaysOverdue counts whole days past due, zero if not yet due.
func DaysOverdue(dueDate, now time.Time) int {
	days := int(now.Sub(dueDate).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
