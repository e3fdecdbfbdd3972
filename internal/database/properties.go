package database

import (
	"time"

	"github.com/google/uuid"

	"rentflow-portal/internal/models"
)

// unitCounts carries the per-property totals recomputed from unit rows.
type unitCounts struct {
	PropertyID    string
	TotalUnits    int
	OccupiedUnits int
}

func (d *DB) propertyUnitCounts() (map[string]unitCounts, error) {
	var rows []unitCounts
	err := d.db.Model(&models.Unit{}).
		Select("property_id, count(*) as total_units, sum(case when status = ? then 1 else 0 end) as occupied_units",
			models.UnitStatusOccupied).
		Group("property_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]unitCounts, len(rows))
	for _, r := range rows {
		counts[r.PropertyID] = r
	}
	return counts, nil
}

// GetProperties retrieves all properties with their unit counts derived
// from unit rows.
func (d *DB) GetProperties() ([]models.Property, error) {
	var properties []models.Property
	if err := d.db.Order("name ASC").Find(&properties).Error; err != nil {
		return nil, err
	}

	counts, err := d.propertyUnitCounts()
	if err != nil {
		return nil, err
	}
	for i := range properties {
		c := counts[properties[i].ID]
		properties[i].TotalUnits = c.TotalUnits
		properties[i].OccupiedUnits = c.OccupiedUnits
	}

	return properties, nil
}

// GetPropertyByID retrieves a property by ID with derived unit counts.
func (d *DB) GetPropertyByID(id string) (*models.Property, error) {
	var property models.Property
	if err := d.db.Where("id = ?", id).First(&property).Error; err != nil {
		return nil, err
	}

	var total, occupied int64
	d.db.Model(&models.Unit{}).Where("property_id = ?", id).Count(&total)
	d.db.Model(&models.Unit{}).Where("property_id = ? AND status = ?", id, models.UnitStatusOccupied).Count(&occupied)
	property.TotalUnits = int(total)
	property.OccupiedUnits = int(occupied)

	return &property, nil
}

// CreateProperty inserts a new property, assigning an ID when absent.
func (d *DB) CreateProperty(p *models.Property) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.PenaltyType == "" {
		p.PenaltyType = models.PenaltyTypePercentage
	}
	if p.BillingDay == 0 {
		p.BillingDay = 1
	}
	return d.db.Create(p).Error
}

// MonthlyExpectedRevenue sums rent across occupied units of a property.
func (d *DB) MonthlyExpectedRevenue(propertyID string) (float64, error) {
	var total float64
	err := d.db.Model(&models.Unit{}).
		Where("property_id = ? AND status = ?", propertyID, models.UnitStatusOccupied).
		Select("coalesce(sum(rent_amount), 0)").
		Scan(&total).Error
	return total, err
}

// MonthlyCollectedRevenue sums completed payments for a property within the
// month containing now.
func (d *DB) MonthlyCollectedRevenue(propertyID string, now time.Time) (float64, error) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0)

	var total float64
	err := d.db.Model(&models.Payment{}).
		Where("property_id = ? AND payment_status = ? AND payment_date >= ? AND payment_date < ?",
			propertyID, models.PaymentStatusCompleted, start, end).
		Select("coalesce(sum(amount), 0)").
		Scan(&total).Error
	return total, err
}
