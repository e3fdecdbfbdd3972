package models

import "time"

type Property struct {
	ID           string `gorm:"type:varchar(36);primaryKey" json:"id"`
	OwnerID      string `gorm:"type:varchar(36);index" json:"owner_id,omitempty"`
	Name         string `gorm:"type:varchar(200);not null;uniqueIndex" json:"name"`
	Address      string `gorm:"type:text;not null" json:"address"`
	City         string `gorm:"type:varchar(100)" json:"city,omitempty"`
	County       string `gorm:"type:varchar(100)" json:"county,omitempty"`
	Description  string `gorm:"type:text" json:"description,omitempty"`
	PropertyType string `gorm:"type:varchar(20);index" json:"property_type"`
	ImageURL     string `gorm:"type:text" json:"image_url,omitempty"`

	// Billing policy
	WaterRate       float64     `gorm:"type:decimal(10,2)" json:"water_rate"`
	PenaltyRate     float64     `gorm:"type:decimal(10,2)" json:"penalty_rate"`
	PenaltyType     PenaltyType `gorm:"type:varchar(20);default:'percentage'" json:"penalty_type"`
	BillingDay      int         `gorm:"type:int;default:1" json:"billing_day"`
	GracePeriodDays int         `gorm:"type:int;default:5" json:"grace_period_days"`

	// Derived from unit rows at read time, never stored
	TotalUnits    int `gorm:"-" json:"total_units"`
	OccupiedUnits int `gorm:"-" json:"occupied_units"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// PenaltyType selects how a property's late-payment penalty is computed
type PenaltyType string

const (
	PenaltyTypePercentage PenaltyType = "percentage"
	PenaltyTypeFixed      PenaltyType = "fixed"
)

func (Property) TableName() string {
	return "properties"
}
