package models

import (
	"time"

	"gorm.io/gorm"
)

type MeterReading struct {
	ID       string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	UnitID   string  `gorm:"type:varchar(36);not null;index" json:"unit_id"`
	TenantID *string `gorm:"type:varchar(36);index" json:"tenant_id,omitempty"`

	PreviousReading float64 `gorm:"type:decimal(12,2);not null" json:"previous_reading"`
	CurrentReading  float64 `gorm:"type:decimal(12,2);not null" json:"current_reading"`

	// Derived as current - previous on every load, never stored, so the two
	// source fields cannot drift out of sync with it.
	Consumption float64 `gorm:"-" json:"consumption"`

	ReadingDate time.Time `gorm:"not null;index" json:"reading_date"`
	RecordedBy  string    `gorm:"type:varchar(36)" json:"recorded_by,omitempty"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`
	IsBilled    bool      `gorm:"not null;default:false;index" json:"is_billed"`

	// Denormalized display fields populated by the query layer
	UnitNumber   string `gorm:"-" json:"unit_number,omitempty"`
	PropertyName string `gorm:"-" json:"property_name,omitempty"`
	TenantName   string `gorm:"-" json:"tenant_name,omitempty"`
	RecorderName string `gorm:"-" json:"recorder_name,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (MeterReading) TableName() string {
	return "meter_readings"
}

// AfterFind recomputes consumption from its source fields.
func (m *MeterReading) AfterFind(_ *gorm.DB) error {
	m.Consumption = m.CurrentReading - m.PreviousReading
	return nil
}
