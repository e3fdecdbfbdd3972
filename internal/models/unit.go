package models

import "time"

type Unit struct {
	ID         string `gorm:"type:varchar(36);primaryKey" json:"id"`
	PropertyID string `gorm:"type:varchar(36);not null;index:idx_property_unit,unique" json:"property_id"`
	UnitNumber string `gorm:"type:varchar(20);not null;index:idx_property_unit,unique" json:"unit_number"`

	Floor         *int     `gorm:"type:int" json:"floor,omitempty"`
	Bedrooms      int      `gorm:"type:int" json:"bedrooms"`
	Bathrooms     int      `gorm:"type:int" json:"bathrooms"`
	SizeSqm       *float64 `gorm:"type:decimal(10,2)" json:"size_sqm,omitempty"`
	RentAmount    float64  `gorm:"type:decimal(12,2);not null" json:"rent_amount"`
	DepositAmount float64  `gorm:"type:decimal(12,2)" json:"deposit_amount"`

	Status          UnitStatus `gorm:"type:varchar(20);not null;default:'vacant';index" json:"status"`
	CurrentTenantID *string    `gorm:"type:varchar(36);index" json:"current_tenant_id,omitempty"`

	MeterNumber string `gorm:"type:varchar(30)" json:"meter_number,omitempty"`

	// Denormalized display fields populated by the query layer
	PropertyName      string `gorm:"-" json:"property_name,omitempty"`
	CurrentTenantName string `gorm:"-" json:"current_tenant_name,omitempty"`

	// Latest recorded meter value, derived from meter_readings
	LastMeterReading float64 `gorm:"-" json:"last_meter_reading"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

type UnitStatus string

const (
	UnitStatusVacant      UnitStatus = "vacant"
	UnitStatusOccupied    UnitStatus = "occupied"
	UnitStatusMaintenance UnitStatus = "maintenance"
	UnitStatusReserved    UnitStatus = "reserved"
)

func (Unit) TableName() string {
	return "units"
}

func (u *Unit) IsOccupied() bool {
	return u.Status == UnitStatusOccupied
}

// ValidUnitStatus reports whether s is one of the known unit states.
func ValidUnitStatus(s string) bool {
	switch UnitStatus(s) {
	case UnitStatusVacant, UnitStatusOccupied, UnitStatusMaintenance, UnitStatusReserved:
		return true
	}
	return false
}
