package models

import "time"

type Lease struct {
	ID         string `gorm:"type:varchar(36);primaryKey" json:"id"`
	TenantID   string `gorm:"type:varchar(36);not null;index" json:"tenant_id"`
	UnitID     string `gorm:"type:varchar(36);not null;index" json:"unit_id"`
	PropertyID string `gorm:"type:varchar(36);not null;index" json:"property_id"`

	StartDate time.Time  `gorm:"not null" json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	RentAmount    float64 `gorm:"type:decimal(12,2);not null" json:"rent_amount"`
	DepositAmount float64 `gorm:"type:decimal(12,2)" json:"deposit_amount"`
	DepositPaid   float64 `gorm:"type:decimal(12,2)" json:"deposit_paid"`

	Status LeaseStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Terms  string      `gorm:"type:text" json:"terms,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

type LeaseStatus string

const (
	LeaseStatusActive     LeaseStatus = "active"
	LeaseStatusExpired    LeaseStatus = "expired"
	LeaseStatusTerminated LeaseStatus = "terminated"
	LeaseStatusPending    LeaseStatus = "pending"
)

func (Lease) TableName() string {
	return "leases"
}
