package models

import "time"

type Tenant struct {
	ID       string `gorm:"type:varchar(36);primaryKey" json:"id"`
	FullName string `gorm:"type:varchar(200);not null" json:"full_name"`
	Phone    string `gorm:"type:varchar(20);not null;index" json:"phone"`
	Email    string `gorm:"type:varchar(200)" json:"email,omitempty"`

	IDNumber string `gorm:"type:varchar(20)" json:"id_number,omitempty"`
	IDType   string `gorm:"type:varchar(20)" json:"id_type,omitempty"`

	EmergencyContactName  string `gorm:"type:varchar(200)" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string `gorm:"type:varchar(20)" json:"emergency_contact_phone,omitempty"`

	Status        TenantStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CurrentUnitID *string      `gorm:"type:varchar(36);index" json:"current_unit_id,omitempty"`
	MoveInDate    *time.Time   `json:"move_in_date,omitempty"`
	Notes         string       `gorm:"type:text" json:"notes,omitempty"`

	// Denormalized display fields populated by the query layer
	CurrentUnitNumber   string `gorm:"-" json:"current_unit_number,omitempty"`
	CurrentPropertyName string `gorm:"-" json:"current_property_name,omitempty"`

	// Derived from invoices and completed payments at read time.
	// Positive balance means the tenant owes money.
	Balance   float64 `gorm:"-" json:"balance"`
	TotalPaid float64 `gorm:"-" json:"total_paid"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

type TenantStatus string

const (
	TenantStatusActive   TenantStatus = "active"
	TenantStatusInactive TenantStatus = "inactive"
	TenantStatusPending  TenantStatus = "pending"
	TenantStatusEvicted  TenantStatus = "evicted"
)

func (Tenant) TableName() string {
	return "tenants"
}

func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

// ValidTenantStatus reports whether s is one of the known tenant states.
func ValidTenantStatus(s string) bool {
	switch TenantStatus(s) {
	case TenantStatusActive, TenantStatusInactive, TenantStatusPending, TenantStatusEvicted:
		return true
	}
	return false
}
