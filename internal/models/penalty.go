package models

import "time"

type Penalty struct {
	ID        string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	TenantID  string  `gorm:"type:varchar(36);not null;index" json:"tenant_id"`
	InvoiceID *string `gorm:"type:varchar(36);index" json:"invoice_id,omitempty"`

	Amount      float64   `gorm:"type:decimal(12,2);not null" json:"amount"`
	Reason      string    `gorm:"type:varchar(200);not null" json:"reason"`
	AppliedDate time.Time `gorm:"not null" json:"applied_date"`

	IsWaived    bool       `gorm:"not null;default:false" json:"is_waived"`
	WaivedBy    string     `gorm:"type:varchar(36)" json:"waived_by,omitempty"`
	WaivedDate  *time.Time `json:"waived_date,omitempty"`
	WaiveReason string     `gorm:"type:text" json:"waive_reason,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Penalty) TableName() string {
	return "penalties"
}
