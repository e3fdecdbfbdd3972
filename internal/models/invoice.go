package models

import "time"

type Invoice struct {
	ID            string `gorm:"type:varchar(36);primaryKey" json:"id"`
	InvoiceNumber string `gorm:"type:varchar(30);not null;uniqueIndex" json:"invoice_number"`

	TenantID   string `gorm:"type:varchar(36);not null;index" json:"tenant_id"`
	UnitID     string `gorm:"type:varchar(36);not null;index" json:"unit_id"`
	PropertyID string `gorm:"type:varchar(36);not null;index" json:"property_id"`

	PeriodStart time.Time `gorm:"not null" json:"period_start"`
	PeriodEnd   time.Time `gorm:"not null" json:"period_end"`
	DueDate     time.Time `gorm:"not null;index" json:"due_date"`

	Subtotal    float64 `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	TaxAmount   float64 `gorm:"type:decimal(12,2)" json:"tax_amount"`
	TotalAmount float64 `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	AmountPaid  float64 `gorm:"type:decimal(12,2)" json:"amount_paid"`

	Status InvoiceStatus `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`
	Notes  string        `gorm:"type:text" json:"notes,omitempty"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`

	// Denormalized display fields populated by the query layer
	TenantName   string `gorm:"-" json:"tenant_name,omitempty"`
	UnitNumber   string `gorm:"-" json:"unit_number,omitempty"`
	PropertyName string `gorm:"-" json:"property_name,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

type InvoiceItem struct {
	ID          string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	InvoiceID   string  `gorm:"type:varchar(36);not null;index" json:"invoice_id"`
	Description string  `gorm:"type:varchar(200);not null" json:"description"`
	ItemType    string  `gorm:"type:varchar(20);not null" json:"item_type"`
	Quantity    float64 `gorm:"type:decimal(10,2);default:1" json:"quantity"`
	UnitPrice   float64 `gorm:"type:decimal(12,2)" json:"unit_price"`
	Amount      float64 `gorm:"type:decimal(12,2);not null" json:"amount"`
}

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusPartial   InvoiceStatus = "partial"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// Invoice item types
const (
	InvoiceItemRent    = "rent"
	InvoiceItemWater   = "water"
	InvoiceItemPenalty = "penalty"
	InvoiceItemDeposit = "deposit"
	InvoiceItemOther   = "other"
)

func (Invoice) TableName() string {
	return "invoices"
}

func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// Balance is the outstanding amount, derived rather than stored.
func (i *Invoice) Balance() float64 {
	return i.TotalAmount - i.AmountPaid
}

// IsOutstanding reports whether the invoice still expects payment.
func (i *Invoice) IsOutstanding() bool {
	switch i.Status {
	case InvoiceStatusSent, InvoiceStatusPartial, InvoiceStatusOverdue:
		return i.Balance() > 0
	}
	return false
}

// IsPastDue reports whether the invoice is outstanding beyond its due date
// plus the given grace period.
func (i *Invoice) IsPastDue(now time.Time, graceDays int) bool {
	return i.IsOutstanding() && now.After(i.DueDate.AddDate(0, 0, graceDays))
}
