package models

import "time"

type Payment struct {
	ID        string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	InvoiceID *string `gorm:"type:varchar(36);index" json:"invoice_id,omitempty"`

	TenantID   string  `gorm:"type:varchar(36);not null;index" json:"tenant_id"`
	UnitID     *string `gorm:"type:varchar(36);index" json:"unit_id,omitempty"`
	PropertyID string  `gorm:"type:varchar(36);index" json:"property_id"`

	Amount        float64       `gorm:"type:decimal(12,2);not null" json:"amount"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null" json:"payment_method"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"payment_status"`

	TransactionID      string `gorm:"type:varchar(50)" json:"transaction_id,omitempty"`
	MpesaReceiptNumber string `gorm:"type:varchar(30);index" json:"mpesa_receipt_number,omitempty"`

	PaymentDate time.Time `gorm:"not null;index" json:"payment_date"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	RecordedBy  string    `gorm:"type:varchar(36)" json:"recorded_by,omitempty"`

	// Denormalized display fields populated by the query layer
	TenantName   string `gorm:"-" json:"tenant_name,omitempty"`
	TenantPhone  string `gorm:"-" json:"tenant_phone,omitempty"`
	UnitNumber   string `gorm:"-" json:"unit_number,omitempty"`
	PropertyName string `gorm:"-" json:"property_name,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

type PaymentMethod string

const (
	PaymentMethodMpesa        PaymentMethod = "mpesa"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCheque       PaymentMethod = "cheque"
	PaymentMethodOther        PaymentMethod = "other"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusReversed  PaymentStatus = "reversed"
)

func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) IsCompleted() bool {
	return p.PaymentStatus == PaymentStatusCompleted
}

// ValidPaymentMethod reports whether s is one of the accepted methods.
func ValidPaymentMethod(s string) bool {
	switch PaymentMethod(s) {
	case PaymentMethodMpesa, PaymentMethodCash, PaymentMethodBankTransfer,
		PaymentMethodCheque, PaymentMethodOther:
		return true
	}
	return false
}

// ValidPaymentStatus reports whether s is one of the known payment states.
func ValidPaymentStatus(s string) bool {
	switch PaymentStatus(s) {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusReversed:
		return true
	}
	return false
}
