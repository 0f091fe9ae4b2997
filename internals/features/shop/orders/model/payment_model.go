package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Payment status vocabulary
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// PaymentModel: one row per checkout (single-attempt simulation, no
// retries or partial refunds).
type PaymentModel struct {
	PaymentID uuid.UUID `gorm:"column:payment_id;type:uuid;primaryKey" json:"payment_id"`

	PaymentOrderID uuid.UUID `gorm:"column:payment_order_id;type:uuid;not null;index" json:"payment_order_id"`
	PaymentNumber  string    `gorm:"column:payment_number;type:varchar(50);uniqueIndex;not null" json:"payment_number"`

	PaymentAmount   float64 `gorm:"column:payment_amount;type:numeric(10,2);not null" json:"payment_amount"`
	PaymentCurrency string  `gorm:"column:payment_currency;type:varchar(3);not null;default:KES" json:"payment_currency"`
	PaymentMethod   string  `gorm:"column:payment_method;type:varchar(20);not null" json:"payment_method"`
	PaymentStatus   string  `gorm:"column:payment_status;type:varchar(20);not null;default:pending" json:"payment_status"`

	PaymentCustomerPhone *string `gorm:"column:payment_customer_phone;type:varchar(15)" json:"payment_customer_phone,omitempty"`
	PaymentTransactionID *string `gorm:"column:payment_transaction_id;type:varchar(100);uniqueIndex" json:"payment_transaction_id,omitempty"`

	PaymentResultCode        *int    `gorm:"column:payment_result_code" json:"payment_result_code,omitempty"`
	PaymentResultDescription *string `gorm:"column:payment_result_description;type:varchar(255)" json:"payment_result_description,omitempty"`

	// Raw payload snapshots, kept for debugging the simulated gateway
	PaymentRequestPayload  datatypes.JSON `gorm:"column:payment_request_payload" json:"-"`
	PaymentCallbackPayload datatypes.JSON `gorm:"column:payment_callback_payload" json:"-"`

	PaymentCreatedAt   time.Time  `gorm:"column:payment_created_at;autoCreateTime" json:"payment_created_at"`
	PaymentUpdatedAt   *time.Time `gorm:"column:payment_updated_at;autoUpdateTime" json:"payment_updated_at,omitempty"`
	PaymentInitiatedAt *time.Time `gorm:"column:payment_initiated_at" json:"payment_initiated_at,omitempty"`
	PaymentCompletedAt *time.Time `gorm:"column:payment_completed_at" json:"payment_completed_at,omitempty"`
}

func (PaymentModel) TableName() string { return "payments" }

func (p *PaymentModel) BeforeCreate(tx *gorm.DB) error {
	if p.PaymentID == uuid.Nil {
		p.PaymentID = uuid.New()
	}
	return nil
}
