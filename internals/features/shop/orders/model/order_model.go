package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order status vocabulary
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusOnHold     = "on_hold"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
	OrderStatusRefunded   = "refunded"
)

// Payment methods
const (
	PaymentMethodMpesa = "mpesa"
	PaymentMethodCOD   = "cod"
	PaymentMethodCard  = "card"
)

// Shipping methods
const (
	ShippingMethodStandard  = "standard"
	ShippingMethodExpress   = "express"
	ShippingMethodOvernight = "overnight"
)

type OrderModel struct {
	OrderID uuid.UUID `gorm:"column:order_id;type:uuid;primaryKey" json:"order_id"`

	OrderNumber string    `gorm:"column:order_number;type:varchar(50);uniqueIndex;not null" json:"order_number"`
	OrderUserID uuid.UUID `gorm:"column:order_user_id;type:uuid;not null;index" json:"order_user_id"`

	OrderStatus        string `gorm:"column:order_status;type:varchar(20);not null;default:pending" json:"order_status"`
	OrderPaymentStatus string `gorm:"column:order_payment_status;type:varchar(20);not null;default:pending" json:"order_payment_status"`

	// Money breakdown (KES)
	OrderSubtotal       float64 `gorm:"column:order_subtotal;type:numeric(10,2);not null;default:0" json:"order_subtotal"`
	OrderTaxAmount      float64 `gorm:"column:order_tax_amount;type:numeric(10,2);not null;default:0" json:"order_tax_amount"`
	OrderShippingAmount float64 `gorm:"column:order_shipping_amount;type:numeric(10,2);not null;default:0" json:"order_shipping_amount"`
	OrderDiscountAmount float64 `gorm:"column:order_discount_amount;type:numeric(10,2);not null;default:0" json:"order_discount_amount"`
	OrderTotalAmount    float64 `gorm:"column:order_total_amount;type:numeric(10,2);not null;default:0" json:"order_total_amount"`
	OrderCurrency       string  `gorm:"column:order_currency;type:varchar(3);not null;default:KES" json:"order_currency"`

	OrderItemCount int `gorm:"column:order_item_count;not null;default:0" json:"order_item_count"`

	// Payment information
	OrderPaymentMethod *string    `gorm:"column:order_payment_method;type:varchar(20)" json:"order_payment_method,omitempty"`
	OrderTransactionID *string    `gorm:"column:order_transaction_id;type:varchar(100)" json:"order_transaction_id,omitempty"`
	OrderPaymentDate   *time.Time `gorm:"column:order_payment_date" json:"order_payment_date,omitempty"`

	// Shipping information
	OrderShippingMethod string  `gorm:"column:order_shipping_method;type:varchar(20);not null;default:standard" json:"order_shipping_method"`
	OrderTrackingNumber *string `gorm:"column:order_tracking_number;type:varchar(100)" json:"order_tracking_number,omitempty"`

	// Notes
	OrderCustomerNote *string `gorm:"column:order_customer_note;type:text" json:"order_customer_note,omitempty"`
	OrderAdminNote    *string `gorm:"column:order_admin_note;type:text" json:"order_admin_note,omitempty"`

	// Address snapshots (FKs, never mutated post-creation)
	OrderShippingAddressID uuid.UUID `gorm:"column:order_shipping_address_id;type:uuid;not null" json:"order_shipping_address_id"`
	OrderBillingAddressID  uuid.UUID `gorm:"column:order_billing_address_id;type:uuid;not null" json:"order_billing_address_id"`

	OrderCreatedAt   time.Time  `gorm:"column:order_created_at;autoCreateTime" json:"order_created_at"`
	OrderUpdatedAt   *time.Time `gorm:"column:order_updated_at;autoUpdateTime" json:"order_updated_at,omitempty"`
	OrderCompletedAt *time.Time `gorm:"column:order_completed_at" json:"order_completed_at,omitempty"`
}

func (OrderModel) TableName() string { return "orders" }

func (o *OrderModel) BeforeCreate(tx *gorm.DB) error {
	if o.OrderID == uuid.Nil {
		o.OrderID = uuid.New()
	}
	return nil
}

// CanCancel: user-initiated cancel is only legal before shipment.
func (o *OrderModel) CanCancel() bool {
	return o.OrderStatus == OrderStatusPending || o.OrderStatus == OrderStatusProcessing
}

// OrderItemModel is an immutable purchase-time snapshot of a book line.
// Catalog edits never alter it.
type OrderItemModel struct {
	OrderItemID uuid.UUID `gorm:"column:order_item_id;type:uuid;primaryKey" json:"order_item_id"`

	OrderItemOrderID uuid.UUID `gorm:"column:order_item_order_id;type:uuid;not null;index" json:"order_item_order_id"`
	OrderItemBookID  uuid.UUID `gorm:"column:order_item_book_id;type:uuid;not null;index" json:"order_item_book_id"`

	// Snapshot fields (copied, not referenced)
	OrderItemBookTitle  string  `gorm:"column:order_item_book_title;type:varchar(255);not null" json:"order_item_book_title"`
	OrderItemBookAuthor string  `gorm:"column:order_item_book_author;type:varchar(150);not null" json:"order_item_book_author"`
	OrderItemBookISBN   *string `gorm:"column:order_item_book_isbn;type:varchar(13)" json:"order_item_book_isbn,omitempty"`
	OrderItemBookCover  *string `gorm:"column:order_item_book_cover;type:varchar(500)" json:"order_item_book_cover,omitempty"`
	OrderItemBookFormat string  `gorm:"column:order_item_book_format;type:varchar(50);not null" json:"order_item_book_format"`

	OrderItemUnitPrice  float64 `gorm:"column:order_item_unit_price;type:numeric(10,2);not null" json:"order_item_unit_price"`
	OrderItemQuantity   int     `gorm:"column:order_item_quantity;not null;default:1" json:"order_item_quantity"`
	OrderItemTotalPrice float64 `gorm:"column:order_item_total_price;type:numeric(10,2);not null" json:"order_item_total_price"`

	OrderItemCreatedAt time.Time `gorm:"column:order_item_created_at;autoCreateTime" json:"order_item_created_at"`
}

func (OrderItemModel) TableName() string { return "order_items" }

func (oi *OrderItemModel) BeforeCreate(tx *gorm.DB) error {
	if oi.OrderItemID == uuid.Nil {
		oi.OrderItemID = uuid.New()
	}
	return nil
}

// IsPhysical mirrors the book-format rule on the snapshot, so cancellation
// reversal never needs the live book's (possibly edited) format.
func (oi *OrderItemModel) IsPhysical() bool {
	return oi.OrderItemBookFormat != "eBook"
}
