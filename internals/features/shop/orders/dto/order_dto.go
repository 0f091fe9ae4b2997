package dto

import (
	"time"

	"github.com/google/uuid"

	orderModel "somabooks_backend/internals/features/shop/orders/model"
	"somabooks_backend/internals/features/shop/orders/service"
)

/* =========================================================
   1) REQUEST DTO
   ========================================================= */

type ShippingAddressRequest struct {
	FullName   string `json:"full_name"   validate:"required,max=100"`
	Phone      string `json:"phone"       validate:"required,max=20"`
	Email      string `json:"email"       validate:"required,email,max=150"`
	Street     string `json:"street"      validate:"required,max=200"`
	Town       string `json:"town"        validate:"required,max=50"`
	County     string `json:"county"      validate:"required,max=50"`
	PostalCode string `json:"postal_code" validate:"required,max=20"`
	Country    string `json:"country"     validate:"omitempty,max=50"`
}

type CheckoutRequest struct {
	ShippingAddress ShippingAddressRequest `json:"shipping_address" validate:"required"`

	PaymentMethod  string  `json:"payment_method"  validate:"required,oneof=mpesa cod card"`
	MpesaPhone     *string `json:"mpesa_phone"     validate:"omitempty,max=15"`
	ShippingMethod string  `json:"shipping_method" validate:"omitempty,oneof=standard express overnight"`
	Notes          *string `json:"notes"           validate:"omitempty,max=1000"`
}

func (r *CheckoutRequest) ToInput() service.CheckoutInput {
	return service.CheckoutInput{
		ShippingAddress: service.AddressInput{
			FullName:   r.ShippingAddress.FullName,
			Phone:      r.ShippingAddress.Phone,
			Email:      r.ShippingAddress.Email,
			Street:     r.ShippingAddress.Street,
			Town:       r.ShippingAddress.Town,
			County:     r.ShippingAddress.County,
			PostalCode: r.ShippingAddress.PostalCode,
			Country:    r.ShippingAddress.Country,
		},
		PaymentMethod:  r.PaymentMethod,
		MpesaPhone:     r.MpesaPhone,
		ShippingMethod: r.ShippingMethod,
		Notes:          r.Notes,
	}
}

// UpdateOrderRequest carries the single user-side order action.
type UpdateOrderRequest struct {
	Action string `json:"action" validate:"required,oneof=cancel"`
}

// AdminUpdateOrderRequest: back-office status/fulfilment edits.
type AdminUpdateOrderRequest struct {
	Status         *string `json:"status"          validate:"omitempty,oneof=pending processing on_hold shipped delivered cancelled refunded"`
	TrackingNumber *string `json:"tracking_number" validate:"omitempty,max=100"`
	AdminNote      *string `json:"admin_note"      validate:"omitempty,max=1000"`
}

type ListOrdersQuery struct {
	Status        *string `query:"status"         validate:"omitempty,oneof=pending processing on_hold shipped delivered cancelled refunded"`
	PaymentStatus *string `query:"payment_status" validate:"omitempty,oneof=pending paid failed refunded"`
	Search        *string `query:"search"         validate:"omitempty,max=100"`
}

// PaymentCallbackRequest mimics the simulated gateway's webhook body.
type PaymentCallbackRequest struct {
	TransactionID string `json:"transaction_id" validate:"required,max=100"`
	Status        string `json:"status"         validate:"required,oneof=completed failed"`
}

/* =========================================================
   2) RESPONSE DTO
   ========================================================= */

type AddressResponse struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Street     string `json:"street"`
	Town       string `json:"town"`
	County     string `json:"county"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

func FromAddressModel(m *orderModel.AddressModel) *AddressResponse {
	if m == nil {
		return nil
	}
	return &AddressResponse{
		FullName:   m.AddressFullName,
		Phone:      m.AddressPhone,
		Email:      m.AddressEmail,
		Street:     m.AddressStreet,
		Town:       m.AddressTown,
		County:     m.AddressCounty,
		PostalCode: m.AddressPostalCode,
		Country:    m.AddressCountry,
	}
}

type OrderItemResponse struct {
	OrderItemID uuid.UUID `json:"order_item_id"`
	BookID      uuid.UUID `json:"book_id"`
	BookTitle   string    `json:"book_title"`
	BookAuthor  string    `json:"book_author"`
	BookISBN    *string   `json:"book_isbn,omitempty"`
	BookCover   *string   `json:"book_cover,omitempty"`
	BookFormat  string    `json:"book_format"`
	UnitPrice   float64   `json:"unit_price"`
	Quantity    int       `json:"quantity"`
	TotalPrice  float64   `json:"total_price"`
}

func FromOrderItemModel(m orderModel.OrderItemModel) OrderItemResponse {
	return OrderItemResponse{
		OrderItemID: m.OrderItemID,
		BookID:      m.OrderItemBookID,
		BookTitle:   m.OrderItemBookTitle,
		BookAuthor:  m.OrderItemBookAuthor,
		BookISBN:    m.OrderItemBookISBN,
		BookCover:   m.OrderItemBookCover,
		BookFormat:  m.OrderItemBookFormat,
		UnitPrice:   m.OrderItemUnitPrice,
		Quantity:    m.OrderItemQuantity,
		TotalPrice:  m.OrderItemTotalPrice,
	}
}

type OrderResponse struct {
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	UserID      uuid.UUID `json:"user_id"`

	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`

	Subtotal       float64 `json:"subtotal"`
	TaxAmount      float64 `json:"tax_amount"`
	ShippingAmount float64 `json:"shipping_amount"`
	DiscountAmount float64 `json:"discount_amount"`
	TotalAmount    float64 `json:"total_amount"`
	Currency       string  `json:"currency"`
	ItemCount      int     `json:"item_count"`

	PaymentMethod *string    `json:"payment_method,omitempty"`
	TransactionID *string    `json:"transaction_id,omitempty"`
	PaymentDate   *time.Time `json:"payment_date,omitempty"`

	ShippingMethod string  `json:"shipping_method"`
	TrackingNumber *string `json:"tracking_number,omitempty"`

	CustomerNote *string `json:"customer_note,omitempty"`
	AdminNote    *string `json:"admin_note,omitempty"`

	ShippingAddress *AddressResponse    `json:"shipping_address,omitempty"`
	Items           []OrderItemResponse `json:"items,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func FromOrderModel(m *orderModel.OrderModel) *OrderResponse {
	if m == nil {
		return nil
	}
	return &OrderResponse{
		OrderID:        m.OrderID,
		OrderNumber:    m.OrderNumber,
		UserID:         m.OrderUserID,
		Status:         m.OrderStatus,
		PaymentStatus:  m.OrderPaymentStatus,
		Subtotal:       m.OrderSubtotal,
		TaxAmount:      m.OrderTaxAmount,
		ShippingAmount: m.OrderShippingAmount,
		DiscountAmount: m.OrderDiscountAmount,
		TotalAmount:    m.OrderTotalAmount,
		Currency:       m.OrderCurrency,
		ItemCount:      m.OrderItemCount,
		PaymentMethod:  m.OrderPaymentMethod,
		TransactionID:  m.OrderTransactionID,
		PaymentDate:    m.OrderPaymentDate,
		ShippingMethod: m.OrderShippingMethod,
		TrackingNumber: m.OrderTrackingNumber,
		CustomerNote:   m.OrderCustomerNote,
		AdminNote:      m.OrderAdminNote,
		CreatedAt:      m.OrderCreatedAt,
		UpdatedAt:      m.OrderUpdatedAt,
		CompletedAt:    m.OrderCompletedAt,
	}
}

// FromOrderModelFull attaches the item snapshots and shipping address.
func FromOrderModelFull(m *orderModel.OrderModel, items []orderModel.OrderItemModel, addr *orderModel.AddressModel) *OrderResponse {
	resp := FromOrderModel(m)
	if resp == nil {
		return nil
	}
	resp.ShippingAddress = FromAddressModel(addr)
	resp.Items = make([]OrderItemResponse, 0, len(items))
	for _, it := range items {
		resp.Items = append(resp.Items, FromOrderItemModel(it))
	}
	return resp
}

type PaymentResponse struct {
	PaymentID     uuid.UUID  `json:"payment_id"`
	PaymentNumber string     `json:"payment_number"`
	OrderID       uuid.UUID  `json:"order_id"`
	Amount        float64    `json:"amount"`
	Currency      string     `json:"currency"`
	Method        string     `json:"method"`
	Status        string     `json:"status"`
	TransactionID *string    `json:"transaction_id,omitempty"`
	ResultCode    *int       `json:"result_code,omitempty"`
	ResultDesc    *string    `json:"result_description,omitempty"`
	InitiatedAt   *time.Time `json:"initiated_at,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

func FromPaymentModel(m *orderModel.PaymentModel) *PaymentResponse {
	if m == nil {
		return nil
	}
	return &PaymentResponse{
		PaymentID:     m.PaymentID,
		PaymentNumber: m.PaymentNumber,
		OrderID:       m.PaymentOrderID,
		Amount:        m.PaymentAmount,
		Currency:      m.PaymentCurrency,
		Method:        m.PaymentMethod,
		Status:        m.PaymentStatus,
		TransactionID: m.PaymentTransactionID,
		ResultCode:    m.PaymentResultCode,
		ResultDesc:    m.PaymentResultDescription,
		InitiatedAt:   m.PaymentInitiatedAt,
		CompletedAt:   m.PaymentCompletedAt,
	}
}
