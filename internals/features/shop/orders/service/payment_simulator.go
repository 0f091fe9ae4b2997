package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	orderModel "somabooks_backend/internals/features/shop/orders/model"
)

// PaymentOutcome is the synthesized result of a payment attempt.
type PaymentOutcome struct {
	PaymentStatus string
	OrderStatus   string
	TransactionID *string
	ResultCode    *int
	ResultDesc    *string
	CompletedAt   *time.Time
}

// SimulatePayment synthesizes an outcome per method: mpesa and card settle
// immediately, cash-on-delivery stays pending until delivery.
func SimulatePayment(method string) PaymentOutcome {
	now := time.Now()
	switch strings.ToLower(method) {
	case orderModel.PaymentMethodCOD:
		// Stays pending; the courier confirms collection through the
		// callback endpoint, keyed by this transaction id.
		txn := newTransactionID()
		return PaymentOutcome{
			PaymentStatus: orderModel.PaymentStatusPending,
			OrderStatus:   orderModel.OrderStatusPending,
			TransactionID: &txn,
		}
	default: // mpesa, card, anything else: immediate simulated success
		code := 0
		desc := "The service request is processed successfully."
		txn := newTransactionID()
		return PaymentOutcome{
			PaymentStatus: orderModel.PaymentStatusPaid,
			OrderStatus:   orderModel.OrderStatusProcessing,
			TransactionID: &txn,
			ResultCode:    &code,
			ResultDesc:    &desc,
			CompletedAt:   &now,
		}
	}
}

func newTransactionID() string {
	return "SIM-" + strings.ToUpper(uuid.New().String()[:12])
}

// Order/payment numbers: date + an 8-hex UUID discriminator, so two
// checkouts by the same user in the same second never collide.
func NewOrderNumber(at time.Time) string {
	return fmt.Sprintf("ORD-%s-%s", at.Format("20060102"), shortUUID())
}

func NewPaymentNumber(at time.Time) string {
	return fmt.Sprintf("PAY-%s-%s", at.Format("20060102"), shortUUID())
}

func shortUUID() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}
