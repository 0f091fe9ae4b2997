package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderModel "somabooks_backend/internals/features/shop/orders/model"
)

func TestSimulatePaymentMpesa(t *testing.T) {
	out := SimulatePayment(orderModel.PaymentMethodMpesa)

	assert.Equal(t, orderModel.PaymentStatusPaid, out.PaymentStatus)
	assert.Equal(t, orderModel.OrderStatusProcessing, out.OrderStatus)
	require.NotNil(t, out.TransactionID)
	assert.True(t, len(*out.TransactionID) > 4 && (*out.TransactionID)[:4] == "SIM-")
	require.NotNil(t, out.ResultCode)
	assert.Equal(t, 0, *out.ResultCode)
	assert.NotNil(t, out.CompletedAt)
}

func TestSimulatePaymentCOD(t *testing.T) {
	out := SimulatePayment(orderModel.PaymentMethodCOD)

	assert.Equal(t, orderModel.PaymentStatusPending, out.PaymentStatus)
	assert.Equal(t, orderModel.OrderStatusPending, out.OrderStatus)
	assert.NotNil(t, out.TransactionID, "pending payments still need a callback key")
	assert.Nil(t, out.ResultCode)
	assert.Nil(t, out.CompletedAt)
}

func TestSimulatePaymentMethodCaseInsensitive(t *testing.T) {
	out := SimulatePayment("COD")
	assert.Equal(t, orderModel.PaymentStatusPending, out.PaymentStatus)
}

func TestNumberGeneratorsEmbedDate(t *testing.T) {
	at := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	assert.Regexp(t, `^ORD-20240315-[0-9A-F]{8}$`, NewOrderNumber(at))
	assert.Regexp(t, `^PAY-20240315-[0-9A-F]{8}$`, NewPaymentNumber(at))
}
