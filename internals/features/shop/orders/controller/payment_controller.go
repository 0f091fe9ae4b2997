package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "somabooks_backend/internals/helpers"

	"somabooks_backend/internals/features/shop/orders/dto"
	"somabooks_backend/internals/features/shop/orders/service"
)

// PaymentController handles the simulated gateway webhook. The endpoint is
// unauthenticated; a real integration would verify a gateway signature here.
type PaymentController struct {
	DB       *gorm.DB
	Checkout *service.CheckoutService
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{
		DB:       db,
		Checkout: service.NewCheckoutService(db, service.DefaultRatePolicy()),
	}
}

/* =======================================================
   POST /api/payments/callback
======================================================= */

func (ctl *PaymentController) HandleCallback(c *fiber.Ctx) error {
	var req dto.PaymentCallbackRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	payment, err := ctl.Checkout.ApplyPaymentCallback(req.TransactionID, req.Status, c.Body())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Payment not found")
		case errors.Is(err, service.ErrPaymentNotPending):
			return helper.JsonError(c, fiber.StatusBadRequest, "Payment already settled")
		default:
			return err
		}
	}

	return helper.JsonOK(c, "Payment callback processed", dto.FromPaymentModel(payment))
}
