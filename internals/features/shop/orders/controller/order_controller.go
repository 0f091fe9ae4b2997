package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "somabooks_backend/internals/helpers"

	"somabooks_backend/internals/features/shop/orders/dto"
	orderModel "somabooks_backend/internals/features/shop/orders/model"
	"somabooks_backend/internals/features/shop/orders/service"
)

type OrderController struct {
	DB       *gorm.DB
	Checkout *service.CheckoutService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{
		DB:       db,
		Checkout: service.NewCheckoutService(db, service.DefaultRatePolicy()),
	}
}

/* =======================================================
   POST /api/orders — checkout the active cart
======================================================= */

func (ctl *OrderController) CreateOrder(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}
	if req.PaymentMethod == orderModel.PaymentMethodMpesa &&
		(req.MpesaPhone == nil || *req.MpesaPhone == "") {
		return helper.JsonValidationError(c, map[string][]string{
			"mpesa_phone": {"mpesa_phone is required for M-Pesa payments"},
		})
	}

	result, err := ctl.Checkout.Checkout(userID, req.ToInput())
	if err != nil {
		return mapCheckoutError(c, err)
	}

	resp := dto.FromOrderModelFull(result.Order, result.Items, nil)
	return helper.JsonCreated(c, "Order placed successfully", fiber.Map{
		"order":   resp,
		"payment": dto.FromPaymentModel(result.Payment),
	})
}

func mapCheckoutError(c *fiber.Ctx, err error) error {
	var unavailable *service.BookUnavailableError
	switch {
	case errors.Is(err, service.ErrCartEmpty):
		return helper.JsonError(c, fiber.StatusBadRequest, "Your cart is empty")
	case errors.As(err, &unavailable):
		return helper.JsonError(c, fiber.StatusBadRequest, unavailable.Error())
	default:
		return err
	}
}

/* =======================================================
   GET /api/orders — my order history (newest first)
======================================================= */

func (ctl *OrderController) ListMyOrders(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	paging := helper.ResolvePaging(c, 10, 50)

	q := ctl.DB.Model(&orderModel.OrderModel{}).
		Where("order_user_id = ?", userID)
	if status := c.Query("status"); status != "" {
		q = q.Where("order_status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count orders")
	}

	var orders []orderModel.OrderModel
	if err := q.Order("order_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&orders).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch orders")
	}

	resp := make([]*dto.OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, dto.FromOrderModel(&orders[i]))
	}
	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Orders fetched successfully", resp, pagination)
}

/* =======================================================
   GET /api/orders/:id — detail, owner or admin only
======================================================= */

func (ctl *OrderController) GetOrder(c *fiber.Ctx) error {
	order, err := ctl.findAuthorizedOrder(c)
	if err != nil {
		return err
	}

	var items []orderModel.OrderItemModel
	if err := ctl.DB.
		Where("order_item_order_id = ?", order.OrderID).
		Order("order_item_created_at ASC").
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch order items")
	}

	var addr orderModel.AddressModel
	addrPtr := &addr
	if err := ctl.DB.
		Where("address_id = ?", order.OrderShippingAddressID).
		First(&addr).Error; err != nil {
		addrPtr = nil
	}

	return helper.JsonOK(c, "Order fetched successfully",
		dto.FromOrderModelFull(order, items, addrPtr))
}

/* =======================================================
   PUT /api/orders/:id — user actions (cancel)
======================================================= */

func (ctl *OrderController) UpdateOrder(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid order id")
	}

	var req dto.UpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	order, err := ctl.Checkout.CancelOrder(orderID, userID, helper.IsAdminRole(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Order not found")
		case errors.Is(err, service.ErrOrderNotCancellable):
			return helper.JsonError(c, fiber.StatusBadRequest, "Order can no longer be cancelled")
		default:
			return err
		}
	}

	return helper.JsonUpdated(c, "Order cancelled successfully", dto.FromOrderModel(order))
}

/* =============== helpers =============== */

func (ctl *OrderController) findAuthorizedOrder(c *fiber.Ctx) (*orderModel.OrderModel, error) {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "Invalid order id")
	}

	var order orderModel.OrderModel
	if err := ctl.DB.Where("order_id = ?", orderID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Order not found")
		}
		return nil, err
	}
	if order.OrderUserID != userID && !helper.IsAdminRole(c) {
		// hide existence from non-owners
		return nil, helper.JsonError(c, fiber.StatusNotFound, "Order not found")
	}
	return &order, nil
}
