package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "somabooks_backend/internals/helpers"

	"somabooks_backend/internals/features/shop/orders/dto"
	orderModel "somabooks_backend/internals/features/shop/orders/model"
	"somabooks_backend/internals/features/shop/orders/service"
)

var ErrOrderAlreadyCancelled = errors.New("cancelled orders cannot change status")

// AdminOrderController: back-office order management. Mounted behind the
// admin gate, so handlers never re-check the role.
type AdminOrderController struct {
	DB *gorm.DB
}

func NewAdminOrderController(db *gorm.DB) *AdminOrderController {
	return &AdminOrderController{DB: db}
}

/* =======================================================
   GET /api/admin/orders — all orders, filterable
======================================================= */

func (ctl *AdminOrderController) ListOrders(c *fiber.Ctx) error {
	var query dto.ListOrdersQuery
	if err := c.QueryParser(&query); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := helper.Validate(&query); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&orderModel.OrderModel{})
	if query.Status != nil {
		q = q.Where("order_status = ?", *query.Status)
	}
	if query.PaymentStatus != nil {
		q = q.Where("order_payment_status = ?", *query.PaymentStatus)
	}
	if query.Search != nil && *query.Search != "" {
		q = q.Where("order_number ILIKE ?", "%"+*query.Search+"%")
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
   PUT /api/admin/orders/:id — status & fulfilment edits
======================================================= */

func (ctl *AdminOrderController) UpdateOrder(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid order id")
	}

	var req dto.AdminUpdateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var order orderModel.OrderModel
	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return service.ErrOrderNotFound
			}
			return err
		}

		updates := map[string]any{}
		if req.TrackingNumber != nil {
			updates["order_tracking_number"] = *req.TrackingNumber
		}
		if req.AdminNote != nil {
			updates["order_admin_note"] = *req.AdminNote
		}

		if req.Status != nil && *req.Status != order.OrderStatus {
			newStatus := *req.Status
			if order.OrderStatus == orderModel.OrderStatusCancelled {
				// inventory was already reversed; cancelled is terminal
				return ErrOrderAlreadyCancelled
			}
			updates["order_status"] = newStatus

			switch newStatus {
			case orderModel.OrderStatusCancelled:
				// inventory reversal runs exactly once, on the transition
				if err := service.ReverseInventory(tx, order.OrderID); err != nil {
					return err
				}
				if order.OrderPaymentStatus == orderModel.PaymentStatusPaid {
					updates["order_payment_status"] = orderModel.PaymentStatusRefunded
				}
			case orderModel.OrderStatusDelivered:
				now := time.Now()
				updates["order_completed_at"] = now
				// COD settles on delivery
				if order.OrderPaymentStatus == orderModel.PaymentStatusPending {
					updates["order_payment_status"] = orderModel.PaymentStatusPaid
					updates["order_payment_date"] = now
				}
			case orderModel.OrderStatusRefunded:
				updates["order_payment_status"] = orderModel.PaymentStatusRefunded
			}
		}

		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&orderModel.OrderModel{}).
			Where("order_id = ?", order.OrderID).
			Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where("order_id = ?", order.OrderID).First(&order).Error
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			return helper.JsonError(c, fiber.StatusNotFound, "Order not found")
		case errors.Is(err, ErrOrderAlreadyCancelled):
			return helper.JsonError(c, fiber.StatusBadRequest, "Cancelled orders cannot change status")
		default:
			return err
		}
	}

	return helper.JsonUpdated(c, "Order updated successfully", dto.FromOrderModel(&order))
}
