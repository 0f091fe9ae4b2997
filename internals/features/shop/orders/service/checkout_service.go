package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	bookModel "somabooks_backend/internals/features/catalog/books/model"
	cartModel "somabooks_backend/internals/features/shop/cart/model"
	orderModel "somabooks_backend/internals/features/shop/orders/model"
)

/*
	========================================================
	  Checkout service (cart → order + inventory settlement)
========================================================
*/

type CheckoutService struct {
	DB    *gorm.DB
	Rates RatePolicy
}

func NewCheckoutService(db *gorm.DB, rates RatePolicy) *CheckoutService {
	if rates == nil {
		rates = DefaultRatePolicy()
	}
	return &CheckoutService{DB: db, Rates: rates}
}

type AddressInput struct {
	FullName   string
	Phone      string
	Email      string
	Street     string
	Town       string
	County     string
	PostalCode string
	Country    string
}

type CheckoutInput struct {
	ShippingAddress AddressInput
	PaymentMethod   string
	MpesaPhone      *string
	ShippingMethod  string
	Notes           *string
}

// CheckoutResult bundles what the handler serializes after a commit.
type CheckoutResult struct {
	Order   *orderModel.OrderModel
	Items   []orderModel.OrderItemModel
	Payment *orderModel.PaymentModel
}

type cartLine struct {
	Item cartModel.CartItemModel
	Book bookModel.BookModel
}

// Checkout runs the whole workflow in one transaction. Any failure rolls
// everything back: no order, item snapshot, stock mutation, payment or
// cart deactivation survives partially.
func (s *CheckoutService) Checkout(userID uuid.UUID, in CheckoutInput) (*CheckoutResult, error) {
	var result *CheckoutResult

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// 1) active cart + all-or-nothing line validation
		var cart cartModel.CartModel
		if err := tx.Where("cart_user_id = ? AND cart_is_active", userID).
			First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCartEmpty
			}
			return err
		}

		lines, err := validateCartLines(tx, cart.CartID)
		if err != nil {
			return err
		}

		subtotal := 0.0
		itemCount := 0
		for _, ln := range lines {
			subtotal += ln.Book.CurrentPrice() * float64(ln.Item.CartItemQuantity)
			itemCount += ln.Item.CartItemQuantity
		}
		subtotal = round2(subtotal)

		// 2) fresh address snapshot, never deduplicated
		address := orderModel.AddressModel{
			AddressUserID:     userID,
			AddressFullName:   in.ShippingAddress.FullName,
			AddressPhone:      in.ShippingAddress.Phone,
			AddressEmail:      in.ShippingAddress.Email,
			AddressStreet:     in.ShippingAddress.Street,
			AddressTown:       in.ShippingAddress.Town,
			AddressCounty:     in.ShippingAddress.County,
			AddressPostalCode: in.ShippingAddress.PostalCode,
			AddressCountry:    in.ShippingAddress.Country,
		}
		if address.AddressCountry == "" {
			address.AddressCountry = "Kenya"
		}
		if err := tx.Create(&address).Error; err != nil {
			return err
		}

		// 3) money: shipping + tax are computed here, not taken from the client
		shippingMethod := in.ShippingMethod
		if shippingMethod == "" {
			shippingMethod = orderModel.ShippingMethodStandard
		}
		shipping := round2(s.Rates.ShippingFor(shippingMethod, subtotal))
		tax := round2(s.Rates.TaxFor(subtotal))
		total := round2(subtotal + shipping + tax)

		// 4)–5) order row
		now := time.Now()
		method := in.PaymentMethod
		order := orderModel.OrderModel{
			OrderNumber:            NewOrderNumber(now),
			OrderUserID:            userID,
			OrderStatus:            orderModel.OrderStatusPending,
			OrderPaymentStatus:     orderModel.PaymentStatusPending,
			OrderSubtotal:          subtotal,
			OrderTaxAmount:         tax,
			OrderShippingAmount:    shipping,
			OrderTotalAmount:       total,
			OrderCurrency:          "KES",
			OrderItemCount:         itemCount,
			OrderPaymentMethod:     &method,
			OrderShippingMethod:    shippingMethod,
			OrderCustomerNote:      in.Notes,
			OrderShippingAddressID: address.AddressID,
			OrderBillingAddressID:  address.AddressID,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// 6) per line: snapshot, settle inventory, drop the cart row
		items := make([]orderModel.OrderItemModel, 0, len(lines))
		for _, ln := range lines {
			qty := ln.Item.CartItemQuantity
			unit := ln.Book.CurrentPrice()

			item := orderModel.OrderItemModel{
				OrderItemOrderID:    order.OrderID,
				OrderItemBookID:     ln.Book.BookID,
				OrderItemBookTitle:  ln.Book.BookTitle,
				OrderItemBookAuthor: ln.Book.BookAuthor,
				OrderItemBookISBN:   strPtrOrNil(ln.Book.BookISBN13),
				OrderItemBookCover:  ln.Book.BookCoverImageURL,
				OrderItemBookFormat: ln.Book.BookFormat,
				OrderItemUnitPrice:  unit,
				OrderItemQuantity:   qty,
				OrderItemTotalPrice: round2(unit * float64(qty)),
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			items = append(items, item)

			if err := settleInventory(tx, &ln.Book, qty, unit); err != nil {
				return err
			}

			if err := tx.Delete(&cartModel.CartItemModel{}, "cart_item_id = ?", ln.Item.CartItemID).Error; err != nil {
				return err
			}
		}

		// 7) deactivate the cart; a new one is lazily created on next use
		if err := tx.Model(&cartModel.CartModel{}).
			Where("cart_id = ?", cart.CartID).
			Update("cart_is_active", false).Error; err != nil {
			return err
		}

		// 8)–9) simulated payment outcome + payment row
		outcome := SimulatePayment(method)
		requestPayload, _ := paymentRequestSnapshot(order.OrderNumber, method, total, in.MpesaPhone)
		payment := orderModel.PaymentModel{
			PaymentOrderID:           order.OrderID,
			PaymentNumber:            NewPaymentNumber(now),
			PaymentAmount:            total,
			PaymentCurrency:          "KES",
			PaymentMethod:            method,
			PaymentStatus:            outcome.PaymentStatus,
			PaymentCustomerPhone:     in.MpesaPhone,
			PaymentTransactionID:     outcome.TransactionID,
			PaymentResultCode:        outcome.ResultCode,
			PaymentResultDescription: outcome.ResultDesc,
			PaymentRequestPayload:    requestPayload,
			PaymentInitiatedAt:       &now,
			PaymentCompletedAt:       outcome.CompletedAt,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		orderUpdates := map[string]any{
			"order_status":         outcome.OrderStatus,
			"order_payment_status": outcome.PaymentStatus,
		}
		if outcome.TransactionID != nil {
			orderUpdates["order_transaction_id"] = *outcome.TransactionID
		}
		if outcome.PaymentStatus == orderModel.PaymentStatusPaid {
			orderUpdates["order_payment_date"] = now
		}
		if err := tx.Model(&orderModel.OrderModel{}).
			Where("order_id = ?", order.OrderID).
			Updates(orderUpdates).Error; err != nil {
			return err
		}
		order.OrderStatus = outcome.OrderStatus
		order.OrderPaymentStatus = outcome.PaymentStatus
		order.OrderTransactionID = outcome.TransactionID

		result = &CheckoutResult{Order: &order, Items: items, Payment: &payment}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// validateCartLines is the read-only all-or-nothing pre-check: every line
// must reference an existing, available book with enough stock (or
// backorder capacity). The commit step re-checks stock atomically.
func validateCartLines(tx *gorm.DB, cartID uuid.UUID) ([]cartLine, error) {
	var cartItems []cartModel.CartItemModel
	if err := tx.Where("cart_item_cart_id = ?", cartID).
		Order("cart_item_created_at ASC").
		Find(&cartItems).Error; err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrCartEmpty
	}

	lines := make([]cartLine, 0, len(cartItems))
	for _, ci := range cartItems {
		var book bookModel.BookModel
		if err := tx.Where("book_id = ?", ci.CartItemBookID).First(&book).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &BookUnavailableError{Title: "Unknown", Reason: "is no longer available"}
			}
			return nil, err
		}
		if !book.BookIsAvailable {
			return nil, newUnavailable(book.BookTitle)
		}
		if !book.CanFulfill(ci.CartItemQuantity) {
			return nil, newInsufficientStock(book.BookTitle)
		}
		lines = append(lines, cartLine{Item: ci, Book: book})
	}
	return lines, nil
}

// settleInventory mutates the book counters for one purchased line.
// Physical formats use a single conditional decrement and trust the
// affected-row count, not the earlier read, so concurrent checkouts can
// never oversell. E-books only bump the sales counters.
func settleInventory(tx *gorm.DB, book *bookModel.BookModel, qty int, unit float64) error {
	revenue := round2(unit * float64(qty))

	if book.IsPhysical() {
		res := tx.Model(&bookModel.BookModel{}).
			Where(
				"book_id = ? AND (book_stock_quantity >= ? OR (book_allow_backorders AND book_stock_quantity - ? >= -book_max_backorders))",
				book.BookID, qty, qty,
			).
			Updates(map[string]any{
				"book_stock_quantity": gorm.Expr("book_stock_quantity - ?", qty),
				"book_total_sold":     gorm.Expr("book_total_sold + ?", qty),
				"book_total_revenue":  gorm.Expr("book_total_revenue + ?", revenue),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return newInsufficientStock(book.BookTitle)
		}
	} else {
		if err := tx.Model(&bookModel.BookModel{}).
			Where("book_id = ?", book.BookID).
			Updates(map[string]any{
				"book_total_sold":    gorm.Expr("book_total_sold + ?", qty),
				"book_total_revenue": gorm.Expr("book_total_revenue + ?", revenue),
			}).Error; err != nil {
			return err
		}
	}

	// bestseller flag once 100 copies sold
	return tx.Model(&bookModel.BookModel{}).
		Where("book_id = ? AND book_total_sold >= 100 AND NOT book_is_bestseller", book.BookID).
		Update("book_is_bestseller", true).Error
}

/*
	========================================================
	  Cancellation (uniform full reversal)
========================================================
*/

// CancelOrder flips an order to cancelled and reverses its inventory
// effects: stock restored for physical items, sales counters reversed for
// every item (clamped at zero). Legal only from pending/processing unless
// asAdmin is set, in which case the caller already passed the admin gate
// but the same state check still applies.
func (s *CheckoutService) CancelOrder(orderID, userID uuid.UUID, asAdmin bool) (*orderModel.OrderModel, error) {
	var order orderModel.OrderModel

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if !asAdmin && order.OrderUserID != userID {
			return ErrOrderNotFound // do not leak other users' orders
		}
		if !order.CanCancel() {
			return ErrOrderNotCancellable
		}

		if err := ReverseInventory(tx, order.OrderID); err != nil {
			return err
		}

		updates := map[string]any{"order_status": orderModel.OrderStatusCancelled}
		if order.OrderPaymentStatus == orderModel.PaymentStatusPaid {
			updates["order_payment_status"] = orderModel.PaymentStatusRefunded
		}
		if err := tx.Model(&orderModel.OrderModel{}).
			Where("order_id = ?", order.OrderID).
			Updates(updates).Error; err != nil {
			return err
		}
		order.OrderStatus = orderModel.OrderStatusCancelled
		if order.OrderPaymentStatus == orderModel.PaymentStatusPaid {
			order.OrderPaymentStatus = orderModel.PaymentStatusRefunded
			if err := tx.Model(&orderModel.PaymentModel{}).
				Where("payment_order_id = ? AND payment_status = ?", order.OrderID, orderModel.PaymentStatusPaid).
				Update("payment_status", orderModel.PaymentStatusRefunded).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ReverseInventory undoes the inventory effects of every item of an
// order. Shared by user cancellation and the admin cancelled transition.
func ReverseInventory(tx *gorm.DB, orderID uuid.UUID) error {
	var items []orderModel.OrderItemModel
	if err := tx.Where("order_item_order_id = ?", orderID).Find(&items).Error; err != nil {
		return err
	}
	for _, item := range items {
		var book bookModel.BookModel
		if err := tx.Where("book_id = ?", item.OrderItemBookID).First(&book).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue // book deleted since purchase; nothing to restore
			}
			return err
		}

		updates := map[string]any{}
		if item.IsPhysical() {
			updates["book_stock_quantity"] = gorm.Expr("book_stock_quantity + ?", item.OrderItemQuantity)
		}
		newSold := book.BookTotalSold - item.OrderItemQuantity
		if newSold < 0 {
			newSold = 0
		}
		newRevenue := round2(book.BookTotalRevenue - item.OrderItemTotalPrice)
		if newRevenue < 0 {
			newRevenue = 0
		}
		updates["book_total_sold"] = newSold
		updates["book_total_revenue"] = newRevenue

		if err := tx.Model(&bookModel.BookModel{}).
			Where("book_id = ?", book.BookID).
			Updates(updates).Error; err != nil {
			return err
		}
	}
	return nil
}

/*
	========================================================
	  Simulated payment callback
========================================================
*/

// ApplyPaymentCallback drives the simulated gateway callback:
// payment pending → paid|failed; success cascades the order
// pending → processing.
func (s *CheckoutService) ApplyPaymentCallback(transactionID, status string, payload []byte) (*orderModel.PaymentModel, error) {
	var payment orderModel.PaymentModel

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("payment_transaction_id = ?", transactionID).
			First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}
		if payment.PaymentStatus != orderModel.PaymentStatusPending {
			return ErrPaymentNotPending
		}

		now := time.Now()
		newStatus := orderModel.PaymentStatusFailed
		code := 1
		desc := "The transaction failed."
		if status == "completed" || status == orderModel.PaymentStatusPaid {
			newStatus = orderModel.PaymentStatusPaid
			code = 0
			desc = "The service request is processed successfully."
		}

		updates := map[string]any{
			"payment_status":             newStatus,
			"payment_result_code":        code,
			"payment_result_description": desc,
			"payment_completed_at":       now,
		}
		if len(payload) > 0 {
			updates["payment_callback_payload"] = datatypes.JSON(payload)
		}
		if err := tx.Model(&orderModel.PaymentModel{}).
			Where("payment_id = ?", payment.PaymentID).
			Updates(updates).Error; err != nil {
			return err
		}
		payment.PaymentStatus = newStatus
		payment.PaymentResultCode = &code
		payment.PaymentResultDescription = &desc
		payment.PaymentCompletedAt = &now

		orderUpdates := map[string]any{"order_payment_status": newStatus}
		if newStatus == orderModel.PaymentStatusPaid {
			orderUpdates["order_payment_date"] = now
		}
		if err := tx.Model(&orderModel.OrderModel{}).
			Where("order_id = ?", payment.PaymentOrderID).
			Updates(orderUpdates).Error; err != nil {
			return err
		}
		if newStatus == orderModel.PaymentStatusPaid {
			if err := tx.Model(&orderModel.OrderModel{}).
				Where("order_id = ? AND order_status = ?", payment.PaymentOrderID, orderModel.OrderStatusPending).
				Update("order_status", orderModel.OrderStatusProcessing).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

/* =============== small helpers =============== */

func strPtrOrNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func paymentRequestSnapshot(orderNumber, method string, amount float64, phone *string) (datatypes.JSON, error) {
	p := ""
	if phone != nil {
		p = *phone
	}
	raw := fmt.Sprintf(
		`{"order_number":%q,"method":%q,"amount":%.2f,"phone":%q}`,
		orderNumber, method, amount, p,
	)
	return datatypes.JSON([]byte(raw)), nil
}
