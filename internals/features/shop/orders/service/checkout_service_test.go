package service

import (
	"regexp"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	bookModel "somabooks_backend/internals/features/catalog/books/model"
	cartModel "somabooks_backend/internals/features/shop/cart/model"
	orderModel "somabooks_backend/internals/features/shop/orders/model"
	userModel "somabooks_backend/internals/features/users/user/model"
)

// fixedRates pins shipping and tax so totals are exact in assertions.
type fixedRates struct {
	shipping float64
	tax      float64
}

func (f fixedRates) ShippingFor(string, float64) float64 { return f.shipping }
func (f fixedRates) TaxFor(float64) float64              { return f.tax }

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&bookModel.BookModel{},
		&cartModel.CartModel{},
		&cartModel.CartItemModel{},
		&orderModel.AddressModel{},
		&orderModel.OrderModel{},
		&orderModel.OrderItemModel{},
		&orderModel.PaymentModel{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	u := userModel.UserModel{
		UserFirstName:  "Wanjiku",
		UserSecondName: "Kamau",
		UserEmail:      "wanjiku@example.com",
		UserPassword:   "x",
		UserRole:       "user",
		UserIsActive:   true,
	}
	require.NoError(t, db.Create(&u).Error)
	return u.UserID
}

func seedBook(t *testing.T, db *gorm.DB, title string, price float64, sale *float64, format string, stock int) *bookModel.BookModel {
	t.Helper()
	b := bookModel.BookModel{
		BookTitle:            title,
		BookAuthor:           "Test Author",
		BookSlug:             title + "-" + uuid.New().String()[:8],
		BookISBN13:           uuid.New().String()[:13],
		BookShortDescription: "short",
		BookDescription:      "long",
		BookPublisherName:    "Test Press",
		BookPageCount:        100,
		BookFormat:           format,
		BookListPrice:        price,
		BookSalePrice:        sale,
		BookSKU:              "SKU-" + uuid.New().String()[:8],
		BookStockQuantity:    stock,
		BookIsAvailable:      true,
		BookStatus:           bookModel.BookStatusPublished,
	}
	require.NoError(t, db.Create(&b).Error)
	return &b
}

func seedCart(t *testing.T, db *gorm.DB, userID uuid.UUID, lines map[uuid.UUID]int) *cartModel.CartModel {
	t.Helper()
	cart := cartModel.CartModel{CartUserID: userID, CartIsActive: true}
	require.NoError(t, db.Create(&cart).Error)
	for bookID, qty := range lines {
		require.NoError(t, db.Create(&cartModel.CartItemModel{
			CartItemCartID:   cart.CartID,
			CartItemBookID:   bookID,
			CartItemQuantity: qty,
		}).Error)
	}
	return &cart
}

func baseInput(method string) CheckoutInput {
	phone := "254712345678"
	return CheckoutInput{
		ShippingAddress: AddressInput{
			FullName:   "Wanjiku Kamau",
			Phone:      "254712345678",
			Email:      "wanjiku@example.com",
			Street:     "Moi Avenue 12",
			Town:       "Nairobi",
			County:     "Nairobi",
			PostalCode: "00100",
		},
		PaymentMethod:  method,
		MpesaPhone:     &phone,
		ShippingMethod: orderModel.ShippingMethodStandard,
	}
}

func TestCheckoutTotalsAndSnapshot(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db)

	sale := 20.0
	b1 := seedBook(t, db, "Sauti ya Dhiki", 25.0, &sale, bookModel.BookFormatPaperback, 10) // sells at 20.00
	b2 := seedBook(t, db, "Siku Njema", 10.0, nil, bookModel.BookFormatPaperback, 10)
	seedCart(t, db, userID, map[uuid.UUID]int{
		b1.BookID: 2, // 40.00
		b2.BookID: 2, // 20.00
	})

	svc := NewCheckoutService(db, fixedRates{shipping: 5.00, tax: 1.60})
	res, err := svc.Checkout(userID, baseInput(orderModel.PaymentMethodMpesa))
	require.NoError(t, err)

	assert.InDelta(t, 60.00, res.Order.OrderSubtotal, 1e-9)
	assert.InDelta(t, 5.00, res.Order.OrderShippingAmount, 1e-9)
	assert.InDelta(t, 1.60, res.Order.OrderTaxAmount, 1e-9)
	assert.InDelta(t, 66.60, res.Order.OrderTotalAmount, 1e-9)
	assert.Equal(t, 4, res.Order.OrderItemCount)
	assert.Equal(t, "KES", res.Order.OrderCurrency)

	// line snapshots lock sale price and title at purchase time
	require.Len(t, res.Items, 2)
	byTitle := map[string]orderModel.OrderItemModel{}
	for _, it := range res.Items {
		byTitle[it.OrderItemBookTitle] = it
	}
	assert.InDelta(t, 20.0, byTitle["Sauti ya Dhiki"].OrderItemUnitPrice, 1e-9)
	assert.InDelta(t, 40.0, byTitle["Sauti ya Dhiki"].OrderItemTotalPrice, 1e-9)
	assert.InDelta(t, 10.0, byTitle["Siku Njema"].OrderItemUnitPrice, 1e-9)

	// stock decremented, sales counters bumped
	var fresh bookModel.BookModel
	require.NoError(t, db.First(&fresh, "book_id = ?", b1.BookID).Error)
	assert.Equal(t, 8, fresh.BookStockQuantity)
	assert.Equal(t, 2, fresh.BookTotalSold)
	assert.InDelta(t, 40.0, fresh.BookTotalRevenue, 1e-9)

	// cart emptied and deactivated
	var itemCount int64
	db.Model(&cartModel.CartItemModel{}).Count(&itemCount)
	assert.EqualValues(t, 0, itemCount)
	var cart cartModel.CartModel
	require.NoError(t, db.First(&cart, "cart_user_id = ?", userID).Error)
	assert.False(t, cart.CartIsActive)

	// mpesa settles immediately in the simulation
	assert.Equal(t, orderModel.OrderStatusProcessing, res.Order.OrderStatus)
	assert.Equal(t, orderModel.PaymentStatusPaid, res.Order.OrderPaymentStatus)
	require.NotNil(t, res.Payment)
	assert.Equal(t, orderModel.PaymentStatusPaid, res.Payment.PaymentStatus)
	require.NotNil(t, res.Payment.PaymentTransactionID)
}

func TestCheckoutInsufficientStockRollsBackEverything(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db)

	good := seedBook(t, db, "Utengano", 15.0, nil, bookModel.BookFormatPaperback, 10)
	scarce := seedBook(t, db, "Kidagaa Kimemwozea", 18.0, nil, bookModel.BookFormatPaperback, 2)
	seedCart(t, db, userID, map[uuid.UUID]int{
		good.BookID:   1,
		scarce.BookID: 3, // more than stock, no backorders
	})

	svc := NewCheckoutService(db, DefaultRatePolicy())
	_, err := svc.Checkout(userID, baseInput(orderModel.PaymentMethodMpesa))

	var unavailable *BookUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, "Kidagaa Kimemwozea", unavailable.Title)

	// nothing committed: no orders, stock untouched, cart intact and active
	var orders int64
	db.Model(&orderModel.OrderModel{}).Count(&orders)
	assert.EqualValues(t, 0, orders)

	var fresh bookModel.BookModel
	require.NoError(t, db.First(&fresh, "book_id = ?", good.BookID).Error)
	assert.Equal(t, 10, fresh.BookStockQuantity)
	assert.Equal(t, 0, fresh.BookTotalSold)

	var items int64
	db.Model(&cartModel.CartItemModel{}).Count(&items)
	assert.EqualValues(t, 2, items)
	var cart cartModel.CartModel
	require.NoError(t, db.First(&cart, "cart_user_id = ?", userID).Error)
	assert.True(t, cart.CartIsActive)
}

func TestCheckoutEbookSkipsStock(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db)

	ebook := seedBook(t, db, "Digital Mashairi", 9.0, nil, bookModel.BookFormatEbook, 0)
	seedCart(t, db, userID, map[uuid.UUID]int{ebook.BookID: 3})

	svc := NewCheckoutService(db, DefaultRatePolicy())
	res, err := svc.Checkout(userID, baseInput(orderModel.PaymentMethodMpesa))
	require.NoError(t, err)
	require.Len(t, res.Items, 1)

	var fresh bookModel.BookModel
	require.NoError(t, db.First(&fresh, "book_id = ?", ebook.BookID).Error)
	assert.Equal(t, 0, fresh.BookStockQuantity, "e-book stock never moves")
	assert.Equal(t, 3, fresh.BookTotalSold)
	assert.InDelta(t, 27.0, fresh.BookTotalRevenue, 1e-9)
}

func TestCheckoutBackorderFloor(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db)

	b := seedBook(t, db, "Mstahiki Meya", 12.0, nil, bookModel.BookFormatPaperback, 1)
	require.NoError(t, db.Model(&bookModel.BookModel{}).
		Where("book_id = ?", b.BookID).
		Updates(map[string]any{
			"book_allow_backorders": true,
			"book_max_backorders":   2,
		}).Error)

	// 1 in stock + 2 backorders: 3 is fine, 4 is not
	seedCart(t, db, userID, map[uuid.UUID]int{b.BookID: 3})
	svc := NewCheckoutService(db, DefaultRatePolicy())
	_, err := svc.Checkout(userID, baseInput(orderModel.PaymentMethodMpesa))
	require.NoError(t, err)

	var fresh bookModel.BookModel
	require.NoError(t, db.First(&fresh, "book_id = ?", b.BookID).Error)
	assert.Equal(t, -2, fresh.BookStockQuantity)

	seedCart(t, db, userID, map[uuid.UUID]int{b.BookID: 1})
	_, err = svc.Checkout(userID, baseInput(orderModel.PaymentMethodMpesa))
	var unavailable *BookUnavailableError
	require.ErrorAs(t, err, &unavailable)
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db)

	svc := NewCheckoutService(db, DefaultRatePolicy())
	_, err := svc.Checkout(userID, baseInput(orderModel.PaymentMethodMpesa))
	assert.ErrorIs(t, err, ErrCartEmpty)

	// active cart with zero lines behaves the same
	seedCart(t, db, userID, nil)
	_, err = svc.Checkout(userID, baseInput(orderModel.PaymentMethodMpesa))
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestCancelOrderReversesInventory(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db)

	physical := seedBook(t, db, "Chozi la Heri", 14.0, nil, bookModel.BookFormatPaperback, 5)
	ebook := seedBook(t, db, "Tumbo Lisiloshiba", 8.0, nil, bookModel.BookFormatEbook, 0)
	seedCart(t, db, userID, map[uuid.UUID]int{physical.BookID: 2, ebook.BookID: 1})

	svc := NewCheckoutService(db, DefaultRatePolicy())
	res, err := svc.Checkout(userID, baseInput(orderModel.PaymentMethodMpesa))
	require.NoError(t, err)

	cancelled, err := svc.CancelOrder(res.Order.OrderID, userID, false)
	require.NoError(t, err)
	assert.Equal(t, orderModel.OrderStatusCancelled, cancelled.OrderStatus)
	assert.Equal(t, orderModel.PaymentStatusRefunded, cancelled.OrderPaymentStatus)

	// physical stock restored; counters reversed for both formats
	var p bookModel.BookModel
	require.NoError(t, db.First(&p, "book_id = ?", physical.BookID).Error)
	assert.Equal(t, 5, p.BookStockQuantity)
	assert.Equal(t, 0, p.BookTotalSold)
	assert.InDelta(t, 0, p.BookTotalRevenue, 1e-9)

	var e bookModel.BookModel
	require.NoError(t, db.First(&e, "book_id = ?", ebook.BookID).Error)
	assert.Equal(t, 0, e.BookStockQuantity)
	assert.Equal(t, 0, e.BookTotalSold)

	// payment row follows the refund
	var payment orderModel.PaymentModel
	require.NoError(t, db.First(&payment, "payment_order_id = ?", res.Order.OrderID).Error)
	assert.Equal(t, orderModel.PaymentStatusRefunded, payment.PaymentStatus)
}

func TestCancelOrderGuards(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db)
	otherID := uuid.New()

	b := seedBook(t, db, "Kifo Kisimani", 11.0, nil, bookModel.BookFormatPaperback, 5)
	seedCart(t, db, userID, map[uuid.UUID]int{b.BookID: 1})

	svc := NewCheckoutService(db, DefaultRatePolicy())
	res, err := svc.Checkout(userID, baseInput(orderModel.PaymentMethodMpesa))
	require.NoError(t, err)

	// non-owner cannot see, admin can; shipped orders cannot be cancelled
	_, err = svc.CancelOrder(res.Order.OrderID, otherID, false)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	require.NoError(t, db.Model(&orderModel.OrderModel{}).
		Where("order_id = ?", res.Order.OrderID).
		Update("order_status", orderModel.OrderStatusShipped).Error)
	_, err = svc.CancelOrder(res.Order.OrderID, userID, false)
	assert.ErrorIs(t, err, ErrOrderNotCancellable)

	// cancelling twice is rejected too
	require.NoError(t, db.Model(&orderModel.OrderModel{}).
		Where("order_id = ?", res.Order.OrderID).
		Update("order_status", orderModel.OrderStatusCancelled).Error)
	_, err = svc.CancelOrder(res.Order.OrderID, userID, true)
	assert.ErrorIs(t, err, ErrOrderNotCancellable)
}

func TestPaymentCallbackCascade(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db)

	b := seedBook(t, db, "Mashetani", 13.0, nil, bookModel.BookFormatPaperback, 5)
	seedCart(t, db, userID, map[uuid.UUID]int{b.BookID: 1})

	svc := NewCheckoutService(db, DefaultRatePolicy())
	res, err := svc.Checkout(userID, baseInput(orderModel.PaymentMethodCOD))
	require.NoError(t, err)

	// COD stays pending until confirmed
	assert.Equal(t, orderModel.OrderStatusPending, res.Order.OrderStatus)
	assert.Equal(t, orderModel.PaymentStatusPending, res.Payment.PaymentStatus)
	require.NotNil(t, res.Payment.PaymentTransactionID)

	payment, err := svc.ApplyPaymentCallback(*res.Payment.PaymentTransactionID, "completed", []byte(`{"status":"completed"}`))
	require.NoError(t, err)
	assert.Equal(t, orderModel.PaymentStatusPaid, payment.PaymentStatus)

	var order orderModel.OrderModel
	require.NoError(t, db.First(&order, "order_id = ?", res.Order.OrderID).Error)
	assert.Equal(t, orderModel.OrderStatusProcessing, order.OrderStatus)
	assert.Equal(t, orderModel.PaymentStatusPaid, order.OrderPaymentStatus)
	require.NotNil(t, order.OrderPaymentDate)

	// a settled payment rejects further callbacks
	_, err = svc.ApplyPaymentCallback(*res.Payment.PaymentTransactionID, "completed", nil)
	assert.ErrorIs(t, err, ErrPaymentNotPending)

	// unknown transaction
	_, err = svc.ApplyPaymentCallback("SIM-DOESNOTEXIST", "completed", nil)
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestPaymentCallbackFailure(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db)

	b := seedBook(t, db, "Takadini", 10.0, nil, bookModel.BookFormatPaperback, 5)
	seedCart(t, db, userID, map[uuid.UUID]int{b.BookID: 1})

	svc := NewCheckoutService(db, DefaultRatePolicy())
	res, err := svc.Checkout(userID, baseInput(orderModel.PaymentMethodCOD))
	require.NoError(t, err)

	payment, err := svc.ApplyPaymentCallback(*res.Payment.PaymentTransactionID, "failed", nil)
	require.NoError(t, err)
	assert.Equal(t, orderModel.PaymentStatusFailed, payment.PaymentStatus)

	// the order stays pending, payment status mirrors the failure
	var order orderModel.OrderModel
	require.NoError(t, db.First(&order, "order_id = ?", res.Order.OrderID).Error)
	assert.Equal(t, orderModel.OrderStatusPending, order.OrderStatus)
	assert.Equal(t, orderModel.PaymentStatusFailed, order.OrderPaymentStatus)
}

func TestOrderAndPaymentNumberFormat(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db)

	b := seedBook(t, db, "Damu Nyeusi", 16.0, nil, bookModel.BookFormatPaperback, 50)
	svc := NewCheckoutService(db, DefaultRatePolicy())

	reOrder := regexp.MustCompile(`^ORD-\d{8}-[0-9A-F]{8}$`)
	rePayment := regexp.MustCompile(`^PAY-\d{8}-[0-9A-F]{8}$`)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		seedCart(t, db, userID, map[uuid.UUID]int{b.BookID: 1})
		res, err := svc.Checkout(userID, baseInput(orderModel.PaymentMethodMpesa))
		require.NoError(t, err)
		assert.Regexp(t, reOrder, res.Order.OrderNumber)
		assert.Regexp(t, rePayment, res.Payment.PaymentNumber)
		assert.False(t, seen[res.Order.OrderNumber], "order numbers must not collide")
		seen[res.Order.OrderNumber] = true
	}
}

func TestBestsellerFlagAtHundredSold(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db)

	b := seedBook(t, db, "Kusadikika", 10.0, nil, bookModel.BookFormatPaperback, 200)
	require.NoError(t, db.Model(&bookModel.BookModel{}).
		Where("book_id = ?", b.BookID).
		Update("book_total_sold", 98).Error)

	seedCart(t, db, userID, map[uuid.UUID]int{b.BookID: 2})
	svc := NewCheckoutService(db, DefaultRatePolicy())
	_, err := svc.Checkout(userID, baseInput(orderModel.PaymentMethodMpesa))
	require.NoError(t, err)

	var fresh bookModel.BookModel
	require.NoError(t, db.First(&fresh, "book_id = ?", b.BookID).Error)
	assert.Equal(t, 100, fresh.BookTotalSold)
	assert.True(t, fresh.BookIsBestseller)
}

func TestCheckoutCreatesFreshAddressSnapshot(t *testing.T) {
	db := openTestDB(t)
	userID := seedUser(t, db)

	b := seedBook(t, db, "Walenisi", 12.0, nil, bookModel.BookFormatPaperback, 10)
	svc := NewCheckoutService(db, DefaultRatePolicy())

	for i := 0; i < 2; i++ {
		seedCart(t, db, userID, map[uuid.UUID]int{b.BookID: 1})
		_, err := svc.Checkout(userID, baseInput(orderModel.PaymentMethodMpesa))
		require.NoError(t, err)
	}

	// identical address payloads still produce one row per order
	var addresses int64
	db.Model(&orderModel.AddressModel{}).Count(&addresses)
	assert.EqualValues(t, 2, addresses)

	var addr orderModel.AddressModel
	require.NoError(t, db.First(&addr).Error)
	assert.Equal(t, "Kenya", addr.AddressCountry, "country defaults when omitted")
}
