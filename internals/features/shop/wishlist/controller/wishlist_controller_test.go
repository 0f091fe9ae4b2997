package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	bookModel "somabooks_backend/internals/features/catalog/books/model"
	cartModel "somabooks_backend/internals/features/shop/cart/model"
	wishlistModel "somabooks_backend/internals/features/shop/wishlist/model"
)

func newWishlistTestApp(t *testing.T) (*fiber.App, *gorm.DB, uuid.UUID) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&bookModel.BookModel{},
		&cartModel.CartModel{},
		&cartModel.CartItemModel{},
		&wishlistModel.WishlistModel{},
		&wishlistModel.WishlistItemModel{},
	))

	userID := uuid.New()
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID.String())
		return c.Next()
	})

	ctl := NewWishlistController(db)
	app.Get("/api/wishlist", ctl.GetWishlist)
	app.Post("/api/wishlist/items", ctl.AddItem)
	app.Put("/api/wishlist/items/:id", ctl.UpdateItem)
	app.Delete("/api/wishlist/items/:id", ctl.RemoveItem)
	app.Post("/api/wishlist/items/:id/move-to-cart", ctl.MoveToCart)

	return app, db, userID
}

func createWishlistBook(t *testing.T, db *gorm.DB, title string, stock int) *bookModel.BookModel {
	t.Helper()
	b := bookModel.BookModel{
		BookTitle:            title,
		BookAuthor:           "Author",
		BookSlug:             title + "-" + uuid.New().String()[:8],
		BookISBN13:           uuid.New().String()[:13],
		BookShortDescription: "short",
		BookDescription:      "long",
		BookPublisherName:    "Press",
		BookPageCount:        180,
		BookFormat:           bookModel.BookFormatPaperback,
		BookListPrice:        750,
		BookSKU:              "SKU-" + uuid.New().String()[:8],
		BookStockQuantity:    stock,
		BookIsAvailable:      true,
		BookStatus:           bookModel.BookStatusPublished,
	}
	require.NoError(t, db.Create(&b).Error)
	return &b
}

func doWishlistRequest(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestWishlistAddAndDuplicate(t *testing.T) {
	app, db, userID := newWishlistTestApp(t)
	book := createWishlistBook(t, db, "Dust", 10)

	resp := doWishlistRequest(t, app, http.MethodPost, "/api/wishlist/items",
		fiber.Map{"book_id": book.BookID, "priority": "high"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doWishlistRequest(t, app, http.MethodPost, "/api/wishlist/items",
		fiber.Map{"book_id": book.BookID})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// default list was lazily created for the user
	var list wishlistModel.WishlistModel
	require.NoError(t, db.First(&list, "wishlist_user_id = ?", userID).Error)
	assert.True(t, list.WishlistIsDefault)
}

func TestWishlistMoveToCart(t *testing.T) {
	app, db, userID := newWishlistTestApp(t)
	book := createWishlistBook(t, db, "The Dragonfly Sea", 10)

	resp := doWishlistRequest(t, app, http.MethodPost, "/api/wishlist/items",
		fiber.Map{"book_id": book.BookID})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var item wishlistModel.WishlistItemModel
	require.NoError(t, db.First(&item).Error)

	resp = doWishlistRequest(t, app, http.MethodPost,
		fmt.Sprintf("/api/wishlist/items/%s/move-to-cart", item.WishlistItemID),
		fiber.Map{"quantity": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// cart line exists, wishlist entry is gone
	var cart cartModel.CartModel
	require.NoError(t, db.First(&cart, "cart_user_id = ? AND cart_is_active", userID).Error)
	var line cartModel.CartItemModel
	require.NoError(t, db.First(&line, "cart_item_cart_id = ?", cart.CartID).Error)
	assert.Equal(t, book.BookID, line.CartItemBookID)
	assert.Equal(t, 2, line.CartItemQuantity)

	var remaining int64
	db.Model(&wishlistModel.WishlistItemModel{}).Count(&remaining)
	assert.EqualValues(t, 0, remaining)
}

func TestWishlistMoveToCartMergesExistingLine(t *testing.T) {
	app, db, userID := newWishlistTestApp(t)
	book := createWishlistBook(t, db, "Unbowed", 10)

	// already one in the cart
	cart := cartModel.CartModel{CartUserID: userID, CartIsActive: true}
	require.NoError(t, db.Create(&cart).Error)
	require.NoError(t, db.Create(&cartModel.CartItemModel{
		CartItemCartID:   cart.CartID,
		CartItemBookID:   book.BookID,
		CartItemQuantity: 1,
	}).Error)

	resp := doWishlistRequest(t, app, http.MethodPost, "/api/wishlist/items",
		fiber.Map{"book_id": book.BookID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var item wishlistModel.WishlistItemModel
	require.NoError(t, db.First(&item).Error)

	// empty body defaults to quantity 1
	resp = doWishlistRequest(t, app, http.MethodPost,
		fmt.Sprintf("/api/wishlist/items/%s/move-to-cart", item.WishlistItemID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var line cartModel.CartItemModel
	require.NoError(t, db.First(&line, "cart_item_cart_id = ?", cart.CartID).Error)
	assert.Equal(t, 2, line.CartItemQuantity)
}

func TestWishlistMoveToCartOutOfStock(t *testing.T) {
	app, db, _ := newWishlistTestApp(t)
	book := createWishlistBook(t, db, "Blackass", 1)

	resp := doWishlistRequest(t, app, http.MethodPost, "/api/wishlist/items",
		fiber.Map{"book_id": book.BookID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var item wishlistModel.WishlistItemModel
	require.NoError(t, db.First(&item).Error)

	resp = doWishlistRequest(t, app, http.MethodPost,
		fmt.Sprintf("/api/wishlist/items/%s/move-to-cart", item.WishlistItemID),
		fiber.Map{"quantity": 5})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// the wishlist entry survives a failed move
	var remaining int64
	db.Model(&wishlistModel.WishlistItemModel{}).Count(&remaining)
	assert.EqualValues(t, 1, remaining)
}

func TestWishlistRemoveItem(t *testing.T) {
	app, db, _ := newWishlistTestApp(t)
	book := createWishlistBook(t, db, "Kintu", 10)

	resp := doWishlistRequest(t, app, http.MethodPost, "/api/wishlist/items",
		fiber.Map{"book_id": book.BookID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var item wishlistModel.WishlistItemModel
	require.NoError(t, db.First(&item).Error)

	resp = doWishlistRequest(t, app, http.MethodDelete,
		fmt.Sprintf("/api/wishlist/items/%s", item.WishlistItemID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp = doWishlistRequest(t, app, http.MethodDelete,
		fmt.Sprintf("/api/wishlist/items/%s", item.WishlistItemID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
