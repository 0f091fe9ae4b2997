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
	"somabooks_backend/internals/features/shop/cart/dto"
	cartModel "somabooks_backend/internals/features/shop/cart/model"
)

type cartEnvelope struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Data    dto.CartResponse `json:"data"`
}

func newCartTestApp(t *testing.T) (*fiber.App, *gorm.DB, uuid.UUID) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&bookModel.BookModel{},
		&cartModel.CartModel{},
		&cartModel.CartItemModel{},
	))

	userID := uuid.New()
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user_id", userID.String())
		return c.Next()
	})

	ctl := NewCartController(db)
	app.Get("/api/cart", ctl.GetCart)
	app.Delete("/api/cart", ctl.ClearCart)
	app.Post("/api/cart/items", ctl.AddItem)
	app.Put("/api/cart/items/:id", ctl.UpdateItem)
	app.Delete("/api/cart/items/:id", ctl.RemoveItem)

	return app, db, userID
}

func createCartBook(t *testing.T, db *gorm.DB, title string, price float64, stock int) *bookModel.BookModel {
	t.Helper()
	b := bookModel.BookModel{
		BookTitle:            title,
		BookAuthor:           "Author",
		BookSlug:             title + "-" + uuid.New().String()[:8],
		BookISBN13:           uuid.New().String()[:13],
		BookShortDescription: "short",
		BookDescription:      "long",
		BookPublisherName:    "Press",
		BookPageCount:        120,
		BookFormat:           bookModel.BookFormatPaperback,
		BookListPrice:        price,
		BookSKU:              "SKU-" + uuid.New().String()[:8],
		BookStockQuantity:    stock,
		BookIsAvailable:      true,
		BookStatus:           bookModel.BookStatusPublished,
	}
	require.NoError(t, db.Create(&b).Error)
	return &b
}

func doCartRequest(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, cartEnvelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env cartEnvelope
	_ = json.NewDecoder(resp.Body).Decode(&env)
	return resp, env
}

func TestGetCartLazilyCreates(t *testing.T) {
	app, db, userID := newCartTestApp(t)

	resp, env := doCartRequest(t, app, http.MethodGet, "/api/cart", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	assert.Empty(t, env.Data.Items)

	var cart cartModel.CartModel
	require.NoError(t, db.First(&cart, "cart_user_id = ?", userID).Error)
	assert.True(t, cart.CartIsActive)
}

func TestAddItemMergesSameBook(t *testing.T) {
	app, db, _ := newCartTestApp(t)
	book := createCartBook(t, db, "Siku Njema", 850, 10)

	resp, env := doCartRequest(t, app, http.MethodPost, "/api/cart/items",
		fiber.Map{"book_id": book.BookID, "quantity": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, env.Data.Items, 1)
	assert.Equal(t, 2, env.Data.Items[0].Quantity)

	// adding the same book again merges, not duplicates
	resp, env = doCartRequest(t, app, http.MethodPost, "/api/cart/items",
		fiber.Map{"book_id": book.BookID, "quantity": 3})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, env.Data.Items, 1)
	assert.Equal(t, 5, env.Data.Items[0].Quantity)
	assert.InDelta(t, 4250, env.Data.Subtotal, 1e-9)
}

func TestAddItemRejectsOversell(t *testing.T) {
	app, db, _ := newCartTestApp(t)
	book := createCartBook(t, db, "Kidagaa Kimemwozea", 600, 2)

	resp, _ := doCartRequest(t, app, http.MethodPost, "/api/cart/items",
		fiber.Map{"book_id": book.BookID, "quantity": 3})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// merge that would exceed stock is rejected too
	resp, _ = doCartRequest(t, app, http.MethodPost, "/api/cart/items",
		fiber.Map{"book_id": book.BookID, "quantity": 2})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doCartRequest(t, app, http.MethodPost, "/api/cart/items",
		fiber.Map{"book_id": book.BookID, "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAddItemUnknownOrUnpublishedBook(t *testing.T) {
	app, db, _ := newCartTestApp(t)

	resp, _ := doCartRequest(t, app, http.MethodPost, "/api/cart/items",
		fiber.Map{"book_id": uuid.New(), "quantity": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	draft := createCartBook(t, db, "Draft Only", 500, 5)
	require.NoError(t, db.Model(&bookModel.BookModel{}).
		Where("book_id = ?", draft.BookID).
		Update("book_status", bookModel.BookStatusDraft).Error)
	resp, _ = doCartRequest(t, app, http.MethodPost, "/api/cart/items",
		fiber.Map{"book_id": draft.BookID, "quantity": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateItemQuantityZeroRemoves(t *testing.T) {
	app, db, _ := newCartTestApp(t)
	book := createCartBook(t, db, "Utengano", 700, 10)

	_, env := doCartRequest(t, app, http.MethodPost, "/api/cart/items",
		fiber.Map{"book_id": book.BookID, "quantity": 2})
	require.Len(t, env.Data.Items, 1)
	itemID := env.Data.Items[0].CartItemID

	resp, env := doCartRequest(t, app, http.MethodPut,
		fmt.Sprintf("/api/cart/items/%s", itemID), fiber.Map{"quantity": 4})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 4, env.Data.Items[0].Quantity)

	resp, env = doCartRequest(t, app, http.MethodPut,
		fmt.Sprintf("/api/cart/items/%s", itemID), fiber.Map{"quantity": 0})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, env.Data.Items)
}

func TestRemoveItemNotFound(t *testing.T) {
	app, _, _ := newCartTestApp(t)

	resp, _ := doCartRequest(t, app, http.MethodDelete,
		fmt.Sprintf("/api/cart/items/%s", uuid.New()), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestClearCartIsIdempotent(t *testing.T) {
	app, db, _ := newCartTestApp(t)
	book := createCartBook(t, db, "Mashetani", 900, 10)

	doCartRequest(t, app, http.MethodPost, "/api/cart/items",
		fiber.Map{"book_id": book.BookID, "quantity": 1})

	resp, env := doCartRequest(t, app, http.MethodDelete, "/api/cart", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, env.Data.Items)

	// clearing an already-empty cart still succeeds
	resp, env = doCartRequest(t, app, http.MethodDelete, "/api/cart", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, env.Data.Items)
}
