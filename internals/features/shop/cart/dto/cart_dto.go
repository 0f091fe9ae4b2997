package dto

import (
	"time"

	"github.com/google/uuid"

	bookModel "somabooks_backend/internals/features/catalog/books/model"
	cartModel "somabooks_backend/internals/features/shop/cart/model"
)

/* =========================================================
   1) REQUEST DTO
   ========================================================= */

type AddCartItemRequest struct {
	BookID   uuid.UUID `json:"book_id"  validate:"required"`
	Quantity int       `json:"quantity" validate:"required,min=1,max=99"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=0,max=99"`
}

/* =========================================================
   2) RESPONSE DTO
   ========================================================= */

type CartItemResponse struct {
	CartItemID uuid.UUID `json:"cart_item_id"`
	BookID     uuid.UUID `json:"book_id"`

	BookTitle  string  `json:"book_title"`
	BookAuthor string  `json:"book_author"`
	BookSlug   string  `json:"book_slug"`
	BookCover  *string `json:"book_cover,omitempty"`
	BookFormat string  `json:"book_format"`

	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	LineTotal   float64 `json:"line_total"`
	InStock     bool    `json:"in_stock"`
	StockStatus string  `json:"stock_status"`

	CreatedAt time.Time `json:"created_at"`
}

// FromCartItem prices the line from the live book, so sale changes show up
// in the cart view. The price is only locked in at checkout.
func FromCartItem(item cartModel.CartItemModel, book *bookModel.BookModel) CartItemResponse {
	resp := CartItemResponse{
		CartItemID: item.CartItemID,
		BookID:     item.CartItemBookID,
		Quantity:   item.CartItemQuantity,
		CreatedAt:  item.CartItemCreatedAt,
	}
	if book != nil {
		unit := book.CurrentPrice()
		resp.BookTitle = book.BookTitle
		resp.BookAuthor = book.BookAuthor
		resp.BookSlug = book.BookSlug
		resp.BookCover = book.BookCoverImageURL
		resp.BookFormat = book.BookFormat
		resp.UnitPrice = unit
		resp.LineTotal = unit * float64(item.CartItemQuantity)
		resp.InStock = book.InStock()
		resp.StockStatus = book.StockStatus()
	}
	return resp
}

type CartResponse struct {
	CartID    uuid.UUID          `json:"cart_id"`
	Items     []CartItemResponse `json:"items"`
	ItemCount int                `json:"item_count"`
	Subtotal  float64            `json:"subtotal"`
}

func BuildCartResponse(cart *cartModel.CartModel, items []CartItemResponse) *CartResponse {
	resp := &CartResponse{
		CartID: cart.CartID,
		Items:  items,
	}
	for _, it := range items {
		resp.ItemCount += it.Quantity
		resp.Subtotal += it.LineTotal
	}
	return resp
}
