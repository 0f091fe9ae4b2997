package dto

import (
	"time"

	"github.com/google/uuid"

	bookModel "somabooks_backend/internals/features/catalog/books/model"
	wishlistModel "somabooks_backend/internals/features/shop/wishlist/model"
)

/* =========================================================
   1) REQUEST DTO
   ========================================================= */

type AddWishlistItemRequest struct {
	BookID   uuid.UUID `json:"book_id"  validate:"required"`
	Notes    *string   `json:"notes"    validate:"omitempty,max=1000"`
	Priority string    `json:"priority" validate:"omitempty,oneof=low medium high"`
}

type UpdateWishlistItemRequest struct {
	Notes    *string `json:"notes"    validate:"omitempty,max=1000"`
	Priority *string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

type MoveToCartRequest struct {
	Quantity int `json:"quantity" validate:"omitempty,min=1,max=99"`
}

/* =========================================================
   2) RESPONSE DTO
   ========================================================= */

type WishlistItemResponse struct {
	WishlistItemID uuid.UUID `json:"wishlist_item_id"`
	BookID         uuid.UUID `json:"book_id"`

	BookTitle    string  `json:"book_title"`
	BookAuthor   string  `json:"book_author"`
	BookSlug     string  `json:"book_slug"`
	BookCover    *string `json:"book_cover,omitempty"`
	CurrentPrice float64 `json:"current_price"`
	InStock      bool    `json:"in_stock"`

	Notes    *string `json:"notes,omitempty"`
	Priority string  `json:"priority"`

	CreatedAt time.Time `json:"created_at"`
}

func FromWishlistItem(item wishlistModel.WishlistItemModel, book *bookModel.BookModel) WishlistItemResponse {
	resp := WishlistItemResponse{
		WishlistItemID: item.WishlistItemID,
		BookID:         item.WishlistItemBookID,
		Notes:          item.WishlistItemNotes,
		Priority:       item.WishlistItemPriority,
		CreatedAt:      item.WishlistItemCreatedAt,
	}
	if book != nil {
		resp.BookTitle = book.BookTitle
		resp.BookAuthor = book.BookAuthor
		resp.BookSlug = book.BookSlug
		resp.BookCover = book.BookCoverImageURL
		resp.CurrentPrice = book.CurrentPrice()
		resp.InStock = book.InStock()
	}
	return resp
}

type WishlistResponse struct {
	WishlistID  uuid.UUID              `json:"wishlist_id"`
	Name        string                 `json:"name"`
	Description *string                `json:"description,omitempty"`
	Items       []WishlistItemResponse `json:"items"`
	ItemCount   int                    `json:"item_count"`
}

func BuildWishlistResponse(w *wishlistModel.WishlistModel, items []WishlistItemResponse) *WishlistResponse {
	return &WishlistResponse{
		WishlistID:  w.WishlistID,
		Name:        w.WishlistName,
		Description: w.WishlistDescription,
		Items:       items,
		ItemCount:   len(items),
	}
}
