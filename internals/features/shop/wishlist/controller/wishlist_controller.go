package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "somabooks_backend/internals/helpers"

	bookModel "somabooks_backend/internals/features/catalog/books/model"
	cartModel "somabooks_backend/internals/features/shop/cart/model"
	"somabooks_backend/internals/features/shop/wishlist/dto"
	wishlistModel "somabooks_backend/internals/features/shop/wishlist/model"
)

type WishlistController struct {
	DB *gorm.DB
}

func NewWishlistController(db *gorm.DB) *WishlistController {
	return &WishlistController{DB: db}
}

// defaultWishlist returns the user's default wishlist, creating it lazily.
func defaultWishlist(tx *gorm.DB, userID uuid.UUID) (*wishlistModel.WishlistModel, error) {
	var w wishlistModel.WishlistModel
	err := tx.Where("wishlist_user_id = ? AND wishlist_is_default", userID).First(&w).Error
	if err == nil {
		return &w, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	w = wishlistModel.WishlistModel{
		WishlistUserID:    userID,
		WishlistName:      "My Wishlist",
		WishlistIsDefault: true,
	}
	if err := tx.Create(&w).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

func (ctl *WishlistController) wishlistView(c *fiber.Ctx, w *wishlistModel.WishlistModel, message string) error {
	var items []wishlistModel.WishlistItemModel
	if err := ctl.DB.Where("wishlist_item_wishlist_id = ?", w.WishlistID).
		Order("wishlist_item_created_at DESC").
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch wishlist items")
	}

	resp := make([]dto.WishlistItemResponse, 0, len(items))
	for _, it := range items {
		var book bookModel.BookModel
		bookPtr := &book
		if err := ctl.DB.Where("book_id = ?", it.WishlistItemBookID).First(&book).Error; err != nil {
			bookPtr = nil
		}
		resp = append(resp, dto.FromWishlistItem(it, bookPtr))
	}
	return helper.JsonOK(c, message, dto.BuildWishlistResponse(w, resp))
}

/* =======================================================
   GET /api/wishlist
======================================================= */

func (ctl *WishlistController) GetWishlist(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	w, err := defaultWishlist(ctl.DB, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load wishlist")
	}
	return ctl.wishlistView(c, w, "Wishlist fetched successfully")
}

/* =======================================================
   POST /api/wishlist/items
======================================================= */

func (ctl *WishlistController) AddItem(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.AddWishlistItemRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var book bookModel.BookModel
	if err := ctl.DB.Where("book_id = ? AND book_status = ?", req.BookID, bookModel.BookStatusPublished).
		First(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Book not found")
		}
		return err
	}

	w, err := defaultWishlist(ctl.DB, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load wishlist")
	}

	var existing wishlistModel.WishlistItemModel
	if err := ctl.DB.Where("wishlist_item_wishlist_id = ? AND wishlist_item_book_id = ?",
		w.WishlistID, req.BookID).First(&existing).Error; err == nil {
		return helper.JsonError(c, fiber.StatusConflict, "Book is already on your wishlist")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}
	if err := ctl.DB.Create(&wishlistModel.WishlistItemModel{
		WishlistItemWishlistID: w.WishlistID,
		WishlistItemBookID:     req.BookID,
		WishlistItemNotes:      req.Notes,
		WishlistItemPriority:   priority,
	}).Error; err != nil {
		return err
	}
	return ctl.wishlistView(c, w, "Book added to wishlist")
}

/* =======================================================
   PUT /api/wishlist/items/:id — notes / priority
======================================================= */

func (ctl *WishlistController) UpdateItem(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid wishlist item id")
	}

	var req dto.UpdateWishlistItemRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	w, err := defaultWishlist(ctl.DB, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load wishlist")
	}

	var item wishlistModel.WishlistItemModel
	if err := ctl.DB.Where("wishlist_item_id = ? AND wishlist_item_wishlist_id = ?",
		itemID, w.WishlistID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Wishlist item not found")
		}
		return err
	}

	updates := map[string]any{}
	if req.Notes != nil {
		updates["wishlist_item_notes"] = *req.Notes
	}
	if req.Priority != nil {
		updates["wishlist_item_priority"] = *req.Priority
	}
	if len(updates) > 0 {
		if err := ctl.DB.Model(&wishlistModel.WishlistItemModel{}).
			Where("wishlist_item_id = ?", item.WishlistItemID).
			Updates(updates).Error; err != nil {
			return err
		}
	}
	return ctl.wishlistView(c, w, "Wishlist updated successfully")
}

/* =======================================================
   DELETE /api/wishlist/items/:id
======================================================= */

func (ctl *WishlistController) RemoveItem(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid wishlist item id")
	}

	w, err := defaultWishlist(ctl.DB, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load wishlist")
	}

	res := ctl.DB.Delete(&wishlistModel.WishlistItemModel{},
		"wishlist_item_id = ? AND wishlist_item_wishlist_id = ?", itemID, w.WishlistID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Wishlist item not found")
	}
	return ctl.wishlistView(c, w, "Book removed from wishlist")
}

/* =======================================================
   POST /api/wishlist/items/:id/move-to-cart
======================================================= */

func (ctl *WishlistController) MoveToCart(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid wishlist item id")
	}

	var req dto.MoveToCartRequest
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	qty := req.Quantity
	if qty <= 0 {
		qty = 1
	}

	var w *wishlistModel.WishlistModel
	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		w, err = defaultWishlist(tx, userID)
		if err != nil {
			return err
		}

		var item wishlistModel.WishlistItemModel
		if err := tx.Where("wishlist_item_id = ? AND wishlist_item_wishlist_id = ?",
			itemID, w.WishlistID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Wishlist item not found")
			}
			return err
		}

		var book bookModel.BookModel
		if err := tx.Where("book_id = ?", item.WishlistItemBookID).First(&book).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "This book is no longer available")
		}
		if !book.BookIsAvailable || !book.CanFulfill(qty) {
			return fiber.NewError(fiber.StatusBadRequest, "Not enough stock for the requested quantity")
		}

		var cart cartModel.CartModel
		cartErr := tx.Where("cart_user_id = ? AND cart_is_active", userID).First(&cart).Error
		if errors.Is(cartErr, gorm.ErrRecordNotFound) {
			cart = cartModel.CartModel{CartUserID: userID, CartIsActive: true}
			if err := tx.Create(&cart).Error; err != nil {
				return err
			}
		} else if cartErr != nil {
			return cartErr
		}

		var line cartModel.CartItemModel
		lineErr := tx.Where("cart_item_cart_id = ? AND cart_item_book_id = ?",
			cart.CartID, book.BookID).First(&line).Error
		switch {
		case lineErr == nil:
			if err := tx.Model(&cartModel.CartItemModel{}).
				Where("cart_item_id = ?", line.CartItemID).
				Update("cart_item_quantity", line.CartItemQuantity+qty).Error; err != nil {
				return err
			}
		case errors.Is(lineErr, gorm.ErrRecordNotFound):
			if err := tx.Create(&cartModel.CartItemModel{
				CartItemCartID:   cart.CartID,
				CartItemBookID:   book.BookID,
				CartItemQuantity: qty,
			}).Error; err != nil {
				return err
			}
		default:
			return lineErr
		}

		return tx.Delete(&wishlistModel.WishlistItemModel{},
			"wishlist_item_id = ?", item.WishlistItemID).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return err
	}
	return ctl.wishlistView(c, w, "Book moved to cart")
}
