package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "somabooks_backend/internals/helpers"

	bookModel "somabooks_backend/internals/features/catalog/books/model"
	"somabooks_backend/internals/features/shop/cart/dto"
	cartModel "somabooks_backend/internals/features/shop/cart/model"
)

type CartController struct {
	DB *gorm.DB
}

func NewCartController(db *gorm.DB) *CartController {
	return &CartController{DB: db}
}

// activeCart returns the user's active cart, creating one lazily.
func activeCart(tx *gorm.DB, userID uuid.UUID) (*cartModel.CartModel, error) {
	var cart cartModel.CartModel
	err := tx.Where("cart_user_id = ? AND cart_is_active", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	cart = cartModel.CartModel{CartUserID: userID, CartIsActive: true}
	if err := tx.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (ctl *CartController) cartView(c *fiber.Ctx, cart *cartModel.CartModel, message string) error {
	var items []cartModel.CartItemModel
	if err := ctl.DB.Where("cart_item_cart_id = ?", cart.CartID).
		Order("cart_item_created_at ASC").
		Find(&items).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch cart items")
	}

	resp := make([]dto.CartItemResponse, 0, len(items))
	for _, it := range items {
		var book bookModel.BookModel
		bookPtr := &book
		if err := ctl.DB.Where("book_id = ?", it.CartItemBookID).First(&book).Error; err != nil {
			bookPtr = nil
		}
		resp = append(resp, dto.FromCartItem(it, bookPtr))
	}
	return helper.JsonOK(c, message, dto.BuildCartResponse(cart, resp))
}

/* =======================================================
   GET /api/cart
======================================================= */

func (ctl *CartController) GetCart(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	cart, err := activeCart(ctl.DB, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load cart")
	}
	return ctl.cartView(c, cart, "Cart fetched successfully")
}

/* =======================================================
   POST /api/cart/items — add or merge a line
======================================================= */

func (ctl *CartController) AddItem(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.AddCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var cart *cartModel.CartModel
	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		var book bookModel.BookModel
		if err := tx.Where("book_id = ? AND book_status = ?", req.BookID, bookModel.BookStatusPublished).
			First(&book).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Book not found")
			}
			return err
		}
		if !book.BookIsAvailable {
			return fiber.NewError(fiber.StatusBadRequest, "This book is currently unavailable")
		}

		cart, err = activeCart(tx, userID)
		if err != nil {
			return err
		}

		// same book added twice merges into one line
		var existing cartModel.CartItemModel
		findErr := tx.Where("cart_item_cart_id = ? AND cart_item_book_id = ?", cart.CartID, req.BookID).
			First(&existing).Error
		newQty := req.Quantity
		if findErr == nil {
			newQty += existing.CartItemQuantity
		} else if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		if !book.CanFulfill(newQty) {
			return fiber.NewError(fiber.StatusBadRequest, "Not enough stock for the requested quantity")
		}

		if findErr == nil {
			return tx.Model(&cartModel.CartItemModel{}).
				Where("cart_item_id = ?", existing.CartItemID).
				Update("cart_item_quantity", newQty).Error
		}
		return tx.Create(&cartModel.CartItemModel{
			CartItemCartID:   cart.CartID,
			CartItemBookID:   req.BookID,
			CartItemQuantity: newQty,
		}).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return err
	}

	return ctl.cartView(c, cart, "Item added to cart")
}

/* =======================================================
   PUT /api/cart/items/:id — set quantity (0 removes)
======================================================= */

func (ctl *CartController) UpdateItem(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid cart item id")
	}

	var req dto.UpdateCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Quantity < 0 || req.Quantity > 99 {
		return helper.JsonValidationError(c, map[string][]string{
			"quantity": {"quantity must be between 0 and 99"},
		})
	}

	cart, err := activeCart(ctl.DB, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load cart")
	}

	var item cartModel.CartItemModel
	if err := ctl.DB.Where("cart_item_id = ? AND cart_item_cart_id = ?", itemID, cart.CartID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Cart item not found")
		}
		return err
	}

	if req.Quantity == 0 {
		if err := ctl.DB.Delete(&cartModel.CartItemModel{}, "cart_item_id = ?", item.CartItemID).Error; err != nil {
			return err
		}
		return ctl.cartView(c, cart, "Item removed from cart")
	}

	var book bookModel.BookModel
	if err := ctl.DB.Where("book_id = ?", item.CartItemBookID).First(&book).Error; err == nil {
		if !book.CanFulfill(req.Quantity) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Not enough stock for the requested quantity")
		}
	}

	if err := ctl.DB.Model(&cartModel.CartItemModel{}).
		Where("cart_item_id = ?", item.CartItemID).
		Update("cart_item_quantity", req.Quantity).Error; err != nil {
		return err
	}
	return ctl.cartView(c, cart, "Cart updated successfully")
}

/* =======================================================
   DELETE /api/cart/items/:id
======================================================= */

func (ctl *CartController) RemoveItem(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	itemID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid cart item id")
	}

	cart, err := activeCart(ctl.DB, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load cart")
	}

	res := ctl.DB.Delete(&cartModel.CartItemModel{},
		"cart_item_id = ? AND cart_item_cart_id = ?", itemID, cart.CartID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Cart item not found")
	}
	return ctl.cartView(c, cart, "Item removed from cart")
}

/* =======================================================
   DELETE /api/cart — clear all lines (idempotent)
======================================================= */

func (ctl *CartController) ClearCart(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	cart, err := activeCart(ctl.DB, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load cart")
	}
	if err := ctl.DB.Delete(&cartModel.CartItemModel{},
		"cart_item_cart_id = ?", cart.CartID).Error; err != nil {
		return err
	}
	return ctl.cartView(c, cart, "Cart cleared")
}
