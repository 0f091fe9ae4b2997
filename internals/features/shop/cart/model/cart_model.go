package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// One active cart per user. Uniqueness is enforced by a partial unique
// index on (cart_user_id) WHERE cart_is_active, created in Migrate().
type CartModel struct {
	CartID uuid.UUID `gorm:"column:cart_id;type:uuid;primaryKey" json:"cart_id"`

	CartUserID   uuid.UUID `gorm:"column:cart_user_id;type:uuid;not null;index" json:"cart_user_id"`
	CartIsActive bool      `gorm:"column:cart_is_active;not null;default:true" json:"cart_is_active"`

	CartCreatedAt time.Time  `gorm:"column:cart_created_at;autoCreateTime" json:"cart_created_at"`
	CartUpdatedAt *time.Time `gorm:"column:cart_updated_at;autoUpdateTime" json:"cart_updated_at,omitempty"`
}

func (CartModel) TableName() string { return "carts" }

func (c *CartModel) BeforeCreate(tx *gorm.DB) error {
	if c.CartID == uuid.Nil {
		c.CartID = uuid.New()
	}
	return nil
}

// CartItemModel: one row per (cart, book).
type CartItemModel struct {
	CartItemID uuid.UUID `gorm:"column:cart_item_id;type:uuid;primaryKey" json:"cart_item_id"`

	CartItemCartID uuid.UUID `gorm:"column:cart_item_cart_id;type:uuid;not null;index;uniqueIndex:uq_cart_items_cart_book" json:"cart_item_cart_id"`
	CartItemBookID uuid.UUID `gorm:"column:cart_item_book_id;type:uuid;not null;uniqueIndex:uq_cart_items_cart_book" json:"cart_item_book_id"`

	CartItemQuantity int `gorm:"column:cart_item_quantity;not null;default:1" json:"cart_item_quantity"`

	CartItemCreatedAt time.Time  `gorm:"column:cart_item_created_at;autoCreateTime" json:"cart_item_created_at"`
	CartItemUpdatedAt *time.Time `gorm:"column:cart_item_updated_at;autoUpdateTime" json:"cart_item_updated_at,omitempty"`
}

func (CartItemModel) TableName() string { return "cart_items" }

func (ci *CartItemModel) BeforeCreate(tx *gorm.DB) error {
	if ci.CartItemID == uuid.Nil {
		ci.CartItemID = uuid.New()
	}
	return nil
}
