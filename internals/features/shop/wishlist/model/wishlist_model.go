package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WishlistModel struct {
	WishlistID uuid.UUID `gorm:"column:wishlist_id;type:uuid;primaryKey" json:"wishlist_id"`

	WishlistUserID uuid.UUID `gorm:"column:wishlist_user_id;type:uuid;not null;index" json:"wishlist_user_id"`

	WishlistName        string  `gorm:"column:wishlist_name;type:varchar(100);not null;default:My Wishlist" json:"wishlist_name"`
	WishlistDescription *string `gorm:"column:wishlist_description;type:text" json:"wishlist_description,omitempty"`
	WishlistIsDefault   bool    `gorm:"column:wishlist_is_default;not null;default:false" json:"wishlist_is_default"`

	WishlistCreatedAt time.Time  `gorm:"column:wishlist_created_at;autoCreateTime" json:"wishlist_created_at"`
	WishlistUpdatedAt *time.Time `gorm:"column:wishlist_updated_at;autoUpdateTime" json:"wishlist_updated_at,omitempty"`
}

func (WishlistModel) TableName() string { return "wishlists" }

func (w *WishlistModel) BeforeCreate(tx *gorm.DB) error {
	if w.WishlistID == uuid.Nil {
		w.WishlistID = uuid.New()
	}
	return nil
}

type WishlistItemModel struct {
	WishlistItemID uuid.UUID `gorm:"column:wishlist_item_id;type:uuid;primaryKey" json:"wishlist_item_id"`

	WishlistItemWishlistID uuid.UUID `gorm:"column:wishlist_item_wishlist_id;type:uuid;not null;index;uniqueIndex:uq_wishlist_items_list_book" json:"wishlist_item_wishlist_id"`
	WishlistItemBookID     uuid.UUID `gorm:"column:wishlist_item_book_id;type:uuid;not null;uniqueIndex:uq_wishlist_items_list_book" json:"wishlist_item_book_id"`

	WishlistItemNotes    *string `gorm:"column:wishlist_item_notes;type:text" json:"wishlist_item_notes,omitempty"`
	WishlistItemPriority string  `gorm:"column:wishlist_item_priority;type:varchar(10);not null;default:medium" json:"wishlist_item_priority"`

	WishlistItemCreatedAt time.Time  `gorm:"column:wishlist_item_created_at;autoCreateTime" json:"wishlist_item_created_at"`
	WishlistItemUpdatedAt *time.Time `gorm:"column:wishlist_item_updated_at;autoUpdateTime" json:"wishlist_item_updated_at,omitempty"`
}

func (WishlistItemModel) TableName() string { return "wishlist_items" }

func (wi *WishlistItemModel) BeforeCreate(tx *gorm.DB) error {
	if wi.WishlistItemID == uuid.Nil {
		wi.WishlistItemID = uuid.New()
	}
	return nil
}
