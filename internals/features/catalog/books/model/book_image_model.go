package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookImageModel struct {
	BookImageID uuid.UUID `gorm:"column:book_image_id;type:uuid;primaryKey" json:"book_image_id"`

	BookImageBookID uuid.UUID `gorm:"column:book_image_book_id;type:uuid;not null;index" json:"book_image_book_id"`

	BookImageURL          string  `gorm:"column:book_image_url;type:varchar(500);not null" json:"book_image_url"`
	BookImageAltText      *string `gorm:"column:book_image_alt_text;type:varchar(255)" json:"book_image_alt_text,omitempty"`
	BookImageDisplayOrder int     `gorm:"column:book_image_display_order;not null;default:0" json:"book_image_display_order"`
	BookImageIsMain       bool    `gorm:"column:book_image_is_main;not null;default:false" json:"book_image_is_main"`

	BookImageCreatedAt time.Time `gorm:"column:book_image_created_at;autoCreateTime" json:"book_image_created_at"`
}

func (BookImageModel) TableName() string { return "book_images" }

func (b *BookImageModel) BeforeCreate(tx *gorm.DB) error {
	if b.BookImageID == uuid.Nil {
		b.BookImageID = uuid.New()
	}
	return nil
}
