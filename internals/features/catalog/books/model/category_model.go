package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryModel struct {
	CategoryID uuid.UUID `gorm:"column:category_id;type:uuid;primaryKey" json:"category_id"`

	CategoryName        string  `gorm:"column:category_name;type:varchar(100);uniqueIndex;not null" json:"category_name"`
	CategorySlug        string  `gorm:"column:category_slug;type:varchar(100);uniqueIndex;not null" json:"category_slug"`
	CategoryDescription *string `gorm:"column:category_description;type:text" json:"category_description,omitempty"`

	CategoryCreatedAt time.Time  `gorm:"column:category_created_at;autoCreateTime" json:"category_created_at"`
	CategoryUpdatedAt *time.Time `gorm:"column:category_updated_at;autoUpdateTime" json:"category_updated_at,omitempty"`
}

func (CategoryModel) TableName() string { return "categories" }

func (c *CategoryModel) BeforeCreate(tx *gorm.DB) error {
	if c.CategoryID == uuid.Nil {
		c.CategoryID = uuid.New()
	}
	return nil
}

// BookCategoryModel is the books ↔ categories join table.
type BookCategoryModel struct {
	BookCategoryBookID     uuid.UUID `gorm:"column:book_category_book_id;type:uuid;primaryKey" json:"book_category_book_id"`
	BookCategoryCategoryID uuid.UUID `gorm:"column:book_category_category_id;type:uuid;primaryKey" json:"book_category_category_id"`

	BookCategoryCreatedAt time.Time `gorm:"column:book_category_created_at;autoCreateTime" json:"book_category_created_at"`
}

func (BookCategoryModel) TableName() string { return "book_categories" }
