package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Book status / format vocabularies
const (
	BookStatusDraft     = "draft"
	BookStatusPublished = "published"
	BookStatusArchived  = "archived"

	BookFormatPaperback = "Paperback"
	BookFormatHardcover = "Hardcover"
	BookFormatEbook     = "eBook"
)

type BookModel struct {
	BookID uuid.UUID `gorm:"column:book_id;type:uuid;primaryKey" json:"book_id"`

	// Basic information
	BookTitle  string `gorm:"column:book_title;type:varchar(255);not null;index"  json:"book_title"`
	BookAuthor string `gorm:"column:book_author;type:varchar(150);not null;index" json:"book_author"`
	BookSlug   string `gorm:"column:book_slug;type:varchar(255);uniqueIndex;not null" json:"book_slug"`

	BookISBN10 *string `gorm:"column:book_isbn_10;type:varchar(10)" json:"book_isbn_10,omitempty"`
	BookISBN13 string  `gorm:"column:book_isbn_13;type:varchar(13);uniqueIndex;not null" json:"book_isbn_13"`

	BookShortDescription string  `gorm:"column:book_short_description;type:varchar(500);not null" json:"book_short_description"`
	BookDescription      string  `gorm:"column:book_description;type:text;not null" json:"book_description"`
	BookExcerpt          *string `gorm:"column:book_excerpt;type:text" json:"book_excerpt,omitempty"`

	// Publisher (FK + denormalized name for listings)
	BookPublisherID     *uuid.UUID `gorm:"column:book_publisher_id;type:uuid" json:"book_publisher_id,omitempty"`
	BookPublisherName   string     `gorm:"column:book_publisher_name;type:varchar(150);not null" json:"book_publisher_name"`
	BookPublicationDate time.Time  `gorm:"column:book_publication_date;not null" json:"book_publication_date"`
	BookEdition         *string    `gorm:"column:book_edition;type:varchar(50)" json:"book_edition,omitempty"`

	BookLanguage  string  `gorm:"column:book_language;type:varchar(50);not null;default:English" json:"book_language"`
	BookPageCount int     `gorm:"column:book_page_count;not null" json:"book_page_count"`
	BookFormat    string  `gorm:"column:book_format;type:varchar(50);not null;default:Paperback" json:"book_format"`
	BookWeightGr  *int    `gorm:"column:book_weight_grams" json:"book_weight_grams,omitempty"`

	// Pricing
	BookListPrice float64  `gorm:"column:book_list_price;type:numeric(10,2);not null" json:"book_list_price"`
	BookSalePrice *float64 `gorm:"column:book_sale_price;type:numeric(10,2)" json:"book_sale_price,omitempty"`
	BookCostPrice *float64 `gorm:"column:book_cost_price;type:numeric(10,2)" json:"book_cost_price,omitempty"`

	// Inventory
	BookSKU               string `gorm:"column:book_sku;type:varchar(100);uniqueIndex;not null" json:"book_sku"`
	BookStockQuantity     int    `gorm:"column:book_stock_quantity;not null;default:0" json:"book_stock_quantity"`
	BookLowStockThreshold int    `gorm:"column:book_low_stock_threshold;not null;default:10" json:"book_low_stock_threshold"`
	BookIsAvailable       bool   `gorm:"column:book_is_available;not null;default:true" json:"book_is_available"`
	BookAllowBackorders   bool   `gorm:"column:book_allow_backorders;not null;default:false" json:"book_allow_backorders"`
	BookMaxBackorders     int    `gorm:"column:book_max_backorders;not null;default:0" json:"book_max_backorders"`

	// Ratings rollup
	BookAverageRating float64 `gorm:"column:book_average_rating;not null;default:0" json:"book_average_rating"`
	BookRatingCount   int     `gorm:"column:book_rating_count;not null;default:0" json:"book_rating_count"`
	BookReviewCount   int     `gorm:"column:book_review_count;not null;default:0" json:"book_review_count"`

	// Cover
	BookCoverImageURL *string `gorm:"column:book_cover_image_url;type:varchar(500)" json:"book_cover_image_url,omitempty"`
	BookCoverImageAlt *string `gorm:"column:book_cover_image_alt;type:varchar(255)" json:"book_cover_image_alt,omitempty"`

	// Status + flags
	BookStatus       string `gorm:"column:book_status;type:varchar(20);not null;default:draft" json:"book_status"`
	BookIsFeatured   bool   `gorm:"column:book_is_featured;not null;default:false" json:"book_is_featured"`
	BookIsBestseller bool   `gorm:"column:book_is_bestseller;not null;default:false" json:"book_is_bestseller"`
	BookIsNewRelease bool   `gorm:"column:book_is_new_release;not null;default:true" json:"book_is_new_release"`

	// Sales counters
	BookTotalSold    int     `gorm:"column:book_total_sold;not null;default:0" json:"book_total_sold"`
	BookTotalRevenue float64 `gorm:"column:book_total_revenue;type:numeric(12,2);not null;default:0" json:"book_total_revenue"`

	BookCreatedAt   time.Time      `gorm:"column:book_created_at;autoCreateTime" json:"book_created_at"`
	BookUpdatedAt   *time.Time     `gorm:"column:book_updated_at;autoUpdateTime" json:"book_updated_at,omitempty"`
	BookPublishedAt *time.Time     `gorm:"column:book_published_at" json:"book_published_at,omitempty"`
	BookDeletedAt   gorm.DeletedAt `gorm:"column:book_deleted_at;index" json:"book_deleted_at,omitempty"`
}

func (BookModel) TableName() string { return "books" }

func (b *BookModel) BeforeCreate(tx *gorm.DB) error {
	if b.BookID == uuid.Nil {
		b.BookID = uuid.New()
	}
	return nil
}

// IsPhysical: only physical formats hold stock; e-books never decrement.
func (b *BookModel) IsPhysical() bool {
	return b.BookFormat != BookFormatEbook
}
