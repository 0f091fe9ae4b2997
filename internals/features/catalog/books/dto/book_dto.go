package dto

import (
	"time"

	"github.com/google/uuid"

	bookModel "somabooks_backend/internals/features/catalog/books/model"
)

/* =========================================================
   1) REQUEST DTO
   ========================================================= */

type CreateBookRequest struct {
	Title  string `json:"title"  validate:"required,max=255"`
	Author string `json:"author" validate:"required,max=150"`
	Slug   string `json:"slug"   validate:"omitempty,max=255"`

	ISBN10 *string `json:"isbn_10" validate:"omitempty,len=10"`
	ISBN13 string  `json:"isbn_13" validate:"required,len=13"`

	ShortDescription string  `json:"short_description" validate:"required,max=500"`
	Description      string  `json:"description"       validate:"required"`
	Excerpt          *string `json:"excerpt"           validate:"omitempty"`

	PublisherID     *uuid.UUID `json:"publisher_id"     validate:"omitempty"`
	PublicationDate time.Time  `json:"publication_date" validate:"required"`
	Edition         *string    `json:"edition"          validate:"omitempty,max=50"`

	Language  string  `json:"language"     validate:"omitempty,max=50"`
	PageCount int     `json:"page_count"   validate:"required,min=1"`
	Format    string  `json:"format"       validate:"omitempty,oneof=Paperback Hardcover eBook"`
	WeightGr  *int    `json:"weight_grams" validate:"omitempty,min=0"`

	ListPrice float64  `json:"list_price" validate:"required,gt=0"`
	SalePrice *float64 `json:"sale_price" validate:"omitempty,gt=0"`
	CostPrice *float64 `json:"cost_price" validate:"omitempty,gt=0"`

	SKU               string `json:"sku"                 validate:"required,max=100"`
	StockQuantity     int    `json:"stock_quantity"      validate:"omitempty,min=0"`
	LowStockThreshold *int   `json:"low_stock_threshold" validate:"omitempty,min=0"`
	AllowBackorders   *bool  `json:"allow_backorders"    validate:"omitempty"`
	MaxBackorders     *int   `json:"max_backorders"      validate:"omitempty,min=0"`

	Status       string `json:"status"         validate:"omitempty,oneof=draft published archived"`
	IsFeatured   *bool  `json:"is_featured"    validate:"omitempty"`
	IsNewRelease *bool  `json:"is_new_release" validate:"omitempty"`

	CategoryIDs []uuid.UUID `json:"category_ids" validate:"omitempty,dive,required"`
}

func (r *CreateBookRequest) ToModel() *bookModel.BookModel {
	m := &bookModel.BookModel{
		BookTitle:            r.Title,
		BookAuthor:           r.Author,
		BookSlug:             r.Slug,
		BookISBN10:           r.ISBN10,
		BookISBN13:           r.ISBN13,
		BookShortDescription: r.ShortDescription,
		BookDescription:      r.Description,
		BookExcerpt:          r.Excerpt,
		BookPublisherID:      r.PublisherID,
		BookPublicationDate:  r.PublicationDate,
		BookEdition:          r.Edition,
		BookLanguage:         "English",
		BookPageCount:        r.PageCount,
		BookFormat:           bookModel.BookFormatPaperback,
		BookWeightGr:         r.WeightGr,
		BookListPrice:        r.ListPrice,
		BookSalePrice:        r.SalePrice,
		BookCostPrice:        r.CostPrice,
		BookSKU:              r.SKU,
		BookStockQuantity:    r.StockQuantity,
		BookIsAvailable:      true,
		BookStatus:           bookModel.BookStatusDraft,
		BookIsNewRelease:     true,
		BookLowStockThreshold: 10,
	}
	if r.Language != "" {
		m.BookLanguage = r.Language
	}
	if r.Format != "" {
		m.BookFormat = r.Format
	}
	if r.Status != "" {
		m.BookStatus = r.Status
	}
	if r.LowStockThreshold != nil {
		m.BookLowStockThreshold = *r.LowStockThreshold
	}
	if r.AllowBackorders != nil {
		m.BookAllowBackorders = *r.AllowBackorders
	}
	if r.MaxBackorders != nil {
		m.BookMaxBackorders = *r.MaxBackorders
	}
	if r.IsFeatured != nil {
		m.BookIsFeatured = *r.IsFeatured
	}
	if r.IsNewRelease != nil {
		m.BookIsNewRelease = *r.IsNewRelease
	}
	return m
}

type UpdateBookRequest struct {
	Title  *string `json:"title"  validate:"omitempty,max=255"`
	Author *string `json:"author" validate:"omitempty,max=150"`

	ShortDescription *string `json:"short_description" validate:"omitempty,max=500"`
	Description      *string `json:"description"       validate:"omitempty"`
	Excerpt          *string `json:"excerpt"           validate:"omitempty"`

	PublisherID     *uuid.UUID `json:"publisher_id"     validate:"omitempty"`
	PublicationDate *time.Time `json:"publication_date" validate:"omitempty"`
	Edition         *string    `json:"edition"          validate:"omitempty,max=50"`

	Language  *string `json:"language"     validate:"omitempty,max=50"`
	PageCount *int    `json:"page_count"   validate:"omitempty,min=1"`
	Format    *string `json:"format"       validate:"omitempty,oneof=Paperback Hardcover eBook"`
	WeightGr  *int    `json:"weight_grams" validate:"omitempty,min=0"`

	ListPrice *float64 `json:"list_price" validate:"omitempty,gt=0"`
	SalePrice *float64 `json:"sale_price" validate:"omitempty,min=0"`
	CostPrice *float64 `json:"cost_price" validate:"omitempty,gt=0"`

	StockQuantity     *int  `json:"stock_quantity"      validate:"omitempty"`
	LowStockThreshold *int  `json:"low_stock_threshold" validate:"omitempty,min=0"`
	IsAvailable       *bool `json:"is_available"        validate:"omitempty"`
	AllowBackorders   *bool `json:"allow_backorders"    validate:"omitempty"`
	MaxBackorders     *int  `json:"max_backorders"      validate:"omitempty,min=0"`

	Status       *string `json:"status"         validate:"omitempty,oneof=draft published archived"`
	IsFeatured   *bool   `json:"is_featured"    validate:"omitempty"`
	IsNewRelease *bool   `json:"is_new_release" validate:"omitempty"`

	CategoryIDs *[]uuid.UUID `json:"category_ids" validate:"omitempty,dive,required"`
}

// ApplyTo copies only the provided fields. A sale_price of 0 clears the sale.
func (r *UpdateBookRequest) ApplyTo(m *bookModel.BookModel) {
	if r.Title != nil {
		m.BookTitle = *r.Title
	}
	if r.Author != nil {
		m.BookAuthor = *r.Author
	}
	if r.ShortDescription != nil {
		m.BookShortDescription = *r.ShortDescription
	}
	if r.Description != nil {
		m.BookDescription = *r.Description
	}
	if r.Excerpt != nil {
		m.BookExcerpt = r.Excerpt
	}
	if r.PublisherID != nil {
		m.BookPublisherID = r.PublisherID
	}
	if r.PublicationDate != nil {
		m.BookPublicationDate = *r.PublicationDate
	}
	if r.Edition != nil {
		m.BookEdition = r.Edition
	}
	if r.Language != nil {
		m.BookLanguage = *r.Language
	}
	if r.PageCount != nil {
		m.BookPageCount = *r.PageCount
	}
	if r.Format != nil {
		m.BookFormat = *r.Format
	}
	if r.WeightGr != nil {
		m.BookWeightGr = r.WeightGr
	}
	if r.ListPrice != nil {
		m.BookListPrice = *r.ListPrice
	}
	if r.SalePrice != nil {
		if *r.SalePrice == 0 {
			m.BookSalePrice = nil
		} else {
			m.BookSalePrice = r.SalePrice
		}
	}
	if r.CostPrice != nil {
		m.BookCostPrice = r.CostPrice
	}
	if r.StockQuantity != nil {
		m.BookStockQuantity = *r.StockQuantity
	}
	if r.LowStockThreshold != nil {
		m.BookLowStockThreshold = *r.LowStockThreshold
	}
	if r.IsAvailable != nil {
		m.BookIsAvailable = *r.IsAvailable
	}
	if r.AllowBackorders != nil {
		m.BookAllowBackorders = *r.AllowBackorders
	}
	if r.MaxBackorders != nil {
		m.BookMaxBackorders = *r.MaxBackorders
	}
	if r.Status != nil {
		m.BookStatus = *r.Status
	}
	if r.IsFeatured != nil {
		m.BookIsFeatured = *r.IsFeatured
	}
	if r.IsNewRelease != nil {
		m.BookIsNewRelease = *r.IsNewRelease
	}
}

// AdjustSalesRequest: manual correction of the sales counters (admin).
type AdjustSalesRequest struct {
	QuantityDelta int     `json:"quantity_delta" validate:"required"`
	RevenueDelta  float64 `json:"revenue_delta"  validate:"omitempty"`
}

/* =========================================================
   2) RESPONSE DTO
   ========================================================= */

type CategoryBrief struct {
	CategoryID uuid.UUID `json:"category_id"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
}

// BookListResponse is the lightweight listing card.
type BookListResponse struct {
	BookID uuid.UUID `json:"book_id"`

	Title  string `json:"title"`
	Author string `json:"author"`
	Slug   string `json:"slug"`

	ListPrice          float64  `json:"list_price"`
	SalePrice          *float64 `json:"sale_price,omitempty"`
	CurrentPrice       float64  `json:"current_price"`
	DiscountPercentage float64  `json:"discount_percentage"`

	Format      string `json:"format"`
	InStock     bool   `json:"in_stock"`
	StockStatus string `json:"stock_status"`

	AverageRating float64 `json:"average_rating"`
	RatingCount   int     `json:"rating_count"`

	CoverImageURL *string `json:"cover_image_url,omitempty"`

	IsFeatured   bool `json:"is_featured"`
	IsBestseller bool `json:"is_bestseller"`
	IsNewRelease bool `json:"is_new_release"`
}

func ToBookListResponse(m *bookModel.BookModel) BookListResponse {
	return BookListResponse{
		BookID:             m.BookID,
		Title:              m.BookTitle,
		Author:             m.BookAuthor,
		Slug:               m.BookSlug,
		ListPrice:          m.BookListPrice,
		SalePrice:          m.BookSalePrice,
		CurrentPrice:       m.CurrentPrice(),
		DiscountPercentage: m.DiscountPercentage(),
		Format:             m.BookFormat,
		InStock:            m.InStock(),
		StockStatus:        m.StockStatus(),
		AverageRating:      m.BookAverageRating,
		RatingCount:        m.BookRatingCount,
		CoverImageURL:      m.BookCoverImageURL,
		IsFeatured:         m.BookIsFeatured,
		IsBestseller:       m.BookIsBestseller,
		IsNewRelease:       m.BookIsNewRelease,
	}
}

// BookDetailResponse is the full public detail view.
type BookDetailResponse struct {
	BookListResponse

	ISBN10 *string `json:"isbn_10,omitempty"`
	ISBN13 string  `json:"isbn_13"`

	ShortDescription string  `json:"short_description"`
	Description      string  `json:"description"`
	Excerpt          *string `json:"excerpt,omitempty"`

	PublisherID     *uuid.UUID `json:"publisher_id,omitempty"`
	PublisherName   string     `json:"publisher_name"`
	PublicationDate time.Time  `json:"publication_date"`
	Edition         *string    `json:"edition,omitempty"`

	Language  string `json:"language"`
	PageCount int    `json:"page_count"`
	WeightGr  *int   `json:"weight_grams,omitempty"`

	ReviewCount int `json:"review_count"`

	Categories []CategoryBrief `json:"categories"`

	CreatedAt   time.Time  `json:"created_at"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

func ToBookDetailResponse(m *bookModel.BookModel, categories []CategoryBrief) *BookDetailResponse {
	if categories == nil {
		categories = []CategoryBrief{}
	}
	return &BookDetailResponse{
		BookListResponse: ToBookListResponse(m),
		ISBN10:           m.BookISBN10,
		ISBN13:           m.BookISBN13,
		ShortDescription: m.BookShortDescription,
		Description:      m.BookDescription,
		Excerpt:          m.BookExcerpt,
		PublisherID:      m.BookPublisherID,
		PublisherName:    m.BookPublisherName,
		PublicationDate:  m.BookPublicationDate,
		Edition:          m.BookEdition,
		Language:         m.BookLanguage,
		PageCount:        m.BookPageCount,
		WeightGr:         m.BookWeightGr,
		ReviewCount:      m.BookReviewCount,
		Categories:       categories,
		CreatedAt:        m.BookCreatedAt,
		PublishedAt:      m.BookPublishedAt,
	}
}

// AdminBookResponse adds inventory & sales internals on top of the detail.
type AdminBookResponse struct {
	BookDetailResponse

	SKU               string   `json:"sku"`
	StockQuantity     int      `json:"stock_quantity"`
	LowStockThreshold int      `json:"low_stock_threshold"`
	IsAvailable       bool     `json:"is_available"`
	AllowBackorders   bool     `json:"allow_backorders"`
	MaxBackorders     int      `json:"max_backorders"`
	CostPrice         *float64 `json:"cost_price,omitempty"`
	Status            string   `json:"status"`
	TotalSold         int      `json:"total_sold"`
	TotalRevenue      float64  `json:"total_revenue"`
}

func ToAdminBookResponse(m *bookModel.BookModel, categories []CategoryBrief) *AdminBookResponse {
	return &AdminBookResponse{
		BookDetailResponse: *ToBookDetailResponse(m, categories),
		SKU:                m.BookSKU,
		StockQuantity:      m.BookStockQuantity,
		LowStockThreshold:  m.BookLowStockThreshold,
		IsAvailable:        m.BookIsAvailable,
		AllowBackorders:    m.BookAllowBackorders,
		MaxBackorders:      m.BookMaxBackorders,
		CostPrice:          m.BookCostPrice,
		Status:             m.BookStatus,
		TotalSold:          m.BookTotalSold,
		TotalRevenue:       m.BookTotalRevenue,
	}
}
