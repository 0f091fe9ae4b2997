package dto

import (
	"time"

	"github.com/google/uuid"

	bookModel "somabooks_backend/internals/features/catalog/books/model"
)

/* ============ categories ============ */

type CreateCategoryRequest struct {
	Name        string  `json:"name"        validate:"required,max=100"`
	Slug        string  `json:"slug"        validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name"        validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty"`
}

type CategoryResponse struct {
	CategoryID  uuid.UUID `json:"category_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description *string   `json:"description,omitempty"`
	BookCount   int64     `json:"book_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func FromCategoryModel(m *bookModel.CategoryModel, bookCount int64) *CategoryResponse {
	return &CategoryResponse{
		CategoryID:  m.CategoryID,
		Name:        m.CategoryName,
		Slug:        m.CategorySlug,
		Description: m.CategoryDescription,
		BookCount:   bookCount,
		CreatedAt:   m.CategoryCreatedAt,
	}
}

/* ============ publishers ============ */

type CreatePublisherRequest struct {
	Name         string  `json:"name"          validate:"required,max=150"`
	Slug         string  `json:"slug"          validate:"omitempty,max=150"`
	Description  *string `json:"description"   validate:"omitempty"`
	Website      *string `json:"website"       validate:"omitempty,url,max=255"`
	LogoURL      *string `json:"logo_url"      validate:"omitempty,url,max=500"`
	ContactEmail *string `json:"contact_email" validate:"omitempty,email,max=150"`
	ContactPhone *string `json:"contact_phone" validate:"omitempty,max=20"`
}

type UpdatePublisherRequest struct {
	Name         *string `json:"name"          validate:"omitempty,max=150"`
	Description  *string `json:"description"   validate:"omitempty"`
	Website      *string `json:"website"       validate:"omitempty,url,max=255"`
	LogoURL      *string `json:"logo_url"      validate:"omitempty,url,max=500"`
	ContactEmail *string `json:"contact_email" validate:"omitempty,email,max=150"`
	ContactPhone *string `json:"contact_phone" validate:"omitempty,max=20"`
}

type PublisherResponse struct {
	PublisherID  uuid.UUID `json:"publisher_id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Description  *string   `json:"description,omitempty"`
	Website      *string   `json:"website,omitempty"`
	LogoURL      *string   `json:"logo_url,omitempty"`
	ContactEmail *string   `json:"contact_email,omitempty"`
	ContactPhone *string   `json:"contact_phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromPublisherModel(m *bookModel.PublisherModel) *PublisherResponse {
	return &PublisherResponse{
		PublisherID:  m.PublisherID,
		Name:         m.PublisherName,
		Slug:         m.PublisherSlug,
		Description:  m.PublisherDescription,
		Website:      m.PublisherWebsite,
		LogoURL:      m.PublisherLogoURL,
		ContactEmail: m.PublisherContactEmail,
		ContactPhone: m.PublisherContactPhone,
		CreatedAt:    m.PublisherCreatedAt,
	}
}
