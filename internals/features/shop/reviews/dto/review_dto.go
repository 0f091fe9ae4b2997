package dto

import (
	"time"

	"github.com/google/uuid"

	reviewModel "somabooks_backend/internals/features/shop/reviews/model"
)

/* =========================================================
   1) REQUEST DTO
   ========================================================= */

type CreateReviewRequest struct {
	BookID  uuid.UUID `json:"book_id" validate:"required"`
	Rating  int       `json:"rating"  validate:"required,min=1,max=5"`
	Title   *string   `json:"title"   validate:"omitempty,max=200"`
	Content *string   `json:"content" validate:"omitempty,max=5000"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"  validate:"omitempty,min=1,max=5"`
	Title   *string `json:"title"   validate:"omitempty,max=200"`
	Content *string `json:"content" validate:"omitempty,max=5000"`
}

type VoteReviewRequest struct {
	IsHelpful bool `json:"is_helpful"`
}

// ModerateReviewRequest: admin approval/rejection + optional response.
type ModerateReviewRequest struct {
	Status          string  `json:"status"           validate:"required,oneof=approved rejected flagged"`
	ModerationNotes *string `json:"moderation_notes" validate:"omitempty,max=1000"`
	AdminResponse   *string `json:"admin_response"   validate:"omitempty,max=2000"`
}

/* =========================================================
   2) RESPONSE DTO
   ========================================================= */

type ReviewResponse struct {
	ReviewID uuid.UUID `json:"review_id"`
	BookID   uuid.UUID `json:"book_id"`
	UserID   uuid.UUID `json:"user_id"`

	ReviewerName string `json:"reviewer_name,omitempty"`

	Rating  int     `json:"rating"`
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`

	Status             string `json:"status"`
	IsVerifiedPurchase bool   `json:"is_verified_purchase"`
	HelpfulCount       int    `json:"helpful_count"`
	NotHelpfulCount    int    `json:"not_helpful_count"`

	AdminResponse *string `json:"admin_response,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func FromReviewModel(m *reviewModel.ReviewModel, reviewerName string) *ReviewResponse {
	if m == nil {
		return nil
	}
	return &ReviewResponse{
		ReviewID:           m.ReviewID,
		BookID:             m.ReviewBookID,
		UserID:             m.ReviewUserID,
		ReviewerName:       reviewerName,
		Rating:             m.ReviewRating,
		Title:              m.ReviewTitle,
		Content:            m.ReviewContent,
		Status:             m.ReviewStatus,
		IsVerifiedPurchase: m.ReviewIsVerifiedPurchase,
		HelpfulCount:       m.ReviewHelpfulCount,
		NotHelpfulCount:    m.ReviewNotHelpfulCount,
		AdminResponse:      m.ReviewAdminResponse,
		CreatedAt:          m.ReviewCreatedAt,
		UpdatedAt:          m.ReviewUpdatedAt,
	}
}
