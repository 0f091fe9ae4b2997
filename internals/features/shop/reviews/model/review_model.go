package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review status vocabulary
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
	ReviewStatusFlagged  = "flagged"
)

type ReviewModel struct {
	ReviewID uuid.UUID `gorm:"column:review_id;type:uuid;primaryKey" json:"review_id"`

	ReviewBookID uuid.UUID `gorm:"column:review_book_id;type:uuid;not null;index;uniqueIndex:uq_reviews_book_user" json:"review_book_id"`
	ReviewUserID uuid.UUID `gorm:"column:review_user_id;type:uuid;not null;index;uniqueIndex:uq_reviews_book_user" json:"review_user_id"`

	ReviewTitle   *string `gorm:"column:review_title;type:varchar(200)" json:"review_title,omitempty"`
	ReviewContent *string `gorm:"column:review_content;type:text" json:"review_content,omitempty"`
	ReviewRating  int     `gorm:"column:review_rating;not null" json:"review_rating"` // 1..5

	ReviewStatus             string `gorm:"column:review_status;type:varchar(20);not null;default:pending" json:"review_status"`
	ReviewIsVerifiedPurchase bool   `gorm:"column:review_is_verified_purchase;not null;default:false" json:"review_is_verified_purchase"`
	ReviewHelpfulCount       int    `gorm:"column:review_helpful_count;not null;default:0" json:"review_helpful_count"`
	ReviewNotHelpfulCount    int    `gorm:"column:review_not_helpful_count;not null;default:0" json:"review_not_helpful_count"`

	// Admin moderation
	ReviewModeratedBy     *uuid.UUID `gorm:"column:review_moderated_by;type:uuid" json:"review_moderated_by,omitempty"`
	ReviewModerationNotes *string    `gorm:"column:review_moderation_notes;type:text" json:"-"`
	ReviewAdminResponse   *string    `gorm:"column:review_admin_response;type:text" json:"review_admin_response,omitempty"`

	ReviewCreatedAt   time.Time  `gorm:"column:review_created_at;autoCreateTime" json:"review_created_at"`
	ReviewUpdatedAt   *time.Time `gorm:"column:review_updated_at;autoUpdateTime" json:"review_updated_at,omitempty"`
	ReviewModeratedAt *time.Time `gorm:"column:review_moderated_at" json:"review_moderated_at,omitempty"`
}

func (ReviewModel) TableName() string { return "reviews" }

func (r *ReviewModel) BeforeCreate(tx *gorm.DB) error {
	if r.ReviewID == uuid.Nil {
		r.ReviewID = uuid.New()
	}
	return nil
}

// ReviewVoteModel: one helpful/not-helpful vote per user per review.
type ReviewVoteModel struct {
	ReviewVoteID uuid.UUID `gorm:"column:review_vote_id;type:uuid;primaryKey" json:"review_vote_id"`

	ReviewVoteReviewID uuid.UUID `gorm:"column:review_vote_review_id;type:uuid;not null;index;uniqueIndex:uq_review_votes_review_user" json:"review_vote_review_id"`
	ReviewVoteUserID   uuid.UUID `gorm:"column:review_vote_user_id;type:uuid;not null;uniqueIndex:uq_review_votes_review_user" json:"review_vote_user_id"`

	ReviewVoteIsHelpful bool `gorm:"column:review_vote_is_helpful;not null" json:"review_vote_is_helpful"`

	ReviewVoteCreatedAt time.Time `gorm:"column:review_vote_created_at;autoCreateTime" json:"review_vote_created_at"`
}

func (ReviewVoteModel) TableName() string { return "review_votes" }

func (v *ReviewVoteModel) BeforeCreate(tx *gorm.DB) error {
	if v.ReviewVoteID == uuid.Nil {
		v.ReviewVoteID = uuid.New()
	}
	return nil
}
