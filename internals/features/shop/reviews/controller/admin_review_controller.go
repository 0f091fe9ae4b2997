package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "somabooks_backend/internals/helpers"

	"somabooks_backend/internals/features/shop/reviews/dto"
	reviewModel "somabooks_backend/internals/features/shop/reviews/model"
)

// AdminReviewController: moderation queue, mounted behind the admin gate.
type AdminReviewController struct {
	DB *gorm.DB
}

func NewAdminReviewController(db *gorm.DB) *AdminReviewController {
	return &AdminReviewController{DB: db}
}

/* =======================================================
   GET /api/admin/reviews — filterable by status/book/user
======================================================= */

func (ctl *AdminReviewController) ListReviews(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&reviewModel.ReviewModel{})
	if status := c.Query("status"); status != "" {
		q = q.Where("review_status = ?", status)
	}
	if bookID, err := uuid.Parse(c.Query("book_id")); err == nil {
		q = q.Where("review_book_id = ?", bookID)
	}
	if userID, err := uuid.Parse(c.Query("user_id")); err == nil {
		q = q.Where("review_user_id = ?", userID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count reviews")
	}

	var reviews []reviewModel.ReviewModel
	if err := q.Order("review_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&reviews).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch reviews")
	}

	resp := make([]*dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		resp = append(resp, dto.FromReviewModel(&reviews[i], ""))
	}
	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Reviews fetched successfully", resp, pagination)
}

/* =======================================================
   PUT /api/admin/reviews/:id — approve / reject / flag
======================================================= */

func (ctl *AdminReviewController) ModerateReview(c *fiber.Ctx) error {
	adminID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	reviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid review id")
	}

	var req dto.ModerateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var review reviewModel.ReviewModel
	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", reviewID).First(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Review not found")
			}
			return err
		}

		now := time.Now()
		review.ReviewStatus = req.Status
		review.ReviewModeratedBy = &adminID
		review.ReviewModeratedAt = &now
		if req.ModerationNotes != nil {
			review.ReviewModerationNotes = req.ModerationNotes
		}
		if req.AdminResponse != nil {
			review.ReviewAdminResponse = req.AdminResponse
		}
		if err := tx.Save(&review).Error; err != nil {
			return err
		}
		// approval state changed; the public rollup follows
		return syncBookRating(tx, review.ReviewBookID)
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return err
	}
	return helper.JsonUpdated(c, "Review moderated successfully", dto.FromReviewModel(&review, ""))
}
