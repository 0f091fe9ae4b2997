package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "somabooks_backend/internals/helpers"

	bookModel "somabooks_backend/internals/features/catalog/books/model"
	orderModel "somabooks_backend/internals/features/shop/orders/model"
	"somabooks_backend/internals/features/shop/reviews/dto"
	reviewModel "somabooks_backend/internals/features/shop/reviews/model"
	userModel "somabooks_backend/internals/features/users/user/model"
)

type ReviewController struct {
	DB *gorm.DB
}

func NewReviewController(db *gorm.DB) *ReviewController {
	return &ReviewController{DB: db}
}

// syncBookRating recomputes the rating rollup from approved reviews.
func syncBookRating(tx *gorm.DB, bookID uuid.UUID) error {
	type agg struct {
		Avg   float64
		Count int64
	}
	var a agg
	if err := tx.Model(&reviewModel.ReviewModel{}).
		Select("COALESCE(AVG(review_rating),0) AS avg, COUNT(*) AS count").
		Where("review_book_id = ? AND review_status = ?", bookID, reviewModel.ReviewStatusApproved).
		Scan(&a).Error; err != nil {
		return err
	}
	return tx.Model(&bookModel.BookModel{}).
		Where("book_id = ?", bookID).
		Updates(map[string]any{
			"book_average_rating": a.Avg,
			"book_rating_count":   a.Count,
			"book_review_count":   a.Count,
		}).Error
}

// hasPurchased reports whether the user has a non-cancelled order containing
// the book. Used for the verified-purchase badge, not as a gate.
func hasPurchased(db *gorm.DB, userID, bookID uuid.UUID) bool {
	var count int64
	db.Model(&orderModel.OrderItemModel{}).
		Joins("JOIN orders ON orders.order_id = order_items.order_item_order_id").
		Where("order_items.order_item_book_id = ?", bookID).
		Where("orders.order_user_id = ?", userID).
		Where("orders.order_status NOT IN ?", []string{
			orderModel.OrderStatusCancelled, orderModel.OrderStatusRefunded,
		}).
		Count(&count)
	return count > 0
}

func (ctl *ReviewController) reviewerName(userID uuid.UUID) string {
	var user userModel.UserModel
	if err := ctl.DB.Select("user_first_name", "user_second_name").
		Where("user_id = ?", userID).First(&user).Error; err != nil {
		return ""
	}
	return user.FullName()
}

/* =======================================================
   GET /api/books/:bookId/reviews — approved only
======================================================= */

func (ctl *ReviewController) ListBookReviews(c *fiber.Ctx) error {
	bookID, err := uuid.Parse(c.Params("bookId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid book id")
	}

	paging := helper.ResolvePaging(c, 10, 50)

	q := ctl.DB.Model(&reviewModel.ReviewModel{}).
		Where("review_book_id = ? AND review_status = ?", bookID, reviewModel.ReviewStatusApproved)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count reviews")
	}

	sort := "review_created_at DESC"
	if c.Query("sort") == "helpful" {
		sort = "review_helpful_count DESC"
	}

	var reviews []reviewModel.ReviewModel
	if err := q.Order(sort).
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&reviews).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch reviews")
	}

	resp := make([]*dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		resp = append(resp, dto.FromReviewModel(&reviews[i], ctl.reviewerName(reviews[i].ReviewUserID)))
	}
	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Reviews fetched successfully", resp, pagination)
}

/* =======================================================
   POST /api/reviews — one per (book, user)
======================================================= */

func (ctl *ReviewController) CreateReview(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var book bookModel.BookModel
	if err := ctl.DB.Where("book_id = ? AND book_status = ?", req.BookID, bookModel.BookStatusPublished).
		First(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Book not found")
		}
		return err
	}

	var existing reviewModel.ReviewModel
	if err := ctl.DB.Where("review_book_id = ? AND review_user_id = ?", req.BookID, userID).
		First(&existing).Error; err == nil {
		return helper.JsonError(c, fiber.StatusConflict, "You have already reviewed this book")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	review := reviewModel.ReviewModel{
		ReviewBookID:             req.BookID,
		ReviewUserID:             userID,
		ReviewRating:             req.Rating,
		ReviewTitle:              req.Title,
		ReviewContent:            req.Content,
		ReviewStatus:             reviewModel.ReviewStatusPending,
		ReviewIsVerifiedPurchase: hasPurchased(ctl.DB, userID, req.BookID),
	}
	if err := ctl.DB.Create(&review).Error; err != nil {
		return err
	}
	return helper.JsonCreated(c, "Review submitted for moderation",
		dto.FromReviewModel(&review, ctl.reviewerName(userID)))
}

/* =======================================================
   PUT /api/reviews/:id — edit own review (back to pending)
======================================================= */

func (ctl *ReviewController) UpdateReview(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	reviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid review id")
	}

	var req dto.UpdateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var review reviewModel.ReviewModel
	if err := ctl.DB.Where("review_id = ? AND review_user_id = ?", reviewID, userID).
		First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Review not found")
		}
		return err
	}

	if req.Rating != nil {
		review.ReviewRating = *req.Rating
	}
	if req.Title != nil {
		review.ReviewTitle = req.Title
	}
	if req.Content != nil {
		review.ReviewContent = req.Content
	}
	wasApproved := review.ReviewStatus == reviewModel.ReviewStatusApproved
	review.ReviewStatus = reviewModel.ReviewStatusPending

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&review).Error; err != nil {
			return err
		}
		if wasApproved {
			// edited reviews leave the public rollup until re-approved
			return syncBookRating(tx, review.ReviewBookID)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Review updated, pending moderation",
		dto.FromReviewModel(&review, ctl.reviewerName(userID)))
}

/* =======================================================
   DELETE /api/reviews/:id — delete own review
======================================================= */

func (ctl *ReviewController) DeleteReview(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	reviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid review id")
	}

	var review reviewModel.ReviewModel
	q := ctl.DB.Where("review_id = ?", reviewID)
	if !helper.IsAdminRole(c) {
		q = q.Where("review_user_id = ?", userID)
	}
	if err := q.First(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Review not found")
		}
		return err
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&reviewModel.ReviewVoteModel{},
			"review_vote_review_id = ?", review.ReviewID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&reviewModel.ReviewModel{},
			"review_id = ?", review.ReviewID).Error; err != nil {
			return err
		}
		return syncBookRating(tx, review.ReviewBookID)
	})
	if err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Review deleted successfully", fiber.Map{"review_id": review.ReviewID})
}

/* =======================================================
   POST /api/reviews/:id/vote — helpful / not helpful
======================================================= */

func (ctl *ReviewController) VoteReview(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	reviewID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid review id")
	}

	var req dto.VoteReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	var review reviewModel.ReviewModel
	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ? AND review_status = ?",
			reviewID, reviewModel.ReviewStatusApproved).
			First(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "Review not found")
			}
			return err
		}
		if review.ReviewUserID == userID {
			return fiber.NewError(fiber.StatusBadRequest, "You cannot vote on your own review")
		}

		var vote reviewModel.ReviewVoteModel
		findErr := tx.Where("review_vote_review_id = ? AND review_vote_user_id = ?",
			reviewID, userID).First(&vote).Error
		switch {
		case findErr == nil:
			if vote.ReviewVoteIsHelpful == req.IsHelpful {
				return nil // same vote twice is a no-op
			}
			vote.ReviewVoteIsHelpful = req.IsHelpful
			if err := tx.Save(&vote).Error; err != nil {
				return err
			}
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			if err := tx.Create(&reviewModel.ReviewVoteModel{
				ReviewVoteReviewID:  reviewID,
				ReviewVoteUserID:    userID,
				ReviewVoteIsHelpful: req.IsHelpful,
			}).Error; err != nil {
				return err
			}
		default:
			return findErr
		}

		// recount both tallies from the votes table
		var helpful, notHelpful int64
		if err := tx.Model(&reviewModel.ReviewVoteModel{}).
			Where("review_vote_review_id = ? AND review_vote_is_helpful", reviewID).
			Count(&helpful).Error; err != nil {
			return err
		}
		if err := tx.Model(&reviewModel.ReviewVoteModel{}).
			Where("review_vote_review_id = ? AND NOT review_vote_is_helpful", reviewID).
			Count(&notHelpful).Error; err != nil {
			return err
		}
		review.ReviewHelpfulCount = int(helpful)
		review.ReviewNotHelpfulCount = int(notHelpful)
		return tx.Model(&reviewModel.ReviewModel{}).
			Where("review_id = ?", reviewID).
			Updates(map[string]any{
				"review_helpful_count":     helpful,
				"review_not_helpful_count": notHelpful,
			}).Error
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return err
	}
	return helper.JsonUpdated(c, "Vote recorded",
		dto.FromReviewModel(&review, ctl.reviewerName(review.ReviewUserID)))
}
