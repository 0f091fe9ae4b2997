package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	bookModel "somabooks_backend/internals/features/catalog/books/model"
	orderModel "somabooks_backend/internals/features/shop/orders/model"
	reviewModel "somabooks_backend/internals/features/shop/reviews/model"
	userModel "somabooks_backend/internals/features/users/user/model"
)

// The test app impersonates whoever the X-Test-User header names, so one
// app serves multiple reviewers and the moderator.
func newReviewTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&userModel.UserModel{},
		&bookModel.BookModel{},
		&orderModel.OrderModel{},
		&orderModel.OrderItemModel{},
		&reviewModel.ReviewModel{},
		&reviewModel.ReviewVoteModel{},
	))

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if id := c.Get("X-Test-User"); id != "" {
			c.Locals("user_id", id)
		}
		c.Locals("role", c.Get("X-Test-Role", "user"))
		return c.Next()
	})

	ctl := NewReviewController(db)
	admin := NewAdminReviewController(db)
	app.Get("/api/books/:bookId/reviews", ctl.ListBookReviews)
	app.Post("/api/reviews", ctl.CreateReview)
	app.Put("/api/reviews/:id", ctl.UpdateReview)
	app.Delete("/api/reviews/:id", ctl.DeleteReview)
	app.Post("/api/reviews/:id/vote", ctl.VoteReview)
	app.Put("/api/admin/reviews/:id", admin.ModerateReview)

	return app, db
}

func createReviewUser(t *testing.T, db *gorm.DB, first string) *userModel.UserModel {
	t.Helper()
	u := userModel.UserModel{
		UserFirstName:  first,
		UserSecondName: "Tester",
		UserEmail:      first + "-" + uuid.New().String()[:8] + "@example.com",
		UserPassword:   "x",
		UserRole:       "user",
		UserIsActive:   true,
	}
	require.NoError(t, db.Create(&u).Error)
	return &u
}

func createReviewBook(t *testing.T, db *gorm.DB) *bookModel.BookModel {
	t.Helper()
	b := bookModel.BookModel{
		BookTitle:            "A Grain of Wheat",
		BookAuthor:           "Ngugi wa Thiong'o",
		BookSlug:             "a-grain-of-wheat-" + uuid.New().String()[:8],
		BookISBN13:           uuid.New().String()[:13],
		BookShortDescription: "short",
		BookDescription:      "long",
		BookPublisherName:    "Press",
		BookPageCount:        247,
		BookFormat:           bookModel.BookFormatPaperback,
		BookListPrice:        1100,
		BookSKU:              "SKU-" + uuid.New().String()[:8],
		BookStockQuantity:    10,
		BookIsAvailable:      true,
		BookStatus:           bookModel.BookStatusPublished,
	}
	require.NoError(t, db.Create(&b).Error)
	return &b
}

func reviewRequest(t *testing.T, app *fiber.App, method, path string, asUser uuid.UUID, role string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Test-User", asUser.String())
	req.Header.Set("X-Test-Role", role)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestReviewModerationSyncsRating(t *testing.T) {
	app, db := newReviewTestApp(t)
	book := createReviewBook(t, db)
	alice := createReviewUser(t, db, "Alice")
	bob := createReviewUser(t, db, "Bob")

	resp := reviewRequest(t, app, http.MethodPost, "/api/reviews", alice.UserID, "user",
		fiber.Map{"book_id": book.BookID, "rating": 5, "title": "Loved it"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp = reviewRequest(t, app, http.MethodPost, "/api/reviews", bob.UserID, "user",
		fiber.Map{"book_id": book.BookID, "rating": 3})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// pending reviews do not touch the rollup
	var fresh bookModel.BookModel
	require.NoError(t, db.First(&fresh, "book_id = ?", book.BookID).Error)
	assert.Equal(t, 0, fresh.BookRatingCount)

	var reviews []reviewModel.ReviewModel
	require.NoError(t, db.Order("review_created_at ASC").Find(&reviews).Error)
	require.Len(t, reviews, 2)

	moderator := createReviewUser(t, db, "Mod")
	for _, r := range reviews {
		resp = reviewRequest(t, app, http.MethodPut,
			fmt.Sprintf("/api/admin/reviews/%s", r.ReviewID), moderator.UserID, "admin",
			fiber.Map{"status": "approved"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	require.NoError(t, db.First(&fresh, "book_id = ?", book.BookID).Error)
	assert.Equal(t, 2, fresh.BookRatingCount)
	assert.Equal(t, 2, fresh.BookReviewCount)
	assert.InDelta(t, 4.0, fresh.BookAverageRating, 1e-9)

	// rejecting one recomputes the rollup
	resp = reviewRequest(t, app, http.MethodPut,
		fmt.Sprintf("/api/admin/reviews/%s", reviews[1].ReviewID), moderator.UserID, "admin",
		fiber.Map{"status": "rejected"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&fresh, "book_id = ?", book.BookID).Error)
	assert.Equal(t, 1, fresh.BookRatingCount)
	assert.InDelta(t, 5.0, fresh.BookAverageRating, 1e-9)
}

func TestCreateReviewOncePerBook(t *testing.T) {
	app, db := newReviewTestApp(t)
	book := createReviewBook(t, db)
	alice := createReviewUser(t, db, "Alice")

	resp := reviewRequest(t, app, http.MethodPost, "/api/reviews", alice.UserID, "user",
		fiber.Map{"book_id": book.BookID, "rating": 4})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = reviewRequest(t, app, http.MethodPost, "/api/reviews", alice.UserID, "user",
		fiber.Map{"book_id": book.BookID, "rating": 2})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestVoteReview(t *testing.T) {
	app, db := newReviewTestApp(t)
	book := createReviewBook(t, db)
	alice := createReviewUser(t, db, "Alice")
	bob := createReviewUser(t, db, "Bob")
	mod := createReviewUser(t, db, "Mod")

	resp := reviewRequest(t, app, http.MethodPost, "/api/reviews", alice.UserID, "user",
		fiber.Map{"book_id": book.BookID, "rating": 5})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var review reviewModel.ReviewModel
	require.NoError(t, db.First(&review).Error)

	// only approved reviews accept votes
	resp = reviewRequest(t, app, http.MethodPost,
		fmt.Sprintf("/api/reviews/%s/vote", review.ReviewID), bob.UserID, "user",
		fiber.Map{"is_helpful": true})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = reviewRequest(t, app, http.MethodPut,
		fmt.Sprintf("/api/admin/reviews/%s", review.ReviewID), mod.UserID, "admin",
		fiber.Map{"status": "approved"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// authors cannot vote on their own review
	resp = reviewRequest(t, app, http.MethodPost,
		fmt.Sprintf("/api/reviews/%s/vote", review.ReviewID), alice.UserID, "user",
		fiber.Map{"is_helpful": true})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = reviewRequest(t, app, http.MethodPost,
		fmt.Sprintf("/api/reviews/%s/vote", review.ReviewID), bob.UserID, "user",
		fiber.Map{"is_helpful": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&review, "review_id = ?", review.ReviewID).Error)
	assert.Equal(t, 1, review.ReviewHelpfulCount)
	assert.Equal(t, 0, review.ReviewNotHelpfulCount)

	// switching the vote moves the tallies, it does not double-count
	resp = reviewRequest(t, app, http.MethodPost,
		fmt.Sprintf("/api/reviews/%s/vote", review.ReviewID), bob.UserID, "user",
		fiber.Map{"is_helpful": false})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, db.First(&review, "review_id = ?", review.ReviewID).Error)
	assert.Equal(t, 0, review.ReviewHelpfulCount)
	assert.Equal(t, 1, review.ReviewNotHelpfulCount)
}
