package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookController "somabooks_backend/internals/features/catalog/books/controller"
	reviewController "somabooks_backend/internals/features/shop/reviews/controller"
)

// CatalogPublicRoutes: storefront browsing, no auth required.
func CatalogPublicRoutes(app *fiber.App, db *gorm.DB) {
	books := bookController.NewBookController(db)
	reviews := reviewController.NewReviewController(db)

	api := app.Group("/api")

	// static paths go first so they never match as :id
	api.Get("/books/featured", books.FeaturedBooks)
	api.Get("/books/bestsellers", books.BestsellerBooks)
	api.Get("/books/search", books.SearchBooks)
	api.Get("/books/:bookId/reviews", reviews.ListBookReviews)
	api.Get("/books/:id", books.GetBook)
	api.Get("/books", books.ListBooks)

	api.Get("/categories", books.ListCategories)
}
