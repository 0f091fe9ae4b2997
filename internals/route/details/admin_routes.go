package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookController "somabooks_backend/internals/features/catalog/books/controller"
	dashboardController "somabooks_backend/internals/features/home/admin/controller"
	orderController "somabooks_backend/internals/features/shop/orders/controller"
	reviewController "somabooks_backend/internals/features/shop/reviews/controller"
	userController "somabooks_backend/internals/features/users/user/controller"
)

// AdminRoutes: the whole back office. The group already carries
// AuthMiddleware + IsAdmin.
func AdminRoutes(r fiber.Router, db *gorm.DB) {
	dashboard := dashboardController.NewDashboardController(db)
	books := bookController.NewAdminBookController(db)
	taxonomy := bookController.NewAdminTaxonomyController(db)
	orders := orderController.NewAdminOrderController(db)
	reviews := reviewController.NewAdminReviewController(db)
	users := userController.NewAdminUserController(db)

	r.Get("/stats", dashboard.GetStats)

	// catalog
	r.Get("/books", books.ListBooks)
	r.Post("/books", books.CreateBook)
	r.Get("/books/:id", books.GetBook)
	r.Put("/books/:id", books.UpdateBook)
	r.Delete("/books/:id", books.DeleteBook)
	r.Post("/books/:id/cover", books.UploadCover)
	r.Post("/books/:id/adjust-sales", books.AdjustSales)

	r.Post("/categories", taxonomy.CreateCategory)
	r.Put("/categories/:id", taxonomy.UpdateCategory)
	r.Delete("/categories/:id", taxonomy.DeleteCategory)

	r.Get("/publishers", taxonomy.ListPublishers)
	r.Post("/publishers", taxonomy.CreatePublisher)
	r.Put("/publishers/:id", taxonomy.UpdatePublisher)
	r.Delete("/publishers/:id", taxonomy.DeletePublisher)

	// orders
	r.Get("/orders", orders.ListOrders)
	r.Put("/orders/:id", orders.UpdateOrder)

	// reviews
	r.Get("/reviews", reviews.ListReviews)
	r.Put("/reviews/:id", reviews.ModerateReview)

	// users
	r.Get("/users", users.ListUsers)
	r.Put("/users/:id", users.UpdateUser)
}
