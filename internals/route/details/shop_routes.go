package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	cartController "somabooks_backend/internals/features/shop/cart/controller"
	orderController "somabooks_backend/internals/features/shop/orders/controller"
	reviewController "somabooks_backend/internals/features/shop/reviews/controller"
	wishlistController "somabooks_backend/internals/features/shop/wishlist/controller"
)

// ShopUserRoutes: cart, orders, reviews and wishlist for signed-in users.
func ShopUserRoutes(r fiber.Router, db *gorm.DB) {
	cart := cartController.NewCartController(db)
	orders := orderController.NewOrderController(db)
	reviews := reviewController.NewReviewController(db)
	wishlist := wishlistController.NewWishlistController(db)

	// cart
	r.Get("/cart", cart.GetCart)
	r.Delete("/cart", cart.ClearCart)
	r.Post("/cart/items", cart.AddItem)
	r.Put("/cart/items/:id", cart.UpdateItem)
	r.Delete("/cart/items/:id", cart.RemoveItem)

	// orders
	r.Post("/orders", orders.CreateOrder)
	r.Get("/orders", orders.ListMyOrders)
	r.Get("/orders/:id", orders.GetOrder)
	r.Put("/orders/:id", orders.UpdateOrder)

	// reviews
	r.Post("/reviews", reviews.CreateReview)
	r.Put("/reviews/:id", reviews.UpdateReview)
	r.Delete("/reviews/:id", reviews.DeleteReview)
	r.Post("/reviews/:id/vote", reviews.VoteReview)

	// wishlist
	r.Get("/wishlist", wishlist.GetWishlist)
	r.Post("/wishlist/items", wishlist.AddItem)
	r.Put("/wishlist/items/:id", wishlist.UpdateItem)
	r.Delete("/wishlist/items/:id", wishlist.RemoveItem)
	r.Post("/wishlist/items/:id/move-to-cart", wishlist.MoveToCart)
}

// PaymentCallbackRoutes: the simulated gateway webhook, no auth.
func PaymentCallbackRoutes(app *fiber.App, db *gorm.DB) {
	payments := orderController.NewPaymentController(db)
	app.Post("/api/payments/callback", payments.HandleCallback)
}
