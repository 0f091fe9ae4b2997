package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	userController "somabooks_backend/internals/features/users/user/controller"
	rateLimiter "somabooks_backend/internals/middlewares"
)

// AuthRoutes: registration and login, throttled per IP.
func AuthRoutes(app *fiber.App, db *gorm.DB) {
	auth := userController.NewAuthController(db)

	api := app.Group("/api/auth")
	api.Post("/register", rateLimiter.RegisterRateLimiter(), auth.Register)
	api.Post("/login", rateLimiter.LoginRateLimiter(), auth.Login)
	api.Post("/login-google", rateLimiter.LoginRateLimiter(), auth.LoginGoogle)
}

// ProfileRoutes: the authenticated half of the auth surface.
func ProfileRoutes(r fiber.Router, db *gorm.DB) {
	auth := userController.NewAuthController(db)

	r.Post("/auth/logout", auth.Logout)
	r.Get("/auth/me", auth.Me)
	r.Put("/auth/me", auth.UpdateMe)
}
