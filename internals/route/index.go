// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	routeDetails "somabooks_backend/internals/route/details"

	authMiddleware "somabooks_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up PUBLIC routes...")
	routeDetails.AuthRoutes(app, db)
	routeDetails.CatalogPublicRoutes(app, db)
	routeDetails.PaymentCallbackRoutes(app, db)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up PRIVATE group...")
	private := app.Group("/api", authMiddleware.AuthMiddleware(db))
	routeDetails.ProfileRoutes(private, db)
	routeDetails.ShopUserRoutes(private, db)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/admin",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.IsAdmin(),
	)
	routeDetails.AdminRoutes(admin, db)
}
