package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"somabooks_backend/internals/configs"
	bookModel "somabooks_backend/internals/features/catalog/books/model"
	cartModel "somabooks_backend/internals/features/shop/cart/model"
	orderModel "somabooks_backend/internals/features/shop/orders/model"
	reviewModel "somabooks_backend/internals/features/shop/reviews/model"
	wishlistModel "somabooks_backend/internals/features/shop/wishlist/model"
	userModel "somabooks_backend/internals/features/users/user/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 connecting to PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=somabooks&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // PgBouncer-friendly (transaction pooling)
	}), &gorm.Config{
		Logger: configs.NewGormLogger(),
	})
	if err != nil {
		log.Fatalf("❌ DB connect failed: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate runs AutoMigrate for every model plus the raw indexes GORM tags
// cannot express (partial unique index for the single active cart).
func Migrate() {
	if err := DB.AutoMigrate(
		&userModel.UserModel{},
		&bookModel.PublisherModel{},
		&bookModel.CategoryModel{},
		&bookModel.BookModel{},
		&bookModel.BookCategoryModel{},
		&bookModel.BookImageModel{},
		&cartModel.CartModel{},
		&cartModel.CartItemModel{},
		&orderModel.AddressModel{},
		&orderModel.OrderModel{},
		&orderModel.OrderItemModel{},
		&orderModel.PaymentModel{},
		&reviewModel.ReviewModel{},
		&reviewModel.ReviewVoteModel{},
		&wishlistModel.WishlistModel{},
		&wishlistModel.WishlistItemModel{},
	); err != nil {
		log.Fatalf("❌ migrate failed: %v", err)
	}

	// one active cart per user, enforced by the database, not the query pattern
	if err := DB.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uq_carts_one_active_per_user
		 ON carts (cart_user_id) WHERE cart_is_active`,
	).Error; err != nil {
		log.Printf("[WARN] partial index carts: %v", err)
	}

	log.Println("✅ migration done.")
}

func WarmUpQueries() {
	go func() {
		time.Sleep(500 * time.Millisecond)
		if err := ping(); err != nil {
			log.Printf("warm-up ping err: %v", err)
		}
	}()
}

func ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
