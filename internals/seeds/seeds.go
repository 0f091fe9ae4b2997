package seeds

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	bookModel "somabooks_backend/internals/features/catalog/books/model"
	userModel "somabooks_backend/internals/features/users/user/model"
)

// Run seeds demo catalog data and an admin account. It is idempotent: a
// non-empty books table means the store is already seeded.
func Run(db *gorm.DB) error {
	var count int64
	if err := db.Model(&bookModel.BookModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("⏭️  seed skipped, catalog not empty")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := seedAdmin(tx); err != nil {
			return err
		}
		publishers, err := seedPublishers(tx)
		if err != nil {
			return err
		}
		categories, err := seedCategories(tx)
		if err != nil {
			return err
		}
		if err := seedBooks(tx, publishers, categories); err != nil {
			return err
		}
		log.Println("🌱 demo data seeded")
		return nil
	})
}

func seedAdmin(tx *gorm.DB) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte("ChangeMe_2024!"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	phone := "254700000000"
	admin := userModel.UserModel{
		UserFirstName:  "John",
		UserSecondName: "Doe",
		UserEmail:      "admin@somabooks.co.ke",
		UserPassword:   string(hashed),
		UserPhone:      &phone,
		UserRole:       "admin",
		UserIsActive:   true,
	}
	return tx.Create(&admin).Error
}

func seedPublishers(tx *gorm.DB) (map[string]*bookModel.PublisherModel, error) {
	pubs := []*bookModel.PublisherModel{
		{PublisherName: "Penguin Random House", PublisherSlug: "penguin-random-house"},
		{PublisherName: "Macmillan Publishers", PublisherSlug: "macmillan-publishers"},
		{PublisherName: "East African Educational Publishers", PublisherSlug: "east-african-publishers"},
	}
	out := map[string]*bookModel.PublisherModel{}
	for _, p := range pubs {
		if err := tx.Create(p).Error; err != nil {
			return nil, err
		}
		out[p.PublisherSlug] = p
	}
	return out, nil
}

func seedCategories(tx *gorm.DB) (map[string]*bookModel.CategoryModel, error) {
	desc := func(s string) *string { return &s }
	cats := []*bookModel.CategoryModel{
		{CategoryName: "Fiction", CategorySlug: "fiction", CategoryDescription: desc("Novels and short stories")},
		{CategoryName: "Science Fiction", CategorySlug: "science-fiction"},
		{CategoryName: "Non-Fiction", CategorySlug: "non-fiction", CategoryDescription: desc("Factual literature")},
		{CategoryName: "Biography", CategorySlug: "biography"},
		{CategoryName: "Business", CategorySlug: "business", CategoryDescription: desc("Business and finance books")},
	}
	out := map[string]*bookModel.CategoryModel{}
	for _, c := range cats {
		if err := tx.Create(c).Error; err != nil {
			return nil, err
		}
		out[c.CategorySlug] = c
	}
	return out, nil
}

func seedBooks(tx *gorm.DB, pubs map[string]*bookModel.PublisherModel, cats map[string]*bookModel.CategoryModel) error {
	now := time.Now()
	salePrice := func(v float64) *float64 { return &v }
	cover := func(s string) *string { return &s }

	type seedBook struct {
		book       bookModel.BookModel
		categories []string
	}

	penguin := pubs["penguin-random-house"]
	macmillan := pubs["macmillan-publishers"]

	books := []seedBook{
		{
			book: bookModel.BookModel{
				BookTitle:            "The River Between",
				BookAuthor:           "Ngũgĩ wa Thiong'o",
				BookSlug:             "the-river-between",
				BookISBN13:           "9780143107491",
				BookShortDescription: "A classic African novel about colonial Kenya",
				BookDescription:      "Set in the hills of Kenya, this novel explores the conflict between traditional ways and modern influences.",
				BookPublisherID:      &penguin.PublisherID,
				BookPublisherName:    penguin.PublisherName,
				BookPublicationDate:  time.Date(1965, 1, 1, 0, 0, 0, 0, time.UTC),
				BookLanguage:         "English",
				BookPageCount:        150,
				BookFormat:           bookModel.BookFormatPaperback,
				BookListPrice:        1299,
				BookSalePrice:        salePrice(1099),
				BookSKU:              "BOOK001",
				BookStockQuantity:    25,
				BookLowStockThreshold: 5,
				BookIsAvailable:      true,
				BookCoverImageURL:    cover("/images/river-between.jpg"),
				BookStatus:           bookModel.BookStatusPublished,
				BookIsFeatured:       true,
				BookPublishedAt:      &now,
			},
			categories: []string{"fiction"},
		},
		{
			book: bookModel.BookModel{
				BookTitle:            "Business Adventures",
				BookAuthor:           "John Brooks",
				BookSlug:             "business-adventures",
				BookISBN13:           "9781497644892",
				BookShortDescription: "Twelve classic tales from the world of Wall Street",
				BookDescription:      "This collection of New Yorker articles provides timeless insights into business.",
				BookPublisherID:      &macmillan.PublisherID,
				BookPublisherName:    macmillan.PublisherName,
				BookPublicationDate:  time.Date(2014, 7, 1, 0, 0, 0, 0, time.UTC),
				BookLanguage:         "English",
				BookPageCount:        400,
				BookFormat:           bookModel.BookFormatHardcover,
				BookListPrice:        2499,
				BookSKU:              "BOOK002",
				BookStockQuantity:    15,
				BookLowStockThreshold: 3,
				BookIsAvailable:      true,
				BookCoverImageURL:    cover("/images/business-adventures.jpg"),
				BookStatus:           bookModel.BookStatusPublished,
				BookIsBestseller:     true,
				BookPublishedAt:      &now,
			},
			categories: []string{"business", "non-fiction"},
		},
		{
			book: bookModel.BookModel{
				BookTitle:            "Petals of Blood",
				BookAuthor:           "Ngũgĩ wa Thiong'o",
				BookSlug:             "petals-of-blood",
				BookISBN13:           "9780143105428",
				BookShortDescription: "A powerful novel about post-colonial Kenya",
				BookDescription:      "This novel follows four characters in post-colonial Kenya.",
				BookPublisherID:      &penguin.PublisherID,
				BookPublisherName:    penguin.PublisherName,
				BookPublicationDate:  time.Date(1977, 1, 1, 0, 0, 0, 0, time.UTC),
				BookLanguage:         "English",
				BookPageCount:        300,
				BookFormat:           bookModel.BookFormatPaperback,
				BookListPrice:        1499,
				BookSKU:              "BOOK003",
				BookStockQuantity:    8,
				BookLowStockThreshold: 2,
				BookIsAvailable:      true,
				BookCoverImageURL:    cover("/images/petals-of-blood.jpg"),
				BookStatus:           bookModel.BookStatusPublished,
				BookPublishedAt:      &now,
			},
			categories: []string{"fiction"},
		},
	}

	for i := range books {
		b := &books[i]
		if err := tx.Create(&b.book).Error; err != nil {
			return err
		}
		for _, slug := range b.categories {
			cat, ok := cats[slug]
			if !ok {
				continue
			}
			if err := tx.Create(&bookModel.BookCategoryModel{
				BookCategoryBookID:     b.book.BookID,
				BookCategoryCategoryID: cat.CategoryID,
			}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
