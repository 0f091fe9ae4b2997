package controller

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "somabooks_backend/internals/helpers"

	"somabooks_backend/internals/features/catalog/books/dto"
	bookModel "somabooks_backend/internals/features/catalog/books/model"
)

// BookController serves the public storefront catalog. Only published books
// are ever visible here; drafts and archived titles belong to the admin API.
type BookController struct {
	DB *gorm.DB
}

func NewBookController(db *gorm.DB) *BookController {
	return &BookController{DB: db}
}

/* =======================================================
   GET /api/books — filterable, sortable listing
======================================================= */

func (ctl *BookController) ListBooks(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&bookModel.BookModel{}).
		Where("book_status = ?", bookModel.BookStatusPublished)

	if cat := c.Query("category"); cat != "" {
		q = q.Where(
			"book_id IN (?)",
			ctl.DB.Model(&bookModel.BookCategoryModel{}).
				Select("book_category_book_id").
				Where("book_category_category_id IN (?)",
					ctl.DB.Model(&bookModel.CategoryModel{}).
						Select("category_id").
						Where("category_slug = ?", cat),
				),
		)
	}
	if author := c.Query("author"); author != "" {
		q = q.Where("book_author ILIKE ?", "%"+author+"%")
	}
	if pub := c.Query("publisher"); pub != "" {
		q = q.Where(
			"book_publisher_id IN (?)",
			ctl.DB.Model(&bookModel.PublisherModel{}).
				Select("publisher_id").
				Where("publisher_slug = ?", pub),
		)
	}
	if v := c.Query("min_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q = q.Where("book_list_price >= ?", f)
		}
	}
	if v := c.Query("max_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			q = q.Where("book_list_price <= ?", f)
		}
	}
	if format := c.Query("format"); format != "" {
		q = q.Where("book_format = ?", format)
	}
	if lang := c.Query("language"); lang != "" {
		q = q.Where("book_language = ?", lang)
	}
	if v := c.Query("in_stock"); strings.EqualFold(v, "true") {
		q = q.Where(
			"book_is_available AND (book_stock_quantity > 0 OR (book_allow_backorders AND book_max_backorders > 0))",
		)
	}
	for param, column := range map[string]string{
		"featured":    "book_is_featured",
		"bestseller":  "book_is_bestseller",
		"new_release": "book_is_new_release",
	} {
		if v := c.Query(param); v != "" {
			q = q.Where(column+" = ?", strings.EqualFold(v, "true"))
		}
	}

	q = q.Order(bookSortClause(c.Query("sort", "created_at"), c.Query("order", "desc")))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count books")
	}

	var books []bookModel.BookModel
	if err := q.Limit(paging.Limit).Offset(paging.Offset).Find(&books).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch books")
	}

	resp := make([]dto.BookListResponse, 0, len(books))
	for i := range books {
		resp = append(resp, dto.ToBookListResponse(&books[i]))
	}
	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Books fetched successfully", resp, pagination)
}

func bookSortClause(sort, order string) string {
	dir := "DESC"
	if strings.EqualFold(order, "asc") {
		dir = "ASC"
	}
	switch sort {
	case "title":
		return "book_title " + dir
	case "price":
		return "book_list_price " + dir
	case "rating":
		return "book_average_rating " + dir
	case "total_sold":
		return "book_total_sold " + dir
	default:
		return "book_created_at " + dir
	}
}

/* =======================================================
   GET /api/books/:idOrSlug — public detail
======================================================= */

func (ctl *BookController) GetBook(c *fiber.Ctx) error {
	param := c.Params("id")

	q := ctl.DB.Where("book_status = ?", bookModel.BookStatusPublished)
	if id, err := uuid.Parse(param); err == nil {
		q = q.Where("book_id = ?", id)
	} else {
		q = q.Where("book_slug = ?", param)
	}

	var book bookModel.BookModel
	if err := q.First(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Book not found")
		}
		return err
	}

	categories, err := BookCategories(ctl.DB, book.BookID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch book categories")
	}
	return helper.JsonOK(c, "Book fetched successfully", dto.ToBookDetailResponse(&book, categories))
}

// BookCategories loads the category briefs for one book. Shared with the
// admin controller.
func BookCategories(db *gorm.DB, bookID uuid.UUID) ([]dto.CategoryBrief, error) {
	var cats []bookModel.CategoryModel
	err := db.
		Where("category_id IN (?)",
			db.Model(&bookModel.BookCategoryModel{}).
				Select("book_category_category_id").
				Where("book_category_book_id = ?", bookID),
		).
		Order("category_name ASC").
		Find(&cats).Error
	if err != nil {
		return nil, err
	}
	briefs := make([]dto.CategoryBrief, 0, len(cats))
	for _, cm := range cats {
		briefs = append(briefs, dto.CategoryBrief{
			CategoryID: cm.CategoryID,
			Name:       cm.CategoryName,
			Slug:       cm.CategorySlug,
		})
	}
	return briefs, nil
}

/* =======================================================
   GET /api/books/featured | /api/books/bestsellers
======================================================= */

func (ctl *BookController) FeaturedBooks(c *fiber.Ctx) error {
	var books []bookModel.BookModel
	if err := ctl.DB.
		Where("book_status = ? AND book_is_featured AND book_is_available",
			bookModel.BookStatusPublished).
		Order("book_created_at DESC").
		Limit(10).
		Find(&books).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch featured books")
	}
	return helper.JsonOK(c, "Featured books fetched successfully", listResponses(books))
}

func (ctl *BookController) BestsellerBooks(c *fiber.Ctx) error {
	var books []bookModel.BookModel
	if err := ctl.DB.
		Where("book_status = ? AND book_is_bestseller AND book_is_available",
			bookModel.BookStatusPublished).
		Order("book_total_sold DESC").
		Limit(10).
		Find(&books).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch bestsellers")
	}
	return helper.JsonOK(c, "Bestsellers fetched successfully", listResponses(books))
}

func listResponses(books []bookModel.BookModel) []dto.BookListResponse {
	resp := make([]dto.BookListResponse, 0, len(books))
	for i := range books {
		resp = append(resp, dto.ToBookListResponse(&books[i]))
	}
	return resp
}

/* =======================================================
   GET /api/books/search?q=
======================================================= */

func (ctl *BookController) SearchBooks(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))
	if len(query) < 2 {
		return helper.JsonOK(c, "Search results", []dto.BookListResponse{})
	}

	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	pattern := "%" + query + "%"
	var books []bookModel.BookModel
	if err := ctl.DB.
		Where("book_status = ?", bookModel.BookStatusPublished).
		Where("book_title ILIKE ? OR book_author ILIKE ? OR book_isbn_13 ILIKE ?",
			pattern, pattern, pattern).
		Order("book_total_sold DESC").
		Limit(limit).
		Find(&books).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Search failed")
	}
	return helper.JsonOK(c, "Search results", listResponses(books))
}

/* =======================================================
   GET /api/categories — public category list
======================================================= */

func (ctl *BookController) ListCategories(c *fiber.Ctx) error {
	var cats []bookModel.CategoryModel
	if err := ctl.DB.Order("category_name ASC").Find(&cats).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch categories")
	}

	resp := make([]*dto.CategoryResponse, 0, len(cats))
	for i := range cats {
		var count int64
		ctl.DB.Model(&bookModel.BookCategoryModel{}).
			Where("book_category_category_id = ?", cats[i].CategoryID).
			Count(&count)
		resp = append(resp, dto.FromCategoryModel(&cats[i], count))
	}
	return helper.JsonOK(c, "Categories fetched successfully", resp)
}
