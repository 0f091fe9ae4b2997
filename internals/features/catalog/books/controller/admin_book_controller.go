package controller

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "somabooks_backend/internals/helpers"

	"somabooks_backend/internals/features/catalog/books/dto"
	bookModel "somabooks_backend/internals/features/catalog/books/model"
)

// AdminBookController: catalog management, mounted behind the admin gate.
type AdminBookController struct {
	DB *gorm.DB
}

func NewAdminBookController(db *gorm.DB) *AdminBookController {
	return &AdminBookController{DB: db}
}

/* =======================================================
   GET /api/admin/books — all statuses visible
======================================================= */

func (ctl *AdminBookController) ListBooks(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&bookModel.BookModel{})
	if status := c.Query("status"); status != "" {
		q = q.Where("book_status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		q = q.Where("book_title ILIKE ? OR book_author ILIKE ? OR book_sku ILIKE ? OR book_isbn_13 ILIKE ?",
			pattern, pattern, pattern, pattern)
	}
	if v := c.Query("low_stock"); v == "true" {
		q = q.Where("book_format != ? AND book_stock_quantity <= book_low_stock_threshold",
			bookModel.BookFormatEbook)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count books")
	}

	var books []bookModel.BookModel
	if err := q.Order("book_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&books).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch books")
	}

	resp := make([]*dto.AdminBookResponse, 0, len(books))
	for i := range books {
		resp = append(resp, dto.ToAdminBookResponse(&books[i], nil))
	}
	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Books fetched successfully", resp, pagination)
}

/* =======================================================
   GET /api/admin/books/:id
======================================================= */

func (ctl *AdminBookController) GetBook(c *fiber.Ctx) error {
	book, err := ctl.findBook(c)
	if err != nil {
		return err
	}
	categories, err := BookCategories(ctl.DB, book.BookID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch book categories")
	}
	return helper.JsonOK(c, "Book fetched successfully", dto.ToAdminBookResponse(book, categories))
}

/* =======================================================
   POST /api/admin/books
======================================================= */

func (ctl *AdminBookController) CreateBook(c *fiber.Ctx) error {
	var req dto.CreateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	book := req.ToModel()

	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		base := book.BookSlug
		if base == "" {
			base = helper.GenerateSlug(book.BookTitle)
		}
		slug, err := helper.EnsureUniqueSlug(tx, base, helper.SlugOptions{
			Table:       "books",
			SlugColumn:  "book_slug",
			MaxLen:      255,
			DefaultBase: "book",
		})
		if err != nil {
			return err
		}
		book.BookSlug = slug

		if book.BookPublisherID != nil {
			var pub bookModel.PublisherModel
			if err := tx.Where("publisher_id = ?", *book.BookPublisherID).First(&pub).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusBadRequest, "Publisher not found")
				}
				return err
			}
			book.BookPublisherName = pub.PublisherName
		}

		if book.BookStatus == bookModel.BookStatusPublished {
			now := time.Now()
			book.BookPublishedAt = &now
		}

		if err := tx.Create(book).Error; err != nil {
			return err
		}
		return replaceBookCategories(tx, book.BookID, req.CategoryIDs)
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return err
	}

	categories, _ := BookCategories(ctl.DB, book.BookID)
	return helper.JsonCreated(c, "Book created successfully", dto.ToAdminBookResponse(book, categories))
}

/* =======================================================
   PUT /api/admin/books/:id
======================================================= */

func (ctl *AdminBookController) UpdateBook(c *fiber.Ctx) error {
	book, err := ctl.findBook(c)
	if err != nil {
		return err
	}

	var req dto.UpdateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		wasPublished := book.BookStatus == bookModel.BookStatusPublished
		req.ApplyTo(book)

		if req.PublisherID != nil {
			var pub bookModel.PublisherModel
			if err := tx.Where("publisher_id = ?", *req.PublisherID).First(&pub).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusBadRequest, "Publisher not found")
				}
				return err
			}
			book.BookPublisherName = pub.PublisherName
		}
		if !wasPublished && book.BookStatus == bookModel.BookStatusPublished && book.BookPublishedAt == nil {
			now := time.Now()
			book.BookPublishedAt = &now
		}

		if err := tx.Save(book).Error; err != nil {
			return err
		}
		if req.CategoryIDs != nil {
			return replaceBookCategories(tx, book.BookID, *req.CategoryIDs)
		}
		return nil
	})
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		return err
	}

	categories, _ := BookCategories(ctl.DB, book.BookID)
	return helper.JsonUpdated(c, "Book updated successfully", dto.ToAdminBookResponse(book, categories))
}

/* =======================================================
   DELETE /api/admin/books/:id — soft delete
======================================================= */

func (ctl *AdminBookController) DeleteBook(c *fiber.Ctx) error {
	book, err := ctl.findBook(c)
	if err != nil {
		return err
	}
	if err := ctl.DB.Delete(book).Error; err != nil {
		return err
	}
	return helper.JsonDeleted(c, "Book deleted successfully", fiber.Map{"book_id": book.BookID})
}

/* =======================================================
   POST /api/admin/books/:id/cover — webp cover upload
======================================================= */

func (ctl *AdminBookController) UploadCover(c *fiber.Ctx) error {
	book, err := ctl.findBook(c)
	if err != nil {
		return err
	}

	fileHeader, err := c.FormFile("cover")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "cover file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Failed to read uploaded file")
	}
	defer file.Close()

	webpBytes, err := helper.ConvertCoverToWebP(file, fileHeader.Filename)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Unsupported or corrupt image file")
	}

	url, err := helper.SaveCoverFile(book.BookSlug, webpBytes)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store cover image")
	}

	alt := book.BookTitle + " cover"
	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&bookModel.BookModel{}).
			Where("book_id = ?", book.BookID).
			Updates(map[string]any{
				"book_cover_image_url": url,
				"book_cover_image_alt": alt,
			}).Error; err != nil {
			return err
		}
		// previous covers stay in the gallery, only one is main
		if err := tx.Model(&bookModel.BookImageModel{}).
			Where("book_image_book_id = ?", book.BookID).
			Update("book_image_is_main", false).Error; err != nil {
			return err
		}
		return tx.Create(&bookModel.BookImageModel{
			BookImageBookID:  book.BookID,
			BookImageURL:     url,
			BookImageAltText: &alt,
			BookImageIsMain:  true,
		}).Error
	})
	if err != nil {
		return err
	}

	return helper.JsonUpdated(c, "Cover uploaded successfully", fiber.Map{
		"book_id":         book.BookID,
		"cover_image_url": url,
	})
}

/* =======================================================
   POST /api/admin/books/:id/adjust-sales — manual correction
======================================================= */

func (ctl *AdminBookController) AdjustSales(c *fiber.Ctx) error {
	book, err := ctl.findBook(c)
	if err != nil {
		return err
	}

	var req dto.AdjustSalesRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	newSold := book.BookTotalSold + req.QuantityDelta
	if newSold < 0 {
		newSold = 0
	}
	newRevenue := book.BookTotalRevenue + req.RevenueDelta
	if newRevenue < 0 {
		newRevenue = 0
	}

	updates := map[string]any{
		"book_total_sold":    newSold,
		"book_total_revenue": newRevenue,
	}
	if newSold >= 100 {
		updates["book_is_bestseller"] = true
	}
	if err := ctl.DB.Model(&bookModel.BookModel{}).
		Where("book_id = ?", book.BookID).
		Updates(updates).Error; err != nil {
		return err
	}

	return helper.JsonUpdated(c, "Sales counters adjusted", fiber.Map{
		"book_id":       book.BookID,
		"total_sold":    newSold,
		"total_revenue": newRevenue,
	})
}

/* =============== helpers =============== */

func (ctl *AdminBookController) findBook(c *fiber.Ctx) (*bookModel.BookModel, error) {
	bookID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, helper.JsonError(c, fiber.StatusBadRequest, "Invalid book id")
	}
	var book bookModel.BookModel
	if err := ctl.DB.Where("book_id = ?", bookID).First(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, helper.JsonError(c, fiber.StatusNotFound, "Book not found")
		}
		return nil, err
	}
	return &book, nil
}

func replaceBookCategories(tx *gorm.DB, bookID uuid.UUID, categoryIDs []uuid.UUID) error {
	if err := tx.Delete(&bookModel.BookCategoryModel{},
		"book_category_book_id = ?", bookID).Error; err != nil {
		return err
	}
	for _, catID := range categoryIDs {
		var cat bookModel.CategoryModel
		if err := tx.Where("category_id = ?", catID).First(&cat).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "Category not found")
			}
			return err
		}
		if err := tx.Create(&bookModel.BookCategoryModel{
			BookCategoryBookID:     bookID,
			BookCategoryCategoryID: catID,
		}).Error; err != nil {
			return err
		}
	}
	return nil
}
