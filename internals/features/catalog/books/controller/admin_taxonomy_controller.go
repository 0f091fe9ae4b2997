package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "somabooks_backend/internals/helpers"

	"somabooks_backend/internals/features/catalog/books/dto"
	bookModel "somabooks_backend/internals/features/catalog/books/model"
)

// AdminTaxonomyController: category and publisher management.
type AdminTaxonomyController struct {
	DB *gorm.DB
}

func NewAdminTaxonomyController(db *gorm.DB) *AdminTaxonomyController {
	return &AdminTaxonomyController{DB: db}
}

/* ============ categories ============ */

func (ctl *AdminTaxonomyController) CreateCategory(c *fiber.Ctx) error {
	var req dto.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	base := req.Slug
	if base == "" {
		base = helper.GenerateSlug(req.Name)
	}
	slug, err := helper.EnsureUniqueSlug(ctl.DB, base, helper.SlugOptions{
		Table:       "categories",
		SlugColumn:  "category_slug",
		MaxLen:      100,
		DefaultBase: "category",
	})
	if err != nil {
		return err
	}

	cat := bookModel.CategoryModel{
		CategoryName:        req.Name,
		CategorySlug:        slug,
		CategoryDescription: req.Description,
	}
	if err := ctl.DB.Create(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "Category name already exists")
		}
		return err
	}
	return helper.JsonCreated(c, "Category created successfully", dto.FromCategoryModel(&cat, 0))
}

func (ctl *AdminTaxonomyController) UpdateCategory(c *fiber.Ctx) error {
	catID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid category id")
	}

	var req dto.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var cat bookModel.CategoryModel
	if err := ctl.DB.Where("category_id = ?", catID).First(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Category not found")
		}
		return err
	}

	if req.Name != nil {
		cat.CategoryName = *req.Name
	}
	if req.Description != nil {
		cat.CategoryDescription = req.Description
	}
	if err := ctl.DB.Save(&cat).Error; err != nil {
		return err
	}

	var count int64
	ctl.DB.Model(&bookModel.BookCategoryModel{}).
		Where("book_category_category_id = ?", cat.CategoryID).
		Count(&count)
	return helper.JsonUpdated(c, "Category updated successfully", dto.FromCategoryModel(&cat, count))
}

func (ctl *AdminTaxonomyController) DeleteCategory(c *fiber.Ctx) error {
	catID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid category id")
	}

	var attached int64
	if err := ctl.DB.Model(&bookModel.BookCategoryModel{}).
		Where("book_category_category_id = ?", catID).
		Count(&attached).Error; err != nil {
		return err
	}
	if attached > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Category still has books attached")
	}

	res := ctl.DB.Delete(&bookModel.CategoryModel{}, "category_id = ?", catID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Category not found")
	}
	return helper.JsonDeleted(c, "Category deleted successfully", fiber.Map{"category_id": catID})
}

/* ============ publishers ============ */

func (ctl *AdminTaxonomyController) ListPublishers(c *fiber.Ctx) error {
	var pubs []bookModel.PublisherModel
	if err := ctl.DB.Order("publisher_name ASC").Find(&pubs).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch publishers")
	}
	resp := make([]*dto.PublisherResponse, 0, len(pubs))
	for i := range pubs {
		resp = append(resp, dto.FromPublisherModel(&pubs[i]))
	}
	return helper.JsonOK(c, "Publishers fetched successfully", resp)
}

func (ctl *AdminTaxonomyController) CreatePublisher(c *fiber.Ctx) error {
	var req dto.CreatePublisherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	base := req.Slug
	if base == "" {
		base = helper.GenerateSlug(req.Name)
	}
	slug, err := helper.EnsureUniqueSlug(ctl.DB, base, helper.SlugOptions{
		Table:       "publishers",
		SlugColumn:  "publisher_slug",
		MaxLen:      150,
		DefaultBase: "publisher",
	})
	if err != nil {
		return err
	}

	pub := bookModel.PublisherModel{
		PublisherName:         req.Name,
		PublisherSlug:         slug,
		PublisherDescription:  req.Description,
		PublisherWebsite:      req.Website,
		PublisherLogoURL:      req.LogoURL,
		PublisherContactEmail: req.ContactEmail,
		PublisherContactPhone: req.ContactPhone,
	}
	if err := ctl.DB.Create(&pub).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return helper.JsonError(c, fiber.StatusConflict, "Publisher name already exists")
		}
		return err
	}
	return helper.JsonCreated(c, "Publisher created successfully", dto.FromPublisherModel(&pub))
}

func (ctl *AdminTaxonomyController) UpdatePublisher(c *fiber.Ctx) error {
	pubID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid publisher id")
	}

	var req dto.UpdatePublisherRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var pub bookModel.PublisherModel
	if err := ctl.DB.Where("publisher_id = ?", pubID).First(&pub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Publisher not found")
		}
		return err
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		if req.Name != nil {
			pub.PublisherName = *req.Name
			// keep the denormalized name on books in sync
			if err := tx.Model(&bookModel.BookModel{}).
				Where("book_publisher_id = ?", pub.PublisherID).
				Update("book_publisher_name", pub.PublisherName).Error; err != nil {
				return err
			}
		}
		if req.Description != nil {
			pub.PublisherDescription = req.Description
		}
		if req.Website != nil {
			pub.PublisherWebsite = req.Website
		}
		if req.LogoURL != nil {
			pub.PublisherLogoURL = req.LogoURL
		}
		if req.ContactEmail != nil {
			pub.PublisherContactEmail = req.ContactEmail
		}
		if req.ContactPhone != nil {
			pub.PublisherContactPhone = req.ContactPhone
		}
		return tx.Save(&pub).Error
	})
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Publisher updated successfully", dto.FromPublisherModel(&pub))
}

func (ctl *AdminTaxonomyController) DeletePublisher(c *fiber.Ctx) error {
	pubID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid publisher id")
	}

	var attached int64
	if err := ctl.DB.Model(&bookModel.BookModel{}).
		Where("book_publisher_id = ?", pubID).
		Count(&attached).Error; err != nil {
		return err
	}
	if attached > 0 {
		return helper.JsonError(c, fiber.StatusConflict, "Publisher still has books attached")
	}

	res := ctl.DB.Delete(&bookModel.PublisherModel{}, "publisher_id = ?", pubID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Publisher not found")
	}
	return helper.JsonDeleted(c, "Publisher deleted successfully", fiber.Map{"publisher_id": pubID})
}
