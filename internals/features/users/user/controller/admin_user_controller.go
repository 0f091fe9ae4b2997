package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	helper "somabooks_backend/internals/helpers"

	"somabooks_backend/internals/features/users/user/dto"
	userModel "somabooks_backend/internals/features/users/user/model"
)

// AdminUserController: back-office account management.
type AdminUserController struct {
	DB *gorm.DB
}

func NewAdminUserController(db *gorm.DB) *AdminUserController {
	return &AdminUserController{DB: db}
}

/* =======================================================
   GET /api/admin/users
======================================================= */

func (ctl *AdminUserController) ListUsers(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&userModel.UserModel{})
	if role := c.Query("role"); role != "" {
		q = q.Where("user_role = ?", role)
	}
	if status := c.Query("status"); status == "active" {
		q = q.Where("user_is_active")
	} else if status == "inactive" {
		q = q.Where("NOT user_is_active")
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + search + "%"
		q = q.Where("user_email ILIKE ? OR user_first_name ILIKE ? OR user_second_name ILIKE ?",
			pattern, pattern, pattern)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count users")
	}

	var users []userModel.UserModel
	if err := q.Order("user_created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&users).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch users")
	}

	resp := make([]*dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, dto.FromUserModel(&users[i]))
	}
	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Users fetched successfully", resp, pagination)
}

/* =======================================================
   PUT /api/admin/users/:id — role / active flag
======================================================= */

func (ctl *AdminUserController) UpdateUser(c *fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid user id")
	}

	var req dto.AdminUpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	callerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	if callerID == targetID && req.IsActive != nil && !*req.IsActive {
		return helper.JsonError(c, fiber.StatusBadRequest, "You cannot deactivate your own account")
	}

	var user userModel.UserModel
	if err := ctl.DB.Where("user_id = ?", targetID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return err
	}

	if req.Role != nil {
		user.UserRole = *req.Role
	}
	if req.IsActive != nil {
		user.UserIsActive = *req.IsActive
	}
	if err := ctl.DB.Save(&user).Error; err != nil {
		return err
	}
	return helper.JsonUpdated(c, "User updated successfully", dto.FromUserModel(&user))
}
