package dto

import (
	"time"

	"github.com/google/uuid"

	userModel "somabooks_backend/internals/features/users/user/model"
)

/* =========================================================
   1) REQUEST DTO
   ========================================================= */

type RegisterRequest struct {
	FirstName  string  `json:"first_name"  validate:"required,max=80"`
	SecondName string  `json:"second_name" validate:"required,max=80"`
	Email      string  `json:"email"       validate:"required,email,max=150"`
	Password   string  `json:"password"    validate:"required,min=8,max=72"`
	Phone      *string `json:"phone"       validate:"omitempty,max=20"`
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type UpdateProfileRequest struct {
	FirstName  *string `json:"first_name"  validate:"omitempty,max=80"`
	SecondName *string `json:"second_name" validate:"omitempty,max=80"`
	Phone      *string `json:"phone"       validate:"omitempty,max=20"`
	Password   *string `json:"password"    validate:"omitempty,min=8,max=72"`
}

// AdminUpdateUserRequest: back-office edits of role/active flag.
type AdminUpdateUserRequest struct {
	Role     *string `json:"role"      validate:"omitempty,oneof=user admin"`
	IsActive *bool   `json:"is_active" validate:"omitempty"`
}

/* =========================================================
   2) RESPONSE DTO
   ========================================================= */

type UserResponse struct {
	UserID     uuid.UUID `json:"user_id"`
	FirstName  string    `json:"first_name"`
	SecondName string    `json:"second_name"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Phone      *string   `json:"phone,omitempty"`
	Role       string    `json:"role"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

func FromUserModel(m *userModel.UserModel) *UserResponse {
	if m == nil {
		return nil
	}
	return &UserResponse{
		UserID:     m.UserID,
		FirstName:  m.UserFirstName,
		SecondName: m.UserSecondName,
		FullName:   m.FullName(),
		Email:      m.UserEmail,
		Phone:      m.UserPhone,
		Role:       m.UserRole,
		IsActive:   m.UserIsActive,
		CreatedAt:  m.UserCreatedAt,
	}
}

type AuthResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"`
}
