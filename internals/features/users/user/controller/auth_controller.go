package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"somabooks_backend/internals/configs"
	helper "somabooks_backend/internals/helpers"

	"somabooks_backend/internals/features/users/user/dto"
	userModel "somabooks_backend/internals/features/users/user/model"
)

const tokenTTL = 24 * time.Hour

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

func issueToken(user *userModel.UserModel) (string, error) {
	claims := jwt.MapClaims{
		"user_id":   user.UserID.String(),
		"user_name": user.FullName(),
		"role":      user.UserRole,
		"iat":       time.Now().Unix(),
		"exp":       time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}

func setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  time.Now().Add(tokenTTL),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
}

/* =======================================================
   POST /api/auth/register
======================================================= */

func (ctl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing userModel.UserModel
	if err := ctl.DB.Where("user_email = ?", email).First(&existing).Error; err == nil {
		return helper.JsonError(c, fiber.StatusConflict, "Email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := userModel.UserModel{
		UserFirstName:  req.FirstName,
		UserSecondName: req.SecondName,
		UserEmail:      email,
		UserPassword:   string(hashed),
		UserPhone:      req.Phone,
		UserRole:       "user",
		UserIsActive:   true,
	}
	if err := ctl.DB.Create(&user).Error; err != nil {
		return err
	}

	token, err := issueToken(&user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}
	setAuthCookie(c, token)

	return helper.JsonCreated(c, "Registration successful", dto.AuthResponse{
		User:  dto.FromUserModel(&user),
		Token: token,
	})
}

/* =======================================================
   POST /api/auth/login
======================================================= */

func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user userModel.UserModel
	if err := ctl.DB.Where("user_email = ?", email).First(&user).Error; err != nil {
		// same message for unknown email and bad password
		return helper.JsonError(c, fiber.StatusUnauthorized, "Incorrect email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(req.Password)); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Incorrect email or password")
	}
	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}

	token, err := issueToken(&user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}
	setAuthCookie(c, token)

	return helper.JsonOK(c, "Login successful", dto.AuthResponse{
		User:  dto.FromUserModel(&user),
		Token: token,
	})
}

/* =======================================================
   POST /api/auth/login-google
======================================================= */

func (ctl *AuthController) LoginGoogle(c *fiber.Ctx) error {
	var req dto.GoogleLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(req.IDToken, []string{configs.GoogleClientID}); err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Invalid Google token")
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(req.IDToken)
	if err != nil || claimSet.Email == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Failed to decode Google token")
	}

	email := strings.ToLower(claimSet.Email)

	var user userModel.UserModel
	err = ctl.DB.Where("user_email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// first Google sign-in provisions an account with a random password
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(helper.GenerateSlug(email)+time.Now().String()), bcrypt.DefaultCost)
		if hashErr != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to provision account")
		}
		firstName := claimSet.GivenName
		if firstName == "" {
			firstName = "Google"
		}
		secondName := claimSet.FamilyName
		if secondName == "" {
			secondName = "User"
		}
		user = userModel.UserModel{
			UserFirstName:  firstName,
			UserSecondName: secondName,
			UserEmail:      email,
			UserPassword:   string(hashed),
			UserRole:       "user",
			UserIsActive:   true,
		}
		if err := ctl.DB.Create(&user).Error; err != nil {
			return err
		}
		log.Printf("🆕 provisioned account via Google sign-in: %s", email)
	} else if err != nil {
		return err
	}
	if !user.UserIsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}

	token, err := issueToken(&user)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue token")
	}
	setAuthCookie(c, token)

	return helper.JsonOK(c, "Login successful", dto.AuthResponse{
		User:  dto.FromUserModel(&user),
		Token: token,
	})
}

/* =======================================================
   POST /api/auth/logout
======================================================= */

func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	return helper.JsonOK(c, "Logged out", nil)
}

/* =======================================================
   GET /api/auth/me   |   PUT /api/auth/me
======================================================= */

func (ctl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var user userModel.UserModel
	if err := ctl.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return err
	}
	return helper.JsonOK(c, "Profile fetched successfully", dto.FromUserModel(&user))
}

func (ctl *AuthController) UpdateMe(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.Validate(&req); err != nil {
		return helper.JsonValidationError(c, helper.ValidationErrorsToMap(err))
	}

	var user userModel.UserModel
	if err := ctl.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "User not found")
		}
		return err
	}

	if req.FirstName != nil {
		user.UserFirstName = *req.FirstName
	}
	if req.SecondName != nil {
		user.UserSecondName = *req.SecondName
	}
	if req.Phone != nil {
		user.UserPhone = req.Phone
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
		}
		user.UserPassword = string(hashed)
	}

	if err := ctl.DB.Save(&user).Error; err != nil {
		return err
	}
	return helper.JsonUpdated(c, "Profile updated successfully", dto.FromUserModel(&user))
}
