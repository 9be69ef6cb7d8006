// file: internals/features/users/auth/controller/auth_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dto "quanlysinhvien_backend/internals/features/users/auth/dto"
	model "quanlysinhvien_backend/internals/features/users/auth/model"
	service "quanlysinhvien_backend/internals/features/users/auth/service"
	helper "quanlysinhvien_backend/internals/helpers"
)

type AuthController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{
		DB:        db,
		Validator: validator.New(),
	}
}

// POST /auth/login
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	return service.Login(ctl.DB, c)
}

// POST /auth/refresh-token
func (ctl *AuthController) RefreshToken(c *fiber.Ctx) error {
	return service.RefreshToken(ctl.DB, c)
}

// POST /auth/logout
func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	return service.Logout(ctl.DB, c)
}

// GET /auth/me
func (ctl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, err)
	}

	var user model.UserModel
	err = ctl.DB.WithContext(c.Context()).
		Where("user_id = ?", userID).
		Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, http.StatusNotFound, "User not found")
	}
	if err != nil {
		return helper.JsonError(c, err)
	}
	return helper.Success(c, "OK", dto.ToUserResponse(&user))
}

// POST /auth/change-password
func (ctl *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return helper.JsonError(c, err)
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := ctl.Validator.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	return service.ChangePassword(ctl.DB, c, userID, req.OldPassword, req.NewPassword)
}
