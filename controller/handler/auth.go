package handler

import (
	"errors"

	"file-vault/controller/middleware"
	"file-vault/controller/respond"
	"file-vault/service/user_service"

	"github.com/gin-gonic/gin"
)

// AuthHandler account endpoints
type AuthHandler struct {
	users *user_service.UserService
}

// NewAuthHandler create auth handler instance
func NewAuthHandler(users *user_service.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Register
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body registerRequest true "registration payload"
// @Success 201 {object} respond.Response{data=respond.UserResponse}
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.InvalidParam(c, err.Error())
		return
	}

	user, err := h.users.Register(req.Name, req.Email, req.Password)
	if errors.Is(err, user_service.ErrEmailTaken) {
		respond.Conflict(c, err.Error())
		return
	}
	if err != nil {
		respond.ServerError(c, "failed to register")
		return
	}

	respond.Created(c, respond.ToUserResponse(user))
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login
// @Summary Log in and obtain an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "credentials"
// @Success 200 {object} respond.Response{data=respond.TokenResponse}
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.InvalidParam(c, err.Error())
		return
	}

	user, token, err := h.users.Login(req.Email, req.Password)
	if errors.Is(err, user_service.ErrInvalidCredentials) {
		respond.Unauthorized(c, err.Error())
		return
	}
	if errors.Is(err, user_service.ErrTooManyAttempts) {
		respond.TooManyRequests(c, err.Error())
		return
	}
	if err != nil {
		respond.ServerError(c, "failed to log in")
		return
	}

	respond.Success(c, &respond.TokenResponse{
		Token: token,
		User:  respond.ToUserResponse(user),
	})
}

// Me
// @Summary Current account profile
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} respond.Response{data=respond.UserResponse}
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.users.GetByUUID(middleware.UserUuid(c))
	if errors.Is(err, user_service.ErrUserNotFound) {
		respond.NotFound(c, err.Error())
		return
	}
	if err != nil {
		respond.ServerError(c, "failed to load profile")
		return
	}
	respond.Success(c, respond.ToUserResponse(user))
}

// Logout
// @Summary Log out
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} respond.Response
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// Tokens are stateless; the client discards its copy
	respond.SuccessWithMessage(c, "logged out", nil)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// ChangePassword
// @Summary Change the account password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body changePasswordRequest true "password change payload"
// @Success 200 {object} respond.Response
// @Router /api/v1/auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.InvalidParam(c, err.Error())
		return
	}

	err := h.users.ChangePassword(middleware.UserUuid(c), req.CurrentPassword, req.NewPassword)
	if errors.Is(err, user_service.ErrInvalidCredentials) {
		respond.Unauthorized(c, "current password is incorrect")
		return
	}
	if errors.Is(err, user_service.ErrUserNotFound) {
		respond.NotFound(c, err.Error())
		return
	}
	if err != nil {
		respond.ServerError(c, "failed to change password")
		return
	}

	respond.SuccessWithMessage(c, "password changed", nil)
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword
// @Summary Request a password reset code
// @Tags auth
// @Accept json
// @Produce json
// @Param body body forgotPasswordRequest true "account email"
// @Success 200 {object} respond.Response
// @Router /api/v1/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.InvalidParam(c, err.Error())
		return
	}

	if err := h.users.ForgotPassword(req.Email); err != nil {
		respond.ServerError(c, "failed to process reset request")
		return
	}

	// Same answer whether or not the email exists
	respond.SuccessWithMessage(c, "if the email is registered, a reset code has been sent", nil)
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ResetPassword
// @Summary Reset the password with a one-time code
// @Tags auth
// @Accept json
// @Produce json
// @Param body body resetPasswordRequest true "reset payload"
// @Success 200 {object} respond.Response
// @Router /api/v1/auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.InvalidParam(c, err.Error())
		return
	}

	err := h.users.ResetPassword(req.Email, req.Code, req.NewPassword)
	if errors.Is(err, user_service.ErrInvalidResetCode) {
		respond.InvalidParam(c, err.Error())
		return
	}
	if err != nil {
		respond.ServerError(c, "failed to reset password")
		return
	}

	respond.SuccessWithMessage(c, "password reset", nil)
}
