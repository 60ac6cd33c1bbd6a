package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/FarahAbdullah11/NU-CLUBS/internal/dto"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/service"
	"github.com/FarahAbdullah11/NU-CLUBS/pkg/response"
)

// AuthHandler authentication endpoints
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Login
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "university ID/email and password are required")
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// Me current user profile
// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}

	result, err := h.authSvc.Me(c.Request.Context(), session)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, result)
}

// Logout revokes the presented token
// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}

	if err := h.authSvc.Logout(c.Request.Context(), session); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, nil)
}

// ChangePassword
// PUT /api/auth/password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	session, ok := MustGetSession(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), session, &req); err != nil {
		handleServiceError(c, err)
		return
	}

	response.OK(c, nil)
}
