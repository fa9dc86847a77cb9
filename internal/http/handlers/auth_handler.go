package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/specialist-hub/internal/dto"
	"github.com/ignatzorin/specialist-hub/internal/http/handlers/common"
	"github.com/ignatzorin/specialist-hub/internal/pkg/apperror"
	"github.com/ignatzorin/specialist-hub/internal/service"
)

// AuthHandler — регистрация, вход, обновление и отзыв токенов.
type AuthHandler struct {
	auth *service.AuthService
}

func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register — POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, apperror.New(apperror.ErrCodeValidation, "некорректное тело запроса"))
		return
	}

	user, err := h.auth.Register(c.Request.Context(), req.Email, req.Handle, req.FullName, req.Password)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusCreated, user)
}

// Login — POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, apperror.New(apperror.ErrCodeValidation, "некорректное тело запроса"))
		return
	}

	userAgent := c.GetHeader("User-Agent")
	clientIP := c.ClientIP()

	pair, user, err := h.auth.Login(c.Request.Context(), req.Email, req.Password, &userAgent, &clientIP)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, gin.H{
		"tokens": pair,
		"user":   user,
	})
}

// Refresh — POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, apperror.New(apperror.ErrCodeValidation, "некорректное тело запроса"))
		return
	}

	userAgent := c.GetHeader("User-Agent")
	clientIP := c.ClientIP()

	pair, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken, &userAgent, &clientIP)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, pair)
}

// Logout — POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, apperror.New(apperror.ErrCodeValidation, "некорректное тело запроса"))
		return
	}

	if err := h.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		common.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Me — GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := common.MustCurrentUserID(c)
	if !ok {
		return
	}

	user, err := h.auth.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, user)
}
