package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jpsrivera1/backgeneralsistemaceti/internal/service"
	appErrors "github.com/jpsrivera1/backgeneralsistemaceti/pkg/errors"
	"github.com/jpsrivera1/backgeneralsistemaceti/pkg/response"
)

type authService interface {
	Login(ctx context.Context, req service.LoginRequest) (*service.LoginResult, error)
	Verify(ctx context.Context, userID int64) (*service.LoginResult, error)
}

// AuthHandler wires the auth service to HTTP endpoints.
type AuthHandler struct {
	service authService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service authService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "usuario y contraseña son requeridos"))
		return
	}
	user, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// Verify handles POST /api/auth/verificar.
func (h *AuthHandler) Verify(c *gin.Context) {
	var req struct {
		UserID int64 `json:"userId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "no autenticado"))
		return
	}
	user, err := h.service.Verify(c.Request.Context(), req.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}
