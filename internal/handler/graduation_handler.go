package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jpsrivera1/backgeneralsistemaceti/internal/service"
	appErrors "github.com/jpsrivera1/backgeneralsistemaceti/pkg/errors"
	"github.com/jpsrivera1/backgeneralsistemaceti/pkg/response"
)

type graduationService interface {
	Status(ctx context.Context, studentID string) (*service.GraduationStatus, error)
	Save(ctx context.Context, studentID string, req service.SaveGraduationRequest) (*service.GraduationReceipt, error)
}

// GraduationHandler wires the eligibility-gated graduation payment to HTTP
// endpoints.
type GraduationHandler struct {
	service graduationService
}

// NewGraduationHandler constructs the handler.
func NewGraduationHandler(service graduationService) *GraduationHandler {
	return &GraduationHandler{service: service}
}

// Status handles GET /api/pagos/graduacion/:studentId.
func (h *GraduationHandler) Status(c *gin.Context) {
	status, err := h.service.Status(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status)
}

// Save handles POST /api/pagos/graduacion/:studentId.
func (h *GraduationHandler) Save(c *gin.Context) {
	var req service.SaveGraduationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "datos del pago inválidos"))
		return
	}
	receipt, err := h.service.Save(c.Request.Context(), c.Param("studentId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"data": receipt})
}
