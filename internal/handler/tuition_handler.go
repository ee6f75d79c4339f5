package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jpsrivera1/backgeneralsistemaceti/internal/models"
	"github.com/jpsrivera1/backgeneralsistemaceti/internal/service"
	appErrors "github.com/jpsrivera1/backgeneralsistemaceti/pkg/errors"
	"github.com/jpsrivera1/backgeneralsistemaceti/pkg/response"
)

type tuitionService interface {
	History(ctx context.Context, studentID string) ([]models.TuitionPayment, error)
	MonthPaid(ctx context.Context, studentID, mes string) (*service.MonthStatus, error)
	Register(ctx context.Context, studentID string, req service.RegisterTuitionRequest) (*service.TuitionReceipt, error)
	Receipt(ctx context.Context, pagoID string) (*service.ReceiptInfo, error)
}

// TuitionHandler wires monthly tuition payments to HTTP endpoints.
type TuitionHandler struct {
	service tuitionService
}

// NewTuitionHandler constructs the handler.
func NewTuitionHandler(service tuitionService) *TuitionHandler {
	return &TuitionHandler{service: service}
}

// History handles GET /api/pagos/colegiaturas/:studentId.
func (h *TuitionHandler) History(c *gin.Context) {
	payments, err := h.service.History(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payments)
}

// MonthPaid handles GET /api/pagos/colegiaturas/:studentId/mes/:mes.
func (h *TuitionHandler) MonthPaid(c *gin.Context) {
	status, err := h.service.MonthPaid(c.Request.Context(), c.Param("studentId"), c.Param("mes"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status)
}

// Register handles POST /api/pagos/colegiaturas/:studentId.
func (h *TuitionHandler) Register(c *gin.Context) {
	var req service.RegisterTuitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "datos del pago inválidos"))
		return
	}
	receipt, err := h.service.Register(c.Request.Context(), c.Param("studentId"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"data": receipt})
}

// Receipt handles GET /api/pagos/recibo/:pagoId.
func (h *TuitionHandler) Receipt(c *gin.Context) {
	info, err := h.service.Receipt(c.Request.Context(), c.Param("pagoId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, info)
}
