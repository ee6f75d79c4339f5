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

type paymentService interface {
	SearchStudents(ctx context.Context, nombre string) ([]models.StudentSearchResult, error)
	StudentPayments(ctx context.Context, studentID string) (map[string]*models.CategoryPayment, error)
	Payment(ctx context.Context, studentID, category string) (*models.CategoryPayment, error)
	SavePayment(ctx context.Context, studentID, category string, req service.SavePaymentRequest) (*service.PaymentReceipt, error)
	Summary(ctx context.Context) ([]models.StudentPaymentSummary, error)
	Methods(ctx context.Context) ([]models.PaymentMethod, error)
}

// PaymentHandler wires the category payment flows to HTTP endpoints.
type PaymentHandler struct {
	service paymentService
}

// NewPaymentHandler constructs the handler.
func NewPaymentHandler(service paymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// Search handles GET /api/pagos/buscar?nombre=.
func (h *PaymentHandler) Search(c *gin.Context) {
	results, err := h.service.SearchStudents(c.Request.Context(), c.Query("nombre"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results)
}

// Summary handles GET /api/pagos/resumen.
func (h *PaymentHandler) Summary(c *gin.Context) {
	summaries, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summaries)
}

// Methods handles GET /api/pagos/metodos-pago.
func (h *PaymentHandler) Methods(c *gin.Context) {
	methods, err := h.service.Methods(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, methods)
}

// StudentPayments handles GET /api/pagos/estudiante/:studentId.
func (h *PaymentHandler) StudentPayments(c *gin.Context) {
	payments, err := h.service.StudentPayments(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payments)
}

// Payment handles GET /api/pagos/estudiante/:studentId/:tipoPago.
func (h *PaymentHandler) Payment(c *gin.Context) {
	payment, err := h.service.Payment(c.Request.Context(), c.Param("studentId"), c.Param("tipoPago"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payment)
}

// SavePayment handles POST /api/pagos/estudiante/:studentId/:tipoPago.
func (h *PaymentHandler) SavePayment(c *gin.Context) {
	var req service.SavePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "datos del pago inválidos"))
		return
	}
	receipt, err := h.service.SavePayment(c.Request.Context(), c.Param("studentId"), c.Param("tipoPago"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"data": receipt})
}
