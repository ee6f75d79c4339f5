package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jpsrivera1/backgeneralsistemaceti/internal/models"
	"github.com/jpsrivera1/backgeneralsistemaceti/internal/service"
	appErrors "github.com/jpsrivera1/backgeneralsistemaceti/pkg/errors"
	"github.com/jpsrivera1/backgeneralsistemaceti/pkg/response"
)

type courseService interface {
	Courses(ctx context.Context) ([]models.ExtraCourse, error)
	Months(ctx context.Context) ([]models.Month, error)
	CourseStudents(ctx context.Context) ([]models.CourseStudent, error)
	SearchCourseStudents(ctx context.Context, nombre string) ([]models.StudentSearchResult, error)
	Payments(ctx context.Context, studentID string) ([]models.CoursePayment, error)
	MonthPaid(ctx context.Context, studentID string, monthID int64) (*service.CourseMonthStatus, error)
	Register(ctx context.Context, req service.RegisterCoursePaymentRequest) (*service.CoursePaymentReceipt, error)
	Summary(ctx context.Context, studentID string) (*models.CoursePaymentSummary, error)
}

// CourseHandler wires extra courses and their monthly payments to HTTP
// endpoints.
type CourseHandler struct {
	service courseService
}

// NewCourseHandler constructs the handler.
func NewCourseHandler(service courseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// Courses handles GET /api/cursos/cursos-extra.
func (h *CourseHandler) Courses(c *gin.Context) {
	courses, err := h.service.Courses(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, courses)
}

// Months handles GET /api/cursos/meses.
func (h *CourseHandler) Months(c *gin.Context) {
	months, err := h.service.Months(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, months)
}

// Students handles GET /api/cursos/estudiantes-cursos.
func (h *CourseHandler) Students(c *gin.Context) {
	students, err := h.service.CourseStudents(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students)
}

// SearchStudents handles GET /api/cursos/estudiantes-cursos/buscar?nombre=.
func (h *CourseHandler) SearchStudents(c *gin.Context) {
	results, err := h.service.SearchCourseStudents(c.Request.Context(), c.Query("nombre"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, results)
}

// Payments handles GET /api/cursos/pagos-curso/:estudianteId.
func (h *CourseHandler) Payments(c *gin.Context) {
	payments, err := h.service.Payments(c.Request.Context(), c.Param("estudianteId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, payments)
}

// MonthPaid handles GET /api/cursos/pagos-curso/:estudianteId/verificar/:mesId.
func (h *CourseHandler) MonthPaid(c *gin.Context) {
	mesID, err := strconv.ParseInt(c.Param("mesId"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "mes inválido"))
		return
	}
	status, err := h.service.MonthPaid(c.Request.Context(), c.Param("estudianteId"), mesID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, status)
}

// Register handles POST /api/cursos/pagos-curso.
func (h *CourseHandler) Register(c *gin.Context) {
	var req service.RegisterCoursePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "datos del pago inválidos"))
		return
	}
	receipt, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"data": receipt})
}

// Summary handles GET /api/cursos/pagos-curso/:estudianteId/resumen.
func (h *CourseHandler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context(), c.Param("estudianteId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary)
}
