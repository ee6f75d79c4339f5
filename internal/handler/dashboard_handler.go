package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jpsrivera1/backgeneralsistemaceti/internal/models"
	"github.com/jpsrivera1/backgeneralsistemaceti/internal/service"
	appErrors "github.com/jpsrivera1/backgeneralsistemaceti/pkg/errors"
	"github.com/jpsrivera1/backgeneralsistemaceti/pkg/response"
)

type dashboardService interface {
	Full(ctx context.Context, rng models.DateRange) (*models.DashboardData, error)
	IncomeByDay(ctx context.Context, rng models.DateRange) ([]models.IncomeByDay, error)
	IncomeByMonth(ctx context.Context, rng models.DateRange) ([]models.IncomeByMonth, error)
	IncomeByType(ctx context.Context, rng models.DateRange) ([]models.IncomeByType, error)
	StudentsByType(ctx context.Context) ([]models.StudentsByType, error)
	PendingPayments(ctx context.Context) ([]models.PendingPayment, error)
	TotalMora(ctx context.Context, rng models.DateRange) (float64, error)
	IncomeByMethod(ctx context.Context, rng models.DateRange) ([]models.IncomeByMethod, error)
	DayOverview(ctx context.Context) (*service.IngresosDia, error)
	RangeIncome(ctx context.Context, fechaInicio, fechaFin string) (*service.RangeTotal, error)
	MonthIncome(ctx context.Context, mes string, anio int) (*service.MonthTotal, error)
	TotalIncome(ctx context.Context) (float64, error)
	IncomeByTypeNamed(ctx context.Context) ([]service.NameValue, error)
	IncomeByMethodNamed(ctx context.Context) ([]service.NameValue, error)
	PendingTotal(ctx context.Context) (float64, error)
	StudentsWithPending(ctx context.Context) ([]models.StudentPaymentSummary, error)
	TopDebtors(ctx context.Context, limit int) ([]models.StudentPaymentSummary, error)
	StudentStats(ctx context.Context) (*models.StudentStats, error)
	CourseStats(ctx context.Context) (*models.CourseStats, error)
	Resumen(ctx context.Context) (*service.ResumenDashboard, error)
	DetailedReport(ctx context.Context, rng models.DateRange) (*models.DetailedReport, error)
	DetailedReportPDF(ctx context.Context, rng models.DateRange) ([]byte, string, error)
}

// DashboardHandler wires the aggregation endpoints to HTTP.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// parseRange reads the optional fechaInicio/fechaFin query bounds. The end
// bound is stretched to the end of its day so the range stays inclusive.
func parseRange(c *gin.Context) (models.DateRange, error) {
	var rng models.DateRange
	if raw := strings.TrimSpace(c.Query("fechaInicio")); raw != "" {
		start, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return rng, appErrors.Clone(appErrors.ErrValidation, "fechaInicio inválida")
		}
		rng.Start = &start
	}
	if raw := strings.TrimSpace(c.Query("fechaFin")); raw != "" {
		end, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return rng, appErrors.Clone(appErrors.ErrValidation, "fechaFin inválida")
		}
		end = end.Add(24*time.Hour - time.Second)
		rng.End = &end
	}
	return rng, nil
}

// Full handles GET /api/dashboard.
func (h *DashboardHandler) Full(c *gin.Context) {
	rng, err := parseRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	data, err := h.service.Full(c.Request.Context(), rng)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, data)
}

// IncomeByDay handles GET /api/dashboard/income-by-day.
func (h *DashboardHandler) IncomeByDay(c *gin.Context) {
	rng, err := parseRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.service.IncomeByDay(c.Request.Context(), rng)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}

// IncomeByMonth handles GET /api/dashboard/income-by-month.
func (h *DashboardHandler) IncomeByMonth(c *gin.Context) {
	rng, err := parseRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.service.IncomeByMonth(c.Request.Context(), rng)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}

// IncomeByType handles GET /api/dashboard/income-by-type.
func (h *DashboardHandler) IncomeByType(c *gin.Context) {
	rng, err := parseRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.service.IncomeByType(c.Request.Context(), rng)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}

// StudentsByType handles GET /api/dashboard/students-by-type.
func (h *DashboardHandler) StudentsByType(c *gin.Context) {
	rows, err := h.service.StudentsByType(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}

// PendingPayments handles GET /api/dashboard/pending-payments.
func (h *DashboardHandler) PendingPayments(c *gin.Context) {
	rows, err := h.service.PendingPayments(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}

// TotalMora handles GET /api/dashboard/total-mora.
func (h *DashboardHandler) TotalMora(c *gin.Context) {
	rng, err := parseRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	total, err := h.service.TotalMora(c.Request.Context(), rng)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"total": total})
}

// IncomeByMethod handles GET /api/dashboard/income-by-payment-method.
func (h *DashboardHandler) IncomeByMethod(c *gin.Context) {
	rng, err := parseRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.service.IncomeByMethod(c.Request.Context(), rng)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}

// DayIncome handles GET /api/dashboard/ingresos/dia.
func (h *DashboardHandler) DayIncome(c *gin.Context) {
	overview, err := h.service.DayOverview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, overview)
}

// RangeIncome handles GET /api/dashboard/ingresos/rango.
func (h *DashboardHandler) RangeIncome(c *gin.Context) {
	fechaInicio := strings.TrimSpace(c.Query("fechaInicio"))
	fechaFin := strings.TrimSpace(c.Query("fechaFin"))
	if fechaInicio == "" || fechaFin == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "fechaInicio y fechaFin son requeridas"))
		return
	}
	total, err := h.service.RangeIncome(c.Request.Context(), fechaInicio, fechaFin)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, total)
}

// MonthIncome handles GET /api/dashboard/ingresos/mes.
func (h *DashboardHandler) MonthIncome(c *gin.Context) {
	anio := 0
	if raw := strings.TrimSpace(c.Query("anio")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "anio inválido"))
			return
		}
		anio = parsed
	}
	total, err := h.service.MonthIncome(c.Request.Context(), c.Query("mes"), anio)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, total)
}

// HistoricIncome handles GET /api/dashboard/ingresos/historico. The total is
// all-time regardless of query parameters.
func (h *DashboardHandler) HistoricIncome(c *gin.Context) {
	total, err := h.service.TotalIncome(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"total": total})
}

// IncomeByTypeNamed handles GET /api/dashboard/ingresos/tipo-pago.
func (h *DashboardHandler) IncomeByTypeNamed(c *gin.Context) {
	rows, err := h.service.IncomeByTypeNamed(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}

// IncomeByMethodNamed handles GET /api/dashboard/ingresos/metodo-pago.
func (h *DashboardHandler) IncomeByMethodNamed(c *gin.Context) {
	rows, err := h.service.IncomeByMethodNamed(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}

// PendingTotal handles GET /api/dashboard/pendientes/total.
func (h *DashboardHandler) PendingTotal(c *gin.Context) {
	total, err := h.service.PendingTotal(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"total": total})
}

// StudentsWithPending handles GET /api/dashboard/pendientes/estudiantes.
func (h *DashboardHandler) StudentsWithPending(c *gin.Context) {
	rows, err := h.service.StudentsWithPending(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}

// TopDebtors handles GET /api/dashboard/pendientes/top-deudores?limite=.
func (h *DashboardHandler) TopDebtors(c *gin.Context) {
	limit := 10
	if raw := strings.TrimSpace(c.Query("limite")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "limite inválido"))
			return
		}
		limit = parsed
	}
	rows, err := h.service.TopDebtors(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows)
}

// StudentStats handles GET /api/dashboard/estudiantes/estadisticas.
func (h *DashboardHandler) StudentStats(c *gin.Context) {
	stats, err := h.service.StudentStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

// CourseStats handles GET /api/dashboard/cursos/estadisticas.
func (h *DashboardHandler) CourseStats(c *gin.Context) {
	stats, err := h.service.CourseStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats)
}

// Resumen handles GET /api/dashboard/resumen.
func (h *DashboardHandler) Resumen(c *gin.Context) {
	resumen, err := h.service.Resumen(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resumen)
}

// DetailedReport handles GET /api/dashboard/detailed-report.
func (h *DashboardHandler) DetailedReport(c *gin.Context) {
	rng, err := parseRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	report, err := h.service.DetailedReport(c.Request.Context(), rng)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// DetailedReportPDF handles GET /api/dashboard/detailed-report/pdf.
func (h *DashboardHandler) DetailedReportPDF(c *gin.Context) {
	rng, err := parseRange(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	body, filename, err := h.service.DetailedReportPDF(c.Request.Context(), rng)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, "application/pdf", filename, body)
}
