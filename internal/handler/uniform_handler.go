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

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type uniformService interface {
	Categories(ctx context.Context) ([]models.UniformCategory, error)
	StudentCategory(ctx context.Context, studentID string) (*service.StudentCategoryResult, error)
	Sizes(ctx context.Context, studentID string) ([]models.StudentSizeDetail, error)
	SaveSizes(ctx context.Context, studentID string, entries []service.SizeEntry) error
	DeleteSize(ctx context.Context, id int64) error
	Search(ctx context.Context, nombre string) ([]service.UniformSearchHit, error)
	Report(ctx context.Context) (*service.UniformReport, error)
	ExportExcel(ctx context.Context) ([]byte, string, error)
	SizeInventory(ctx context.Context) ([]models.CategorySizeInventory, error)
}

// UniformHandler wires uniform sizing and reporting to HTTP endpoints.
type UniformHandler struct {
	service uniformService
}

// NewUniformHandler constructs the handler.
func NewUniformHandler(service uniformService) *UniformHandler {
	return &UniformHandler{service: service}
}

// Search handles GET /api/uniformes/buscar?nombre=.
func (h *UniformHandler) Search(c *gin.Context) {
	hits, err := h.service.Search(c.Request.Context(), c.Query("nombre"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, hits)
}

// Categories handles GET /api/uniformes/categorias.
func (h *UniformHandler) Categories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, categories)
}

// StudentCategory handles GET /api/uniformes/categorias/estudiante/:studentId.
func (h *UniformHandler) StudentCategory(c *gin.Context) {
	result, err := h.service.StudentCategory(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Sizes handles GET /api/uniformes/tallas/:studentId.
func (h *UniformHandler) Sizes(c *gin.Context) {
	sizes, err := h.service.Sizes(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, sizes)
}

// SaveSizes handles POST /api/uniformes/tallas/:studentId.
func (h *UniformHandler) SaveSizes(c *gin.Context) {
	var req struct {
		Tallas []service.SizeEntry `json:"tallas"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "se requiere un array de tallas"))
		return
	}
	if err := h.service.SaveSizes(c.Request.Context(), c.Param("studentId"), req.Tallas); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "tallas registradas"})
}

// DeleteSize handles DELETE /api/uniformes/tallas/:id.
func (h *UniformHandler) DeleteSize(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id inválido"))
		return
	}
	if err := h.service.DeleteSize(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "talla eliminada"})
}

// Report handles GET /api/uniformes/reports.
func (h *UniformHandler) Report(c *gin.Context) {
	report, err := h.service.Report(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, report)
}

// ExportExcel handles GET /api/uniformes/export-excel.
func (h *UniformHandler) ExportExcel(c *gin.Context) {
	body, filename, err := h.service.ExportExcel(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.File(c, xlsxContentType, filename, body)
}

// SizeInventory handles GET /api/uniformes/inventario-tallas.
func (h *UniformHandler) SizeInventory(c *gin.Context) {
	inventory, err := h.service.SizeInventory(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, inventory)
}
