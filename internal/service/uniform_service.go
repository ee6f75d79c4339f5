package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jpsrivera1/backgeneralsistemaceti/internal/models"
	appErrors "github.com/jpsrivera1/backgeneralsistemaceti/pkg/errors"
	"github.com/jpsrivera1/backgeneralsistemaceti/pkg/export"
)

// Keyword sets for the uniform category decision table. Order matters:
// weekend modality wins over grade keywords because grade substrings overlap
// across tiers.
var (
	weekendModalities = []string{"fin de semana", "sabatino", "sabado"}

	basicsTrackKeywords = []string{
		"7mo", "8vo", "9no",
		"baco", "pcb", "fcb", "bach", "perito",
		"secretariado", "magisterio", "diversificado", "cc y ll",
		"mecánica", "mecanica", "electricidad", "diseño", "diseno", "compu",
	}

	kinderPrimaryKeywords = []string{
		"kinder", "prepa", "prep", "preprimaria", "párvulos", "parvulos", "primaria",
	}
)

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}

// ResolveUniformCategory maps a student's modality and grade to one category
// name. ok is false when no rule matches; callers then fall back to the full
// catalog.
func ResolveUniformCategory(modalidad, grado string) (string, bool) {
	modalidad = strings.ToLower(modalidad)
	grado = strings.ToLower(grado)

	switch {
	case containsAny(modalidad, weekendModalities):
		return models.CategoriaFinDeSemana, true
	case strings.Contains(grado, "básico") && !strings.Contains(grado, "primaria"),
		strings.Contains(grado, "basico") && !strings.Contains(grado, "primaria"),
		containsAny(grado, basicsTrackKeywords):
		return models.CategoriaBasicosYCarrera, true
	case containsAny(grado, kinderPrimaryKeywords):
		return models.CategoriaKinderYPrimaria, true
	}
	return "", false
}

type uniformRepository interface {
	ListCategoriesWithItems(ctx context.Context) ([]models.UniformCategory, error)
	CategoryByName(ctx context.Context, nombre string) (*models.UniformCategory, error)
	SizesByStudent(ctx context.Context, studentID string) ([]models.StudentSizeDetail, error)
	UpsertSizes(ctx context.Context, sizes []models.StudentUniformSize) error
	DeleteSize(ctx context.Context, id int64) (int64, error)
	ReportRows(ctx context.Context) ([]models.UniformReportRow, error)
	SizeInventoryRows(ctx context.Context) ([]models.SizeInventoryRow, error)
}

type excelRenderer interface {
	Render(data export.Dataset, sheet string) ([]byte, error)
}

// UniformService manages the uniform catalog, size registrations and reports.
type UniformService struct {
	uniforms  uniformRepository
	students  paymentStudentRepository
	excel     excelRenderer
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewUniformService constructs a UniformService.
func NewUniformService(uniforms uniformRepository, students paymentStudentRepository, excel excelRenderer, validate *validator.Validate, logger *zap.Logger) *UniformService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UniformService{
		uniforms:  uniforms,
		students:  students,
		excel:     excel,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// StudentCategoryResult is the per-student category payload. When no category
// resolves, Data carries the full catalog and Mensaje the warning.
type StudentCategoryResult struct {
	Mensaje             string      `json:"mensaje,omitempty"`
	ModalidadEstudiante string      `json:"modalidadEstudiante,omitempty"`
	GradoEstudiante     string      `json:"gradoEstudiante,omitempty"`
	Data                interface{} `json:"data"`
}

// SizeEntry is one item of the size registration payload.
type SizeEntry struct {
	ItemID   int64  `json:"item_id" validate:"required"`
	Talla    string `json:"talla" validate:"required"`
	Cantidad int    `json:"cantidad"`
}

// UniformSearchHit is a formatted search result for the uniform screens.
type UniformSearchHit struct {
	ID             string `json:"id"`
	NombreCompleto string `json:"nombre_completo"`
	Nivel          string `json:"nivel"`
}

// UniformReport bundles the report rows with their statistics.
type UniformReport struct {
	Payments []models.UniformReportRow `json:"payments"`
	Stats    models.UniformReportStats `json:"stats"`
}

// Categories lists the full uniform catalog.
func (s *UniformService) Categories(ctx context.Context) ([]models.UniformCategory, error) {
	categories, err := s.uniforms.ListCategoriesWithItems(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener categorías")
	}
	return categories, nil
}

// StudentCategory resolves the category a student's uniforms come from.
// Unrecognised levels fall back to the full catalog with a warning.
func (s *UniformService) StudentCategory(ctx context.Context, studentID string) (*StudentCategoryResult, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "estudiante no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al consultar el estudiante")
	}

	nombre, ok := ResolveUniformCategory(student.Modalidad, student.Grado)
	if !ok {
		categories, err := s.uniforms.ListCategoriesWithItems(ctx)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener categorías")
		}
		s.logger.Warn("uniform level not recognised",
			zap.String("student_id", studentID),
			zap.String("grado", student.Grado),
			zap.String("modalidad", student.Modalidad))
		return &StudentCategoryResult{
			Mensaje: "Nivel no reconocido, mostrando todas las categorías",
			Data:    categories,
		}, nil
	}

	category, err := s.uniforms.CategoryByName(ctx, nombre)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener la categoría")
	}
	return &StudentCategoryResult{
		ModalidadEstudiante: student.Modalidad,
		GradoEstudiante:     student.Grado,
		Data:                category,
	}, nil
}

// Sizes returns a student's registered sizes.
func (s *UniformService) Sizes(ctx context.Context, studentID string) ([]models.StudentSizeDetail, error) {
	sizes, err := s.uniforms.SizesByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener tallas")
	}
	if sizes == nil {
		sizes = []models.StudentSizeDetail{}
	}
	return sizes, nil
}

// SaveSizes upserts a batch of size registrations for a student. A missing
// quantity defaults to one.
func (s *UniformService) SaveSizes(ctx context.Context, studentID string, entries []SizeEntry) error {
	if len(entries) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "se requiere un array de tallas")
	}
	sizes := make([]models.StudentUniformSize, 0, len(entries))
	for _, entry := range entries {
		if err := s.validator.Struct(entry); err != nil {
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos de talla inválidos")
		}
		cantidad := entry.Cantidad
		if cantidad <= 0 {
			cantidad = 1
		}
		sizes = append(sizes, models.StudentUniformSize{
			StudentID: studentID,
			ItemID:    entry.ItemID,
			Talla:     entry.Talla,
			Cantidad:  cantidad,
		})
	}
	if err := s.uniforms.UpsertSizes(ctx, sizes); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al guardar tallas")
	}
	s.logger.Info("sizes saved", zap.String("student_id", studentID), zap.Int("count", len(sizes)))
	return nil
}

// DeleteSize removes one size registration.
func (s *UniformService) DeleteSize(ctx context.Context, id int64) error {
	affected, err := s.uniforms.DeleteSize(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al eliminar talla")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "talla no encontrada")
	}
	return nil
}

// Search matches students for the uniform screens, formatted for the picker.
// Short terms return an empty list.
func (s *UniformService) Search(ctx context.Context, nombre string) ([]UniformSearchHit, error) {
	if len([]rune(nombre)) < 2 {
		return []UniformSearchHit{}, nil
	}
	results, err := s.students.Search(ctx, nombre, "", 10)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al buscar estudiantes")
	}
	hits := make([]UniformSearchHit, 0, len(results))
	for _, r := range results {
		hits = append(hits, UniformSearchHit{
			ID:             r.ID,
			NombreCompleto: strings.TrimSpace(r.Nombre + " " + r.Apellidos),
			Nivel:          r.Grado + " - " + r.Modalidad,
		})
	}
	return hits, nil
}

// Report returns the uniform payment rows with summary statistics.
func (s *UniformService) Report(ctx context.Context) (*UniformReport, error) {
	rows, err := s.uniforms.ReportRows(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener reportes")
	}
	if rows == nil {
		rows = []models.UniformReportRow{}
	}
	stats := models.UniformReportStats{}
	for _, row := range rows {
		stats.TotalSales += row.TotalAmount
		if row.PendingAmount > 0 {
			stats.PendingPayments++
		} else {
			stats.PaidInFull++
		}
	}
	return &UniformReport{Payments: rows, Stats: stats}, nil
}

// ExportExcel renders the uniform report as an xlsx workbook.
func (s *UniformService) ExportExcel(ctx context.Context) ([]byte, string, error) {
	report, err := s.Report(ctx)
	if err != nil {
		return nil, "", err
	}
	data := export.Dataset{
		Headers: []string{"ID", "Estudiante", "Grado", "Modalidad", "Total", "Pendiente", "Estado de Pago", "Fecha de Pago", "Método de Pago"},
	}
	for _, row := range report.Payments {
		fecha := ""
		if row.PaymentDate != nil {
			fecha = row.PaymentDate.Format("2006-01-02")
		}
		metodo := "N/A"
		if row.MetodoPago != nil {
			metodo = *row.MetodoPago
		}
		data.Rows = append(data.Rows, map[string]string{
			"ID":             row.ID,
			"Estudiante":     row.StudentName,
			"Grado":          row.Grado,
			"Modalidad":      row.Modalidad,
			"Total":          fmt.Sprintf("%.2f", row.TotalAmount),
			"Pendiente":      fmt.Sprintf("%.2f", row.PendingAmount),
			"Estado de Pago": row.PaymentStatus,
			"Fecha de Pago":  fecha,
			"Método de Pago": metodo,
		})
	}
	body, err := s.excel.Render(data, "Reporte de Uniformes")
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al generar archivo Excel")
	}
	filename := fmt.Sprintf("reporte-uniformes-%s.xlsx", s.now().Format("2006-01-02"))
	return body, filename, nil
}

// sizeOrder ranks letter sizes for inventory sorting.
var sizeOrder = map[string]int{"XS": 0, "S": 1, "M": 2, "L": 3, "XL": 4, "XXL": 5}

func sortSizes(tallas []models.SizeCount) {
	sort.SliceStable(tallas, func(i, j int) bool {
		ni, errI := strconv.Atoi(tallas[i].Talla)
		nj, errJ := strconv.Atoi(tallas[j].Talla)
		switch {
		case errI == nil && errJ == nil:
			return ni < nj
		case errI == nil:
			return true
		case errJ == nil:
			return false
		default:
			return sizeOrder[tallas[i].Talla] < sizeOrder[tallas[j].Talla]
		}
	})
}

// SizeInventory folds the flat (item, talla) counts into the per-category
// inventory report, numeric sizes first.
func (s *UniformService) SizeInventory(ctx context.Context) ([]models.CategorySizeInventory, error) {
	rows, err := s.uniforms.SizeInventoryRows(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener inventario de tallas")
	}

	var (
		categories []models.CategorySizeInventory
		catIndex   = map[int64]int{}
		itemIndex  = map[int64]int{}
	)
	for _, row := range rows {
		ci, ok := catIndex[row.CategoriaID]
		if !ok {
			ci = len(categories)
			catIndex[row.CategoriaID] = ci
			categories = append(categories, models.CategorySizeInventory{
				CategoriaID:          row.CategoriaID,
				CategoriaNombre:      row.CategoriaNombre,
				CategoriaDescripcion: row.CategoriaDescripcion,
			})
		}
		ii, ok := itemIndex[row.ItemID]
		if !ok {
			ii = len(categories[ci].Items)
			itemIndex[row.ItemID] = ii
			categories[ci].Items = append(categories[ci].Items, models.ItemSizeInventory{
				ItemID:     row.ItemID,
				ItemNombre: row.ItemNombre,
			})
		}
		talla := row.Talla
		if talla == "" {
			talla = "Sin especificar"
		}
		item := &categories[ci].Items[ii]
		item.Tallas = append(item.Tallas, models.SizeCount{Talla: talla, Cantidad: row.Cantidad})
		item.Total += row.Cantidad
		categories[ci].TotalRegistros += row.Cantidad
	}
	for ci := range categories {
		for ii := range categories[ci].Items {
			sortSizes(categories[ci].Items[ii].Tallas)
		}
	}
	if categories == nil {
		categories = []models.CategorySizeInventory{}
	}
	return categories, nil
}
