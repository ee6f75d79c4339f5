package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jpsrivera1/backgeneralsistemaceti/internal/models"
	appErrors "github.com/jpsrivera1/backgeneralsistemaceti/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id string) (*models.Student, error)
	Search(ctx context.Context, term, tipoEstudiante string, limit int) ([]models.StudentSearchResult, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) (int64, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// StudentService manages the student roster.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// StudentRequest carries the fields accepted on create and update.
type StudentRequest struct {
	Nombre         string `json:"nombre" validate:"required"`
	Apellidos      string `json:"apellidos" validate:"required"`
	Grado          string `json:"grado" validate:"required"`
	Jornada        string `json:"jornada"`
	Modalidad      string `json:"modalidad"`
	TipoEstudiante string `json:"tipo_estudiante" validate:"omitempty,oneof=REGULAR CURSO"`
	CursoExtraID   *int64 `json:"curso_extra_id"`
	Estado         string `json:"estado" validate:"omitempty,oneof=ACTIVO INACTIVO"`
}

// List returns every student.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al listar estudiantes")
	}
	return students, nil
}

// Get fetches one student.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "estudiante no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al consultar el estudiante")
	}
	return student, nil
}

// Search matches students by name substring, optionally narrowed to one
// classification.
func (s *StudentService) Search(ctx context.Context, term, tipoEstudiante string, limit int) ([]models.StudentSearchResult, error) {
	if term == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "el término de búsqueda es requerido")
	}
	results, err := s.repo.Search(ctx, term, tipoEstudiante, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al buscar estudiantes")
	}
	return results, nil
}

// Create registers a student.
func (s *StudentService) Create(ctx context.Context, req StudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos del estudiante inválidos")
	}
	tipo := req.TipoEstudiante
	if tipo == "" {
		tipo = models.TipoEstudianteRegular
	}
	student := &models.Student{
		Nombre:         req.Nombre,
		Apellidos:      req.Apellidos,
		Grado:          req.Grado,
		Jornada:        req.Jornada,
		Modalidad:      req.Modalidad,
		TipoEstudiante: tipo,
		CursoExtraID:   req.CursoExtraID,
		Estado:         req.Estado,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al crear el estudiante")
	}
	s.logger.Info("student created", zap.String("id", student.ID))
	return student, nil
}

// Update replaces a student's editable fields.
func (s *StudentService) Update(ctx context.Context, id string, req StudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos del estudiante inválidos")
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	current.Nombre = req.Nombre
	current.Apellidos = req.Apellidos
	current.Grado = req.Grado
	current.Jornada = req.Jornada
	current.Modalidad = req.Modalidad
	if req.TipoEstudiante != "" {
		current.TipoEstudiante = req.TipoEstudiante
	}
	current.CursoExtraID = req.CursoExtraID
	if req.Estado != "" {
		current.Estado = req.Estado
	}
	affected, err := s.repo.Update(ctx, current)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al actualizar el estudiante")
	}
	if affected == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "estudiante no encontrado")
	}
	return current, nil
}

// Delete removes a student.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al eliminar el estudiante")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "estudiante no encontrado")
	}
	s.logger.Info("student deleted", zap.String("id", id))
	return nil
}
