package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jpsrivera1/backgeneralsistemaceti/internal/models"
	appErrors "github.com/jpsrivera1/backgeneralsistemaceti/pkg/errors"
)

const schoolYearMonths = 10

type courseRepository interface {
	ListCourses(ctx context.Context) ([]models.ExtraCourse, error)
	ListMonths(ctx context.Context) ([]models.Month, error)
	MonthName(ctx context.Context, id int64) (string, error)
	ListCourseStudents(ctx context.Context) ([]models.CourseStudent, error)
	PaymentsByStudent(ctx context.Context, studentID string) ([]models.CoursePayment, error)
	FindPaymentByMonth(ctx context.Context, studentID string, monthID int64) (*models.CoursePayment, error)
	CreatePayment(ctx context.Context, payment *models.CoursePayment) (*models.CoursePayment, error)
	AmountsByStudent(ctx context.Context, studentID string) ([]float64, error)
}

// CourseService manages extra courses and their monthly payments.
type CourseService struct {
	courses   courseRepository
	students  paymentStudentRepository
	payments  categoryPaymentRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewCourseService constructs a CourseService.
func NewCourseService(courses courseRepository, students paymentStudentRepository, payments categoryPaymentRepository, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{
		courses:   courses,
		students:  students,
		payments:  payments,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// RegisterCoursePaymentRequest is the course payment payload. The late fee is
// recomputed server-side from the month id.
type RegisterCoursePaymentRequest struct {
	EstudianteID    string  `json:"estudiante_id" validate:"required"`
	MesID           int64   `json:"mes_id" validate:"required,min=1,max=12"`
	Monto           float64 `json:"monto" validate:"required,gt=0"`
	PaymentMethodID *int64  `json:"payment_method_id"`
}

// CoursePaymentReceipt is the registration response.
type CoursePaymentReceipt struct {
	models.CoursePayment
	NumeroRecibo string  `json:"numero_recibo"`
	Monto        float64 `json:"monto"`
	Mora         float64 `json:"mora"`
	MetodoPago   string  `json:"metodo_pago"`
}

// CourseMonthStatus reports whether a course month is already paid.
type CourseMonthStatus struct {
	Pagado bool                  `json:"pagado"`
	Pago   *models.CoursePayment `json:"pago"`
}

// Courses lists the extra-course catalog.
func (s *CourseService) Courses(ctx context.Context) ([]models.ExtraCourse, error) {
	courses, err := s.courses.ListCourses(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener cursos extra")
	}
	return courses, nil
}

// Months lists the month catalog.
func (s *CourseService) Months(ctx context.Context) ([]models.Month, error) {
	months, err := s.courses.ListMonths(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener meses")
	}
	return months, nil
}

// CourseStudents lists the students enrolled in extra courses.
func (s *CourseService) CourseStudents(ctx context.Context) ([]models.CourseStudent, error) {
	students, err := s.courses.ListCourseStudents(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener estudiantes de cursos")
	}
	return students, nil
}

// SearchCourseStudents matches course students by name. Short terms return an
// empty list rather than an error, matching the search-as-you-type UI.
func (s *CourseService) SearchCourseStudents(ctx context.Context, nombre string) ([]models.StudentSearchResult, error) {
	if len([]rune(nombre)) < 2 {
		return []models.StudentSearchResult{}, nil
	}
	results, err := s.students.Search(ctx, nombre, models.TipoEstudianteCurso, 10)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al buscar estudiantes")
	}
	return results, nil
}

// Payments returns a student's course payments.
func (s *CourseService) Payments(ctx context.Context, studentID string) ([]models.CoursePayment, error) {
	payments, err := s.courses.PaymentsByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener pagos del curso")
	}
	if payments == nil {
		payments = []models.CoursePayment{}
	}
	return payments, nil
}

// MonthPaid checks whether a course month is already paid.
func (s *CourseService) MonthPaid(ctx context.Context, studentID string, monthID int64) (*CourseMonthStatus, error) {
	payment, err := s.courses.FindPaymentByMonth(ctx, studentID, monthID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &CourseMonthStatus{Pagado: false}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al verificar mes")
	}
	return &CourseMonthStatus{Pagado: true, Pago: payment}, nil
}

// Register records one month's course payment. The late fee is added to the
// stored amount; a month already paid is rejected.
func (s *CourseService) Register(ctx context.Context, req RegisterCoursePaymentRequest) (*CoursePaymentReceipt, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos del pago inválidos")
	}
	now := s.now()
	mora := LateFee(int(req.MesID), now)

	student, err := s.students.FindByID(ctx, req.EstudianteID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "estudiante no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al consultar el estudiante")
	}
	if student.CursoExtraID == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "El estudiante no tiene un curso asignado")
	}

	monthName, err := s.courses.MonthName(ctx, req.MesID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener el mes")
	}

	metodoPago := "N/A"
	if req.PaymentMethodID != nil {
		if name, err := s.payments.MethodName(ctx, *req.PaymentMethodID); err == nil {
			metodoPago = name
		}
	}

	if _, err := s.courses.FindPaymentByMonth(ctx, req.EstudianteID, req.MesID); err == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Este mes ya fue pagado")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al verificar mes")
	}

	created, err := s.courses.CreatePayment(ctx, &models.CoursePayment{
		StudentID:       req.EstudianteID,
		CourseID:        *student.CursoExtraID,
		Month:           monthName,
		MonthID:         req.MesID,
		Amount:          req.Monto + mora,
		Status:          "Pagado",
		PaymentMethodID: req.PaymentMethodID,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al registrar pago")
	}

	s.logger.Info("course payment registered",
		zap.String("student_id", req.EstudianteID),
		zap.Int64("mes_id", req.MesID),
		zap.Float64("mora", mora))

	return &CoursePaymentReceipt{
		CoursePayment: *created,
		NumeroRecibo:  ReceiptNumber(ReceiptPrefixCurso, now),
		Monto:         req.Monto,
		Mora:          mora,
		MetodoPago:    metodoPago,
	}, nil
}

// Summary totals a student's course payments against the ten-month school
// year.
func (s *CourseService) Summary(ctx context.Context, studentID string) (*models.CoursePaymentSummary, error) {
	amounts, err := s.courses.AmountsByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener resumen de pagos")
	}
	var total float64
	for _, amount := range amounts {
		total += amount
	}
	return &models.CoursePaymentSummary{
		MesesPagados:    len(amounts),
		MesesPendientes: schoolYearMonths - len(amounts),
		TotalPagado:     total,
	}, nil
}
