package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jpsrivera1/backgeneralsistemaceti/internal/models"
	"github.com/jpsrivera1/backgeneralsistemaceti/internal/repository"
	appErrors "github.com/jpsrivera1/backgeneralsistemaceti/pkg/errors"
)

type categoryPaymentRepository interface {
	FindByStudent(ctx context.Context, category, studentID string) (*models.CategoryPayment, error)
	Create(ctx context.Context, category string, payment *models.CategoryPayment) (*models.CategoryPayment, error)
	UpdateTotals(ctx context.Context, category, studentID string, montoTotal, montoAdelanto float64, paymentMethodID *int64) (*models.CategoryPayment, error)
	AddAdvance(ctx context.Context, category, studentID string, amount float64, paymentMethodID *int64) (*models.CategoryPayment, error)
	ListMethods(ctx context.Context) ([]models.PaymentMethod, error)
	MethodName(ctx context.Context, id int64) (string, error)
}

type paymentStudentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
	Search(ctx context.Context, term, tipoEstudiante string, limit int) ([]models.StudentSearchResult, error)
}

type paymentSummaryRepository interface {
	ViewSummaries(ctx context.Context) ([]models.StudentPaymentSummary, error)
}

// PaymentService handles the seven category payments of a student and the
// payment-method catalog.
type PaymentService struct {
	payments  categoryPaymentRepository
	students  paymentStudentRepository
	summaries paymentSummaryRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(payments categoryPaymentRepository, students paymentStudentRepository, summaries paymentSummaryRepository, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		payments:  payments,
		students:  students,
		summaries: summaries,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// SavePaymentRequest is the create-or-update payload for a category payment.
// MontoAbono doubles as the installment amount when EsPagoPendiente is set.
type SavePaymentRequest struct {
	MontoTotal      float64 `json:"monto_total" validate:"gte=0"`
	MontoAbono      float64 `json:"monto_abono" validate:"gte=0"`
	EsPagoPendiente bool    `json:"es_pago_pendiente"`
	PaymentMethodID *int64  `json:"payment_method_id"`
}

// PaymentReceipt is the response of a saved category payment, receipt number
// included.
type PaymentReceipt struct {
	Pago                   *models.CategoryPayment `json:"pago"`
	Estudiante             *models.Student         `json:"estudiante"`
	NumeroRecibo           string                  `json:"numeroRecibo"`
	TipoPago               string                  `json:"tipoPago"`
	MontoAbonado           float64                 `json:"montoAbonado"`
	MontoPendienteAnterior float64                 `json:"montoPendienteAnterior"`
	EstaCancelado          bool                    `json:"estaCancelado"`
	EsAbono                bool                    `json:"esAbono"`
	MetodoPago             string                  `json:"metodo_pago"`
}

// SearchStudents finds students for the payment screens. Terms under two
// characters are rejected.
func (s *PaymentService) SearchStudents(ctx context.Context, nombre string) ([]models.StudentSearchResult, error) {
	if len([]rune(nombre)) < 2 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "ingrese al menos 2 caracteres para buscar")
	}
	results, err := s.students.Search(ctx, nombre, "", 10)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al buscar estudiantes")
	}
	return results, nil
}

// StudentPayments returns every category payment of one student, keyed by
// category, nil where no payment exists yet.
func (s *PaymentService) StudentPayments(ctx context.Context, studentID string) (map[string]*models.CategoryPayment, error) {
	pagos := make(map[string]*models.CategoryPayment, len(models.CategoryOrder))
	for _, category := range models.CategoryOrder {
		payment, err := s.payments.FindByStudent(ctx, category, studentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				pagos[category] = nil
				continue
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener pagos")
		}
		pagos[category] = payment
	}
	return pagos, nil
}

// Payment returns one category payment, nil when none exists.
func (s *PaymentService) Payment(ctx context.Context, studentID, category string) (*models.CategoryPayment, error) {
	payment, err := s.payments.FindByStudent(ctx, category, studentID)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownCategory) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "tipo de pago no válido")
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener pago")
	}
	return payment, nil
}

// SavePayment creates or updates one category payment. An installment against
// an existing balance only grows the advance; otherwise totals are replaced.
func (s *PaymentService) SavePayment(ctx context.Context, studentID, category string, req SavePaymentRequest) (*PaymentReceipt, error) {
	if _, ok := models.CategoryTables[category]; !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "tipo de pago no válido")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos del pago inválidos")
	}

	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "estudiante no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al consultar el estudiante")
	}

	metodoPago := s.methodName(ctx, req.PaymentMethodID)

	montoAbonado := req.MontoAbono
	if montoAbonado == 0 {
		montoAbonado = req.MontoTotal
	}

	var (
		montoPendienteAnterior float64
		resultado              *models.CategoryPayment
	)
	existing, err := s.payments.FindByStudent(ctx, category, studentID)
	switch {
	case err == nil:
		montoPendienteAnterior = existing.MontoPendiente
		if req.EsPagoPendiente && montoPendienteAnterior > 0 {
			resultado, err = s.payments.AddAdvance(ctx, category, studentID, montoAbonado, req.PaymentMethodID)
		} else {
			resultado, err = s.payments.UpdateTotals(ctx, category, studentID, req.MontoTotal, req.MontoAbono, req.PaymentMethodID)
		}
	case errors.Is(err, sql.ErrNoRows):
		resultado, err = s.payments.Create(ctx, category, &models.CategoryPayment{
			StudentID:       studentID,
			MontoTotal:      req.MontoTotal,
			MontoAdelanto:   req.MontoAbono,
			PaymentMethodID: req.PaymentMethodID,
		})
	default:
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al consultar el pago")
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al guardar pago")
	}

	s.logger.Info("payment saved",
		zap.String("student_id", studentID),
		zap.String("category", category),
		zap.Float64("monto", montoAbonado))

	return &PaymentReceipt{
		Pago:                   resultado,
		Estudiante:             student,
		NumeroRecibo:           CategoryReceiptNumber(category, s.now()),
		TipoPago:               models.CategoryNames[category],
		MontoAbonado:           montoAbonado,
		MontoPendienteAnterior: montoPendienteAnterior,
		EstaCancelado:          resultado.MontoPendiente == 0,
		EsAbono:                req.EsPagoPendiente,
		MetodoPago:             metodoPago,
	}, nil
}

// Summary returns the per-student payment totals view ordered by name.
func (s *PaymentService) Summary(ctx context.Context) ([]models.StudentPaymentSummary, error) {
	summaries, err := s.summaries.ViewSummaries(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener resumen de pagos")
	}
	return summaries, nil
}

// Methods lists the payment-method catalog.
func (s *PaymentService) Methods(ctx context.Context) ([]models.PaymentMethod, error) {
	methods, err := s.payments.ListMethods(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener métodos de pago")
	}
	return methods, nil
}

// methodName resolves a payment-method name, falling back to N/A.
func (s *PaymentService) methodName(ctx context.Context, id *int64) string {
	if id == nil {
		return "N/A"
	}
	name, err := s.payments.MethodName(ctx, *id)
	if err != nil {
		return "N/A"
	}
	return name
}
