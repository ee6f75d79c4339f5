package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jpsrivera1/backgeneralsistemaceti/internal/models"
	appErrors "github.com/jpsrivera1/backgeneralsistemaceti/pkg/errors"
)

type tuitionRepository interface {
	ListByStudentYear(ctx context.Context, studentID string, year int) ([]models.TuitionPayment, error)
	FindByMonth(ctx context.Context, studentID, mes string, year int) (*models.TuitionPayment, error)
	FindByID(ctx context.Context, id string) (*models.TuitionPayment, error)
	Create(ctx context.Context, payment *models.TuitionPayment) (*models.TuitionPayment, error)
}

// TuitionService registers monthly tuition payments and their receipts.
type TuitionService struct {
	tuition   tuitionRepository
	students  paymentStudentRepository
	payments  categoryPaymentRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewTuitionService constructs a TuitionService.
func NewTuitionService(tuition tuitionRepository, students paymentStudentRepository, payments categoryPaymentRepository, validate *validator.Validate, logger *zap.Logger) *TuitionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TuitionService{
		tuition:   tuition,
		students:  students,
		payments:  payments,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// RegisterTuitionRequest is the tuition registration payload.
type RegisterTuitionRequest struct {
	Mes              string  `json:"mes" validate:"required"`
	MontoColegiatura float64 `json:"monto_colegiatura" validate:"required,gt=0"`
	PaymentMethodID  *int64  `json:"payment_method_id"`
}

// TuitionReceipt is the registration response, ticket number included.
type TuitionReceipt struct {
	Pago         *models.TuitionPayment `json:"pago"`
	Estudiante   *models.Student        `json:"estudiante"`
	NumeroBoleto string                 `json:"numeroBoleto"`
	Mora         float64                `json:"mora"`
	Total        float64                `json:"total"`
	MetodoPago   string                 `json:"metodo_pago"`
}

// MonthStatus reports whether a month is already paid.
type MonthStatus struct {
	Pagado bool                   `json:"pagado"`
	Pago   *models.TuitionPayment `json:"pago"`
}

// ReceiptInfo is the receipt-lookup payload for a past payment.
type ReceiptInfo struct {
	Pago         *models.TuitionPayment `json:"pago"`
	Estudiante   *models.Student        `json:"estudiante"`
	NumeroBoleto string                 `json:"numeroBoleto"`
}

// History returns the current-year tuition payments of a student.
func (s *TuitionService) History(ctx context.Context, studentID string) ([]models.TuitionPayment, error) {
	payments, err := s.tuition.ListByStudentYear(ctx, studentID, s.now().Year())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener colegiaturas")
	}
	if payments == nil {
		payments = []models.TuitionPayment{}
	}
	return payments, nil
}

// MonthPaid checks whether a month of the current year is already paid.
func (s *TuitionService) MonthPaid(ctx context.Context, studentID, mes string) (*MonthStatus, error) {
	payment, err := s.tuition.FindByMonth(ctx, studentID, strings.ToUpper(mes), s.now().Year())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &MonthStatus{Pagado: false}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al verificar mes")
	}
	return &MonthStatus{Pagado: true, Pago: payment}, nil
}

// Register records a tuition payment for one month of the current year. A
// month already paid is rejected; the late fee is computed from the target
// month's grace day.
func (s *TuitionService) Register(ctx context.Context, studentID string, req RegisterTuitionRequest) (*TuitionReceipt, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "datos de la colegiatura inválidos")
	}
	now := s.now()
	mes := strings.ToUpper(req.Mes)

	if _, err := s.tuition.FindByMonth(ctx, studentID, mes, now.Year()); err == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Este mes ya fue pagado")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al verificar mes")
	}

	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "estudiante no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al consultar el estudiante")
	}

	mora := LateFee(MonthNumber(mes), now)
	created, err := s.tuition.Create(ctx, &models.TuitionPayment{
		StudentID:        studentID,
		Mes:              mes,
		Anio:             now.Year(),
		MontoColegiatura: req.MontoColegiatura,
		Mora:             mora,
		FechaPago:        now,
		PaymentMethodID:  req.PaymentMethodID,
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al registrar colegiatura")
	}

	s.logger.Info("tuition registered",
		zap.String("student_id", studentID),
		zap.String("mes", mes),
		zap.Float64("mora", mora))

	return &TuitionReceipt{
		Pago:         created,
		Estudiante:   student,
		NumeroBoleto: ReceiptNumber(ReceiptPrefixColegiatura, now),
		Mora:         created.Mora,
		Total:        created.TotalPagado,
		MetodoPago:   s.tuitionMethodName(ctx, req.PaymentMethodID),
	}, nil
}

// Receipt rebuilds the receipt of a past tuition payment. The ticket number
// is derived from the payment's creation time so lookups stay stable.
func (s *TuitionService) Receipt(ctx context.Context, pagoID string) (*ReceiptInfo, error) {
	payment, err := s.tuition.FindByID(ctx, pagoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "pago no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener información del recibo")
	}
	student, err := s.students.FindByID(ctx, payment.StudentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al consultar el estudiante")
	}
	boleto := ReceiptNumber(ReceiptPrefixColegiatura, payment.CreatedAt)
	return &ReceiptInfo{Pago: payment, Estudiante: student, NumeroBoleto: boleto}, nil
}

func (s *TuitionService) tuitionMethodName(ctx context.Context, id *int64) string {
	if id == nil {
		return "N/A"
	}
	name, err := s.payments.MethodName(ctx, *id)
	if err != nil {
		return "N/A"
	}
	return name
}
