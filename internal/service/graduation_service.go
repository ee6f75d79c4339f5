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

// gradosGraduacion lists the grade labels that owe a graduation fee, across
// every shift and track. Matching is by normalised substring containment so
// variant phrasings of the same grade still qualify.
var gradosGraduacion = []string{
	"5to Baco", "6to PCB", "Prepa",
	"9no",
	"5to. BACH en Diseño", "5to. BACH en Mecánica", "5to. BACH en Electricidad",
	"3ro. Básico", "3ro Basico",
	"2do. Año - Basico por Madurez",
	"5to. BACO Comercial", "6to. PCB en Compu",
	"BACH por Madurez",
}

func normalizeGrado(grado string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(grado)), ".", "")
}

// EligibleForGraduation reports whether a grade label owes the graduation fee.
func EligibleForGraduation(grado string) bool {
	if grado == "" {
		return false
	}
	normalized := normalizeGrado(grado)
	for _, candidate := range gradosGraduacion {
		if strings.Contains(normalized, normalizeGrado(candidate)) {
			return true
		}
	}
	return false
}

type graduationRepository interface {
	FindByStudent(ctx context.Context, studentID string) (*models.GraduationPayment, error)
	Create(ctx context.Context, payment *models.GraduationPayment) (*models.GraduationPayment, error)
	AddPayment(ctx context.Context, studentID string, amount float64, paymentMethodID *int64) (*models.GraduationPayment, error)
}

// GraduationService manages eligibility-gated, cumulative graduation
// payments.
type GraduationService struct {
	graduation graduationRepository
	students   paymentStudentRepository
	payments   categoryPaymentRepository
	validator  *validator.Validate
	logger     *zap.Logger
	now        func() time.Time
}

// NewGraduationService constructs a GraduationService.
func NewGraduationService(graduation graduationRepository, students paymentStudentRepository, payments categoryPaymentRepository, validate *validator.Validate, logger *zap.Logger) *GraduationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GraduationService{
		graduation: graduation,
		students:   students,
		payments:   payments,
		validator:  validate,
		logger:     logger,
		now:        time.Now,
	}
}

// GraduationStatus is the GET payload: eligibility plus the payment so far.
type GraduationStatus struct {
	Aplica  bool                      `json:"aplica"`
	Mensaje string                    `json:"mensaje,omitempty"`
	Pago    *models.GraduationPayment `json:"pago"`
}

// SaveGraduationRequest is the pay payload. PaidAmount accumulates when a
// payment already exists; TotalAmount is only used on the first payment.
type SaveGraduationRequest struct {
	TotalAmount     float64 `json:"total_amount" validate:"gte=0"`
	PaidAmount      float64 `json:"paid_amount" validate:"gte=0"`
	PaymentMethodID *int64  `json:"payment_method_id"`
}

// GraduationReceipt is the pay response.
type GraduationReceipt struct {
	Pago          *models.GraduationPayment `json:"pago"`
	Estudiante    *models.Student           `json:"estudiante"`
	NumeroRecibo  string                    `json:"numeroRecibo"`
	MontoAbonado  float64                   `json:"montoAbonado"`
	EstaCancelado bool                      `json:"estaCancelado"`
	EsAbono       bool                      `json:"esAbono"`
	MetodoPago    string                    `json:"metodo_pago"`
}

// Status returns a student's graduation eligibility and payment.
func (s *GraduationService) Status(ctx context.Context, studentID string) (*GraduationStatus, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "estudiante no encontrado")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al consultar el estudiante")
	}
	if !EligibleForGraduation(student.Grado) {
		return &GraduationStatus{
			Aplica:  false,
			Mensaje: "El estudiante no aplica para pago de graduación",
		}, nil
	}

	payment, err := s.graduation.FindByStudent(ctx, studentID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al obtener pago de graduación")
	}
	return &GraduationStatus{Aplica: true, Pago: payment}, nil
}

// Save registers or accumulates a graduation payment for an eligible student.
func (s *GraduationService) Save(ctx context.Context, studentID string, req SaveGraduationRequest) (*GraduationReceipt, error) {
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
	if !EligibleForGraduation(student.Grado) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "El estudiante no aplica para pago de graduación")
	}

	metodoPago := "N/A"
	if req.PaymentMethodID != nil {
		if name, err := s.payments.MethodName(ctx, *req.PaymentMethodID); err == nil {
			metodoPago = name
		}
	}

	var (
		resultado *models.GraduationPayment
		esAbono   bool
	)
	_, err = s.graduation.FindByStudent(ctx, studentID)
	switch {
	case err == nil:
		esAbono = true
		resultado, err = s.graduation.AddPayment(ctx, studentID, req.PaidAmount, req.PaymentMethodID)
	case errors.Is(err, sql.ErrNoRows):
		resultado, err = s.graduation.Create(ctx, &models.GraduationPayment{
			StudentID:       studentID,
			TotalAmount:     req.TotalAmount,
			PaidAmount:      req.PaidAmount,
			PaymentMethodID: req.PaymentMethodID,
		})
	default:
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al consultar el pago")
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "error al guardar pago de graduación")
	}

	s.logger.Info("graduation payment saved",
		zap.String("student_id", studentID),
		zap.Float64("monto", req.PaidAmount),
		zap.Bool("abono", esAbono))

	return &GraduationReceipt{
		Pago:          resultado,
		Estudiante:    student,
		NumeroRecibo:  ReceiptNumber(ReceiptPrefixGraduacion, s.now()),
		MontoAbonado:  req.PaidAmount,
		EstaCancelado: resultado.PendingAmount == 0,
		EsAbono:       esAbono,
		MetodoPago:    metodoPago,
	}, nil
}
