package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jpsrivera1/backgeneralsistemaceti/internal/models"
)

// ErrUnknownCategory is returned when a request names a payment category
// outside the fixed table mapping.
var ErrUnknownCategory = fmt.Errorf("unknown payment category")

// PaymentRepository manages the seven shared-shape category payment tables
// and the payment-method lookup. Table names come only from the fixed
// category mapping, never from request input.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository constructs a PaymentRepository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func categoryTable(category string) (string, error) {
	table, ok := models.CategoryTables[category]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	return table, nil
}

const categoryPaymentColumns = `id, student_id, monto_total, monto_adelanto, monto_pendiente, mora, payment_method_id, created_at, fecha_actualizacion`

// FindByStudent fetches the single category payment row of a student.
func (r *PaymentRepository) FindByStudent(ctx context.Context, category, studentID string) (*models.CategoryPayment, error) {
	table, err := categoryTable(category)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE student_id = $1`, categoryPaymentColumns, table)
	var payment models.CategoryPayment
	if err := r.db.GetContext(ctx, &payment, query, studentID); err != nil {
		return nil, err
	}
	return &payment, nil
}

// Create inserts a new category payment for a student.
func (r *PaymentRepository) Create(ctx context.Context, category string, payment *models.CategoryPayment) (*models.CategoryPayment, error) {
	table, err := categoryTable(category)
	if err != nil {
		return nil, err
	}
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	query := fmt.Sprintf(`INSERT INTO %s (id, student_id, monto_total, monto_adelanto, mora, payment_method_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING %s`, table, categoryPaymentColumns)
	var created models.CategoryPayment
	if err := r.db.GetContext(ctx, &created, query,
		payment.ID, payment.StudentID, payment.MontoTotal, payment.MontoAdelanto, payment.Mora, payment.PaymentMethodID); err != nil {
		return nil, fmt.Errorf("create %s payment: %w", category, err)
	}
	return &created, nil
}

// UpdateTotals replaces the total and advance of an existing payment.
func (r *PaymentRepository) UpdateTotals(ctx context.Context, category, studentID string, montoTotal, montoAdelanto float64, paymentMethodID *int64) (*models.CategoryPayment, error) {
	table, err := categoryTable(category)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`UPDATE %s SET monto_total = $2, monto_adelanto = $3,
        payment_method_id = COALESCE($4, payment_method_id), fecha_actualizacion = $5
        WHERE student_id = $1
        RETURNING %s`, table, categoryPaymentColumns)
	var updated models.CategoryPayment
	if err := r.db.GetContext(ctx, &updated, query, studentID, montoTotal, montoAdelanto, paymentMethodID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("update %s payment: %w", category, err)
	}
	return &updated, nil
}

// AddAdvance adds an installment against the outstanding balance.
func (r *PaymentRepository) AddAdvance(ctx context.Context, category, studentID string, amount float64, paymentMethodID *int64) (*models.CategoryPayment, error) {
	table, err := categoryTable(category)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`UPDATE %s SET monto_adelanto = monto_adelanto + $2,
        payment_method_id = COALESCE($3, payment_method_id), fecha_actualizacion = $4
        WHERE student_id = $1
        RETURNING %s`, table, categoryPaymentColumns)
	var updated models.CategoryPayment
	if err := r.db.GetContext(ctx, &updated, query, studentID, amount, paymentMethodID, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("add %s advance: %w", category, err)
	}
	return &updated, nil
}

// ListMethods returns all payment methods ordered by id.
func (r *PaymentRepository) ListMethods(ctx context.Context) ([]models.PaymentMethod, error) {
	const query = `SELECT id, name FROM payment_methods ORDER BY id`
	var methods []models.PaymentMethod
	if err := r.db.SelectContext(ctx, &methods, query); err != nil {
		return nil, fmt.Errorf("list payment methods: %w", err)
	}
	return methods, nil
}

// MethodName resolves a payment-method display name.
func (r *PaymentRepository) MethodName(ctx context.Context, id int64) (string, error) {
	const query = `SELECT name FROM payment_methods WHERE id = $1`
	var name string
	if err := r.db.GetContext(ctx, &name, query, id); err != nil {
		return "", err
	}
	return name, nil
}
