package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jpsrivera1/backgeneralsistemaceti/internal/models"
)

// TuitionRepository manages monthly tuition (colegiatura) payments.
type TuitionRepository struct {
	db *sqlx.DB
}

// NewTuitionRepository constructs a TuitionRepository.
func NewTuitionRepository(db *sqlx.DB) *TuitionRepository {
	return &TuitionRepository{db: db}
}

const tuitionColumns = `id, student_id, mes, anio, monto_colegiatura, mora, total_pagado, fecha_pago, payment_method_id, created_at`

// ListByStudentYear returns a student's tuition history for one year, oldest
// payment first.
func (r *TuitionRepository) ListByStudentYear(ctx context.Context, studentID string, year int) ([]models.TuitionPayment, error) {
	query := fmt.Sprintf(`SELECT %s FROM pago_colegiaturas WHERE student_id = $1 AND anio = $2 ORDER BY fecha_pago`, tuitionColumns)
	var payments []models.TuitionPayment
	if err := r.db.SelectContext(ctx, &payments, query, studentID, year); err != nil {
		return nil, fmt.Errorf("list tuition payments: %w", err)
	}
	return payments, nil
}

// FindByMonth fetches the payment of one (student, month, year) tuple.
func (r *TuitionRepository) FindByMonth(ctx context.Context, studentID, mes string, year int) (*models.TuitionPayment, error) {
	query := fmt.Sprintf(`SELECT %s FROM pago_colegiaturas WHERE student_id = $1 AND mes = $2 AND anio = $3`, tuitionColumns)
	var payment models.TuitionPayment
	if err := r.db.GetContext(ctx, &payment, query, studentID, mes, year); err != nil {
		return nil, err
	}
	return &payment, nil
}

// FindByID fetches a tuition payment for receipt lookup.
func (r *TuitionRepository) FindByID(ctx context.Context, id string) (*models.TuitionPayment, error) {
	query := fmt.Sprintf(`SELECT %s FROM pago_colegiaturas WHERE id = $1`, tuitionColumns)
	var payment models.TuitionPayment
	if err := r.db.GetContext(ctx, &payment, query, id); err != nil {
		return nil, err
	}
	return &payment, nil
}

// Create inserts a tuition payment. total_pagado is derived in the database.
func (r *TuitionRepository) Create(ctx context.Context, payment *models.TuitionPayment) (*models.TuitionPayment, error) {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	if payment.FechaPago.IsZero() {
		payment.FechaPago = time.Now().UTC()
	}
	query := fmt.Sprintf(`INSERT INTO pago_colegiaturas (id, student_id, mes, anio, monto_colegiatura, mora, fecha_pago, payment_method_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING %s`, tuitionColumns)
	var created models.TuitionPayment
	if err := r.db.GetContext(ctx, &created, query,
		payment.ID, payment.StudentID, payment.Mes, payment.Anio, payment.MontoColegiatura, payment.Mora, payment.FechaPago, payment.PaymentMethodID); err != nil {
		return nil, fmt.Errorf("create tuition payment: %w", err)
	}
	return &created, nil
}
