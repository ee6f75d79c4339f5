package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jpsrivera1/backgeneralsistemaceti/internal/models"
)

// GraduationRepository manages cumulative graduation-fee payments, one row
// per student.
type GraduationRepository struct {
	db *sqlx.DB
}

// NewGraduationRepository constructs a GraduationRepository.
func NewGraduationRepository(db *sqlx.DB) *GraduationRepository {
	return &GraduationRepository{db: db}
}

const graduationColumns = `id, student_id, total_amount, paid_amount, pending_amount, payment_method_id, created_at`

// FindByStudent fetches a student's graduation payment.
func (r *GraduationRepository) FindByStudent(ctx context.Context, studentID string) (*models.GraduationPayment, error) {
	query := fmt.Sprintf(`SELECT %s FROM graduation_payments WHERE student_id = $1`, graduationColumns)
	var payment models.GraduationPayment
	if err := r.db.GetContext(ctx, &payment, query, studentID); err != nil {
		return nil, err
	}
	return &payment, nil
}

// Create opens a graduation payment with an initial installment.
func (r *GraduationRepository) Create(ctx context.Context, payment *models.GraduationPayment) (*models.GraduationPayment, error) {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	query := fmt.Sprintf(`INSERT INTO graduation_payments (id, student_id, total_amount, paid_amount, payment_method_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING %s`, graduationColumns)
	var created models.GraduationPayment
	if err := r.db.GetContext(ctx, &created, query,
		payment.ID, payment.StudentID, payment.TotalAmount, payment.PaidAmount, payment.PaymentMethodID); err != nil {
		return nil, fmt.Errorf("create graduation payment: %w", err)
	}
	return &created, nil
}

// AddPayment accumulates an installment onto the running paid amount.
func (r *GraduationRepository) AddPayment(ctx context.Context, studentID string, amount float64, paymentMethodID *int64) (*models.GraduationPayment, error) {
	query := fmt.Sprintf(`UPDATE graduation_payments SET paid_amount = paid_amount + $2,
        payment_method_id = COALESCE($3, payment_method_id)
        WHERE student_id = $1
        RETURNING %s`, graduationColumns)
	var updated models.GraduationPayment
	if err := r.db.GetContext(ctx, &updated, query, studentID, amount, paymentMethodID); err != nil {
		return nil, fmt.Errorf("add graduation payment: %w", err)
	}
	return &updated, nil
}
