package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jpsrivera1/backgeneralsistemaceti/internal/models"
)

// CourseRepository manages extra courses, the month catalog and per-month
// course payments.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// ListCourses returns the extra-course catalog ordered by name.
func (r *CourseRepository) ListCourses(ctx context.Context) ([]models.ExtraCourse, error) {
	const query = `SELECT id, nombre, descripcion FROM extra_courses ORDER BY nombre`
	var courses []models.ExtraCourse
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list extra courses: %w", err)
	}
	return courses, nil
}

// ListMonths returns the month catalog in calendar order.
func (r *CourseRepository) ListMonths(ctx context.Context) ([]models.Month, error) {
	const query = `SELECT id, name FROM months ORDER BY id`
	var months []models.Month
	if err := r.db.SelectContext(ctx, &months, query); err != nil {
		return nil, fmt.Errorf("list months: %w", err)
	}
	return months, nil
}

// MonthName resolves a month's display name.
func (r *CourseRepository) MonthName(ctx context.Context, id int64) (string, error) {
	const query = `SELECT name FROM months WHERE id = $1`
	var name string
	if err := r.db.GetContext(ctx, &name, query, id); err != nil {
		return "", err
	}
	return name, nil
}

const courseStudentColumns = `s.id, s.nombre, s.apellidos, s.grado, s.jornada, s.modalidad, s.tipo_estudiante, s.curso_extra_id, s.estado, s.created_at, s.updated_at,
        c.nombre AS curso_nombre, c.descripcion AS curso_descripcion`

// ListCourseStudents returns the students enrolled in extra courses, with
// their course attached.
func (r *CourseRepository) ListCourseStudents(ctx context.Context) ([]models.CourseStudent, error) {
	query := fmt.Sprintf(`SELECT %s FROM students s
        LEFT JOIN extra_courses c ON c.id = s.curso_extra_id
        WHERE s.tipo_estudiante = $1
        ORDER BY s.apellidos, s.nombre`, courseStudentColumns)
	var students []models.CourseStudent
	if err := r.db.SelectContext(ctx, &students, query, models.TipoEstudianteCurso); err != nil {
		return nil, fmt.Errorf("list course students: %w", err)
	}
	return students, nil
}

const coursePaymentColumns = `id, student_id, course_id, month, month_id, amount, status, payment_method_id, created_at`

// PaymentsByStudent returns a student's course payments in month order.
func (r *CourseRepository) PaymentsByStudent(ctx context.Context, studentID string) ([]models.CoursePayment, error) {
	query := fmt.Sprintf(`SELECT %s FROM course_payments WHERE student_id = $1 ORDER BY month_id`, coursePaymentColumns)
	var payments []models.CoursePayment
	if err := r.db.SelectContext(ctx, &payments, query, studentID); err != nil {
		return nil, fmt.Errorf("list course payments: %w", err)
	}
	return payments, nil
}

// FindPaymentByMonth fetches a student's payment for one month, if any.
func (r *CourseRepository) FindPaymentByMonth(ctx context.Context, studentID string, monthID int64) (*models.CoursePayment, error) {
	query := fmt.Sprintf(`SELECT %s FROM course_payments WHERE student_id = $1 AND month_id = $2`, coursePaymentColumns)
	var payment models.CoursePayment
	if err := r.db.GetContext(ctx, &payment, query, studentID, monthID); err != nil {
		return nil, err
	}
	return &payment, nil
}

// CreatePayment records a course payment for one month.
func (r *CourseRepository) CreatePayment(ctx context.Context, payment *models.CoursePayment) (*models.CoursePayment, error) {
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	query := fmt.Sprintf(`INSERT INTO course_payments (id, student_id, course_id, month, month_id, amount, status, payment_method_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING %s`, coursePaymentColumns)
	var created models.CoursePayment
	if err := r.db.GetContext(ctx, &created, query,
		payment.ID, payment.StudentID, payment.CourseID, payment.Month, payment.MonthID, payment.Amount, payment.Status, payment.PaymentMethodID); err != nil {
		return nil, fmt.Errorf("create course payment: %w", err)
	}
	return &created, nil
}

// AmountsByStudent returns just the paid amounts, for the payment summary.
func (r *CourseRepository) AmountsByStudent(ctx context.Context, studentID string) ([]float64, error) {
	const query = `SELECT amount FROM course_payments WHERE student_id = $1`
	var amounts []float64
	if err := r.db.SelectContext(ctx, &amounts, query, studentID); err != nil {
		return nil, fmt.Errorf("course payment amounts: %w", err)
	}
	return amounts, nil
}
