package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jpsrivera1/backgeneralsistemaceti/internal/models"
)

// DashboardRepository reads the uniform projections every aggregate reduces
// over. Table and column names come only from the fixed source list, never
// from request input.
type DashboardRepository struct {
	db *sqlx.DB
}

// NewDashboardRepository constructs a DashboardRepository.
func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// IsMissingTable reports whether err is Postgres undefined_table. The
// aggregates treat a source whose table does not exist as empty rather than
// failing the whole dashboard.
func IsMissingTable(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "42P01"
}

// rangeClause builds an inclusive created_at filter starting at argument
// position next.
func rangeClause(rng models.DateRange, next int) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	if rng.Start != nil {
		conds = append(conds, fmt.Sprintf("created_at >= $%d", next))
		args = append(args, *rng.Start)
		next++
	}
	if rng.End != nil {
		conds = append(conds, fmt.Sprintf("created_at <= $%d", next))
		args = append(args, *rng.End)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// Records reads every payment of one source within the range.
func (r *DashboardRepository) Records(ctx context.Context, source models.CategorySource, rng models.DateRange) ([]models.PaymentRecord, error) {
	where, args := rangeClause(rng, 1)
	query := fmt.Sprintf(`SELECT created_at, %s AS amount, payment_method_id FROM %s%s`,
		source.AmountField, source.Table, where)
	var records []models.PaymentRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		if IsMissingTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("records from %s: %w", source.Table, err)
	}
	return records, nil
}

// MoraTotal sums the late fees collected by one source within the range.
// Sources without a mora column report zero.
func (r *DashboardRepository) MoraTotal(ctx context.Context, source models.CategorySource, rng models.DateRange) (float64, error) {
	if !source.HasMora {
		return 0, nil
	}
	where, args := rangeClause(rng, 1)
	query := fmt.Sprintf(`SELECT COALESCE(SUM(mora), 0) FROM %s%s`, source.Table, where)
	var total float64
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		if IsMissingTable(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("mora total from %s: %w", source.Table, err)
	}
	return total, nil
}

// PendingRecords reads the rows of one source that still carry a balance.
// Sources without a pending column report nothing.
func (r *DashboardRepository) PendingRecords(ctx context.Context, source models.CategorySource) ([]models.PendingRecord, error) {
	if source.PendingField == "" {
		return nil, nil
	}
	query := fmt.Sprintf(`SELECT student_id, %s AS monto_pendiente, created_at FROM %s WHERE %s > 0`,
		source.PendingField, source.Table, source.PendingField)
	var records []models.PendingRecord
	if err := r.db.SelectContext(ctx, &records, query); err != nil {
		if IsMissingTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("pending records from %s: %w", source.Table, err)
	}
	return records, nil
}

// DetailRecords reads one source's payments joined with the student and
// payment-method names, for the detailed report. Only tuition rows carry a
// month and only course rows carry a course name.
func (r *DashboardRepository) DetailRecords(ctx context.Context, source models.CategorySource, rng models.DateRange) ([]models.ReportDetailRecord, error) {
	mesExpr, cursoExpr, joins := "NULL::text", "NULL::text", ""
	switch source.Table {
	case "pago_colegiaturas":
		mesExpr = "p.mes"
	case "course_payments":
		mesExpr = "mo.name"
		cursoExpr = "c.nombre"
		joins = `
        LEFT JOIN extra_courses c ON c.id = p.course_id
        LEFT JOIN months mo ON mo.id = p.month_id`
	}
	where, args := rangeClause(rng, 1)
	where = strings.ReplaceAll(where, "created_at", "p.created_at")
	query := fmt.Sprintf(`SELECT s.nombre || ' ' || s.apellidos AS estudiante,
        %s AS mes, %s AS curso, p.created_at, m.name AS metodo_pago, p.%s AS monto
        FROM %s p
        JOIN students s ON s.id = p.student_id
        LEFT JOIN payment_methods m ON m.id = p.payment_method_id%s%s
        ORDER BY p.created_at DESC`,
		mesExpr, cursoExpr, source.AmountField, source.Table, joins, where)
	var records []models.ReportDetailRecord
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		if IsMissingTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("detail records from %s: %w", source.Table, err)
	}
	return records, nil
}

// TuitionMonthTotal sums the tuition collected for one (mes, anio).
func (r *DashboardRepository) TuitionMonthTotal(ctx context.Context, mes string, anio int) (float64, error) {
	const query = `SELECT COALESCE(SUM(total_pagado), 0) FROM pago_colegiaturas WHERE mes = $1 AND anio = $2`
	var total float64
	if err := r.db.GetContext(ctx, &total, query, mes, anio); err != nil {
		return 0, fmt.Errorf("tuition month total: %w", err)
	}
	return total, nil
}

// ViewSummaries reads the per-student payment totals view.
func (r *DashboardRepository) ViewSummaries(ctx context.Context) ([]models.StudentPaymentSummary, error) {
	const query = `SELECT student_id, estudiante, total_pagado, total_pendiente
        FROM vista_pagos_estudiantes ORDER BY estudiante`
	var summaries []models.StudentPaymentSummary
	if err := r.db.SelectContext(ctx, &summaries, query); err != nil {
		return nil, fmt.Errorf("student payment view: %w", err)
	}
	return summaries, nil
}

// StudentClassifications reads the fields the student statistics reduce over.
func (r *DashboardRepository) StudentClassifications(ctx context.Context) ([]models.StudentClassification, error) {
	const query = `SELECT estado, tipo_estudiante, jornada, modalidad FROM students`
	var rows []models.StudentClassification
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("student classifications: %w", err)
	}
	return rows, nil
}

// CourseEnrollments counts active course students per extra course.
func (r *DashboardRepository) CourseEnrollments(ctx context.Context) ([]models.CourseEnrollment, error) {
	const query = `SELECT c.id, c.nombre, c.descripcion, COUNT(s.id) AS inscritos
        FROM extra_courses c
        LEFT JOIN students s ON s.curso_extra_id = c.id AND s.tipo_estudiante = 'CURSO' AND s.estado = 'ACTIVO'
        GROUP BY c.id, c.nombre, c.descripcion
        ORDER BY c.nombre`
	var rows []models.CourseEnrollment
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("course enrollments: %w", err)
	}
	return rows, nil
}

// StudentNames resolves display names for a set of student ids.
func (r *DashboardRepository) StudentNames(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	query, args, err := sqlx.In(`SELECT id, nombre || ' ' || apellidos AS nombre FROM students WHERE id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("student names query: %w", err)
	}
	query = r.db.Rebind(query)
	rows := []struct {
		ID     string `db:"id"`
		Nombre string `db:"nombre"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("student names: %w", err)
	}
	names := make(map[string]string, len(rows))
	for _, row := range rows {
		names[row.ID] = row.Nombre
	}
	return names, nil
}
