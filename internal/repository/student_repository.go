package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jpsrivera1/backgeneralsistemaceti/internal/models"
)

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

const studentColumns = `id, nombre, apellidos, grado, jornada, modalidad, tipo_estudiante, curso_extra_id, estado, created_at, updated_at`

// List returns every student.
func (r *StudentRepository) List(ctx context.Context) ([]models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students ORDER BY apellidos, nombre`, studentColumns)
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// FindByID fetches a student by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.Student, error) {
	query := fmt.Sprintf(`SELECT %s FROM students WHERE id = $1`, studentColumns)
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, id); err != nil {
		return nil, err
	}
	return &student, nil
}

// Search matches nombre or apellidos by substring, case-insensitive. When
// tipoEstudiante is non-empty only that classification is returned.
func (r *StudentRepository) Search(ctx context.Context, term, tipoEstudiante string, limit int) ([]models.StudentSearchResult, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `SELECT s.id, s.nombre, s.apellidos, s.grado, s.jornada, s.modalidad, s.tipo_estudiante, s.curso_extra_id,
        c.nombre AS curso_nombre
        FROM students s
        LEFT JOIN extra_courses c ON c.id = s.curso_extra_id
        WHERE (s.nombre ILIKE $1 OR s.apellidos ILIKE $1)`
	args := []interface{}{"%" + strings.TrimSpace(term) + "%"}
	if tipoEstudiante != "" {
		query += " AND s.tipo_estudiante = $2"
		args = append(args, tipoEstudiante)
	}
	query += fmt.Sprintf(" ORDER BY s.apellidos LIMIT %d", limit)

	var results []models.StudentSearchResult
	if err := r.db.SelectContext(ctx, &results, query, args...); err != nil {
		return nil, fmt.Errorf("search students: %w", err)
	}
	return results, nil
}

// Create inserts a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	if student.Estado == "" {
		student.Estado = models.EstadoActivo
	}
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
	const query = `INSERT INTO students (id, nombre, apellidos, grado, jornada, modalidad, tipo_estudiante, curso_extra_id, estado, created_at, updated_at)
        VALUES (:id, :nombre, :apellidos, :grado, :jornada, :modalidad, :tipo_estudiante, :curso_extra_id, :estado, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update modifies an existing student. Returns the number of rows touched so
// callers can map zero to not-found.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) (int64, error) {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE students SET nombre = :nombre, apellidos = :apellidos, grado = :grado, jornada = :jornada,
        modalidad = :modalidad, tipo_estudiante = :tipo_estudiante, curso_extra_id = :curso_extra_id, estado = :estado,
        updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, student)
	if err != nil {
		return 0, fmt.Errorf("update student: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update student rows: %w", err)
	}
	return affected, nil
}

// Delete removes a student row.
func (r *StudentRepository) Delete(ctx context.Context, id string) (int64, error) {
	const query = `DELETE FROM students WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("delete student: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete student rows: %w", err)
	}
	return affected, nil
}
