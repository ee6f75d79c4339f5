package models

import "time"

// Student classification values.
const (
	TipoEstudianteRegular = "REGULAR"
	TipoEstudianteCurso   = "CURSO"

	EstadoActivo   = "ACTIVO"
	EstadoInactivo = "INACTIVO"
)

// Student is a persisted student record. Estado defaults to ACTIVO when the
// column is empty.
type Student struct {
	ID             string    `db:"id" json:"id"`
	Nombre         string    `db:"nombre" json:"nombre"`
	Apellidos      string    `db:"apellidos" json:"apellidos"`
	Grado          string    `db:"grado" json:"grado"`
	Jornada        string    `db:"jornada" json:"jornada"`
	Modalidad      string    `db:"modalidad" json:"modalidad"`
	TipoEstudiante string    `db:"tipo_estudiante" json:"tipo_estudiante"`
	CursoExtraID   *int64    `db:"curso_extra_id" json:"curso_extra_id"`
	Estado         string    `db:"estado" json:"estado"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// FullName joins first and last names the way receipts print them.
func (s Student) FullName() string {
	return s.Nombre + " " + s.Apellidos
}

// StudentSearchResult is a search hit with the optional enrolled extra course.
type StudentSearchResult struct {
	ID             string  `db:"id" json:"id"`
	Nombre         string  `db:"nombre" json:"nombre"`
	Apellidos      string  `db:"apellidos" json:"apellidos"`
	Grado          string  `db:"grado" json:"grado"`
	Jornada        string  `db:"jornada" json:"jornada"`
	Modalidad      string  `db:"modalidad" json:"modalidad"`
	TipoEstudiante string  `db:"tipo_estudiante" json:"tipo_estudiante"`
	CursoExtraID   *int64  `db:"curso_extra_id" json:"curso_extra_id"`
	CursoNombre    *string `db:"curso_nombre" json:"curso_nombre,omitempty"`
}
