package models

import "time"

// PaymentMethod is a lookup row (id → display name).
type PaymentMethod struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// Category keys for the per-category payment tables.
const (
	CategoriaInscripcion   = "inscripcion"
	CategoriaUniforme      = "uniforme"
	CategoriaLibrosLectura = "libros_lectura"
	CategoriaCopiasAnuales = "copias_anuales"
	CategoriaLibroIngles   = "libro_ingles"
	CategoriaExcursion     = "excursion"
	CategoriaEspecialidad  = "especialidad"
)

// CategoryTables maps a category key to its payment table. These seven tables
// share one shape: one row per student with total, advance and a pending
// amount derived in the database.
var CategoryTables = map[string]string{
	CategoriaInscripcion:   "pago_inscripcion",
	CategoriaUniforme:      "pago_uniforme",
	CategoriaLibrosLectura: "pago_libros_lectura",
	CategoriaCopiasAnuales: "pago_copias_anuales",
	CategoriaLibroIngles:   "pago_libro_ingles",
	CategoriaExcursion:     "pago_excursion",
	CategoriaEspecialidad:  "pago_especialidad",
}

// CategoryOrder fixes iteration order for responses built per category.
var CategoryOrder = []string{
	CategoriaInscripcion,
	CategoriaUniforme,
	CategoriaLibrosLectura,
	CategoriaCopiasAnuales,
	CategoriaLibroIngles,
	CategoriaExcursion,
	CategoriaEspecialidad,
}

// CategoryNames holds the human-readable labels used on receipts.
var CategoryNames = map[string]string{
	CategoriaInscripcion:   "Inscripción",
	CategoriaUniforme:      "Uniforme",
	CategoriaLibrosLectura: "Libros de Lectura",
	CategoriaCopiasAnuales: "Copias Anuales",
	CategoriaLibroIngles:   "Libro de Inglés",
	CategoriaExcursion:     "Excursión",
	CategoriaEspecialidad:  "Especialidad",
}

// CategoryPayment is one row of any of the seven shared-shape tables.
type CategoryPayment struct {
	ID                 string    `db:"id" json:"id"`
	StudentID          string    `db:"student_id" json:"student_id"`
	MontoTotal         float64   `db:"monto_total" json:"monto_total"`
	MontoAdelanto      float64   `db:"monto_adelanto" json:"monto_adelanto"`
	MontoPendiente     float64   `db:"monto_pendiente" json:"monto_pendiente"`
	Mora               float64   `db:"mora" json:"mora"`
	PaymentMethodID    *int64    `db:"payment_method_id" json:"payment_method_id"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	FechaActualizacion time.Time `db:"fecha_actualizacion" json:"fecha_actualizacion"`
}
