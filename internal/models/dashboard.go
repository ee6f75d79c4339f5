package models

import "time"

// CategorySource describes one payment table feeding the dashboard
// aggregates: which column carries the collected amount, the label used when
// grouping by type, and which optional columns the table has.
type CategorySource struct {
	Table        string
	AmountField  string
	Label        string
	HasMora      bool
	PendingField string
	PendingLabel string
	DetailKey    string
}

// AggregationSources is the declarative list of every table the dashboard
// reduces over. A missing table is skipped, never fatal.
var AggregationSources = []CategorySource{
	{Table: "pago_colegiaturas", AmountField: "total_pagado", Label: "COLEGIATURAS", HasMora: true, DetailKey: "colegiaturas"},
	{Table: "pago_inscripcion", AmountField: "monto_adelanto", Label: "INSCRIPCIÓN", HasMora: true, PendingField: "monto_pendiente", PendingLabel: "INSCRIPCIÓN", DetailKey: "inscripciones"},
	{Table: "pago_uniforme", AmountField: "monto_adelanto", Label: "UNIFORMES", HasMora: true, PendingField: "monto_pendiente", PendingLabel: "UNIFORME", DetailKey: "uniformes"},
	{Table: "pago_libros_lectura", AmountField: "monto_adelanto", Label: "LIBROS LECTURA", HasMora: true, PendingField: "monto_pendiente", PendingLabel: "LIBROS", DetailKey: "libros_lectura"},
	{Table: "pago_copias_anuales", AmountField: "monto_adelanto", Label: "COPIAS ANUALES", HasMora: true, PendingField: "monto_pendiente", PendingLabel: "COPIAS", DetailKey: "copias_anuales"},
	{Table: "pago_libro_ingles", AmountField: "monto_adelanto", Label: "LIBRO INGLÉS", HasMora: true, PendingField: "monto_pendiente", PendingLabel: "INGLÉS", DetailKey: "libro_ingles"},
	{Table: "pago_excursion", AmountField: "monto_adelanto", Label: "EXCURSIÓN", HasMora: true, PendingField: "monto_pendiente", PendingLabel: "EXCURSIÓN", DetailKey: "excursion"},
	{Table: "pago_especialidad", AmountField: "monto_adelanto", Label: "ESPECIALIDAD", HasMora: true, PendingField: "monto_pendiente", PendingLabel: "ESPECIALIDAD", DetailKey: "especialidad"},
	{Table: "graduation_payments", AmountField: "paid_amount", Label: "GRADUACIÓN", PendingField: "pending_amount", PendingLabel: "GRADUACIÓN", DetailKey: "graduaciones"},
	{Table: "course_payments", AmountField: "amount", Label: "CURSOS EXTRA", DetailKey: "cursos_extra"},
}

// PaymentRecord is the uniform projection every aggregate reduces over.
type PaymentRecord struct {
	CreatedAt       time.Time `db:"created_at"`
	Amount          float64   `db:"amount"`
	PaymentMethodID *int64    `db:"payment_method_id"`
}

// PendingRecord is the projection for pending-balance scans.
type PendingRecord struct {
	StudentID      string    `db:"student_id"`
	MontoPendiente float64   `db:"monto_pendiente"`
	CreatedAt      time.Time `db:"created_at"`
}

// ReportDetailRecord is the raw per-payment projection behind the detailed
// report. Mes and Curso are only populated for the sources that carry them.
type ReportDetailRecord struct {
	Estudiante string    `db:"estudiante"`
	Mes        *string   `db:"mes"`
	Curso      *string   `db:"curso"`
	CreatedAt  time.Time `db:"created_at"`
	MetodoPago *string   `db:"metodo_pago"`
	Monto      float64   `db:"monto"`
}

// StudentClassification is the projection the student statistics reduce over.
type StudentClassification struct {
	Estado         string `db:"estado"`
	TipoEstudiante string `db:"tipo_estudiante"`
	Jornada        string `db:"jornada"`
	Modalidad      string `db:"modalidad"`
}

// DateRange bounds aggregation by creation timestamp, inclusive. Nil ends
// leave the side unbounded.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// IsZero reports whether no bound is set.
func (r DateRange) IsZero() bool { return r.Start == nil && r.End == nil }

// Aggregate row shapes. JSON keys match the admin frontend contract.

type IncomeByDay struct {
	Dia   string  `json:"dia"`
	Total float64 `json:"total"`
}

type IncomeByMonth struct {
	Mes   string  `json:"mes"`
	Total float64 `json:"total"`
}

type IncomeByType struct {
	TipoPago string  `json:"tipo_pago"`
	Total    float64 `json:"total"`
}

type IncomeByMethod struct {
	MetodoPago string  `json:"metodo_pago"`
	Total      float64 `json:"total"`
}

type StudentsByType struct {
	TipoEstudiante string `json:"tipo_estudiante"`
	Total          int    `json:"total"`
}

type PendingPayment struct {
	Estudiante     string  `json:"estudiante"`
	TipoPago       string  `json:"tipo_pago"`
	MontoPendiente float64 `json:"monto_pendiente"`
}

// StudentPaymentSummary is one row of the vista_pagos_estudiantes view.
type StudentPaymentSummary struct {
	StudentID      string  `db:"student_id" json:"student_id"`
	Estudiante     string  `db:"estudiante" json:"estudiante"`
	TotalPagado    float64 `db:"total_pagado" json:"total_pagado"`
	TotalPendiente float64 `db:"total_pendiente" json:"total_pendiente"`
}

// StudentStats breaks the student body down by status, type, shift and track.
type StudentStats struct {
	Total        int            `json:"total"`
	Activos      int            `json:"activos"`
	Inactivos    int            `json:"inactivos"`
	Regular      int            `json:"regular"`
	Curso        int            `json:"curso"`
	PorJornada   map[string]int `json:"porJornada"`
	PorModalidad map[string]int `json:"porModalidad"`
}

// CourseEnrollment is an extra course with its enrolled-student count.
type CourseEnrollment struct {
	ExtraCourse
	Inscritos int `db:"inscritos" json:"inscritos"`
}

// CourseStats summarises extra-course enrollment.
type CourseStats struct {
	TotalCursos    int                `json:"totalCursos"`
	TotalInscritos int                `json:"totalInscritos"`
	Cursos         []CourseEnrollment `json:"cursos"`
}

// DashboardData is the full dashboard payload composed from the individual
// aggregates.
type DashboardData struct {
	IncomeByDay           []IncomeByDay    `json:"incomeByDay"`
	IncomeByMonth         []IncomeByMonth  `json:"incomeByMonth"`
	IncomeByType          []IncomeByType   `json:"incomeByType"`
	StudentsByType        []StudentsByType `json:"studentsByType"`
	PendingPayments       []PendingPayment `json:"pendingPayments"`
	TotalMora             float64          `json:"totalMora"`
	IncomeByPaymentMethod []IncomeByMethod `json:"incomeByPaymentMethod"`
	MonthlyIncome         float64          `json:"monthlyIncome"`
	DailyIncome           float64          `json:"dailyIncome"`
}

// ReportSummaryRow is one line of the detailed report summary.
type ReportSummaryRow struct {
	TipoPago      string  `json:"tipo_pago"`
	CantidadPagos int     `json:"cantidad_pagos"`
	TotalIngresos float64 `json:"total_ingresos"`
}

// ReportDetailRow is one payment in a detailed report section. Mes and Curso
// are set only for the categories that carry them.
type ReportDetailRow struct {
	Estudiante string  `json:"estudiante"`
	Mes        string  `json:"mes,omitempty"`
	Curso      string  `json:"curso,omitempty"`
	Fecha      string  `json:"fecha"`
	MetodoPago string  `json:"metodo_pago"`
	Monto      float64 `json:"monto"`
}

// DetailedReport is the payload for the report endpoint and its PDF export.
type DetailedReport struct {
	Summary      []ReportSummaryRow           `json:"summary"`
	TotalGeneral float64                      `json:"totalGeneral"`
	Details      map[string][]ReportDetailRow `json:"details"`
}
