package models

import "time"

// ExtraCourse is a course offered outside the regular program.
type ExtraCourse struct {
	ID          int64  `db:"id" json:"id"`
	Nombre      string `db:"nombre" json:"nombre"`
	Descripcion string `db:"descripcion" json:"descripcion"`
}

// Month is the lookup row giving display names for month ids 1..12.
type Month struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// CoursePayment is one monthly extra-course payment. One row per
// (student, month) — duplicates are rejected.
type CoursePayment struct {
	ID              string    `db:"id" json:"id"`
	StudentID       string    `db:"student_id" json:"student_id"`
	CourseID        int64     `db:"course_id" json:"course_id"`
	Month           string    `db:"month" json:"month"`
	MonthID         int64     `db:"month_id" json:"month_id"`
	Amount          float64   `db:"amount" json:"amount"`
	Status          string    `db:"status" json:"status"`
	PaymentMethodID *int64    `db:"payment_method_id" json:"payment_method_id"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// CourseStudent is a student row joined with the enrolled extra course.
type CourseStudent struct {
	Student
	CursoNombre      *string `db:"curso_nombre" json:"curso_nombre,omitempty"`
	CursoDescripcion *string `db:"curso_descripcion" json:"curso_descripcion,omitempty"`
}

// CoursePaymentSummary aggregates a student's course payments against the
// ten-month school year.
type CoursePaymentSummary struct {
	MesesPagados    int     `json:"meses_pagados"`
	MesesPendientes int     `json:"meses_pendientes"`
	TotalPagado     float64 `json:"total_pagado"`
}
