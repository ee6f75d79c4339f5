package models

import "time"

// TuitionPayment is one monthly tuition row. Uniqueness per
// (student, mes, anio) is enforced by a database constraint; the service also
// checks first to produce the friendly "already paid" error.
type TuitionPayment struct {
	ID               string    `db:"id" json:"id"`
	StudentID        string    `db:"student_id" json:"student_id"`
	Mes              string    `db:"mes" json:"mes"`
	Anio             int       `db:"anio" json:"anio"`
	MontoColegiatura float64   `db:"monto_colegiatura" json:"monto_colegiatura"`
	Mora             float64   `db:"mora" json:"mora"`
	TotalPagado      float64   `db:"total_pagado" json:"total_pagado"`
	FechaPago        time.Time `db:"fecha_pago" json:"fecha_pago"`
	PaymentMethodID  *int64    `db:"payment_method_id" json:"payment_method_id"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// GraduationPayment is cumulative: one row per student, repeat payments add
// to paid_amount.
type GraduationPayment struct {
	ID              string    `db:"id" json:"id"`
	StudentID       string    `db:"student_id" json:"student_id"`
	TotalAmount     float64   `db:"total_amount" json:"total_amount"`
	PaidAmount      float64   `db:"paid_amount" json:"paid_amount"`
	PendingAmount   float64   `db:"pending_amount" json:"pending_amount"`
	PaymentMethodID *int64    `db:"payment_method_id" json:"payment_method_id"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
