package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/jpsrivera1/backgeneralsistemaceti/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func tuitionRows(payments ...models.TuitionPayment) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "student_id", "mes", "anio", "monto_colegiatura", "mora", "total_pagado", "fecha_pago", "payment_method_id", "created_at"})
	for _, p := range payments {
		rows.AddRow(p.ID, p.StudentID, p.Mes, p.Anio, p.MontoColegiatura, p.Mora, p.TotalPagado, p.FechaPago, p.PaymentMethodID, p.CreatedAt)
	}
	return rows
}

func TestTuitionRepositoryListByStudentYear(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewTuitionRepository(db)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM pago_colegiaturas WHERE student_id = $1 AND anio = $2 ORDER BY fecha_pago")).
		WithArgs("est-1", 2024).
		WillReturnRows(tuitionRows(
			models.TuitionPayment{ID: "p1", StudentID: "est-1", Mes: "FEBRERO", Anio: 2024, MontoColegiatura: 350, TotalPagado: 350, FechaPago: now, CreatedAt: now},
			models.TuitionPayment{ID: "p2", StudentID: "est-1", Mes: "MARZO", Anio: 2024, MontoColegiatura: 350, Mora: 30, TotalPagado: 380, FechaPago: now, CreatedAt: now},
		))

	payments, err := repo.ListByStudentYear(context.Background(), "est-1", 2024)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	require.Equal(t, 380.0, payments[1].TotalPagado)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTuitionRepositoryFindByMonthMiss(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewTuitionRepository(db)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE student_id = $1 AND mes = $2 AND anio = $3")).
		WithArgs("est-1", "MARZO", 2024).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByMonth(context.Background(), "est-1", "MARZO", 2024)
	require.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTuitionRepositoryCreateReturnsDerivedTotal(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewTuitionRepository(db)
	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO pago_colegiaturas")).
		WillReturnRows(tuitionRows(models.TuitionPayment{
			ID: "p1", StudentID: "est-1", Mes: "MARZO", Anio: 2024,
			MontoColegiatura: 350, Mora: 30, TotalPagado: 380, FechaPago: now, CreatedAt: now,
		}))

	created, err := repo.Create(context.Background(), &models.TuitionPayment{
		StudentID:        "est-1",
		Mes:              "MARZO",
		Anio:             2024,
		MontoColegiatura: 350,
		Mora:             30,
	})
	require.NoError(t, err)
	require.Equal(t, 380.0, created.TotalPagado)
	require.NoError(t, mock.ExpectationsWereMet())
}
