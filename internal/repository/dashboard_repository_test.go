package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/jpsrivera1/backgeneralsistemaceti/internal/models"
)

func TestIsMissingTable(t *testing.T) {
	require.True(t, IsMissingTable(&pq.Error{Code: "42P01"}))
	require.False(t, IsMissingTable(&pq.Error{Code: "23505"}))
	require.False(t, IsMissingTable(errors.New("boom")))
}

func TestDashboardRecordsMissingTableIsEmpty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewDashboardRepository(db)
	source := models.CategorySource{Table: "pago_excursion", AmountField: "monto_adelanto"}
	mock.ExpectQuery("FROM pago_excursion").
		WillReturnError(&pq.Error{Code: "42P01"})

	records, err := repo.Records(context.Background(), source, models.DateRange{})
	require.NoError(t, err)
	require.Nil(t, records)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRecordsAppliesRange(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewDashboardRepository(db)
	source := models.CategorySource{Table: "pago_colegiaturas", AmountField: "total_pagado"}
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.January, 31, 23, 59, 59, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE created_at >= $1 AND created_at <= $2")).
		WithArgs(start, end).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "amount", "payment_method_id"}).
			AddRow(start.AddDate(0, 0, 10), 350.0, nil))

	records, err := repo.Records(context.Background(), source, models.DateRange{Start: &start, End: &end})
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, 350.0, records[0].Amount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardMoraTotalWithoutMoraColumn(t *testing.T) {
	db, _, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewDashboardRepository(db)
	total, err := repo.MoraTotal(context.Background(), models.CategorySource{Table: "graduation_payments"}, models.DateRange{})
	require.NoError(t, err)
	require.Equal(t, 0.0, total)
}

func TestDashboardPendingRecordsWithoutPendingColumn(t *testing.T) {
	db, _, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewDashboardRepository(db)
	records, err := repo.PendingRecords(context.Background(), models.CategorySource{Table: "course_payments"})
	require.NoError(t, err)
	require.Nil(t, records)
}
