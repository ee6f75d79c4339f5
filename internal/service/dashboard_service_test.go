package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpsrivera1/backgeneralsistemaceti/internal/models"
)

type fakeDashboardRepo struct {
	records  map[string][]models.PaymentRecord
	pending  map[string][]models.PendingRecord
	names    map[string]string
	failures map[string]error
}

func (f *fakeDashboardRepo) Records(_ context.Context, source models.CategorySource, _ models.DateRange) ([]models.PaymentRecord, error) {
	if err := f.failures[source.Table]; err != nil {
		return nil, err
	}
	return f.records[source.Table], nil
}

func (f *fakeDashboardRepo) MoraTotal(_ context.Context, source models.CategorySource, _ models.DateRange) (float64, error) {
	if !source.HasMora {
		return 0, nil
	}
	var total float64
	for range f.records[source.Table] {
		total += 5
	}
	return total, nil
}

func (f *fakeDashboardRepo) PendingRecords(_ context.Context, source models.CategorySource) ([]models.PendingRecord, error) {
	if source.PendingField == "" {
		return nil, nil
	}
	return f.pending[source.Table], nil
}

func (f *fakeDashboardRepo) DetailRecords(context.Context, models.CategorySource, models.DateRange) ([]models.ReportDetailRecord, error) {
	return nil, nil
}

func (f *fakeDashboardRepo) ViewSummaries(context.Context) ([]models.StudentPaymentSummary, error) {
	return nil, nil
}

func (f *fakeDashboardRepo) StudentClassifications(context.Context) ([]models.StudentClassification, error) {
	return nil, nil
}

func (f *fakeDashboardRepo) CourseEnrollments(context.Context) ([]models.CourseEnrollment, error) {
	return nil, nil
}

func (f *fakeDashboardRepo) StudentNames(_ context.Context, ids []string) (map[string]string, error) {
	names := map[string]string{}
	for _, id := range ids {
		if name, ok := f.names[id]; ok {
			names[id] = name
		}
	}
	return names, nil
}

func (f *fakeDashboardRepo) TuitionMonthTotal(context.Context, string, int) (float64, error) {
	return 0, nil
}

type fakeMethodList struct{}

func (f *fakeMethodList) ListMethods(context.Context) ([]models.PaymentMethod, error) {
	return []models.PaymentMethod{{ID: 1, Name: "Efectivo"}, {ID: 2, Name: "Transferencia"}}, nil
}

func dayRecord(day string, amount float64) models.PaymentRecord {
	created, _ := time.Parse("2006-01-02", day)
	return models.PaymentRecord{CreatedAt: created, Amount: amount}
}

func TestIncomeByMonthGroupsAndSortsDescending(t *testing.T) {
	repo := &fakeDashboardRepo{
		records: map[string][]models.PaymentRecord{
			"pago_colegiaturas": {dayRecord("2024-01-15", 100), dayRecord("2024-01-20", 50)},
			"pago_inscripcion":  {dayRecord("2024-02-01", 25)},
		},
	}
	svc := NewDashboardService(repo, &fakeMethodList{}, nil, nil)

	rows, err := svc.IncomeByMonth(context.Background(), models.DateRange{})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, models.IncomeByMonth{Mes: "2024-02", Total: 25}, rows[0])
	assert.Equal(t, models.IncomeByMonth{Mes: "2024-01", Total: 150}, rows[1])
}

func TestIncomeByMonthSkipsFailingSource(t *testing.T) {
	repo := &fakeDashboardRepo{
		records: map[string][]models.PaymentRecord{
			"pago_colegiaturas": {dayRecord("2024-03-01", 200)},
		},
		failures: map[string]error{
			"pago_excursion": errors.New(`relation "pago_excursion" does not exist`),
		},
	}
	svc := NewDashboardService(repo, &fakeMethodList{}, nil, nil)

	rows, err := svc.IncomeByMonth(context.Background(), models.DateRange{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 200.0, rows[0].Total)
}

func TestIncomeByDayCapsAtThirty(t *testing.T) {
	records := make([]models.PaymentRecord, 0, 40)
	for i := 1; i <= 40; i++ {
		records = append(records, models.PaymentRecord{
			CreatedAt: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
			Amount:    10,
		})
	}
	repo := &fakeDashboardRepo{records: map[string][]models.PaymentRecord{"pago_colegiaturas": records}}
	svc := NewDashboardService(repo, &fakeMethodList{}, nil, nil)

	rows, err := svc.IncomeByDay(context.Background(), models.DateRange{})
	require.NoError(t, err)
	assert.Len(t, rows, 30)
	// Newest day first.
	assert.Equal(t, "2024-04-10", rows[0].Dia)
}

func TestPendingPaymentsLabelsAndSorts(t *testing.T) {
	repo := &fakeDashboardRepo{
		pending: map[string][]models.PendingRecord{
			"pago_inscripcion":    {{StudentID: "a", MontoPendiente: 40}},
			"graduation_payments": {{StudentID: "b", MontoPendiente: 90}},
		},
		names: map[string]string{"a": "Ana Pérez", "b": "Luis Gómez"},
	}
	svc := NewDashboardService(repo, &fakeMethodList{}, nil, nil)

	rows, err := svc.PendingPayments(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, models.PendingPayment{Estudiante: "Luis Gómez", TipoPago: "GRADUACIÓN", MontoPendiente: 90}, rows[0])
	assert.Equal(t, models.PendingPayment{Estudiante: "Ana Pérez", TipoPago: "INSCRIPCIÓN", MontoPendiente: 40}, rows[1])
}

func TestIncomeByMethodSkipsEmptyMethods(t *testing.T) {
	methodID := int64(1)
	repo := &fakeDashboardRepo{
		records: map[string][]models.PaymentRecord{
			"pago_colegiaturas": {{CreatedAt: time.Now(), Amount: 120, PaymentMethodID: &methodID}},
		},
	}
	svc := NewDashboardService(repo, &fakeMethodList{}, nil, nil)

	rows, err := svc.IncomeByMethod(context.Background(), models.DateRange{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Efectivo", rows[0].MetodoPago)
	assert.Equal(t, 120.0, rows[0].Total)
}
