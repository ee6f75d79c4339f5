package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpsrivera1/backgeneralsistemaceti/internal/models"
	appErrors "github.com/jpsrivera1/backgeneralsistemaceti/pkg/errors"
)

type fakeTuitionRepo struct {
	existing *models.TuitionPayment
	created  *models.TuitionPayment
}

func (f *fakeTuitionRepo) ListByStudentYear(context.Context, string, int) ([]models.TuitionPayment, error) {
	return nil, nil
}

func (f *fakeTuitionRepo) FindByMonth(context.Context, string, string, int) (*models.TuitionPayment, error) {
	if f.existing == nil {
		return nil, sql.ErrNoRows
	}
	return f.existing, nil
}

func (f *fakeTuitionRepo) FindByID(context.Context, string) (*models.TuitionPayment, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeTuitionRepo) Create(_ context.Context, payment *models.TuitionPayment) (*models.TuitionPayment, error) {
	created := *payment
	created.ID = "pago-1"
	created.TotalPagado = payment.MontoColegiatura + payment.Mora
	f.created = &created
	return &created, nil
}

type fakeStudentLookup struct {
	student *models.Student
}

func (f *fakeStudentLookup) FindByID(context.Context, string) (*models.Student, error) {
	if f.student == nil {
		return nil, sql.ErrNoRows
	}
	return f.student, nil
}

func (f *fakeStudentLookup) Search(context.Context, string, string, int) ([]models.StudentSearchResult, error) {
	return nil, nil
}

type fakeMethodRepo struct{}

func (f *fakeMethodRepo) FindByStudent(context.Context, string, string) (*models.CategoryPayment, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeMethodRepo) Create(_ context.Context, _ string, p *models.CategoryPayment) (*models.CategoryPayment, error) {
	return p, nil
}

func (f *fakeMethodRepo) UpdateTotals(context.Context, string, string, float64, float64, *int64) (*models.CategoryPayment, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeMethodRepo) AddAdvance(context.Context, string, string, float64, *int64) (*models.CategoryPayment, error) {
	return nil, sql.ErrNoRows
}

func (f *fakeMethodRepo) ListMethods(context.Context) ([]models.PaymentMethod, error) {
	return []models.PaymentMethod{{ID: 1, Name: "Efectivo"}}, nil
}

func (f *fakeMethodRepo) MethodName(context.Context, int64) (string, error) {
	return "Efectivo", nil
}

func newTuitionServiceForTest(repo *fakeTuitionRepo, students *fakeStudentLookup) *TuitionService {
	svc := NewTuitionService(repo, students, &fakeMethodRepo{}, nil, nil)
	svc.now = func() time.Time {
		return time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestTuitionRegisterDuplicateMonth(t *testing.T) {
	repo := &fakeTuitionRepo{existing: &models.TuitionPayment{ID: "old", Mes: "MARZO"}}
	svc := newTuitionServiceForTest(repo, &fakeStudentLookup{student: &models.Student{ID: "est-1"}})

	_, err := svc.Register(context.Background(), "est-1", RegisterTuitionRequest{
		Mes:              "Marzo",
		MontoColegiatura: 350,
	})

	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "Este mes ya fue pagado", appErr.Message)
}

func TestTuitionRegisterAppliesLateFee(t *testing.T) {
	repo := &fakeTuitionRepo{}
	svc := newTuitionServiceForTest(repo, &fakeStudentLookup{student: &models.Student{ID: "est-1", Nombre: "Ana", Apellidos: "Pérez"}})

	receipt, err := svc.Register(context.Background(), "est-1", RegisterTuitionRequest{
		Mes:              "marzo",
		MontoColegiatura: 350,
	})

	require.NoError(t, err)
	// March 10th is past the March 5th grace day.
	assert.Equal(t, 30.0, receipt.Mora)
	assert.Equal(t, 380.0, receipt.Total)
	assert.Equal(t, "MARZO", repo.created.Mes)
	assert.Regexp(t, `^COL-2024-\d{6}$`, receipt.NumeroBoleto)
}

func TestTuitionRegisterStudentNotFound(t *testing.T) {
	svc := newTuitionServiceForTest(&fakeTuitionRepo{}, &fakeStudentLookup{})

	_, err := svc.Register(context.Background(), "missing", RegisterTuitionRequest{
		Mes:              "abril",
		MontoColegiatura: 350,
	})

	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}
