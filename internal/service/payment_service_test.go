package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpsrivera1/backgeneralsistemaceti/internal/models"
	appErrors "github.com/jpsrivera1/backgeneralsistemaceti/pkg/errors"
)

type fakeCategoryRepo struct {
	existing     *models.CategoryPayment
	addedAdvance float64
	updated      bool
	created      *models.CategoryPayment
}

func (f *fakeCategoryRepo) FindByStudent(context.Context, string, string) (*models.CategoryPayment, error) {
	if f.existing == nil {
		return nil, sql.ErrNoRows
	}
	return f.existing, nil
}

func (f *fakeCategoryRepo) Create(_ context.Context, _ string, p *models.CategoryPayment) (*models.CategoryPayment, error) {
	created := *p
	created.ID = "pago-1"
	created.MontoPendiente = p.MontoTotal - p.MontoAdelanto
	f.created = &created
	return &created, nil
}

func (f *fakeCategoryRepo) UpdateTotals(_ context.Context, _, studentID string, montoTotal, montoAdelanto float64, methodID *int64) (*models.CategoryPayment, error) {
	f.updated = true
	return &models.CategoryPayment{
		StudentID:      studentID,
		MontoTotal:     montoTotal,
		MontoAdelanto:  montoAdelanto,
		MontoPendiente: montoTotal - montoAdelanto,
	}, nil
}

func (f *fakeCategoryRepo) AddAdvance(_ context.Context, _, studentID string, amount float64, methodID *int64) (*models.CategoryPayment, error) {
	f.addedAdvance = amount
	updated := *f.existing
	updated.MontoAdelanto += amount
	updated.MontoPendiente -= amount
	return &updated, nil
}

func (f *fakeCategoryRepo) ListMethods(context.Context) ([]models.PaymentMethod, error) {
	return nil, nil
}

func (f *fakeCategoryRepo) MethodName(context.Context, int64) (string, error) {
	return "Efectivo", nil
}

type fakeSummaryRepo struct{}

func (f *fakeSummaryRepo) ViewSummaries(context.Context) ([]models.StudentPaymentSummary, error) {
	return nil, nil
}

func TestSavePaymentUnknownCategory(t *testing.T) {
	svc := NewPaymentService(&fakeCategoryRepo{}, &fakeStudentLookup{student: &models.Student{ID: "est-1"}}, &fakeSummaryRepo{}, nil, nil)

	_, err := svc.SavePayment(context.Background(), "est-1", "mensualidad", SavePaymentRequest{MontoTotal: 100})

	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "tipo de pago no válido", appErr.Message)
}

func TestSavePaymentCreatesFirstPayment(t *testing.T) {
	repo := &fakeCategoryRepo{}
	svc := NewPaymentService(repo, &fakeStudentLookup{student: &models.Student{ID: "est-1", Nombre: "Ana", Apellidos: "Pérez"}}, &fakeSummaryRepo{}, nil, nil)

	receipt, err := svc.SavePayment(context.Background(), "est-1", models.CategoriaInscripcion, SavePaymentRequest{
		MontoTotal: 300,
		MontoAbono: 100,
	})

	require.NoError(t, err)
	require.NotNil(t, repo.created)
	assert.Equal(t, 100.0, receipt.MontoAbonado)
	assert.Equal(t, 0.0, receipt.MontoPendienteAnterior)
	assert.False(t, receipt.EstaCancelado)
	assert.Regexp(t, `^INS-\d{4}-\d{6}$`, receipt.NumeroRecibo)
}

func TestSavePaymentInstallmentGrowsAdvance(t *testing.T) {
	repo := &fakeCategoryRepo{existing: &models.CategoryPayment{
		ID: "pago-1", StudentID: "est-1",
		MontoTotal: 300, MontoAdelanto: 100, MontoPendiente: 200,
	}}
	svc := NewPaymentService(repo, &fakeStudentLookup{student: &models.Student{ID: "est-1"}}, &fakeSummaryRepo{}, nil, nil)

	receipt, err := svc.SavePayment(context.Background(), "est-1", models.CategoriaUniforme, SavePaymentRequest{
		MontoAbono:      200,
		EsPagoPendiente: true,
	})

	require.NoError(t, err)
	assert.Equal(t, 200.0, repo.addedAdvance)
	assert.False(t, repo.updated)
	assert.Equal(t, 200.0, receipt.MontoPendienteAnterior)
	assert.True(t, receipt.EsAbono)
	assert.True(t, receipt.EstaCancelado)
}

func TestSavePaymentReplacesTotalsWithoutInstallmentFlag(t *testing.T) {
	repo := &fakeCategoryRepo{existing: &models.CategoryPayment{
		ID: "pago-1", StudentID: "est-1",
		MontoTotal: 300, MontoAdelanto: 100, MontoPendiente: 200,
	}}
	svc := NewPaymentService(repo, &fakeStudentLookup{student: &models.Student{ID: "est-1"}}, &fakeSummaryRepo{}, nil, nil)

	_, err := svc.SavePayment(context.Background(), "est-1", models.CategoriaUniforme, SavePaymentRequest{
		MontoTotal: 400,
		MontoAbono: 150,
	})

	require.NoError(t, err)
	assert.True(t, repo.updated)
	assert.Equal(t, 0.0, repo.addedAdvance)
}

func TestSearchStudentsRequiresTwoChars(t *testing.T) {
	svc := NewPaymentService(&fakeCategoryRepo{}, &fakeStudentLookup{}, &fakeSummaryRepo{}, nil, nil)

	_, err := svc.SearchStudents(context.Background(), "a")

	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}
