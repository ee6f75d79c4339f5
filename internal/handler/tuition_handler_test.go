package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpsrivera1/backgeneralsistemaceti/internal/models"
	"github.com/jpsrivera1/backgeneralsistemaceti/internal/service"
	appErrors "github.com/jpsrivera1/backgeneralsistemaceti/pkg/errors"
)

type fakeTuitionSrv struct {
	receipt *service.TuitionReceipt
	status  *service.MonthStatus
	err     error
}

func (f *fakeTuitionSrv) History(context.Context, string) ([]models.TuitionPayment, error) {
	return nil, f.err
}

func (f *fakeTuitionSrv) MonthPaid(context.Context, string, string) (*service.MonthStatus, error) {
	return f.status, f.err
}

func (f *fakeTuitionSrv) Register(context.Context, string, service.RegisterTuitionRequest) (*service.TuitionReceipt, error) {
	return f.receipt, f.err
}

func (f *fakeTuitionSrv) Receipt(context.Context, string) (*service.ReceiptInfo, error) {
	return nil, f.err
}

func TestTuitionHandlerRegisterDuplicate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewTuitionHandler(&fakeTuitionSrv{err: appErrors.Clone(appErrors.ErrValidation, "Este mes ya fue pagado")})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	payload := `{"mes":"MARZO","monto_colegiatura":350}`
	c.Request = httptest.NewRequest(http.MethodPost, "/api/pagos/colegiaturas/est-1", strings.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "studentId", Value: "est-1"}}

	h.Register(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Este mes ya fue pagado", body["error"])
}

func TestTuitionHandlerRegisterCreated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewTuitionHandler(&fakeTuitionSrv{receipt: &service.TuitionReceipt{NumeroBoleto: "COL-2024-123456", Total: 380}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	payload := `{"mes":"MARZO","monto_colegiatura":350}`
	c.Request = httptest.NewRequest(http.MethodPost, "/api/pagos/colegiaturas/est-1", strings.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "studentId", Value: "est-1"}}

	h.Register(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var body struct {
		Success bool                   `json:"success"`
		Data    service.TuitionReceipt `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "COL-2024-123456", body.Data.NumeroBoleto)
}

func TestTuitionHandlerMonthPaid(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewTuitionHandler(&fakeTuitionSrv{status: &service.MonthStatus{Pagado: true}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/pagos/colegiaturas/est-1/mes/MARZO", nil)
	c.Params = gin.Params{{Key: "studentId", Value: "est-1"}, {Key: "mes", Value: "MARZO"}}

	h.MonthPaid(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var status service.MonthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.True(t, status.Pagado)
}
