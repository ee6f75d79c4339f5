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

type fakeStudentSrv struct {
	students []models.Student
	student  *models.Student
	err      error
	lastReq  service.StudentRequest
}

func (f *fakeStudentSrv) List(context.Context) ([]models.Student, error) {
	return f.students, f.err
}

func (f *fakeStudentSrv) Get(context.Context, string) (*models.Student, error) {
	return f.student, f.err
}

func (f *fakeStudentSrv) Create(_ context.Context, req service.StudentRequest) (*models.Student, error) {
	f.lastReq = req
	return f.student, f.err
}

func (f *fakeStudentSrv) Update(_ context.Context, _ string, req service.StudentRequest) (*models.Student, error) {
	f.lastReq = req
	return f.student, f.err
}

func (f *fakeStudentSrv) Delete(context.Context, string) error {
	return f.err
}

func TestStudentHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewStudentHandler(&fakeStudentSrv{students: []models.Student{{ID: "est-1", Nombre: "Ana"}}})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/estudiantes", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var students []models.Student
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &students))
	require.Len(t, students, 1)
	assert.Equal(t, "est-1", students[0].ID)
}

func TestStudentHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewStudentHandler(&fakeStudentSrv{err: appErrors.Clone(appErrors.ErrNotFound, "estudiante no encontrado")})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/estudiantes/none", nil)
	c.Params = gin.Params{{Key: "id", Value: "none"}}

	h.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "estudiante no encontrado", body["error"])
}

func TestStudentHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeStudentSrv{student: &models.Student{ID: "est-2", Nombre: "Luis"}}
	h := NewStudentHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	payload := `{"nombre":"Luis","apellidos":"Gómez","grado":"9no"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/api/estudiantes", strings.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Luis", srv.lastReq.Nombre)
	assert.Equal(t, "9no", srv.lastReq.Grado)
}

func TestStudentHandlerCreateBadBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewStudentHandler(&fakeStudentSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/estudiantes", strings.NewReader("{"))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
