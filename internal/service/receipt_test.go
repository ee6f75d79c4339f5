package service

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jpsrivera1/backgeneralsistemaceti/internal/models"
)

var receiptPattern = regexp.MustCompile(`^[A-Z]{3}-\d{4}-\d{6}$`)

func TestReceiptNumberFormat(t *testing.T) {
	now := time.Date(2024, time.May, 12, 10, 30, 0, 0, time.UTC)
	assert.Regexp(t, receiptPattern, ReceiptNumber(ReceiptPrefixColegiatura, now))
	assert.Regexp(t, receiptPattern, ReceiptNumber(ReceiptPrefixGraduacion, now))
	assert.Regexp(t, receiptPattern, ReceiptNumber(ReceiptPrefixCurso, now))
}

func TestReceiptNumberCarriesYear(t *testing.T) {
	now := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)
	assert.Contains(t, ReceiptNumber(ReceiptPrefixColegiatura, now), "COL-2025-")
}

func TestCategoryReceiptNumberPrefix(t *testing.T) {
	now := time.Now()
	assert.Contains(t, CategoryReceiptNumber(models.CategoriaInscripcion, now), "INS-")
	assert.Contains(t, CategoryReceiptNumber(models.CategoriaUniforme, now), "UNI-")
	// Both book categories share the LIB prefix.
	assert.Contains(t, CategoryReceiptNumber(models.CategoriaLibrosLectura, now), "LIB-")
	assert.Contains(t, CategoryReceiptNumber(models.CategoriaLibroIngles, now), "LIB-")
	assert.Regexp(t, receiptPattern, CategoryReceiptNumber(models.CategoriaExcursion, now))
}
