package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jpsrivera1/backgeneralsistemaceti/internal/models"
)

func TestResolveUniformCategoryWeekendWins(t *testing.T) {
	// Weekend modality takes priority over the grade keywords.
	category, ok := ResolveUniformCategory("Fin de Semana", "9no")
	assert.True(t, ok)
	assert.Equal(t, models.CategoriaFinDeSemana, category)
}

func TestResolveUniformCategoryBasicsAndTrack(t *testing.T) {
	for _, grado := range []string{"7mo", "3ro. Básico", "5to. BACH en Diseño", "4to Perito Contador"} {
		category, ok := ResolveUniformCategory("Matutina", grado)
		assert.True(t, ok, grado)
		assert.Equal(t, models.CategoriaBasicosYCarrera, category, grado)
	}
}

func TestResolveUniformCategoryKinderAndPrimary(t *testing.T) {
	for _, grado := range []string{"Kinder", "Prepa", "3ro Primaria", "Párvulos"} {
		category, ok := ResolveUniformCategory("Matutina", grado)
		assert.True(t, ok, grado)
		assert.Equal(t, models.CategoriaKinderYPrimaria, category, grado)
	}
}

func TestResolveUniformCategoryUnrecognized(t *testing.T) {
	_, ok := ResolveUniformCategory("Matutina", "Nivel Desconocido")
	assert.False(t, ok)
}
