package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEligibleForGraduationMatchesVariants(t *testing.T) {
	for _, grado := range []string{
		"5to. BACH en Diseño",
		"5TO BACH EN DISEÑO",
		"9no",
		"9no. Matutina",
		"3ro Basico",
		"Prepa",
	} {
		assert.True(t, EligibleForGraduation(grado), grado)
	}
}

func TestEligibleForGraduationRejects(t *testing.T) {
	for _, grado := range []string{"", "10mo", "1ro Primaria", "Kinder"} {
		assert.False(t, EligibleForGraduation(grado), grado)
	}
}
