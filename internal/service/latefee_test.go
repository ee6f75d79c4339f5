package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLateFeeAfterGraceDay(t *testing.T) {
	now := time.Date(2024, time.March, 6, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, 30.0, LateFee(3, now))
}

func TestLateFeeOnGraceDay(t *testing.T) {
	now := time.Date(2024, time.March, 5, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 0.0, LateFee(3, now))
}

func TestLateFeeBeforeTargetMonth(t *testing.T) {
	now := time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0.0, LateFee(10, now))
}

func TestLateFeeOutsideFeeWindow(t *testing.T) {
	now := time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0.0, LateFee(1, now))
	assert.Equal(t, 0.0, LateFee(11, now))
	assert.Equal(t, 0.0, LateFee(12, now))
	assert.Equal(t, 0.0, LateFee(0, now))
}

func TestMonthNumber(t *testing.T) {
	assert.Equal(t, 2, MonthNumber("FEBRERO"))
	assert.Equal(t, 9, MonthNumber(" septiembre "))
	assert.Equal(t, 0, MonthNumber("smarch"))
}
