package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateInterpolatedCurveValue(t *testing.T) {
	// GIVEN
	expectedInputOutput := map[float64]float64{
		0:      0.0,
		100.0:  100.0,
		500.0:  500.0,
		1000.0: 1000.0,
		2000.0: 1000.0,
	}
	steps := map[int]float64{
		0:    0,
		100:  100,
		1000: 1000,
	}
	interpolationType := InterpolationTypeLinear

	for input, output := range expectedInputOutput {
		// WHEN
		result := CalculateInterpolatedCurveValue(steps, interpolationType, input)

		// THEN
		assert.Equal(t, output, result)
	}
}

func TestRatio(t *testing.T) {
	// GIVEN
	a := 0.0
	b := 100.0
	c := 50.0

	expected := 0.5

	// WHEN
	result := Ratio(c, a, b)

	// THEN
	assert.Equal(t, expected, result)
}

func TestCoerce(t *testing.T) {
	// GIVEN
	value := 1.5

	// WHEN
	result := Coerce(value, 0, 1)

	// THEN
	assert.Equal(t, 1.0, result)

	// WHEN
	result = Coerce(-0.5, 0, 1)

	// THEN
	assert.Equal(t, 0.0, result)

	// WHEN
	result = Coerce(0.5, 0, 1)

	// THEN
	assert.Equal(t, 0.5, result)
}

func TestAvg(t *testing.T) {
	// GIVEN
	values := []float64{0, 50, 100}

	// WHEN
	result := Avg(values)

	// THEN
	assert.Equal(t, 50.0, result)
}

func TestUpdateSimpleMovingAvg(t *testing.T) {
	// GIVEN
	oldAvg := 10.0
	n := 4
	newValue := 20.0

	// WHEN
	result := UpdateSimpleMovingAvg(oldAvg, n, newValue)

	// THEN
	assert.Equal(t, 12.5, result)
}
