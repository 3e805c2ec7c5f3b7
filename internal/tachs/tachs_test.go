package tachs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fanchase/chased/internal/configuration"
	"github.com/stretchr/testify/assert"
)

type mockTach struct {
	id  string
	rpm int
}

func (tach mockTach) GetId() string {
	return tach.id
}

func (tach mockTach) GetConfig() configuration.TachConfig {
	return configuration.TachConfig{ID: tach.id}
}

func (tach mockTach) GetRpm() (int, error) {
	return tach.rpm, nil
}

func TestNewTach_File(t *testing.T) {
	// GIVEN
	config := configuration.TachConfig{
		ID: "tach",
		File: &configuration.FileTachConfig{
			Path: "abc",
		},
	}

	// WHEN
	tach, err := NewTach(config)

	// THEN
	assert.NoError(t, err)
	assert.IsType(t, &FileTach{}, tach)
	assert.Equal(t, "tach", tach.GetId())
}

func TestNewTach_MissingSubConfig(t *testing.T) {
	// GIVEN
	config := configuration.TachConfig{
		ID: "tach",
	}

	// WHEN
	_, err := NewTach(config)

	// THEN
	assert.Error(t, err)
}

func TestFileTach_GetRpm(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "fan1_rpm")
	assert.NoError(t, os.WriteFile(path, []byte("1350\n"), 0644))
	tach := FileTach{
		Config: configuration.TachConfig{
			ID: "tach",
			File: &configuration.FileTachConfig{
				Path: path,
			},
		},
	}

	// WHEN
	rpm, err := tach.GetRpm()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 1350, rpm)
}

func TestFileTach_GetRpm_MissingFile(t *testing.T) {
	// GIVEN
	tach := FileTach{
		Config: configuration.TachConfig{
			ID: "tach",
			File: &configuration.FileTachConfig{
				Path: filepath.Join(t.TempDir(), "does_not_exist"),
			},
		},
	}

	// WHEN
	_, err := tach.GetRpm()

	// THEN
	assert.Error(t, err)
}

func TestAggregateTach_GetRpm(t *testing.T) {
	// GIVEN
	TachMap.Set("tach1", Tach(mockTach{id: "tach1", rpm: 1000}))
	TachMap.Set("tach2", Tach(mockTach{id: "tach2", rpm: 2000}))
	defer TachMap.Remove("tach1")
	defer TachMap.Remove("tach2")

	cases := []struct {
		function string
		expected int
	}{
		{configuration.FunctionAverage, 1500},
		{configuration.FunctionMinimum, 1000},
		{configuration.FunctionMaximum, 2000},
	}

	for _, c := range cases {
		tach := AggregateTach{
			Config: configuration.TachConfig{
				ID: "aggregate",
				Aggregate: &configuration.AggregateTachConfig{
					Function: c.function,
					Tachs:    []string{"tach1", "tach2"},
				},
			},
		}

		// WHEN
		rpm, err := tach.GetRpm()

		// THEN
		assert.NoError(t, err)
		assert.Equal(t, c.expected, rpm, c.function)
	}
}

func TestAggregateTach_GetRpm_UnknownReference(t *testing.T) {
	// GIVEN
	tach := AggregateTach{
		Config: configuration.TachConfig{
			ID: "aggregate",
			Aggregate: &configuration.AggregateTachConfig{
				Function: configuration.FunctionAverage,
				Tachs:    []string{"missing"},
			},
		},
	}

	// WHEN
	_, err := tach.GetRpm()

	// THEN
	assert.Error(t, err)
}
