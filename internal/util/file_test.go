package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadIntFromFile(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "fan1_input")
	err := os.WriteFile(path, []byte("1200\n"), 0644)
	assert.NoError(t, err)

	// WHEN
	value, err := ReadIntFromFile(path)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 1200, value)
}

func TestReadIntFromFileMissing(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "fan1_input")

	// WHEN
	_, err := ReadIntFromFile(path)

	// THEN
	assert.Error(t, err)
}

func TestWriteIntToFileAtomic(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "pwm1")

	// WHEN
	err := WriteIntToFileAtomic(128, path)

	// THEN
	assert.NoError(t, err)
	content, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "128", string(content))
}
