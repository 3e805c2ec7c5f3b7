package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fanchase/chased/internal/chase"
	"github.com/fanchase/chased/internal/command"
	"github.com/stretchr/testify/assert"
)

type staticHardware struct {
	rpm int
}

func (h *staticHardware) SetDuty(duty float64) error {
	return nil
}

func (h *staticHardware) GetRpm() (int, error) {
	return h.rpm, nil
}

// the rest service is created once, the prometheus middleware
// registers its collectors on the default registry
func TestRestService(t *testing.T) {
	channels := make([]*chase.Channel, 0, 2)
	for i := 0; i < 2; i++ {
		channel := chase.NewChannel("fan", i)
		channel.Configure(&staticHardware{}, &staticHardware{rpm: 1000}, 100*time.Millisecond, 10)
		channels = append(channels, channel)
	}
	processor := command.NewProcessor()
	assert.True(t, processor.Configure(command.ModeSingle, channels, 100*time.Millisecond, 50))

	rest := CreateRestService(processor)

	t.Run("alive", func(t *testing.T) {
		// WHEN
		req := httptest.NewRequest(http.MethodGet, "/alive/", nil)
		rec := httptest.NewRecorder()
		rest.ServeHTTP(rec, req)

		// THEN
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("get channels", func(t *testing.T) {
		// WHEN
		req := httptest.NewRequest(http.MethodGet, "/channel/", nil)
		rec := httptest.NewRecorder()
		rest.ServeHTTP(rec, req)

		// THEN
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "\"index\": 0")
		assert.Contains(t, rec.Body.String(), "\"index\": 1")
	})

	t.Run("get channel by index", func(t *testing.T) {
		// WHEN
		req := httptest.NewRequest(http.MethodGet, "/channel/0/", nil)
		rec := httptest.NewRecorder()
		rest.ServeHTTP(rec, req)

		// THEN
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "\"id\": \"fan\"")
	})

	t.Run("get unknown channel", func(t *testing.T) {
		// WHEN
		req := httptest.NewRequest(http.MethodGet, "/channel/99/", nil)
		rec := httptest.NewRecorder()
		rest.ServeHTTP(rec, req)

		// THEN
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("post command", func(t *testing.T) {
		// WHEN
		req := httptest.NewRequest(http.MethodPost, "/command/", strings.NewReader("CHASE 0 1200"))
		rec := httptest.NewRecorder()
		rest.ServeHTTP(rec, req)

		// THEN
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1200, processor.Channel(0).GetTarget())
	})

	t.Run("post rejected command", func(t *testing.T) {
		// WHEN
		req := httptest.NewRequest(http.MethodPost, "/command/", strings.NewReader("CHASE 99 1200"))
		rec := httptest.NewRecorder()
		rest.ServeHTTP(rec, req)

		// THEN
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}
