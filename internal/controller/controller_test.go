package controller

import (
	"context"
	"testing"
	"time"

	"github.com/fanchase/chased/internal/actuators"
	"github.com/fanchase/chased/internal/configuration"
	"github.com/fanchase/chased/internal/tachs"
	"github.com/stretchr/testify/assert"
)

type mockActuator struct {
	duties []float64
}

func (a *mockActuator) GetId() string {
	return "mock"
}

func (a *mockActuator) GetConfig() configuration.ChannelConfig {
	return configuration.ChannelConfig{}
}

func (a *mockActuator) SetDuty(duty float64) error {
	a.duties = append(a.duties, duty)
	return nil
}

func (a *mockActuator) GetDuty() (float64, error) {
	if len(a.duties) == 0 {
		return 0, nil
	}
	return a.duties[len(a.duties)-1], nil
}

type mockTach struct {
	actuator *mockActuator
	maxRpm   float64
}

func (t *mockTach) GetId() string {
	return "mock"
}

func (t *mockTach) GetConfig() configuration.TachConfig {
	return configuration.TachConfig{}
}

func (t *mockTach) GetRpm() (int, error) {
	duty, _ := t.actuator.GetDuty()
	return int(duty * t.maxRpm), nil
}

var _ actuators.Actuator = &mockActuator{}
var _ tachs.Tach = &mockTach{}

func TestMeasureResponse(t *testing.T) {
	// GIVEN
	actuator := &mockActuator{}
	tach := &mockTach{actuator: actuator, maxRpm: 3000}

	// WHEN
	data, err := MeasureResponse(context.Background(), actuator, tach, time.Millisecond)

	// THEN
	assert.NoError(t, err)
	assert.Len(t, data, 100/ResponseDutyStep+1)
	assert.Equal(t, 0.0, data[0])
	assert.InDelta(t, 1500.0, data[50], 30)
	assert.InDelta(t, 3000.0, data[100], 30)

	// the fan is stopped after the measurement
	assert.Equal(t, 0.0, actuator.duties[len(actuator.duties)-1])
}

func TestMeasureResponse_CancelledContext(t *testing.T) {
	// GIVEN
	actuator := &mockActuator{}
	tach := &mockTach{actuator: actuator, maxRpm: 3000}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// WHEN
	_, err := MeasureResponse(ctx, actuator, tach, time.Millisecond)

	// THEN
	assert.Error(t, err)
}
