package chase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const (
	testSamplingPeriod = 100 * time.Millisecond
	testRpmWindowSize  = 10
)

// simulatedPlant acts as both actuator and tach: the driven duty cycle
// maps linearly onto the produced speed, smoothed like a spinning mass.
type simulatedPlant struct {
	maxRpm    float64
	inertness float64

	rpm float64
}

func (p *simulatedPlant) SetDuty(duty float64) error {
	steadyState := duty * p.maxRpm
	p.rpm = p.rpm + (steadyState-p.rpm)*(1.0-p.inertness)
	return nil
}

func (p *simulatedPlant) GetRpm() (int, error) {
	return int(p.rpm), nil
}

func createTestChannel() (*Channel, *simulatedPlant) {
	plant := &simulatedPlant{maxRpm: 3000, inertness: 0.5}
	channel := NewChannel("fan1", 0)
	channel.Configure(plant, plant, testSamplingPeriod, testRpmWindowSize)
	return channel, plant
}

func TestChannel_Configure_ResetsState(t *testing.T) {
	// GIVEN
	channel, _ := createTestChannel()
	channel.SetPiGains(0.5, 0.1)
	channel.SetTarget(1500)

	// WHEN
	plant := &simulatedPlant{maxRpm: 3000, inertness: 0.5}
	channel.Configure(plant, plant, testSamplingPeriod, testRpmWindowSize)

	// THEN
	assert.Equal(t, 0, channel.GetTarget())
	assert.False(t, channel.IsChasing())
	assert.Equal(t, 0.0, channel.GetDuty())
	kp, ki := channel.GetPiGains()
	assert.Equal(t, 0.0, kp)
	assert.Equal(t, 0.0, ki)
}

func TestChannel_SetTarget(t *testing.T) {
	// GIVEN
	channel, _ := createTestChannel()

	// WHEN
	channel.SetTarget(1500)

	// THEN
	assert.True(t, channel.IsChasing())
	assert.Equal(t, 1500, channel.GetTarget())
}

func TestChannel_SetTarget_Zero(t *testing.T) {
	// GIVEN
	channel, _ := createTestChannel()
	channel.SetTarget(1500)

	// WHEN
	channel.SetTarget(0)

	// THEN
	assert.False(t, channel.IsChasing())
	assert.Equal(t, 0, channel.GetTarget())
}

func TestChannel_SetTarget_Negative(t *testing.T) {
	// GIVEN
	channel, _ := createTestChannel()
	channel.SetTarget(1500)

	// WHEN
	channel.SetTarget(-100)

	// THEN
	assert.True(t, channel.IsChasing())
	assert.Equal(t, 1500, channel.GetTarget())
}

func TestChannel_SetPiGains(t *testing.T) {
	// GIVEN
	channel, _ := createTestChannel()

	// WHEN
	result := channel.SetPiGains(0.8, 0.2)

	// THEN
	assert.True(t, result)
	kp, ki := channel.GetPiGains()
	assert.Equal(t, 0.8, kp)
	assert.Equal(t, 0.2, ki)
}

func TestChannel_SetPiGains_InvalidGainsKeepPreviousOnes(t *testing.T) {
	// GIVEN
	channel, _ := createTestChannel()
	channel.SetPiGains(0.8, 0.2)

	// WHEN
	result := channel.SetPiGains(-1.0, 0.2)

	// THEN
	assert.False(t, result)
	kp, ki := channel.GetPiGains()
	assert.Equal(t, 0.8, kp)
	assert.Equal(t, 0.2, ki)
}

func TestChannel_UpdateChase_IdleForcesDutyToZero(t *testing.T) {
	// GIVEN
	channel, plant := createTestChannel()
	channel.SetPiGains(0.0001, 0.0002)
	channel.SetTarget(1500)
	for i := 0; i < 10; i++ {
		assert.NoError(t, channel.UpdateChase(50))
	}
	assert.Greater(t, channel.GetDuty(), 0.0)

	// WHEN
	channel.SetTarget(0)
	assert.NoError(t, channel.UpdateChase(50))

	// THEN
	assert.Equal(t, 0.0, channel.GetDuty())
	// the plant spins down towards zero
	for i := 0; i < 100; i++ {
		assert.NoError(t, channel.UpdateChase(50))
	}
	rpm, _ := plant.GetRpm()
	assert.Less(t, rpm, 10)
}

func TestChannel_UpdateChase_Converges(t *testing.T) {
	// GIVEN
	channel, _ := createTestChannel()
	channel.SetPiGains(0.00005, 0.0002)
	channel.SetTarget(1500)
	tolerance := 50

	// WHEN
	converged := -1
	for i := 0; i < 1000; i++ {
		assert.NoError(t, channel.UpdateChase(tolerance))

		duty := channel.GetDuty()
		assert.GreaterOrEqual(t, duty, MinDuty)
		assert.LessOrEqual(t, duty, MaxDuty)

		err := channel.GetTarget() - channel.GetRpm()
		if err < 0 {
			err = -err
		}
		if err <= tolerance {
			converged = i
			break
		}
	}

	// THEN
	assert.GreaterOrEqual(t, converged, 0, "channel did not converge within 1000 steps")

	// once settled, the channel keeps holding the target
	errors := make([]int, 0, 200)
	for i := 0; i < 200; i++ {
		assert.NoError(t, channel.UpdateChase(tolerance))

		duty := channel.GetDuty()
		assert.GreaterOrEqual(t, duty, MinDuty)
		assert.LessOrEqual(t, duty, MaxDuty)

		err := channel.GetTarget() - channel.GetRpm()
		if err < 0 {
			err = -err
		}
		errors = append(errors, err)
	}
	for _, err := range errors[len(errors)-20:] {
		assert.LessOrEqual(t, err, tolerance)
	}
}

func TestChannel_UpdateChase_GainChangeAffectsOutput(t *testing.T) {
	// GIVEN
	channel, _ := createTestChannel()
	channel.SetPiGains(0.0, 0.0)
	channel.SetTarget(1500)
	assert.NoError(t, channel.UpdateChase(50))
	assert.Equal(t, 0.0, channel.GetDuty())

	// WHEN
	channel.SetPiGains(0.0001, 0.0002)
	assert.NoError(t, channel.UpdateChase(50))

	// THEN
	assert.Greater(t, channel.GetDuty(), 0.0)
}

func TestChannel_AttachResponseData_PrimesOutput(t *testing.T) {
	// GIVEN
	channel, _ := createTestChannel()
	channel.SetPiGains(0.00005, 0.0002)
	channel.AttachResponseData(map[int]float64{
		0:   0,
		50:  1500,
		100: 3000,
	})

	// WHEN
	channel.SetTarget(1500)
	assert.NoError(t, channel.UpdateChase(50))

	// THEN
	// the first output already starts close to the measured 50% duty
	// instead of ramping up from zero
	assert.Greater(t, channel.GetDuty(), 0.4)
}

func TestChannel_Configure_PrimesRpmWindow(t *testing.T) {
	// GIVEN
	plant := &simulatedPlant{maxRpm: 3000, inertness: 0.5, rpm: 1000}
	channel := NewChannel("fan1", 0)

	// WHEN
	channel.Configure(plant, plant, testSamplingPeriod, testRpmWindowSize)

	// THEN
	// the rolling average starts at the current speed instead of
	// climbing up from zero
	assert.Equal(t, 1000, channel.GetRpm())
	assert.InDelta(t, 1000.0, channel.GetRpmAvg(), 1.0)
}

func TestChannel_GetRpmAvg(t *testing.T) {
	// GIVEN
	channel, plant := createTestChannel()
	plant.rpm = 1000
	plant.inertness = 1.0 // hold speed regardless of duty

	// WHEN
	for i := 0; i < testRpmWindowSize; i++ {
		assert.NoError(t, channel.UpdateChase(50))
	}

	// THEN
	assert.InDelta(t, 1000.0, channel.GetRpmAvg(), 1.0)
}
