package controller

import (
	"context"
	"time"

	"github.com/fanchase/chased/internal/actuators"
	"github.com/fanchase/chased/internal/tachs"
	"github.com/fanchase/chased/internal/ui"
	"github.com/fanchase/chased/internal/util"
)

const (
	// ResponseDutyStep is the duty percentage increment between measurement points
	ResponseDutyStep = 5
	// responseSampleCount is the number of rpm samples averaged per measurement point
	responseSampleCount = 5
)

// MeasureResponse sweeps the duty cycle of the given actuator from zero
// to full scale and records the settled speed at each step, producing
// the duty (percent) -> rpm response map of the channel. The fan is
// stopped again afterwards.
func MeasureResponse(ctx context.Context, actuator actuators.Actuator, tach tachs.Tach, settleTime time.Duration) (map[int]float64, error) {
	result := map[int]float64{}

	defer func() {
		_ = actuator.SetDuty(0)
	}()

	for percent := 0; percent <= 100; percent += ResponseDutyStep {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		duty := float64(percent) / 100.0
		if err := actuator.SetDuty(duty); err != nil {
			return nil, err
		}

		// give the fan time to reach its new speed
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(settleTime):
		}

		avg := 0.0
		for i := 0; i < responseSampleCount; i++ {
			rpm, err := tach.GetRpm()
			if err != nil {
				return nil, err
			}
			if i == 0 {
				avg = float64(rpm)
			} else {
				avg = util.UpdateSimpleMovingAvg(avg, responseSampleCount, float64(rpm))
			}
		}
		result[percent] = avg
		ui.Debug("Measured %.0f rpm at %d%% duty", avg, percent)
	}

	return result, nil
}
