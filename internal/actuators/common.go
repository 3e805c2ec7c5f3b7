package actuators

import (
	"fmt"

	"github.com/fanchase/chased/internal/configuration"
)

const (
	// MaxOutputValue is the full scale integer value written to the hardware
	MaxOutputValue = 255
	MinOutputValue = 0
)

// Actuator drives the duty cycle of one fan channel.
type Actuator interface {
	GetId() string

	GetConfig() configuration.ChannelConfig

	// SetDuty applies the given duty cycle in [0..1] to the hardware
	SetDuty(duty float64) error

	// GetDuty returns the duty cycle currently applied to the hardware
	GetDuty() (float64, error)
}

func NewActuator(config configuration.ChannelConfig) (Actuator, error) {
	if config.Actuator.File != nil {
		return &FileActuator{
			Config: config,
		}, nil
	}

	if config.Actuator.Cmd != nil {
		return &CmdActuator{
			Config: config,
		}, nil
	}

	return nil, fmt.Errorf("no matching actuator type for channel: %s", config.ID)
}

// outputValue maps a duty cycle fraction onto the integer scale written
// to the hardware, honoring the configured duty cap.
func outputValue(config configuration.ChannelConfig, duty float64) int {
	if config.Actuator.MaxDuty != nil {
		maxDuty := config.Actuator.MaxDuty.Fraction()
		if duty > maxDuty {
			duty = maxDuty
		}
	}
	if duty < 0 {
		duty = 0
	}
	if duty > 1 {
		duty = 1
	}
	return int(duty*MaxOutputValue + 0.5)
}
