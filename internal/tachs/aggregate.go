package tachs

import (
	"fmt"

	"github.com/fanchase/chased/internal/configuration"
	"github.com/fanchase/chased/internal/util"
)

// AggregateTach combines the readings of other tachs, e.g. the
// average speed of a group of fans driven by a shared actuator.
type AggregateTach struct {
	Config configuration.TachConfig `json:"configuration"`
}

func (tach AggregateTach) GetId() string {
	return tach.Config.ID
}

func (tach AggregateTach) GetConfig() configuration.TachConfig {
	return tach.Config
}

func (tach AggregateTach) GetRpm() (int, error) {
	readings := make([]float64, 0, len(tach.Config.Aggregate.Tachs))
	for _, id := range tach.Config.Aggregate.Tachs {
		referenced, err := GetTach(id)
		if err != nil {
			return 0, err
		}
		rpm, err := referenced.GetRpm()
		if err != nil {
			return 0, err
		}
		readings = append(readings, float64(rpm))
	}
	if len(readings) == 0 {
		return 0, fmt.Errorf("tach %s: aggregate references no tachs", tach.GetId())
	}

	var result float64
	switch tach.Config.Aggregate.Function {
	case configuration.FunctionMinimum:
		result = util.Min(readings)
	case configuration.FunctionMaximum:
		result = util.Max(readings)
	case configuration.FunctionAverage:
		result = util.Avg(readings)
	default:
		return 0, fmt.Errorf("tach %s: unsupported aggregate function: %s", tach.GetId(), tach.Config.Aggregate.Function)
	}

	return int(result), nil
}
