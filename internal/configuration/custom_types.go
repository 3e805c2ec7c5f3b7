package configuration

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// DutyValue is a duty cycle fraction in [0..1]. In the configuration it
// can be given either as a plain number (0.8) or as a percentage ("80%").
type DutyValue float64

func (d DutyValue) Fraction() float64 {
	return float64(d)
}

// decodeHookFunc combines the default viper decode hooks with the
// DutyValue hook. Passing a custom hook to viper.Unmarshal replaces the
// default ones, so they have to be re-added here.
func decodeHookFunc() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		dutyValueHookFunc(),
	)
}

// dutyValueHookFunc returns a mapstructure decode hook that parses
// DutyValue fields from numbers or percent strings.
func dutyValueHookFunc() mapstructure.DecodeHookFuncType {
	dutyValueType := reflect.TypeOf(DutyValue(0))

	return func(
		f reflect.Type,
		t reflect.Type,
		data interface{},
	) (interface{}, error) {
		if t != dutyValueType {
			return data, nil
		}

		var fraction float64
		switch value := data.(type) {
		case string:
			trimmed := strings.TrimSpace(value)
			isPercentage := strings.HasSuffix(trimmed, "%")
			trimmed = strings.TrimSuffix(trimmed, "%")
			parsed, err := strconv.ParseFloat(trimmed, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid duty value: %s", value)
			}
			if isPercentage {
				parsed = parsed / 100.0
			}
			fraction = parsed
		case float64:
			fraction = value
		case float32:
			fraction = float64(value)
		case int:
			fraction = float64(value)
		default:
			return nil, fmt.Errorf("invalid duty value type: %T", data)
		}

		if fraction < 0 || fraction > 1 {
			return nil, fmt.Errorf("duty value out of range [0..1]: %v", fraction)
		}

		return DutyValue(fraction), nil
	}
}
