package configuration

import "time"

const (
	ModeSingle = "single"
	ModeDual   = "dual"
)

type ProcessorConfig struct {
	// Mode describes the physical fan wall arrangement, single or dual sided
	Mode string `json:"mode"`
	// SamplingPeriod is the period at which each channel's control step is driven
	SamplingPeriod time.Duration `json:"samplingPeriod"`
	// Tolerance is the default rpm band within which a channel counts as settled
	Tolerance int `json:"tolerance"`
}
