package chase

import (
	"math"

	"github.com/fanchase/chased/internal/util"
)

const (
	// MinDuty is the lowest duty cycle output of a PiLoop
	MinDuty = 0.0
	// MaxDuty is the highest duty cycle output of a PiLoop
	MaxDuty = 1.0
)

// PiLoop is a proportional-integral loop with a fixed time step.
// Its output is a duty cycle, clamped to [MinDuty, MaxDuty].
type PiLoop struct {
	// Proportional Constant
	kp float64
	// Integral Constant
	ki float64
	// fixed time step in seconds, the period at which Loop is driven
	dt float64

	// integral error accumulated over previous loops
	integral float64
	// last output value
	lastOutput float64
}

func NewPiLoop(kp float64, ki float64, dt float64) *PiLoop {
	return &PiLoop{
		kp: kp,
		ki: ki,
		dt: dt,
	}
}

// ValidGains reports whether the given gain pair is usable,
// meaning both values are finite and non-negative.
func ValidGains(kp float64, ki float64) bool {
	if math.IsNaN(kp) || math.IsInf(kp, 0) {
		return false
	}
	if math.IsNaN(ki) || math.IsInf(ki, 0) {
		return false
	}
	return kp >= 0 && ki >= 0
}

// SetGains updates the gains of the loop. Invalid gain pairs are
// rejected without touching the current gains or the integral error.
// On success the integral error is cleared, so a windup accumulated
// under the old gains cannot bleed into the new ones.
func (p *PiLoop) SetGains(kp float64, ki float64) bool {
	if !ValidGains(kp, ki) {
		return false
	}
	p.kp = kp
	p.ki = ki
	p.integral = 0
	return true
}

func (p *PiLoop) Gains() (kp float64, ki float64) {
	return p.kp, p.ki
}

// Reset clears the integral error and the last output.
func (p *PiLoop) Reset() {
	p.integral = 0
	p.lastOutput = 0
}

// SeedOutput primes the integral error so that the loop starts out
// producing the given duty cycle instead of ramping up from zero.
// A no-op when ki is zero, since the integral term has no effect then.
func (p *PiLoop) SeedOutput(duty float64) {
	if p.ki == 0 {
		return
	}
	p.integral = util.Coerce(duty, MinDuty, MaxDuty) / p.ki
	p.lastOutput = util.Coerce(duty, MinDuty, MaxDuty)
}

// Loop advances the pi loop by one time step.
//
// Within the tolerance band around the target the loop holds: the
// integral error stays frozen and the previous output is returned
// unchanged, so a settled channel does not oscillate around its target.
// Outside the band the integral only accumulates while the output is
// not saturated against the direction of the error (anti-windup).
func (p *PiLoop) Loop(target float64, measured float64, tolerance float64) float64 {
	err := target - measured

	if math.Abs(err) <= tolerance {
		return p.lastOutput
	}

	integrate := true
	if p.lastOutput >= MaxDuty && err > 0 {
		integrate = false
	}
	if p.lastOutput <= MinDuty && err < 0 {
		integrate = false
	}
	if integrate {
		p.integral = p.integral + err*p.dt
	}

	output := util.Coerce(p.kp*err+p.ki*p.integral, MinDuty, MaxDuty)
	p.lastOutput = output
	return output
}
