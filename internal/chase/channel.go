package chase

import (
	"sync"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/fanchase/chased/internal/util"
)

// Actuator is the "set duty cycle" capability of a physical fan channel.
type Actuator interface {
	// SetDuty applies the given duty cycle in [0..1] to the actuator
	SetDuty(duty float64) error
}

// Tach is the "read speed" capability of a physical fan channel.
type Tach interface {
	// GetRpm reads the current rotational speed of the fan
	GetRpm() (int, error)
}

// State of a channel. Transitions happen in SetTarget only.
type State int

const (
	// StateIdle means the channel has no target, its output is forced to zero
	StateIdle State = iota
	// StateChasing means the channel is actively pursuing a nonzero target speed
	StateChasing
)

func (s State) String() string {
	if s == StateChasing {
		return "chasing"
	}
	return "idle"
}

// Channel is one independently controlled actuator/tach pair.
// All exported methods are safe for concurrent use, commands may
// arrive while an update step is in flight.
type Channel struct {
	mu sync.Mutex

	id    string
	index int

	actuator Actuator
	tach     Tach

	pi *PiLoop

	state       State
	targetRpm   int
	measuredRpm int
	duty        float64

	rpmWindow     *rolling.PointPolicy
	rpmWindowSize int

	// measured duty (percent) -> rpm response data, used to prime the
	// pi loop when a new target is set. May be nil.
	responseData map[int]float64
}

// NewChannel creates an unconfigured channel. Configure must be called
// before the channel can be updated.
func NewChannel(id string, index int) *Channel {
	return &Channel{
		id:    id,
		index: index,
	}
}

func (c *Channel) GetId() string {
	return c.id
}

func (c *Channel) GetIndex() int {
	return c.index
}

// Configure binds the channel to its actuator and tach and resets all
// control state. samplingPeriod is the period at which UpdateChase will
// be driven and defines the time step of the pi loop.
func (c *Channel) Configure(actuator Actuator, tach Tach, samplingPeriod time.Duration, rpmWindowSize int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.actuator = actuator
	c.tach = tach
	c.pi = NewPiLoop(0, 0, samplingPeriod.Seconds())
	c.state = StateIdle
	c.targetRpm = 0
	c.measuredRpm = 0
	c.duty = 0
	c.rpmWindowSize = rpmWindowSize
	c.rpmWindow = util.CreateRollingWindow(rpmWindowSize)

	// prime the window with the current speed so the rolling average
	// starts at the real value instead of climbing up from zero
	if rpm, err := tach.GetRpm(); err == nil {
		c.measuredRpm = rpm
		util.FillWindow(c.rpmWindow, rpmWindowSize, float64(rpm))
	}
}

// SetPiGains updates the gains of the channel's pi loop. Gains must be
// finite and non-negative, anything else is rejected and the previous
// gains remain untouched.
func (c *Channel) SetPiGains(kp float64, ki float64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pi.SetGains(kp, ki)
}

func (c *Channel) GetPiGains() (kp float64, ki float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pi.Gains()
}

// SetTarget sets the target speed of the channel. A nonzero target puts
// the channel into the chasing state, a target of zero stops it.
// Negative targets are a caller error and ignored.
func (c *Channel) SetTarget(rpm int) {
	if rpm < 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.targetRpm = rpm
	c.pi.Reset()

	if rpm == 0 {
		c.state = StateIdle
		return
	}

	c.state = StateChasing
	if c.responseData != nil {
		// start out near the duty cycle that the measured response
		// suggests for this target instead of ramping up from zero
		c.pi.SeedOutput(c.dutyForRpm(rpm))
	}
}

// IsChasing reports whether the channel is currently pursuing a nonzero target.
func (c *Channel) IsChasing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == StateChasing
}

func (c *Channel) GetTarget() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.targetRpm
}

// GetRpm returns the last sampled speed of the channel.
func (c *Channel) GetRpm() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.measuredRpm
}

// GetRpmAvg returns the rolling window average of the sampled speed.
func (c *Channel) GetRpmAvg() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return util.GetWindowAvg(c.rpmWindow)
}

func (c *Channel) GetDuty() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.duty
}

// AttachResponseData attaches a measured duty (percent) -> rpm map to
// the channel, enabling pi loop priming on new targets.
func (c *Channel) AttachResponseData(data map[int]float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responseData = data
}

// UpdateChase advances the channel by one control step: it refreshes the
// measured speed from the tach, computes the next duty cycle and applies
// it to the actuator. While the measured speed is within toleranceRpm of
// the target the output is held steady. Must be driven at the sampling
// period given to Configure.
func (c *Channel) UpdateChase(toleranceRpm int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rpm, err := c.tach.GetRpm()
	if err != nil {
		return err
	}
	c.measuredRpm = rpm
	c.rpmWindow.Append(float64(rpm))

	if c.state != StateChasing {
		c.duty = 0
		return c.actuator.SetDuty(0)
	}

	c.duty = c.pi.Loop(float64(c.targetRpm), float64(rpm), float64(toleranceRpm))
	return c.actuator.SetDuty(c.duty)
}

// dutyForRpm inverts the attached response data, returning the duty
// cycle at which the channel was measured to run closest to the given
// speed. Callers must hold c.mu.
func (c *Channel) dutyForRpm(rpm int) float64 {
	if len(c.responseData) == 0 {
		return 0
	}

	// invert the duty -> rpm measurement into an rpm -> duty curve.
	// A flat low speed region keeps the lowest duty that produced it.
	inverse := make(map[int]float64, len(c.responseData))
	for _, percent := range util.SortedKeys(c.responseData) {
		measured := int(c.responseData[percent])
		if _, ok := inverse[measured]; !ok {
			inverse[measured] = float64(percent)
		}
	}

	percent := util.CalculateInterpolatedCurveValue(inverse, util.InterpolationTypeLinear, float64(rpm))
	return percent / 100.0
}
