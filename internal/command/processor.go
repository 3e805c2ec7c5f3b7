package command

import (
	"strconv"
	"strings"
	"time"

	"github.com/fanchase/chased/internal/chase"
)

const (
	// MaxChannels is the hard upper bound on the number of addressable channels
	MaxChannels = 21

	keywordChase = "CHASE"
	keywordPiSet = "PISET"
)

// Mode describes the physical arrangement of the fan wall, captured at
// configuration time. It has no influence on command routing.
type Mode string

const (
	ModeSingle Mode = "single"
	ModeDual   Mode = "dual"
)

// Processor parses single command lines and routes parameter updates to
// the addressed channel. It is stateless between calls apart from the
// channels it owns: a rejected line never mutates anything.
type Processor struct {
	channels []*chase.Channel

	mode             Mode
	samplingPeriod   time.Duration
	defaultTolerance int

	configured bool
}

func NewProcessor() *Processor {
	return &Processor{}
}

// Configure binds the processor to its channels and captures the
// configuration. Must be called exactly once; the configuration is
// immutable afterwards. The channel count must be in [1, MaxChannels].
func (p *Processor) Configure(mode Mode, channels []*chase.Channel, samplingPeriod time.Duration, defaultTolerance int) bool {
	if p.configured {
		return false
	}
	if len(channels) < 1 || len(channels) > MaxChannels {
		return false
	}

	p.mode = mode
	p.channels = channels
	p.samplingPeriod = samplingPeriod
	p.defaultTolerance = defaultTolerance
	p.configured = true
	return true
}

func (p *Processor) Mode() Mode {
	return p.mode
}

func (p *Processor) SamplingPeriod() time.Duration {
	return p.samplingPeriod
}

// DefaultTolerance is the rpm band within which a channel counts as settled.
func (p *Processor) DefaultTolerance() int {
	return p.defaultTolerance
}

func (p *Processor) ChannelCount() int {
	return len(p.channels)
}

func (p *Processor) Channels() []*chase.Channel {
	return p.channels
}

// Channel returns the channel at the given index, or nil if the index
// is out of range.
func (p *Processor) Channel(index int) *chase.Channel {
	if index < 0 || index >= len(p.channels) {
		return nil
	}
	return p.channels[index]
}

// Process parses a single command line and executes it. It returns
// whether the command was accepted. Malformed text, unknown keywords,
// wrong argument counts, unparsable numbers and out-of-range values all
// reject the line without mutating any channel.
func (p *Processor) Process(line string) bool {
	if !p.configured {
		return false
	}

	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return false
	}

	switch tokens[0] {
	case keywordChase:
		return p.processChase(tokens[1:])
	case keywordPiSet:
		return p.processPiSet(tokens[1:])
	}
	return false
}

func (p *Processor) processChase(args []string) bool {
	if len(args) != 2 {
		return false
	}

	channel, ok := p.parseChannelIndex(args[0])
	if !ok {
		return false
	}

	rpm, err := strconv.Atoi(args[1])
	if err != nil || rpm < 0 {
		return false
	}

	channel.SetTarget(rpm)
	return true
}

func (p *Processor) processPiSet(args []string) bool {
	if len(args) != 3 {
		return false
	}

	channel, ok := p.parseChannelIndex(args[0])
	if !ok {
		return false
	}

	kp, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return false
	}
	ki, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return false
	}
	if !chase.ValidGains(kp, ki) {
		return false
	}

	return channel.SetPiGains(kp, ki)
}

func (p *Processor) parseChannelIndex(token string) (*chase.Channel, bool) {
	index, err := strconv.Atoi(token)
	if err != nil {
		return nil, false
	}
	channel := p.Channel(index)
	if channel == nil {
		return nil, false
	}
	return channel, true
}
