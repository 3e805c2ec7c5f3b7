package controller

import (
	"context"
	"time"

	"github.com/fanchase/chased/internal/chase"
	"github.com/fanchase/chased/internal/command"
	"github.com/fanchase/chased/internal/persistence"
	"github.com/fanchase/chased/internal/ui"
)

// maxConsecutiveUpdateErrors is the number of back to back update
// failures after which a channel is reported as faulty
const maxConsecutiveUpdateErrors = 10

type ChaseController interface {
	Run(ctx context.Context) error
}

type chaseController struct {
	persistence persistence.Persistence
	processor   *command.Processor

	updateErrors map[*chase.Channel]int
}

func NewChaseController(persistence persistence.Persistence, processor *command.Processor) ChaseController {
	return &chaseController{
		persistence:  persistence,
		processor:    processor,
		updateErrors: map[*chase.Channel]int{},
	}
}

// Run drives the control step of all channels at the configured
// sampling period until the context is cancelled. Response data found
// in persistence is attached to the channels before the first step.
func (c *chaseController) Run(ctx context.Context) error {
	for _, channel := range c.processor.Channels() {
		data, err := c.persistence.LoadChannelResponseData(channel.GetId())
		if err != nil {
			ui.Debug("No response data for channel '%s'", channel.GetId())
			continue
		}
		channel.AttachResponseData(data)
		ui.Info("Loaded response data for channel '%s'", channel.GetId())
	}

	ui.Info("Starting chase loop for %d channels...", c.processor.ChannelCount())

	tick := time.Tick(c.processor.SamplingPeriod())
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			c.updateChannels()
		}
	}
}

func (c *chaseController) updateChannels() {
	tolerance := c.processor.DefaultTolerance()
	for _, channel := range c.processor.Channels() {
		err := channel.UpdateChase(tolerance)
		if err != nil {
			c.updateErrors[channel]++
			if c.updateErrors[channel] == maxConsecutiveUpdateErrors {
				ui.Error("Channel %s: %d consecutive update errors, last: %v", channel.GetId(), maxConsecutiveUpdateErrors, err)
			}
			continue
		}
		c.updateErrors[channel] = 0
	}
}
