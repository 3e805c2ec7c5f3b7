package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/fanchase/chased/internal/chase"
	"github.com/fanchase/chased/internal/command"
	"github.com/stretchr/testify/assert"
)

type nullHardware struct{}

func (h nullHardware) SetDuty(duty float64) error {
	return nil
}

func (h nullHardware) GetRpm() (int, error) {
	return 0, nil
}

// memoryTransport replays scripted input lines and records responses.
type memoryTransport struct {
	in  io.Reader
	out bytes.Buffer
}

func (t *memoryTransport) Read(p []byte) (int, error) {
	return t.in.Read(p)
}

func (t *memoryTransport) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

func createTestConsole(input string) (*Console, *memoryTransport, *command.Processor) {
	channel := chase.NewChannel("fan1", 0)
	channel.Configure(nullHardware{}, nullHardware{}, 100*time.Millisecond, 10)

	processor := command.NewProcessor()
	processor.Configure(command.ModeSingle, []*chase.Channel{channel}, 100*time.Millisecond, 50)

	transport := &memoryTransport{in: strings.NewReader(input)}
	return NewConsole(processor, transport), transport, processor
}

func TestConsole_Run_AcceptsCommands(t *testing.T) {
	// GIVEN
	console, transport, processor := createTestConsole("CHASE 0 1200\r\nPISET 0 0.8 0.2\r\n")

	// WHEN
	err := console.Run(context.Background())

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "ok\r\nok\r\n", transport.out.String())
	assert.Equal(t, 1200, processor.Channel(0).GetTarget())
	kp, ki := processor.Channel(0).GetPiGains()
	assert.Equal(t, 0.8, kp)
	assert.Equal(t, 0.2, ki)
}

func TestConsole_Run_RejectsMalformedLines(t *testing.T) {
	// GIVEN
	console, transport, processor := createTestConsole("CHASE 99 1200\nGARBAGE\nCHASE 0 900\n")

	// WHEN
	err := console.Run(context.Background())

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "err\r\nerr\r\nok\r\n", transport.out.String())
	assert.Equal(t, 900, processor.Channel(0).GetTarget())
}

func TestConsole_Run_StopsOnCancelledContext(t *testing.T) {
	// GIVEN
	console, _, _ := createTestConsole("CHASE 0 1200\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// WHEN
	err := console.Run(ctx)

	// THEN
	assert.NoError(t, err)
}
