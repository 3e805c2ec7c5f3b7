package console

import (
	"bufio"
	"context"
	"io"

	"github.com/fanchase/chased/internal/command"
	"github.com/fanchase/chased/internal/configuration"
	"github.com/fanchase/chased/internal/ui"
	"go.bug.st/serial"
)

const (
	responseOk  = "ok\r\n"
	responseErr = "err\r\n"
)

// Console reads command lines from a line-oriented transport, feeds
// them to the processor and answers each line with ok or err. The
// transport is expected to deliver full lines, the console never blocks
// the control loop.
type Console struct {
	processor *command.Processor
	transport io.ReadWriter
}

func NewConsole(processor *command.Processor, transport io.ReadWriter) *Console {
	return &Console{
		processor: processor,
		transport: transport,
	}
}

// OpenSerialPort opens the serial device of the given configuration.
// The returned closer must be closed to unblock a running console.
func OpenSerialPort(config configuration.ConsoleConfig) (io.ReadWriteCloser, error) {
	return serial.Open(config.Port, &serial.Mode{
		BaudRate: config.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
}

// Run consumes command lines until the transport is closed or the
// context is cancelled. Closing the transport is the only way to
// interrupt a blocking read, the daemon does that on shutdown.
func (c *Console) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(c.transport)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line := scanner.Text()
		c.handleLine(line)
	}
	return scanner.Err()
}

func (c *Console) handleLine(line string) {
	accepted := c.processor.Process(line)

	response := responseErr
	if accepted {
		response = responseOk
	}
	if _, err := io.WriteString(c.transport, response); err != nil {
		ui.Warning("Console: unable to write response: %v", err)
	}

	if accepted {
		ui.Debug("Console: accepted command: %s", line)
	} else {
		ui.Debug("Console: rejected command: %s", line)
	}
}
