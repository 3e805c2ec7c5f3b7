package actuators

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fanchase/chased/internal/configuration"
	"github.com/fanchase/chased/internal/util"
)

type CmdActuator struct {
	Config configuration.ChannelConfig `json:"configuration"`

	lastOutput int
}

func (actuator *CmdActuator) GetId() string {
	return actuator.Config.ID
}

func (actuator *CmdActuator) GetConfig() configuration.ChannelConfig {
	return actuator.Config
}

func (actuator *CmdActuator) SetDuty(duty float64) error {
	conf := actuator.Config.Actuator.Cmd
	output := outputValue(actuator.Config, duty)

	var args []string
	for _, arg := range conf.Args {
		replaced := strings.ReplaceAll(arg, "%duty%", strconv.Itoa(output))
		args = append(args, replaced)
	}

	timeout := 2 * time.Second
	_, err := util.SafeCmdExecution(conf.Exec, args, timeout)
	if err != nil {
		return fmt.Errorf("channel %s: %s", actuator.GetId(), err.Error())
	}

	actuator.lastOutput = output
	return nil
}

func (actuator *CmdActuator) GetDuty() (float64, error) {
	return float64(actuator.lastOutput) / MaxOutputValue, nil
}
