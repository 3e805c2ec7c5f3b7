package tachs

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fanchase/chased/internal/configuration"
	"github.com/fanchase/chased/internal/ui"
	"github.com/fanchase/chased/internal/util"
)

type CmdTach struct {
	Config configuration.TachConfig `json:"configuration"`
}

func (tach CmdTach) GetId() string {
	return tach.Config.ID
}

func (tach CmdTach) GetConfig() configuration.TachConfig {
	return tach.Config
}

func (tach CmdTach) GetRpm() (int, error) {
	timeout := 2 * time.Second
	exec := tach.Config.Cmd.Exec
	args := tach.Config.Cmd.Args
	result, err := util.SafeCmdExecution(exec, args, timeout)
	if err != nil {
		return 0, fmt.Errorf("tach %s: %s", tach.GetId(), err.Error())
	}

	rpm, err := strconv.ParseFloat(result, 64)
	if err != nil {
		ui.Warning("tach %s: Unable to read rpm from command output: %s", tach.GetId(), exec)
		return 0, err
	}

	return int(rpm), nil
}
