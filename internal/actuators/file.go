package actuators

import (
	"os/user"
	"path/filepath"
	"strings"

	"github.com/fanchase/chased/internal/configuration"
	"github.com/fanchase/chased/internal/ui"
	"github.com/fanchase/chased/internal/util"
)

type FileActuator struct {
	Config configuration.ChannelConfig `json:"configuration"`
}

func (actuator FileActuator) GetId() string {
	return actuator.Config.ID
}

func (actuator FileActuator) GetConfig() configuration.ChannelConfig {
	return actuator.Config
}

func (actuator *FileActuator) SetDuty(duty float64) error {
	filePath, err := actuator.resolvePath()
	if err != nil {
		return err
	}

	err = util.WriteIntToFileAtomic(outputValue(actuator.Config, duty), filePath)
	if err != nil {
		ui.Error("Unable to write to file: %v", filePath)
	}
	return err
}

func (actuator FileActuator) GetDuty() (float64, error) {
	filePath, err := actuator.resolvePath()
	if err != nil {
		return 0, err
	}

	value, err := util.ReadIntFromFile(filePath)
	if err != nil {
		return 0, err
	}
	return float64(value) / MaxOutputValue, nil
}

func (actuator FileActuator) resolvePath() (string, error) {
	filePath := actuator.Config.Actuator.File.Path
	// resolve home dir path
	if strings.HasPrefix(filePath, "~") {
		currentUser, err := user.Current()
		if err != nil {
			return "", err
		}

		filePath = filepath.Join(currentUser.HomeDir, filePath[1:])
	}
	return filePath, nil
}
