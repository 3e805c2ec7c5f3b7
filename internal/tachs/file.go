package tachs

import (
	"os/user"
	"path/filepath"
	"strings"

	"github.com/fanchase/chased/internal/configuration"
	"github.com/fanchase/chased/internal/ui"
	"github.com/fanchase/chased/internal/util"
)

type FileTach struct {
	Config configuration.TachConfig `json:"configuration"`
}

func (tach FileTach) GetId() string {
	return tach.Config.ID
}

func (tach FileTach) GetConfig() configuration.TachConfig {
	return tach.Config
}

func (tach FileTach) GetRpm() (int, error) {
	filePath := tach.Config.File.Path
	// resolve home dir path
	if strings.HasPrefix(filePath, "~") {
		currentUser, err := user.Current()
		if err != nil {
			return 0, err
		}

		filePath = filepath.Join(currentUser.HomeDir, filePath[1:])
	}

	rpm, err := util.ReadIntFromFile(filePath)
	if err != nil {
		ui.Warning("Unable to read rpm from file tach: %s", filePath)
		return 0, err
	}

	return rpm, nil
}
