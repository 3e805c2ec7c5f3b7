package channel

import (
	"fmt"

	"github.com/fanchase/chased/internal/actuators"
	"github.com/fanchase/chased/internal/configuration"
	"github.com/fanchase/chased/internal/tachs"
	"github.com/fanchase/chased/internal/ui"
	"github.com/spf13/cobra"
)

var channelId string

var Command = &cobra.Command{
	Use:              "channel",
	Short:            "Channel related commands",
	Long:             ``,
	TraverseChildren: true,
}

func init() {
	Command.PersistentFlags().StringVarP(
		&channelId,
		"id", "i",
		"",
		"Channel ID as specified in the config",
	)
}

func loadAndValidateConfig() {
	configPath := configuration.DetectAndReadConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()
	if err := configuration.Validate(configPath); err != nil {
		ui.Fatal(err.Error())
	}
}

// getChannelObjects builds the actuator and tach of the channel with the
// given id from the current configuration.
func getChannelObjects(id string) (actuators.Actuator, tachs.Tach, error) {
	loadAndValidateConfig()

	for _, config := range configuration.CurrentConfig.Tachs {
		tach, err := tachs.NewTach(config)
		if err != nil {
			return nil, nil, err
		}
		tachs.TachMap.Set(config.ID, tach)
	}

	for _, config := range configuration.CurrentConfig.Channels {
		if config.ID != id {
			continue
		}

		actuator, err := actuators.NewActuator(config)
		if err != nil {
			return nil, nil, err
		}

		tach, err := tachs.GetTach(config.Tach)
		if err != nil {
			return nil, nil, err
		}

		return actuator, tach, nil
	}

	return nil, nil, fmt.Errorf("no channel with id found: %s", id)
}
