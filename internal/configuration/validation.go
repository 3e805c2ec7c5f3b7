package configuration

import (
	"fmt"

	"github.com/fanchase/chased/internal/chase"
	"github.com/fanchase/chased/internal/command"
	"github.com/fanchase/chased/internal/ui"
	"github.com/fanchase/chased/internal/util"
	"github.com/looplab/tarjan"
)

func Validate(configPath string) error {
	return validateConfig(&CurrentConfig, configPath)
}

func validateConfig(config *Configuration, path string) error {
	err := validateProcessor(config)
	if err != nil {
		return err
	}
	err = validateTachs(config)
	if err != nil {
		return err
	}
	err = validateChannels(config)
	if err != nil {
		return err
	}

	if containsCmdHooks(config) {
		if _, err := util.CheckFilePermissionsForExecution(path); err != nil {
			return fmt.Errorf("config file '%s' has invalid permissions: %s", path, err)
		}
	}

	return nil
}

func containsCmdHooks(config *Configuration) bool {
	for _, tachConfig := range config.Tachs {
		if tachConfig.Cmd != nil {
			return true
		}
	}
	for _, channelConfig := range config.Channels {
		if channelConfig.Actuator.Cmd != nil {
			return true
		}
	}
	return false
}

func validateProcessor(config *Configuration) error {
	processor := config.Processor

	if processor.Mode != ModeSingle && processor.Mode != ModeDual {
		return fmt.Errorf("processor: invalid mode '%s', use one of: %s | %s", processor.Mode, ModeSingle, ModeDual)
	}
	if processor.SamplingPeriod <= 0 {
		return fmt.Errorf("processor: sampling period must be > 0")
	}
	if processor.Tolerance <= 0 {
		return fmt.Errorf("processor: tolerance must be > 0")
	}

	return nil
}

func validateChannels(config *Configuration) error {
	if len(config.Channels) < 1 {
		return fmt.Errorf("no channel configurations found")
	}
	if len(config.Channels) > command.MaxChannels {
		return fmt.Errorf("too many channels: %d, at most %d are addressable", len(config.Channels), command.MaxChannels)
	}

	channelIds := make(map[string]bool)
	for _, channelConfig := range config.Channels {
		if channelIds[channelConfig.ID] {
			return fmt.Errorf("duplicate channel id detected: %s", channelConfig.ID)
		}
		channelIds[channelConfig.ID] = true

		subConfigs := 0
		if channelConfig.Actuator.File != nil {
			subConfigs++
		}
		if channelConfig.Actuator.Cmd != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("channel %s: only one actuator type can be used per channel definition block", channelConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("channel %s: sub-configuration for actuator is missing, use one of: file | cmd", channelConfig.ID)
		}

		if len(channelConfig.Tach) <= 0 {
			return fmt.Errorf("channel %s: missing tach id", channelConfig.ID)
		}
		if !tachIdExists(channelConfig.Tach, config) {
			return fmt.Errorf("channel %s: no tach definition with id '%s' found", channelConfig.ID, channelConfig.Tach)
		}

		if !chase.ValidGains(channelConfig.Kp, channelConfig.Ki) {
			return fmt.Errorf("channel %s: pi gains must be finite and non-negative", channelConfig.ID)
		}
	}

	return nil
}

func validateTachs(config *Configuration) error {
	graph := make(map[interface{}][]interface{})

	tachIds := make(map[string]bool)
	for _, tachConfig := range config.Tachs {
		if tachIds[tachConfig.ID] {
			return fmt.Errorf("duplicate tach id detected: %s", tachConfig.ID)
		}
		tachIds[tachConfig.ID] = true

		subConfigs := 0
		if tachConfig.File != nil {
			subConfigs++
		}
		if tachConfig.Cmd != nil {
			subConfigs++
		}
		if tachConfig.Aggregate != nil {
			subConfigs++
		}
		if subConfigs > 1 {
			return fmt.Errorf("tach %s: only one tach type can be used per tach definition block", tachConfig.ID)
		}
		if subConfigs <= 0 {
			return fmt.Errorf("tach %s: sub-configuration for tach is missing, use one of: file | cmd | aggregate", tachConfig.ID)
		}

		if !isTachConfigInUse(tachConfig, config) {
			ui.Warning("Unused tach configuration: %s", tachConfig.ID)
		}

		if tachConfig.Aggregate != nil {
			aggregate := tachConfig.Aggregate

			if aggregate.Function != FunctionAverage &&
				aggregate.Function != FunctionMinimum &&
				aggregate.Function != FunctionMaximum {
				return fmt.Errorf("tach %s: invalid aggregate function '%s'", tachConfig.ID, aggregate.Function)
			}
			if len(aggregate.Tachs) <= 0 {
				return fmt.Errorf("tach %s: aggregate references no tachs", tachConfig.ID)
			}

			var references []interface{}
			for _, id := range aggregate.Tachs {
				if !tachIdExists(id, config) {
					return fmt.Errorf("tach %s: no tach definition with id '%s' found", tachConfig.ID, id)
				}
				references = append(references, id)
			}
			graph[tachConfig.ID] = references
		}
	}

	return validateNoLoops(graph)
}

func validateNoLoops(graph map[interface{}][]interface{}) error {
	output := tarjan.Connections(graph)
	for _, items := range output {
		if len(items) > 1 {
			return fmt.Errorf("you have created a tach dependency cycle: %v", items)
		}
	}
	return nil
}

func tachIdExists(tachId string, config *Configuration) bool {
	for _, tach := range config.Tachs {
		if tach.ID == tachId {
			return true
		}
	}
	return false
}

func isTachConfigInUse(config TachConfig, configuration *Configuration) bool {
	for _, channelConfig := range configuration.Channels {
		if channelConfig.Tach == config.ID {
			return true
		}
	}
	for _, tachConfig := range configuration.Tachs {
		if tachConfig.Aggregate != nil && util.ContainsString(tachConfig.Aggregate.Tachs, config.ID) {
			return true
		}
	}
	return false
}
