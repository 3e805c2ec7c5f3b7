package configuration

import (
	"os"
	"time"

	"github.com/fanchase/chased/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type Configuration struct {
	DbPath string `json:"dbPath"`

	Processor ProcessorConfig `json:"processor"`

	Channels []ChannelConfig `json:"channels"`
	Tachs    []TachConfig    `json:"tachs"`

	RpmRollingWindowSize int `json:"rpmRollingWindowSize"`

	Console    ConsoleConfig    `json:"console"`
	Api        ApiConfig        `json:"api"`
	Statistics StatisticsConfig `json:"statistics"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("chased")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/chased/")
	}

	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("DbPath", "/etc/chased/chased.db")
	viper.SetDefault("RpmRollingWindowSize", 10)

	viper.SetDefault("Processor.Mode", "single")
	viper.SetDefault("Processor.SamplingPeriod", 200*time.Millisecond)
	viper.SetDefault("Processor.Tolerance", 50)

	viper.SetDefault("Console.Enabled", false)
	viper.SetDefault("Console.BaudRate", 115200)

	viper.SetDefault("Api.Enabled", false)
	viper.SetDefault("Api.Host", "localhost")
	viper.SetDefault("Api.Port", 9977)

	viper.SetDefault("Statistics.Enabled", false)
	viper.SetDefault("Statistics.Port", 9978)

	viper.SetDefault("Channels", []ChannelConfig{})
	viper.SetDefault("Tachs", []TachConfig{})
}

// DetectAndReadConfigFile detects the path of the first existing config file
func DetectAndReadConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		ui.Fatal("Error reading config file, %s", err)
	}
	return GetFilePath()
}

// GetFilePath this is only populated _after_ viper has read the config file
func GetFilePath() string {
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	// load default configuration values
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(decodeHookFunc()))
	if err != nil {
		ui.Fatal("unable to decode into struct, %v", err)
	}
}
