package configuration

type ConsoleConfig struct {
	Enabled bool `json:"enabled"`
	// Port is the serial device the command console listens on, e.g. /dev/ttyACM0
	Port     string `json:"port"`
	BaudRate int    `json:"baudRate"`
}
