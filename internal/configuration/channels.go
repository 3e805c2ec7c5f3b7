package configuration

type ChannelConfig struct {
	ID string `json:"id"`
	// Tach references a tach definition by id
	Tach     string         `json:"tach"`
	Actuator ActuatorConfig `json:"actuator"`
	// Kp and Ki are the initial pi gains of the channel,
	// they can be changed at runtime via the PISET command
	Kp float64 `json:"kp"`
	Ki float64 `json:"ki"`
}

type ActuatorConfig struct {
	File *FileActuatorConfig `json:"file,omitempty"`
	Cmd  *CmdActuatorConfig  `json:"cmd,omitempty"`
	// MaxDuty caps the duty cycle applied to the hardware,
	// e.g. "80%" or 0.8. Defaults to full scale.
	MaxDuty *DutyValue `json:"maxDuty,omitempty"`
}

type FileActuatorConfig struct {
	// Path of a file the duty cycle is written to as an integer in [0..255]
	Path string `json:"path"`
}

type CmdActuatorConfig struct {
	Exec string `json:"exec"`
	// Args passed to Exec, occurrences of %duty% are replaced
	// with the duty cycle as an integer in [0..255]
	Args []string `json:"args"`
}
