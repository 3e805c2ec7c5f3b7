package configuration

type TachConfig struct {
	ID        string               `json:"id"`
	File      *FileTachConfig      `json:"file,omitempty"`
	Cmd       *CmdTachConfig       `json:"cmd,omitempty"`
	Aggregate *AggregateTachConfig `json:"aggregate,omitempty"`
}

type FileTachConfig struct {
	// Path of a file the current rpm value is read from
	Path string `json:"path"`
}

type CmdTachConfig struct {
	Exec string   `json:"exec"`
	Args []string `json:"args"`
}

const (
	FunctionAverage = "average"
	FunctionMinimum = "minimum"
	FunctionMaximum = "maximum"
)

type AggregateTachConfig struct {
	// Function used to combine the referenced tach readings,
	// one of: average | minimum | maximum
	Function string `json:"function"`
	// Tachs references other tach definitions by id
	Tachs []string `json:"tachs"`
}
