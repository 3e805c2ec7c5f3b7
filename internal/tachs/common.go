package tachs

import (
	"fmt"

	"github.com/fanchase/chased/internal/configuration"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	TachMap = cmap.New[Tach]()
)

// Tach reads the rotational speed of one fan channel.
type Tach interface {
	GetId() string

	GetConfig() configuration.TachConfig

	// GetRpm reads the current rpm value of this tach
	GetRpm() (int, error)
}

func NewTach(config configuration.TachConfig) (Tach, error) {
	if config.File != nil {
		return &FileTach{
			Config: config,
		}, nil
	}

	if config.Cmd != nil {
		return &CmdTach{
			Config: config,
		}, nil
	}

	if config.Aggregate != nil {
		return &AggregateTach{
			Config: config,
		}, nil
	}

	return nil, fmt.Errorf("no matching tach type for tach: %s", config.ID)
}

func GetTach(id string) (Tach, error) {
	tach, ok := TachMap.Get(id)
	if !ok {
		return nil, fmt.Errorf("no tach with id found: %s", id)
	}
	return tach, nil
}
