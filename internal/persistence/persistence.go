package persistence

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fanchase/chased/internal/ui"
	bolt "go.etcd.io/bbolt"
)

const (
	// BucketChannelResponse holds the measured duty -> rpm response data per channel
	BucketChannelResponse = "channelResponse"
)

// Persistence stores measurement data of channels. Configuration
// (targets, gains) is deliberately not persisted, a restart always
// starts from the configured defaults.
type Persistence interface {
	Init() error

	LoadChannelResponseData(channelId string) (map[int]float64, error)
	SaveChannelResponseData(channelId string, data map[int]float64) (err error)
	DeleteChannelResponseData(channelId string) (err error)
}

type persistence struct {
	dbPath string
}

func NewPersistence(dbPath string) Persistence {
	p := &persistence{
		dbPath: dbPath,
	}
	return p
}

func (p persistence) Init() (err error) {
	// get parent path of dbPath
	parentDir := filepath.Dir(p.dbPath)
	_, err = os.Stat(parentDir)
	if errors.Is(err, os.ErrNotExist) {
		// create directory
		ui.Info("Creating directory for db: %s", parentDir)
		err = os.MkdirAll(parentDir, 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

func (p persistence) openPersistence() (db *bolt.DB, err error) {
	db, err = bolt.Open(p.dbPath, 0600, &bolt.Options{Timeout: 1 * time.Minute})
	if err != nil {
		return nil, err
	}
	return db, nil
}

// SaveChannelResponseData saves the measured duty -> rpm response data of the given channel
func (p persistence) SaveChannelResponseData(channelId string, data map[int]float64) (err error) {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(BucketChannelResponse))
		if err != nil {
			return fmt.Errorf("create bucket: %s", err)
		}
		return b.Put([]byte(channelId), encoded)
	})
}

// LoadChannelResponseData loads the measured duty -> rpm response data of the given channel
func (p persistence) LoadChannelResponseData(channelId string) (map[int]float64, error) {
	db, err := p.openPersistence()
	if err != nil {
		return nil, err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	var data map[int]float64
	err = db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketChannelResponse))
		if b == nil {
			return os.ErrNotExist
		}
		v := b.Get([]byte(channelId))
		if v == nil {
			return os.ErrNotExist
		}

		err := json.Unmarshal(v, &data)
		if err != nil {
			// if we cannot read the saved data, delete it
			ui.Warning("Unable to unmarshal saved response data for %s: %v", channelId, err)
			err := b.Delete([]byte(channelId))
			if err != nil {
				ui.Error("Unable to delete corrupt data key %s: %v", channelId, err)
			}
			return os.ErrNotExist
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return data, nil
}

func (p persistence) DeleteChannelResponseData(channelId string) error {
	db, err := p.openPersistence()
	if err != nil {
		return err
	}
	defer func(db *bolt.DB) {
		_ = db.Close()
	}(db)

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(BucketChannelResponse))
		if b == nil {
			// no bucket yet
			return nil
		}
		v := b.Get([]byte(channelId))
		if v == nil {
			// no data for given key
			return nil
		}

		return b.Delete([]byte(channelId))
	})
}
