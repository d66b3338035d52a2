package storage

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hammamikhairi/cookbook/internal/domain"
	"github.com/hammamikhairi/cookbook/internal/logger"
)

// Driver identifies a store backend.
type Driver string

const (
	DriverMemory Driver = "memory" // tests, throwaway sessions
	DriverFile   Driver = "file"   // one file per key under a directory
	DriverSQLite Driver = "sqlite" // single database file (default)
)

// Handle is an opened store plus what callers need to watch and release it.
type Handle struct {
	Store  domain.KVStore
	Driver Driver
	// WatchDir and WatchPrefix describe the files that change when the
	// store is written. WatchDir is empty for the memory driver.
	WatchDir    string
	WatchPrefix string
	closeFn     func() error
}

// Close releases the backend.
func (h *Handle) Close() error {
	if h.closeFn == nil {
		return nil
	}
	return h.closeFn()
}

// Open creates the backend named by driver. path is a directory for the
// file driver and a database file for the sqlite driver.
func Open(driver, path string, log *logger.Logger) (*Handle, error) {
	switch Driver(strings.ToLower(strings.TrimSpace(driver))) {
	case DriverMemory:
		return &Handle{Store: NewMemoryStore(log), Driver: DriverMemory}, nil
	case DriverFile:
		s, err := NewFileStore(path, log)
		if err != nil {
			return nil, err
		}
		return &Handle{Store: s, Driver: DriverFile, WatchDir: s.Dir()}, nil
	case DriverSQLite, "":
		s, err := NewSQLiteStore(path, log)
		if err != nil {
			return nil, err
		}
		return &Handle{
			Store:       s,
			Driver:      DriverSQLite,
			WatchDir:    filepath.Dir(s.Path()),
			WatchPrefix: filepath.Base(s.Path()),
			closeFn:     s.Close,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDriver, driver)
	}
}
