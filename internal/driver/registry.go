package driver

import (
	"context"
	"fmt"
	"sync"

	"github.com/godivelog/godive/internal/divelog"
)

// Driver decodes the memory dump of one dive-computer family.
type Driver interface {
	// Name returns the canonical family name.
	Name() string
	// Detect reports whether the dump plausibly belongs to this
	// family. It must be cheap and must not allocate parser state.
	Detect(data []byte) bool
	// Process decodes the dump into summary fields and the ordered
	// sample stream.
	Process(ctx context.Context, data []byte) (map[string]any, []divelog.Sample, error)
}

var (
	regMu    sync.RWMutex
	registry []Driver
)

// Register stores a driver in memory. Drivers call it from init.
func Register(drv Driver) {
	regMu.Lock()
	defer regMu.Unlock()
	registry = append(registry, drv)
}

// Lookup returns the first registered driver that detects the dump.
func Lookup(data []byte) (Driver, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	for _, drv := range registry {
		if drv.Detect(data) {
			return drv, nil
		}
	}
	return nil, fmt.Errorf("no driver detected for %d-byte dump", len(data))
}

// LookupFamily returns the driver registered under the given family
// name, for callers that want to bypass detection.
func LookupFamily(name string) (Driver, error) {
	regMu.RLock()
	defer regMu.RUnlock()
	for _, drv := range registry {
		if drv.Name() == name {
			return drv, nil
		}
	}
	return nil, fmt.Errorf("driver not found for family %q", name)
}
