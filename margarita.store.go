package margarita

import (
	"context"
	"fmt"
	"sync"
)

// SnippetStore resolves include paths to template source. The canonical
// form returned by Load identifies a snippet uniquely across path
// spellings; the renderer keys cycle detection on it.
type SnippetStore interface {
	// Load fetches snippet source by path.
	Load(ctx context.Context, path string) (source string, canonical string, err error)

	// Name returns the driver name.
	Name() string

	// Close releases any resources held by the store.
	Close() error
}

// StoreDriver creates SnippetStore instances from a connection string.
// For the filesystem driver the connection string is the base path; for
// postgres it is a database URL.
type StoreDriver interface {
	Open(connectionString string) (SnippetStore, error)
}

var (
	storeDriversMu sync.RWMutex
	storeDrivers   = make(map[string]StoreDriver)
)

// RegisterStoreDriver makes a store driver available by name.
// Drivers register themselves from init functions.
func RegisterStoreDriver(name string, driver StoreDriver) {
	storeDriversMu.Lock()
	defer storeDriversMu.Unlock()
	storeDrivers[name] = driver
}

// OpenStore opens a snippet store by driver name and connection string.
func OpenStore(name, connectionString string) (SnippetStore, error) {
	storeDriversMu.RLock()
	driver, ok := storeDrivers[name]
	storeDriversMu.RUnlock()
	if !ok {
		return nil, NewStoreError(fmt.Sprintf(ErrMsgUnknownStoreDriver, name), name, nil)
	}
	return driver.Open(connectionString)
}

// ErrMsgUnknownStoreDriver formats the unknown-driver error
const ErrMsgUnknownStoreDriver = "unknown snippet store driver %q"
