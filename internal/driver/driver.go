// Package driver provides the vendor driver capability used to collect
// facts from network devices. Each supported platform registers a
// factory under its driver name; callers instantiate drivers by the
// name carried on the resolved inventory platform record.
package driver

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// Sentinel errors wrapped by driver implementations so callers can
// classify failures with errors.Is.
var (
	// ErrAuth indicates the device rejected the supplied credentials.
	ErrAuth = errors.New("authentication rejected")
	// ErrCommand indicates a command failed to execute on an open session.
	ErrCommand = errors.New("command execution failed")
	// ErrUnknownDriver indicates no driver is registered under the requested name.
	ErrUnknownDriver = errors.New("unknown driver")
)

// Target describes the device endpoint a driver connects to.
type Target struct {
	Host     string
	Port     int
	Username string
	Password string
	Timeout  time.Duration
}

// Facts holds the identity information collected from a device.
type Facts struct {
	Hostname     string
	Vendor       string
	Model        string
	SerialNumber string
	OSVersion    string
}

// IPv4Addr carries the prefix length of an address configured on an interface.
type IPv4Addr struct {
	PrefixLength int
}

// InterfaceIPs maps interface name to the IPv4 addresses configured on it.
type InterfaceIPs map[string]map[string]IPv4Addr

// Driver is the capability every supported platform implements: open a
// management session, return structured facts and interface addresses.
type Driver interface {
	Open(ctx context.Context) error
	Facts(ctx context.Context) (*Facts, error)
	InterfaceIPs(ctx context.Context) (InterfaceIPs, error)
	Close() error
}

// Factory constructs a Driver for a target.
type Factory func(t Target) Driver

var (
	mu       sync.RWMutex
	registry = make(map[string]Factory)
)

// Register makes a driver factory available under the given name.
// Panics on duplicate registration, like database/sql.Register.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := registry[name]; dup {
		panic(fmt.Sprintf("driver: Register called twice for %q", name))
	}
	registry[name] = f
}

// Supported reports whether a driver is registered under name.
func Supported(name string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := registry[name]
	return ok
}

// Names returns the registered driver names, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New instantiates the driver registered under name for the target.
func New(name string, t Target) (Driver, error) {
	mu.RLock()
	f, ok := registry[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, name)
	}
	return f(t), nil
}
