// Package transport provides a registry of destinations for formatted flow
// definitions.
package transport

import (
	"fmt"
	"sort"
	"sync"
)

var (
	transportDrivers = make(map[string]TransportDriver)
	lock             = &sync.RWMutex{}

	// ErrTransport is the base error for transport failures.
	ErrTransport = fmt.Errorf("transport error")
)

// DriverTransportError wraps a driver error with its transport name.
type DriverTransportError struct {
	Driver string
	Err    error
}

func (e *DriverTransportError) Error() string {
	return fmt.Sprintf("%s for %s transport", e.Err.Error(), e.Driver)
}

func (e *DriverTransportError) Unwrap() []error {
	return []error{ErrTransport, e.Err}
}

// TransportDriver is a transport plugin.
type TransportDriver interface {
	Prepare() error              // Prepare driver (eg: flag registration)
	Init() error                 // Initialize driver (eg: start connections, open files...)
	Close() error                // Close driver (eg: close connections and files...)
	Send(key, data []byte) error // Send a formatted message
}

// TransportInterface is what callers need to publish payloads.
type TransportInterface interface {
	Send(key, data []byte) error
}

// Transport is a named driver returned by FindTransport.
type Transport struct {
	TransportDriver
	name string
}

// Name returns the registered name of the transport.
func (t *Transport) Name() string {
	return t.name
}

func (t *Transport) Close() error {
	if err := t.TransportDriver.Close(); err != nil {
		return &DriverTransportError{t.name, err}
	}
	return nil
}

func (t *Transport) Send(key, data []byte) error {
	if err := t.TransportDriver.Send(key, data); err != nil {
		return &DriverTransportError{t.name, err}
	}
	return nil
}

// RegisterTransportDriver registers and prepares a driver under name.
func RegisterTransportDriver(name string, t TransportDriver) {
	lock.Lock()
	transportDrivers[name] = t
	lock.Unlock()

	if err := t.Prepare(); err != nil {
		panic(err)
	}
}

// FindTransport initializes and returns the driver registered under name.
func FindTransport(name string) (*Transport, error) {
	lock.RLock()
	t, ok := transportDrivers[name]
	lock.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %s not found", ErrTransport, name)
	}

	if err := t.Init(); err != nil {
		return nil, &DriverTransportError{name, err}
	}
	return &Transport{t, name}, nil
}

// GetTransports returns the registered transport names, sorted.
func GetTransports() []string {
	lock.RLock()
	defer lock.RUnlock()
	t := make([]string, 0, len(transportDrivers))
	for k := range transportDrivers {
		t = append(t, k)
	}
	sort.Strings(t)
	return t
}
