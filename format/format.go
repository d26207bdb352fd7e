// Package format provides a registry of output formatters for parsed flow
// key definitions.
package format

import (
	"fmt"
	"sort"
	"sync"
)

var (
	formatDrivers = make(map[string]FormatDriver)
	lock          = &sync.RWMutex{}

	// ErrFormat is the base error for formatting failures.
	ErrFormat = fmt.Errorf("format error")
	// ErrNoSerializer is returned when a driver cannot render a value.
	ErrNoSerializer = fmt.Errorf("message is not serializable")
)

// DriverFormatError wraps a driver error with the format name.
type DriverFormatError struct {
	Driver string
	Err    error
}

func (e *DriverFormatError) Error() string {
	return fmt.Sprintf("%s for %s format", e.Err.Error(), e.Driver)
}

func (e *DriverFormatError) Unwrap() []error {
	return []error{ErrFormat, e.Err}
}

// FormatDriver is a formatter plugin.
type FormatDriver interface {
	Prepare() error                                  // Prepare driver (eg: flag registration)
	Init() error                                     // Initialize driver (eg: read flag values)
	Format(data interface{}) ([]byte, []byte, error) // Render a value into a key and a payload
}

// FormatInterface is what callers need from a formatter.
type FormatInterface interface {
	Format(data interface{}) ([]byte, []byte, error)
}

// Format is a named driver returned by FindFormat.
type Format struct {
	FormatDriver
	name string
}

// Name returns the registered name of the format.
func (t *Format) Name() string {
	return t.name
}

// Format renders data and tags errors with the format name.
func (t *Format) Format(data interface{}) ([]byte, []byte, error) {
	key, text, err := t.FormatDriver.Format(data)
	if err != nil {
		err = &DriverFormatError{
			t.name,
			err,
		}
	}
	return key, text, err
}

// RegisterFormatDriver registers and prepares a driver under name.
func RegisterFormatDriver(name string, t FormatDriver) {
	lock.Lock()
	formatDrivers[name] = t
	lock.Unlock()

	if err := t.Prepare(); err != nil {
		panic(err)
	}
}

// FindFormat initializes and returns the driver registered under name.
func FindFormat(name string) (*Format, error) {
	lock.RLock()
	t, ok := formatDrivers[name]
	lock.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %s not found", ErrFormat, name)
	}

	if err := t.Init(); err != nil {
		return nil, &DriverFormatError{name, err}
	}
	return &Format{t, name}, nil
}

// GetFormats returns the registered format names, sorted.
func GetFormats() []string {
	lock.RLock()
	defer lock.RUnlock()
	t := make([]string, 0, len(formatDrivers))
	for k := range formatDrivers {
		t = append(t, k)
	}
	sort.Strings(t)
	return t
}
