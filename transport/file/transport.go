// Package file implements a file/stdout transport.
package file

import (
	"flag"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/netsampler/flowkey/transport"
)

// FileDriver writes formatted definitions to stdout or a file.
type FileDriver struct {
	fileDestination string
	lineSeparator   string
	w               io.Writer
	file            *os.File
	lock            *sync.RWMutex
	q               chan bool
}

// Prepare registers the driver flags.
func (d *FileDriver) Prepare() error {
	flag.StringVar(&d.fileDestination, "transport.file", "", "File/console output (empty for stdout)")
	flag.StringVar(&d.lineSeparator, "transport.file.sep", "\n", "Line separator")
	return nil
}

func (d *FileDriver) openFile() error {
	file, err := os.OpenFile(d.fileDestination, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	d.file = file
	d.w = d.file
	return nil
}

// reopen swaps the output file, keeping the old one on failure.
func (d *FileDriver) reopen() error {
	d.lock.Lock()
	defer d.lock.Unlock()
	old := d.file
	if err := d.openFile(); err != nil {
		return err
	}
	return old.Close()
}

// Init opens the destination. Files are reopened on SIGHUP.
func (d *FileDriver) Init() error {
	d.q = make(chan bool, 1)

	if d.fileDestination == "" {
		d.lock.Lock()
		d.w = os.Stdout
		d.lock.Unlock()
		return nil
	}

	d.lock.Lock()
	err := d.openFile()
	d.lock.Unlock()
	if err != nil {
		return err
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGHUP)
	go func() {
		defer signal.Stop(c)
		for {
			select {
			case <-c:
				if err := d.reopen(); err != nil {
					return
				}
			case <-d.q:
				return
			}
		}
	}()
	return nil
}

// Send writes data followed by the line separator.
func (d *FileDriver) Send(key, data []byte) error {
	d.lock.RLock()
	defer d.lock.RUnlock()
	if len(data) > 0 {
		if _, err := d.w.Write(data); err != nil {
			return err
		}
	}
	if d.lineSeparator == "" {
		return nil
	}
	_, err := d.w.Write([]byte(d.lineSeparator))
	return err
}

// Close closes the output file and stops the reload loop.
func (d *FileDriver) Close() error {
	var closeErr error
	if d.fileDestination != "" {
		d.lock.Lock()
		closeErr = d.file.Close()
		d.lock.Unlock()
	}
	close(d.q)
	return closeErr
}

func init() {
	d := &FileDriver{
		lock: &sync.RWMutex{},
	}
	transport.RegisterTransportDriver("file", d)
}
