package flow

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/netsampler/flowkey/key"
	"github.com/netsampler/flowkey/metrics"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// Store publishes the current set to concurrent readers.
type Store struct {
	current atomic.Pointer[Set]
}

func NewStore(s *Set) *Store {
	st := &Store{}
	st.current.Store(s)
	return st
}

// Load returns the current set, possibly nil.
func (st *Store) Load() *Set {
	return st.current.Load()
}

func (st *Store) Store(s *Set) {
	st.current.Store(s)
}

const defaultDebounce = 200 * time.Millisecond

// Watcher reloads a definitions file into a Store.
type Watcher struct {
	Path     string
	Parser   key.Parser
	Store    *Store
	Logger   logrus.FieldLogger
	Debounce time.Duration
	// OnReload is called after every successful reload.
	OnReload func(*Set)
}

// Reload loads the file once. The current set is kept on failure.
func (w *Watcher) Reload() error {
	tm := metrics.TimeMeasureNow()
	s, err := LoadFile(w.Path, w.Parser)
	tm.MeasureTime(metrics.FlowReloadTime)
	if err != nil {
		metrics.FlowReloads.With(map[string]string{"result": "error"}).Inc()
		return err
	}
	metrics.FlowReloads.With(map[string]string{"result": "ok"}).Inc()
	metrics.FlowsLoaded.Set(float64(s.Len()))

	w.Store.Store(s)
	if w.OnReload != nil {
		w.OnReload(s)
	}
	return nil
}

func (w *Watcher) logger() logrus.FieldLogger {
	if w.Logger == nil {
		return logrus.StandardLogger()
	}
	return w.Logger
}

// Watch reloads the file whenever it changes until ctx is done. Events are
// debounced to coalesce editor and atomic-rename writes.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	base := filepath.Base(w.Path)
	if err := fw.Add(filepath.Dir(w.Path)); err != nil {
		return err
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	log := w.logger().WithField("path", w.Path)
	log.Info("watching definitions")

	var timer *time.Timer
	var timerCh <-chan time.Time
	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
		} else {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(debounce)
		}
		timerCh = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			schedule()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("watch error")
		case <-timerCh:
			timerCh = nil
			if err := w.Reload(); err != nil {
				log.WithError(err).Error("error reloading definitions")
				continue
			}
			log.WithField("flows", w.Store.Load().Len()).Info("reloaded definitions")
		}
	}
}
