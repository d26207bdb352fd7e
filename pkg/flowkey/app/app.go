package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/netsampler/flowkey/flow"
	"github.com/netsampler/flowkey/format"
	"github.com/netsampler/flowkey/key"
	"github.com/netsampler/flowkey/metrics"
	"github.com/netsampler/flowkey/pkg/flowkey/builder"
	"github.com/netsampler/flowkey/pkg/flowkey/config"
	"github.com/netsampler/flowkey/pkg/flowkey/httpserver"
	"github.com/netsampler/flowkey/pkg/flowkey/logging"
	"github.com/netsampler/flowkey/utils/debug"

	"github.com/sirupsen/logrus"
)

// ErrBatch is returned when some definitions of a batch failed.
var ErrBatch = errors.New("batch error")

type sender interface {
	Send(key, data []byte) error
	Close() error
}

// App wires and runs the flowkey application.
type App struct {
	cfg    *config.Config
	logger *logrus.Logger

	formatter     format.FormatInterface
	formatName    string
	transport     sender
	transportName string
	parser        key.Parser

	store     *flow.Store
	in        io.Reader
	server    *http.Server
	serverErr chan error
	ready     atomic.Bool
	closeOnce sync.Once
}

// New constructs a new App from config.
func New(cfg *config.Config) (*App, error) {
	logger, err := logging.NewLogger(cfg.LogLevel, cfg.LogFmt)
	if err != nil {
		return nil, err
	}
	if err := key.CheckNameTables(); err != nil {
		return nil, err
	}

	formatter, err := builder.BuildFormatter(cfg.Format)
	if err != nil {
		return nil, err
	}
	transporter, err := builder.BuildTransport(cfg.Transport)
	if err != nil {
		return nil, err
	}

	a := newApp(cfg, logger, formatter, transporter, builder.BuildParser())
	a.formatName = formatter.Name()
	a.transportName = transporter.Name()
	return a, nil
}

func newApp(cfg *config.Config, logger *logrus.Logger, formatter format.FormatInterface, transporter sender, parser key.Parser) *App {
	a := &App{
		cfg:           cfg,
		logger:        logger,
		formatter:     formatter,
		formatName:    cfg.Format,
		transport:     transporter,
		transportName: cfg.Transport,
		parser:        parser,
		store:         flow.NewStore(nil),
		in:            os.Stdin,
		serverErr:     make(chan error, 1),
	}

	if cfg.Service && cfg.Addr != "" {
		mux := httpserver.New(httpserver.Config{
			Addr:        cfg.Addr,
			ContentType: httpserver.ContentTypes[cfg.Format],
		}, a.store.Load, parser, formatter, a.ready.Load)
		a.server = &http.Server{
			Addr:              cfg.Addr,
			Handler:           mux,
			ReadHeaderTimeout: time.Second * 5,
		}
	}
	return a
}

// Emit formats data and sends it to the transport.
func (a *App) Emit(data interface{}) error {
	k, payload, err := a.formatter.Format(data)
	if err != nil {
		metrics.FormatErrors.With(map[string]string{"format": a.formatName}).Inc()
		return err
	}
	if err := a.transport.Send(k, payload); err != nil {
		metrics.TransportErrors.With(map[string]string{"transport": a.transportName}).Inc()
		return err
	}
	metrics.OutputCount.With(map[string]string{"format": a.formatName, "transport": a.transportName}).Inc()
	return nil
}

// EmitSet emits every flow of s, stopping at the first error.
func (a *App) EmitSet(s *flow.Set) error {
	for _, f := range s.Flows() {
		if err := a.Emit(f); err != nil {
			return fmt.Errorf("flow %s: %w", f.Name, err)
		}
	}
	return nil
}

func (a *App) logParseError(text string, err error) {
	fields := logrus.Fields{
		"keys":  text,
		"error": err.Error(),
	}
	var perr *key.ParseError
	if errors.As(err, &perr) {
		fields["kind"] = perr.Kind.String()
		fields["offset"] = perr.Offset
		if perr.Cause != nil {
			fields["cause"] = perr.Cause.Error()
		}
	}
	var pErrMsg *debug.PanicErrorMessage
	if errors.As(err, &pErrMsg) {
		fields["stacktrace"] = string(pErrMsg.Stacktrace)
		a.logger.WithFields(fields).Error("intercepted panic")
		return
	}
	a.logger.WithFields(fields).Error("invalid key definition")
}

// parseLines parses one definition per line of r. Blank lines and lines
// starting with # are skipped.
func (a *App) parseLines(ctx context.Context, r io.Reader) (failed int, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return failed, ctx.Err()
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if !a.emitText(text) {
			failed++
		}
	}
	return failed, scanner.Err()
}

func (a *App) emitText(text string) bool {
	def, err := a.parser.Parse(text)
	if err != nil {
		a.logParseError(text, err)
		return false
	}
	if err := a.Emit(def); err != nil {
		a.logger.WithError(err).WithField("keys", text).Error("error sending definition")
		return false
	}
	return true
}

// loadDefinitions loads the definitions file and emits every flow.
func (a *App) loadDefinitions() error {
	w := a.watcher()
	w.OnReload = nil
	if err := w.Reload(); err != nil {
		return err
	}
	s := a.store.Load()
	a.logger.WithFields(logrus.Fields{
		"path":  a.cfg.Definitions,
		"flows": s.Len(),
	}).Info("loaded definitions")
	return a.EmitSet(s)
}

func (a *App) watcher() *flow.Watcher {
	return &flow.Watcher{
		Path:   a.cfg.Definitions,
		Parser: a.parser,
		Store:  a.store,
		Logger: a.logger.WithField("component", "watcher"),
		OnReload: func(s *flow.Set) {
			if err := a.EmitSet(s); err != nil {
				a.logger.WithError(err).Error("error sending definitions")
			}
		},
	}
}

// RunBatch emits the definitions file, the -keys definition or the
// definitions read from stdin, then returns.
func (a *App) RunBatch(ctx context.Context) error {
	var failed int
	switch {
	case a.cfg.Definitions != "":
		if err := a.loadDefinitions(); err != nil {
			return err
		}
	case a.cfg.Keys != "":
		if !a.emitText(a.cfg.Keys) {
			failed++
		}
	default:
		var err error
		if failed, err = a.parseLines(ctx, a.in); err != nil {
			return err
		}
	}

	if a.cfg.PushGateway != "" {
		if err := metrics.Push(a.cfg.PushGateway, "flowkey"); err != nil {
			a.logger.WithError(err).Warn("error pushing metrics")
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d definitions failed", ErrBatch, failed)
	}
	return nil
}

// Start loads definitions, starts the watcher and the HTTP server.
func (a *App) Start(ctx context.Context) error {
	a.logger.Info("starting flowkey")

	if a.cfg.Definitions != "" {
		if err := a.loadDefinitions(); err != nil {
			return err
		}
		if a.cfg.Watch {
			w := a.watcher()
			go func() {
				if err := w.Watch(ctx); err != nil {
					a.logger.WithError(err).Error("watch disabled")
				}
			}()
		}
	}
	a.ready.Store(true)

	if a.server == nil {
		return nil
	}

	go func() {
		err := a.server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.serverErr <- err
			return
		}
		a.logger.WithField("http", a.cfg.Addr).Info("closed HTTP server")
	}()

	return nil
}

// Run runs the batch, or in service mode blocks until context cancellation
// or server error.
func (a *App) Run(ctx context.Context) error {
	if !a.cfg.Service {
		err := a.RunBatch(ctx)
		a.closeTransport()
		return err
	}

	if err := a.Start(ctx); err != nil {
		a.closeTransport()
		return err
	}

	var err error
	select {
	case <-ctx.Done():
	case err = <-a.Wait():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	a.Shutdown(shutdownCtx)
	cancel()
	return err
}

// Wait returns a channel that receives HTTP server errors.
func (a *App) Wait() <-chan error {
	return a.serverErr
}

func (a *App) closeTransport() {
	a.closeOnce.Do(func() {
		if err := a.transport.Close(); err != nil {
			a.logger.WithError(err).Error("error closing transport")
		}
		a.logger.Debug("transporter closed")
	})
}

// Shutdown closes the transport and shuts down the HTTP server.
func (a *App) Shutdown(ctx context.Context) {
	a.ready.Store(false)
	a.closeTransport()

	if a.server == nil {
		return
	}
	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.WithError(err).Error("error shutting-down HTTP server")
	}
}
