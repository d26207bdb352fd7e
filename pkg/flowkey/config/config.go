package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/netsampler/flowkey/format"
	"github.com/netsampler/flowkey/transport"
)

// Config holds configuration for the flowkey application.
type Config struct {
	LogLevel string
	LogFmt   string

	Format    string
	Transport string

	Definitions string
	Keys        string
	Watch       bool
	Service     bool

	Addr        string
	PushGateway string
}

// BindFlags registers configuration flags and returns a Config.
func BindFlags(fs *flag.FlagSet) *Config {
	cfg := &Config{}

	BindCommonFlags(fs, &cfg.LogLevel, &cfg.LogFmt, &cfg.Format, &cfg.Transport)
	fs.StringVar(&cfg.Definitions, "definitions", "", "YAML file of flow definitions")
	fs.StringVar(&cfg.Keys, "keys", "", "Single key definition to parse (otherwise read from stdin)")
	fs.BoolVar(&cfg.Watch, "watch", false, "Reload the definitions file when it changes (service mode)")
	fs.BoolVar(&cfg.Service, "service", false, "Keep running and serve HTTP instead of exiting after the batch")
	fs.StringVar(&cfg.Addr, "addr", ":8080", "HTTP server address (service mode)")
	fs.StringVar(&cfg.PushGateway, "metrics.push", "", "Pushgateway URL receiving metrics at the end of a batch")

	return cfg
}

// BindCommonFlags registers shared logging/format/transport flags.
func BindCommonFlags(fs *flag.FlagSet, logLevel, logFmt, formatName, transportName *string) {
	fs.StringVar(logLevel, "loglevel", "info", "Log level")
	fs.StringVar(logFmt, "logfmt", "normal", "Log formatter")
	fs.StringVar(formatName, "format", "json", fmt.Sprintf("Choose the format (available: %s)", strings.Join(format.GetFormats(), ", ")))
	fs.StringVar(transportName, "transport", "file", fmt.Sprintf("Choose the transport (available: %s)", strings.Join(transport.GetTransports(), ", ")))
}
