package config

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindFlags(t *testing.T) {
	fs := flag.NewFlagSet("flowkey", flag.ContinueOnError)
	cfg := BindFlags(fs)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "file", cfg.Transport)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.False(t, cfg.Service)

	require.NoError(t, fs.Parse([]string{
		"-definitions", "flows.yaml",
		"-watch",
		"-service",
		"-format", "yaml",
		"-keys", "ipsource,ipdestination",
		"-logfmt", "json",
	}))
	assert.Equal(t, "flows.yaml", cfg.Definitions)
	assert.True(t, cfg.Watch)
	assert.True(t, cfg.Service)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, "ipsource,ipdestination", cfg.Keys)
	assert.Equal(t, "json", cfg.LogFmt)
}
