package builder

import (
	"fmt"

	"github.com/netsampler/flowkey/format"
	"github.com/netsampler/flowkey/key"
	"github.com/netsampler/flowkey/metrics"
	"github.com/netsampler/flowkey/transport"
	"github.com/netsampler/flowkey/utils/debug"
)

// BuildFormatter resolves a formatter by name.
func BuildFormatter(name string) (*format.Format, error) {
	formatter, err := format.FindFormat(name)
	if err != nil {
		return nil, fmt.Errorf("build formatter %s: %w", name, err)
	}
	return formatter, nil
}

// BuildTransport resolves a transport by name.
func BuildTransport(name string) (*transport.Transport, error) {
	t, err := transport.FindTransport(name)
	if err != nil {
		return nil, fmt.Errorf("build transport %s: %w", name, err)
	}
	return t, nil
}

// BuildParser returns the definition parser, recovering panics and
// recording Prometheus metrics.
func BuildParser() key.Parser {
	var p key.Parser = key.DefaultParser
	p = debug.WrapPanicParser(p)
	p = metrics.WrapPromParser(p)
	return p
}
