package transport

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordDriver struct {
	prepared bool
	initErr  error
	sendErr  error
	sent     [][]byte
	closed   bool
}

func (d *recordDriver) Prepare() error {
	d.prepared = true
	return nil
}

func (d *recordDriver) Init() error {
	return d.initErr
}

func (d *recordDriver) Close() error {
	d.closed = true
	return nil
}

func (d *recordDriver) Send(key, data []byte) error {
	if d.sendErr != nil {
		return d.sendErr
	}
	d.sent = append(d.sent, data)
	return nil
}

func TestRegistry(t *testing.T) {
	d := &recordDriver{}
	RegisterTransportDriver("record", d)
	assert.True(t, d.prepared)
	assert.Contains(t, GetTransports(), "record")

	tr, err := FindTransport("record")
	require.NoError(t, err)
	assert.Equal(t, "record", tr.Name())
	require.NoError(t, tr.Send([]byte("k"), []byte("v")))
	assert.Equal(t, [][]byte{[]byte("v")}, d.sent)

	d.sendErr = errors.New("broken pipe")
	err = tr.Send(nil, []byte("v"))
	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, d.sendErr)
	assert.Contains(t, err.Error(), "for record transport")

	require.NoError(t, tr.Close())
	assert.True(t, d.closed)
}

func TestFindTransportErrors(t *testing.T) {
	_, err := FindTransport("missing")
	assert.ErrorIs(t, err, ErrTransport)

	initErr := errors.New("no route")
	RegisterTransportDriver("failing", &recordDriver{initErr: initErr})
	tr, err := FindTransport("failing")
	assert.Nil(t, tr)
	assert.ErrorIs(t, err, initErr)
}
