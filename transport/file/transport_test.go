package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileDriver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "definitions.log")
	d := &FileDriver{
		fileDestination: path,
		lineSeparator:   "\n",
		lock:            &sync.RWMutex{},
	}
	require.NoError(t, d.Init())
	require.NoError(t, d.Send([]byte("web"), []byte("ipsource,ipdestination")))
	require.NoError(t, d.Send(nil, []byte("country:ipsource")))

	t.Run("Reopen after rotation", func(t *testing.T) {
		rotated := path + ".1"
		require.NoError(t, os.Rename(path, rotated))
		require.NoError(t, d.reopen())
		require.NoError(t, d.Send(nil, []byte("agent")))

		old, err := os.ReadFile(rotated)
		require.NoError(t, err)
		assert.Equal(t, "ipsource,ipdestination\ncountry:ipsource\n", string(old))
	})

	require.NoError(t, d.Close())

	current, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "agent\n", string(current))
}

func TestFileDriverNoSeparator(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out")
	d := &FileDriver{
		fileDestination: path,
		lock:            &sync.RWMutex{},
	}
	require.NoError(t, d.Init())
	require.NoError(t, d.Send(nil, []byte("a")))
	require.NoError(t, d.Send(nil, []byte("b")))
	require.NoError(t, d.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ab", string(b))
}

func TestFileDriverOpenError(t *testing.T) {
	d := &FileDriver{
		fileDestination: filepath.Join(t.TempDir(), "missing", "out"),
		lock:            &sync.RWMutex{},
	}
	assert.Error(t, d.Init())
}
