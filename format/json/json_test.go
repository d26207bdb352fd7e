package json

import (
	"encoding/json"
	"testing"

	"github.com/netsampler/flowkey/format"
	"github.com/netsampler/flowkey/key"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJsonFormat(t *testing.T) {
	def, err := key.ParseDefinition("ipsource,country:ipdestination")
	require.NoError(t, err)

	d := &JsonDriver{}
	k, out, err := d.Format(def)
	require.NoError(t, err)
	assert.Equal(t, []byte("ipsource,country:ipdestination"), k)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "ipsource,country:ipdestination", decoded["definition"])
	assert.Len(t, decoded["keys"], 2)

	d.indent = true
	_, indented, err := d.Format(def)
	require.NoError(t, err)
	assert.Contains(t, string(indented), "\n  \"definition\"")

	_, _, err = d.Format(struct{}{})
	assert.ErrorIs(t, err, format.ErrNoSerializer)
}

func TestJsonRegistered(t *testing.T) {
	f, err := format.FindFormat("json")
	require.NoError(t, err)
	assert.Equal(t, "json", f.Name())

	_, _, err = f.Format(1)
	assert.ErrorIs(t, err, format.ErrFormat)
	assert.ErrorIs(t, err, format.ErrNoSerializer)
}
