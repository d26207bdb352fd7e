package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameTables(t *testing.T) {
	require.NoError(t, CheckNameTables())

	forward, inverse := tables()
	known := int(idCount) - 1
	assert.Len(t, forward, known)
	assert.Len(t, inverse, known)

	for name, id := range forward {
		assert.NotEqual(t, Unknown, id, "%q maps to the unknown identifier", name)
		assert.Equal(t, name, inverse[id])
	}
	for id, name := range inverse {
		assert.Equal(t, id, forward[name])
	}
}

func TestResolveRoundTrip(t *testing.T) {
	for _, n := range KnownNames() {
		s, ok := n.Canonical()
		require.True(t, ok, "known name %d has no canonical string", n.ID)
		assert.Equal(t, n, Resolve(s))
		assert.True(t, n.Known())
		assert.Equal(t, s, n.String())
		assert.Equal(t, s, n.ID.String())
	}
	assert.Len(t, KnownNames(), int(idCount)-1)
}

func TestResolve(t *testing.T) {
	cases := []struct {
		text     string
		expected Name
	}{
		{"ipsource", Name{ID: IPSource}},
		{"ipdestination", Name{ID: IPDestination}},
		{"ip6source", Name{ID: IP6Source}},
		{"ip6_offset", Name{ID: IP6Offset}},
		{"ip5source", Name{ID: Unknown, Raw: "ip5source"}},
		{"unknownkey", Name{ID: Unknown, Raw: "unknownkey"}},
		{"IPSOURCE", Name{ID: Unknown, Raw: "IPSOURCE"}},
		{"", Name{ID: Unknown, Raw: ""}},
	}
	for _, c := range cases {
		t.Run(c.text, func(t *testing.T) {
			assert.Equal(t, c.expected, Resolve(c.text))
		})
	}
}

func TestUnknownName(t *testing.T) {
	n := Resolve("not-a-key")
	assert.False(t, n.Known())
	assert.Equal(t, "not-a-key", n.Raw)

	s, ok := n.Canonical()
	assert.False(t, ok)
	assert.Empty(t, s)
	assert.Equal(t, "not-a-key", n.String())
	assert.Equal(t, "unknown", Unknown.String())
}

func TestCheckTables(t *testing.T) {
	t.Run("Consistent tables pass", func(t *testing.T) {
		forward := map[string]ID{"a": 1, "b": 2}
		inverse := map[ID]string{1: "a", 2: "b"}
		assert.NoError(t, checkTables(forward, inverse, 2))
	})

	t.Run("Cardinality mismatch", func(t *testing.T) {
		forward := map[string]ID{"a": 1, "b": 1}
		inverse := map[ID]string{1: "a"}
		err := checkTables(forward, inverse, 1)
		assert.ErrorIs(t, err, ErrNameTable)
	})

	t.Run("Missing identifier", func(t *testing.T) {
		forward := map[string]ID{"a": 1}
		inverse := map[ID]string{1: "a"}
		err := checkTables(forward, inverse, 2)
		assert.ErrorIs(t, err, ErrNameTable)
	})

	t.Run("Unknown identifier in table", func(t *testing.T) {
		forward := map[string]ID{"a": Unknown}
		inverse := map[ID]string{Unknown: "a"}
		err := checkTables(forward, inverse, 1)
		assert.ErrorIs(t, err, ErrNameTable)
		assert.Contains(t, err.Error(), "unknown identifier")
	})

	t.Run("Tables disagree", func(t *testing.T) {
		forward := map[string]ID{"a": 1, "b": 2}
		inverse := map[ID]string{1: "b", 2: "a"}
		err := checkTables(forward, inverse, 2)
		assert.ErrorIs(t, err, ErrNameTable)
	})
}
