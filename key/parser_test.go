package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func known(id ID) Name {
	return Name{ID: id}
}

func unknownName(raw string) Name {
	return Name{ID: Unknown, Raw: raw}
}

func TestParseKeyName(t *testing.T) {
	cases := []struct {
		text     string
		expected Name
	}{
		{"ipsource", known(IPSource)},
		{"ipdestination", known(IPDestination)},
		{"unknownkey", unknownName("unknownkey")},
		{"ip6source", known(IP6Source)},
		{"ip5source", unknownName("ip5source")},
		{"ip6_offset", known(IP6Offset)},
	}
	for _, c := range cases {
		t.Run(c.text, func(t *testing.T) {
			p := newParser(c.text)
			n, err := p.keyName()
			require.NoError(t, err)
			assert.Equal(t, c.expected, n)
			assert.Equal(t, len(c.text), p.pos)
		})
	}
}

func TestPeekFunctionName(t *testing.T) {
	cases := []struct {
		text string
		name string
		ok   bool
	}{
		{"group:ipsource:g1", "group", true},
		{"unknownfunc:[x:y]", "unknownfunc", true},
		{"ipsource", "", false},
		{"group", "", false},
		{"my_func:ipsource", "", false},
		{":ipsource", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		t.Run(c.text, func(t *testing.T) {
			p := newParser(c.text)
			got, ok := p.peekFunctionName()
			assert.Equal(t, c.ok, ok)
			assert.Equal(t, c.name, got)
			assert.Equal(t, 0, p.pos, "peek must not consume input")
		})
	}
}

func TestParseFunction(t *testing.T) {
	cases := []struct {
		text     string
		expected Function
	}{
		{
			"country:ipsource",
			CountryFunction{Arg: "ipsource"},
		},
		{
			"group:ipdestination:gro_up1",
			GroupFunction{Key: known(IPDestination), Groups: []string{"gro_up1"}},
		},
		{
			"group:ipsource:gro_up1:group2",
			GroupFunction{Key: known(IPSource), Groups: []string{"gro_up1", "group2"}},
		},
		{
			"group:ipsource:gro_up1:group2:_GROUP_THr33_",
			GroupFunction{Key: known(IPSource), Groups: []string{"gro_up1", "group2", "_GROUP_THr33_"}},
		},
		{
			"group:ipsource:g1:g1",
			GroupFunction{Key: known(IPSource), Groups: []string{"g1", "g1"}},
		},
		{
			"group:[country:ipsource]:eu",
			GroupFunction{Key: CountryFunction{Arg: "ipsource"}, Groups: []string{"eu"}},
		},
		{
			"unknownfunc:ipdestination",
			UnknownFunction{Name: "unknownfunc", Args: []Expression{known(IPDestination)}},
		},
		{
			"unknownfunc:[group:ipdestination:gro_up1:group2]",
			UnknownFunction{
				Name: "unknownfunc",
				Args: []Expression{
					GroupFunction{Key: known(IPDestination), Groups: []string{"gro_up1", "group2"}},
				},
			},
		},
		{
			"unknownfunc:ipdestination:[group:ipdestination:group1:group2]:unknownkey",
			UnknownFunction{
				Name: "unknownfunc",
				Args: []Expression{
					known(IPDestination),
					GroupFunction{Key: known(IPDestination), Groups: []string{"group1", "group2"}},
					unknownName("unknownkey"),
				},
			},
		},
	}
	for _, c := range cases {
		t.Run(c.text, func(t *testing.T) {
			p := newParser(c.text)
			fn, err := p.function()
			require.NoError(t, err)
			assert.Equal(t, c.expected, fn)
			assert.Equal(t, len(c.text), p.pos)
		})
	}
}

func TestParseFunctionDepth(t *testing.T) {
	text := "outer:ipsource:[inner:[group:ipdestination:g1]:agent]:ip5source"
	expected := UnknownFunction{
		Name: "outer",
		Args: []Expression{
			known(IPSource),
			UnknownFunction{
				Name: "inner",
				Args: []Expression{
					GroupFunction{Key: known(IPDestination), Groups: []string{"g1"}},
					known(Agent),
				},
			},
			unknownName("ip5source"),
		},
	}

	e, err := ParseExpression(text)
	require.NoError(t, err)
	assert.Equal(t, expected, e)
}

func TestParseFunctionFailure(t *testing.T) {
	cases := []string{
		"group:ipsource",
		"group:[ipsource]:g1",
		"country:",
		"country:[group:ipsource:g1]",
		"unknownfunc:",
		"unknownfunc:[group:ipsource:g1",
		"unknownfunc:[ipsource]",
		"ipsource",
	}
	for _, text := range cases {
		t.Run(text, func(t *testing.T) {
			p := newParser(text)
			_, err := p.function()
			assert.Error(t, err)
		})
	}
}

func TestParseExpression(t *testing.T) {
	cases := []struct {
		text     string
		expected Expression
	}{
		{"ipsource", known(IPSource)},
		{"country:ipsource", CountryFunction{Arg: "ipsource"}},
		{
			"unknownfunc:[group:ipsource:group1:group2]",
			UnknownFunction{
				Name: "unknownfunc",
				Args: []Expression{
					GroupFunction{Key: known(IPSource), Groups: []string{"group1", "group2"}},
				},
			},
		},
		{"group", unknownName("group")},
		{"country", unknownName("country")},
	}
	for _, c := range cases {
		t.Run(c.text, func(t *testing.T) {
			e, err := ParseExpression(c.text)
			require.NoError(t, err)
			assert.Equal(t, c.expected, e)
		})
	}
}

func TestKnownFunctions(t *testing.T) {
	assert.Equal(t, []string{FunctionCountry, FunctionGroup}, KnownFunctions())
}
