package common

import (
	"testing"

	"github.com/netsampler/flowkey/key"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	cases := []struct {
		text     string
		expected string
	}{
		{"ipsource", "[name(ipsource)]"},
		{"ip5source", "[unknown(ip5source)]"},
		{"country:ipsource", "[country(\"ipsource\")]"},
		{"group:ipdestination:lan:wan", "[group(name(ipdestination); lan, wan)]"},
		{"custom:[group:agent:g1]:x", "[func custom(group(name(agent); g1), unknown(x))]"},
		{"ipsource,ipdestination", "[name(ipsource) name(ipdestination)]"},
	}
	for _, c := range cases {
		t.Run(c.text, func(t *testing.T) {
			def, err := key.ParseDefinition(c.text)
			require.NoError(t, err)
			assert.Equal(t, c.expected, DescribeDefinition(def))
		})
	}
}

func TestFormatDocumentText(t *testing.T) {
	doc := map[string]interface{}{
		"name":   "web",
		"value":  "bytes",
		"groups": []interface{}{"lan", "wan"},
		"key": map[string]interface{}{
			"type":  "name",
			"known": true,
		},
	}
	assert.Equal(t,
		`groups=["lan","wan"] key={known:true,type:"name"} name="web" value="bytes"`,
		FormatDocumentText(doc, nil))
	assert.Equal(t, `value="bytes" name="web"`, FormatDocumentText(doc, []string{"value", "missing", "name"}))
	assert.Equal(t, `"name":"web"`, FormatDocumentCustom(doc, []string{"name"}, `"`, ",", ":"))
}
