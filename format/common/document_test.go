package common

import (
	"testing"

	"github.com/netsampler/flowkey/key"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type documented struct{}

func (documented) Document() map[string]interface{} {
	return map[string]interface{}{"name": "web"}
}

func (documented) Key() []byte {
	return []byte("web")
}

func TestDocument(t *testing.T) {
	def, err := key.ParseDefinition("ipsource,group:ipdestination:lan:wan")
	require.NoError(t, err)

	t.Run("Definition", func(t *testing.T) {
		k, doc, ok := Document(def)
		require.True(t, ok)
		assert.Equal(t, []byte("ipsource,group:ipdestination:lan:wan"), k)
		assert.Equal(t, "ipsource,group:ipdestination:lan:wan", doc["definition"])
		keys := doc["keys"].([]interface{})
		require.Len(t, keys, 2)
		assert.Equal(t, map[string]interface{}{
			"type":  "name",
			"name":  "ipsource",
			"known": true,
		}, keys[0])
		assert.Equal(t, map[string]interface{}{
			"type":     "function",
			"function": "group",
			"known":    true,
			"key": map[string]interface{}{
				"type":  "name",
				"name":  "ipdestination",
				"known": true,
			},
			"groups": []interface{}{"lan", "wan"},
		}, keys[1])
	})

	t.Run("Definition pointer", func(t *testing.T) {
		_, doc, ok := Document(&def)
		require.True(t, ok)
		assert.Equal(t, def.String(), doc["definition"])

		var nilDef *key.Definition
		_, _, ok = Document(nilDef)
		assert.False(t, ok)
	})

	t.Run("Expression", func(t *testing.T) {
		k, doc, ok := Document(key.CountryFunction{Arg: "ipsource"})
		require.True(t, ok)
		assert.Equal(t, []byte("country:ipsource"), k)
		assert.Equal(t, "ipsource", doc["arg"])
	})

	t.Run("Documenter", func(t *testing.T) {
		k, doc, ok := Document(documented{})
		require.True(t, ok)
		assert.Equal(t, []byte("web"), k)
		assert.Equal(t, "web", doc["name"])
	})

	t.Run("Unsupported", func(t *testing.T) {
		_, _, ok := Document(42)
		assert.False(t, ok)
	})
}

func TestExpressionDocumentUnknown(t *testing.T) {
	e, err := key.ParseExpression("custom:ip5source:[country:agent]")
	require.NoError(t, err)
	doc := ExpressionDocument(e)
	assert.Equal(t, "custom", doc["function"])
	assert.Equal(t, false, doc["known"])
	args := doc["args"].([]interface{})
	require.Len(t, args, 2)
	assert.Equal(t, map[string]interface{}{
		"type":  "name",
		"name":  "ip5source",
		"known": false,
	}, args[0])
	assert.Equal(t, "country", args[1].(map[string]interface{})["function"])

	assert.Equal(t, "invalid", ExpressionDocument(nil)["type"])
}
