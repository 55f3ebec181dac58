package writeback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestFormat_ReindentsYAML(t *testing.T) {
	input := []byte("b:    1\na:\n    c: \"x\"\n")
	got := Format(input, "ui.yaml")
	assert.Equal(t, "b: 1\na:\n  c: \"x\"\n", string(got))
}

func TestFormat_KeepsUnicode(t *testing.T) {
	input := []byte("title:   \"Привет, мир\"\n")
	got := Format(input, "ui.yaml")
	assert.Equal(t, "title: \"Привет, мир\"\n", string(got))
}

func TestFormat_NonYAMLPassthrough(t *testing.T) {
	input := []byte("{\"a\":    1}")
	assert.Equal(t, input, Format(input, "data.json"))
}

func TestFormat_InvalidYAMLPassthrough(t *testing.T) {
	input := []byte("a: b\nc: d: e\n")
	assert.Equal(t, input, Format(input, "ui.yaml"), "unparseable YAML should return original buffer")
}

func TestEncode(t *testing.T) {
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("k:\n      v: 1\n"), &doc))
	out, err := Encode(&doc)
	require.NoError(t, err)
	assert.Equal(t, "k:\n  v: 1\n", string(out))
}
