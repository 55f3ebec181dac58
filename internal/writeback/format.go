package writeback

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// Indent is the indentation used for every YAML document written back.
const Indent = 2

// Format re-emits a YAML buffer in canonical form: 2-space indentation,
// key order and comments kept, unicode left unescaped. Returns the
// original buffer unchanged if the file is not YAML or does not parse.
func Format(content []byte, filePath string) []byte {
	if !IsDocument(filePath) {
		return content
	}
	docs, err := decodeAll(content)
	if err != nil || len(docs) == 0 {
		return content
	}
	formatted, err := Encode(docs...)
	if err != nil {
		return content
	}
	return formatted
}

// Encode serializes one or more documents as a YAML stream.
func Encode(docs ...*yaml.Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(Indent)
	for _, doc := range docs {
		if err := enc.Encode(doc); err != nil {
			return nil, err
		}
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
