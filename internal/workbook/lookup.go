package workbook

import (
	"fmt"
	"strings"

	"github.com/ohler55/ojg/jp"
	"gopkg.in/yaml.v3"
)

// Lookup resolves a leaf path, as written in the Key column, against doc
// and returns the matching values. Paths starting with '$' are taken as
// JSONPath expressions verbatim.
func Lookup(doc *yaml.Node, leafPath string) ([]any, error) {
	content := contentOf(doc)
	if content == nil {
		return nil, nil
	}

	var data any
	if err := content.Decode(&data); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	data = normalizeKeys(data)

	if leafPath == RootScalarKey && content.Kind == yaml.ScalarNode {
		return []any{data}, nil
	}

	x, err := jp.ParseString(toJSONPath(leafPath))
	if err != nil {
		return nil, fmt.Errorf("invalid leaf path '%s': %w", leafPath, err)
	}
	return x.Get(data), nil
}

func toJSONPath(leafPath string) string {
	switch {
	case strings.HasPrefix(leafPath, "$"):
		return leafPath
	case leafPath == "":
		return "$"
	case strings.HasPrefix(leafPath, "["):
		return "$" + leafPath
	default:
		return "$." + leafPath
	}
}

// normalizeKeys converts maps with non-string keys, which YAML allows, to
// string-keyed maps that JSONPath can walk.
func normalizeKeys(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = normalizeKeys(item)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[fmt.Sprint(k)] = normalizeKeys(item)
		}
		return out
	case []any:
		for i, item := range t {
			t[i] = normalizeKeys(item)
		}
		return t
	default:
		return v
	}
}
