package workbook

import (
	"strings"

	"gopkg.in/yaml.v3"
)

func mappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func sequenceNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}

func documentOf(content *yaml.Node) *yaml.Node {
	return &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{content}}
}

// stringNode is always a string, quoted on output when the text would
// otherwise read as another type.
func stringNode(text string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: text}
}

// plainNode takes whatever type the text resolves to.
func plainNode(text string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: text}
}

func nullNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

// cellScalar is the node for a raw cell: blank cells stay empty strings,
// anything else resolves like a plain YAML scalar.
func cellScalar(text string) *yaml.Node {
	if text == "" {
		return stringNode("")
	}
	return plainNode(text)
}

// cellValue is cellScalar, except that text looking like embedded YAML or
// JSON ({...}, [...], or key: value across lines) is parsed.
func cellValue(text string) *yaml.Node {
	if n := parseEmbedded(text); n != nil {
		return n
	}
	return cellScalar(text)
}

func parseEmbedded(text string) *yaml.Node {
	s := strings.TrimSpace(text)
	structured := (strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}")) ||
		(strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")) ||
		(strings.Contains(s, ":") && strings.ContainsAny(s, "\r\n"))
	if !structured {
		return nil
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(s), &doc); err != nil {
		return nil
	}
	n := contentOf(&doc)
	if n == nil || n.ShortTag() == "!!null" {
		return nil
	}
	return n
}

// typedScalar rebuilds a leaf from its text and recorded type. Text that
// does not actually read as the recorded type falls back to cellValue.
func typedScalar(text, typ string) *yaml.Node {
	switch typ {
	case "str":
		return stringNode(text)
	case "null":
		if text == "" {
			return nullNode()
		}
	case "map":
		if text == "{}" {
			return mappingNode()
		}
	case "seq":
		if text == "[]" {
			return sequenceNode()
		}
	case "int", "float", "bool", "timestamp":
		if n := plainNode(text); n.ShortTag() == "!!"+typ {
			return n
		}
	case "binary":
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!binary", Value: text}
	}
	return cellValue(text)
}

// asMapping returns n when it is a mapping and {data: n} otherwise.
func asMapping(n *yaml.Node) *yaml.Node {
	if n == nil || n.ShortTag() == "!!null" {
		return mappingNode()
	}
	if n.Kind == yaml.MappingNode {
		return n
	}
	m := newMapBuilder()
	m.set("data", n)
	return m.node
}

// mapBuilder assembles a mapping node with dict semantics: setting an
// existing key replaces its value in place.
type mapBuilder struct {
	node  *yaml.Node
	index map[string]int
}

func newMapBuilder() *mapBuilder {
	return &mapBuilder{node: mappingNode(), index: make(map[string]int)}
}

func (m *mapBuilder) len() int { return len(m.index) }

func (m *mapBuilder) get(key string) *yaml.Node {
	i, ok := m.index[key]
	if !ok {
		return nil
	}
	return m.node.Content[i+1]
}

func (m *mapBuilder) set(key string, value *yaml.Node) {
	if i, ok := m.index[key]; ok {
		m.node.Content[i+1] = value
		return
	}
	m.index[key] = len(m.node.Content)
	m.node.Content = append(m.node.Content, stringNode(key), value)
}
