package workbook

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/agentic-research/locedit/api"
	"gopkg.in/yaml.v3"
)

// RootScalarKey is the leaf path of a document that is a single scalar.
const RootScalarKey = "value"

// MaxLeaves bounds the rows one document may flatten to. Alias expansion
// can multiply a small file far past what a sheet holds.
const MaxLeaves = 100_000

var (
	// ErrAliasCycle is returned for a document whose aliases refer back
	// to a node that contains them.
	ErrAliasCycle = errors.New("alias refers to an enclosing node")
	// ErrTooManyLeaves is returned when a document expands past MaxLeaves.
	ErrTooManyLeaves = fmt.Errorf("document expands to more than %d leaves", MaxLeaves)
)

// Flatten lists the leaves of doc in document order as
// [path, text, type] rows. Mapping keys extend the path with ".key",
// sequence items with "[i]". Empty collections are leaves of their own
// with text "{}" or "[]" and type "map" or "seq". Aliases are expanded.
func Flatten(doc *yaml.Node) ([]api.Row, error) {
	f := flattener{active: make(map[*yaml.Node]bool)}
	if err := f.walk(contentOf(doc), ""); err != nil {
		return nil, err
	}
	return f.rows, nil
}

type flattener struct {
	rows []api.Row
	// active holds the aliased nodes being expanded on the current path.
	active map[*yaml.Node]bool
}

func (f *flattener) emit(row api.Row) error {
	if len(f.rows) >= MaxLeaves {
		return ErrTooManyLeaves
	}
	f.rows = append(f.rows, row)
	return nil
}

func (f *flattener) walk(n *yaml.Node, prefix string) error {
	if n == nil {
		return nil
	}
	if n.Kind == yaml.AliasNode {
		target := n.Alias
		if target == nil {
			return nil
		}
		if f.active[target] {
			return fmt.Errorf("%s: %w", leafKey(prefix), ErrAliasCycle)
		}
		f.active[target] = true
		defer delete(f.active, target)
		return f.walk(target, prefix)
	}

	switch n.Kind {
	case yaml.MappingNode:
		if len(n.Content) == 0 {
			return f.emit(api.Row{leafKey(prefix), "{}", "map"})
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			if prefix != "" {
				key = prefix + "." + key
			}
			if err := f.walk(n.Content[i+1], key); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		if len(n.Content) == 0 {
			return f.emit(api.Row{leafKey(prefix), "[]", "seq"})
		}
		for i, item := range n.Content {
			if err := f.walk(item, prefix+"["+strconv.Itoa(i)+"]"); err != nil {
				return err
			}
		}
	default:
		text := n.Value
		typ := TypeName(n)
		if typ == "null" {
			text = ""
		}
		return f.emit(api.Row{leafKey(prefix), text, typ})
	}
	return nil
}

func leafKey(prefix string) string {
	if prefix == "" {
		return RootScalarKey
	}
	return prefix
}

// TypeName is the type recorded for a scalar: str, int, float, bool, null,
// timestamp or binary. Custom tags are reported as str.
func TypeName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "map"
	case yaml.SequenceNode:
		return "seq"
	}
	switch tag := n.ShortTag(); tag {
	case "!!int", "!!float", "!!bool", "!!null", "!!timestamp", "!!binary", "!!str":
		return strings.TrimPrefix(tag, "!!")
	default:
		return "str"
	}
}

// contentOf unwraps a document node.
func contentOf(doc *yaml.Node) *yaml.Node {
	if doc == nil || doc.Kind == 0 {
		return nil
	}
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil
		}
		return doc.Content[0]
	}
	return doc
}
