package workbook

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agentic-research/locedit/api"
	"gopkg.in/yaml.v3"
)

// headerScanWidth is how many leading cells are inspected when deciding
// whether the first row is a header.
const headerScanWidth = 6

var typicalDataValues = map[string]bool{
	"true": true, "false": true, "yes": true, "no": true,
	"1": true, "0": true, "null": true, "none": true,
}

// decodeHeuristic reads a sheet laid out by hand. A header row selects
// one of three table shapes; without one, rows are key/value pairs.
func decodeHeuristic(rows []api.Row) *yaml.Node {
	if len(rows) == 0 {
		return mappingNode()
	}
	if looksLikeHeader(rows[0]) {
		return decodeHeadered(rows[1:], headerNames(rows[0]))
	}
	return decodeHeaderless(rows)
}

func looksLikeHeader(r api.Row) bool {
	for i, cell := range r {
		if i >= headerScanWidth {
			break
		}
		c := strings.TrimSpace(cell)
		if c != "" && !strings.HasSuffix(c, ":") && !isTypicalDataValue(c) {
			return true
		}
	}
	return false
}

func isTypicalDataValue(s string) bool {
	if typicalDataValues[strings.ToLower(s)] {
		return true
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func headerNames(r api.Row) []string {
	names := make([]string, len(r))
	for i, cell := range r {
		names[i] = strings.TrimSpace(cell)
		if names[i] == "" {
			names[i] = fmt.Sprintf("Column_%d", i)
		}
	}
	return names
}

func decodeHeadered(rows []api.Row, headers []string) *yaml.Node {
	switch {
	case len(headers) == 3 && headers[0] == "Category" && headers[1] == "Item_Index" && headers[2] == "Value":
		return decodeCategories(rows)
	case len(headers) >= 2 && headers[0] == "ID":
		return decodeKeyedTable(rows, headers, "item_")
	default:
		return decodeKeyedTable(rows, headers, "row_")
	}
}

// decodeCategories reads Category / Item_Index / Value rows. An item_N
// index appends to the category's list, any other index sets a key in the
// category's map, and an empty index appends.
func decodeCategories(rows []api.Row) *yaml.Node {
	result := newMapBuilder()
	for _, r := range rows {
		if r.Blank() {
			continue
		}
		category := r.Cell(0)
		if category == "" {
			continue
		}
		index := r.Cell(1)
		value := cellValue(r.Cell(2))

		coll := result.get(category)
		if coll == nil {
			coll = sequenceNode()
			result.set(category, coll)
		}

		switch {
		case strings.HasPrefix(index, "item_") || strings.TrimSpace(index) == "":
			if coll.Kind == yaml.MappingNode {
				coll.Content = append(coll.Content, stringNode(fmt.Sprintf("item_%d", len(coll.Content)/2+1)), value)
			} else {
				coll.Content = append(coll.Content, value)
			}
		default:
			if coll.Kind != yaml.MappingNode {
				coll = seqToMap(coll)
				result.set(category, coll)
			}
			setKey(coll, index, value)
		}
	}
	return result.node
}

// seqToMap converts a list collected so far into a map, keying the
// existing items item_1, item_2, ...
func seqToMap(seq *yaml.Node) *yaml.Node {
	m := mappingNode()
	for i, item := range seq.Content {
		m.Content = append(m.Content, stringNode(fmt.Sprintf("item_%d", i+1)), item)
	}
	return m
}

func setKey(m *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = value
			return
		}
	}
	m.Content = append(m.Content, stringNode(key), value)
}

// decodeKeyedTable maps the first column of each row to a map of the
// remaining headers. Rows without a key get fallbackPrefix plus a counter.
func decodeKeyedTable(rows []api.Row, headers []string, fallbackPrefix string) *yaml.Node {
	result := newMapBuilder()
	for _, r := range rows {
		if r.Blank() {
			continue
		}
		key := r.Cell(0)
		if key == "" {
			key = fmt.Sprintf("%s%d", fallbackPrefix, result.len()+1)
		}
		props := newMapBuilder()
		for i, h := range headers[1:] {
			props.set(h, cellValue(r.Cell(i+1)))
		}
		result.set(key, props.node)
	}
	return result.node
}

// decodeHeaderless reads key/value rows. In a single-column sheet each
// value is keyed item_N.
func decodeHeaderless(rows []api.Row) *yaml.Node {
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}

	result := newMapBuilder()
	for _, r := range rows {
		if r.Blank() || r.Cell(0) == "" {
			continue
		}
		if width >= 2 {
			result.set(strings.TrimSpace(r.Cell(0)), cellScalar(r.Cell(1)))
			continue
		}
		result.set(fmt.Sprintf("item_%d", result.len()+1), cellScalar(r.Cell(0)))
	}
	return result.node
}
