package workbook

import (
	"testing"

	"github.com/agentic-research/locedit/api"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		sheet api.Sheet
		want  Variant
	}{
		{"empty", api.Sheet{Name: "s", Rows: []api.Row{{"", " "}}}, VariantEmpty},
		{"no rows", api.Sheet{Name: "s"}, VariantEmpty},
		{"flattened", api.Sheet{Name: "s", Rows: []api.Row{{"Key", "Value", " Original YAML Type "}}}, VariantFlattened},
		{"legacy", api.Sheet{Name: "s", Rows: []api.Row{{"Type", "Content"}}}, VariantLegacy},
		{"heuristic", api.Sheet{Name: "s", Rows: []api.Row{{"ID", "Name"}}}, VariantHeuristic},
		{"partial header", api.Sheet{Name: "s", Rows: []api.Row{{"Key", "Value"}}}, VariantHeuristic},
		{"placeholder", api.Sheet{Name: "Empty", Rows: []api.Row{{PlaceholderText}}}, VariantPlaceholder},
		{"sheet named Empty", api.Sheet{Name: "Empty", Rows: []api.Row{{"a", "b"}}}, VariantHeuristic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.sheet))
		})
	}
}

func TestVariant_String(t *testing.T) {
	assert.Equal(t, "flattened", VariantFlattened.String())
	assert.Equal(t, "unknown", Variant(99).String())
}
