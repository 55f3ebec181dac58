package workbook

import (
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"
)

func FuzzFileName(f *testing.F) {
	f.Add("ui")
	f.Add("en_characters")
	f.Add("dialogues_scene_01")
	f.Add("..")
	f.Add("a/../../b")
	f.Add("Sheet~2")

	n := DefaultNaming()
	f.Fuzz(func(t *testing.T, sheet string) {
		rel, err := n.FileName(sheet)
		if err != nil {
			return
		}
		if !strings.HasSuffix(rel, ".yaml") {
			t.Fatalf("FileName(%q) = %q, want .yaml suffix", sheet, rel)
		}
		if err := checkRelative(rel); err != nil {
			t.Fatalf("FileName(%q) = %q escapes its folder", sheet, rel)
		}
	})
}

func FuzzSheetRoundTrip(f *testing.F) {
	f.Add("title: Hello\n")
	f.Add("a:\n  b: [1, 2, {c: d}]\n  e: ~\n")
	f.Add("text: |\n  line one\n  line two\n")
	f.Add("base: &b {x: 1}\nref: *b\n")
	f.Add("empty: {}\nlist: []\n")

	f.Fuzz(func(t *testing.T, src string) {
		var doc yaml.Node
		if err := yaml.Unmarshal([]byte(src), &doc); err != nil {
			return
		}
		root := contentOf(&doc)
		if root == nil || root.Kind != yaml.MappingNode {
			return
		}

		fs := memfs.New()
		if err := util.WriteFile(fs, "/f/doc.yaml", []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
		tr := NewTranscoder(fs)
		wb, report := tr.Encode("/f")
		if report.Success != 1 {
			return
		}
		docs, report := tr.Decode(wb)
		if report.Success != 1 || len(docs) != 1 {
			t.Fatalf("decode: %+v", report)
		}

		want, err := Flatten(&doc)
		if err != nil {
			return
		}
		got, err := Flatten(docs[0].Node)
		if err != nil {
			t.Fatal(err)
		}
		if len(want) != len(got) {
			t.Fatalf("rows: want %d, got %d", len(want), len(got))
		}
		for i := range want {
			if strings.Join(want[i], "\x00") != strings.Join(got[i], "\x00") {
				t.Fatalf("row %d: want %q, got %q", i, want[i], got[i])
			}
		}
	})
}
