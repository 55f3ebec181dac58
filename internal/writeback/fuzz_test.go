package writeback

import (
	"testing"
)

func FuzzErrors(f *testing.F) {
	f.Add("a: 1\n")
	f.Add("a: b\nc: d: e\n")
	f.Add("a: 1\na: 2\n")
	f.Add("---\nx: [\n")
	f.Add("\tkey: value\n")

	f.Fuzz(func(t *testing.T, src string) {
		errs := Errors([]byte(src), "fuzz.yaml")
		for i := 1; i < len(errs); i++ {
			prev, cur := errs[i-1], errs[i]
			if cur.Line < prev.Line || (cur.Line == prev.Line && cur.Column < prev.Column) {
				t.Fatalf("errors out of order: %v before %v", prev, cur)
			}
		}
		if (len(errs) == 0) != (Validate([]byte(src), "fuzz.yaml") == nil) {
			t.Fatal("Validate disagrees with Errors")
		}
		if len(errs) == 0 {
			if out := Format([]byte(src), "fuzz.yaml"); len(Errors(out, "fuzz.yaml")) > 0 {
				t.Fatalf("Format produced invalid YAML from %q", src)
			}
		}
	})
}
