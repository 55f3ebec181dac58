package workbook

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/agentic-research/locedit/internal/layout"
)

// MaxSheetNameLength is the spreadsheet limit on sheet names, in characters.
const MaxSheetNameLength = 31

// ErrUnsafeName is returned for a sheet whose name would resolve to a file
// outside the import destination.
var ErrUnsafeName = errors.New("sheet name does not map to a safe file name")

const invalidSheetChars = `\/*[]:?`

// SanitizeSheetName makes name acceptable as a sheet name: forbidden
// characters become '_', the result is capped at MaxSheetNameLength
// characters, and an empty name becomes "Sheet".
func SanitizeSheetName(name string) string {
	name = strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalidSheetChars, r) {
			return '_'
		}
		return r
	}, name)
	name = truncate(name, MaxSheetNameLength)
	// Sheet names may not start or end with an apostrophe.
	if strings.HasPrefix(name, "'") {
		name = "_" + name[1:]
	}
	if strings.HasSuffix(name, "'") {
		name = name[:len(name)-1] + "_"
	}
	if name == "" {
		return "Sheet"
	}
	return name
}

// SheetName derives the unsanitized sheet name for a file at rel (slash
// separated, relative to the export root). rootName is the export root's
// base name; when it is a language folder name (en, en_test, en-US) and rel
// repeats it as its first segment, that segment is dropped.
func SheetName(rel, rootName string) string {
	segs := strings.Split(path.Clean(rel), "/")
	if len(segs) > 1 && isLanguageFolder(rootName) && strings.EqualFold(segs[0], rootName) {
		segs = segs[1:]
	}
	last := len(segs) - 1
	segs[last] = trimExt(segs[last])
	return strings.Join(segs, "_")
}

func isLanguageFolder(name string) bool {
	if len(name) < 2 || !layout.IsLanguageCode(name[:2]) {
		return false
	}
	return len(name) == 2 || name[2] == '_' || name[2] == '-'
}

func trimExt(name string) string {
	lower := strings.ToLower(name)
	for _, ext := range []string{".yaml", ".yml"} {
		if strings.HasSuffix(lower, ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// uniqueSheetName returns name, or name with a "~N" suffix when a sheet of
// that name (compared case-insensitively) is already taken. The chosen name
// is added to taken.
func uniqueSheetName(name string, taken map[string]bool) string {
	candidate := name
	for n := 2; taken[strings.ToLower(candidate)]; n++ {
		suffix := fmt.Sprintf("~%d", n)
		candidate = truncate(name, MaxSheetNameLength-len(suffix)) + suffix
	}
	taken[strings.ToLower(candidate)] = true
	return candidate
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// Naming maps sheet names back to file paths on import.
type Naming struct {
	// StandardNames are written as <name>.yaml at the language root.
	StandardNames []string
	// LikelySubdirs are prefixes that denote a subdirectory:
	// dialogues_intro becomes dialogues/intro.yaml.
	LikelySubdirs []string
}

// DefaultNaming returns the vocabulary used when none is configured.
func DefaultNaming() Naming {
	return Naming{
		StandardNames: []string{"metadata", "characters", "ui", "terms"},
		LikelySubdirs: []string{
			"dialogues", "levels", "screens", "scenes",
			"chapters", "quests", "items", "characters_data",
		},
	}
}

// FileName returns the slash-separated path, relative to the import
// destination, that sheet restores to.
func (n Naming) FileName(sheet string) (string, error) {
	name := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(sheet)), " ", "_")
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrUnsafeName)
	}

	if n.isStandard(name) {
		return name + ".yaml", nil
	}
	if code, rest, ok := strings.Cut(name, "_"); ok && layout.IsLanguageCode(code) && n.isStandard(rest) {
		return rest + ".yaml", nil
	}

	rel := name + ".yaml"
	if dir, rest := n.subdir(name); dir != "" {
		rel = dir + "/" + rest + ".yaml"
	}
	if err := checkRelative(rel); err != nil {
		return "", fmt.Errorf("%w: %q", err, sheet)
	}
	return rel, nil
}

func (n Naming) isStandard(name string) bool {
	for _, s := range n.StandardNames {
		if name == strings.ToLower(s) {
			return true
		}
	}
	return false
}

// subdir picks the longest configured subdirectory prefix of name that is
// followed by '_' and a non-empty remainder.
func (n Naming) subdir(name string) (dir, rest string) {
	for _, d := range n.LikelySubdirs {
		d = strings.ToLower(d)
		r, ok := strings.CutPrefix(name, d+"_")
		if ok && r != "" && len(d) > len(dir) {
			dir, rest = d, r
		}
	}
	return dir, rest
}

// checkRelative rejects paths that are absolute, contain backslashes or
// control characters, or climb out of their base directory.
func checkRelative(rel string) error {
	if strings.HasPrefix(rel, "/") || strings.ContainsAny(rel, "\\\x00") {
		return ErrUnsafeName
	}
	for _, seg := range strings.Split(rel, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return ErrUnsafeName
		}
	}
	return nil
}
