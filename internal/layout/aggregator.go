package layout

import (
	"sort"
	"strings"

	"github.com/agentic-research/locedit/api"
	"github.com/agentic-research/locedit/internal/notify"
	"go.uber.org/zap"
)

// FlagFile is the optional language flag image inside a language folder.
const FlagFile = "flag.png"

// Aggregator discovers every valid language folder under a localization root.
type Aggregator struct {
	Scanner   *Scanner
	Validator *Validator
	Notifier  notify.Notifier
	Log       *zap.Logger
}

// NewAggregator returns an aggregator that discards notifications and logs.
func NewAggregator(scanner *Scanner, validator *Validator) *Aggregator {
	return &Aggregator{
		Scanner:   scanner,
		Validator: validator,
		Notifier:  notify.Nop{},
		Log:       zap.NewNop(),
	}
}

// Language is a candidate language folder.
type Language struct {
	Code     string
	Path     string
	FlagPath string
}

// IsLanguageCode reports whether name looks like an ISO 639-1 code:
// exactly two ASCII letters, any case.
func IsLanguageCode(name string) bool {
	if len(name) != 2 {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i] | 0x20
		if c < 'a' || c > 'z' {
			return false
		}
	}
	return true
}

// Languages lists the candidate language folders under root, sorted by code.
// Folders whose names differ only in case share a code; the first one
// listed is kept. A missing root yields nil.
func (a *Aggregator) Languages(root string) []Language {
	names, err := a.Scanner.Subdirs(root)
	if err != nil {
		a.Log.Debug("list languages", zap.String("root", root), zap.Error(err))
		return nil
	}
	var langs []Language
	seen := make(map[string]string)
	for _, name := range names {
		if !IsLanguageCode(name) {
			continue
		}
		dir := a.Scanner.FS.Join(root, name)
		lang := Language{Code: strings.ToLower(name), Path: dir}
		if first, dup := seen[lang.Code]; dup {
			a.Log.Warn("duplicate language folder ignored",
				zap.String("language", lang.Code),
				zap.String("kept", first),
				zap.String("ignored", dir))
			continue
		}
		seen[lang.Code] = dir
		flag := a.Scanner.FS.Join(dir, FlagFile)
		if fi, err := a.Scanner.FS.Stat(flag); err == nil && !fi.IsDir() {
			lang.FlagPath = flag
		}
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i].Code < langs[j].Code })
	return langs
}

// Aggregate scans and validates every language folder under root.
// Invalid folders are reported through the notifier and left out; the
// remaining folders are still processed.
func (a *Aggregator) Aggregate(root string) map[string]api.Structure {
	out := make(map[string]api.Structure)
	for _, lang := range a.Languages(root) {
		res := a.Scanner.Scan(lang.Path)
		for _, skip := range res.Skipped {
			a.Log.Warn("language subtree skipped",
				zap.String("language", lang.Code),
				zap.String("path", skip.Path),
				zap.Error(skip.Err))
		}

		vr := a.Validator.Validate(res.Structure)
		if !vr.Valid {
			msg := "Validation failed for " + lang.Code + ": " + vr.Message()
			a.Log.Warn("invalid language folder",
				zap.String("language", lang.Code),
				zap.Strings("missing", vr.MissingFiles))
			a.Notifier.Notify(msg, notify.Warning, notify.Long)
			continue
		}
		out[lang.Code] = res.Structure
	}
	return out
}
