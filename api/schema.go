package api

import (
	"sort"
	"strings"
)

// Structure is the result of scanning a language folder.
// It maps every visited directory to the YAML files found directly inside it.
type Structure struct {
	// RootPath is the normalized entry point of the scan.
	RootPath string `json:"root_path"`
	// Entries maps a normalized directory path to its sorted YAML filenames.
	// Subdirectories are represented by their own keys, never nested.
	Entries map[string][]string `json:"entries"`
}

// RootFiles returns the files found directly in RootPath.
func (s Structure) RootFiles() []string {
	if s.RootPath == "" {
		return nil
	}
	return s.Entries[s.RootPath]
}

// Dirs returns the scanned directory keys in lexical order.
func (s Structure) Dirs() []string {
	dirs := make([]string, 0, len(s.Entries))
	for d := range s.Entries {
		dirs = append(dirs, d)
	}
	sort.Strings(dirs)
	return dirs
}

// FileCount is the total number of YAML files across all entries.
func (s Structure) FileCount() int {
	n := 0
	for _, files := range s.Entries {
		n += len(files)
	}
	return n
}

// ValidationResult reports whether a Structure has all required root files.
type ValidationResult struct {
	Valid        bool     `json:"valid"`
	MissingFiles []string `json:"missing_files"`
}

// Message renders the result for display. Empty when valid.
func (r ValidationResult) Message() string {
	if r.Valid {
		return ""
	}
	if len(r.MissingFiles) == 0 {
		return "No language folder selected"
	}
	return "Missing required files in root: " + strings.Join(r.MissingFiles, ", ")
}

// LanguageManifest lists the languages available under a localization root.
// It is serialized as language_manifest.json and read by the game at load time.
type LanguageManifest struct {
	Languages []LanguageEntry `json:"Languages"`
}

// LanguageEntry is a single manifest item.
type LanguageEntry struct {
	Code string `json:"Code"`
}
