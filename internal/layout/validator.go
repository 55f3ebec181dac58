package layout

import (
	"strings"

	"github.com/agentic-research/locedit/api"
)

// DefaultRequiredRootFiles must sit directly in every language folder.
var DefaultRequiredRootFiles = []string{
	"metadata.yaml",
	"characters.yaml",
	"ui.yaml",
}

// Validator checks a Structure against a set of required root filenames.
type Validator struct {
	Required []string
}

// NewValidator returns a validator for required, or for
// DefaultRequiredRootFiles when none are given.
func NewValidator(required ...string) *Validator {
	if len(required) == 0 {
		required = DefaultRequiredRootFiles
	}
	return &Validator{Required: append([]string(nil), required...)}
}

// Validate matches required names case-insensitively against the files
// found directly in s.RootPath. A structure without a root is invalid.
func (v *Validator) Validate(s api.Structure) api.ValidationResult {
	if s.RootPath == "" {
		return api.ValidationResult{Valid: false, MissingFiles: []string{}}
	}

	found := make(map[string]bool, len(s.RootFiles()))
	for _, f := range s.RootFiles() {
		found[strings.ToLower(f)] = true
	}

	missing := []string{}
	for _, req := range v.Required {
		if !found[strings.ToLower(req)] {
			missing = append(missing, req)
		}
	}
	return api.ValidationResult{Valid: len(missing) == 0, MissingFiles: missing}
}
