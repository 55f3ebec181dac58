package writeback

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValidationError contains structured information about a syntax error.
type ValidationError struct {
	FilePath string
	Line     uint32 // 0-indexed
	Column   uint32 // 0-indexed
	Message  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s", e.FilePath, e.Line+1, e.Column+1, e.Message)
}

var lineRe = regexp.MustCompile(`line (\d+)`)

// IsDocument reports whether filePath names a YAML document.
func IsDocument(filePath string) bool {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Validate parses content as a YAML stream and returns the first problem
// found. Files that are not YAML pass through without validation.
func Validate(content []byte, filePath string) error {
	errs := Errors(content, filePath)
	if len(errs) == 0 {
		return nil
	}
	return &errs[0]
}

// Errors returns every diagnostic for content: the parser's syntax error,
// if any, or else one entry per duplicated mapping key. Returns nil for
// valid YAML and for files that are not YAML.
func Errors(content []byte, filePath string) []ValidationError {
	if !IsDocument(filePath) {
		return nil
	}

	docs, err := decodeAll(content)
	if err != nil {
		return []ValidationError{syntaxError(err, filePath)}
	}

	var errs []ValidationError
	for _, doc := range docs {
		collectDuplicates(doc, filePath, &errs)
	}
	sort.SliceStable(errs, func(i, j int) bool {
		if errs[i].Line != errs[j].Line {
			return errs[i].Line < errs[j].Line
		}
		return errs[i].Column < errs[j].Column
	})
	return errs
}

func decodeAll(content []byte) ([]*yaml.Node, error) {
	dec := yaml.NewDecoder(bytes.NewReader(content))
	var docs []*yaml.Node
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}
}

// syntaxError turns a yaml.v3 error ("yaml: line 3: mapping values are not
// allowed in this context") into a positioned ValidationError. yaml.v3
// reports no column for syntax errors, so Column stays 0.
func syntaxError(err error, filePath string) ValidationError {
	msg := strings.TrimPrefix(err.Error(), "yaml: ")
	ve := ValidationError{FilePath: filePath, Message: msg}
	if m := lineRe.FindStringSubmatch(msg); m != nil {
		if n, convErr := strconv.Atoi(m[1]); convErr == nil && n > 0 {
			ve.Line = uint32(n - 1)
		}
		msg = strings.TrimPrefix(msg, m[0]+": ")
		ve.Message = msg
	}
	return ve
}

func collectDuplicates(node *yaml.Node, filePath string, errs *[]ValidationError) {
	if node == nil {
		return
	}
	if node.Kind == yaml.MappingNode {
		seen := make(map[string]int, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if key.Kind != yaml.ScalarNode {
				continue
			}
			if first, dup := seen[key.Value]; dup {
				*errs = append(*errs, ValidationError{
					FilePath: filePath,
					Line:     position(key.Line),
					Column:   position(key.Column),
					Message:  fmt.Sprintf("mapping key %q already defined at line %d", key.Value, first),
				})
				continue
			}
			seen[key.Value] = key.Line
		}
	}
	for _, child := range node.Content {
		collectDuplicates(child, filePath, errs)
	}
}

func position(p int) uint32 {
	if p <= 0 {
		return 0
	}
	return uint32(p - 1)
}
