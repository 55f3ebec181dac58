package writeback

import (
	"fmt"
	"os"
	"path"

	billy "github.com/go-git/go-billy/v5"
	"gopkg.in/yaml.v3"
)

// DefaultMode is applied to files that did not exist before Save.
const DefaultMode os.FileMode = 0o644

// Save writes data to name on fs. The write is atomic: content is written
// to a temp file in the same directory first, then renamed over name.
// Missing parent directories are created and the original file mode is
// preserved when the filesystem supports it.
func Save(fs billy.Filesystem, name string, data []byte) error {
	dir := path.Dir(name)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	tmp, err := fs.TempFile(dir, ".locedit-save-")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = fs.Remove(tmpName)
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("close temp: %w", err)
	}

	mode := DefaultMode
	if info, err := fs.Stat(name); err == nil {
		mode = info.Mode().Perm()
	}
	if ch, ok := fs.(billy.Chmod); ok {
		_ = ch.Chmod(tmpName, mode)
	}

	if err := fs.Rename(tmpName, name); err != nil {
		_ = fs.Remove(tmpName)
		return fmt.Errorf("rename temp to %s: %w", name, err)
	}
	return nil
}

// SaveDocument encodes doc and saves it to name.
func SaveDocument(fs billy.Filesystem, name string, doc *yaml.Node) error {
	data, err := Encode(doc)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	return Save(fs, name, data)
}
