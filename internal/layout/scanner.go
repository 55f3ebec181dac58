package layout

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/agentic-research/locedit/api"
	billy "github.com/go-git/go-billy/v5"
	"go.uber.org/zap"
)

// DefaultMaxDepth bounds recursion so symlink loops cannot run away.
const DefaultMaxDepth = 64

// ErrDepthExceeded marks a directory that was not listed because it lies
// deeper than the scanner's MaxDepth.
var ErrDepthExceeded = errors.New("maximum scan depth exceeded")

// ErrAlreadyScanned marks a directory reached again through a symlink.
// Its contents were recorded under the first path that reached it.
var ErrAlreadyScanned = errors.New("directory already scanned through another path")

// maxLinkHops bounds symlink resolution of a single path.
const maxLinkHops = 40

// Skip records a directory whose subtree contributed nothing to a scan.
type Skip struct {
	Path string
	Err  error
}

func (s Skip) String() string {
	return fmt.Sprintf("%s: %v", s.Path, s.Err)
}

// ScanResult is a scanned structure plus the subtrees that were skipped.
type ScanResult struct {
	Structure api.Structure
	Skipped   []Skip
}

// Scanner walks folder trees on a billy filesystem.
type Scanner struct {
	FS       billy.Filesystem
	MaxDepth int
	Log      *zap.Logger
}

// NewScanner returns a scanner over fs limited to DefaultMaxDepth.
func NewScanner(fs billy.Filesystem) *Scanner {
	return &Scanner{
		FS:       fs,
		MaxDepth: DefaultMaxDepth,
		Log:      zap.NewNop(),
	}
}

// IsContentFile reports whether name is a YAML content file. Unity
// .yaml.meta sidecars are not content.
func IsContentFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".yaml") && !strings.HasSuffix(lower, ".yaml.meta")
}

// Scan builds the Structure of folder. A folder that does not exist or is
// not a directory yields an empty Entries map. Directories that cannot be
// listed are recorded in Skipped and their subtree is not explored.
func (s *Scanner) Scan(folder string) ScanResult {
	res := ScanResult{
		Structure: api.Structure{
			RootPath: Normalize(folder),
			Entries:  make(map[string][]string),
		},
	}
	if folder == "" || !s.isDir(folder) {
		return res
	}

	s.walk(folder, func(dir string, files []string) {
		key := Normalize(dir)
		if _, seen := res.Structure.Entries[key]; seen {
			return
		}
		res.Structure.Entries[key] = files
	}, &res.Skipped)

	if len(res.Skipped) > 0 {
		s.Log.Debug("scan skipped subtrees",
			zap.String("root", folder),
			zap.Int("skipped", len(res.Skipped)))
	}
	return res
}

// Files returns every content file under folder as slash-separated paths
// relative to folder, sorted. It applies the same discovery rule as Scan
// but keeps the original spelling of each path so the files can be opened.
func (s *Scanner) Files(folder string) ([]string, []Skip) {
	var skipped []Skip
	if folder == "" || !s.isDir(folder) {
		return nil, skipped
	}
	var out []string
	s.walk(folder, func(dir string, files []string) {
		rel := relativeTo(folder, dir)
		for _, f := range files {
			out = append(out, path.Join(rel, f))
		}
	}, &skipped)
	sort.Strings(out)
	return out, skipped
}

// Subdirs lists the immediate subdirectories of dir in listing order.
func (s *Scanner) Subdirs(dir string) ([]string, error) {
	infos, err := s.FS.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, fi := range infos {
		if s.resolveDir(s.FS.Join(dir, fi.Name()), fi) {
			names = append(names, fi.Name())
		}
	}
	return names, nil
}

func (s *Scanner) walk(root string, visit func(dir string, files []string), skipped *[]Skip) {
	maxDepth := s.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	visited := make(map[string]bool)
	var rec func(dir string, depth int)
	rec = func(dir string, depth int) {
		if depth > maxDepth {
			*skipped = append(*skipped, Skip{Path: dir, Err: ErrDepthExceeded})
			return
		}
		key := s.realPath(dir)
		if visited[key] {
			*skipped = append(*skipped, Skip{Path: dir, Err: ErrAlreadyScanned})
			return
		}
		visited[key] = true

		infos, err := s.FS.ReadDir(dir)
		if err != nil {
			*skipped = append(*skipped, Skip{Path: dir, Err: err})
			return
		}

		var files, dirs []string
		for _, fi := range infos {
			full := s.FS.Join(dir, fi.Name())
			switch {
			case s.resolveDir(full, fi):
				dirs = append(dirs, full)
			case IsContentFile(fi.Name()) && s.resolveFile(full, fi):
				files = append(files, fi.Name())
			}
		}
		sort.Strings(files)
		if files == nil {
			files = []string{}
		}
		visit(dir, files)

		for _, d := range dirs {
			rec(d, depth+1)
		}
	}
	rec(root, 0)
}

func (s *Scanner) isDir(p string) bool {
	fi, err := s.FS.Stat(p)
	return err == nil && fi.IsDir()
}

// resolveDir follows symlinks so linked folders are scanned like real ones.
func (s *Scanner) resolveDir(full string, fi os.FileInfo) bool {
	if fi.Mode()&os.ModeSymlink == 0 {
		return fi.IsDir()
	}
	return s.isDir(full)
}

func (s *Scanner) resolveFile(full string, fi os.FileInfo) bool {
	if fi.Mode()&os.ModeSymlink == 0 {
		return fi.Mode().IsRegular()
	}
	target, err := s.FS.Stat(full)
	return err == nil && target.Mode().IsRegular()
}

// realPath resolves every symlink in p so that one directory reached
// through different links yields one key. Filesystems without symlink
// support return p cleaned.
func (s *Scanner) realPath(p string) string {
	sl, ok := s.FS.(billy.Symlink)
	if !ok {
		return filepath.Clean(p)
	}
	hops := 0
	return evalSymlinks(sl, p, &hops)
}

func evalSymlinks(sl billy.Symlink, p string, hops *int) string {
	p = filepath.Clean(p)
	resolved := ""
	if filepath.IsAbs(p) {
		resolved = string(filepath.Separator)
	}
	for _, part := range strings.Split(p, string(filepath.Separator)) {
		if part == "" || part == "." {
			continue
		}
		next := filepath.Join(resolved, part)
		fi, err := sl.Lstat(next)
		if err != nil || fi.Mode()&os.ModeSymlink == 0 {
			resolved = next
			continue
		}
		*hops++
		target, err := sl.Readlink(next)
		if err != nil || *hops > maxLinkHops {
			resolved = next
			continue
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(resolved, target)
		}
		resolved = evalSymlinks(sl, target, hops)
	}
	if resolved == "" {
		return "."
	}
	return resolved
}

func relativeTo(root, dir string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." {
		return ""
	}
	return filepath.ToSlash(rel)
}
