package cache

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// Store maps an artifact identifier and stage to a file under baseDir.
// Writes are atomic: content lands in a temp file that is renamed into place.
type Store struct {
	baseDir string
	rename  func(oldpath, newpath string) error
	remove  func(name string) error
}

// ErrSourceKept reports an Import whose artifact was committed but whose
// source file could not be removed afterwards
var ErrSourceKept = errors.New("imported source not removed")

const tempDirName = ".tmp"

// exportExts are derived files written next to stage artifacts
var exportExts = []string{".docx"}

// Entry summarises the cached stages of one identifier
type Entry struct {
	ID     string
	Stages []Stage
}

// New creates a Store rooted at baseDir. Call Init before writing.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, rename: os.Rename, remove: os.Remove}
}

// Init creates the stage directories and the scratch directory
func (s *Store) Init() error {
	for _, stage := range Stages {
		if err := os.MkdirAll(s.Dir(stage), 0755); err != nil {
			return fmt.Errorf("create %s dir: %w", stage, err)
		}
	}
	if err := os.MkdirAll(s.TempDir(), 0755); err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	return nil
}

// TempDir is the scratch space for external tools. It sits on the same
// filesystem as the stage directories so results can be renamed into place.
func (s *Store) TempDir() string {
	return filepath.Join(s.baseDir, tempDirName)
}

// Dir is the directory holding a stage's artifacts
func (s *Store) Dir(stage Stage) string {
	return filepath.Join(s.baseDir, stage.dir())
}

// Path is where the artifact for id and stage lives
func (s *Store) Path(id string, stage Stage) string {
	return filepath.Join(s.Dir(stage), id+stage.Ext())
}

// Exists reports whether a complete, non-empty artifact is present
func (s *Store) Exists(id string, stage Stage) bool {
	info, err := os.Stat(s.Path(id, stage))
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Size() > 0
}

// Read returns the artifact content
func (s *Store) Read(id string, stage Stage) (string, error) {
	data, err := os.ReadFile(s.Path(id, stage))
	if err != nil {
		return "", fmt.Errorf("read %s artifact %s: %w", stage, id, err)
	}
	return string(data), nil
}

// Write stores content for id and stage, replacing any prior artifact
func (s *Store) Write(id string, stage Stage, content string) error {
	return s.WriteFrom(id, stage, strings.NewReader(content))
}

// WriteFrom streams r into the artifact for id and stage. On any failure the
// temp file is removed and a previously cached artifact is left untouched.
func (s *Store) WriteFrom(id string, stage Stage, r io.Reader) (err error) {
	dir := s.Dir(stage)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create %s dir: %w", stage, err)
	}

	tmp, err := os.CreateTemp(dir, "."+id+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = io.Copy(tmp, r); err != nil {
		return fmt.Errorf("write %s artifact %s: %w", stage, id, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s artifact %s: %w", stage, id, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s artifact %s: %w", stage, id, err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("chmod %s artifact %s: %w", stage, id, err)
	}
	if err = os.Rename(tmp.Name(), s.Path(id, stage)); err != nil {
		return fmt.Errorf("commit %s artifact %s: %w", stage, id, err)
	}
	return nil
}

// Import moves an already-written file into the artifact slot for id and stage.
// Used for files produced by external tools in the stage directory.
// The artifact is usable whenever the returned error is nil or wraps
// ErrSourceKept.
func (s *Store) Import(id string, stage Stage, src string) error {
	if err := s.rename(src, s.Path(id, stage)); err == nil {
		return nil
	}

	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer f.Close()

	if err := s.WriteFrom(id, stage, f); err != nil {
		return err
	}
	if err := s.remove(src); err != nil {
		return fmt.Errorf("%w: %v", ErrSourceKept, err)
	}
	return nil
}

// PartialFiles lists temp files left in the stage directories by writes
// that never committed
func (s *Store) PartialFiles() ([]string, error) {
	var out []string
	for _, stage := range Stages {
		matches, err := filepath.Glob(filepath.Join(s.Dir(stage), ".*.tmp"))
		if err != nil {
			return nil, fmt.Errorf("list %s temp files: %w", stage, err)
		}
		out = append(out, matches...)
	}
	return out, nil
}

// Remove deletes every cached artifact of id, including exports
func (s *Store) Remove(id string) error {
	for _, stage := range Stages {
		paths := []string{s.Path(id, stage)}
		for _, ext := range exportExts {
			paths = append(paths, filepath.Join(s.Dir(stage), id+ext))
		}
		for _, p := range paths {
			if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("remove %s artifact %s: %w", stage, id, err)
			}
		}
	}
	return nil
}

// Entries lists cached identifiers, sorted, with the stages present for each
func (s *Store) Entries() ([]Entry, error) {
	found := map[string][]Stage{}

	for _, stage := range Stages {
		files, err := os.ReadDir(s.Dir(stage))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("list %s dir: %w", stage, err)
		}
		for _, f := range files {
			name := f.Name()
			if f.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != stage.Ext() {
				continue
			}
			id := strings.TrimSuffix(name, stage.Ext())
			if s.Exists(id, stage) {
				found[id] = append(found[id], stage)
			}
		}
	}

	entries := make([]Entry, 0, len(found))
	for id, stages := range found {
		entries = append(entries, Entry{ID: id, Stages: stages})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

// Has reports whether the entry includes stage
func (e Entry) Has(stage Stage) bool {
	return slices.Contains(e.Stages, stage)
}
