package formation

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// LibraryFile is the file, inside the data directory, holding saved formations.
const LibraryFile = "formations.json"

var (
	// ErrInvalidFormation is returned when imported JSON is not a formation.
	ErrInvalidFormation = errors.New("formation: invalid formation data")
	// ErrNotFound is returned when a formation id is not in the library.
	ErrNotFound = errors.New("formation: not found")
)

// Library persists formations as a JSON array in a single file.
type Library struct {
	path string
	now  func() time.Time
}

// NewLibrary returns a library stored under dataDir.
func NewLibrary(dataDir string) *Library {
	return &Library{path: filepath.Join(dataDir, LibraryFile), now: time.Now}
}

// Path is the backing file.
func (l *Library) Path() string { return l.path }

func (l *Library) timestamp() string {
	return l.now().UTC().Format(time.RFC3339)
}

// Formations returns every saved formation. A missing file is an empty library.
func (l *Library) Formations() ([]Formation, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return []Formation{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read library: %w", err)
	}
	var fs []Formation
	if err := json.Unmarshal(data, &fs); err != nil {
		return nil, fmt.Errorf("parse library %s: %w", l.path, err)
	}
	return fs, nil
}

// Get returns one saved formation.
func (l *Library) Get(id string) (Formation, error) {
	fs, err := l.Formations()
	if err != nil {
		return Formation{}, err
	}
	for _, f := range fs {
		if f.ID == id {
			return f, nil
		}
	}
	return Formation{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Save inserts or replaces f (matched by id) and returns the stored copy.
// updatedAt is always refreshed; createdAt is reset on insert.
func (l *Library) Save(f Formation) (Formation, error) {
	fs, err := l.Formations()
	if err != nil {
		return Formation{}, err
	}
	stored := f.Clone()
	stored.UpdatedAt = l.timestamp()

	idx := -1
	for i := range fs {
		if fs[i].ID == f.ID {
			idx = i
			break
		}
	}
	if idx >= 0 {
		fs[idx] = stored
	} else {
		stored.CreatedAt = l.timestamp()
		fs = append(fs, stored)
	}
	if err := l.write(fs); err != nil {
		return Formation{}, err
	}
	return stored, nil
}

// Delete removes a formation by id. Missing ids are not an error.
func (l *Library) Delete(id string) error {
	fs, err := l.Formations()
	if err != nil {
		return err
	}
	kept := fs[:0]
	for _, f := range fs {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	return l.write(kept)
}

func (l *Library) write(fs []Formation) error {
	data, err := json.Marshal(fs)
	if err != nil {
		return fmt.Errorf("encode library: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write library: %w", err)
	}
	if err := os.Rename(tmp, l.path); err != nil {
		return fmt.Errorf("replace library: %w", err)
	}
	return nil
}

// ExportJSON renders f as indented JSON.
func ExportJSON(f Formation) ([]byte, error) {
	return json.MarshalIndent(f, "", "  ")
}

// ImportJSON parses an exported formation. The result gets a new id and
// fresh timestamps so it never collides with the exported copy.
func (l *Library) ImportJSON(data []byte) (Formation, error) {
	var shape struct {
		Players json.RawMessage `json:"players"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return Formation{}, fmt.Errorf("%w: %v", ErrInvalidFormation, err)
	}
	trimmed := strings.TrimSpace(string(shape.Players))
	if !strings.HasPrefix(trimmed, "[") {
		return Formation{}, fmt.Errorf("%w: missing players array", ErrInvalidFormation)
	}
	var f Formation
	if err := json.Unmarshal(data, &f); err != nil {
		return Formation{}, fmt.Errorf("%w: %v", ErrInvalidFormation, err)
	}
	if f.Drawings == nil {
		f.Drawings = []DrawingElement{}
	}
	ts := l.timestamp()
	f.ID = NewID()
	f.CreatedAt = ts
	f.UpdatedAt = ts
	return f, nil
}

// DefaultFileSlug names exports whose formation name has no usable characters.
const DefaultFileSlug = "formacion"

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	unsafeRun     = regexp.MustCompile(`[/\\:*?"<>|\x00-\x1f\x7f-]+`)
)

// FileSlug is the download file name for a formation name: lower-cased,
// whitespace and path-unsafe characters folded into single dashes, leading
// and trailing dots and dashes dropped.
func FileSlug(name string) string {
	s := whitespaceRun.ReplaceAllString(strings.ToLower(name), "-")
	s = unsafeRun.ReplaceAllString(s, "-")
	s = strings.Trim(s, ".-")
	if s == "" {
		s = DefaultFileSlug
	}
	return s + ".json"
}

// Download writes f as <slug>.json into dir and returns the written path.
func Download(f Formation, dir string) (string, error) {
	data, err := ExportJSON(f)
	if err != nil {
		return "", fmt.Errorf("encode formation: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	name := FileSlug(f.Name)
	if filepath.Base(name) != name {
		return "", fmt.Errorf("export name %q: %w", name, ErrInvalidFormation)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
