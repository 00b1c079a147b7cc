// Package registry persists the method names chosen for generated client
// operations so that regenerating from an unchanged or extended document
// never renames an existing method.
//
// The on-disk format is a JSON object mapping "verb:path" keys to a
// three element array: [name, summary, description].
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrDuplicateName is matched by *DuplicateNameError.
var ErrDuplicateName = errors.New("duplicate method name")

// Entry is the persisted record for one operation.
type Entry struct {
	Name        string
	Summary     string
	Description string
}

// MarshalJSON encodes the entry as [name, summary, description].
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]string{e.Name, e.Summary, e.Description})
}

// UnmarshalJSON accepts [name], [name, summary] or [name, summary, description].
func (e *Entry) UnmarshalJSON(data []byte) error {
	var parts []string
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) == 0 || len(parts) > 3 || parts[0] == "" {
		return fmt.Errorf("registry entry must be [name, summary, description], got %s", data)
	}
	*e = Entry{Name: parts[0]}
	if len(parts) > 1 {
		e.Summary = parts[1]
	}
	if len(parts) > 2 {
		e.Description = parts[2]
	}
	return nil
}

// Key builds the registry key for an operation.
func Key(method, path string) string {
	return strings.ToLower(method) + ":" + path
}

// SplitKey is the inverse of Key.
func SplitKey(key string) (method, path string) {
	method, path, _ = strings.Cut(key, ":")
	return strings.ToUpper(method), path
}

// DuplicateNameError reports a derived name that is already taken by
// another operation.
type DuplicateNameError struct {
	Name     string
	Existing string
	Incoming string
}

func (e *DuplicateNameError) Error() string {
	em, ep := SplitKey(e.Existing)
	im, ip := SplitKey(e.Incoming)
	return fmt.Sprintf("duplicate method name %q: assigned to %s %s, derived again for %s %s", e.Name, em, ep, im, ip)
}

func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}

// Store is the in-memory view of one registry file.
type Store struct {
	path    string
	entries map[string]Entry
	byName  map[string]string
	dirty   bool
}

// New returns an empty store that will be written to path.
func New(path string) *Store {
	return &Store{
		path:    path,
		entries: make(map[string]Entry),
		byName:  make(map[string]string),
	}
}

// Open reads the registry at path. A missing file yields an empty store.
func Open(path string) (*Store, error) {
	s := New(path)
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read name registry %s: %w", path, err)
	}
	var entries map[string]Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse name registry %s: %w", path, err)
	}
	for _, key := range sortedKeys(entries) {
		if err := s.add(key, entries[key]); err != nil {
			return nil, fmt.Errorf("name registry %s: %w", path, err)
		}
	}
	return s, nil
}

// Path returns the file the store reads from and writes to.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of registered operations.
func (s *Store) Len() int {
	return len(s.entries)
}

// Lookup returns the entry registered for key.
func (s *Store) Lookup(key string) (Entry, bool) {
	e, ok := s.entries[key]
	return e, ok
}

// owner returns the key a method name is assigned to.
func (s *Store) owner(name string) (string, bool) {
	key, ok := s.byName[name]
	return key, ok
}

// Assign records e for key. Re-assigning the same name to the same key is a
// no-op; a name held by another key fails with *DuplicateNameError.
func (s *Store) Assign(key string, e Entry) error {
	if cur, ok := s.entries[key]; ok && cur == e {
		return nil
	}
	if err := s.add(key, e); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

func (s *Store) add(key string, e Entry) error {
	if e.Name == "" {
		return fmt.Errorf("empty method name for %s", key)
	}
	if owner, ok := s.owner(e.Name); ok && owner != key {
		return &DuplicateNameError{Name: e.Name, Existing: owner, Incoming: key}
	}
	if prev, ok := s.entries[key]; ok {
		delete(s.byName, prev.Name)
	}
	s.entries[key] = e
	s.byName[e.Name] = key
	return nil
}

// Keys returns all registered keys in sorted order.
func (s *Store) Keys() []string {
	return sortedKeys(s.entries)
}

// Dirty reports whether the store has unsaved assignments.
func (s *Store) Dirty() bool {
	return s.dirty
}

// Save writes the registry when it has unsaved assignments. The file is
// replaced through a rename so readers never observe a partial write.
func (s *Store) Save() error {
	if !s.dirty {
		return nil
	}
	data, err := json.MarshalIndent(s.entries, "", "    ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create registry directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary registry file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write registry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write registry: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace registry %s: %w", s.path, err)
	}
	s.dirty = false
	return nil
}

// FileName returns the registry file name for an optional API version.
func FileName(version string) string {
	if version == "" {
		return "method_names.json"
	}
	return "method_names_" + version + ".json"
}

func sortedKeys(m map[string]Entry) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
