package persist

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// ErrNoRecord is returned by Load when nothing has been saved yet.
var ErrNoRecord = errors.New("no saved record")

// Record is the progress carried between stages and runs.
type Record struct {
	Stage     int     `yaml:"stage"`
	Health    int     `yaml:"health"`
	Energy    float64 `yaml:"energy"`
	Lives     int     `yaml:"lives"`
	Score     int     `yaml:"score"`
	HighScore int     `yaml:"high_score"`
}

type Store interface {
	Load() (Record, error)
	Save(Record) error
}

// FileStore keeps a Record as YAML on disk. Saves are written to a temp
// file and renamed into place.
type FileStore struct {
	Path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (s *FileStore) Load() (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return Record{}, ErrNoRecord
	}
	if err != nil {
		return Record{}, fmt.Errorf("read %s: %w", s.Path, err)
	}
	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("decode %s: %w", s.Path, err)
	}
	return rec, nil
}

func (s *FileStore) Save(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".save-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("save %s: %w", s.Path, err)
	}
	return nil
}

// MemoryStore keeps the record in process.
type MemoryStore struct {
	mu    sync.Mutex
	rec   Record
	saved bool
	Saves int
}

func (m *MemoryStore) Load() (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.saved {
		return Record{}, ErrNoRecord
	}
	return m.rec, nil
}

func (m *MemoryStore) Save(rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = rec
	m.saved = true
	m.Saves++
	return nil
}
