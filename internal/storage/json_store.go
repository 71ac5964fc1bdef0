package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/julianstephens/summit/internal/logger"
)

const jsonStoreVersion = 1

type jsonFile struct {
	Version int               `json:"version"`
	Slots   map[string]string `json:"slots"`
}

// JSONStore keeps every slot in a single JSON file that is rewritten on Set.
type JSONStore struct {
	mu   sync.Mutex
	path string
	file *jsonFile
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Init creates the file if it does not exist yet and loads it otherwise.
func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.file = &jsonFile{Version: jsonStoreVersion, Slots: make(map[string]string)}
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	file := &jsonFile{}
	if err := json.Unmarshal(data, file); err != nil {
		logger.Warn("Storage file is corrupt, starting empty", "path", s.path, "error", err)
		if err := s.setAside(); err != nil {
			return err
		}
		file = &jsonFile{}
	}
	if file.Slots == nil {
		file.Slots = make(map[string]string)
	}
	if file.Version == 0 {
		file.Version = jsonStoreVersion
	}
	if file.Version > jsonStoreVersion {
		return fmt.Errorf("storage file version %d is newer than supported version %d", file.Version, jsonStoreVersion)
	}

	s.mu.Lock()
	s.file = file
	s.mu.Unlock()
	return nil
}

// setAside moves an unreadable file to <path>.corrupt-<timestamp> so the
// next save does not overwrite it.
func (s *JSONStore) setAside() error {
	aside := fmt.Sprintf("%s.corrupt-%s", s.path, time.Now().Format("20060102-150405"))
	if err := os.Rename(s.path, aside); err != nil {
		return fmt.Errorf("failed to move corrupt storage aside: %w", err)
	}
	logger.Info("Moved corrupt storage file", "path", aside)
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) Get(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil, ErrNotLoaded
	}
	v, ok := s.file.Slots[key]
	if !ok {
		return nil, ErrNotFound
	}
	return []byte(v), nil
}

func (s *JSONStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return ErrNotLoaded
	}
	s.file.Slots[key] = string(value)
	return s.save()
}

// save writes through a temp file so a crash never leaves a torn file.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
