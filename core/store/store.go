package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/scopelab/eegscope/core"
)

// ErrNotFound is returned when no session is stored under a key.
var ErrNotFound = errors.New("session not found")

// Store persists session snapshots as one JSON file per recording key. The
// key must be a plain file name without path separators.
type Store struct {
	dir string
}

// New opens a store in the given directory, creating it if necessary.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, "cannot create session store %s", dir)
	}
	return &Store{dir: dir}, nil
}

// Save writes the snapshot under the given key. The write goes through a
// temporary file, a partial write never replaces the previous session.
func (s *Store) Save(key string, snapshot core.Snapshot) error {
	raw, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return errors.Wrapf(err, "cannot marshal session %s", key)
	}

	temp, err := os.CreateTemp(s.dir, "session-*.tmp")
	if err != nil {
		return errors.Wrap(err, "cannot create session file")
	}
	if _, err := temp.Write(raw); err != nil {
		temp.Close()
		os.Remove(temp.Name())
		return errors.Wrapf(err, "cannot write session %s", key)
	}
	if err := temp.Close(); err != nil {
		os.Remove(temp.Name())
		return errors.Wrapf(err, "cannot write session %s", key)
	}
	if err := os.Rename(temp.Name(), s.path(key)); err != nil {
		os.Remove(temp.Name())
		return errors.Wrapf(err, "cannot store session %s", key)
	}
	return nil
}

// Load reads the snapshot stored under the given key.
func (s *Store) Load(key string) (core.Snapshot, error) {
	raw, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return core.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return core.Snapshot{}, errors.Wrapf(err, "cannot read session %s", key)
	}

	var result core.Snapshot
	if err := json.Unmarshal(raw, &result); err != nil {
		return core.Snapshot{}, errors.Wrapf(err, "cannot parse session %s", key)
	}
	return result, nil
}

// Keys lists the stored session keys in lexical order.
func (s *Store) Keys() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot list session store %s", s.dir)
	}

	result := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		result = append(result, strings.TrimSuffix(name, ".json"))
	}
	return result, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
