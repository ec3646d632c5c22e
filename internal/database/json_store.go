package database

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"github.com/PixelCode01/syllabo/pkg/models"
)

const lockRetryInterval = 50 * time.Millisecond

// JSONStore persists the topic collection as a single JSON file mapping
// topic name to record. Saves go through a temp file in the same
// directory followed by a rename, so a crash mid-write never leaves a
// truncated store. Cross-process exclusion uses an advisory lock on a
// sidecar .lock file.
type JSONStore struct {
	path        string
	intervals   []int
	lockTimeout time.Duration
	lock        *flock.Flock
	log         *zap.Logger
}

// NewJSONStore creates a store backed by the file at path. The parent
// directory is created if needed.
func NewJSONStore(path string, intervals []int, lockTimeout time.Duration, log *zap.Logger) (*JSONStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, &PersistenceError{Op: "create data directory", Err: err}
	}
	return &JSONStore{
		path:        path,
		intervals:   intervals,
		lockTimeout: lockTimeout,
		lock:        flock.New(path + ".lock"),
		log:         log,
	}, nil
}

// Lock acquires the advisory file lock, polling until the bounded wait
// expires. Callers must invoke the release function on every exit path.
func (s *JSONStore) Lock(ctx context.Context) (func(), error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && s.lockTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.lockTimeout)
		defer cancel()
	}
	ok, err := s.lock.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return nil, &PersistenceError{Op: "acquire store lock", Err: err}
	}
	if !ok {
		return nil, &PersistenceError{Op: "acquire store lock", Err: fmt.Errorf("lock not acquired")}
	}
	return func() {
		if err := s.lock.Unlock(); err != nil {
			s.log.Warn("failed to release store lock", zap.Error(err))
		}
	}, nil
}

// Load reads the store file. A missing file is an empty collection.
func (s *JSONStore) Load() (map[string]*models.Topic, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return map[string]*models.Topic{}, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "read store file", Err: err}
	}

	var raw map[string]*models.Topic
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &PersistenceError{Op: "decode store file", Err: err}
	}

	topics := make(map[string]*models.Topic, len(raw))
	for name, t := range raw {
		if t == nil {
			s.log.Warn("skipping empty topic record", zap.String("topic", name))
			continue
		}
		if coerceTopic(name, t, s.intervals, s.log) {
			topics[name] = t
		}
	}
	return topics, nil
}

// Save writes the whole collection to a temp file and renames it over
// the store file.
func (s *JSONStore) Save(topics map[string]*models.Topic) error {
	data, err := json.MarshalIndent(topics, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "encode store", Err: err}
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return &PersistenceError{Op: "create temp store file", Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &PersistenceError{Op: "write temp store file", Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &PersistenceError{Op: "sync temp store file", Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &PersistenceError{Op: "close temp store file", Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &PersistenceError{Op: "replace store file", Err: err}
	}
	return nil
}

// Close is a no-op for the file-backed store.
func (s *JSONStore) Close() error {
	return nil
}
