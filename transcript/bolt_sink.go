package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var transcriptsBucket = []byte("transcripts")

// BoltSink keeps transcripts in a single BoltDB file, keyed by their would-be path.
// The DB is opened per call so several processes can share the file.
type BoltSink struct {
	path string
}

func NewBoltSink(path string) *BoltSink {
	return &BoltSink{path: path}
}

func (s *BoltSink) open() (*bolt.DB, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create bolt directory: %w", err)
	}
	db, err := bolt.Open(s.path, 0o600, &bolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript store: %w", err)
	}
	return db, nil
}

// WriteFile stores content under key path, replacing any previous value
func (s *BoltSink) WriteFile(path, content string) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(transcriptsBucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(path), []byte(content))
	})
}

// ReadFile returns the transcript stored under path
func (s *BoltSink) ReadFile(path string) (string, error) {
	db, err := s.open()
	if err != nil {
		return "", err
	}
	defer func() { _ = db.Close() }()

	var out []byte
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(transcriptsBucket)
		if b == nil {
			return os.ErrNotExist
		}
		v := b.Get([]byte(path))
		if v == nil {
			return os.ErrNotExist
		}
		out = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("transcript %s: %w", path, err)
	}
	return string(out), nil
}

// Keys lists stored transcript paths in byte order
func (s *BoltSink) Keys() ([]string, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	var keys []string
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(transcriptsBucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}
