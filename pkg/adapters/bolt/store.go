// Package bolt stores analysis reports in a bbolt database file.
package bolt

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/fsa/internal/logging"
	"github.com/aretw0/fsa/pkg/domain"
	bolt "go.etcd.io/bbolt"
)

var defaultBucket = []byte("reports")

// Store implements ports.ReportStore on a single bbolt bucket.
// bbolt serializes writers itself, so Store is safe for concurrent use.
type Store struct {
	db     *bolt.DB
	bucket []byte
	logger *slog.Logger
}

type Option func(*Store)

// WithBucket overrides the bucket name (default "reports").
func WithBucket(name string) Option {
	return func(s *Store) {
		s.bucket = []byte(name)
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// Open opens (or creates) the database file and ensures the bucket exists.
func Open(filename string, opts ...Option) (*Store, error) {
	s := &Store{
		bucket: defaultBucket,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	db, err := bolt.Open(filename, 0644, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(s.bucket)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create bucket %q: %w", s.bucket, err)
	}

	s.db = db
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists the report.
func (s *Store) Save(ctx context.Context, name string, report *domain.Report) error {
	if name == "" {
		return fmt.Errorf("report name cannot be empty")
	}
	js, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	s.logger.Debug("bolt save", "name", name, "bytes", len(js))
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(name), js)
	})
}

// Load retrieves the report stored under name.
func (s *Store) Load(ctx context.Context, name string) (*domain.Report, error) {
	var report *domain.Report
	err := s.db.View(func(tx *bolt.Tx) error {
		bs := tx.Bucket(s.bucket).Get([]byte(name))
		if bs == nil {
			return domain.ErrReportNotFound
		}
		// bs is only valid inside the transaction; Unmarshal copies what it needs.
		var r domain.Report
		if err := json.Unmarshal(bs, &r); err != nil {
			return fmt.Errorf("failed to unmarshal report: %w", err)
		}
		report = &r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// Delete removes the report.
func (s *Store) Delete(ctx context.Context, name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(s.bucket).Delete([]byte(name))
	})
}

// List returns report names in key order, which bbolt keeps sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	names := []string{}
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(s.bucket).Cursor()
		for k, _ := c.First(); k != nil; k, _ = c.Next() {
			names = append(names, string(k))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return names, nil
}
