package bolt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"
)

var stateBucket = []byte("State")

// DB provides KV operations backed by a local bbolt file
type DB struct {
	db *bbolt.DB
}

// Open opens (or creates) the bolt file at path and ensures the state bucket exists
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 2 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(stateBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create state bucket: %w", err)
	}

	return &DB{db: db}, nil
}

func (d *DB) Get(ctx context.Context, key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := d.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(stateBucket)
		if b == nil {
			return fmt.Errorf("bucket %s not found", stateBucket)
		}
		v := b.Get([]byte(key))
		if v != nil {
			// v is only valid for the life of the transaction
			value = string(v)
			found = true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return value, found, nil
}

func (d *DB) Set(ctx context.Context, key, value string) error {
	err := d.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(stateBucket)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// Close closes the bolt file
func (d *DB) Close() error {
	return d.db.Close()
}
