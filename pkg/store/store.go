// Package store implements storedefs.Store on top of a bbolt database.
//
// The database keeps the history of inputs to the interactive interpreter and
// variables shared by all interpreters using the same database.
package store

import (
	"time"

	bolt "go.etcd.io/bbolt"

	"src.rambutan.dev/pkg/logutil"
	"src.rambutan.dev/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

const (
	bucketCmd = "cmd"
	bucketVar = "var"
)

// DBStore is the permanent storage backend for the interpreter.
type DBStore interface {
	storedefs.Store
	Close() error
}

type dbStore struct {
	db *bolt.DB
}

func dbWithDefaultOptions(dbname string) (*bolt.DB, error) {
	db, err := bolt.Open(dbname, 0644, &bolt.Options{Timeout: time.Second})
	logger.Println("opened database", dbname, err)
	return db, err
}

// NewStore creates a new Store from the given file.
func NewStore(dbname string) (DBStore, error) {
	db, err := dbWithDefaultOptions(dbname)
	if err != nil {
		return nil, err
	}
	return NewStoreFromDB(db)
}

// NewStoreFromDB creates a new Store from a bolt DB, creating the buckets if
// they do not exist yet.
func NewStoreFromDB(db *bolt.DB) (DBStore, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{bucketCmd, bucketVar} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &dbStore{db}, nil
}

// Close closes the database.
func (s *dbStore) Close() error {
	return s.db.Close()
}
