package store

import (
	bolt "go.etcd.io/bbolt"

	. "src.rambutan.dev/pkg/store/storedefs"
)

// Var gets the value of a shared variable.
func (s *dbStore) Var(name string) (string, error) {
	var value string
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bucketVar)).Get([]byte(name))
		if v == nil {
			return ErrNoVar
		}
		value = string(v)
		return nil
	})
	return value, err
}

// SetVar sets the value of a shared variable.
func (s *dbStore) SetVar(name, value string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketVar)).Put([]byte(name), []byte(value))
	})
}

// DelVar deletes a shared variable. Deleting a variable that does not exist is
// not an error.
func (s *dbStore) DelVar(name string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketVar)).Delete([]byte(name))
	})
}

// VarNames returns the names of all shared variables, sorted.
func (s *dbStore) VarNames() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bucketVar)).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}
