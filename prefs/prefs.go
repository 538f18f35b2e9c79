// ABOUTME: Durable dashboard preferences stored in BadgerDB
// ABOUTME: Persists integration connection flags between runs under the durable connection policy
package prefs

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/dgraph-io/badger/v3"
)

const connectionPrefix = "connection:"

// Store is a small key/value wrapper; one process holds the directory lock at a time.
type Store struct {
	db *badger.DB
	mu sync.RWMutex
}

// Open opens (creating if needed) the store in dir.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create prefs dir: %w", err)
	}

	opts := badger.DefaultOptions(dir).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open prefs: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenInMemory opens a store that never touches disk.
func OpenInMemory() (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to open prefs: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		result, err = item.ValueCopy(nil)
		return err
	})
	return result, err
}

func (s *Store) keysWithPrefix(prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().KeyCopy(nil)))
		}
		return nil
	})
	return keys, err
}

// Connected reports the stored flag for one provider; unknown providers are off.
func (s *Store) Connected(provider string) (bool, error) {
	v, err := s.get(connectionPrefix + provider)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return string(v) == "1", nil
}

// LoadConnections returns every stored provider flag.
func (s *Store) LoadConnections() (map[string]bool, error) {
	keys, err := s.keysWithPrefix(connectionPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}

	flags := make(map[string]bool, len(keys))
	for _, key := range keys {
		provider := strings.TrimPrefix(key, connectionPrefix)
		on, err := s.Connected(provider)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", provider, err)
		}
		flags[provider] = on
	}
	return flags, nil
}

// SaveConnections writes all flags in one transaction.
func (s *Store) SaveConnections(flags map[string]bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(txn *badger.Txn) error {
		for provider, on := range flags {
			v := []byte("0")
			if on {
				v = []byte("1")
			}
			if err := txn.Set([]byte(connectionPrefix+provider), v); err != nil {
				return err
			}
		}
		return nil
	})
}

// Reset drops every stored preference.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.DropAll()
}
