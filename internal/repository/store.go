package repository

import (
	"encoding/json"
	"slices"
	"sync"

	"github.com/shravyakp25082007-tech/stockmate/internal/model"
)

// Record keys. They match the names used by the browser version so its
// exported data loads unchanged.
const (
	KeyCatalog      = "shopProducts"
	KeyDailyPlan    = "dailyPlan"
	KeyTransactions = "transactions"
)

// Store is the key-value persistence gateway.
type Store interface {
	// Load returns found=false when the key has never been saved.
	Load(key string) (value []byte, found bool, err error)
	Save(key string, value []byte) error
}

func loadJSON(store Store, key string, v interface{}) (bool, error) {
	data, found, err := store.Load(key)
	if err != nil {
		return false, &model.PersistenceError{Op: "load", Key: key, Err: err}
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, &model.PersistenceError{Op: "decode", Key: key, Err: err}
	}
	return true, nil
}

func saveJSON(store Store, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &model.PersistenceError{Op: "encode", Key: key, Err: err}
	}
	if err := store.Save(key, data); err != nil {
		return &model.PersistenceError{Op: "save", Key: key, Err: err}
	}
	return nil
}

type memoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemoryStore keeps records in process memory only.
func NewMemoryStore() Store {
	return &memoryStore{records: make(map[string][]byte)}
}

func (s *memoryStore) Load(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.records[key]
	return slices.Clone(v), ok, nil
}

func (s *memoryStore) Save(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = slices.Clone(value)
	return nil
}

