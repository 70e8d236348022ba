package repository

import (
	"slices"
	"time"

	"github.com/patrickmn/go-cache"
)

type cachedStore struct {
	next  Store
	cache *cache.Cache
}

// NewCachedStore serves repeated loads from memory for ttl. Saves go
// through to next first and only update the cache when they succeed.
func NewCachedStore(next Store, ttl time.Duration) Store {
	return &cachedStore{
		next:  next,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (s *cachedStore) Load(key string) ([]byte, bool, error) {
	if v, ok := s.cache.Get(key); ok {
		return slices.Clone(v.([]byte)), true, nil
	}
	data, found, err := s.next.Load(key)
	if err != nil || !found {
		return data, found, err
	}
	s.cache.Set(key, slices.Clone(data), cache.DefaultExpiration)
	return data, true, nil
}

func (s *cachedStore) Save(key string, value []byte) error {
	if err := s.next.Save(key, value); err != nil {
		s.cache.Delete(key)
		return err
	}
	s.cache.Set(key, slices.Clone(value), cache.DefaultExpiration)
	return nil
}
