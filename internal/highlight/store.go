package highlight

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultStoreSize bounds how many background results are kept waiting for
// their file to be selected.
const DefaultStoreSize = 256

// Store keeps background results until the file they belong to is
// selected. The least recently stored results are evicted first.
type Store struct {
	results *lru.Cache[string, Result]
}

// NewStore creates a store holding at most size results.
func NewStore(size int) *Store {
	if size <= 0 {
		size = DefaultStoreSize
	}
	c, err := lru.New[string, Result](size)
	if err != nil {
		// Only possible for a non-positive size.
		panic(err)
	}
	return &Store{results: c}
}

// Put records a result, replacing any earlier one for the same path.
func (s *Store) Put(r Result) {
	s.results.Add(r.Path, r)
}

// Take removes and returns the result for path.
func (s *Store) Take(path string) (Result, bool) {
	r, ok := s.results.Peek(path)
	if ok {
		s.results.Remove(path)
	}
	return r, ok
}

// Discard drops any result for path.
func (s *Store) Discard(path string) {
	s.results.Remove(path)
}

// Purge drops every result, e.g. when a refresh makes them stale.
func (s *Store) Purge() {
	s.results.Purge()
}

// Len returns the number of stored results.
func (s *Store) Len() int {
	return s.results.Len()
}
