package margarita

import (
	"context"
	"io/fs"
	"path"
	"sync"
)

// MemoryStore holds snippets in an in-process map, keyed by slash-separated
// path. It backs embedded snippet sets and tests. Safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	snippets map[string]string
}

// NewMemoryStore creates an empty in-memory snippet store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snippets: make(map[string]string)}
}

// Put stores snippet source under the given path.
func (s *MemoryStore) Put(snippetPath, source string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snippets[canonicalMemoryPath(snippetPath)] = source
}

// Load fetches a snippet by path. The canonical form is the cleaned
// slash path.
func (s *MemoryStore) Load(ctx context.Context, snippetPath string) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}

	canonical := canonicalMemoryPath(snippetPath)
	s.mu.RLock()
	source, ok := s.snippets[canonical]
	s.mu.RUnlock()
	if !ok {
		return "", "", fs.ErrNotExist
	}
	return source, canonical, nil
}

// Name returns the driver name.
func (s *MemoryStore) Name() string {
	return DriverMemory
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}

// canonicalMemoryPath normalizes a snippet path so that spellings like
// "./a.marg" and "a.marg" address the same entry.
func canonicalMemoryPath(p string) string {
	return path.Clean("/" + p)
}
