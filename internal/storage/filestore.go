// Package storage persists generated announcement text across process
// restarts.
package storage

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/heraldfm/herald/internal/domain"
)

// Compile-time interface check.
var _ domain.AnnouncementStore = (*FileStore)(nil)

// Key builds the composite announcement cache key. It includes language
// and mode: the same track announces differently per protocol, and a
// wizard announcement must never be served to a smart-mode caller.
func Key(title, artist, lang, mode string) string {
	return title + "|" + artist + "|" + lang + "|" + mode
}

// FileStore is a JSON-file-backed key→text map. Every Put rewrites the
// whole file synchronously before returning. Entries are never updated
// in place and never expire; deleting the file externally is the only
// eviction.
type FileStore struct {
	mu      sync.RWMutex
	path    string
	entries map[string]string
	log     *log.Logger
}

// NewFileStore loads the cache at path. A missing or corrupt file is
// non-fatal: it yields an empty cache and a logged warning. Startup
// never aborts over a cache.
func NewFileStore(path string, logger *log.Logger) *FileStore {
	s := &FileStore{
		path:    path,
		entries: make(map[string]string),
		log:     logger,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("cache load failed, starting empty", "path", path, "err", err)
		}
		return s
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		logger.Warn("cache file corrupt, starting empty", "path", path, "err", err)
		s.entries = make(map[string]string)
		return s
	}
	if s.entries == nil {
		// A file holding JSON null unmarshals without error but leaves
		// the map nil, and the first Put would panic.
		logger.Warn("cache file holds null, starting empty", "path", path)
		s.entries = make(map[string]string)
	}

	logger.Info("announcement cache loaded", "path", path, "entries", len(s.entries))
	return s
}

// Get returns the cached text for key.
func (s *FileStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.entries[key]
	return text, ok
}

// Put stores text under key and persists the whole map to disk. A
// persist failure is logged and swallowed; the in-memory entry is kept
// for the remainder of the process and the pipeline carries on.
func (s *FileStore) Put(key, text string) {
	s.mu.Lock()
	s.entries[key] = text
	data, err := json.MarshalIndent(s.entries, "", "  ")
	count := len(s.entries)
	s.mu.Unlock()

	if err != nil {
		s.log.Error("cache marshal failed", "err", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		s.log.Error("cache persist failed", "path", s.path, "err", err)
		return
	}
	s.log.Debug("cache persisted", "entries", count)
}

// size returns the number of cached entries.
func (s *FileStore) size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
