// Package library owns the persistent, ordered collection of characters.
// Insertion order is display order. The whole collection is the unit of
// persistence: every successful mutation ends with a full pretty-printed
// JSON overwrite of the backing file. Persistence failures are logged and
// swallowed; the in-memory state stays authoritative until the next load.
package library

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/animatux/animatux/internal/model"
)

// Converter turns an APNG file into an animated WebP sibling, returning the
// output path. Satisfied by the convert service.
type Converter interface {
	Convert(ctx context.Context, inputPath string) (string, error)
}

// snapshot is the on-disk shape of the library file.
type snapshot struct {
	Characters []model.Character `json:"characters"`
}

// Store manages the character collection and its persistence. All methods
// are safe for concurrent use: Add runs on background goroutines while the
// orchestrator tick reads from the UI thread.
type Store struct {
	path      string
	converter Converter
	logger    *log.Logger

	mutex        sync.RWMutex
	characters   []model.Character
	defaultSpeed int
	defaultScale float32
}

// NewStore creates a library store persisting at path. converter may be nil,
// in which case APNG inputs are kept as-is (degraded, still playable as a
// static image).
func NewStore(path string, converter Converter, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		path:         path,
		converter:    converter,
		logger:       logger,
		defaultScale: model.DefaultScale,
	}
}

// SetDefaults sets the speed and scale applied to newly added characters.
func (s *Store) SetDefaults(speed int, scale float32) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.defaultSpeed = speed
	s.defaultScale = scale
}

// Load reads the persisted snapshot. A missing or corrupt file yields an
// empty library, never an error.
func (s *Store) Load() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.characters = nil

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read library, starting empty", "path", s.path, "err", err)
		}
		return
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn("corrupt library file, starting empty", "path", s.path, "err", err)
		return
	}
	s.characters = snap.Characters
}

// save overwrites the persisted snapshot. The caller must hold the mutex.
// Failures are logged, not returned.
func (s *Store) save() {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		s.logger.Warn("failed to create library directory", "path", s.path, "err", err)
		return
	}

	data, err := json.MarshalIndent(snapshot{Characters: s.characters}, "", "  ")
	if err != nil {
		s.logger.Warn("failed to encode library", "err", err)
		return
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		s.logger.Warn("failed to write library", "path", s.path, "err", err)
	}
}

// Add registers a new character from a user-picked file. APNG inputs are
// converted to animated WebP first; on conversion failure the original path
// is kept so the character still exists in degraded form. The display name
// is derived from the final file name. Conversion runs without holding the
// lock, so concurrent readers stay live during it.
func (s *Store) Add(path string) error {
	if !model.IsSupportedMedia(path) {
		return ErrInvalidExtension
	}

	finalPath := path
	if model.IsAPNG(path) && s.converter != nil {
		converted, err := s.converter.Convert(context.Background(), path)
		if err != nil {
			s.logger.Warn("APNG conversion failed, keeping original", "path", path, "err", err)
		} else {
			finalPath = converted
		}
	}

	return s.AddNamed(finalPath, model.DeriveName(finalPath))
}

// AddNamed registers a character with an explicit name and no conversion.
// This is the entry point used after a workshop download, which converts
// its own files. New characters start with the store's default speed and
// scale.
func (s *Store) AddNamed(path, name string) error {
	if !model.IsSupportedMedia(path) {
		return ErrInvalidExtension
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.indexByPath(path); ok {
		return ErrDuplicatePath
	}

	s.characters = append(s.characters, model.Character{
		Name:  name,
		Path:  path,
		Speed: s.defaultSpeed,
		Scale: s.defaultScale,
	})
	s.save()
	return nil
}

// Remove deletes the character at index.
func (s *Store) Remove(index int) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if index < 0 || index >= len(s.characters) {
		return ErrIndexOutOfRange
	}
	s.characters = append(s.characters[:index], s.characters[index+1:]...)
	s.save()
	return nil
}

// indexByPath is the lookup body; the caller must hold the mutex.
func (s *Store) indexByPath(path string) (int, bool) {
	for i := range s.characters {
		if s.characters[i].Path == path {
			return i, true
		}
	}
	return 0, false
}

// IndexByPath looks up a character by exact source path.
func (s *Store) IndexByPath(path string) (int, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.indexByPath(path)
}

// SetEnabled toggles whether an overlay window should exist for the character.
func (s *Store) SetEnabled(index int, enabled bool) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if index < 0 || index >= len(s.characters) {
		return ErrIndexOutOfRange
	}
	s.characters[index].Enabled = enabled
	s.save()
	return nil
}

// UpdateSettings sets the playback speed and render scale of a character.
func (s *Store) UpdateSettings(index int, speed int, scale float32) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if index < 0 || index >= len(s.characters) {
		return ErrIndexOutOfRange
	}
	s.characters[index].Speed = speed
	s.characters[index].Scale = scale
	s.save()
	return nil
}

// UpdatePosition records the last observed overlay window position.
func (s *Store) UpdatePosition(index int, pos model.Point) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if index < 0 || index >= len(s.characters) {
		return ErrIndexOutOfRange
	}
	p := pos
	s.characters[index].WindowPos = &p
	s.save()
	return nil
}

// Characters returns a defensive copy of the collection in display order.
func (s *Store) Characters() []model.Character {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	out := make([]model.Character, len(s.characters))
	copy(out, s.characters)
	return out
}

// Get returns a copy of the character at index.
func (s *Store) Get(index int) (model.Character, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if index < 0 || index >= len(s.characters) {
		return model.Character{}, false
	}
	return s.characters[index], true
}

// Len returns the number of characters in the library.
func (s *Store) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.characters)
}
