// Package config persists global application settings as a single JSON
// snapshot under the user config directory. Loading never fails the caller:
// a missing or corrupt file yields compiled-in defaults. Saving overwrites
// the whole file; failures are logged and swallowed so the app stays usable
// with a read-only config directory (persistence is simply lost).
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/animatux/animatux/internal/model"
)

// Default values
const (
	DefaultSpeed        = 0 // media native timing
	DefaultScale        = model.DefaultScale
	DefaultWindowWidth  = 400.0
	DefaultWindowHeight = 520.0
)

// Settings holds the persisted global preferences.
type Settings struct {
	CurrentImagePath string  `json:"current_image_path,omitempty"`
	Speed            int     `json:"speed"`
	Scale            float32 `json:"image_scale"`
	WindowWidth      float32 `json:"window_width"`
	WindowHeight     float32 `json:"window_height"`
}

// DefaultSettings returns the compiled-in defaults.
func DefaultSettings() Settings {
	return Settings{
		Speed:        DefaultSpeed,
		Scale:        DefaultScale,
		WindowWidth:  DefaultWindowWidth,
		WindowHeight: DefaultWindowHeight,
	}
}

// Store manages loading and saving the settings snapshot.
type Store struct {
	path   string
	logger *log.Logger
}

// NewStore creates a settings store persisting at path.
func NewStore(path string, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{path: path, logger: logger}
}

// Load reads the settings snapshot, returning defaults on any error.
func (s *Store) Load() Settings {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("failed to read settings, using defaults", "path", s.path, "err", err)
		}
		return DefaultSettings()
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, &settings); err != nil {
		s.logger.Warn("corrupt settings file, using defaults", "path", s.path, "err", err)
		return DefaultSettings()
	}
	return settings
}

// Save overwrites the settings snapshot. Failures are logged, not returned.
func (s *Store) Save(settings Settings) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		s.logger.Warn("failed to create settings directory", "path", s.path, "err", err)
		return
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		s.logger.Warn("failed to encode settings", "err", err)
		return
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		s.logger.Warn("failed to write settings", "path", s.path, "err", err)
	}
}
