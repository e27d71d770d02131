package overlay

import (
	"github.com/charmbracelet/log"

	"github.com/animatux/animatux/internal/model"
)

// Library is the slice of the character store the orchestrator needs.
// Satisfied by *library.Store.
type Library interface {
	Characters() []model.Character
	IndexByPath(path string) (int, bool)
	SetEnabled(index int, enabled bool) error
	UpdateSettings(index int, speed int, scale float32) error
	UpdatePosition(index int, pos model.Point) error
}

// Manager drives the overlay window lifecycle: each tick it diffs the
// enabled characters against the live sessions, creates and destroys
// surfaces accordingly, and persists observed window positions.
type Manager struct {
	host     Host
	lib      Library
	logger   *log.Logger
	sessions map[string]*Session

	onToggleMain func()
}

// NewManager creates an orchestrator over the given host and library.
func NewManager(host Host, lib Library, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	return &Manager{
		host:     host,
		lib:      lib,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// SetToggleMainHandler wires the bring-main-window-forward gesture.
func (m *Manager) SetToggleMainHandler(fn func()) {
	m.onToggleMain = fn
}

// Tick runs one reconciliation pass plus position persistence. Call it at
// frame-equivalent cadence from the UI layer.
func (m *Manager) Tick() {
	m.Reconcile()
	m.SyncPositions()
}

// Reconcile diffs enabled characters against live sessions. New sessions
// are created in library order; sessions for disabled or removed
// characters are destroyed.
func (m *Manager) Reconcile() {
	enabled := make(map[string]bool)

	for _, c := range m.lib.Characters() {
		if !c.Enabled {
			continue
		}
		key := SessionKey(c.Path)
		enabled[key] = true
		if _, live := m.sessions[key]; !live {
			m.createSession(c)
		}
	}

	for key, sess := range m.sessions {
		if !enabled[key] {
			m.logger.Debug("destroying overlay session", "path", sess.Path)
			sess.surface.Close()
			delete(m.sessions, key)
		}
	}
}

// createSession opens an overlay window for an enabled character, seeding
// its placement from the stored position when one exists.
func (m *Manager) createSession(c model.Character) {
	key := SessionKey(c.Path)
	size := c.ScaledSize()

	var pos *model.Point
	var lastSaved *model.Point
	if c.WindowPos != nil {
		p := *c.WindowPos
		pos = &p
		saved := *c.WindowPos
		lastSaved = &saved
	}

	path := c.Path
	surface := m.host.CreateOverlay(
		Options{
			Key:      key,
			Title:    c.Name,
			Size:     model.Point{X: size, Y: size},
			Position: pos,
		},
		Events{
			OnClosed:         func() { m.handleClosed(key) },
			OnToggleSettings: func() { m.toggleSettings(key) },
			OnToggleMain:     func() { m.handleToggleMain() },
		},
	)

	surface.SetMedia(path, c.Speed)
	surface.Show()

	m.sessions[key] = &Session{
		Key:       key,
		Path:      path,
		surface:   surface,
		lastSaved: lastSaved,
	}
	m.logger.Debug("created overlay session", "path", path, "key", key)
}

// handleClosed reacts to the user closing an overlay window directly: the
// character is disabled in the library so the state machine converges.
func (m *Manager) handleClosed(key string) {
	sess, ok := m.sessions[key]
	if !ok {
		return
	}
	delete(m.sessions, key)

	if index, found := m.lib.IndexByPath(sess.Path); found {
		if err := m.lib.SetEnabled(index, false); err != nil {
			m.logger.Warn("failed to disable closed character", "path", sess.Path, "err", err)
		}
	}
}

// toggleSettings flips the live-edit panel of one session.
func (m *Manager) toggleSettings(key string) {
	sess, ok := m.sessions[key]
	if !ok {
		return
	}

	if sess.SettingsOpen {
		sess.SettingsOpen = false
		sess.surface.HideSettings()
		return
	}

	index, found := m.lib.IndexByPath(sess.Path)
	if !found {
		return
	}
	c := m.lib.Characters()[index]

	sess.SettingsOpen = true
	sess.surface.ShowSettings(Controls{
		Speed: c.Speed,
		Scale: c.Scale,
		OnSpeedChanged: func(speed int) {
			if index, found := m.lib.IndexByPath(sess.Path); found {
				current := m.lib.Characters()[index]
				if err := m.lib.UpdateSettings(index, speed, current.Scale); err == nil {
					sess.surface.SetMedia(sess.Path, speed)
				}
			}
		},
		OnScaleChanged: func(scale float32) {
			if index, found := m.lib.IndexByPath(sess.Path); found {
				current := m.lib.Characters()[index]
				if err := m.lib.UpdateSettings(index, current.Speed, scale); err == nil {
					size := model.BaseRenderSize * scale
					sess.surface.SetSize(model.Point{X: size, Y: size})
				}
			}
		},
	})
}

func (m *Manager) handleToggleMain() {
	if m.onToggleMain != nil {
		m.onToggleMain()
	}
}

// SyncPositions persists each live surface's on-screen position, writing
// only when it differs from the last persisted value so an idle window
// causes no redundant snapshot writes.
func (m *Manager) SyncPositions() {
	for _, sess := range m.sessions {
		pos, ok := sess.surface.Position()
		if !ok {
			continue
		}
		if sess.lastSaved != nil && *sess.lastSaved == pos {
			continue
		}

		index, found := m.lib.IndexByPath(sess.Path)
		if !found {
			continue
		}
		if err := m.lib.UpdatePosition(index, pos); err != nil {
			m.logger.Warn("failed to persist window position", "path", sess.Path, "err", err)
			continue
		}
		p := pos
		sess.lastSaved = &p
	}
}

// Sessions returns the number of live overlay sessions.
func (m *Manager) Sessions() int {
	return len(m.sessions)
}

// Close destroys every live session without touching the library, for
// application shutdown.
func (m *Manager) Close() {
	for key, sess := range m.sessions {
		sess.surface.Close()
		delete(m.sessions, key)
	}
}
