package overlay

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/animatux/animatux/internal/model"
)

// fakeLibrary implements Library in memory and counts position writes.
type fakeLibrary struct {
	characters     []model.Character
	positionWrites int
}

func (f *fakeLibrary) Characters() []model.Character {
	out := make([]model.Character, len(f.characters))
	copy(out, f.characters)
	return out
}

func (f *fakeLibrary) IndexByPath(path string) (int, bool) {
	for i := range f.characters {
		if f.characters[i].Path == path {
			return i, true
		}
	}
	return 0, false
}

func (f *fakeLibrary) SetEnabled(index int, enabled bool) error {
	f.characters[index].Enabled = enabled
	return nil
}

func (f *fakeLibrary) UpdateSettings(index int, speed int, scale float32) error {
	f.characters[index].Speed = speed
	f.characters[index].Scale = scale
	return nil
}

func (f *fakeLibrary) UpdatePosition(index int, pos model.Point) error {
	p := pos
	f.characters[index].WindowPos = &p
	f.positionWrites++
	return nil
}

// fakeSurface records commands and simulates user interaction.
type fakeSurface struct {
	opts     Options
	events   Events
	media    string
	fps      int
	size     model.Point
	pos      model.Point
	hasPos   bool
	shown    bool
	closed   bool
	controls *Controls
}

func (s *fakeSurface) SetMedia(path string, fps int)  { s.media = path; s.fps = fps }
func (s *fakeSurface) SetSize(size model.Point)       { s.size = size }
func (s *fakeSurface) Move(pos model.Point)           { s.pos = pos; s.hasPos = true }
func (s *fakeSurface) Position() (model.Point, bool)  { return s.pos, s.hasPos }
func (s *fakeSurface) ShowSettings(controls Controls) { c := controls; s.controls = &c }
func (s *fakeSurface) HideSettings()                  { s.controls = nil }
func (s *fakeSurface) Show()                          { s.shown = true }
func (s *fakeSurface) Close()                         { s.closed = true }

// fakeHost records every created surface in order, keyed and in sequence.
type fakeHost struct {
	surfaces map[string]*fakeSurface
	order    []string
}

func newFakeHost() *fakeHost {
	return &fakeHost{surfaces: make(map[string]*fakeSurface)}
}

func (h *fakeHost) CreateOverlay(opts Options, events Events) Surface {
	s := &fakeSurface{opts: opts, events: events}
	if opts.Position != nil {
		s.pos = *opts.Position
		s.hasPos = true
	}
	h.surfaces[opts.Key] = s
	h.order = append(h.order, opts.Key)
	return s
}

func newTestManager(characters ...model.Character) (*Manager, *fakeHost, *fakeLibrary) {
	host := newFakeHost()
	lib := &fakeLibrary{characters: characters}
	return NewManager(host, lib, nil), host, lib
}

func TestSessionKey_Deterministic(t *testing.T) {
	a := SessionKey("/media/fox.webp")
	b := SessionKey("/media/fox.webp")
	c := SessionKey("/media/cat.webp")

	require.Equal(t, a, b, "same path must yield the same session key")
	require.NotEqual(t, a, c)
}

func TestReconcile_CreatesEnabledInLibraryOrder(t *testing.T) {
	m, host, _ := newTestManager(
		model.Character{Name: "A", Path: "/a.webp", Enabled: true, Scale: 1},
		model.Character{Name: "B", Path: "/b.webp", Enabled: false, Scale: 1},
		model.Character{Name: "C", Path: "/c.webp", Enabled: true, Scale: 2},
	)

	m.Reconcile()

	require.Equal(t, 2, m.Sessions())
	require.Equal(t, []string{SessionKey("/a.webp"), SessionKey("/c.webp")}, host.order)

	// Scale drives the initial surface size.
	c := host.surfaces[SessionKey("/c.webp")]
	require.Equal(t, model.Point{X: 640, Y: 640}, c.opts.Size)
	require.True(t, c.shown)
	require.Equal(t, "/c.webp", c.media)
}

func TestReconcile_SeedsStoredPosition(t *testing.T) {
	stored := model.Point{X: 50, Y: 60}
	m, host, _ := newTestManager(
		model.Character{Path: "/a.webp", Enabled: true, Scale: 1, WindowPos: &stored},
		model.Character{Path: "/b.webp", Enabled: true, Scale: 1},
	)

	m.Reconcile()

	a := host.surfaces[SessionKey("/a.webp")]
	require.NotNil(t, a.opts.Position)
	require.Equal(t, stored, *a.opts.Position)

	b := host.surfaces[SessionKey("/b.webp")]
	require.Nil(t, b.opts.Position, "unplaced characters are centered by the host")
}

func TestReconcile_DestroysDisabled(t *testing.T) {
	m, host, lib := newTestManager(
		model.Character{Path: "/a.webp", Enabled: true, Scale: 1},
	)

	m.Reconcile()
	require.Equal(t, 1, m.Sessions())

	require.NoError(t, lib.SetEnabled(0, false))
	m.Reconcile()

	require.Equal(t, 0, m.Sessions())
	require.True(t, host.surfaces[SessionKey("/a.webp")].closed)
}

func TestSessionIdentity_SurvivesReenable(t *testing.T) {
	m, host, lib := newTestManager(
		model.Character{Path: "/a.webp", Enabled: true, Scale: 1},
	)

	m.Reconcile()
	first := host.order[0]

	require.NoError(t, lib.SetEnabled(0, false))
	m.Reconcile()
	require.NoError(t, lib.SetEnabled(0, true))
	m.Reconcile()

	require.Len(t, host.order, 2)
	require.Equal(t, first, host.order[1], "re-enabling must reuse the same window identity")
}

func TestDirectClose_DisablesCharacter(t *testing.T) {
	m, host, lib := newTestManager(
		model.Character{Path: "/a.webp", Enabled: true, Scale: 1},
	)

	m.Reconcile()
	host.surfaces[SessionKey("/a.webp")].events.OnClosed()

	require.Equal(t, 0, m.Sessions())
	require.False(t, lib.characters[0].Enabled)

	// The next reconcile pass must not resurrect the window.
	m.Reconcile()
	require.Equal(t, 0, m.Sessions())
}

func TestSyncPositions_ThrottlesUnchanged(t *testing.T) {
	m, host, lib := newTestManager(
		model.Character{Path: "/a.webp", Enabled: true, Scale: 1},
	)

	m.Reconcile()
	surface := host.surfaces[SessionKey("/a.webp")]
	surface.Move(model.Point{X: 100, Y: 200})

	for i := 0; i < 10; i++ {
		m.SyncPositions()
	}
	require.Equal(t, 1, lib.positionWrites, "unchanged position must be written at most once")

	surface.Move(model.Point{X: 101, Y: 200})
	m.SyncPositions()
	m.SyncPositions()
	require.Equal(t, 2, lib.positionWrites)
	require.Equal(t, model.Point{X: 101, Y: 200}, *lib.characters[0].WindowPos)
}

func TestSyncPositions_SkipsUnobservablePlacement(t *testing.T) {
	m, host, lib := newTestManager(
		model.Character{Path: "/a.webp", Enabled: true, Scale: 1},
	)

	m.Reconcile()
	// Host never reported a position.
	require.False(t, host.surfaces[SessionKey("/a.webp")].hasPos)

	m.SyncPositions()
	require.Zero(t, lib.positionWrites)
}

func TestToggleSettings_LiveEdits(t *testing.T) {
	m, host, lib := newTestManager(
		model.Character{Path: "/a.webp", Enabled: true, Speed: 12, Scale: 1},
	)

	m.Reconcile()
	surface := host.surfaces[SessionKey("/a.webp")]

	surface.events.OnToggleSettings()
	require.NotNil(t, surface.controls)
	require.Equal(t, 12, surface.controls.Speed)

	surface.controls.OnSpeedChanged(24)
	require.Equal(t, 24, lib.characters[0].Speed)
	require.Equal(t, 24, surface.fps)

	surface.controls.OnScaleChanged(2)
	require.Equal(t, float32(2), lib.characters[0].Scale)
	require.Equal(t, model.Point{X: 640, Y: 640}, surface.size)

	surface.events.OnToggleSettings()
	require.Nil(t, surface.controls)
}

func TestToggleMain_Forwarded(t *testing.T) {
	m, host, _ := newTestManager(
		model.Character{Path: "/a.webp", Enabled: true, Scale: 1},
	)

	toggles := 0
	m.SetToggleMainHandler(func() { toggles++ })

	m.Reconcile()
	host.surfaces[SessionKey("/a.webp")].events.OnToggleMain()
	require.Equal(t, 1, toggles)
}

func TestClose_DoesNotTouchLibrary(t *testing.T) {
	m, host, lib := newTestManager(
		model.Character{Path: "/a.webp", Enabled: true, Scale: 1},
	)

	m.Reconcile()
	m.Close()

	require.Equal(t, 0, m.Sessions())
	require.True(t, host.surfaces[SessionKey("/a.webp")].closed)
	require.True(t, lib.characters[0].Enabled, "shutdown must not rewrite enabled flags")
}
