package termhost

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/backdrop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(80, 24)
	return s
}

func litCells(s tcell.Screen) int {
	cols, rows := s.Size()
	n := 0
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if r, _, _, _ := s.GetContent(x, y); r != ' ' && r != 0 {
				n++
			}
		}
	}
	return n
}

func seeded(t *testing.T, name string) backdrop.Scene {
	t.Helper()
	sc, err := backdrop.NewScene(name, backdrop.Options{Seed: 7})
	require.NoError(t, err)
	return sc
}

func TestFrameWithoutScene(t *testing.T) {
	s := newScreen(t)
	defer s.Fini()

	h := New(s, Options{})
	assert.ErrorIs(t, h.Frame(0), ErrNoScene)
}

func TestFrameDrawsEveryScene(t *testing.T) {
	for _, name := range backdrop.Scenes() {
		t.Run(name, func(t *testing.T) {
			s := newScreen(t)
			defer s.Fini()

			h := New(s, Options{})
			h.Mount(seeded(t, name))
			defer h.Unmount()

			require.NoError(t, h.Frame(3))
			assert.Positive(t, litCells(s))
		})
	}
}

func TestFrameRejectsRewind(t *testing.T) {
	s := newScreen(t)
	defer s.Fini()

	h := New(s, Options{})
	h.Mount(seeded(t, "circuit"))
	require.NoError(t, h.Frame(2))
	assert.ErrorIs(t, h.Frame(1), backdrop.ErrClockRewind)
	assert.Equal(t, 2.0, h.Elapsed())
}

func TestUnmountStopsUpdates(t *testing.T) {
	s := newScreen(t)
	defer s.Fini()

	h := New(s, Options{})
	h.Mount(seeded(t, "spear"))
	h.Unmount()
	h.Unmount()
	assert.Nil(t, h.fn)
	assert.ErrorIs(t, h.Frame(1), ErrNoScene)
}

func TestMouseSetsPointer(t *testing.T) {
	s := newScreen(t)
	defer s.Fini()

	h := New(s, Options{})
	assert.True(t, h.handleEvent(tcell.NewEventMouse(79, 0, tcell.ButtonNone, tcell.ModNone)))
	assert.True(t, h.hasPtr)
	assert.InDelta(t, 1, h.pointer.X, 0.02)
	assert.InDelta(t, 1, h.pointer.Y, 0.05)
}

func TestQuitKeys(t *testing.T) {
	h := New(tcell.NewSimulationScreen("UTF-8"), Options{})
	tests := []struct {
		name string
		ev   *tcell.EventKey
	}{
		{"q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModNone)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, h.handleEvent(tt.ev))
		})
	}
	assert.True(t, h.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))
}

func TestPauseHoldsClock(t *testing.T) {
	now := time.Unix(100, 0)
	clock := func() time.Time { return now }

	h := New(tcell.NewSimulationScreen("UTF-8"), Options{Clock: clock})
	h.start = now
	now = now.Add(2 * time.Second)
	assert.InDelta(t, 2, h.clockElapsed(), 1e-9)
	h.elapsed = 2

	h.togglePause()
	now = now.Add(5 * time.Second)
	assert.InDelta(t, 2, h.clockElapsed(), 1e-9)

	h.togglePause()
	now = now.Add(time.Second)
	assert.InDelta(t, 3, h.clockElapsed(), 1e-9)
}

func TestRunQuitsOnKey(t *testing.T) {
	s := newScreen(t)
	defer s.Fini()
	ignore := goleak.IgnoreCurrent()

	h := New(s, Options{FPS: 60})
	scene := seeded(t, "matrix")
	errc := make(chan error, 1)
	go func() { errc <- h.Run(context.Background(), scene) }()

	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after q")
	}
	assert.Nil(t, h.mounted)
	goleak.VerifyNone(t, ignore)
}

func TestRunStopsOnContext(t *testing.T) {
	s := newScreen(t)
	defer s.Fini()
	ignore := goleak.IgnoreCurrent()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	h := New(s, Options{FPS: 60})
	require.NoError(t, h.Run(ctx, seeded(t, "neural")))
	goleak.VerifyNone(t, ignore)
	assert.Positive(t, litCells(s))
	assert.Positive(t, h.Elapsed())
}

func TestCellAtFloors(t *testing.T) {
	tests := []struct {
		pr   backdrop.Projection
		x, y int
	}{
		{backdrop.Projection{X: 3.9, Y: 5.9}, 3, 2},
		{backdrop.Projection{X: 0, Y: 0}, 0, 0},
		{backdrop.Projection{X: -0.5, Y: -0.5}, -1, -1},
		{backdrop.Projection{X: -1, Y: -2}, -1, -1},
	}
	for _, tt := range tests {
		x, y := cellAt(tt.pr)
		assert.Equal(t, tt.x, x, "x of %+v", tt.pr)
		assert.Equal(t, tt.y, y, "y of %+v", tt.pr)
	}
}

func TestRenderSkipsGeometryLeftOfViewport(t *testing.T) {
	cv := newCanvas(8, 4)
	comp := &backdrop.Composition{
		Camera: backdrop.Camera{Position: backdrop.Vec3{Z: 10}, FOV: 60},
		Layers: []*backdrop.Layer{{
			Name:    "edge",
			Kind:    backdrop.LayerPoints,
			Color:   backdrop.ColorWhite,
			Opacity: 1,
			Size:    1,
		}},
	}
	// The canvas is projected at 8×8 scene pixels; place the point half a
	// pixel left of the viewport.
	origin, ok := comp.Camera.Project(backdrop.Vec3{}, 8, 8)
	require.True(t, ok)
	x := (-0.5 - origin.X) / origin.Scale
	comp.Layers[0].Positions = []backdrop.Vec3{{X: x}}

	p, ok := comp.Camera.Project(comp.Layers[0].Positions[0], 8, 8)
	require.True(t, ok)
	require.InDelta(t, -0.5, p.X, 1e-9)

	render(cv, comp)
	for _, c := range cv.cells {
		assert.Zero(t, c.a)
	}
}

func TestNewClampsFPS(t *testing.T) {
	h := New(tcell.NewSimulationScreen("UTF-8"), Options{FPS: 2_000_000_000})
	assert.Equal(t, maxFPS, h.opts.FPS)
	assert.Positive(t, time.Second/time.Duration(h.opts.FPS))
}
