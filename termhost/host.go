// Package termhost previews backdrop scenes in a terminal using tcell.
//
// Every terminal row stands for two scene pixels, so a scene projected onto
// a cols×(rows·2) viewport keeps its proportions. Points, lines, discs and
// rings are composited in memory and flushed as colored glyphs.
package termhost

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/backdrop"
	"go.uber.org/zap"
)

// maxFPS bounds the redraw rate so the ticker period stays positive.
const maxFPS = 1000

// ErrNoScene is returned by Frame when nothing is mounted.
var ErrNoScene = errors.New("termhost: no scene mounted")

// Default glyphs per layer kind.
const (
	pointGlyph = '•'
	lineGlyph  = '·'
	discGlyph  = '●'
	ringGlyph  = '○'
)

// Options configures a Host.
type Options struct {
	// FPS is the redraw rate; 0 means 30. Values above 1000 are clamped.
	FPS int
	// Background is the clear color; zero means backdrop.ColorDark.
	Background backdrop.Color
	Logger     *zap.Logger
	// Clock overrides the wall clock. Nil uses time.Now.
	Clock func() time.Time
}

// Host drives a scene from a ticker and draws it onto a tcell screen. It
// implements backdrop.Loop.
type Host struct {
	screen tcell.Screen
	opts   Options
	log    *zap.Logger

	fn      func(backdrop.Frame)
	mounted *backdrop.Mounted
	scene   backdrop.Scene

	start    time.Time
	elapsed  float64
	paused   bool
	pausedAt time.Time
	idle     time.Duration

	pointer backdrop.Vec2
	hasPtr  bool

	cv canvas
}

// New returns a Host drawing to screen. The caller owns the screen: it must
// be initialized before Run and finalized after.
func New(screen tcell.Screen, opts Options) *Host {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	opts.FPS = min(opts.FPS, maxFPS)
	if opts.Background == (backdrop.Color{}) {
		opts.Background = backdrop.ColorDark
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	h := &Host{screen: screen, opts: opts, log: opts.Logger}
	if h.log == nil {
		h.log = zap.NewNop()
	}
	h.cv.bg = opts.Background
	return h
}

// Start implements backdrop.Loop.
func (h *Host) Start(fn func(backdrop.Frame)) { h.fn = fn }

// Stop implements backdrop.Loop.
func (h *Host) Stop() { h.fn = nil }

// Running implements backdrop.Loop.
func (h *Host) Running() bool { return h.fn != nil }

// Mount replaces the current scene and restarts the clock.
func (h *Host) Mount(scene backdrop.Scene) {
	h.Unmount()
	h.scene = scene
	h.elapsed, h.idle, h.paused = 0, 0, false
	h.start = h.opts.Clock()
	h.mounted = backdrop.Mount(h, scene)
	h.log.Info("scene mounted", zap.String("scene", scene.Name()), zap.String("host", "terminal"))
}

// Unmount deregisters the current scene, if any.
func (h *Host) Unmount() {
	if h.mounted == nil {
		return
	}
	h.mounted.Unmount()
	h.log.Info("scene unmounted",
		zap.String("scene", h.scene.Name()),
		zap.Int("frames", h.mounted.Frames()))
	h.mounted = nil
	h.scene = nil
}

// Elapsed returns the elapsed time of the last frame.
func (h *Host) Elapsed() float64 { return h.elapsed }

// Frame updates the mounted scene at elapsed and draws it.
func (h *Host) Frame(elapsed float64) error {
	if h.scene == nil {
		return ErrNoScene
	}
	if elapsed < h.elapsed {
		return fmt.Errorf("frame at %.3fs after %.3fs: %w", elapsed, h.elapsed, backdrop.ErrClockRewind)
	}
	h.elapsed = elapsed
	if h.fn != nil {
		h.fn(backdrop.Frame{Elapsed: elapsed, Pointer: h.pointer, HasPointer: h.hasPtr})
	}
	h.draw()
	return nil
}

// Run mounts scene and animates it until ctx is done or the user quits with
// q, Escape or Ctrl-C. Space pauses. The event reader goroutine has exited
// by the time Run returns.
func (h *Host) Run(ctx context.Context, scene backdrop.Scene) error {
	h.Mount(scene)
	defer h.Unmount()

	events := make(chan tcell.Event, 16)
	stop := make(chan struct{})
	done := make(chan struct{})
	go h.readEvents(events, stop, done)
	defer func() {
		close(stop)
		// Wake the reader if it is blocked in PollEvent.
		_ = h.screen.PostEvent(tcell.NewEventInterrupt(nil))
		<-done
	}()

	ticker := time.NewTicker(time.Second / time.Duration(h.opts.FPS))
	defer ticker.Stop()

	if err := h.Frame(0); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !h.handleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			if err := h.Frame(h.clockElapsed()); err != nil {
				return err
			}
		}
	}
}

// readEvents forwards screen events until stop is closed or the screen is
// finalized.
func (h *Host) readEvents(events chan<- tcell.Event, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case <-stop:
			return
		default:
		}
		select {
		case events <- ev:
		case <-stop:
			return
		}
	}
}

// handleEvent applies one input event and reports whether to keep running.
func (h *Host) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case ' ':
				h.togglePause()
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		cols, rows := h.screen.Size()
		h.pointer = backdrop.NormalizePointer(float64(x)+0.5, float64(y)+0.5, float64(cols), float64(rows))
		h.hasPtr = true
	case *tcell.EventResize:
		h.screen.Sync()
	}
	return true
}

func (h *Host) togglePause() {
	now := h.opts.Clock()
	if h.paused {
		h.idle += now.Sub(h.pausedAt)
	} else {
		h.pausedAt = now
	}
	h.paused = !h.paused
	h.log.Debug("pause toggled", zap.Bool("paused", h.paused), zap.Float64("elapsed", h.elapsed))
}

// clockElapsed returns wall time since mount minus paused time, never less
// than the previous frame.
func (h *Host) clockElapsed() float64 {
	if h.paused {
		return h.elapsed
	}
	e := h.opts.Clock().Sub(h.start).Seconds() - h.idle.Seconds()
	return math.Max(e, h.elapsed)
}

// draw composites the scene and flushes it to the screen.
func (h *Host) draw() {
	cols, rows := h.screen.Size()
	h.cv.resize(cols, rows)
	h.cv.clear()
	render(&h.cv, h.scene.Composition())

	bg := tcell.StyleDefault.Background(toColor(h.cv.bg))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			p := h.cv.at(x, y)
			if p.a <= 0 || p.r == 0 {
				h.screen.SetContent(x, y, ' ', nil, bg)
				continue
			}
			h.screen.SetContent(x, y, p.r, nil, bg.Foreground(toColor(h.cv.color(p))))
		}
	}
	h.screen.Show()
}

// render projects every visible layer of comp onto cv.
func render(cv *canvas, comp *backdrop.Composition) {
	w, ht := float64(cv.w), float64(cv.h*2)
	cam := comp.Camera
	for _, l := range comp.Layers {
		if l.Hidden {
			continue
		}
		switch l.Kind {
		case backdrop.LayerPoints:
			for i, p := range l.Positions {
				pr, ok := cam.Project(l.World(p), w, ht)
				if !ok {
					continue
				}
				r := rune(pointGlyph)
				if i < len(l.Glyphs) {
					r = l.Glyphs[i]
				}
				c, a := l.VertexColor(i)
				x, y := cellAt(pr)
				cv.plot(x, y, r, c, a, l.Blend)
			}
		case backdrop.LayerLines:
			for i := 0; i+1 < len(l.Positions); i += 2 {
				a, okA := cam.Project(l.World(l.Positions[i]), w, ht)
				b, okB := cam.Project(l.World(l.Positions[i+1]), w, ht)
				if !okA || !okB {
					continue
				}
				c, op := l.VertexColor(i)
				x0, y0 := cellAt(a)
				x1, y1 := cellAt(b)
				cv.line(x0, y0, x1, y1, lineGlyph, c, op, l.Blend)
			}
		case backdrop.LayerDisc, backdrop.LayerRing:
			pr, ok := cam.Project(l.Offset, w, ht)
			if !ok {
				continue
			}
			s := l.Scale
			if s == 0 {
				s = 1
			}
			outer := l.Size * s * pr.Scale
			inner, r := 0.0, rune(discGlyph)
			if l.Kind == backdrop.LayerRing {
				inner, r = l.Inner*s*pr.Scale, ringGlyph
			}
			// Keep tiny shapes visible as a single cell.
			outer = math.Max(outer, 0.5)
			cv.annulus(pr.X, pr.Y, inner, outer, r, l.Color, l.Opacity, l.Blend)
		}
	}
}

// cellAt maps a projected position to its terminal cell. Rows are two
// scene pixels tall; flooring keeps positions left of or above the viewport
// off screen.
func cellAt(pr backdrop.Projection) (x, y int) {
	return int(math.Floor(pr.X)), int(math.Floor(pr.Y / 2))
}

// toColor converts a backdrop color to a 24-bit tcell color.
func toColor(c backdrop.Color) tcell.Color {
	return tcell.NewRGBColor(channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) int32 {
	return int32(math.Round(math.Max(0, math.Min(1, v)) * 255))
}
