// Package ebitenhost draws backdrop scenes in a window using Ebitengine.
//
// A Host is both the render loop that feeds frames to a mounted scene and
// the ebiten.Game that draws its composition. Run wires one up for you:
//
//	scene, _ := backdrop.NewScene("neural", backdrop.Options{})
//	if err := ebitenhost.Run(scene, ebitenhost.RunConfig{Width: 1280, Height: 720}); err != nil {
//		// no graphics context; the decoration is simply absent
//	}
package ebitenhost

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/backdrop"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// ErrRun wraps every failure returned by Run, including a missing graphics
// device or driver.
var ErrRun = errors.New("ebitenhost: run")

// RunConfig configures a Host.
type RunConfig struct {
	Title      string
	Width      int
	Height     int
	TPS        int // ticks per second; 0 means ebiten.DefaultTPS
	Fullscreen bool

	// Background is the clear color behind the scene.
	Background backdrop.Color
	// Opacity scales the whole scene, the way the page layered it over
	// the background. 0 means fully opaque.
	Opacity float64
	// FadeIn is the fade-in duration in seconds after mount.
	FadeIn float64

	ShowFPS bool
	Debug   bool

	// ScreenshotDir receives PNGs queued with Screenshot.
	ScreenshotDir string
	// Script, when set, drives the clock and input instead of wall time and
	// the real pointer.
	Script *backdrop.ScriptRunner
	// ExitOnScriptDone terminates the run loop once the script finishes
	// and its screenshots are written.
	ExitOnScriptDone bool

	Logger *zap.Logger
	// Clock overrides the wall clock. Nil uses time.Now.
	Clock func() time.Time
}

// Host implements ebiten.Game, backdrop.Loop and backdrop.Director.
type Host struct {
	cfg   RunConfig
	log   *zap.Logger
	clock func() time.Time

	fn      func(backdrop.Frame)
	mounted *backdrop.Mounted
	scene   backdrop.Scene

	start    time.Time
	paused   bool
	pausedAt time.Time
	idle     time.Duration // total time spent paused

	elapsed float64
	next    float64
	seeking bool

	input     backdrop.PointerQueue
	pointer   backdrop.Vec2
	hasPtr    bool
	cursor    image.Point
	cursorSet bool

	fade     *gween.Tween
	disabled bool
	quit     bool

	width, height int

	screenshotQueue []string
	renderer        renderer
	fps             fpsCounter
	stats           debugStats
}

// New creates a Host with no scene mounted.
func New(cfg RunConfig) *Host {
	if cfg.TPS <= 0 {
		cfg.TPS = ebiten.DefaultTPS
	}
	if cfg.Opacity <= 0 || cfg.Opacity > 1 {
		cfg.Opacity = 1
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = "screenshots"
	}
	if cfg.Width <= 0 {
		cfg.Width = 1280
	}
	if cfg.Height <= 0 {
		cfg.Height = 720
	}
	h := &Host{
		cfg:    cfg,
		log:    cfg.Logger,
		clock:  cfg.Clock,
		width:  cfg.Width,
		height: cfg.Height,
	}
	if h.log == nil {
		h.log = zap.NewNop()
	}
	if h.clock == nil {
		h.clock = time.Now
	}
	if cfg.FadeIn > 0 {
		h.fade = gween.New(0, 1, float32(cfg.FadeIn), ease.OutQuad)
	}
	return h
}

// Mount replaces the current scene with scene and restarts the clock.
func (h *Host) Mount(scene backdrop.Scene) {
	h.Unmount()
	h.scene = scene
	h.disabled = false
	h.elapsed, h.idle, h.paused = 0, 0, false
	h.start = h.clock()
	h.mounted = backdrop.Mount(h, scene)
	h.log.Info("scene mounted",
		zap.String("scene", scene.Name()),
		zap.Int("vertices", scene.Composition().VertexCount()))
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

// Start implements backdrop.Loop.
func (h *Host) Start(fn func(backdrop.Frame)) {
	h.fn = fn
}

// Stop implements backdrop.Loop.
func (h *Host) Stop() {
	h.fn = nil
}

// Running implements backdrop.Loop.
func (h *Host) Running() bool {
	return h.fn != nil
}

// Elapsed implements backdrop.Director.
func (h *Host) Elapsed() float64 {
	return h.elapsed
}

// Seek implements backdrop.Director. It takes effect on the next Update and
// switches the host to script time.
func (h *Host) Seek(elapsed float64) error {
	if elapsed < h.elapsed {
		return fmt.Errorf("seek to %.3fs after %.3fs: %w", elapsed, h.elapsed, backdrop.ErrClockRewind)
	}
	h.next, h.seeking = elapsed, true
	return nil
}

// InjectPointer implements backdrop.Director.
func (h *Host) InjectPointer(p backdrop.Vec2) {
	h.input.Push(p)
}

// InjectPointerPath implements backdrop.Director.
func (h *Host) InjectPointerPath(from, to backdrop.Vec2, frames int) {
	h.input.PushPath(from, to, frames)
}

// PendingInput implements backdrop.Director.
func (h *Host) PendingInput() int {
	return h.input.Pending()
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	if h.quit || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		h.togglePause()
	}

	if s := h.cfg.Script; s != nil {
		if s.Done() && h.cfg.ExitOnScriptDone && len(h.screenshotQueue) == 0 {
			return ebiten.Termination
		}
		if err := s.Step(h); err != nil {
			h.log.Warn("script step failed", zap.Error(err))
		}
	}

	h.elapsed = h.advanceClock()
	h.readPointer()

	if h.fn == nil {
		return nil
	}
	t0 := time.Now()
	h.fn(backdrop.Frame{Elapsed: h.elapsed, Pointer: h.pointer, HasPointer: h.hasPtr})
	h.stats.updateTime = time.Since(t0)
	return nil
}

// advanceClock returns this frame's elapsed time. Script runs use a fixed
// step of 1/TPS; otherwise wall time minus paused time. The result never
// decreases.
func (h *Host) advanceClock() float64 {
	var e float64
	switch {
	case h.seeking:
		h.seeking = false
		e = h.next
	case h.cfg.Script != nil:
		e = h.elapsed + 1/float64(h.cfg.TPS)
	case h.paused:
		e = h.elapsed
	default:
		e = h.clock().Sub(h.start).Seconds() - h.idle.Seconds()
	}
	if e < h.elapsed {
		e = h.elapsed
	}
	return e
}

func (h *Host) togglePause() {
	now := h.clock()
	if h.paused {
		h.idle += now.Sub(h.pausedAt)
	} else {
		h.pausedAt = now
	}
	h.paused = !h.paused
	h.log.Debug("pause toggled", zap.Bool("paused", h.paused), zap.Float64("elapsed", h.elapsed))
}

// readPointer takes one injected position if any is queued, otherwise the
// real cursor once it has moved.
func (h *Host) readPointer() {
	if p, ok := h.input.Pop(); ok {
		h.pointer, h.hasPtr = p, true
		return
	}
	if h.cfg.Script != nil {
		return
	}
	x, y := ebiten.CursorPosition()
	cur := image.Pt(x, y)
	if h.cursorSet && cur != h.cursor {
		h.hasPtr = true
	}
	h.cursor, h.cursorSet = cur, true
	if h.hasPtr {
		h.pointer = backdrop.NormalizePointer(float64(x), float64(y), float64(h.width), float64(h.height))
	}
}

// Layout implements ebiten.Game. The host is full-bleed: the logical screen
// always matches the window.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.width, h.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(toNRGBA(h.background()))

	if h.scene != nil && !h.disabled {
		t0 := time.Now()
		h.drawScene(screen)
		h.stats.drawTime = time.Since(t0)
	}
	if h.cfg.ShowFPS {
		h.fps.draw(screen, h.elapsed)
	}
	h.flushScreenshots(screen)
	if h.cfg.Debug {
		h.debugLog()
	}
}

// drawScene renders the composition. A panic while drawing disables the
// scene for the rest of the run instead of taking the host down.
func (h *Host) drawScene(screen *ebiten.Image) {
	defer func() {
		if r := recover(); r != nil {
			h.disabled = true
			h.log.Error("scene draw failed; decoration disabled",
				zap.String("scene", h.scene.Name()),
				zap.Any("panic", r))
		}
	}()
	alpha := h.cfg.Opacity * h.fadeAlpha()
	h.stats.draw = h.renderer.draw(screen, h.scene.Composition(), alpha)
}

// fadeAlpha evaluates the fade-in tween at the current elapsed time.
func (h *Host) fadeAlpha() float64 {
	if h.fade == nil {
		return 1
	}
	v, _ := h.fade.Set(float32(h.elapsed))
	return float64(v)
}

// background tints the clear color slightly toward the primary color by the
// scene's ambient light.
func (h *Host) background() backdrop.Color {
	bg := h.cfg.Background
	if bg == (backdrop.Color{}) {
		bg = backdrop.ColorDark
	}
	if h.scene == nil {
		return bg
	}
	k := h.scene.Composition().Lighting.Ambient * 0.2
	p := backdrop.ColorPrimary
	return backdrop.Color{
		R: backdrop.Lerp(bg.R, p.R, k),
		G: backdrop.Lerp(bg.G, p.G, k),
		B: backdrop.Lerp(bg.B, p.B, k),
		A: 1,
	}
}

// Run mounts scene on a new Host and runs the Ebitengine loop until the
// window closes or Escape is pressed. Space pauses the clock.
func Run(scene backdrop.Scene, cfg RunConfig) error {
	h := New(cfg)
	h.Mount(scene)
	defer h.Unmount()

	title := cfg.Title
	if title == "" {
		title = "backdrop: " + scene.Name()
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(h.cfg.Width, h.cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(h.cfg.TPS)
	ebiten.SetFullscreen(cfg.Fullscreen)

	if err := ebiten.RunGame(h); err != nil {
		return fmt.Errorf("%w: %w", ErrRun, err)
	}
	return nil
}
