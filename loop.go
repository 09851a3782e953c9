package backdrop

import (
	"errors"
	"fmt"
	"math"
)

// ErrClockRewind is returned when a loop is asked to tick at an earlier
// elapsed time than its previous tick.
var ErrClockRewind = errors.New("backdrop: elapsed time went backwards")

// Frame is the input to a scene's per-frame update.
type Frame struct {
	// Elapsed is seconds since the scene was mounted. Non-decreasing.
	Elapsed float64
	// Pointer is the latest pointer position in normalized device
	// coordinates; valid only when HasPointer is true.
	Pointer    Vec2
	HasPointer bool
}

// Loop drives per-frame callbacks for a single subscriber. Start subscribes
// fn; Stop deregisters it synchronously so that fn is never invoked after
// Stop returns. Running reports whether a subscriber is registered.
type Loop interface {
	Start(fn func(Frame))
	Stop()
	Running() bool
}

// NormalizePointer converts a pixel position inside a w×h viewport to
// normalized device coordinates (X right, Y up, both clamped to [-1, 1]).
func NormalizePointer(x, y, w, h float64) Vec2 {
	if w <= 0 || h <= 0 {
		return Vec2{}
	}
	return Vec2{
		X: clampUnit(x/w*2 - 1),
		Y: clampUnit(-(y/h*2 - 1)),
	}
}

func clampUnit(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

// ManualLoop is a Loop driven by explicit Tick calls. It is the fake clock
// for tests and the clock behind scripted captures.
type ManualLoop struct {
	fn      func(Frame)
	last    float64
	ticks   int
	pointer Vec2
	hasPtr  bool
	input   PointerQueue
	shots   []string

	next    float64
	seeking bool
}

// NewManualLoop returns a stopped loop at elapsed 0.
func NewManualLoop() *ManualLoop {
	return &ManualLoop{}
}

// Start implements Loop.
func (l *ManualLoop) Start(fn func(Frame)) {
	l.fn = fn
}

// Stop implements Loop.
func (l *ManualLoop) Stop() {
	l.fn = nil
}

// Running implements Loop.
func (l *ManualLoop) Running() bool {
	return l.fn != nil
}

// Elapsed returns the elapsed time of the last tick.
func (l *ManualLoop) Elapsed() float64 {
	return l.last
}

// Ticks returns how many ticks were delivered to a subscriber.
func (l *ManualLoop) Ticks() int {
	return l.ticks
}

// Tick delivers one frame at elapsed. Ticking at the same elapsed twice is
// allowed; going backwards returns ErrClockRewind and delivers nothing.
func (l *ManualLoop) Tick(elapsed float64) error {
	if elapsed < l.last {
		return fmt.Errorf("tick at %.3fs after %.3fs: %w", elapsed, l.last, ErrClockRewind)
	}
	l.last = elapsed
	l.consumePointer()
	if l.fn == nil {
		return nil
	}
	l.ticks++
	l.fn(Frame{Elapsed: elapsed, Pointer: l.pointer, HasPointer: l.hasPtr})
	return nil
}

// Advance ticks dt seconds after the previous tick.
func (l *ManualLoop) Advance(dt float64) error {
	return l.Tick(l.last + dt)
}

// Seek implements Director: the next Frame call delivers at elapsed.
func (l *ManualLoop) Seek(elapsed float64) error {
	if elapsed < l.last {
		return fmt.Errorf("seek to %.3fs after %.3fs: %w", elapsed, l.last, ErrClockRewind)
	}
	l.next, l.seeking = elapsed, true
	return nil
}

// Frame delivers one frame: at the sought time if Seek was called since the
// last frame, otherwise dt after the previous tick.
func (l *ManualLoop) Frame(dt float64) error {
	if l.seeking {
		l.seeking = false
		return l.Tick(l.next)
	}
	return l.Advance(dt)
}

// Screenshot implements Director by recording the label. ManualLoop has no
// pixels to capture.
func (l *ManualLoop) Screenshot(label string) {
	l.shots = append(l.shots, label)
}

// Screenshots returns the labels recorded by Screenshot.
func (l *ManualLoop) Screenshots() []string {
	return l.shots
}
