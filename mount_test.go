package backdrop

import "testing"

// spyScene counts updates.
type spyScene struct {
	comp  Composition
	calls int
	last  Frame
}

func (s *spyScene) Name() string              { return "spy" }
func (s *spyScene) Update(f Frame)            { s.calls++; s.last = f }
func (s *spyScene) Composition() *Composition { return &s.comp }

// staleLoop keeps its callback after Stop, like a host that only checks a
// flag on its next iteration.
type staleLoop struct {
	fn      func(Frame)
	stopped bool
}

func (l *staleLoop) Start(fn func(Frame)) { l.fn = fn }
func (l *staleLoop) Stop()                { l.stopped = true }
func (l *staleLoop) Running() bool        { return l.fn != nil && !l.stopped }

func TestMountDeliversFrames(t *testing.T) {
	l := NewManualLoop()
	s := &spyScene{}
	m := Mount(l, s)

	for _, e := range []float64{0, 0.016, 0.032} {
		if err := l.Tick(e); err != nil {
			t.Fatal(err)
		}
	}
	if s.calls != 3 || m.Frames() != 3 {
		t.Errorf("calls = %d, frames = %d, want 3", s.calls, m.Frames())
	}
	assertNear(t, "last elapsed", m.LastFrame().Elapsed, 0.032)
	if m.Scene() != s || !m.IsMounted() {
		t.Error("mount state wrong")
	}
}

func TestUnmountZeroCallsAfter(t *testing.T) {
	l := NewManualLoop()
	s := &spyScene{}
	m := Mount(l, s)
	if err := l.Tick(1); err != nil {
		t.Fatal(err)
	}

	m.Unmount()
	m.Unmount()
	if l.Running() {
		t.Error("Unmount should stop the loop")
	}
	for i := 2; i < 10; i++ {
		if err := l.Tick(float64(i)); err != nil {
			t.Fatal(err)
		}
	}
	if s.calls != 1 {
		t.Errorf("calls after unmount = %d, want 1", s.calls)
	}
}

func TestUnmountGuardsStaleCallback(t *testing.T) {
	l := &staleLoop{}
	s := &spyScene{}
	m := Mount(l, s)
	m.Unmount()
	if !l.stopped {
		t.Fatal("Unmount did not call Stop")
	}
	l.fn(Frame{Elapsed: 1})
	if s.calls != 0 {
		t.Errorf("stale callback reached the scene %d times", s.calls)
	}
}

func TestMountClampsNegativeElapsed(t *testing.T) {
	l := &staleLoop{}
	s := &spyScene{}
	Mount(l, s)
	l.fn(Frame{Elapsed: -2})
	if s.last.Elapsed != 0 {
		t.Errorf("elapsed = %v, want 0", s.last.Elapsed)
	}
}

func TestMountPanicsOnNil(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Mount(nil, nil) should panic")
		}
	}()
	Mount(nil, nil)
}

func TestMountRejectsBusyLoop(t *testing.T) {
	l := NewManualLoop()
	a, b := &spyScene{}, &spyScene{}
	ma := Mount(l, a)

	func() {
		defer func() {
			if recover() == nil {
				t.Error("mounting a second scene on a busy loop should panic")
			}
		}()
		Mount(l, b)
	}()

	// The first scene keeps its subscription.
	for i := 1; i <= 5; i++ {
		if err := l.Tick(float64(i)); err != nil {
			t.Fatal(err)
		}
	}
	if a.calls != 5 || b.calls != 0 {
		t.Errorf("calls a = %d, b = %d, want 5 and 0", a.calls, b.calls)
	}

	// Once the first scene is unmounted the second can take over, and the
	// stale handle cannot stop it.
	ma.Unmount()
	mb := Mount(l, b)
	ma.Unmount()
	for i := 6; i <= 8; i++ {
		if err := l.Tick(float64(i)); err != nil {
			t.Fatal(err)
		}
	}
	if !mb.IsMounted() || !l.Running() {
		t.Fatal("second scene lost its subscription")
	}
	if a.calls != 5 || b.calls != 3 {
		t.Errorf("after handover calls a = %d, b = %d, want 5 and 3", a.calls, b.calls)
	}
}
