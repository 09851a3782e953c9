package backdrop

import "testing"

func TestPointerQueuePath(t *testing.T) {
	var q PointerQueue
	q.PushPath(Vec2{X: -1, Y: 0}, Vec2{X: 1, Y: 0.5}, 5)
	if q.Pending() != 5 {
		t.Fatalf("Pending = %d, want 5", q.Pending())
	}
	wantX := []float64{-1, -0.5, 0, 0.5, 1}
	for i, wx := range wantX {
		p, ok := q.Pop()
		if !ok {
			t.Fatalf("Pop %d: empty", i)
		}
		assertNear(t, "X", p.X, wx)
	}
	if _, ok := q.Pop(); ok {
		t.Error("queue should be empty")
	}
}

func TestPointerQueuePathMinFrames(t *testing.T) {
	var q PointerQueue
	q.PushPath(Vec2{}, Vec2{X: 1}, 0)
	if q.Pending() != 2 {
		t.Errorf("Pending = %d, want 2 (endpoints only)", q.Pending())
	}
}

func TestPointerQueueClamps(t *testing.T) {
	var q PointerQueue
	q.Push(Vec2{X: 3, Y: -9})
	p, _ := q.Pop()
	if p != (Vec2{1, -1}) {
		t.Errorf("Push did not clamp: %+v", p)
	}
}

func TestInjectPointerOnePerTick(t *testing.T) {
	l := NewManualLoop()
	var frames []Frame
	l.Start(func(f Frame) { frames = append(frames, f) })

	if err := l.Tick(0); err != nil {
		t.Fatal(err)
	}
	l.InjectPointer(Vec2{X: 0.5})
	l.InjectPointer(Vec2{X: -0.5})
	if l.PendingInput() != 2 {
		t.Fatalf("PendingInput = %d, want 2", l.PendingInput())
	}
	for i := 1; i <= 3; i++ {
		if err := l.Tick(float64(i)); err != nil {
			t.Fatal(err)
		}
	}

	if frames[0].HasPointer {
		t.Error("no pointer before injection")
	}
	wantX := []float64{0.5, -0.5, -0.5}
	for i, wx := range wantX {
		f := frames[i+1]
		if !f.HasPointer || f.Pointer.X != wx {
			t.Errorf("frame %d pointer = %+v (has=%v), want X=%v", i+1, f.Pointer, f.HasPointer, wx)
		}
	}
}
