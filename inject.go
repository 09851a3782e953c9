package backdrop

// PointerQueue buffers injected pointer positions. One position is consumed
// per frame so that a path plays back over several frames, the same way a
// real pointer would report it. Hosts embed it to accept synthetic input.
type PointerQueue struct {
	queue []Vec2
}

// Push appends a position in normalized device coordinates.
func (q *PointerQueue) Push(p Vec2) {
	q.queue = append(q.queue, Vec2{X: clampUnit(p.X), Y: clampUnit(p.Y)})
}

// PushPath queues a linear path from `from` to `to` over the given number
// of frames (minimum 2: the two endpoints).
func (q *PointerQueue) PushPath(from, to Vec2, frames int) {
	if frames < 2 {
		frames = 2
	}
	q.Push(from)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		q.Push(Vec2{X: Lerp(from.X, to.X, t), Y: Lerp(from.Y, to.Y, t)})
	}
	q.Push(to)
}

// Pop removes and returns the oldest queued position.
func (q *PointerQueue) Pop() (Vec2, bool) {
	if len(q.queue) == 0 {
		return Vec2{}, false
	}
	p := q.queue[0]
	copy(q.queue, q.queue[1:])
	q.queue = q.queue[:len(q.queue)-1]
	return p, true
}

// Pending returns the number of queued positions.
func (q *PointerQueue) Pending() int {
	return len(q.queue)
}

// InjectPointer queues a pointer position for the next tick.
func (l *ManualLoop) InjectPointer(p Vec2) {
	l.input.Push(p)
}

// InjectPointerPath queues a pointer path played back one point per tick.
func (l *ManualLoop) InjectPointerPath(from, to Vec2, frames int) {
	l.input.PushPath(from, to, frames)
}

// PendingInput implements Director.
func (l *ManualLoop) PendingInput() int {
	return l.input.Pending()
}

// consumePointer pops one injected position, if any, into the current
// pointer state.
func (l *ManualLoop) consumePointer() {
	if p, ok := l.input.Pop(); ok {
		l.pointer = p
		l.hasPtr = true
	}
}
