package backdrop

// Mounted is a scene subscribed to a loop. Create one with Mount and tear it
// down with Unmount.
type Mounted struct {
	scene   Scene
	loop    Loop
	mounted bool
	frames  int
	last    Frame
}

// Mount subscribes scene's updater to loop. The scene is updated once per
// loop tick until Unmount. A loop carries one scene at a time: Mount panics
// if loop already has a subscriber, so unmount the previous scene first.
func Mount(loop Loop, scene Scene) *Mounted {
	if loop == nil || scene == nil {
		panic("backdrop: Mount requires a loop and a scene")
	}
	if loop.Running() {
		panic("backdrop: Mount on a loop that already has a mounted scene")
	}
	m := &Mounted{scene: scene, loop: loop, mounted: true}
	loop.Start(m.tick)
	return m
}

// tick is the loop callback. The mounted check covers loops that still hold
// a stale callback after Stop.
func (m *Mounted) tick(f Frame) {
	if !m.mounted {
		return
	}
	if f.Elapsed < 0 {
		f.Elapsed = 0
	}
	m.scene.Update(f)
	m.frames++
	m.last = f
}

// Unmount deregisters the scene from its loop. It is safe to call more than
// once. After Unmount returns the scene's updater is never invoked again.
func (m *Mounted) Unmount() {
	if !m.mounted {
		return
	}
	m.mounted = false
	m.loop.Stop()
}

// Scene returns the mounted scene.
func (m *Mounted) Scene() Scene {
	return m.scene
}

// IsMounted reports whether Unmount has not been called yet.
func (m *Mounted) IsMounted() bool {
	return m.mounted
}

// Frames returns the number of updates delivered to the scene.
func (m *Mounted) Frames() int {
	return m.frames
}

// LastFrame returns the most recent frame delivered to the scene.
func (m *Mounted) LastFrame() Frame {
	return m.last
}
