// Package backdrop is a procedural background-animation engine: decorative,
// full-viewport particle and line scenes driven by a frame clock.
//
// A [Scene] generates its particles once at construction and rewrites them
// every frame as a pure function of elapsed time. Hosts draw the scene's
// [Composition]; the engine itself never touches a window or a terminal.
//
// # Quick start
//
// The simplest way to see a scene is the ebitenhost package, which opens a
// window and drives the loop for you:
//
//	scene, _ := backdrop.NewScene("spear", backdrop.Options{})
//	ebitenhost.Run(scene, ebitenhost.RunConfig{
//		Title: "Backdrop", Width: 1280, Height: 720,
//	})
//
// For tests, drive a scene with a [ManualLoop]:
//
//	loop := backdrop.NewManualLoop()
//	m := backdrop.Mount(loop, scene)
//	loop.Tick(1.0)
//	m.Unmount()
//
// # Scenes
//
// Four scenes ship with the package, all constructible by name through
// [NewScene] or directly with their config types:
//
//   - spear: [SpearScene], streams converging on a glowing core on an
//     8 second gather / stream / disperse cycle ([PhaseAt]).
//   - neural: [NeuralScene], a rippling point cloud with connection lines
//     that leans toward the pointer.
//   - circuit: [CircuitScene], two-tone board traces with a breathing
//     opacity and rotating signal pulses.
//   - matrix: [MatrixScene], falling glyph columns that wrap and fade.
//
// # Determinism
//
// Pass a seeded [Source] (see [NewSource]) to get the same layout on every
// construction. Updates never keep counters, so replaying the same elapsed
// time reproduces the same frame regardless of frame rate.
//
// # Input
//
// Pointer input is injected by the host through [Frame.Pointer]; scenes do
// not subscribe to window events. [PointerQueue] buffers synthetic input
// and [ScriptRunner] plays back scripted clock jumps, pointer paths and
// screenshots against any [Director].
package backdrop
