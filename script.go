package backdrop

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Director is what a script drives: a loop that can jump its clock, accept
// synthetic pointer input and capture frames. ManualLoop and the Ebitengine
// host implement it.
type Director interface {
	Elapsed() float64
	Seek(elapsed float64) error
	InjectPointer(p Vec2)
	InjectPointerPath(from, to Vec2, frames int)
	PendingInput() int
	Screenshot(label string)
}

// scriptStep is a single action in a script.
type scriptStep struct {
	Action  string  `yaml:"action"`
	Label   string  `yaml:"label,omitempty"`
	At      float64 `yaml:"at,omitempty"`
	Seconds float64 `yaml:"seconds,omitempty"`
	X       float64 `yaml:"x,omitempty"`
	Y       float64 `yaml:"y,omitempty"`
	FromX   float64 `yaml:"fromX,omitempty"`
	FromY   float64 `yaml:"fromY,omitempty"`
	ToX     float64 `yaml:"toX,omitempty"`
	ToY     float64 `yaml:"toY,omitempty"`
	Frames  int     `yaml:"frames,omitempty"`
}

// script is the top-level structure of a script document.
type script struct {
	Steps []scriptStep `yaml:"steps"`
}

// ScriptRunner sequences clock jumps, pointer input and screenshots across
// frames. Call Step once per frame before the frame is delivered.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a script. JSON and YAML documents are both accepted:
//
//	{"steps": [
//	  {"action": "seek", "at": 1.0},
//	  {"action": "screenshot", "label": "gathering"},
//	  {"action": "advance", "seconds": 2.5},
//	  {"action": "pointer", "x": 0.5, "y": -0.25},
//	  {"action": "path", "fromX": -1, "fromY": 0, "toX": 1, "toY": 0, "frames": 30},
//	  {"action": "wait", "frames": 10}
//	]}
func LoadScript(data []byte) (*ScriptRunner, error) {
	var sc script
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "seek", "advance", "pointer", "path", "wait", "screenshot":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: sc.Steps}, nil
}

// Done reports whether every step has executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame, executing at most one action.
// Screenshot steps that directly follow a seek or advance run in the same
// frame, so they capture the sought time rather than one frame later.
func (r *ScriptRunner) Step(d Director) error {
	if r.done {
		return nil
	}
	// Let queued pointer input play out before moving on.
	if d.PendingInput() > 0 {
		return nil
	}
	if r.waitCount > 0 {
		r.waitCount--
		return nil
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return nil
	}

	st := r.steps[r.cursor]
	r.cursor++

	var err error
	switch st.Action {
	case "seek":
		err = d.Seek(st.At)
	case "advance":
		err = d.Seek(d.Elapsed() + st.Seconds)
	case "pointer":
		d.InjectPointer(Vec2{X: st.X, Y: st.Y})
	case "path":
		d.InjectPointerPath(Vec2{X: st.FromX, Y: st.FromY}, Vec2{X: st.ToX, Y: st.ToY}, st.Frames)
	case "screenshot":
		d.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}
	if err != nil {
		r.done = true
		return fmt.Errorf("script step %d (%s): %w", r.cursor-1, st.Action, err)
	}
	if st.Action == "seek" || st.Action == "advance" {
		for r.cursor < len(r.steps) && r.steps[r.cursor].Action == "screenshot" {
			d.Screenshot(r.steps[r.cursor].Label)
			r.cursor++
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && d.PendingInput() == 0 {
		r.done = true
	}
	return nil
}

// Play runs the script to completion against a ManualLoop, delivering one
// frame per step. dt is the frame interval used when no seek is pending.
func (r *ScriptRunner) Play(l *ManualLoop, dt float64) error {
	for !r.done {
		if err := r.Step(l); err != nil {
			return err
		}
		if err := l.Frame(dt); err != nil {
			return err
		}
	}
	return nil
}
