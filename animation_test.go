package backdrop

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestEaseEndpointsExact(t *testing.T) {
	for name, fn := range map[string]ease.TweenFunc{
		"OutCubic": ease.OutCubic,
		"InQuad":   ease.InQuad,
		"OutQuad":  ease.OutQuad,
	} {
		if got := Ease(fn, 0); got != 0 {
			t.Errorf("%s(0) = %v, want exactly 0", name, got)
		}
		if got := Ease(fn, 1); got != 1 {
			t.Errorf("%s(1) = %v, want exactly 1", name, got)
		}
		if got := Ease(fn, -3); got != 0 {
			t.Errorf("%s(-3) = %v, want clamp to 0", name, got)
		}
		if got := Ease(fn, 7); got != 1 {
			t.Errorf("%s(7) = %v, want clamp to 1", name, got)
		}
	}
}

func TestEaseCurves(t *testing.T) {
	tests := []struct {
		name string
		fn   func(float64) float64
		t    float64
		want float64
	}{
		{"OutCubic(0.5)", EaseOutCubic, 0.5, 0.875},
		{"OutCubic(0.25)", EaseOutCubic, 0.25, 1 - math.Pow(0.75, 3)},
		// float32 curves land within 1e-7 of the closed form off the
		// dyadic points.
		{"OutCubic(0.1)", EaseOutCubic, 0.1, 0.271},
		{"InQuad(0.5)", EaseInQuad, 0.5, 0.25},
		{"InQuad(0.9)", EaseInQuad, 0.9, 0.81},
	}
	for _, tt := range tests {
		if got := tt.fn(tt.t); math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestLerpExactEndpoints(t *testing.T) {
	a, b := 0.1, 1e9+0.3
	if got := Lerp(a, b, 0); got != a {
		t.Errorf("Lerp(t=0) = %v, want %v", got, a)
	}
	if got := Lerp(a, b, 1); got != b {
		t.Errorf("Lerp(t=1) = %v, want %v", got, b)
	}
	assertNear(t, "Lerp(t=0.5)", Lerp(2, 4, 0.5), 3)

	v := LerpVec3(Vec3{0, 0, 0}, Vec3{2, 4, 8}, 0.25)
	if v != (Vec3{0.5, 1, 2}) {
		t.Errorf("LerpVec3 = %+v", v)
	}
}

func TestWrapBounds(t *testing.T) {
	const span = 15
	for _, v := range []float64{0, 7.4999, 7.5, 15, 22.5, -0.0001, -7.5, -15, 1e9, -1e9, 1e-300} {
		got := Wrap(v, span)
		if got < -span/2 || got >= span/2 {
			t.Errorf("Wrap(%v) = %v, outside [-7.5, 7.5)", v, got)
		}
	}
	assertNear(t, "Wrap(0)", Wrap(0, span), -7.5)
	assertNear(t, "Wrap(16)", Wrap(16, span), -6.5)
	assertNear(t, "Wrap(-1)", Wrap(-1, span), 6.5)
}

func TestPulse(t *testing.T) {
	assertNear(t, "Pulse at 0", Pulse(0.3, 0.2, 2, 0), 0.3)
	assertNear(t, "Pulse peak", Pulse(0.3, 0.2, 2, math.Pi/4), 0.5)
	assertNear(t, "Pulse trough", Pulse(0.3, 0.2, 2, 3*math.Pi/4), 0.1)
}
