package backdrop

import (
	"math"

	"github.com/tanema/gween/ease"
)

// Ease evaluates a gween easing curve as a unit reparameterization: t in
// [0, 1] maps to progress in [0, 1]. t is clamped first, so callers can pass
// raw phase fractions.
//
// gween evaluates in float32. The endpoints are exact, but in between the
// result can differ from the float64 closed form by about 1e-7, so compare
// interior values with a tolerance no tighter than 1e-6.
func Ease(fn ease.TweenFunc, t float64) float64 {
	t = clamp01(t)
	switch t {
	case 0:
		return 0
	case 1:
		return 1
	}
	return float64(fn(float32(t), 0, 1, 1))
}

// EaseOutCubic is 1-(1-t)^3: fast start, soft landing.
func EaseOutCubic(t float64) float64 { return Ease(ease.OutCubic, t) }

// EaseInQuad is t^2: slow start, accelerating.
func EaseInQuad(t float64) float64 { return Ease(ease.InQuad, t) }

// Lerp interpolates between a and b. Written as a·(1-t) + b·t so that t=0
// yields a and t=1 yields b exactly.
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// LerpVec3 interpolates componentwise between a and b.
func LerpVec3(a, b Vec3, t float64) Vec3 {
	return Vec3{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t), Lerp(a.Z, b.Z, t)}
}

// Wrap returns v mod span shifted into [-span/2, span/2). Negative inputs
// wrap the same way as positive ones.
func Wrap(v, span float64) float64 {
	m := math.Mod(v, span)
	if m < 0 {
		m += span
	}
	// math.Mod of a tiny negative can round up to exactly span.
	if m >= span {
		m = 0
	}
	return m - span/2
}

// Pulse returns base + amp·sin(rate·t).
func Pulse(base, amp, rate, t float64) float64 {
	return base + amp*math.Sin(rate*t)
}
