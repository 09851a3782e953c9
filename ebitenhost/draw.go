package ebitenhost

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/backdrop"
)

// discSegments is the number of fan segments used for discs and rings.
const discSegments = 32

// minPointPx keeps distant points visible.
const minPointPx = 1.0

// drawStats counts the work done for one frame.
type drawStats struct {
	vertices  int
	drawCalls int
	culled    int
}

// renderer turns a composition into batched DrawTriangles32 calls. Buffers
// are reused across frames.
type renderer struct {
	verts []ebiten.Vertex
	inds  []uint32
	white *ebiten.Image
}

// whiteImage returns a 1x1 white source image. It is cut from the middle of
// a 3x3 image so that filtering never samples a transparent edge; vertices
// address it at source pixel (1, 1).
func (r *renderer) whiteImage() *ebiten.Image {
	if r.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		r.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return r.white
}

// draw renders comp onto dst with every alpha scaled by alpha.
func (r *renderer) draw(dst *ebiten.Image, comp *backdrop.Composition, alpha float64) drawStats {
	var st drawStats
	b := dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	cam := comp.Camera

	r.drawLights(dst, comp, w, h, alpha, &st)

	for _, l := range comp.Layers {
		if l.Hidden {
			continue
		}
		switch l.Kind {
		case backdrop.LayerPoints:
			r.drawPoints(dst, cam, l, w, h, alpha, &st)
		case backdrop.LayerLines:
			r.drawLines(dst, cam, l, w, h, alpha, &st)
		case backdrop.LayerDisc:
			r.drawDisc(dst, cam, l, w, h, alpha, &st)
		case backdrop.LayerRing:
			r.drawRing(dst, cam, l, w, h, alpha, &st)
		}
	}
	return st
}

// drawPoints emits one screen-aligned quad per vertex, sized by perspective.
func (r *renderer) drawPoints(dst *ebiten.Image, cam backdrop.Camera, l *backdrop.Layer, w, h, alpha float64, st *drawStats) {
	r.reset()
	for i, p := range l.Positions {
		pr, ok := cam.Project(l.World(p), w, h)
		if !ok {
			st.culled++
			continue
		}
		half := math.Max(l.VertexSize(i)*pr.Scale, minPointPx) / 2
		c, a := l.VertexColor(i)
		r.appendQuad(pr.X-half, pr.Y-half, pr.X+half, pr.Y+half, c, a*alpha)
	}
	r.flush(dst, l.Blend, st)
}

// drawLines strokes consecutive vertex pairs. Per-vertex colors use the
// segment start's color.
func (r *renderer) drawLines(dst *ebiten.Image, cam backdrop.Camera, l *backdrop.Layer, w, h, alpha float64, st *drawStats) {
	width := float32(math.Max(l.Size, 1))
	for i := 0; i+1 < len(l.Positions); i += 2 {
		a, okA := cam.Project(l.World(l.Positions[i]), w, h)
		b, okB := cam.Project(l.World(l.Positions[i+1]), w, h)
		if !okA || !okB {
			st.culled++
			continue
		}
		c, op := l.VertexColor(i)
		vector.StrokeLine(dst,
			float32(a.X), float32(a.Y), float32(b.X), float32(b.Y),
			width, toNRGBA(c.WithAlpha(c.A*op*alpha)), true)
		st.drawCalls++
		st.vertices += 2
	}
}

// drawDisc fills a circle facing the camera at the layer's offset.
func (r *renderer) drawDisc(dst *ebiten.Image, cam backdrop.Camera, l *backdrop.Layer, w, h, alpha float64, st *drawStats) {
	pr, ok := cam.Project(l.Offset, w, h)
	if !ok {
		st.culled++
		return
	}
	r.reset()
	r.appendAnnulus(pr.X, pr.Y, 0, layerRadius(l, l.Size)*pr.Scale, l.Color, l.Opacity*alpha)
	r.flush(dst, l.Blend, st)
}

// drawRing fills the annulus between Inner and Size.
func (r *renderer) drawRing(dst *ebiten.Image, cam backdrop.Camera, l *backdrop.Layer, w, h, alpha float64, st *drawStats) {
	pr, ok := cam.Project(l.Offset, w, h)
	if !ok {
		st.culled++
		return
	}
	r.reset()
	r.appendAnnulus(pr.X, pr.Y,
		layerRadius(l, l.Inner)*pr.Scale, layerRadius(l, l.Size)*pr.Scale,
		l.Color, l.Opacity*alpha)
	r.flush(dst, l.Blend, st)
}

// drawLights paints a soft additive glow at each point light.
func (r *renderer) drawLights(dst *ebiten.Image, comp *backdrop.Composition, w, h, alpha float64, st *drawStats) {
	const rings = 6
	for _, pl := range comp.Lighting.Points {
		pr, ok := comp.Camera.Project(pl.Position, w, h)
		if !ok {
			continue
		}
		reach := math.Min(w, h) * 0.08 * pl.Intensity
		r.reset()
		for k := rings; k >= 1; k-- {
			rad := reach * float64(k) / rings
			r.appendAnnulus(pr.X, pr.Y, 0, rad, pl.Color, 0.02*alpha)
		}
		r.flush(dst, backdrop.BlendAdd, st)
	}
}

func layerRadius(l *backdrop.Layer, v float64) float64 {
	if l.Scale == 0 {
		return v
	}
	return v * l.Scale
}

func (r *renderer) reset() {
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
}

// appendQuad adds an axis-aligned quad. Colors are premultiplied here.
func (r *renderer) appendQuad(x0, y0, x1, y1 float64, c backdrop.Color, a float64) {
	base := uint32(len(r.verts))
	cr, cg, cb, ca := premultiply(c, a)
	for _, p := range [4][2]float64{{x0, y0}, {x1, y0}, {x0, y1}, {x1, y1}} {
		r.verts = append(r.verts, ebiten.Vertex{
			DstX: float32(p[0]), DstY: float32(p[1]),
			SrcX: 1, SrcY: 1,
			ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
		})
	}
	// Two triangles: TL-TR-BL, TR-BR-BL
	r.inds = append(r.inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
}

// appendAnnulus adds a ring of quads between radii inner and outer. An inner
// radius of zero produces a filled disc.
func (r *renderer) appendAnnulus(cx, cy, inner, outer float64, c backdrop.Color, a float64) {
	if outer <= 0 || outer <= inner {
		return
	}
	cr, cg, cb, ca := premultiply(c, a)
	base := uint32(len(r.verts))
	for i := 0; i <= discSegments; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / discSegments)
		for _, rad := range [2]float64{inner, outer} {
			r.verts = append(r.verts, ebiten.Vertex{
				DstX: float32(cx + cos*rad), DstY: float32(cy + sin*rad),
				SrcX: 1, SrcY: 1,
				ColorR: cr, ColorG: cg, ColorB: cb, ColorA: ca,
			})
		}
	}
	for i := uint32(0); i < discSegments; i++ {
		v := base + i*2
		r.inds = append(r.inds, v, v+1, v+2, v+1, v+3, v+2)
	}
}

// flush submits the accumulated geometry as a single DrawTriangles32 call.
func (r *renderer) flush(dst *ebiten.Image, blend backdrop.BlendMode, st *drawStats) {
	if len(r.verts) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	op.Blend = ebitenBlend(blend)
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	dst.DrawTriangles32(r.verts, r.inds, r.whiteImage(), &op)
	st.vertices += len(r.verts)
	st.drawCalls++
	r.reset()
}

// ebitenBlend maps a backdrop blend mode onto ebiten's blend presets.
func ebitenBlend(b backdrop.BlendMode) ebiten.Blend {
	switch b {
	case backdrop.BlendAdd:
		return ebiten.BlendLighter
	default:
		return ebiten.BlendSourceOver
	}
}

// premultiply returns c's components premultiplied by its alpha times a.
func premultiply(c backdrop.Color, a float64) (r, g, b, alpha float32) {
	k := clampAlpha(c.A * a)
	return float32(c.R * k), float32(c.G * k), float32(c.B * k), float32(k)
}

func clampAlpha(a float64) float64 {
	return math.Max(0, math.Min(1, a))
}

// toNRGBA converts a straight-alpha Color to color.NRGBA.
func toNRGBA(c backdrop.Color) color.NRGBA {
	return color.NRGBA{
		R: uint8(clampAlpha(c.R)*255 + 0.5),
		G: uint8(clampAlpha(c.G)*255 + 0.5),
		B: uint8(clampAlpha(c.B)*255 + 0.5),
		A: uint8(clampAlpha(c.A)*255 + 0.5),
	}
}
