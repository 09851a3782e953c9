package backdrop

// Scene is one self-contained decorative animation. Its data is generated
// once by its constructor; Update rewrites that data in place for the given
// frame and Composition exposes it to renderers.
//
// Update must be a pure function of the frame and the generated data:
// calling it twice with the same Frame produces the same layers.
type Scene interface {
	// Name returns the registry name of the scene ("spear", "neural", ...).
	Name() string
	// Update advances the scene to f.Elapsed.
	Update(f Frame)
	// Composition returns the camera, lights and layers. The pointer is
	// stable for the scene's lifetime.
	Composition() *Composition
}

// Composition is what a host draws: a fixed camera, light constants and an
// ordered list of layers (first drawn first).
type Composition struct {
	Camera   Camera
	Lighting Lighting
	Layers   []*Layer
}

// Layer returns the layer with the given name, or nil.
func (c *Composition) Layer(name string) *Layer {
	for _, l := range c.Layers {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// VertexCount returns the number of vertices across all layers.
func (c *Composition) VertexCount() int {
	n := 0
	for _, l := range c.Layers {
		n += l.VertexCount()
	}
	return n
}

// LayerKind distinguishes how a layer's vertices are drawn.
type LayerKind uint8

const (
	LayerPoints LayerKind = iota // one sprite per vertex
	LayerLines                   // consecutive vertex pairs are segments
	LayerDisc                    // filled circle of radius Size at Offset
	LayerRing                    // annulus between Inner and Size at Offset
)

// Layer is a drawable group sharing one material and transform. Per-vertex
// slices are optional; when present they are index-aligned with Positions.
type Layer struct {
	Name string
	Kind LayerKind

	Positions []Vec3
	Colors    []Color   // per-vertex tint, overrides Color
	Alphas    []float64 // per-vertex opacity, multiplied with Opacity
	Sizes     []float64 // per-vertex size, overrides Size
	Glyphs    []rune    // per-vertex glyph for text-capable hosts

	Color   Color
	Size    float64 // point size, disc radius or ring outer radius
	Inner   float64 // ring inner radius
	Opacity float64
	Blend   BlendMode

	Offset   Vec3
	Rotation Euler
	Scale    float64 // uniform; zero means 1
	Hidden   bool
}

// World maps a layer-local vertex to scene space: scale, then rotate, then
// translate.
func (l *Layer) World(p Vec3) Vec3 {
	s := l.Scale
	if s == 0 {
		s = 1
	}
	return p.Scale(s).Rotate(l.Rotation).Add(l.Offset)
}

// VertexColor returns the tint and opacity for vertex i.
func (l *Layer) VertexColor(i int) (Color, float64) {
	c := l.Color
	if i < len(l.Colors) {
		c = l.Colors[i]
	}
	a := l.Opacity
	if i < len(l.Alphas) {
		a *= l.Alphas[i]
	}
	return c, a
}

// VertexSize returns the size for vertex i.
func (l *Layer) VertexSize(i int) float64 {
	if i < len(l.Sizes) {
		return l.Sizes[i]
	}
	return l.Size
}

// VertexCount returns the number of vertices the layer draws.
func (l *Layer) VertexCount() int {
	switch l.Kind {
	case LayerDisc, LayerRing:
		return 1
	}
	return len(l.Positions)
}
