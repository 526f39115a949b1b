package orbit3d

import (
	"fmt"
	"image/color"
	"math"

	"github.com/pkg/errors"
)

// Vertex layout: position(3) colour(4) normal(3) uv(2).
const (
	VertexStride   = 12
	colorOffset    = 3
	normalOffset   = 7
	uvOffset       = 10
	bytesPerFloat  = 4
	maxVertexCount = math.MaxUint16 + 1
)

// Cube and rectangle faces: front, back, left, right, top, bottom.
const (
	boxFaceCount       = 6
	boxVerticesPerFace = 4
)

type ShapeKind int

const (
	ShapeCube ShapeKind = iota
	ShapeRect
	ShapeSphere
	ShapeHemisphere
	ShapeCylinder
	ShapeCircularPlane
	ShapeRing
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeCube:
		return "cube"
	case ShapeRect:
		return "rect"
	case ShapeSphere:
		return "sphere"
	case ShapeHemisphere:
		return "hemisphere"
	case ShapeCylinder:
		return "cylinder"
	case ShapeCircularPlane:
		return "circular-plane"
	case ShapeRing:
		return "ring"
	}
	return fmt.Sprintf("shape(%d)", int(k))
}

// Shape describes a primitive. Which fields matter depends on Kind:
//
//	cube:           Size (half extent)
//	rect:           Width, Height, Depth
//	sphere:         Radius, Rings, Segments
//	hemisphere:     Radius, Rings, Segments
//	cylinder:       Radius, Height, Segments
//	circular plane: Radius, Segments
//	ring:           Radius, Segments (drawn as lines)
type Shape struct {
	Kind                 ShapeKind
	Size                 float64
	Width, Height, Depth float64
	Radius               float64
	Rings, Segments      int
}

func Cube(size float64) Shape { return Shape{Kind: ShapeCube, Size: size} }

func Rect(width, height, depth float64) Shape {
	return Shape{Kind: ShapeRect, Width: width, Height: height, Depth: depth}
}

func Sphere(radius float64, rings, segments int) Shape {
	return Shape{Kind: ShapeSphere, Radius: radius, Rings: rings, Segments: segments}
}

func Hemisphere(radius float64, rings, segments int) Shape {
	return Shape{Kind: ShapeHemisphere, Radius: radius, Rings: rings, Segments: segments}
}

func Cylinder(radius, height float64, segments int) Shape {
	return Shape{Kind: ShapeCylinder, Radius: radius, Height: height, Segments: segments}
}

func CircularPlane(radius float64, segments int) Shape {
	return Shape{Kind: ShapeCircularPlane, Radius: radius, Segments: segments}
}

func Ring(radius float64, segments int) Shape {
	return Shape{Kind: ShapeRing, Radius: radius, Segments: segments}
}

// Faces reports the fixed per-face layout used by SetFaceColor.
func (s Shape) Faces() (faces, verticesPerFace int, ok bool) {
	switch s.Kind {
	case ShapeCube, ShapeRect:
		return boxFaceCount, boxVerticesPerFace, true
	}
	return 0, 0, false
}

// Geometry is interleaved vertex data plus indices assembled per Topology.
type Geometry struct {
	Shape    Shape
	Vertices []float32
	Indices  []uint16
	Topology Topology
}

func (g *Geometry) VertexCount() int {
	return len(g.Vertices) / VertexStride
}

func (g *Geometry) Clone() *Geometry {
	c := &Geometry{
		Shape:    g.Shape,
		Vertices: make([]float32, len(g.Vertices)),
		Indices:  make([]uint16, len(g.Indices)),
		Topology: g.Topology,
	}
	copy(c.Vertices, g.Vertices)
	copy(c.Indices, g.Indices)
	return c
}

// SetVertexColor overwrites the colour of vertex i.
func (g *Geometry) SetVertexColor(i int, c color.RGBA) {
	r, gr, b, a := rgbaFloats(c)
	base := i*VertexStride + colorOffset
	g.Vertices[base] = r
	g.Vertices[base+1] = gr
	g.Vertices[base+2] = b
	g.Vertices[base+3] = a
}

// BuildGeometry tessellates shape with every vertex coloured c.
func BuildGeometry(shape Shape, c color.RGBA) (*Geometry, error) {
	if err := shape.validate(); err != nil {
		return nil, err
	}

	b := &geometryBuilder{color: c}
	topology := Triangles
	switch shape.Kind {
	case ShapeCube:
		s := shape.Size
		b.box(s, s, s)
	case ShapeRect:
		b.box(shape.Width/2, shape.Height/2, shape.Depth/2)
	case ShapeSphere:
		b.sphere(shape.Radius, shape.Rings, shape.Segments, math.Pi)
	case ShapeHemisphere:
		b.sphere(shape.Radius, shape.Rings, shape.Segments, math.Pi/2)
	case ShapeCylinder:
		b.cylinder(shape.Radius, shape.Height, shape.Segments)
	case ShapeCircularPlane:
		b.disc(shape.Radius, shape.Segments)
	case ShapeRing:
		b.ring(shape.Radius, shape.Segments)
		topology = Lines
	default:
		return nil, errors.Wrapf(ErrUnknownShape, "kind %d", int(shape.Kind))
	}

	if b.count > maxVertexCount {
		return nil, errors.Wrapf(ErrTooManyVertices, "%s has %d vertices", shape.Kind, b.count)
	}

	return &Geometry{
		Shape:    shape,
		Vertices: b.verts,
		Indices:  b.indices,
		Topology: topology,
	}, nil
}

func (s Shape) validate() error {
	positive := func(name string, v float64) error {
		if !(v > 0) {
			return errors.Wrapf(ErrInvalidShape, "%s %s must be positive, got %v", s.Kind, name, v)
		}
		return nil
	}
	atLeast := func(name string, v, min int) error {
		if v < min {
			return errors.Wrapf(ErrInvalidShape, "%s %s must be at least %d, got %d", s.Kind, name, min, v)
		}
		return nil
	}

	var errs []error
	switch s.Kind {
	case ShapeCube:
		errs = append(errs, positive("size", s.Size))
	case ShapeRect:
		errs = append(errs, positive("width", s.Width), positive("height", s.Height), positive("depth", s.Depth))
	case ShapeSphere, ShapeHemisphere:
		errs = append(errs, positive("radius", s.Radius), atLeast("rings", s.Rings, 1), atLeast("segments", s.Segments, 3))
	case ShapeCylinder:
		errs = append(errs, positive("radius", s.Radius), positive("height", s.Height), atLeast("segments", s.Segments, 3))
	case ShapeCircularPlane, ShapeRing:
		errs = append(errs, positive("radius", s.Radius), atLeast("segments", s.Segments, 3))
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

type geometryBuilder struct {
	color   color.RGBA
	verts   []float32
	indices []uint16
	count   int
}

func (b *geometryBuilder) vertex(x, y, z, nx, ny, nz, u, v float64) int {
	r, g, bl, a := rgbaFloats(b.color)
	b.verts = append(b.verts,
		float32(x), float32(y), float32(z),
		r, g, bl, a,
		float32(nx), float32(ny), float32(nz),
		float32(u), float32(v),
	)
	b.count++
	return b.count - 1
}

func (b *geometryBuilder) tri(i0, i1, i2 int) {
	b.indices = append(b.indices, uint16(i0), uint16(i1), uint16(i2))
}

func (b *geometryBuilder) quad(i0, i1, i2, i3 int) {
	b.tri(i0, i1, i2)
	b.tri(i0, i2, i3)
}

// box emits 6 faces of 4 vertices each, in face order.
func (b *geometryBuilder) box(hx, hy, hz float64) {
	type face struct {
		corners [4][3]float64
		normal  [3]float64
	}
	faces := [boxFaceCount]face{
		{[4][3]float64{{-hx, -hy, hz}, {-hx, hy, hz}, {hx, hy, hz}, {hx, -hy, hz}}, [3]float64{0, 0, 1}},
		{[4][3]float64{{-hx, -hy, -hz}, {-hx, hy, -hz}, {hx, hy, -hz}, {hx, -hy, -hz}}, [3]float64{0, 0, -1}},
		{[4][3]float64{{-hx, -hy, -hz}, {-hx, hy, -hz}, {-hx, hy, hz}, {-hx, -hy, hz}}, [3]float64{-1, 0, 0}},
		{[4][3]float64{{hx, -hy, -hz}, {hx, hy, -hz}, {hx, hy, hz}, {hx, -hy, hz}}, [3]float64{1, 0, 0}},
		{[4][3]float64{{-hx, hy, -hz}, {-hx, hy, hz}, {hx, hy, hz}, {hx, hy, -hz}}, [3]float64{0, 1, 0}},
		{[4][3]float64{{-hx, -hy, -hz}, {-hx, -hy, hz}, {hx, -hy, hz}, {hx, -hy, -hz}}, [3]float64{0, -1, 0}},
	}
	uvs := [4][2]float64{{0, 0}, {0, 1}, {1, 1}, {1, 0}}

	for _, f := range faces {
		var idx [4]int
		for i, p := range f.corners {
			idx[i] = b.vertex(p[0], p[1], p[2], f.normal[0], f.normal[1], f.normal[2], uvs[i][0], uvs[i][1])
		}
		b.quad(idx[0], idx[1], idx[2], idx[3])
	}
}

// sphere builds a latitude/longitude grid from the north pole down to
// polar angle maxTheta (Pi for a full sphere, Pi/2 for a hemisphere).
func (b *geometryBuilder) sphere(r float64, rings, segments int, maxTheta float64) {
	for i := 0; i <= rings; i++ {
		theta := float64(i) * maxTheta / float64(rings)
		for j := 0; j <= segments; j++ {
			phi := 2 * math.Pi * float64(j) / float64(segments)

			nx := math.Sin(theta) * math.Cos(phi)
			ny := math.Cos(theta)
			nz := math.Sin(theta) * math.Sin(phi)

			b.vertex(nx*r, ny*r, nz*r, nx, ny, nz,
				float64(j)/float64(segments), float64(i)/float64(rings))
		}
	}

	for i := 0; i < rings; i++ {
		for j := 0; j < segments; j++ {
			v1 := i*(segments+1) + j
			v2 := v1 + segments + 1
			v3 := v1 + 1
			v4 := v2 + 1
			b.tri(v1, v2, v3)
			b.tri(v3, v2, v4)
		}
	}
}

// cylinder is an open tube standing on the XZ plane.
func (b *geometryBuilder) cylinder(r, h float64, segments int) {
	for _, y := range []float64{0, h} {
		for j := 0; j < segments; j++ {
			theta := 2 * math.Pi * float64(j) / float64(segments)
			nx, nz := math.Cos(theta), math.Sin(theta)
			b.vertex(nx*r, y, nz*r, nx, 0, nz, float64(j)/float64(segments), y/h)
		}
	}

	for i := 0; i < segments; i++ {
		next := (i + 1) % segments
		b.tri(i, next, i+segments)
		b.tri(next, next+segments, i+segments)
	}
}

// disc is a triangle fan in the XZ plane facing +Y.
func (b *geometryBuilder) disc(r float64, segments int) {
	centre := b.vertex(0, 0, 0, 0, 1, 0, 0.5, 0.5)
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		x, z := math.Cos(theta), math.Sin(theta)
		b.vertex(x*r, 0, z*r, 0, 1, 0, 0.5+x/2, 0.5+z/2)
	}
	for i := 0; i < segments; i++ {
		b.tri(centre, 1+i, 1+(i+1)%segments)
	}
}

// ring is a closed loop of line segments in the XZ plane.
func (b *geometryBuilder) ring(r float64, segments int) {
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		x, z := math.Cos(theta), math.Sin(theta)
		b.vertex(x*r, 0, z*r, 0, 1, 0, float64(i)/float64(segments), 0)
	}
	for i := 0; i < segments; i++ {
		b.indices = append(b.indices, uint16(i), uint16((i+1)%segments))
	}
}

func rgbaFloats(c color.RGBA) (r, g, b, a float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255
}
