package orbit3d

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGeometryIndicesInRange(t *testing.T) {
	shapes := []Shape{
		Cube(1),
		Rect(2, 1, 0.5),
		Sphere(1, 8, 12),
		Hemisphere(1, 4, 12),
		Cylinder(0.5, 2, 10),
		CircularPlane(1, 16),
	}

	for _, s := range shapes {
		t.Run(s.Kind.String(), func(t *testing.T) {
			g, err := BuildGeometry(s, testGrey)
			require.NoError(t, err)

			require.Zero(t, len(g.Vertices)%VertexStride)
			require.NotEmpty(t, g.Indices)
			assert.Zero(t, len(g.Indices)%3, "triangle list")
			assert.Equal(t, Triangles, g.Topology)

			for i, idx := range g.Indices {
				require.Less(t, int(idx), g.VertexCount(), "index %d", i)
			}
		})
	}
}

func TestBuildGeometryCounts(t *testing.T) {
	testCases := []struct {
		name      string
		shape     Shape
		vertices  int
		triangles int
	}{
		{"Cube", Cube(1), 24, 12},
		{"Sphere", Sphere(1, 4, 6), 5 * 7, 4 * 6 * 2},
		{"Cylinder", Cylinder(1, 1, 8), 16, 16},
		{"Circular plane", CircularPlane(1, 8), 9, 8},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := BuildGeometry(tc.shape, testGrey)
			require.NoError(t, err)
			assert.Equal(t, tc.vertices, g.VertexCount())
			assert.Equal(t, tc.triangles, len(g.Indices)/3)
		})
	}
}

func TestHemisphereStaysAboveEquator(t *testing.T) {
	g, err := BuildGeometry(Hemisphere(2, 6, 12), testGrey)
	require.NoError(t, err)

	for i := 0; i < g.VertexCount(); i++ {
		assert.GreaterOrEqual(t, g.Vertices[i*VertexStride+1], float32(-1e-6))
	}
}

func TestBuildGeometryColour(t *testing.T) {
	c := color.RGBA{R: 255, G: 0, B: 51, A: 255}
	g, err := BuildGeometry(Rect(1, 1, 1), c)
	require.NoError(t, err)

	for i := 0; i < g.VertexCount(); i++ {
		base := i*VertexStride + colorOffset
		assert.Equal(t, []float32{1, 0, 0.2, 1}, g.Vertices[base:base+4])
	}
}

func TestBuildGeometryRejectsBadShapes(t *testing.T) {
	testCases := []struct {
		name    string
		shape   Shape
		wantErr error
	}{
		{"Zero cube", Cube(0), ErrInvalidShape},
		{"Negative rect depth", Rect(1, 1, -1), ErrInvalidShape},
		{"Sphere without segments", Sphere(1, 4, 2), ErrInvalidShape},
		{"Cylinder without height", Cylinder(1, 0, 8), ErrInvalidShape},
		{"Ring without segments", Ring(1, 2), ErrInvalidShape},
		{"Too many vertices", Sphere(1, 300, 300), ErrTooManyVertices},
		{"Unknown kind", Shape{Kind: ShapeKind(99)}, ErrUnknownShape},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := BuildGeometry(tc.shape, testGrey)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestRingIsClosedLineLoop(t *testing.T) {
	g, err := BuildGeometry(Ring(2, 8), testGrey)
	require.NoError(t, err)

	assert.Equal(t, Lines, g.Topology)
	assert.Equal(t, 8, g.VertexCount())
	require.Len(t, g.Indices, 16)
	assert.Equal(t, []uint16{0, 1, 1, 2}, g.Indices[:4])
	assert.Equal(t, []uint16{7, 0}, g.Indices[14:])

	for i := 0; i < g.VertexCount(); i++ {
		v := g.Vertices[i*VertexStride : i*VertexStride+3]
		assert.Zero(t, v[1])
		assert.InDelta(t, 2, math.Hypot(float64(v[0]), float64(v[2])), 1e-5)
	}
}

func TestShapeFaces(t *testing.T) {
	faces, per, ok := Cube(1).Faces()
	assert.True(t, ok)
	assert.Equal(t, 6, faces)
	assert.Equal(t, 4, per)

	_, _, ok = Sphere(1, 4, 4).Faces()
	assert.False(t, ok)
	_, _, ok = Ring(1, 8).Faces()
	assert.False(t, ok)
}
