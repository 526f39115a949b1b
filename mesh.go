package orbit3d

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

type meshBuffers struct {
	vertex Buffer
	index  Buffer
	count  int
}

func uploadGeometry(backend Backend, g *Geometry) (meshBuffers, error) {
	vb, err := backend.CreateBuffer()
	if err != nil {
		return meshBuffers{}, errors.Wrap(err, "create vertex buffer")
	}
	ib, err := backend.CreateBuffer()
	if err != nil {
		backend.DeleteBuffer(vb)
		return meshBuffers{}, errors.Wrap(err, "create index buffer")
	}

	backend.BindBuffer(ArrayBuffer, vb)
	backend.UploadVertexData(vb, g.Vertices)
	backend.BindBuffer(ElementArrayBuffer, ib)
	backend.UploadIndexData(ib, g.Indices)

	return meshBuffers{vertex: vb, index: ib, count: len(g.Indices)}, nil
}

type geometryKey struct {
	shape Shape
	color color.RGBA
}

type sharedGeometry struct {
	geometry *Geometry
	buffers  meshBuffers
}

// GeometryCache hands out one uploaded Geometry per shape and colour so
// that meshes of the same primitive share vertex data and buffers.
type GeometryCache struct {
	backend Backend
	entries map[geometryKey]*sharedGeometry
}

func NewGeometryCache(backend Backend) *GeometryCache {
	return &GeometryCache{
		backend: backend,
		entries: make(map[geometryKey]*sharedGeometry),
	}
}

func (c *GeometryCache) get(shape Shape, col color.RGBA) (*sharedGeometry, error) {
	key := geometryKey{shape: shape, color: col}
	if e, ok := c.entries[key]; ok {
		return e, nil
	}

	g, err := BuildGeometry(shape, col)
	if err != nil {
		return nil, err
	}
	bufs, err := uploadGeometry(c.backend, g)
	if err != nil {
		return nil, errors.Wrapf(err, "upload %s", shape.Kind)
	}

	e := &sharedGeometry{geometry: g, buffers: bufs}
	c.entries[key] = e
	return e, nil
}

func (c *GeometryCache) Len() int {
	return len(c.entries)
}

// Mesh is a drawable leaf: a local Transform, the geometry it draws and the
// material it draws with.
type Mesh struct {
	Name      string
	Transform *Transform

	backend  Backend
	material *Material
	geometry *Geometry
	buffers  meshBuffers
	private  bool
}

func NewMesh(cache *GeometryCache, material *Material, name string, shape Shape, col color.RGBA) (*Mesh, error) {
	shared, err := cache.get(shape, col)
	if err != nil {
		return nil, errors.Wrapf(err, "mesh %q", name)
	}
	return &Mesh{
		Name:      name,
		Transform: NewTransform(),
		backend:   cache.backend,
		material:  material,
		geometry:  shared.geometry,
		buffers:   shared.buffers,
	}, nil
}

// NewPivot returns a mesh with a transform and nothing to draw. It serves as
// a model root that only carries the group's pose.
func NewPivot(name string) *Mesh {
	return &Mesh{Name: name, Transform: NewTransform()}
}

// Pivot reports whether the mesh has no geometry.
func (m *Mesh) Pivot() bool {
	return m.geometry == nil
}

func (m *Mesh) Geometry() *Geometry {
	return m.geometry
}

func (m *Mesh) Material() *Material {
	return m.material
}

// Draw renders the mesh at parent * local. Every binding the draw relies on
// is set here. Pivots draw nothing.
func (m *Mesh) Draw(parent mgl64.Mat4) error {
	if m.Pivot() {
		return nil
	}
	if m.buffers.vertex == 0 || m.buffers.index == 0 {
		return errors.Errorf("mesh %q has no buffers", m.Name)
	}

	m.material.Bind()
	m.backend.BindBuffer(ArrayBuffer, m.buffers.vertex)
	m.backend.BindBuffer(ElementArrayBuffer, m.buffers.index)
	m.backend.SetVertexLayout(m.material.Layout())
	m.material.SetModelView(parent.Mul4(m.Transform.Matrix()))
	m.backend.DrawIndexed(m.geometry.Topology, m.buffers.count)
	return nil
}

// SetColor rebuilds the mesh's own copy of its geometry in colour c.
func (m *Mesh) SetColor(c color.RGBA) error {
	if m.Pivot() {
		return errors.Wrapf(ErrNoGeometry, "recolor %q", m.Name)
	}
	g, err := BuildGeometry(m.geometry.Shape, c)
	if err != nil {
		return errors.Wrapf(err, "recolor %q", m.Name)
	}
	return m.replaceGeometry(g)
}

// SetFaceColor recolours one face of a cube or rectangle.
func (m *Mesh) SetFaceColor(face int, c color.RGBA) error {
	if m.Pivot() {
		return errors.Wrapf(ErrNoGeometry, "recolor %q", m.Name)
	}
	faces, perFace, ok := m.geometry.Shape.Faces()
	if !ok {
		return errors.Wrapf(ErrNoFaceLayout, "mesh %q is a %s", m.Name, m.geometry.Shape.Kind)
	}
	if face < 0 || face >= faces {
		return errors.Wrapf(ErrFaceOutOfRange, "mesh %q face %d, have %d", m.Name, face, faces)
	}

	g := m.geometry.Clone()
	for i := 0; i < perFace; i++ {
		g.SetVertexColor(face*perFace+i, c)
	}
	return m.replaceGeometry(g)
}

func (m *Mesh) replaceGeometry(g *Geometry) error {
	bufs, err := uploadGeometry(m.backend, g)
	if err != nil {
		return errors.Wrapf(err, "mesh %q", m.Name)
	}
	m.Release()
	m.geometry = g
	m.buffers = bufs
	m.private = true
	return nil
}

// Release frees buffers the mesh owns. Shared buffers stay with the cache.
func (m *Mesh) Release() {
	if !m.private {
		return
	}
	m.backend.DeleteBuffer(m.buffers.vertex)
	m.backend.DeleteBuffer(m.buffers.index)
	m.buffers = meshBuffers{}
	m.private = false
}
