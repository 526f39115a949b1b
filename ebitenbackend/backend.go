// Package ebitenbackend runs the vertex stage on the CPU and paints the
// resulting triangles onto an Ebitengine screen, far to near.
package ebitenbackend

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	"github.com/smasonuk/orbit3d"
)

const textureUnits = 8

type buffer struct {
	floats  []float32
	indices []uint16
}

type texture struct {
	img    *image.RGBA
	ebiten *ebiten.Image
}

// triangle is a screen-space triangle waiting to be painted.
type triangle struct {
	verts [3]ebiten.Vertex
	depth float64
	tex   orbit3d.Texture
}

// line is a screen-space segment, painted after all triangles.
type line struct {
	x0, y0, x1, y1 float32
	color          color.RGBA
}

// Backend implements orbit3d.Backend. Draw calls only collect triangles;
// Flush paints them.
type Backend struct {
	width, height int

	current *program
	layout  []orbit3d.VertexAttrib

	buffers    map[orbit3d.Buffer]*buffer
	nextBuffer orbit3d.Buffer
	array      orbit3d.Buffer
	element    orbit3d.Buffer

	matrices map[*program]map[int32]mgl32.Mat4
	ints     map[*program]map[int32]int32

	textures    map[orbit3d.Texture]*texture
	nextTexture orbit3d.Texture
	units       [textureUnits]orbit3d.Texture

	clear     color.RGBA
	triangles []triangle
	lines     []line
}

func New(width, height int) *Backend {
	return &Backend{
		width:    width,
		height:   height,
		buffers:  make(map[orbit3d.Buffer]*buffer),
		matrices: make(map[*program]map[int32]mgl32.Mat4),
		ints:     make(map[*program]map[int32]int32),
		textures: make(map[orbit3d.Texture]*texture),
	}
}

func (b *Backend) SetViewport(width, height int) {
	b.width, b.height = width, height
}

func (b *Backend) CompileProgram(vertexSource, fragmentSource string) (orbit3d.Program, error) {
	p, err := parseProgram(vertexSource, fragmentSource)
	if err != nil {
		return nil, errors.Wrap(err, "compile program")
	}
	b.matrices[p] = make(map[int32]mgl32.Mat4)
	b.ints[p] = make(map[int32]int32)
	return p, nil
}

func (b *Backend) UseProgram(p orbit3d.Program) {
	prog, _ := p.(*program)
	b.current = prog
}

func (b *Backend) CreateBuffer() (orbit3d.Buffer, error) {
	b.nextBuffer++
	b.buffers[b.nextBuffer] = &buffer{}
	return b.nextBuffer, nil
}

func (b *Backend) DeleteBuffer(id orbit3d.Buffer) {
	delete(b.buffers, id)
	if b.array == id {
		b.array = 0
	}
	if b.element == id {
		b.element = 0
	}
}

func (b *Backend) BindBuffer(target orbit3d.BufferTarget, id orbit3d.Buffer) {
	switch target {
	case orbit3d.ArrayBuffer:
		b.array = id
	case orbit3d.ElementArrayBuffer:
		b.element = id
	}
}

func (b *Backend) UploadVertexData(id orbit3d.Buffer, data []float32) {
	if buf, ok := b.buffers[id]; ok {
		buf.floats = append(buf.floats[:0], data...)
	}
}

func (b *Backend) UploadIndexData(id orbit3d.Buffer, data []uint16) {
	if buf, ok := b.buffers[id]; ok {
		buf.indices = append(buf.indices[:0], data...)
	}
}

func (b *Backend) SetVertexLayout(attribs []orbit3d.VertexAttrib) {
	b.layout = append(b.layout[:0], attribs...)
}

func (b *Backend) SetUniformMatrix4(location int32, m mgl32.Mat4) {
	if b.current == nil || location < 0 {
		return
	}
	b.matrices[b.current][location] = m
}

func (b *Backend) SetUniformInt(location int32, v int32) {
	if b.current == nil || location < 0 {
		return
	}
	b.ints[b.current][location] = v
}

func (b *Backend) CreateTexture(img image.Image) (orbit3d.Texture, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return 0, errors.New("create texture: empty image")
	}
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	b.nextTexture++
	b.textures[b.nextTexture] = &texture{img: rgba}
	return b.nextTexture, nil
}

func (b *Backend) BindTexture(unit int, t orbit3d.Texture) {
	if unit >= 0 && unit < textureUnits {
		b.units[unit] = t
	}
}

// Clear starts a new frame.
func (b *Backend) Clear(r, g, bl, a float32) {
	b.clear = color.RGBA{R: unitByte(r), G: unitByte(g), B: unitByte(bl), A: unitByte(a)}
	b.triangles = b.triangles[:0]
	b.lines = b.lines[:0]
}

// Triangles is the number of triangles collected since the last Clear.
func (b *Backend) Triangles() int {
	return len(b.triangles)
}

func unitByte(v float32) uint8 {
	return uint8(math.Round(float64(mgl32.Clamp(v, 0, 1)) * 255))
}

// attribute reads the components of one attribute of vertex i.
func attribute(data []float32, a orbit3d.VertexAttrib, i int) []float32 {
	start := (i*int(a.Stride) + a.Offset) / 4
	end := start + int(a.Size)
	if start < 0 || end > len(data) {
		return nil
	}
	return data[start:end]
}

func (b *Backend) attrib(name string) (orbit3d.VertexAttrib, bool) {
	loc := b.current.AttribLocation(name)
	if loc < 0 {
		return orbit3d.VertexAttrib{}, false
	}
	for _, a := range b.layout {
		if a.Location == loc {
			return a, true
		}
	}
	return orbit3d.VertexAttrib{}, false
}

func (b *Backend) matrix(name string) mgl32.Mat4 {
	if m, ok := b.matrices[b.current][b.current.UniformLocation(name)]; ok {
		return m
	}
	return mgl32.Ident4()
}

// DrawIndexed runs the vertex stage over the bound buffers and queues the
// visible triangles.
func (b *Backend) DrawIndexed(topology orbit3d.Topology, count int) {
	if b.current == nil {
		return
	}
	vb, ib := b.buffers[b.array], b.buffers[b.element]
	if vb == nil || ib == nil {
		return
	}
	pos, ok := b.attrib(orbit3d.AttribPosition)
	if !ok {
		return
	}
	col, hasColor := b.attrib(orbit3d.AttribColor)
	nrm, hasNormal := b.attrib(orbit3d.AttribNormal)
	uv, hasUV := b.attrib(orbit3d.AttribUV)

	modelView := b.matrix(orbit3d.UniformModelView)
	mvp := b.matrix(orbit3d.UniformProjection).Mul4(modelView)
	normalMatrix := modelView.Mat3()

	var tex orbit3d.Texture
	if b.current.sampler {
		unit := b.ints[b.current][b.current.UniformLocation(orbit3d.UniformSampler)]
		if unit >= 0 && unit < textureUnits {
			tex = b.units[unit]
		}
	}

	shade := func(i int) (vertex, bool) {
		p := attribute(vb.floats, pos, i)
		if p == nil {
			return vertex{}, false
		}
		clip := mvp.Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1})

		v := vertex{
			pos:   [4]float64{float64(clip[0]), float64(clip[1]), float64(clip[2]), float64(clip[3])},
			color: [4]float32{1, 1, 1, 1},
		}
		if hasColor {
			if c := attribute(vb.floats, col, i); c != nil {
				copy(v.color[:], c)
			}
		}
		light := float32(1)
		if hasNormal {
			if n := attribute(vb.floats, nrm, i); n != nil {
				light = lambert(normalMatrix.Mul3x1(mgl32.Vec3{n[0], n[1], n[2]}))
			}
		}
		for k := 0; k < 3; k++ {
			v.color[k] *= light
		}
		if hasUV {
			if t := attribute(vb.floats, uv, i); t != nil {
				v.uv = [2]float32{t[0], t[1]}
			}
		}
		return v, true
	}

	indices := ib.indices
	if count < len(indices) {
		indices = indices[:count]
	}
	if topology == orbit3d.Lines {
		for i := 0; i+1 < len(indices); i += 2 {
			a, okA := shade(int(indices[i]))
			c, okC := shade(int(indices[i+1]))
			if okA && okC {
				b.addLine(a, c)
			}
		}
		return
	}

	for _, tri := range assemble(topology, indices) {
		var poly [3]vertex
		ok := true
		for k, idx := range tri {
			if poly[k], ok = shade(int(idx)); !ok {
				break
			}
		}
		if ok {
			b.rasterize(poly[:], tex)
		}
	}
}

var lightDir = mgl32.Vec3{0.5, 0.7, 1.0}.Normalize()

// lambert matches the lighting term of the GLSL programs.
func lambert(n mgl32.Vec3) float32 {
	if n.Len() == 0 {
		return 1
	}
	return 0.35 + 0.65*float32(math.Max(float64(n.Normalize().Dot(lightDir)), 0))
}

// assemble turns an index stream into triangles.
func assemble(topology orbit3d.Topology, indices []uint16) [][3]uint16 {
	if topology != orbit3d.Triangles {
		return nil
	}
	var out [][3]uint16
	for i := 0; i+2 < len(indices); i += 3 {
		out = append(out, [3]uint16{indices[i], indices[i+1], indices[i+2]})
	}
	return out
}

// rasterize clips a triangle at the near plane and queues the pieces in
// screen coordinates.
func (b *Backend) rasterize(poly []vertex, tex orbit3d.Texture) {
	clipped := clipPolygonAgainstNearPlane(poly)
	if len(clipped) < 3 {
		return
	}

	screen := make([]ebiten.Vertex, len(clipped))
	depths := make([]float64, len(clipped))
	for i, v := range clipped {
		w := v.pos[3]
		if w <= 0 {
			w = 1e-9
		}
		x, y := projectToScreen(v.pos, b.width, b.height)
		screen[i] = ebiten.Vertex{
			DstX:   x,
			DstY:   y,
			SrcX:   v.uv[0],
			SrcY:   v.uv[1],
			ColorR: v.color[0],
			ColorG: v.color[1],
			ColorB: v.color[2],
			ColorA: v.color[3],
		}
		depths[i] = v.pos[2] / w
	}

	for i := 2; i < len(screen); i++ {
		b.triangles = append(b.triangles, triangle{
			verts: [3]ebiten.Vertex{screen[0], screen[i-1], screen[i]},
			depth: (depths[0] + depths[i-1] + depths[i]) / 3,
			tex:   tex,
		})
	}
}

// addLine clips a segment at the near plane and queues it.
func (b *Backend) addLine(a, c vertex) {
	da, dc := nearDistance(a), nearDistance(c)
	switch {
	case da < 0 && dc < 0:
		return
	case da < 0:
		a = intersectNearPlane(a, c)
	case dc < 0:
		c = intersectNearPlane(a, c)
	}
	x0, y0 := projectToScreen(a.pos, b.width, b.height)
	x1, y1 := projectToScreen(c.pos, b.width, b.height)
	col := color.RGBA{
		R: unitByte(a.color[0]),
		G: unitByte(a.color[1]),
		B: unitByte(a.color[2]),
		A: unitByte(a.color[3]),
	}
	b.lines = append(b.lines, line{x0: x0, y0: y0, x1: x1, y1: y1, color: col})
}

// projectToScreen divides by w and maps normalised device coordinates to
// pixels with y pointing down.
func projectToScreen(clip [4]float64, width, height int) (float32, float32) {
	w := clip[3]
	if w <= 0 {
		w = 1e-9
	}
	x := (clip[0]/w + 1) / 2 * float64(width)
	y := (1 - clip[1]/w) / 2 * float64(height)
	return float32(x), float32(y)
}

// sortTriangles orders triangles far to near.
func sortTriangles(tris []triangle) {
	sort.SliceStable(tris, func(i, j int) bool {
		return tris[i].depth > tris[j].depth
	})
}

// Flush paints the collected triangles far to near onto screen.
func (b *Backend) Flush(screen *ebiten.Image) {
	screen.Fill(b.clear)
	sortTriangles(b.triangles)

	batch := newBatcher(screen)
	for _, t := range b.triangles {
		src, w, h, solid := b.source(t.tex)
		verts := t.verts
		for k := range verts {
			if solid {
				verts[k].SrcX, verts[k].SrcY = 1, 1
			} else {
				verts[k].SrcX *= w
				verts[k].SrcY *= h
			}
		}
		batch.add(src, verts)
	}
	batch.flush()

	for _, l := range b.lines {
		drawLine(screen, l)
	}
}

// source returns the image a triangle samples and its size. solid means
// the triangle is flat coloured.
func (b *Backend) source(id orbit3d.Texture) (img *ebiten.Image, w, h float32, solid bool) {
	t, ok := b.textures[id]
	if id == 0 || !ok {
		return solidWhite(), 1, 1, true
	}
	if t.ebiten == nil {
		t.ebiten = ebiten.NewImageFromImage(t.img)
	}
	size := t.img.Bounds().Size()
	return t.ebiten, float32(size.X), float32(size.Y), false
}
