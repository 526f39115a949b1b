package orbit3d

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// recordingBackend is a Backend for tests. It keeps buffer contents and
// records every draw with the uniforms bound at the time.
type recordingBackend struct {
	failCompile bool

	programs []*fakeProgram
	current  *fakeProgram

	nextBuffer Buffer
	buffers    map[Buffer]bool
	vertexData map[Buffer][]float32
	indexData  map[Buffer][]uint16
	array      Buffer
	element    Buffer
	layout     []VertexAttrib

	nextTexture Texture
	textures    map[Texture]image.Image
	bound       Texture

	clears int
	draws  []drawCall
}

type drawCall struct {
	program    *fakeProgram
	modelView  mgl32.Mat4
	projection mgl32.Mat4
	array      Buffer
	element    Buffer
	texture    Texture
	topology   Topology
	count      int
}

type fakeProgram struct {
	textured bool
	uniforms map[int32]mgl32.Mat4
	ints     map[int32]int32
}

var fakeAttribs = map[string]int32{
	AttribPosition: 0,
	AttribColor:    1,
	AttribNormal:   2,
	AttribUV:       3,
}

var fakeUniforms = map[string]int32{
	UniformModelView:  0,
	UniformProjection: 1,
	UniformSampler:    2,
}

func (p *fakeProgram) AttribLocation(name string) int32 {
	if name == AttribUV && !p.textured {
		return -1
	}
	if loc, ok := fakeAttribs[name]; ok {
		return loc
	}
	return -1
}

func (p *fakeProgram) UniformLocation(name string) int32 {
	if name == UniformSampler && !p.textured {
		return -1
	}
	if loc, ok := fakeUniforms[name]; ok {
		return loc
	}
	return -1
}

func newRecordingBackend() *recordingBackend {
	return &recordingBackend{
		buffers:    make(map[Buffer]bool),
		vertexData: make(map[Buffer][]float32),
		indexData:  make(map[Buffer][]uint16),
		textures:   make(map[Texture]image.Image),
	}
}

func (b *recordingBackend) CompileProgram(vs, fs string) (Program, error) {
	if b.failCompile {
		return nil, errors.New("0:1: syntax error")
	}
	p := &fakeProgram{
		textured: fs == textureFragmentShader,
		uniforms: make(map[int32]mgl32.Mat4),
		ints:     make(map[int32]int32),
	}
	b.programs = append(b.programs, p)
	return p, nil
}

func (b *recordingBackend) UseProgram(p Program) { b.current = p.(*fakeProgram) }

func (b *recordingBackend) CreateBuffer() (Buffer, error) {
	b.nextBuffer++
	b.buffers[b.nextBuffer] = true
	return b.nextBuffer, nil
}

func (b *recordingBackend) DeleteBuffer(id Buffer) { delete(b.buffers, id) }

func (b *recordingBackend) BindBuffer(t BufferTarget, id Buffer) {
	if t == ArrayBuffer {
		b.array = id
	} else {
		b.element = id
	}
}

func (b *recordingBackend) UploadVertexData(id Buffer, data []float32) {
	b.vertexData[id] = append([]float32(nil), data...)
}

func (b *recordingBackend) UploadIndexData(id Buffer, data []uint16) {
	b.indexData[id] = append([]uint16(nil), data...)
}

func (b *recordingBackend) SetVertexLayout(attribs []VertexAttrib) { b.layout = attribs }

func (b *recordingBackend) DrawIndexed(topology Topology, count int) {
	b.draws = append(b.draws, drawCall{
		program:    b.current,
		modelView:  b.current.uniforms[0],
		projection: b.current.uniforms[1],
		array:      b.array,
		element:    b.element,
		texture:    b.bound,
		topology:   topology,
		count:      count,
	})
}

func (b *recordingBackend) SetUniformMatrix4(loc int32, m mgl32.Mat4) { b.current.uniforms[loc] = m }

func (b *recordingBackend) SetUniformInt(loc int32, v int32) { b.current.ints[loc] = v }

func (b *recordingBackend) CreateTexture(img image.Image) (Texture, error) {
	b.nextTexture++
	b.textures[b.nextTexture] = img
	return b.nextTexture, nil
}

func (b *recordingBackend) BindTexture(unit int, t Texture) { b.bound = t }

func (b *recordingBackend) Clear(r, g, bl, a float32) {
	b.clears++
	b.draws = b.draws[:0]
}
