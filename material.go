package orbit3d

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// Material is a linked program with its attribute and uniform locations
// looked up once, plus the texture it samples (if the program has a
// sampler).
type Material struct {
	Name string

	backend Backend
	program Program

	aPosition, aColor, aNormal, aUV int32
	uModelView, uProjection, uSampler int32

	texture     Texture
	placeholder Texture
	pending     <-chan TextureResult
}

func NewMaterial(backend Backend, name, vertexSource, fragmentSource string) (*Material, error) {
	program, err := backend.CompileProgram(vertexSource, fragmentSource)
	if err != nil {
		return nil, errors.Wrapf(err, "material %q", name)
	}

	m := &Material{
		Name:        name,
		backend:     backend,
		program:     program,
		aPosition:   program.AttribLocation(AttribPosition),
		aColor:      program.AttribLocation(AttribColor),
		aNormal:     program.AttribLocation(AttribNormal),
		aUV:         program.AttribLocation(AttribUV),
		uModelView:  program.UniformLocation(UniformModelView),
		uProjection: program.UniformLocation(UniformProjection),
		uSampler:    program.UniformLocation(UniformSampler),
	}

	if m.aPosition < 0 {
		return nil, errors.Errorf("material %q: program has no %s attribute", name, AttribPosition)
	}
	if m.uModelView < 0 || m.uProjection < 0 {
		return nil, errors.Errorf("material %q: program lacks %s or %s", name, UniformModelView, UniformProjection)
	}

	if m.uSampler >= 0 {
		tex, err := backend.CreateTexture(placeholderImage())
		if err != nil {
			return nil, errors.Wrapf(err, "material %q placeholder texture", name)
		}
		m.placeholder = tex
		m.texture = tex
	}

	return m, nil
}

func (m *Material) Program() Program {
	return m.program
}

// Textured reports whether the program samples a texture.
func (m *Material) Textured() bool {
	return m.uSampler >= 0
}

// UseTexture starts loading path in the background. The placeholder stays
// bound until Poll sees the result.
func (m *Material) UseTexture(path string, maxSize int) {
	if !m.Textured() {
		log.Printf("Material %q has no sampler, ignoring texture %s", m.Name, path)
		return
	}
	log.Printf("Loading texture %s for material %q...", path, m.Name)
	m.pending = LoadTextureAsync(path, maxSize)
}

// Poll uploads a finished texture load without blocking.
func (m *Material) Poll() {
	if m.pending == nil {
		return
	}
	select {
	case res := <-m.pending:
		m.pending = nil
		m.applyTexture(res)
	default:
	}
}

func (m *Material) applyTexture(res TextureResult) {
	logTextureResult(res)
	if res.Err != nil {
		return
	}
	tex, err := m.backend.CreateTexture(res.Image)
	if err != nil {
		log.Printf("Uploading texture %s failed, keeping placeholder: %v", res.Path, err)
		return
	}
	m.texture = tex
}

// Loaded reports whether the real texture replaced the placeholder.
func (m *Material) Loaded() bool {
	return m.texture != m.placeholder
}

// Bind makes the program current and binds the texture to unit 0.
func (m *Material) Bind() {
	m.backend.UseProgram(m.program)
	if m.uSampler >= 0 && m.texture != 0 {
		m.backend.BindTexture(0, m.texture)
		m.backend.SetUniformInt(m.uSampler, 0)
	}
}

func (m *Material) SetModelView(mv mgl64.Mat4) {
	m.backend.SetUniformMatrix4(m.uModelView, toMat32(mv))
}

func (m *Material) SetProjection(p mgl64.Mat4) {
	m.backend.SetUniformMatrix4(m.uProjection, toMat32(p))
}

// Layout is the interleaved vertex layout for this program. Attributes the
// program does not use are left out.
func (m *Material) Layout() []VertexAttrib {
	const stride = VertexStride * bytesPerFloat

	candidates := []VertexAttrib{
		{Location: m.aPosition, Size: 3, Stride: stride, Offset: 0},
		{Location: m.aColor, Size: 4, Stride: stride, Offset: colorOffset * bytesPerFloat},
		{Location: m.aNormal, Size: 3, Stride: stride, Offset: normalOffset * bytesPerFloat},
		{Location: m.aUV, Size: 2, Stride: stride, Offset: uvOffset * bytesPerFloat},
	}

	layout := candidates[:0]
	for _, a := range candidates {
		if a.Location >= 0 {
			layout = append(layout, a)
		}
	}
	return layout
}
