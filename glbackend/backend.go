// Package glbackend implements the renderer's Backend on OpenGL 4.1 core.
// All calls must come from the thread that owns the context.
package glbackend

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	"github.com/smasonuk/orbit3d"
)

type Backend struct {
	vao     uint32
	enabled map[uint32]bool
}

// New initialises GL function pointers for the current context and sets the
// fixed state the renderer expects.
func New() (*Backend, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "gl init")
	}

	b := &Backend{enabled: make(map[uint32]bool)}

	// core profile needs a bound VAO for any attribute setup
	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	return b, nil
}

func Version() string {
	return gl.GoStr(gl.GetString(gl.VERSION))
}

func (b *Backend) Viewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

func (b *Backend) CompileProgram(vertexSource, fragmentSource string) (orbit3d.Program, error) {
	p, err := newProgram(vertexSource, fragmentSource)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (b *Backend) UseProgram(p orbit3d.Program) {
	if prog, ok := p.(*program); ok {
		gl.UseProgram(prog.id)
	}
}

func (b *Backend) CreateBuffer() (orbit3d.Buffer, error) {
	var id uint32
	gl.GenBuffers(1, &id)
	if id == 0 {
		return 0, errors.New("glGenBuffers returned 0")
	}
	return orbit3d.Buffer(id), nil
}

func (b *Backend) DeleteBuffer(id orbit3d.Buffer) {
	raw := uint32(id)
	gl.DeleteBuffers(1, &raw)
}

func target(t orbit3d.BufferTarget) uint32 {
	if t == orbit3d.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func (b *Backend) BindBuffer(t orbit3d.BufferTarget, id orbit3d.Buffer) {
	gl.BindBuffer(target(t), uint32(id))
}

func (b *Backend) UploadVertexData(id orbit3d.Buffer, data []float32) {
	if len(data) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, uint32(id))
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
}

func (b *Backend) UploadIndexData(id orbit3d.Buffer, data []uint16) {
	if len(data) == 0 {
		return
	}
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, uint32(id))
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data)*2, gl.Ptr(data), gl.STATIC_DRAW)
}

// SetVertexLayout points the listed attributes at the bound array buffer
// and disables any attribute enabled by an earlier layout but not this one.
func (b *Backend) SetVertexLayout(attribs []orbit3d.VertexAttrib) {
	want := make(map[uint32]bool, len(attribs))
	for _, a := range attribs {
		if a.Location < 0 {
			continue
		}
		loc := uint32(a.Location)
		want[loc] = true
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointerWithOffset(loc, a.Size, gl.FLOAT, false, a.Stride, uintptr(a.Offset))
	}
	for loc := range b.enabled {
		if !want[loc] {
			gl.DisableVertexAttribArray(loc)
		}
	}
	b.enabled = want
}

func (b *Backend) DrawIndexed(topology orbit3d.Topology, count int) {
	mode := uint32(gl.TRIANGLES)
	if topology == orbit3d.Lines {
		mode = gl.LINES
	}
	gl.DrawElements(mode, int32(count), gl.UNSIGNED_SHORT, nil)
}

func (b *Backend) SetUniformMatrix4(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (b *Backend) SetUniformInt(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (b *Backend) CreateTexture(img image.Image) (orbit3d.Texture, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return 0, errors.New("create texture: empty image")
	}
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 {
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	var id uint32
	gl.GenTextures(1, &id)
	if id == 0 {
		return 0, errors.New("glGenTextures returned 0")
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(bounds.Dx()), int32(bounds.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba.Pix))

	return orbit3d.Texture(id), nil
}

func (b *Backend) BindTexture(unit int, t orbit3d.Texture) {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, uint32(t))
}

func (b *Backend) Clear(r, g, bl, a float32) {
	gl.ClearColor(r, g, bl, a)
	gl.ClearDepth(1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}
