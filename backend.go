package orbit3d

import (
	"image"

	"github.com/go-gl/mathgl/mgl32"
)

// Buffer and Texture are backend handles. Zero is never a valid handle.
type (
	Buffer  uint32
	Texture uint32
)

type BufferTarget int

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

type Topology int

const (
	Triangles Topology = iota
	Lines
)

// VertexAttrib describes one float attribute inside an interleaved vertex
// buffer. Location -1 means the program does not use the attribute.
type VertexAttrib struct {
	Location int32
	Size     int32 // components
	Stride   int32 // bytes
	Offset   int   // bytes
}

// Program is a linked shader program.
type Program interface {
	AttribLocation(name string) int32
	UniformLocation(name string) int32
}

// Backend is the immediate-mode graphics API the scene renders through.
// Binding state (program, buffers, texture) is global to the backend and
// changes with every call; callers re-bind what they need before drawing.
type Backend interface {
	CompileProgram(vertexSource, fragmentSource string) (Program, error)
	UseProgram(p Program)

	CreateBuffer() (Buffer, error)
	DeleteBuffer(b Buffer)
	BindBuffer(target BufferTarget, b Buffer)
	UploadVertexData(b Buffer, data []float32)
	UploadIndexData(b Buffer, data []uint16)
	SetVertexLayout(attribs []VertexAttrib)
	DrawIndexed(topology Topology, count int)

	SetUniformMatrix4(location int32, m mgl32.Mat4)
	SetUniformInt(location int32, v int32)

	CreateTexture(img image.Image) (Texture, error)
	BindTexture(unit int, t Texture)

	Clear(r, g, b, a float32)
}
