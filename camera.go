package orbit3d

import (
	"github.com/go-gl/mathgl/mgl64"
)

type Camera struct {
	cfg        CameraConfig
	projection mgl64.Mat4
	view       *Transform
}

// NewCamera builds a perspective camera for a width x height viewport,
// pulled back Distance units along -Z.
func NewCamera(cfg CameraConfig, width, height int) *Camera {
	c := &Camera{
		cfg:  cfg,
		view: NewTransform(),
	}
	c.view.SetPosition(0, 0, -cfg.Distance)
	c.SetViewport(width, height)
	return c
}

func (c *Camera) SetViewport(width, height int) {
	aspect := 1.0
	if width > 0 && height > 0 {
		aspect = float64(width) / float64(height)
	}
	c.projection = mgl64.Perspective(mgl64.DegToRad(c.cfg.FOV), aspect, c.cfg.Near, c.cfg.Far)
}

func (c *Camera) Projection() mgl64.Mat4 {
	return c.projection
}

func (c *Camera) View() mgl64.Mat4 {
	return c.view.Matrix()
}

// Transform exposes the view transform.
func (c *Camera) Transform() *Transform {
	return c.view
}

func (c *Camera) SetPosition(x, y, z float64) {
	c.view.SetPosition(x, y, z)
}

func (c *Camera) Move(x, y, z float64) {
	c.view.Translate(x, y, z)
}

func (c *Camera) Rotate(degrees mgl64.Vec3) {
	c.view.Rotate(degrees)
}

func (c *Camera) SetRotation(degrees mgl64.Vec3) {
	c.view.SetRotation(degrees)
}

// Upload binds the material's program and pushes projection and view. Each
// draw later overwrites the model-view uniform with its own product.
func (c *Camera) Upload(m *Material) {
	m.Bind()
	m.SetProjection(c.projection)
	m.SetModelView(c.View())
}
