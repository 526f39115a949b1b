package orbit3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Transform is the local pose of one node: a 4x4 affine matrix that is
// mutated in place by the position and rotation operations below.
// Relative operations post-multiply, so call order matters.
type Transform struct {
	m mgl64.Mat4
}

var (
	worldUp       = mgl64.Vec3{0, 1, 0}
	fallbackUp    = mgl64.Vec3{0, 0, 1}
	lookAtEpsilon = 1e-9
)

func NewTransform() *Transform {
	return &Transform{m: mgl64.Ident4()}
}

func (t *Transform) Matrix() mgl64.Mat4 {
	return t.m
}

func (t *Transform) SetMatrix(m mgl64.Mat4) {
	t.m = m
}

// SetPosition replaces the transform with a translation, dropping any rotation.
func (t *Transform) SetPosition(x, y, z float64) {
	t.m = mgl64.Translate3D(x, y, z)
}

// Translate moves the transform along its own axes.
func (t *Transform) Translate(x, y, z float64) {
	t.m = t.m.Mul4(mgl64.Translate3D(x, y, z))
}

// Rotate applies rotations about X, then Y, then Z, in degrees.
func (t *Transform) Rotate(degrees mgl64.Vec3) {
	t.m = t.m.Mul4(EulerMatrix(degrees))
}

// SetRotation is Rotate from identity. Translation is discarded.
func (t *Transform) SetRotation(degrees mgl64.Vec3) {
	t.m = EulerMatrix(degrees)
}

// LookAt keeps the current translation and turns the transform so that its
// forward axis (-Z) points at target, using world up as reference.
func (t *Transform) LookAt(target mgl64.Vec3) {
	eye := t.Translation()

	back := eye.Sub(target)
	if back.Len() < lookAtEpsilon {
		t.m = mgl64.Translate3D(eye.X(), eye.Y(), eye.Z())
		return
	}
	back = back.Normalize()

	right := worldUp.Cross(back)
	if right.Len() < lookAtEpsilon {
		// target straight above or below
		right = fallbackUp.Cross(back)
	}
	right = right.Normalize()
	up := back.Cross(right)

	t.m = mgl64.Mat4{
		right.X(), right.Y(), right.Z(), 0,
		up.X(), up.Y(), up.Z(), 0,
		back.X(), back.Y(), back.Z(), 0,
		eye.X(), eye.Y(), eye.Z(), 1,
	}
}

// RotateAround rotates the transform about pivot, given in the node's local
// coordinates. The pivot keeps its place in the world; the node swings
// around it. The returned matrix is parentWorld composed with the new local
// transform.
func (t *Transform) RotateAround(degrees mgl64.Vec3, pivot mgl64.Vec3, parentWorld mgl64.Mat4) mgl64.Mat4 {
	t.m = t.m.
		Mul4(mgl64.Translate3D(pivot.X(), pivot.Y(), pivot.Z())).
		Mul4(EulerMatrix(degrees)).
		Mul4(mgl64.Translate3D(-pivot.X(), -pivot.Y(), -pivot.Z()))

	return parentWorld.Mul4(t.m)
}

func (t *Transform) Translation() mgl64.Vec3 {
	return t.m.Col(3).Vec3()
}

// Forward is the direction the transform faces, the negated Z axis.
func (t *Transform) Forward() mgl64.Vec3 {
	return t.m.Col(2).Vec3().Mul(-1)
}

// EulerAngles returns the X, Y, Z rotation in degrees that Rotate would need
// to apply (from identity) to reproduce the rotation part of the transform.
func (t *Transform) EulerAngles() mgl64.Vec3 {
	m := t.m
	sy := mgl64.Clamp(m.At(0, 2), -1, 1)
	y := math.Asin(sy)

	var x, z float64
	if math.Abs(sy) < 0.9999999 {
		x = math.Atan2(-m.At(1, 2), m.At(2, 2))
		z = math.Atan2(-m.At(0, 1), m.At(0, 0))
	} else {
		// gimbal lock, fold Z into X
		x = math.Atan2(m.At(2, 1), m.At(1, 1))
		z = 0
	}

	return mgl64.Vec3{mgl64.RadToDeg(x), mgl64.RadToDeg(y), mgl64.RadToDeg(z)}
}

// EulerMatrix builds Rx * Ry * Rz from degrees.
func EulerMatrix(degrees mgl64.Vec3) mgl64.Mat4 {
	return mgl64.HomogRotate3DX(mgl64.DegToRad(degrees.X())).
		Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(degrees.Y()))).
		Mul4(mgl64.HomogRotate3DZ(mgl64.DegToRad(degrees.Z())))
}

// toMat32 narrows a matrix for upload.
func toMat32(m mgl64.Mat4) mgl32.Mat4 {
	var out mgl32.Mat4
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}
