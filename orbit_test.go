package orbit3d

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestSphericalPoint(t *testing.T) {
	testCases := []struct {
		name                         string
		radius, azimuth, inclination float64
		want                         mgl64.Vec3
	}{
		{"North pole", 2, 0, 0, mgl64.Vec3{0, 2, 0}},
		{"Equator +X", 3, 0, 90, mgl64.Vec3{3, 0, 0}},
		{"Equator +Z", 3, 90, 90, mgl64.Vec3{0, 0, 3}},
		{"South pole", 1, 45, 180, mgl64.Vec3{0, -1, 0}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assertVec3(t, tc.want, SphericalPoint(tc.radius, tc.azimuth, tc.inclination))
		})
	}
}

func TestOrbitAdvance(t *testing.T) {
	o := NewOrbitState(DefaultConfig().Orbit)

	o.Advance(0)
	assert.InDelta(t, 0.5, o.Angle, 1e-9)

	o.Advance(0.016)
	assert.InDelta(t, 0.5+0.5+0.16, o.Angle, 1e-9)
}

func TestOrbitAdjustRadius(t *testing.T) {
	o := NewOrbitState(DefaultConfig().Orbit)

	o.AdjustRadius(2)
	assert.InDelta(t, 4.1, o.Radius, 1e-9)

	for i := 0; i < 100; i++ {
		o.AdjustRadius(-1)
	}
	assert.Equal(t, 2.5, o.Radius)
}

func TestOrbitAdjustSpeed(t *testing.T) {
	o := NewOrbitState(DefaultConfig().Orbit)

	o.AdjustSpeed(1)
	assert.InDelta(t, 0.51, o.Speed, 1e-9)

	for i := 0; i < 1000; i++ {
		o.AdjustSpeed(1)
	}
	assert.Equal(t, 5.0, o.Speed)

	for i := 0; i < 1000; i++ {
		o.AdjustSpeed(-1)
	}
	assert.Equal(t, 0.0, o.Speed)
}
