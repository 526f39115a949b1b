package orbit3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// SphericalPoint converts polar coordinates in degrees to a point, with the
// polar angle measured from +Y and the azimuth running from +X towards +Z.
func SphericalPoint(radius, azimuth, inclination float64) mgl64.Vec3 {
	theta := mgl64.DegToRad(inclination)
	phi := mgl64.DegToRad(azimuth)
	return mgl64.Vec3{
		radius * math.Sin(theta) * math.Cos(phi),
		radius * math.Cos(theta),
		radius * math.Sin(theta) * math.Sin(phi),
	}
}

// OrbitState is the satellite's position along its orbit and how fast it
// moves.
type OrbitState struct {
	Radius float64
	Angle  float64
	Speed  float64

	cfg OrbitConfig
}

func NewOrbitState(cfg OrbitConfig) *OrbitState {
	return &OrbitState{
		Radius: cfg.Radius,
		Speed:  cfg.Speed,
		cfg:    cfg,
	}
}

// Advance moves the angle on by one frame.
func (o *OrbitState) Advance(elapsed float64) {
	o.Angle += o.Speed + elapsed*10
}

// AdjustRadius changes the radius by steps*RadiusStep, never going below
// MinRadius.
func (o *OrbitState) AdjustRadius(steps float64) {
	o.Radius = math.Max(o.cfg.MinRadius, o.Radius+steps*o.cfg.RadiusStep)
}

// AdjustSpeed changes the speed by steps*SpeedStep within [MinSpeed, MaxSpeed].
func (o *OrbitState) AdjustSpeed(steps float64) {
	o.Speed = mgl64.Clamp(o.Speed+steps*o.cfg.SpeedStep, o.cfg.MinSpeed, o.cfg.MaxSpeed)
}

func (o *OrbitState) Inclination() float64 {
	return o.cfg.Inclination
}
