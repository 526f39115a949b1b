package orbit3d

import (
	"image/color"
	"log"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// Top-level and child names the scene is built with.
const (
	EarthName     = "earth"
	SatelliteName = "satellite"
	MoonName      = "moon"
	PadName       = "pad"
	OrbitPathName = "orbit"
	GlobeName     = "globe"
	BodyName      = "body"
)

var (
	satelliteBody  = color.RGBA{R: 180, G: 180, B: 190, A: 255}
	satelliteFront = color.RGBA{R: 230, G: 190, B: 60, A: 255}
	panelBlue      = color.RGBA{R: 40, G: 70, B: 200, A: 255}
	dishWhite      = color.RGBA{R: 240, G: 240, B: 240, A: 255}
	mastGrey       = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	collarRed      = color.RGBA{R: 200, G: 50, B: 40, A: 255}
	moonGrey       = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	padGreen       = color.RGBA{R: 40, G: 140, B: 60, A: 255}
	pathCyan       = color.RGBA{R: 60, G: 200, B: 220, A: 255}
	white          = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

type Scene struct {
	backend Backend
	cfg     Config

	camera *Camera
	input  InputQueue
	state  *InputState
	orbit  *OrbitState
	cache  *GeometryCache

	colorMaterial   *Material
	textureMaterial *Material

	registry  map[string]Node
	earth     *Model
	satellite *Model
	path      *Mesh

	lastFrame float64
	started   bool
}

// NewScene compiles the programs and builds the scene graph. Any failure
// aborts construction; no partial scene is returned.
func NewScene(backend Backend, cfg Config) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Scene{
		backend:  backend,
		cfg:      cfg,
		camera:   NewCamera(cfg.Camera, cfg.Window.Width, cfg.Window.Height),
		state:    NewInputState(),
		orbit:    NewOrbitState(cfg.Orbit),
		cache:    NewGeometryCache(backend),
		registry: make(map[string]Node),
	}

	log.Println("Compiling shaders...")
	var err error
	s.colorMaterial, err = NewMaterial(backend, "color", colorVertexShader, colorFragmentShader)
	if err != nil {
		return nil, errors.Wrap(err, "scene")
	}
	s.textureMaterial, err = NewMaterial(backend, "texture", textureVertexShader, textureFragmentShader)
	if err != nil {
		return nil, errors.Wrap(err, "scene")
	}

	if cfg.Earth.Texture != "" {
		s.textureMaterial.UseTexture(cfg.Earth.Texture, cfg.MaxTextureSize)
	}

	log.Println("Building satellite...")
	if s.satellite, err = s.buildSatellite(); err != nil {
		return nil, errors.Wrap(err, "scene")
	}

	log.Println("Building earth...")
	if s.earth, err = s.buildEarth(s.satellite); err != nil {
		return nil, errors.Wrap(err, "scene")
	}

	if err := s.buildRegistry(); err != nil {
		return nil, errors.Wrap(err, "scene")
	}

	log.Printf("Scene ready: %d top-level nodes, %d shared geometries.", len(s.registry), s.cache.Len())
	return s, nil
}

func (s *Scene) mesh(m *Material, name string, shape Shape, c color.RGBA) (*Mesh, error) {
	return NewMesh(s.cache, m, name, shape, c)
}

func (s *Scene) buildSatellite() (*Model, error) {
	sat := NewModel(SatelliteName)
	if err := sat.AddMesh(RootName, Leaf(NewPivot(RootName))); err != nil {
		return nil, err
	}

	body, err := s.mesh(s.colorMaterial, BodyName, Cube(0.25), satelliteBody)
	if err != nil {
		return nil, err
	}
	if err := body.SetFaceColor(0, satelliteFront); err != nil {
		return nil, err
	}

	type part struct {
		name   string
		shape  Shape
		color  color.RGBA
		pos    mgl64.Vec3
		rotate mgl64.Vec3
	}
	parts := []part{
		{"panel-left", Rect(1.2, 0.02, 0.4), panelBlue, mgl64.Vec3{-0.85, 0, 0}, mgl64.Vec3{}},
		{"panel-right", Rect(1.2, 0.02, 0.4), panelBlue, mgl64.Vec3{0.85, 0, 0}, mgl64.Vec3{}},
		{"dish", Hemisphere(0.2, 8, 16), dishWhite, mgl64.Vec3{0, 0, 0.3}, mgl64.Vec3{90, 0, 0}},
		{"mast", Cylinder(0.02, 0.4, 8), mastGrey, mgl64.Vec3{0, 0.25, 0}, mgl64.Vec3{}},
		{"collar", CircularPlane(0.3, 24), collarRed, mgl64.Vec3{0, -0.26, 0}, mgl64.Vec3{180, 0, 0}},
	}

	if err := sat.AddMesh(BodyName, Leaf(body)); err != nil {
		return nil, err
	}
	for _, p := range parts {
		m, err := s.mesh(s.colorMaterial, p.name, p.shape, p.color)
		if err != nil {
			return nil, err
		}
		m.Transform.SetPosition(p.pos.X(), p.pos.Y(), p.pos.Z())
		m.Transform.Rotate(p.rotate)
		if err := sat.AddMesh(p.name, Leaf(m)); err != nil {
			return nil, err
		}
	}
	return sat, nil
}

func (s *Scene) buildEarth(satellite *Model) (*Model, error) {
	e := s.cfg.Earth
	earth := NewModel(EarthName)

	// the root carries the spin; the globe and the satellite hang off it
	if err := earth.AddMesh(RootName, Leaf(NewPivot(RootName))); err != nil {
		return nil, err
	}
	globe, err := s.mesh(s.textureMaterial, GlobeName, Sphere(e.Radius, e.Rings, e.Segments), white)
	if err != nil {
		return nil, err
	}
	if err := earth.AddMesh(GlobeName, Leaf(globe)); err != nil {
		return nil, err
	}
	if err := earth.AddMesh(SatelliteName, Group(satellite)); err != nil {
		return nil, err
	}
	return earth, nil
}

func (s *Scene) buildRegistry() error {
	moon, err := s.mesh(s.colorMaterial, MoonName, Sphere(0.5, 16, 16), moonGrey)
	if err != nil {
		return err
	}
	moon.Transform.SetPosition(7, 1, -3)

	pad, err := s.mesh(s.colorMaterial, PadName, CircularPlane(1.5, 32), padGreen)
	if err != nil {
		return err
	}
	pad.Transform.SetPosition(0, -3.5, 0)

	s.path, err = s.mesh(s.colorMaterial, OrbitPathName, Ring(1, 64), pathCyan)
	if err != nil {
		return err
	}

	s.registry[EarthName] = Group(s.earth)
	s.registry[MoonName] = Leaf(moon)
	s.registry[PadName] = Leaf(pad)
	s.registry[OrbitPathName] = Leaf(s.path)
	return nil
}

// placePath fits the unit ring to the circle the satellite currently traces
// around the earth's centre.
func (s *Scene) placePath(earthCentre mgl64.Vec3) {
	o := s.orbit
	theta := mgl64.DegToRad(o.Inclination())
	centre := earthCentre.Add(mgl64.Vec3{0, o.Radius * math.Cos(theta), 0})
	r := o.Radius * math.Sin(theta)
	s.path.Transform.SetMatrix(mgl64.Translate3D(centre.X(), centre.Y(), centre.Z()).Mul4(mgl64.Scale3D(r, r, r)))
}

func (s *Scene) Input() *InputQueue { return &s.input }

func (s *Scene) Camera() *Camera { return s.camera }

func (s *Scene) Orbit() *OrbitState { return s.orbit }

func (s *Scene) Earth() *Model { return s.earth }

func (s *Scene) Satellite() *Model { return s.satellite }

// OrbitPath is the line loop showing the satellite's orbit.
func (s *Scene) OrbitPath() *Mesh { return s.path }

func (s *Scene) Config() Config { return s.cfg }

// InputState is the folded input as of the last frame.
func (s *Scene) InputState() *InputState { return s.state }

func (s *Scene) Node(name string) (Node, bool) {
	n, ok := s.registry[name]
	return n, ok
}

// Names lists the top-level nodes in draw order.
func (s *Scene) Names() []string {
	names := make([]string, 0, len(s.registry))
	for name := range s.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Scene) Materials() []*Material {
	return []*Material{s.colorMaterial, s.textureMaterial}
}

func (s *Scene) SetViewport(width, height int) {
	s.camera.SetViewport(width, height)
}

// Render draws one frame. timestampMs is a monotonic clock in milliseconds.
// Every top-level node is drawn even if an earlier one fails; the first
// failure is returned.
func (s *Scene) Render(timestampMs float64) error {
	elapsed := 0.0
	if s.started {
		elapsed = (timestampMs - s.lastFrame) / 1000
	}
	s.lastFrame = timestampMs
	s.started = true

	s.orbit.Advance(elapsed)

	s.state.Fold(s.input.Drain(), s.cfg.Camera)
	s.applyKeys()
	s.applyCamera()

	cc := s.cfg.ClearColor
	s.backend.Clear(cc[0], cc[1], cc[2], cc[3])

	earthTransform, err := s.earth.Transform()
	if err != nil {
		return err
	}
	earthEuler := earthTransform.EulerAngles()

	if err := s.satellite.Orbit(s.orbit.Radius, s.orbit.Angle, s.orbit.Inclination(), earthEuler); err != nil {
		return err
	}
	earthTransform.Rotate(mgl64.Vec3{0, s.cfg.Earth.SpinPerFrame, 0})
	s.placePath(earthTransform.Translation())

	for _, m := range s.Materials() {
		m.Poll()
	}

	return s.draw()
}

func (s *Scene) applyKeys() {
	keys := s.cfg.Keys
	if s.state.Held(keys.RadiusUp) {
		s.orbit.AdjustRadius(1)
	}
	if s.state.Held(keys.RadiusDown) {
		s.orbit.AdjustRadius(-1)
	}
	if s.state.Held(keys.SpeedUp) {
		s.orbit.AdjustSpeed(1)
	}
	if s.state.Held(keys.SpeedDown) {
		s.orbit.AdjustSpeed(-1)
	}
	s.state.Pan(keys, s.cfg.Camera.PanSpeed)
}

func (s *Scene) applyCamera() {
	d := &s.state.Delta
	if d.Translate != [3]float64{} {
		s.camera.Move(d.Translate[0], d.Translate[1], d.Translate[2])
	}
	if d.Rotate != [3]float64{} {
		s.camera.Rotate(mgl64.Vec3{d.Rotate[0], d.Rotate[1], d.Rotate[2]})
	}
	d.Reset()
}

func (s *Scene) draw() error {
	for _, m := range s.Materials() {
		s.camera.Upload(m)
	}

	view := s.camera.View()
	var first error
	for _, name := range s.Names() {
		if err := s.registry[name].Draw(view); err != nil {
			log.Printf("Drawing %q failed: %v", name, err)
			if first == nil {
				first = errors.Wrapf(err, "draw %q", name)
			}
		}
	}
	return first
}
