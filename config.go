package orbit3d

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type CameraConfig struct {
	FOV         float64 `yaml:"fov"` // degrees
	Near        float64 `yaml:"near"`
	Far         float64 `yaml:"far"`
	Distance    float64 `yaml:"distance"`
	RotateSpeed float64 `yaml:"rotateSpeed"` // degrees per pixel dragged
	ZoomSpeed   float64 `yaml:"zoomSpeed"`   // units per scroll step
	PanSpeed    float64 `yaml:"panSpeed"`    // units per frame a pan key is held
}

type OrbitConfig struct {
	Radius      float64 `yaml:"radius"`
	MinRadius   float64 `yaml:"minRadius"`
	RadiusStep  float64 `yaml:"radiusStep"`
	Speed       float64 `yaml:"speed"`
	MinSpeed    float64 `yaml:"minSpeed"`
	MaxSpeed    float64 `yaml:"maxSpeed"`
	SpeedStep   float64 `yaml:"speedStep"`
	Inclination float64 `yaml:"inclination"` // degrees from +Y
}

type EarthConfig struct {
	Radius       float64 `yaml:"radius"`
	Rings        int     `yaml:"rings"`
	Segments     int     `yaml:"segments"`
	SpinPerFrame float64 `yaml:"spinPerFrame"` // degrees of yaw
	Texture      string  `yaml:"texture"`
}

// KeysConfig names the keys that drive the orbit and pan the camera.
type KeysConfig struct {
	RadiusUp   string `yaml:"radiusUp"`
	RadiusDown string `yaml:"radiusDown"`
	SpeedUp    string `yaml:"speedUp"`
	SpeedDown  string `yaml:"speedDown"`
	PanLeft    string `yaml:"panLeft"`
	PanRight   string `yaml:"panRight"`
	PanUp      string `yaml:"panUp"`
	PanDown    string `yaml:"panDown"`
}

type Config struct {
	Window         WindowConfig `yaml:"window"`
	Camera         CameraConfig `yaml:"camera"`
	Orbit          OrbitConfig  `yaml:"orbit"`
	Earth          EarthConfig  `yaml:"earth"`
	Keys           KeysConfig   `yaml:"keys"`
	ClearColor     [4]float32   `yaml:"clearColor"`
	MaxTextureSize int          `yaml:"maxTextureSize"`
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Title:  "orbit3d",
			Width:  1024,
			Height: 768,
		},
		Camera: CameraConfig{
			FOV:         45,
			Near:        0.1,
			Far:         100,
			Distance:    10,
			RotateSpeed: 0.3,
			ZoomSpeed:   0.5,
			PanSpeed:    0.05,
		},
		Orbit: OrbitConfig{
			Radius:      4,
			MinRadius:   2.5,
			RadiusStep:  0.05,
			Speed:       0.5,
			MinSpeed:    0,
			MaxSpeed:    5,
			SpeedStep:   0.01,
			Inclination: 80,
		},
		Earth: EarthConfig{
			Radius:       2,
			Rings:        48,
			Segments:     48,
			SpinPerFrame: 0.2,
			Texture:      "img/earth.jpg",
		},
		Keys: KeysConfig{
			RadiusUp:   "Up",
			RadiusDown: "Down",
			SpeedUp:    "Right",
			SpeedDown:  "Left",
			PanLeft:    "A",
			PanRight:   "D",
			PanUp:      "Q",
			PanDown:    "E",
		},
		ClearColor:     [4]float32{0, 0, 0, 1},
		MaxTextureSize: 2048,
	}
}

// LoadConfig reads a YAML file over the defaults. Keys the file leaves out
// keep their default values; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "open config %s", path)
	}
	defer f.Close()

	cfg, err := DecodeConfig(f)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "Failed to unmarshal yaml")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WriteConfig writes cfg as YAML, e.g. to produce a starting file from the
// defaults.
func WriteConfig(w io.Writer, cfg Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&cfg); err != nil {
		return errors.Wrap(err, "Failed to marshal yaml")
	}
	return errors.Wrap(enc.Close(), "Failed to close yaml encoder")
}

func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return errors.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return errors.Errorf("camera fov %v must be in (0, 180)", c.Camera.FOV)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return errors.Errorf("camera clip range [%v, %v] is invalid", c.Camera.Near, c.Camera.Far)
	case c.Orbit.MinRadius < 0 || c.Orbit.Radius < c.Orbit.MinRadius:
		return errors.Errorf("orbit radius %v must be at least minRadius %v", c.Orbit.Radius, c.Orbit.MinRadius)
	case c.Orbit.MaxSpeed < c.Orbit.MinSpeed:
		return errors.Errorf("orbit speed range [%v, %v] is empty", c.Orbit.MinSpeed, c.Orbit.MaxSpeed)
	case c.Orbit.Speed < c.Orbit.MinSpeed || c.Orbit.Speed > c.Orbit.MaxSpeed:
		return errors.Errorf("orbit speed %v outside [%v, %v]", c.Orbit.Speed, c.Orbit.MinSpeed, c.Orbit.MaxSpeed)
	case c.Earth.Radius <= 0:
		return errors.Errorf("earth radius %v must be positive", c.Earth.Radius)
	case c.Earth.Rings < 1 || c.Earth.Segments < 3:
		return errors.Errorf("earth tessellation %dx%d is too coarse", c.Earth.Rings, c.Earth.Segments)
	case c.MaxTextureSize < 0:
		return errors.Errorf("maxTextureSize %d must not be negative", c.MaxTextureSize)
	}
	return nil
}
