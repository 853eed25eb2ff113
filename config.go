package painter

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gekko3d/painter/core"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Config collects everything a Painter and its window need at startup.
// Files only have to name the fields they change; the rest keeps the
// values of DefaultConfig.
type Config struct {
	Camera     CameraConfig     `yaml:"camera"`
	Navigation NavigationConfig `yaml:"navigation"`
	Window     WindowConfig     `yaml:"window"`
	Debug      bool             `yaml:"debug"`
}

type CameraConfig struct {
	Position     [3]float32 `yaml:"position"`
	FOV          float32    `yaml:"fov"`
	Near         float32    `yaml:"near"`
	Far          float32    `yaml:"far"`
	LookDistance float32    `yaml:"look_distance"`
}

// NavigationConfig tunes the trackball. Buttons maps "left", "middle" and
// "right" to "rotate", "pan", "dolly" or "none".
type NavigationConfig struct {
	RotateSensitivity     float32           `yaml:"rotate_sensitivity"`
	PanSensitivity        float32           `yaml:"pan_sensitivity"`
	DollyWheelSensitivity float32           `yaml:"dolly_wheel_sensitivity"`
	DollyDragSensitivity  float32           `yaml:"dolly_drag_sensitivity"`
	MinLookDistance       float32           `yaml:"min_look_distance"`
	Buttons               map[string]string `yaml:"buttons"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	// RefreshMillis is the redraw poll interval of the frame loop.
	RefreshMillis int        `yaml:"refresh_ms"`
	Background    [4]float64 `yaml:"background"`
}

func DefaultConfig() Config {
	tb := core.DefaultTrackballConfig()
	buttons := make(map[string]string, len(tb.Buttons))
	for b, m := range tb.Buttons {
		buttons[b.String()] = m.String()
	}
	return Config{
		Camera: CameraConfig{
			FOV:          core.DefaultFOV,
			Near:         core.DefaultNear,
			Far:          core.DefaultFar,
			LookDistance: core.DefaultLookDistance,
		},
		Navigation: NavigationConfig{
			RotateSensitivity:     tb.RotateSensitivity,
			PanSensitivity:        tb.PanSensitivity,
			DollyWheelSensitivity: tb.DollyWheelSensitivity,
			DollyDragSensitivity:  tb.DollyDragSensitivity,
			MinLookDistance:       tb.MinLookDistance,
			Buttons:               buttons,
		},
		Window: WindowConfig{
			Width:         1280,
			Height:        720,
			Title:         "Painter",
			RefreshMillis: 20,
			Background:    [4]float64{0, 0, 0, 1},
		},
	}
}

// LoadConfig reads a YAML file over DefaultConfig.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		errs = append(errs, fmt.Errorf("camera.fov must be in (0, 180), got %v", c.Camera.FOV))
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		errs = append(errs, fmt.Errorf("camera clip planes must satisfy 0 < near < far, got %v, %v", c.Camera.Near, c.Camera.Far))
	}
	n := c.Navigation
	for name, v := range map[string]float32{
		"rotate_sensitivity":      n.RotateSensitivity,
		"pan_sensitivity":         n.PanSensitivity,
		"dolly_wheel_sensitivity": n.DollyWheelSensitivity,
		"dolly_drag_sensitivity":  n.DollyDragSensitivity,
	} {
		if v < 0 {
			errs = append(errs, fmt.Errorf("navigation.%s must not be negative, got %v", name, v))
		}
	}
	if _, err := n.buttonMap(); err != nil {
		errs = append(errs, err)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	return errors.Join(errs...)
}

func (c CameraConfig) options() core.CameraOptions {
	return core.CameraOptions{
		Position:     mgl32.Vec3(c.Position),
		Orientation:  mgl32.QuatIdent(),
		FOV:          c.FOV,
		Near:         c.Near,
		Far:          c.Far,
		LookDistance: c.LookDistance,
	}
}

func (n NavigationConfig) trackball() (core.TrackballConfig, error) {
	buttons, err := n.buttonMap()
	if err != nil {
		return core.TrackballConfig{}, err
	}
	return core.TrackballConfig{
		RotateSensitivity:     n.RotateSensitivity,
		PanSensitivity:        n.PanSensitivity,
		DollyWheelSensitivity: n.DollyWheelSensitivity,
		DollyDragSensitivity:  n.DollyDragSensitivity,
		MinLookDistance:       n.MinLookDistance,
		Buttons:               buttons,
	}, nil
}

func (n NavigationConfig) buttonMap() (map[core.Button]core.DragMode, error) {
	if len(n.Buttons) == 0 {
		return core.DefaultTrackballConfig().Buttons, nil
	}
	out := make(map[core.Button]core.DragMode, len(n.Buttons))
	for b, m := range n.Buttons {
		button, err := parseButton(b)
		if err != nil {
			return nil, err
		}
		mode, err := parseDragMode(m)
		if err != nil {
			return nil, err
		}
		out[button] = mode
	}
	return out, nil
}

func parseButton(s string) (core.Button, error) {
	for _, b := range []core.Button{core.ButtonLeft, core.ButtonMiddle, core.ButtonRight} {
		if strings.EqualFold(s, b.String()) {
			return b, nil
		}
	}
	return 0, fmt.Errorf("navigation.buttons: unknown button %q", s)
}

func parseDragMode(s string) (core.DragMode, error) {
	for _, m := range []core.DragMode{core.DragNone, core.DragRotate, core.DragPan, core.DragDolly} {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("navigation.buttons: unknown action %q", s)
}
