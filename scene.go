package painter

import (
	"errors"
	"fmt"
	"os"

	"github.com/gekko3d/painter/core"
	"github.com/gekko3d/painter/geom"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Shader names served by the bundled GPU sink.
const (
	Shader3D        = "simple3d"
	Shader2D        = "simple2d"
	ShaderHeightMap = "heightmap"
)

// SceneDef describes the items to create when a scene is loaded.
type SceneDef struct {
	Items []ItemDef `yaml:"items"`
}

// ItemDef is one ItemCreate call. Params is decoded into the class's
// parameter struct, starting from the class defaults.
type ItemDef struct {
	Class     string         `yaml:"class"`
	Label     string         `yaml:"label"`
	Shader    string         `yaml:"shader"`
	Scale     float32        `yaml:"scale"`
	Origin    [3]float32     `yaml:"origin"`
	Rotation  *RotationDef   `yaml:"rotation"`
	Placement core.Placement `yaml:"placement"`
	LineWidth float32        `yaml:"line_width"`
	Filled    *bool          `yaml:"filled"`
	Params    yaml.Node      `yaml:"params"`
}

type RotationDef struct {
	Axis  [3]float32 `yaml:"axis"`
	Angle float32    `yaml:"angle"`
}

func ParseScene(data []byte) (*SceneDef, error) {
	var scene SceneDef
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return &scene, nil
}

// LoadSceneFile parses the YAML scene at path and loads it into p.
func LoadSceneFile(p *Painter, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read scene: %w", err)
	}
	scene, err := ParseScene(data)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return LoadScene(p, scene)
}

// LoadScene creates every item of scene in order. An item that fails is
// logged and skipped; the joined errors are returned with the number of
// items created.
func LoadScene(p *Painter, scene *SceneDef) (int, error) {
	var errs []error
	created := 0
	for i, def := range scene.Items {
		if _, err := spawnItem(p, def); err != nil {
			p.log.Errorf("scene item %d: %v", i, err)
			errs = append(errs, fmt.Errorf("scene item %d: %w", i, err))
			continue
		}
		created++
	}
	p.log.Infof("scene loaded: %d of %d items", created, len(scene.Items))
	return created, errors.Join(errs...)
}

func spawnItem(p *Painter, def ItemDef) (*core.Item, error) {
	if def.Label == "" {
		return nil, fmt.Errorf("%s item without label", def.Class)
	}
	params, err := p.classes.NewParams(def.Class)
	if err != nil {
		return nil, fmt.Errorf("item %q: %w", def.Label, err)
	}
	if !def.Params.IsZero() {
		if err := def.Params.Decode(params); err != nil {
			return nil, fmt.Errorf("item %q: %w: %v", def.Label, geom.ErrInvalidParams, err)
		}
	}

	shader := def.Shader
	if shader == "" {
		shader = defaultShader(def.Class, def.Placement)
	}
	scale := def.Scale
	if scale == 0 {
		scale = 1
	}

	opts := []ItemOption{WithPlacement(def.Placement)}
	if def.Rotation != nil {
		opts = append(opts, WithRotation(mgl32.Vec3(def.Rotation.Axis), def.Rotation.Angle))
	}
	if def.LineWidth > 0 {
		opts = append(opts, WithLineWidth(def.LineWidth))
	}
	if def.Filled != nil {
		opts = append(opts, WithFilled(*def.Filled))
	}
	return p.ItemCreate(def.Class, def.Label, shader, scale, mgl32.Vec3(def.Origin), params, opts...)
}

func defaultShader(class string, pl core.Placement) string {
	switch {
	case pl.Mode == core.PlacementOverlay:
		return Shader2D
	case class == "HeightMap":
		return ShaderHeightMap
	}
	return Shader3D
}
