package reader

import (
	"encoding/json"
	"fmt"
	"image"
	"os"

	// Image decoders for texture files.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"github.com/Dark565/octaray/geom"
	"github.com/Dark565/octaray/scene"
	"github.com/Dark565/octaray/types"
)

// Vec3 and RGB mirror the json array forms `[x, y, z]`.
type Vec3 [3]float64
type RGB [3]float32

func (v Vec3) vec() types.Vec3 {
	return types.XYZ(v[0], v[1], v[2])
}

func (c RGB) color() types.Color {
	return types.RGB(c[0], c[1], c[2])
}

type WorldCfg struct {
	Pos  Vec3    `json:"pos"`
	Size float64 `json:"size"`

	MaxInDepth  int `json:"maxInDepth,omitempty"`
	MaxOutDepth int `json:"maxOutDepth,omitempty"`
}

type CameraCfg struct {
	Position Vec3    `json:"position"`
	LookAt   Vec3    `json:"lookAt"`
	FOV      float64 `json:"fov,omitempty"`
}

type SkyCfg struct {
	// Uniform sky color; mutually exclusive with the gradient pair.
	Color *RGB `json:"color,omitempty"`

	Horizon *RGB `json:"horizon,omitempty"`
	Zenith  *RGB `json:"zenith,omitempty"`
}

type SubstanceCfg struct {
	RefractiveIndex float64 `json:"refractiveIndex"`
}

type MaterialCfg struct {
	Response  string  `json:"response,omitempty"` // "reflection" (default) or "transmission"
	Mirror    bool    `json:"mirror,omitempty"`
	Light     bool    `json:"light,omitempty"`
	Roughness float64 `json:"roughness,omitempty"`
}

type CheckerCfg struct {
	A     RGB `json:"a"`
	B     RGB `json:"b"`
	Tiles int `json:"tiles,omitempty"`
}

type TextureCfg struct {
	Color   *RGB        `json:"color,omitempty"`
	Checker *CheckerCfg `json:"checker,omitempty"`
	File    string      `json:"file,omitempty"`
}

type SphereCfg struct {
	Center   Vec3    `json:"center"`
	Diameter float64 `json:"diameter"`

	Material  string `json:"material"`
	Texture   string `json:"texture"`
	Substance string `json:"substance,omitempty"`
}

type BoxCfg struct {
	Center Vec3    `json:"center"`
	Edge   float64 `json:"edge"`

	Material  string `json:"material"`
	Texture   string `json:"texture"`
	Substance string `json:"substance,omitempty"`
}

type Config struct {
	World      WorldCfg                `json:"world"`
	Camera     CameraCfg               `json:"camera"`
	Sky        *SkyCfg                 `json:"sky,omitempty"`
	Substances map[string]SubstanceCfg `json:"substances,omitempty"`
	Materials  map[string]MaterialCfg  `json:"materials"`
	Textures   map[string]TextureCfg   `json:"textures"`
	Spheres    []SphereCfg             `json:"spheres,omitempty"`
	Boxes      []BoxCfg                `json:"boxes,omitempty"`
}

// ReadScene parses a json scene description and builds the indexed scene.
func ReadScene(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("reader: parsing %s: %v", path, err)
	}
	return cfg.Build()
}

// Build assembles and indexes the configured scene.
func (cfg *Config) Build() (*scene.Scene, error) {
	if cfg.World.Size <= 0 {
		return nil, fmt.Errorf("reader: world size must be positive")
	}

	sc := scene.New(geom.CubeSpace(cfg.World.Pos.vec(), cfg.World.Size))
	if cfg.World.MaxInDepth > 0 {
		sc.Budget.MaxInDepth = cfg.World.MaxInDepth
	}
	if cfg.World.MaxOutDepth > 0 {
		sc.Budget.MaxOutDepth = cfg.World.MaxOutDepth
	}

	if fov := cfg.Camera.FOV; fov > 0 {
		sc.Camera.FOV = fov
	}
	if cfg.Camera.Position == cfg.Camera.LookAt {
		return nil, fmt.Errorf("reader: camera position and lookAt coincide")
	}
	sc.Camera.Position = cfg.Camera.Position.vec()
	sc.Camera.LookAt(cfg.Camera.LookAt.vec(), types.XYZ(0, 1, 0))

	if err := cfg.buildSky(sc); err != nil {
		return nil, err
	}

	substances := map[string]*scene.Substance{
		"air":   scene.Air,
		"water": scene.Water,
		"glass": scene.Glass,
	}
	for name, s := range cfg.Substances {
		if s.RefractiveIndex <= 0 {
			return nil, fmt.Errorf("reader: substance %q needs a positive refractive index", name)
		}
		substances[name] = &scene.Substance{Name: name, RefractiveIndex: s.RefractiveIndex}
	}

	materials := make(map[string]scene.Material, len(cfg.Materials))
	for name, m := range cfg.Materials {
		mat, err := m.build(name)
		if err != nil {
			return nil, err
		}
		materials[name] = mat
	}

	textures := make(map[string]scene.Texture, len(cfg.Textures))
	for name, t := range cfg.Textures {
		tex, err := t.build(name)
		if err != nil {
			return nil, err
		}
		textures[name] = tex
	}

	resolve := func(kind, mat, tex, subst string) (scene.Material, scene.Texture, *scene.Substance, error) {
		m, ok := materials[mat]
		if !ok {
			return nil, nil, nil, fmt.Errorf("reader: %s references unknown material %q", kind, mat)
		}
		tx, ok := textures[tex]
		if !ok {
			return nil, nil, nil, fmt.Errorf("reader: %s references unknown texture %q", kind, tex)
		}
		var sb *scene.Substance
		if subst != "" {
			if sb, ok = substances[subst]; !ok {
				return nil, nil, nil, fmt.Errorf("reader: %s references unknown substance %q", kind, subst)
			}
		}
		return m, tx, sb, nil
	}

	for i, s := range cfg.Spheres {
		m, tx, sb, err := resolve(fmt.Sprintf("sphere %d", i), s.Material, s.Texture, s.Substance)
		if err != nil {
			return nil, err
		}
		if _, err := sc.Add(&scene.Sphere{
			Center:   s.Center.vec(),
			Diameter: s.Diameter,
			Mat:      m,
			Tex:      tx,
			Subst:    sb,
		}); err != nil {
			return nil, fmt.Errorf("reader: indexing sphere %d: %w", i, err)
		}
	}

	for i, b := range cfg.Boxes {
		m, tx, sb, err := resolve(fmt.Sprintf("box %d", i), b.Material, b.Texture, b.Substance)
		if err != nil {
			return nil, err
		}
		if _, err := sc.Add(&scene.Box{
			Center: b.Center.vec(),
			Edge:   b.Edge,
			Mat:    m,
			Tex:    tx,
			Subst:  sb,
		}); err != nil {
			return nil, fmt.Errorf("reader: indexing box %d: %w", i, err)
		}
	}

	return sc, nil
}

func (cfg *Config) buildSky(sc *scene.Scene) error {
	if cfg.Sky == nil {
		return nil
	}
	switch {
	case cfg.Sky.Color != nil:
		sc.Sky = &scene.UniformSky{C: cfg.Sky.Color.color()}
	case cfg.Sky.Horizon != nil && cfg.Sky.Zenith != nil:
		sc.Sky = &scene.GradientSky{
			Horizon: cfg.Sky.Horizon.color(),
			Zenith:  cfg.Sky.Zenith.color(),
		}
	default:
		return fmt.Errorf("reader: sky needs either a color or a horizon/zenith pair")
	}
	return nil
}

func (m MaterialCfg) build(name string) (scene.Material, error) {
	mat := &scene.StaticMaterial{
		Mirror: m.Mirror,
		Light:  m.Light,
		Rough:  m.Roughness,
	}
	switch m.Response {
	case "", "reflection":
		mat.Resp = scene.Reflection
	case "transmission":
		mat.Resp = scene.Transmission
	default:
		return nil, fmt.Errorf("reader: material %q has unknown response %q", name, m.Response)
	}
	if m.Roughness < 0 || m.Roughness > 1 {
		return nil, fmt.Errorf("reader: material %q roughness must be in [0,1]", name)
	}
	return mat, nil
}

func (t TextureCfg) build(name string) (scene.Texture, error) {
	switch {
	case t.Color != nil:
		return &scene.UniformTexture{C: t.Color.color()}, nil
	case t.Checker != nil:
		return &scene.CheckerTexture{
			A:     t.Checker.A.color(),
			B:     t.Checker.B.color(),
			Tiles: t.Checker.Tiles,
		}, nil
	case t.File != "":
		f, err := os.Open(t.File)
		if err != nil {
			return nil, fmt.Errorf("reader: texture %q: %v", name, err)
		}
		defer f.Close()
		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("reader: texture %q: %v", name, err)
		}
		return &scene.ImageTexture{Img: img}, nil
	}
	return nil, fmt.Errorf("reader: texture %q needs a color, checker or file", name)
}
