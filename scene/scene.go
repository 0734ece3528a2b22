package scene

import (
	"fmt"

	"github.com/Dark565/octaray/geom"
	"github.com/Dark565/octaray/octree"
	"github.com/Dark565/octaray/types"
)

// Scene owns the entity index and everything a tracer needs around it: the
// camera, the sky model and the ambient substance rays start in. The index is
// mutated only by setup code; during a frame it is read-only.
type Scene struct {
	Camera  *Camera
	Sky     Sky
	Ambient *Substance

	// Budget bounds tree growth on entity insertion.
	Budget octree.GrowBudget

	root     *octree.Node
	entities []Entity
}

// New creates an empty scene over the given world box.
func New(dim geom.Space) *Scene {
	return &Scene{
		Camera:  NewCamera(60),
		Sky:     &GradientSky{Horizon: defaultHorizon, Zenith: defaultZenith},
		Ambient: Air,
		Budget:  octree.GrowBudget{MaxInDepth: 16, MaxOutDepth: 8},
		root:    octree.NewItemTree(dim),
	}
}

var (
	defaultHorizon = types.RGB(0.9, 0.95, 1)
	defaultZenith  = types.RGB(0.35, 0.55, 0.95)
)

// Add indexes an entity. The tree may grow a new absolute root while fitting
// the entity; the scene re-resolves it afterwards.
func (s *Scene) Add(e Entity) (*octree.Node, error) {
	n, err := octree.AddItem(s.root, e, s.Budget)
	if err != nil {
		return nil, err
	}
	s.root = s.root.Root()
	s.entities = append(s.entities, e)
	return n, nil
}

// Root returns the current absolute root of the entity index.
func (s *Scene) Root() *octree.Node {
	return s.root
}

// Entities returns every indexed entity.
func (s *Scene) Entities() []Entity {
	return s.entities
}

// Stats renders a short human readable summary of the scene contents.
func (s *Scene) Stats() string {
	lights := 0
	for _, e := range s.entities {
		if e.Material().IsLightSource() {
			lights++
		}
	}

	dim := s.root.Dim()
	return fmt.Sprintf(
		"entities: %d (%d light sources)\nworld: pos %v, size %v\nambient substance: %s",
		len(s.entities), lights, dim.Pos, dim.Size, s.Ambient.Name,
	)
}
