package scene

import "github.com/Dark565/octaray/types"

// Response classifies how a surface answers incoming light.
type Response uint8

const (
	// Reflection bounces the ray off the surface. Non-mirror reflective
	// surfaces absorb the ray instead; the dispatch stays a named case so
	// a diffuse scattering model can replace it without touching callers.
	Reflection Response = iota

	// Transmission lets the ray pass into the entity's substance,
	// refracting at the boundary.
	Transmission
)

// ColorCarrier is the slice of the tracing ray a material may mutate.
type ColorCarrier interface {
	Color() types.Color
	SetColor(types.Color)
}

// Material decides the light response at a surface point.
type Material interface {
	ResponseType(p types.Vec3) Response
	IsMirror(p types.Vec3) bool
	IsLightSource() bool

	// Roughness returns the scatter blend weight in [0,1]; 0 is a
	// perfect mirror.
	Roughness() float64

	// AlterRay modulates the ray color with the surface sample at the
	// hit point. Returns false when the ray should be dropped.
	AlterRay(r ColorCarrier, e Entity, tex Texture, p types.Vec3) bool
}

// StaticMaterial answers with the same response everywhere on the surface.
type StaticMaterial struct {
	Resp   Response
	Mirror bool
	Light  bool
	Rough  float64
}

func (m *StaticMaterial) ResponseType(p types.Vec3) Response {
	return m.Resp
}

func (m *StaticMaterial) IsMirror(p types.Vec3) bool {
	return m.Mirror
}

func (m *StaticMaterial) IsLightSource() bool {
	return m.Light
}

func (m *StaticMaterial) Roughness() float64 {
	return m.Rough
}

func (m *StaticMaterial) AlterRay(r ColorCarrier, e Entity, tex Texture, p types.Vec3) bool {
	uv := e.MapUV(p)
	r.SetColor(r.Color().Mod(tex.Sample(uv[0], uv[1])))
	return true
}
