package scene

// Substance is the medium a ray travels through. Refraction at entity
// boundaries follows the ratio of the indices on both sides.
type Substance struct {
	Name            string
	RefractiveIndex float64
}

var (
	Air   = &Substance{Name: "air", RefractiveIndex: 1.0}
	Water = &Substance{Name: "water", RefractiveIndex: 1.33}
	Glass = &Substance{Name: "glass", RefractiveIndex: 1.52}
)
