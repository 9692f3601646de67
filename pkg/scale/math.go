package scale

import "math"

// Scale multiplies v by factor and rounds half away from zero.
func Scale(v int, factor float64) int {
	return int(math.Round(float64(v) * factor))
}

// ScaleF multiplies v by factor without rounding.
func ScaleF(v, factor float64) float64 {
	return v * factor
}

// Unscale reverses Scale, converting a value at the given factor back to
// baseline units. Within rounding, Unscale(Scale(v, f), f) is v ± 1.
func Unscale(v int, factor float64) int {
	if factor == 0 {
		return v
	}
	return int(math.Round(float64(v) / factor))
}

// Scale is a convenience for Scale(v, s.Get()).
func (s *State) Scale(v int) int {
	return Scale(v, s.Get())
}

// Unscale is a convenience for Unscale(v, s.Get()).
func (s *State) Unscale(v int) int {
	return Unscale(v, s.Get())
}
