// Package assets selects the best pre-rendered variant of a logical asset
// for the active display scale factor.
//
// A logical asset (say "icons/save") exists in several pre-rendered
// resolution variants, one per scale factor. A Registry holds the variants
// for one asset ordered by factor; a Selector binds a registry to a
// scale.State and answers "which variant should render right now, and at
// what size". Selection prefers downscaling a higher-resolution variant
// over upscaling a lower one:
//
//  1. Exact factor match.
//  2. Smallest registered factor strictly greater than the requested one.
//  3. Largest registered factor (upscale as last resort).
//  4. Empty registry: explicit "no variant" outcome; the caller draws a
//     placeholder.
//
// The rendered size is always logical size × requested factor, regardless
// of which physical variant was chosen.
//
// Registries come from catalogs: a TOML Manifest, or ScanDir which applies
// the filename convention name.png, name@1.5x.png, name@2x.png, name@3x.png.
package assets

import (
	"math"
	"sort"

	"github.com/densikit/densikit/pkg/errors"
)

// factorEpsilon is the tolerance for treating two factors as the same
// variant slot, matching the scale state's change-detection threshold.
const factorEpsilon = 0.001

// Variant is one pre-rendered resolution of a logical asset: the factor it
// was produced for and an opaque handle (a file path, an image, a texture id).
type Variant[H any] struct {
	Factor float64
	Handle H
}

// Registry holds the variants of a single logical asset, ordered by factor
// with unique factors. The zero Registry is valid and empty.
type Registry[H any] struct {
	variants []Variant[H]
}

// NewRegistry builds a Registry from variants in any order. Non-positive or
// duplicate factors indicate a broken catalog and return INVALID_MANIFEST.
func NewRegistry[H any](variants ...Variant[H]) (Registry[H], error) {
	sorted := append([]Variant[H](nil), variants...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Factor < sorted[j].Factor })

	for i, v := range sorted {
		if v.Factor <= 0 || math.IsNaN(v.Factor) {
			return Registry[H]{}, errors.New(errors.ErrCodeInvalidManifest,
				"variant factor must be positive, got %g", v.Factor)
		}
		if i > 0 && sorted[i].Factor-sorted[i-1].Factor <= factorEpsilon {
			return Registry[H]{}, errors.New(errors.ErrCodeInvalidManifest,
				"duplicate variant factor %g", v.Factor)
		}
	}

	return Registry[H]{variants: sorted}, nil
}

// Len returns the number of variants.
func (r Registry[H]) Len() int {
	return len(r.variants)
}

// Factors returns the registered factors in ascending order.
func (r Registry[H]) Factors() []float64 {
	out := make([]float64, len(r.variants))
	for i, v := range r.variants {
		out[i] = v.Factor
	}
	return out
}

// Variants returns a copy of the ordered variant list.
func (r Registry[H]) Variants() []Variant[H] {
	return append([]Variant[H](nil), r.variants...)
}

// pick applies the selection order to the requested factor. ok is false
// only for an empty registry.
func (r Registry[H]) pick(factor float64) (v Variant[H], ok bool) {
	if len(r.variants) == 0 {
		return v, false
	}

	// Exact match.
	for _, cand := range r.variants {
		if math.Abs(cand.Factor-factor) <= factorEpsilon {
			return cand, true
		}
	}

	// Smallest factor strictly greater: downscaling keeps edges crisp.
	for _, cand := range r.variants {
		if cand.Factor > factor {
			return cand, true
		}
	}

	// Largest available; upscaling beats nothing.
	return r.variants[len(r.variants)-1], true
}
