package assets

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/densikit/densikit/pkg/errors"
	"github.com/densikit/densikit/pkg/scale"
)

// Manifest is a TOML asset catalog. Each asset lists its logical size and
// the resolution variants available on disk:
//
//	[[asset]]
//	id = "icons/save"
//	width = 16
//	height = 16
//
//	  [[asset.variant]]
//	  factor = 1.0
//	  path = "icons/save.png"
//
//	  [[asset.variant]]
//	  factor = 2.0
//	  path = "icons/save@2x.png"
//
// Variant paths are resolved relative to the manifest's directory.
type Manifest struct {
	Assets []ManifestAsset `toml:"asset"`

	// Dir is the manifest's directory, used to resolve variant paths.
	Dir string `toml:"-"`
}

// ManifestAsset is one logical asset entry.
type ManifestAsset struct {
	ID       string            `toml:"id"`
	Width    int               `toml:"width"`
	Height   int               `toml:"height"`
	Variants []ManifestVariant `toml:"variant"`
}

// ManifestVariant is one resolution entry of a manifest asset.
type ManifestVariant struct {
	Factor float64 `toml:"factor"`
	Path   string  `toml:"path"`
}

// LoadManifest reads and validates a TOML catalog from path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "manifest %s", path)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "manifest %s", path)
	}
	m.Dir = filepath.Dir(path)

	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) validate() error {
	seen := make(map[string]bool, len(m.Assets))
	for _, a := range m.Assets {
		if err := errors.ValidateAssetID(a.ID); err != nil {
			return err
		}
		if seen[a.ID] {
			return errors.New(errors.ErrCodeInvalidManifest, "duplicate asset id %q", a.ID)
		}
		seen[a.ID] = true

		if a.Width < 0 || a.Height < 0 {
			return errors.New(errors.ErrCodeInvalidManifest,
				"asset %q has negative logical size", a.ID)
		}

		for _, v := range a.Variants {
			if v.Factor <= 0 {
				return errors.New(errors.ErrCodeInvalidManifest,
					"asset %q variant factor must be positive, got %g", a.ID, v.Factor)
			}
			if err := errors.ValidateVariantPath(v.Path); err != nil {
				return err
			}
		}
	}
	return nil
}

// IDs returns all asset ids in manifest order.
func (m *Manifest) IDs() []string {
	out := make([]string, len(m.Assets))
	for i, a := range m.Assets {
		out[i] = a.ID
	}
	return out
}

// Lookup returns the asset entry for id, or ASSET_NOT_FOUND.
func (m *Manifest) Lookup(id string) (ManifestAsset, error) {
	for _, a := range m.Assets {
		if a.ID == id {
			return a, nil
		}
	}
	return ManifestAsset{}, errors.New(errors.ErrCodeAssetNotFound, "asset %q not in manifest", id)
}

// Registry builds the variant registry for id. Handles are variant file
// paths resolved against the manifest directory.
func (m *Manifest) Registry(id string) (Registry[string], scale.Size, error) {
	a, err := m.Lookup(id)
	if err != nil {
		return Registry[string]{}, scale.Size{}, err
	}

	variants := make([]Variant[string], len(a.Variants))
	for i, v := range a.Variants {
		path := v.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(m.Dir, path)
		}
		variants[i] = Variant[string]{Factor: v.Factor, Handle: path}
	}

	reg, err := NewRegistry(variants...)
	if err != nil {
		return Registry[string]{}, scale.Size{}, err
	}
	return reg, scale.Size{W: a.Width, H: a.Height}, nil
}

// Selector builds a path-handle Selector for id bound to state.
func (m *Manifest) Selector(id string, state *scale.State) (*Selector[string], error) {
	reg, logical, err := m.Registry(id)
	if err != nil {
		return nil, err
	}
	return NewSelector(id, logical, reg, state), nil
}
