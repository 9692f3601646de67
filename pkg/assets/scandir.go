package assets

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/densikit/densikit/pkg/errors"
)

// DefaultExt is the file extension ScanDir and VariantPath assume.
const DefaultExt = ".png"

// VariantSuffix formats a factor as a filename suffix: "" for 1.0, "@2x"
// for 2.0, "@1.5x" for 1.5.
func VariantSuffix(factor float64) string {
	if factor == 1.0 {
		return ""
	}
	if factor == math.Trunc(factor) {
		return "@" + strconv.Itoa(int(factor)) + "x"
	}
	return "@" + strconv.FormatFloat(factor, 'f', -1, 64) + "x"
}

// VariantPath derives the conventional filename for one variant of id:
// "icons/save" at 2.0 becomes "icons/save@2x.png".
func VariantPath(id string, factor float64) string {
	return id + VariantSuffix(factor) + DefaultExt
}

// parseVariantName extracts the factor from a conventional variant
// filename. "save.png" is factor 1.0, "save@1.5x.png" is 1.5. ok is false
// when name does not belong to base.
func parseVariantName(name, base string) (factor float64, ok bool) {
	name = strings.TrimSuffix(name, DefaultExt)
	if name == base {
		return 1.0, true
	}

	rest, found := strings.CutPrefix(name, base+"@")
	if !found || !strings.HasSuffix(rest, "x") {
		return 0, false
	}

	f, err := strconv.ParseFloat(strings.TrimSuffix(rest, "x"), 64)
	if err != nil || f <= 0 {
		return 0, false
	}
	return f, true
}

// ScanDir discovers the variants of id under root by filename convention.
// For id "icons/save" it inspects root/icons for save.png, save@1.5x.png,
// save@2x.png and so on. Handles are the discovered file paths. An id with
// no files yields an empty registry, which selects as "no variant".
func ScanDir(root, id string) (Registry[string], error) {
	if err := errors.ValidateAssetID(id); err != nil {
		return Registry[string]{}, err
	}

	dir := filepath.Join(root, filepath.Dir(id))
	base := filepath.Base(id)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Registry[string]{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "asset directory %s", dir)
		}
		return Registry[string]{}, errors.Wrap(errors.ErrCodeInternal, err, "reading asset directory %s", dir)
	}

	var variants []Variant[string]
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), DefaultExt) {
			continue
		}
		if f, ok := parseVariantName(e.Name(), base); ok {
			variants = append(variants, Variant[string]{
				Factor: f,
				Handle: filepath.Join(dir, e.Name()),
			})
		}
	}

	return NewRegistry(variants...)
}
