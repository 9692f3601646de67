package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/densikit/densikit/pkg/errors"
	"github.com/densikit/densikit/pkg/scale"
)

const manifestBody = `
[[asset]]
id = "icons/save"
width = 16
height = 16

[[asset.variant]]
factor = 1.0
path = "icons/save.png"

[[asset.variant]]
factor = 2.0
path = "icons/save@2x.png"

[[asset]]
id = "icons/open"
width = 16
height = 16

[[asset.variant]]
factor = 1.0
path = "/abs/icons/open.png"
`

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "assets.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	path := writeManifest(t, manifestBody)
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}

	ids := m.IDs()
	if len(ids) != 2 || ids[0] != "icons/save" || ids[1] != "icons/open" {
		t.Errorf("IDs() = %v", ids)
	}

	a, err := m.Lookup("icons/save")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if a.Width != 16 || len(a.Variants) != 2 {
		t.Errorf("Lookup returned %+v", a)
	}

	if _, err := m.Lookup("icons/missing"); !errors.Is(err, errors.ErrCodeAssetNotFound) {
		t.Errorf("Lookup(missing) = %v, want ASSET_NOT_FOUND", err)
	}
}

func TestLoadManifestErrors(t *testing.T) {
	if _, err := LoadManifest(filepath.Join(t.TempDir(), "nope.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file = %v, want FILE_NOT_FOUND", err)
	}

	tests := []struct {
		name string
		body string
		code errors.Code
	}{
		{"bad toml", `[[asset`, errors.ErrCodeInvalidManifest},
		{"empty id", "[[asset]]\nid = \"\"\nwidth = 16\nheight = 16\n", errors.ErrCodeInvalidAssetID},
		{"traversal id", "[[asset]]\nid = \"../evil\"\nwidth = 16\nheight = 16\n", errors.ErrCodeInvalidAssetID},
		{"duplicate id", "[[asset]]\nid = \"a\"\nwidth = 1\nheight = 1\n[[asset]]\nid = \"a\"\nwidth = 1\nheight = 1\n", errors.ErrCodeInvalidManifest},
		{"negative size", "[[asset]]\nid = \"a\"\nwidth = -1\nheight = 16\n", errors.ErrCodeInvalidManifest},
		{"zero factor", "[[asset]]\nid = \"a\"\nwidth = 1\nheight = 1\n[[asset.variant]]\nfactor = 0.0\npath = \"a.png\"\n", errors.ErrCodeInvalidManifest},
		{"empty variant path", "[[asset]]\nid = \"a\"\nwidth = 1\nheight = 1\n[[asset.variant]]\nfactor = 1.0\npath = \"\"\n", errors.ErrCodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeManifest(t, tt.body)
			if _, err := LoadManifest(path); !errors.Is(err, tt.code) {
				t.Errorf("LoadManifest = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestManifestRegistry(t *testing.T) {
	path := writeManifest(t, manifestBody)
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}

	reg, logical, err := m.Registry("icons/save")
	if err != nil {
		t.Fatalf("Registry: %v", err)
	}
	if logical != (scale.Size{W: 16, H: 16}) {
		t.Errorf("logical = %+v", logical)
	}

	// Relative variant paths resolve against the manifest directory.
	v, ok := reg.pick(2.0)
	if !ok {
		t.Fatal("pick(2.0) found no variant")
	}
	want := filepath.Join(m.Dir, "icons/save@2x.png")
	if v.Handle != want {
		t.Errorf("handle = %q, want %q", v.Handle, want)
	}

	// Absolute paths are kept as is.
	reg2, _, err := m.Registry("icons/open")
	if err != nil {
		t.Fatalf("Registry: %v", err)
	}
	v2, _ := reg2.pick(1.0)
	if v2.Handle != "/abs/icons/open.png" {
		t.Errorf("handle = %q, want absolute path untouched", v2.Handle)
	}
}

func TestManifestSelector(t *testing.T) {
	path := writeManifest(t, manifestBody)
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}

	state := scale.New()
	sel, err := m.Selector("icons/save", state)
	if err != nil {
		t.Fatalf("Selector: %v", err)
	}
	defer sel.Close()

	state.Update(1.5)
	v, r, ok := sel.Select()
	if !ok {
		t.Fatal("Select() found no variant")
	}
	if filepath.Base(v.Handle) != "save@2x.png" {
		t.Errorf("Select() at 1.5 = %q, want @2x variant", v.Handle)
	}
	if r.W != 24 || r.H != 24 {
		t.Errorf("Rendered = %dx%d, want 24x24", r.W, r.H)
	}

	if _, err := m.Selector("icons/missing", state); !errors.Is(err, errors.ErrCodeAssetNotFound) {
		t.Errorf("Selector(missing) = %v, want ASSET_NOT_FOUND", err)
	}
}
