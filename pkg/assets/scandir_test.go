package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/densikit/densikit/pkg/errors"
)

func TestVariantSuffix(t *testing.T) {
	tests := []struct {
		factor float64
		want   string
	}{
		{1.0, ""},
		{2.0, "@2x"},
		{3.0, "@3x"},
		{1.5, "@1.5x"},
		{1.25, "@1.25x"},
	}

	for _, tt := range tests {
		if got := VariantSuffix(tt.factor); got != tt.want {
			t.Errorf("VariantSuffix(%v) = %q, want %q", tt.factor, got, tt.want)
		}
	}
}

func TestVariantPath(t *testing.T) {
	tests := []struct {
		id     string
		factor float64
		want   string
	}{
		{"icons/save", 1.0, "icons/save.png"},
		{"icons/save", 2.0, "icons/save@2x.png"},
		{"icons/save", 1.5, "icons/save@1.5x.png"},
		{"toolbar", 3.0, "toolbar@3x.png"},
	}

	for _, tt := range tests {
		if got := VariantPath(tt.id, tt.factor); got != tt.want {
			t.Errorf("VariantPath(%q, %v) = %q, want %q", tt.id, tt.factor, got, tt.want)
		}
	}
}

func TestParseVariantName(t *testing.T) {
	tests := []struct {
		name   string
		base   string
		factor float64
		ok     bool
	}{
		{"save.png", "save", 1.0, true},
		{"save@2x.png", "save", 2.0, true},
		{"save@1.5x.png", "save", 1.5, true},
		{"save@1.25x.png", "save", 1.25, true},
		{"other.png", "save", 0, false},
		{"save@x.png", "save", 0, false},
		{"save@2.png", "save", 0, false},
		{"save@-1x.png", "save", 0, false},
		{"save@2x.jpg", "save", 0, false},
	}

	for _, tt := range tests {
		factor, ok := parseVariantName(tt.name, tt.base)
		if ok != tt.ok || (ok && factor != tt.factor) {
			t.Errorf("parseVariantName(%q, %q) = %v, %v, want %v, %v",
				tt.name, tt.base, factor, ok, tt.factor, tt.ok)
		}
	}
}

func TestScanDir(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "icons")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"save.png", "save@1.5x.png", "save@2x.png", "open.png", "save.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	reg, err := ScanDir(root, "icons/save")
	if err != nil {
		t.Fatalf("ScanDir: %v", err)
	}

	want := []float64{1.0, 1.5, 2.0}
	got := reg.Factors()
	if len(got) != len(want) {
		t.Fatalf("Factors() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Factors()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	v, ok := reg.pick(1.5)
	if !ok || v.Handle != filepath.Join(dir, "save@1.5x.png") {
		t.Errorf("pick(1.5) = %q, ok=%v", v.Handle, ok)
	}
}

func TestScanDirErrors(t *testing.T) {
	root := t.TempDir()

	if _, err := ScanDir(root, "../evil"); !errors.Is(err, errors.ErrCodeInvalidAssetID) {
		t.Errorf("traversal id = %v, want INVALID_ASSET_ID", err)
	}

	if _, err := ScanDir(root, "missing/icon"); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing dir = %v, want FILE_NOT_FOUND", err)
	}

	// Directory exists but holds no matching variants: empty registry.
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0o755); err != nil {
		t.Fatal(err)
	}
	reg, err := ScanDir(root, "empty/icon")
	if err != nil {
		t.Fatalf("ScanDir on empty dir: %v", err)
	}
	if reg.Len() != 0 {
		t.Errorf("Len() = %d, want 0", reg.Len())
	}
}
