package monitor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/densikit/densikit/pkg/errors"
)

func TestStatic(t *testing.T) {
	f, err := Static(1.5)()
	if err != nil || f != 1.5 {
		t.Errorf("Static(1.5)() = %v, %v", f, err)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("DENSIKIT_TEST_SCALE", "")
	t.Setenv("DENSIKIT_TEST_SCALE_2", "2")

	// First set variable wins, empty ones are skipped.
	f, err := FromEnv("DENSIKIT_TEST_SCALE", "DENSIKIT_TEST_SCALE_2")()
	if err != nil || f != 2.0 {
		t.Errorf("FromEnv = %v, %v, want 2.0", f, err)
	}

	t.Setenv("DENSIKIT_TEST_SCALE", "150%")
	f, err = FromEnv("DENSIKIT_TEST_SCALE", "DENSIKIT_TEST_SCALE_2")()
	if err != nil || f != 1.5 {
		t.Errorf("FromEnv percent = %v, %v, want 1.5", f, err)
	}

	t.Setenv("DENSIKIT_TEST_SCALE", "junk")
	if _, err := FromEnv("DENSIKIT_TEST_SCALE")(); !errors.Is(err, errors.ErrCodeDetectFailed) {
		t.Errorf("unparseable value = %v, want DETECT_FAILED", err)
	}

	if _, err := FromEnv("DENSIKIT_TEST_UNSET_A", "DENSIKIT_TEST_UNSET_B")(); !errors.Is(err, errors.ErrCodeDetectFailed) {
		t.Errorf("all unset = %v, want DETECT_FAILED", err)
	}
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "density.toml")
	if err := os.WriteFile(path, []byte("factor = 1.75\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := FromFile(path)()
	if err != nil || f != 1.75 {
		t.Errorf("FromFile = %v, %v, want 1.75", f, err)
	}

	if _, err := FromFile(filepath.Join(t.TempDir(), "nope.toml"))(); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file = %v, want FILE_NOT_FOUND", err)
	}

	if err := os.WriteFile(path, []byte("factor = -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := FromFile(path)(); !errors.Is(err, errors.ErrCodeDetectFailed) {
		t.Errorf("negative factor = %v, want DETECT_FAILED", err)
	}

	if err := os.WriteFile(path, []byte("factor = [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := FromFile(path)(); !errors.Is(err, errors.ErrCodeDetectFailed) {
		t.Errorf("bad toml = %v, want DETECT_FAILED", err)
	}
}

func TestChain(t *testing.T) {
	fail := func() (float64, error) {
		return 0, errors.New(errors.ErrCodeDetectFailed, "nothing here")
	}

	f, err := Chain(fail, Static(2.5), Static(9))()
	if err != nil || f != 2.5 {
		t.Errorf("Chain = %v, %v, want first success 2.5", f, err)
	}

	f, err = Chain(nil, Static(1.25))()
	if err != nil || f != 1.25 {
		t.Errorf("Chain with nil = %v, %v, want 1.25", f, err)
	}

	if _, err := Chain(fail, fail)(); !errors.Is(err, errors.ErrCodeDetectFailed) {
		t.Errorf("all failed = %v, want DETECT_FAILED", err)
	}

	if _, err := Chain()(); !errors.Is(err, errors.ErrCodeDetectFailed) {
		t.Errorf("empty chain = %v, want DETECT_FAILED", err)
	}
}
