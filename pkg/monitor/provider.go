// Package monitor supplies scale factor detection sources and keeps a
// scale.State refreshed from them: static values, environment variables,
// settings files, periodic polling, and file watching.
package monitor

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/densikit/densikit/pkg/errors"
	"github.com/densikit/densikit/pkg/scale"
)

// Static returns a provider that always reports factor.
func Static(factor float64) scale.DetectFunc {
	return func() (float64, error) {
		return factor, nil
	}
}

// FromEnv returns a provider that reads the first set variable in vars.
// Values may be plain factors ("1.5") or percentages ("150%"). An unset
// or empty variable is skipped; a set but unparseable one fails.
func FromEnv(vars ...string) scale.DetectFunc {
	return func() (float64, error) {
		for _, name := range vars {
			raw := os.Getenv(name)
			if raw == "" {
				continue
			}
			f, err := errors.ParseFactor(raw)
			if err != nil {
				return 0, errors.Wrap(errors.ErrCodeDetectFailed, err, "env %s=%q", name, raw)
			}
			return f, nil
		}
		return 0, errors.New(errors.ErrCodeDetectFailed, "no scale variable set (%d checked)", len(vars))
	}
}

type settingsFile struct {
	Factor float64 `toml:"factor"`
}

// FromFile returns a provider that reads a TOML settings file holding a
// single `factor = x` key. The file is re-read on every call.
func FromFile(path string) scale.DetectFunc {
	return func() (float64, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return 0, errors.Wrap(errors.ErrCodeFileNotFound, err, "settings %s", path)
			}
			return 0, errors.Wrap(errors.ErrCodeDetectFailed, err, "settings %s", path)
		}

		var s settingsFile
		if err := toml.Unmarshal(data, &s); err != nil {
			return 0, errors.Wrap(errors.ErrCodeDetectFailed, err, "settings %s", path)
		}
		if s.Factor <= 0 {
			return 0, errors.New(errors.ErrCodeDetectFailed, "settings %s: factor must be positive, got %g", path, s.Factor)
		}
		return s.Factor, nil
	}
}

// Chain returns a provider that tries each provider in order and reports
// the first success. It fails only when every provider fails.
func Chain(providers ...scale.DetectFunc) scale.DetectFunc {
	return func() (float64, error) {
		var last error
		for _, p := range providers {
			if p == nil {
				continue
			}
			f, err := p()
			if err == nil {
				return f, nil
			}
			last = err
		}
		if last == nil {
			return 0, errors.New(errors.ErrCodeDetectFailed, "no providers configured")
		}
		return 0, errors.Wrap(errors.ErrCodeDetectFailed, last, "all providers failed")
	}
}
