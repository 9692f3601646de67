// Package cli implements the densikit command-line interface.
//
// This package provides commands for transforming layout constraint
// strings between display densities, detecting the scale factor from the
// environment, inspecting pre-rendered asset catalogs, and watching
// settings files for density changes. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - transform: Rewrite constraint strings for a scale factor
//   - detect: Probe scale factor providers and report the result
//   - assets: List asset catalogs and select variants
//   - watch: Follow scale factor changes from settings and environment
//   - preview: Interactive factor playground
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/densikit/densikit/pkg/buildinfo"
	"github.com/densikit/densikit/pkg/errors"
	"github.com/densikit/densikit/pkg/monitor"
	"github.com/densikit/densikit/pkg/scale"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "densikit"

	// settingsFile is the settings filename under the config directory.
	settingsFile = "density.toml"
)

// scaleEnvVars are the environment variables probed for a scale factor,
// in priority order.
var scaleEnvVars = []string{"DENSIKIT_SCALE", "GDK_SCALE", "QT_SCALE_FACTOR"}

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "densikit",
		Short:        "Densikit adapts UI layouts and assets to display density",
		Long:         `Densikit is a CLI tool for working with display scale factors: it rewrites layout constraint strings for a target density, detects the factor from the environment, and picks the best pre-rendered asset variant.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.transformCommand())
	root.AddCommand(c.detectCommand())
	root.AddCommand(c.assetsCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Providers
// =============================================================================

// defaultProviders builds the standard detection chain: settings file
// first, then environment variables.
func defaultProviders(settingsPath string) scale.DetectFunc {
	return monitor.Chain(
		monitor.FromFile(settingsPath),
		monitor.FromEnv(scaleEnvVars...),
	)
}

// resolveFactor turns the shared --factor/--detect flags into a factor.
// An explicit --factor wins; --detect runs the provider chain; otherwise
// the identity factor is used.
func resolveFactor(factorFlag string, detect bool, settingsPath string) (float64, error) {
	if factorFlag != "" {
		return errors.ParseFactor(factorFlag)
	}
	if detect {
		f, err := defaultProviders(settingsPath)()
		if err != nil {
			return 0, err
		}
		return f, nil
	}
	return 1.0, nil
}

// =============================================================================
// Paths
// =============================================================================

// settingsPath returns the settings file path using the XDG standard
// (~/.config/densikit/density.toml).
func settingsPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, settingsFile), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, settingsFile), nil
}
