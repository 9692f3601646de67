package cli

import (
	"github.com/spf13/cobra"

	"github.com/densikit/densikit/pkg/monitor"
	"github.com/densikit/densikit/pkg/scale"
)

// probe is one named detection source tried by the detect command.
type probe struct {
	name   string
	detect scale.DetectFunc
}

// detectCommand creates the detect command.
func (c *CLI) detectCommand() *cobra.Command {
	var (
		settingsFlag string
		showAll      bool
	)

	cmd := &cobra.Command{
		Use:   "detect",
		Short: "Detect the display scale factor",
		Long: `Detect probes the settings file and the scale environment variables in
priority order and reports the first factor found. With --all every
source is probed and reported, including failures.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			probes, err := c.detectProbes(settingsFlag)
			if err != nil {
				return err
			}

			logger := loggerFromContext(cmd.Context())

			found := false
			for _, p := range probes {
				f, err := p.detect()
				if err != nil {
					if showAll {
						printError("%s: %s", p.name, err)
					}
					logger.Debug("probe failed", "source", p.name, "err", err)
					continue
				}

				if !found {
					found = true
					printSuccess("Scale factor %s (%s)", formatFactor(f), formatPercent(f))
					printDetail("Source: %s", p.name)
					if !showAll {
						return nil
					}
				} else {
					printDetail("%s: %s (shadowed)", p.name, formatFactor(f))
				}
			}

			if !found {
				printWarning("No scale factor detected, assuming %s", formatFactor(1.0))
				printDetail("Set one of %v or create a settings file", scaleEnvVars)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&settingsFlag, "settings", "s", "", "settings file to probe (default: XDG config)")
	cmd.Flags().BoolVarP(&showAll, "all", "a", false, "probe and report every source")

	return cmd
}

// detectProbes builds the named probe list: settings file first, then each
// environment variable on its own.
func (c *CLI) detectProbes(settingsFlag string) ([]probe, error) {
	path := settingsFlag
	if path == "" {
		var err error
		path, err = settingsPath()
		if err != nil {
			return nil, err
		}
	}

	probes := []probe{{name: "settings " + path, detect: monitor.FromFile(path)}}
	for _, v := range scaleEnvVars {
		probes = append(probes, probe{name: "env " + v, detect: monitor.FromEnv(v)})
	}
	return probes, nil
}
