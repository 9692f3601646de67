package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/densikit/densikit/pkg/monitor"
	"github.com/densikit/densikit/pkg/scale"
)

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		settingsFlag string
		interval     time.Duration
		noWatch      bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow display scale factor changes",
		Long: `Watch keeps a scale state refreshed from the settings file and the
environment and logs every change until interrupted. The settings file is
watched for modifications; the environment is polled on an interval as a
fallback for platforms without change notification.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := settingsFlag
			if path == "" {
				var err error
				path, err = settingsPath()
				if err != nil {
					return err
				}
			}

			logger := loggerFromContext(cmd.Context())

			state := scale.NewWithOptions(scale.Options{
				Detect: defaultProviders(path),
				Logger: logger,
			})

			token := state.Subscribe(scale.ListenerFunc(func(from, to float64) {
				logger.Info("scale factor changed",
					"from", formatFactor(from), "to", formatFactor(to))
			}))
			defer state.Unsubscribe(token)

			printInfo("Watching scale factor, current %s", formatFactor(state.Get()))
			printDetail("Settings: %s", path)

			g, ctx := errgroup.WithContext(cmd.Context())

			if !noWatch {
				if _, err := os.Stat(filepath.Dir(path)); err == nil {
					w := monitor.NewWatcher(state, path, monitor.WatcherOptions{Logger: logger})
					g.Go(func() error { return w.Run(ctx) })
				} else {
					printWarning("Settings directory missing, file watch disabled")
				}
			}

			poller := monitor.NewPoller(state, monitor.FromEnv(scaleEnvVars...), monitor.PollerOptions{
				Interval: interval,
				Logger:   logger,
			})
			g.Go(func() error {
				poller.Run(ctx)
				return nil
			})

			return g.Wait()
		},
	}

	cmd.Flags().StringVarP(&settingsFlag, "settings", "s", "", "settings file to watch (default: XDG config)")
	cmd.Flags().DurationVarP(&interval, "interval", "i", monitor.DefaultPollInterval, "environment poll interval")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "disable file watching, poll only")

	return cmd
}
