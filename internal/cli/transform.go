package cli

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/densikit/densikit/pkg/constraint"
	"github.com/densikit/densikit/pkg/errors"
)

// transformCommand creates the transform command.
func (c *CLI) transformCommand() *cobra.Command {
	var (
		factorFlag string
		detect     bool
	)

	cmd := &cobra.Command{
		Use:   "transform [constraint...]",
		Short: "Rewrite layout constraint strings for a scale factor",
		Long: `Transform rewrites layout constraint strings so pixel values match a
target scale factor. Gap and inset arguments, size keywords and bracketed
column sizes are scaled; percentages, flow keywords and everything else
pass through untouched.

Constraints are taken from the arguments, or from stdin when none are
given (one constraint per line).`,
		Example: `  densikit transform --factor 2 "gap 10, insets 5 5 5 5"
  densikit transform --factor 150% "w 100!, h 40:60:80"
  cat constraints.txt | densikit transform --detect`,
		RunE: func(cmd *cobra.Command, args []string) error {
			factor, err := c.transformFactor(factorFlag, detect)
			if err != nil {
				return err
			}

			loggerFromContext(cmd.Context()).Debug("transforming", "factor", factor)

			if len(args) > 0 {
				for _, s := range args {
					fmt.Println(constraint.Transform(s, factor))
				}
				return nil
			}

			scanner := bufio.NewScanner(os.Stdin)
			for scanner.Scan() {
				fmt.Println(constraint.Transform(scanner.Text(), factor))
			}
			if err := scanner.Err(); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "reading stdin")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&factorFlag, "factor", "f", "", "scale factor (e.g. 1.5 or 150%)")
	cmd.Flags().BoolVarP(&detect, "detect", "d", false, "detect the factor from settings and environment")

	return cmd
}

// transformFactor resolves the shared --factor/--detect flag pair.
func (c *CLI) transformFactor(factorFlag string, detect bool) (float64, error) {
	settings, err := settingsPath()
	if err != nil {
		settings = ""
	}
	return resolveFactor(factorFlag, detect, settings)
}
