package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/densikit/densikit/pkg/assets"
	"github.com/densikit/densikit/pkg/errors"
	"github.com/densikit/densikit/pkg/scale"
)

// assetsCommand creates the assets command group.
func (c *CLI) assetsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Inspect pre-rendered asset catalogs",
	}

	cmd.AddCommand(c.assetsListCommand())
	cmd.AddCommand(c.assetsSelectCommand())

	return cmd
}

// assetsListCommand creates the "assets list" subcommand.
func (c *CLI) assetsListCommand() *cobra.Command {
	var manifestPath string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assets and their variants from a manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			prog := newProgress(loggerFromContext(cmd.Context()))
			m, err := assets.LoadManifest(manifestPath)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Loaded %d assets", len(m.Assets)))

			rows := make([][]string, 0, len(m.Assets))
			for _, a := range m.Assets {
				factors := make([]string, len(a.Variants))
				for i, v := range a.Variants {
					factors[i] = formatFactor(v.Factor) + "x"
				}
				rows = append(rows, []string{
					a.ID,
					fmt.Sprintf("%dx%d", a.Width, a.Height),
					strings.Join(factors, ", "),
				})
			}

			fmt.Println(assetsTable([]string{"Asset", "Logical", "Variants"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "asset manifest (TOML)")
	_ = cmd.MarkFlagRequired("manifest")

	return cmd
}

// assetsSelectCommand creates the "assets select" subcommand.
func (c *CLI) assetsSelectCommand() *cobra.Command {
	var (
		manifestPath string
		scanRoot     string
		factorFlag   string
		detect       bool
	)

	cmd := &cobra.Command{
		Use:   "select <id>",
		Short: "Pick the best variant of an asset for a scale factor",
		Long: `Select picks the variant of an asset that best serves a scale factor:
an exact match when one exists, otherwise the next higher variant for
downscaling, otherwise the highest available.`,
		Example: `  densikit assets select icons/save --manifest assets.toml --factor 1.5
  densikit assets select icons/save --scan ./icons --detect`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			factor, err := c.transformFactor(factorFlag, detect)
			if err != nil {
				return err
			}

			registry, logical, err := c.loadRegistry(id, manifestPath, scanRoot)
			if err != nil {
				return err
			}

			state := scale.NewWithOptions(scale.Options{Initial: factor})
			sel := assets.NewSelector(id, logical, registry, state)
			defer sel.Close()

			v, r, ok := sel.Select()
			if !ok {
				printWarning("No variant available for %s", id)
				return nil
			}

			printSuccess("%s %s %s", id, iconArrow, v.Handle)
			printKeyValue("factor", formatFactor(factor))
			printKeyValue("variant", formatFactor(v.Factor)+"x")
			printKeyValue("logical", fmt.Sprintf("%dx%d", r.Logical.W, r.Logical.H))
			printKeyValue("rendered", fmt.Sprintf("%dx%d", r.W, r.H))
			return nil
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "asset manifest (TOML)")
	cmd.Flags().StringVar(&scanRoot, "scan", "", "scan a directory by filename convention instead")
	cmd.Flags().StringVarP(&factorFlag, "factor", "f", "", "scale factor (e.g. 1.5 or 150%)")
	cmd.Flags().BoolVarP(&detect, "detect", "d", false, "detect the factor from settings and environment")
	cmd.MarkFlagsMutuallyExclusive("manifest", "scan")
	cmd.MarkFlagsOneRequired("manifest", "scan")

	return cmd
}

// loadRegistry resolves an asset's registry from either a manifest or a
// scanned directory. Scanned assets have no declared logical size, so the
// 1x variant stands in for it when present.
func (c *CLI) loadRegistry(id, manifestPath, scanRoot string) (assets.Registry[string], scale.Size, error) {
	if manifestPath != "" {
		m, err := assets.LoadManifest(manifestPath)
		if err != nil {
			return assets.Registry[string]{}, scale.Size{}, err
		}
		return m.Registry(id)
	}

	reg, err := assets.ScanDir(scanRoot, id)
	if err != nil {
		return assets.Registry[string]{}, scale.Size{}, err
	}
	if reg.Len() == 0 {
		return reg, scale.Size{}, errors.New(errors.ErrCodeAssetNotFound, "no variants of %q under %s", id, scanRoot)
	}
	return reg, scale.Size{}, nil
}

// assetsTable renders rows with the shared table chrome.
func assetsTable(headers []string, rows [][]string) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorWhite)
			}
			return lipgloss.NewStyle().Foreground(colorGray)
		}).
		Render()
}
