package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/densikit/densikit/pkg/assets"
	"github.com/densikit/densikit/pkg/constraint"
	"github.com/densikit/densikit/pkg/scale"
)

// factorStep is the preview adjustment granularity.
const factorStep = 0.25

// defaultSamples are the constraints shown when none are given.
var defaultSamples = []string{
	"gap 10, insets 5 5 5 5",
	"w 100!, h 40:60:80",
	"[200][grow, fill][100]",
	"gapx 8 16, wrap",
}

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		manifestPath string
		factorFlag   string
	)

	cmd := &cobra.Command{
		Use:   "preview [constraint...]",
		Short: "Interactively preview constraints and assets across factors",
		Long: `Preview opens an interactive view where keys adjust the scale factor
live. Constraint strings are shown transformed for the current factor,
and with --manifest the selected variant of every asset is shown too.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			factor, err := c.transformFactor(factorFlag, false)
			if err != nil {
				return err
			}

			samples := args
			if len(samples) == 0 {
				samples = defaultSamples
			}

			m := newPreviewModel(factor, samples)
			if manifestPath != "" {
				manifest, err := assets.LoadManifest(manifestPath)
				if err != nil {
					return err
				}
				if err := m.attachManifest(manifest); err != nil {
					return err
				}
			}
			defer m.close()

			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "asset manifest (TOML)")
	cmd.Flags().StringVarP(&factorFlag, "factor", "f", "", "starting scale factor")

	return cmd
}

// =============================================================================
// previewModel - Interactive factor playground
// =============================================================================

// previewModel is the bubbletea model behind the preview command. The
// factor lives in a scale.State so adjustments go through the same
// clamping and notification path the library users get.
type previewModel struct {
	state     *scale.State
	samples   []string
	selectors []*assets.Selector[string]
}

func newPreviewModel(factor float64, samples []string) *previewModel {
	return &previewModel{
		state:   scale.NewWithOptions(scale.Options{Initial: factor}),
		samples: samples,
	}
}

// attachManifest builds a selector per manifest asset.
func (m *previewModel) attachManifest(manifest *assets.Manifest) error {
	for _, id := range manifest.IDs() {
		sel, err := manifest.Selector(id, m.state)
		if err != nil {
			return err
		}
		m.selectors = append(m.selectors, sel)
	}
	return nil
}

// close releases the selectors' subscriptions.
func (m *previewModel) close() {
	for _, sel := range m.selectors {
		sel.Close()
	}
}

func (m *previewModel) Init() tea.Cmd {
	return nil
}

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "+", "=", "up", "k":
			m.state.Update(m.state.Get() + factorStep)
		case "-", "_", "down", "j":
			m.state.Update(m.state.Get() - factorStep)
		case "0":
			m.state.Update(1.0)
		case "1", "2", "3":
			m.state.Update(float64(msg.String()[0] - '0'))
		}
	}
	return m, nil
}

func (m *previewModel) View() string {
	factor := m.state.Get()

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Density Preview"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("+/- adjust  0-3 set  q quit"))
	b.WriteString("\n\n")

	b.WriteString(StyleHighlight.Render(fmt.Sprintf("Factor %s (%s)", formatFactor(factor), formatPercent(factor))))
	b.WriteString("\n\n")

	rows := make([][]string, len(m.samples))
	for i, s := range m.samples {
		rows[i] = []string{s, constraint.Transform(s, factor)}
	}
	b.WriteString(assetsTable([]string{"Constraint", "Transformed"}, rows))
	b.WriteString("\n")

	if len(m.selectors) > 0 {
		rows = rows[:0]
		for _, sel := range m.selectors {
			v, r, ok := sel.Select()
			variant := "—"
			if ok {
				variant = formatFactor(v.Factor) + "x"
			}
			rows = append(rows, []string{
				sel.ID(),
				variant,
				fmt.Sprintf("%dx%d", r.W, r.H),
			})
		}
		b.WriteString("\n")
		b.WriteString(assetsTable([]string{"Asset", "Variant", "Rendered"}, rows))
		b.WriteString("\n")
	}

	return b.String()
}
