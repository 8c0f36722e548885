package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"imagewall/catalog"
	"imagewall/wall"
)

func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print the layout and grid geometry for a catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.settings(cmd)
			if err != nil {
				return err
			}
			descs, err := catalog.Load(cfg.Catalog)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, styleTitle.Render(fmt.Sprintf("%s (%d images)", cfg.Catalog.Path, len(descs))))
			fmt.Fprintln(out, geometryTable(cfg.Wall, len(descs)))
			return nil
		},
	}
}

// geometryTable renders the layout profile and grid geometry for n tiles
func geometryTable(cfg wall.Config, n int) string {
	viewport := wall.Vec2{X: float64(cfg.ScreenWidth), Y: float64(cfg.ScreenHeight)}
	dims := wall.ResolveLayout(viewport.X)
	g := wall.NewGeometry(n, dims)
	avail := g.AvailableScrollSpace(viewport)
	offset := g.ContainerOffset(viewport)

	rows := [][]string{
		{"viewport", fmt.Sprintf("%d x %d", cfg.ScreenWidth, cfg.ScreenHeight)},
		{"margin", fmt.Sprintf("%.0f", dims.Margin)},
		{"tile", fmt.Sprintf("%.1f x %.1f", dims.TileWidth, dims.TileHeight)},
		{"grid", fmt.Sprintf("%d rows x %d cols", g.Rows, g.Cols)},
		{"wrap period", fmt.Sprintf("%.1f x %.1f", g.WrapPeriod.X, g.WrapPeriod.Y)},
		{"scroll space", fmt.Sprintf("%.1f x %.1f", avail.X, avail.Y)},
		{"container offset", fmt.Sprintf("%.1f, %.1f", offset.X, offset.Y)},
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Property", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return styleCell
		}).
		String()
}
