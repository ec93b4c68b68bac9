package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forgeboard/pkg/layout"
	"github.com/matzehuels/forgeboard/pkg/preset"
	"github.com/matzehuels/forgeboard/pkg/session"
	"github.com/matzehuels/forgeboard/pkg/tier"
)

// layoutView is the JSON form of a layout.
type layoutView struct {
	Name  string       `json:"name,omitempty"`
	Order []string     `json:"layout"`
	Tiers layout.Tiers `json:"sizes"`
	Grid  layout.Grid  `json:"grid"`
}

// layoutCommand shows and edits the current layout.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		asJSON  bool
		columns int
	)
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Show or change the current layout",
		Long: `Show the current layout as a packed grid. Subcommands change it; every
change is written back to the settings store.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			// A failed load already fell back to Default; show it anyway.
			if err := ws.Close(); err != nil {
				printWarning("%v", err)
			}
			return showLayout(ws.Dashboard, columns, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().IntVar(&columns, "columns", tier.Columns, "grid width in layout units")

	cmd.AddCommand(c.layoutSetCommand())
	cmd.AddCommand(c.layoutAddCommand())
	cmd.AddCommand(c.layoutRemoveCommand())
	cmd.AddCommand(c.layoutMoveCommand())
	cmd.AddCommand(c.layoutSizeCommand())
	cmd.AddCommand(c.layoutUseCommand())
	cmd.AddCommand(c.layoutResetCommand())
	return cmd
}

func (c *CLI) layoutSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "set <widget>...",
		Short:             "Replace the layout with the given widgets, in order",
		Args:              cobra.ArbitraryArgs,
		ValidArgsFunction: completeWidgets,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), func(d *session.Dashboard) error {
				d.ReplaceAll(args)
				warnSkipped(args, d.Order())
				return nil
			})
		},
	}
}

func (c *CLI) layoutAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "add <widget>...",
		Short:             "Append widgets to the layout",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeWidgets,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), func(d *session.Dashboard) error {
				for _, key := range args {
					if !d.Add(key) {
						printWarning("Skipped %s (unknown or already placed)", key)
					}
				}
				return nil
			})
		},
	}
}

func (c *CLI) layoutRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "remove <widget>...",
		Aliases:           []string{"rm"},
		Short:             "Remove widgets from the layout",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completePlaced(c),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), func(d *session.Dashboard) error {
				for _, key := range args {
					if !d.Remove(key) {
						printWarning("Skipped %s (not on the dashboard)", key)
					}
				}
				return nil
			})
		},
	}
}

func (c *CLI) layoutMoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move <widget> <index>",
		Short: "Move a widget to a zero-based position",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("index %q: %w", args[1], err)
			}
			return c.edit(cmd.Context(), func(d *session.Dashboard) error {
				if !d.Move(args[0], index) {
					printWarning("%s did not move", args[0])
				}
				return nil
			})
		},
	}
}

func (c *CLI) layoutSizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "size <widget> [xs|small|medium|large|xlarge|next]",
		Short: "Set or cycle the size tier of a widget",
		Long: `Set the size tier of a widget. Without a tier, or with "next", the widget
advances one step through the cycle xs → small → medium → large → xlarge → xs.`,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: completeSize(c),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			return c.edit(cmd.Context(), func(d *session.Dashboard) error {
				if len(args) == 1 || args[1] == "next" {
					t, ok := d.Cycle(key)
					if !ok {
						return fmt.Errorf("%s is not on the dashboard", key)
					}
					printSuccess("%s is now %s", key, StyleHighlight.Render(t.String()))
					return nil
				}
				t, err := tier.Parse(args[1])
				if err != nil {
					return err
				}
				if !d.SetTier(key, t) {
					return fmt.Errorf("%s is not on the dashboard", key)
				}
				printSuccess("%s is now %s", key, StyleHighlight.Render(t.String()))
				return nil
			})
		},
	}
}

func (c *CLI) layoutUseCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "use <name>",
		Short:             "Make a saved layout or preset the current layout",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeLayoutNames(c),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), func(d *session.Dashboard) error {
				return d.LoadSaved(cmd.Context(), args[0])
			})
		},
	}
}

func (c *CLI) layoutResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the current layout to the Default preset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.edit(cmd.Context(), func(d *session.Dashboard) error {
				return d.LoadPreset(preset.DefaultName)
			})
		},
	}
}

// edit runs fn in edit mode and persists the result.
func (c *CLI) edit(ctx context.Context, fn func(*session.Dashboard) error) error {
	prog := newProgress(ctx)
	ws, err := c.openSession(ctx)
	if err != nil {
		return err
	}
	// Editing on top of the fallback would overwrite the stored layout.
	if err := ws.loadErr(); err != nil {
		_ = ws.Close()
		return err
	}
	ws.BeginEdit()
	if err := fn(ws.Dashboard); err != nil {
		_ = ws.Close()
		return err
	}
	ws.EndEdit(ctx)
	if err := ws.Close(); err != nil {
		return err
	}
	prog.done("Saved layout", "user", ws.User(), "widgets", len(ws.Order()))
	printSuccess("Layout has %d widgets", len(ws.Order()))
	return nil
}

func showLayout(d *session.Dashboard, columns int, asJSON bool) error {
	grid := d.Grid(columns)
	if asJSON {
		return printJSON(layoutView{
			Name:  d.Name(),
			Order: d.Order(),
			Tiers: d.Tiers().Resolve(d.Catalog(), d.Order()),
			Grid:  grid,
		})
	}
	printKeyValue("User", d.User())
	printKeyValue("Widgets", strconv.Itoa(len(grid.Placements)))
	printKeyValue("Grid", fmt.Sprintf("%d × %d", grid.Columns, grid.Rows))
	printNewline()
	fmt.Fprintln(stdout, gridView{catalog: d.Catalog(), grid: grid}.Render())
	return nil
}

// warnSkipped reports requested keys that did not make it into order.
func warnSkipped(requested, order []string) {
	placed := make(map[string]bool, len(order))
	for _, k := range order {
		placed[k] = true
	}
	for _, k := range requested {
		if !placed[k] {
			printWarning("Skipped unknown widget %s", k)
		}
	}
}
