package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forgeboard/pkg/buildinfo"
	"github.com/matzehuels/forgeboard/pkg/catalog"
	"github.com/matzehuels/forgeboard/pkg/preset"
	"github.com/matzehuels/forgeboard/pkg/tier"
)

// catalogCommand lists the widget catalog.
func (c *CLI) catalogCommand() *cobra.Command {
	var (
		asJSON  bool
		details bool
	)
	cmd := &cobra.Command{
		Use:   "catalog [query]",
		Short: "List the widgets that can be placed on a dashboard",
		Long: `List the widget catalog. A query filters by key, title or description.
With --details every widget is printed with its behavior at each size tier.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.Builtin()
			entries := cat.Entries()
			if len(args) == 1 {
				entries = cat.Search(args[0])
			}
			if asJSON {
				return printJSON(entries)
			}
			if len(entries) == 0 {
				printInfo("No widgets match %q", args[0])
				return nil
			}
			if details {
				for _, e := range entries {
					printEntry(e)
				}
				return nil
			}
			rows := make([][]string, len(entries))
			for i, e := range entries {
				rows[i] = []string{e.Key, e.Title, e.DefaultTier.String(), e.Description}
			}
			printTable([]string{"Key", "Title", "Default", "Description"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&details, "details", false, "describe every size tier")
	return cmd
}

func printEntry(e catalog.Entry) {
	fmt.Fprintln(stdout, StyleTitle.Render(e.Title)+" "+StyleDim.Render(e.Key))
	printDetail("%s", e.Description)
	for _, t := range tier.All {
		marker := " "
		if t == e.DefaultTier {
			marker = "*"
		}
		if desc := e.Describe(t); desc != "" {
			fmt.Fprintf(stdout, "  %s %-7s %s\n", StyleHighlight.Render(marker), t, desc)
		}
	}
	printNewline()
}

// presetsCommand lists the built-in presets.
func (c *CLI) presetsCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List the built-in layouts",
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := preset.All()
			if asJSON {
				return printJSON(presets)
			}
			rows := make([][]string, len(presets))
			for i, p := range presets {
				rows[i] = []string{p.Name, fmt.Sprint(len(p.Order)), strings.Join(p.Order[:min(4, len(p.Order))], ", ") + ", …"}
			}
			printTable([]string{"Preset", "Widgets", "Starts with"}, rows)
			printNextStep("Use one", "forgeboard layout use \"Decks Focused\"")
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

// versionCommand prints build information.
func (c *CLI) versionCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if asJSON {
				return printJSON(buildinfo.Get())
			}
			fmt.Fprintln(stdout, buildinfo.String())
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
