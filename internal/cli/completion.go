package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forgeboard/pkg/catalog"
	"github.com/matzehuels/forgeboard/pkg/preset"
	"github.com/matzehuels/forgeboard/pkg/tier"
)

type completionFunc = func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective)

// completeWidgets completes catalog keys not already given on the line.
func completeWidgets(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	used := make(map[string]bool, len(args))
	for _, a := range args {
		used[a] = true
	}
	var out []string
	for _, e := range catalog.Builtin().Entries() {
		if !used[e.Key] && strings.HasPrefix(e.Key, toComplete) {
			out = append(out, e.Key+"\t"+e.Title)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

// completePlaced completes widgets on the current layout.
func completePlaced(c *CLI) completionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if c.loadConfig(cmd, args) != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		ws, err := c.openSession(cmd.Context())
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		defer ws.Close()
		return filterPrefix(ws.Order(), toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// completeSize completes a placed widget, then a tier name.
func completeSize(c *CLI) completionFunc {
	placed := completePlaced(c)
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 0 {
			return placed(cmd, args, toComplete)
		}
		names := []string{"next"}
		for _, t := range tier.All {
			names = append(names, t.String())
		}
		return filterPrefix(names, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// completeLayoutNames completes saved layout and preset names.
func completeLayoutNames(c *CLI) completionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		names := preset.Names()
		if c.loadConfig(cmd, args) == nil {
			if st, err := c.openStore(cmd.Context()); err == nil {
				defer st.Close()
				if entries, err := st.List(cmd.Context(), c.Config.User); err == nil {
					names = names[:0]
					for _, e := range entries {
						names = append(names, e.Name)
					}
				}
			}
		}
		return filterPrefix(names, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

func filterPrefix(values []string, prefix string) []string {
	var out []string
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			out = append(out, v)
		}
	}
	return out
}
