package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forgeboard/pkg/errors"
	"github.com/matzehuels/forgeboard/pkg/tier"
)

// savedCommand manages named layouts.
func (c *CLI) savedCommand() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "saved",
		Aliases: []string{"layouts"},
		Short:   "List and manage saved layouts",
		Long: `List every layout that can be loaded: the built-in presets, followed by the
user's saved layouts. A saved layout with a preset's name overrides that preset.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()
			entries, err := st.List(cmd.Context(), c.Config.User)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(entries)
			}
			rows := make([][]string, len(entries))
			for i, e := range entries {
				rows[i] = []string{e.Name, string(e.Namespace), fmt.Sprint(e.Widgets)}
			}
			printTable([]string{"Name", "Kind", "Widgets"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	cmd.AddCommand(c.savedSaveCommand())
	cmd.AddCommand(c.savedShowCommand())
	cmd.AddCommand(c.savedDeleteCommand())
	return cmd
}

func (c *CLI) savedSaveCommand() *cobra.Command {
	var overwrite bool
	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the current layout under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			if err := ws.loadErr(); err != nil {
				_ = ws.Close()
				return err
			}
			err = confirmOverwrite(cmd, args[0], overwrite, func(ow bool) error {
				return ws.SaveAs(cmd.Context(), args[0], ow)
			})
			if cerr := ws.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			printSuccess("Saved %s", StyleHighlight.Render(args[0]))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "f", false, "replace an existing layout without asking")
	return cmd
}

func (c *CLI) savedShowCommand() *cobra.Command {
	var (
		asJSON  bool
		columns int
	)
	cmd := &cobra.Command{
		Use:               "show <name>",
		Short:             "Show a saved layout or preset",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeLayoutNames(c),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			err = ws.LoadSaved(cmd.Context(), args[0])
			if cerr := ws.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			return showLayout(ws.Dashboard, columns, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().IntVar(&columns, "columns", tier.Columns, "grid width in layout units")
	return cmd
}

func (c *CLI) savedDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:               "delete <name>",
		Aliases:           []string{"rm"},
		Short:             "Delete a saved layout",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeLayoutNames(c),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			err = ws.Delete(cmd.Context(), args[0])
			if cerr := ws.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}

// shareCommand prints a share token.
func (c *CLI) shareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "share [name]",
		Short: "Print a share token for a layout",
		Long: `Print a share token for the named saved layout or preset, or for the current
layout when no name is given. The token can be imported elsewhere with
"forgeboard import".`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeLayoutNames(c),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				st, err := c.openStore(cmd.Context())
				if err != nil {
					return err
				}
				defer st.Close()
				token, err := st.Share(cmd.Context(), c.Config.User, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(stdout, token)
				return nil
			}
			ws, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			token, err := ws.Share()
			if cerr := ws.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, token)
			return nil
		},
	}
}

// importCommand saves a layout from a share token.
func (c *CLI) importCommand() *cobra.Command {
	var (
		overwrite bool
		use       bool
	)
	cmd := &cobra.Command{
		Use:   "import <name> <token>",
		Short: "Save a layout from a share token",
		Long: `Decode a share token and save it under name. Widgets the catalog does not
know are dropped. With --use the imported layout also becomes the current one.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, token := args[0], args[1]
			ws, err := c.openSession(cmd.Context())
			if err != nil {
				return err
			}
			var dropped []string
			err = confirmOverwrite(cmd, name, overwrite, func(ow bool) error {
				var err error
				dropped, err = ws.Import(cmd.Context(), name, token, ow)
				return err
			})
			if err == nil && use {
				ws.PersistCurrent(cmd.Context())
			}
			if cerr := ws.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			for _, key := range dropped {
				printWarning("Dropped unknown widget %s", key)
			}
			printSuccess("Imported %s with %d widgets", StyleHighlight.Render(name), len(ws.Order()))
			if !use {
				printNextStep("Make it current", fmt.Sprintf("forgeboard layout use %q", name))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&overwrite, "overwrite", "f", false, "replace an existing layout without asking")
	cmd.Flags().BoolVar(&use, "use", false, "make the imported layout the current one")
	return cmd
}

// confirmOverwrite runs save without overwrite and, when the name is taken,
// asks on stdin before retrying with overwrite.
func confirmOverwrite(cmd *cobra.Command, name string, overwrite bool, save func(overwrite bool) error) error {
	err := save(overwrite)
	if !errors.Is(err, errors.ErrCodeDuplicateName) {
		return err
	}
	if !ask(cmd.InOrStdin(), fmt.Sprintf("A layout named %q exists. Overwrite? [y/N] ", name)) {
		return err
	}
	return save(true)
}

func ask(in io.Reader, prompt string) bool {
	fmt.Fprint(stdout, StyleWarning.Render(prompt))
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
