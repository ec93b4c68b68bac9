package cli

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// editCommand opens the interactive editor on the current layout.
func (c *CLI) editCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Edit the current layout interactively",
		Long: `Open a full-screen editor on the current layout. Widgets can be selected,
moved, resized and removed with the keyboard, or dragged and resized with the
mouse. Every change is written back when the editor closes; named saves happen
immediately.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ws, err := c.openSession(ctx)
			if err != nil {
				return err
			}
			if err := ws.loadErr(); err != nil {
				_ = ws.Close()
				return err
			}

			notices := make(chan noticeMsg, 16)
			ws.notes.watch(notices)

			// Log lines would tear the alternate screen.
			c.Logger.SetOutput(io.Discard)
			ws.BeginEdit()
			p := tea.NewProgram(NewEditorModel(ctx, ws.Dashboard, notices),
				tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseCellMotion())
			_, runErr := p.Run()
			c.Logger.SetOutput(c.logOut)

			// Keep the edits even when the editor was interrupted.
			ws.EndEdit(context.WithoutCancel(ctx))
			if err := ws.Close(); err != nil {
				return err
			}
			if runErr != nil && ctx.Err() == nil {
				return runErr
			}
			printSuccess("Layout has %d widgets", len(ws.Order()))
			return nil
		},
	}
}
