package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/forgeboard/internal/api"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout store as a JSON API. The server runs until interrupted and
then shuts down gracefully.

Endpoints:
  GET    /healthz
  GET    /api/v1/catalog
  GET    /api/v1/presets
  POST   /api/v1/snap
  GET    /api/v1/users/{user}/layout
  PUT    /api/v1/users/{user}/layout
  GET    /api/v1/users/{user}/layouts
  GET    /api/v1/users/{user}/layouts/{name}
  PUT    /api/v1/users/{user}/layouts/{name}[?overwrite=true]
  DELETE /api/v1/users/{user}/layouts/{name}
  GET    /api/v1/users/{user}/layouts/{name}/share
  POST   /api/v1/users/{user}/import`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Server.Addr
			}
			st, err := c.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			c.Logger.Info("serving layouts", "backend", c.Config.Store.Backend)
			srv := api.New(st, api.WithLogger(c.Logger))
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, \":8080\")")
	return cmd
}
