package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arcanis/astar-wasm/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search and step-by-step sessions over HTTP",
		Long: `Serve the HTTP API:

  POST   /v1/search              search a grid sent in the request
  POST   /v1/sessions            open a step-by-step session over a maze or grid
  POST   /v1/sessions/:id/step   expand one node
  GET    /v1/sessions/:id/board  text board with the route once found
  DELETE /v1/sessions/:id        drop a session
  GET    /metrics                Prometheus metrics`,
		Args: cobra.NoArgs,
		PreRun: func(cmd *cobra.Command, _ []string) {
			bindFlags(cmd, map[string]string{
				addrFlagName:     serveAddrKey,
				modeFlagName:     serveModeKey,
				sessionsFlagName: serveSessionsKey,
			})
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			srv := server.New(server.Config{
				Addr:     viper.GetString(serveAddrKey),
				Mode:     viper.GetString(serveModeKey),
				Logger:   slog.Default(),
				Sessions: viper.GetInt(serveSessionsKey),
			})
			return srv.Run()
		},
	}

	cmd.Flags().String(addrFlagName, viper.GetString(serveAddrKey), "listen address")
	cmd.Flags().String(modeFlagName, viper.GetString(serveModeKey), "gin mode: debug, release or test")
	cmd.Flags().Int(sessionsFlagName, viper.GetInt(serveSessionsKey), "live step sessions kept before the oldest is evicted")

	return cmd
}
