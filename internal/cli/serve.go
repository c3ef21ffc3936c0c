package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/ppiankov/mirror/internal/server"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the analysis API over HTTP",
	Long: `Serve exposes entry analysis over HTTP:
  POST /api/analyze   {"entryText": "...", "userId": "..."}
  POST /api/summary   {"entries": [{"entryText": "...", "timestamp": "..."}]}
  GET  /health

Requests are rate limited per client. The server shuts down gracefully on
SIGINT or SIGTERM.

Example:
  mirror serve
  mirror serve --addr 127.0.0.1:9090
  MIRROR_RATE_LIMITING_ENABLED=false mirror serve`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "listen address")
	_ = viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, analyzer, err := setup(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(analyzer, cfg, logger).ListenAndServe(ctx)
}
