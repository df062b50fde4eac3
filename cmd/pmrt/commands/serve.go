package commands

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/pmrt/internal/logger"
	"github.com/jmylchreest/pmrt/internal/server"
	"github.com/jmylchreest/pmrt/pkg/pmrt"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the converter over HTTP",
	Long: `Start an HTTP server that converts posted HTML.

Endpoints:
  POST /v1/convert   body is HTML; ?to=markdown, ?format=json
  GET  /healthz
  GET  /version

Example:
  pmrt serve --addr :8080
  curl --data-binary @message.html localhost:8080/v1/convert`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "listen address")
	serveCmd.Flags().Int64("max-body", server.DefaultMaxBodyBytes, "maximum request body size in bytes")
	serveCmd.Flags().Duration("shutdown-timeout", 10*time.Second, "grace period for in-flight requests")
	addConfigFlags(serveCmd)

	_ = viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(cmd *cobra.Command, args []string) error {
	initLogger()

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	maxBody, _ := cmd.Flags().GetInt64("max-body")
	shutdownTimeout, _ := cmd.Flags().GetDuration("shutdown-timeout")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	addr := viper.GetString("addr")
	logInfo(cmd, "Serving on %s", addr)

	srv := server.New(pmrt.New(cfg), logger.With("component", "server"), server.Options{
		Addr:            addr,
		MaxBodyBytes:    maxBody,
		ShutdownTimeout: shutdownTimeout,
	})
	return srv.Run(ctx)
}
