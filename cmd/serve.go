package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/autohire/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the recruitment HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		a, err := newApplication(ctx)
		if err != nil {
			return err
		}
		defer a.logger.Sync() //nolint:errcheck

		a.logger.Info("starting autohire", zap.String("version", version), zap.Bool("ai_available", a.analyzer.Available()))

		srv := server.New(a.recruiter, a.config.Server,
			server.WithLogger(a.logger.Named("http")),
			server.WithAIStatus(a.analyzer.Available),
		)
		if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringP("address", "a", server.DefaultAddress, "listen address")
	viper.BindPFlag("server.address", serveCmd.Flags().Lookup("address"))

	rootCmd.AddCommand(serveCmd)
}

