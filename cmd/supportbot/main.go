package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"supportbot/internal/app"
	"supportbot/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "supportbot",
		Short:         "Customer-support chat client and its development backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("log-level", "", "log level: DEBUG, INFO, WARN or ERROR")

	root.AddCommand(newChatCmd(), newServeCmd())
	return root
}

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive support chat in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cmd.Flags())
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return app.RunChat(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().String("backend-url", "", "base URL of the support backend")
	cmd.Flags().Duration("request-timeout", 0, "per-request timeout (0 disables it)")
	cmd.Flags().Int("history-limit", 0, "number of conversations kept in the history feed")
	cmd.Flags().Duration("refresh-debounce", 0, "coalesce analytics/history refreshes within this window")
	cmd.Flags().Bool("serialize-sends", false, "reject a message while another is in flight")
	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the development backend API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cmd.Flags())
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return app.RunServe(cmd.Context(), cfg)
		},
	}
	cmd.Flags().Int("server-port", 0, "port to listen on")
	cmd.Flags().String("database-path", "", "SQLite database file")
	cmd.Flags().String("ollama-url", "", "Ollama base URL; empty disables the ollama provider")
	cmd.Flags().String("ollama-model", "", "model used by the ollama provider")
	return cmd
}
