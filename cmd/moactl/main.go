package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"moa/internal/bootstrap"
	"moa/internal/infra"
)

var (
	// Version is set via ldflags during build.
	Version = "dev"
)

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "moactl",
	Short: "Operate the moa birthday pool engine",
	Long: `moactl runs single scheduler steps and maintenance tasks against the
configured store. It reads the same environment as the api and worker
processes and delivers notifications inline.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(tickCmd)
	rootCmd.AddCommand(openEventsCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(purgeTokensCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(cancelCmd)
	rootCmd.AddCommand(tokenCmd)
}

// withEngine loads configuration, opens an inline engine and passes it to fn.
func withEngine(cmd *cobra.Command, fn func(ctx context.Context, e *bootstrap.Engine) error) error {
	cfg, err := infra.LoadConfig()
	if err != nil {
		return err
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := bootstrap.Open(ctx, cfg, logger, bootstrap.DispatchInline)
	if err != nil {
		return err
	}
	defer engine.Close()
	return fn(ctx, engine)
}
