package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"moa/internal/db"
	"moa/internal/infra"
	"moa/internal/middleware"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := infra.LoadConfig()
		if err != nil {
			return err
		}
		if cfg.IsMemoryStore() {
			return fmt.Errorf("migrate requires STORE_DRIVER=postgres")
		}
		logger := infra.NewLogger(cfg.AppEnv)

		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer conn.Close()

		applied, err := db.Migrate(cmd.Context(), conn, logger)
		if err != nil {
			return err
		}
		if len(applied) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		}
		for _, name := range applied {
			fmt.Fprintf(cmd.OutOrStdout(), "applied %s\n", name)
		}
		return nil
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Sign an access token for local testing",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		role, _ := cmd.Flags().GetString("role")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		cfg, err := infra.LoadConfig()
		if err != nil {
			return err
		}
		token, err := middleware.SignJWT(cfg.JWTSecret, subject, role, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("subject", "", "User ID placed in the sub claim")
	tokenCmd.Flags().String("role", "", "Optional role, e.g. admin")
	tokenCmd.Flags().Duration("ttl", time.Hour, "Token lifetime")
	tokenCmd.MarkFlagRequired("subject")
}
