package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"moa/internal/bootstrap"
)

var tickCmd = &cobra.Command{
	Use:   "tick",
	Short: "Run one full scheduler pass",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, func(ctx context.Context, e *bootstrap.Engine) error {
			report, err := e.Service.Tick(ctx)
			fmt.Fprintf(cmd.OutOrStdout(), "closed=%d opened=%d skipped=%d failed=%d purged=%d\n",
				report.Closed, report.Open.Opened, report.Open.Skipped, report.Open.Failed, report.PurgedTokens)
			return err
		})
	},
}

var openEventsCmd = &cobra.Command{
	Use:   "open-events",
	Short: "Open events for birthdays inside the lookahead window",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, func(ctx context.Context, e *bootstrap.Engine) error {
			report, err := e.Service.OpenEventsForUpcomingBirthdays(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "scanned=%d opened=%d skipped=%d failed=%d\n",
				report.Scanned, report.Opened, report.Skipped, report.Failed)
			return nil
		})
	},
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Close active events whose deadline has passed",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, func(ctx context.Context, e *bootstrap.Engine) error {
			closed, err := e.Service.CloseExpired(ctx)
			if err != nil {
				return err
			}
			for _, ev := range closed {
				fmt.Fprintf(cmd.OutOrStdout(), "closed %s (owner %s)\n", ev.ID, ev.OwnerID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "closed=%d\n", len(closed))
			return nil
		})
	},
}

var purgeTokensCmd = &cobra.Command{
	Use:   "purge-tokens",
	Short: "Delete expired and revoked share tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, func(ctx context.Context, e *bootstrap.Engine) error {
			n, err := e.Service.PurgeShareTokens(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "purged=%d\n", n)
			return nil
		})
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete <event-id>",
	Short: "Force-complete an active event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, func(ctx context.Context, e *bootstrap.Engine) error {
			ev, err := e.Service.ForceComplete(ctx, args[0])
			if err != nil {
				return err
			}
			if ev == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "event %s is not active, nothing to do\n", args[0])
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "completed %s pooled=%d\n", ev.ID, ev.PooledAmount)
			return nil
		})
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel <event-id>",
	Short: "Cancel an active event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEngine(cmd, func(ctx context.Context, e *bootstrap.Engine) error {
			ev, err := e.Service.Cancel(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cancelled %s\n", ev.ID)
			return nil
		})
	},
}
