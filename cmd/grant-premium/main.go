package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/boldenardo/astrotarot-hub-sub001/internal/config"
	"github.com/boldenardo/astrotarot-hub-sub001/internal/database"
	"github.com/boldenardo/astrotarot-hub-sub001/internal/models"
	"github.com/boldenardo/astrotarot-hub-sub001/internal/services"
	"github.com/spf13/cobra"
)

// subscriptionSetter is satisfied by services.UserService.
type subscriptionSetter interface {
	SetSubscription(ctx context.Context, email, plan, status string) error
}

var validPlans = map[string]bool{
	models.PlanFree:           true,
	models.PlanSingleReading:  true,
	models.PlanPremiumMonthly: true,
}

var validStatuses = map[string]bool{
	models.SubscriptionActive:   true,
	models.SubscriptionCanceled: true,
}

func newRootCmd(connect func(ctx context.Context) (subscriptionSetter, func(), error), out io.Writer) *cobra.Command {
	var plan, status string

	cmd := &cobra.Command{
		Use:          "grant-premium EMAIL",
		Short:        "Set the subscription plan of an account",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validPlans[plan] {
				return fmt.Errorf("unknown plan %q", plan)
			}
			if !validStatuses[status] {
				return fmt.Errorf("unknown status %q", status)
			}

			ctx := cmd.Context()
			users, closeFn, err := connect(ctx)
			if err != nil {
				return err
			}
			defer closeFn()

			email := args[0]
			if err := users.SetSubscription(ctx, email, plan, status); err != nil {
				if errors.Is(err, services.ErrUserNotFound) {
					return fmt.Errorf("no user found with email: %s", email)
				}
				return fmt.Errorf("failed to update user: %w", err)
			}

			_, _ = fmt.Fprintf(out, "%s is now on plan %s (%s)\n", email, plan, status)
			return nil
		},
	}
	cmd.Flags().StringVarP(&plan, "plan", "p", models.PlanPremiumMonthly, "subscription plan (FREE, SINGLE_READING, PREMIUM_MONTHLY)")
	cmd.Flags().StringVarP(&status, "status", "s", models.SubscriptionActive, "subscription status (active, canceled)")
	return cmd
}

func connectUsers(ctx context.Context) (subscriptionSetter, func(), error) {
	url, err := config.LoadDatabaseURL()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.New(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return services.NewUserService(db), db.Close, nil
}

func main() {
	if err := newRootCmd(connectUsers, os.Stdout).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
