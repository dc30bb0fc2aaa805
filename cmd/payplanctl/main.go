package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/ManuelReschke/PayPlan/internal/pkg/accounts"
	"github.com/ManuelReschke/PayPlan/internal/pkg/cache"
	"github.com/ManuelReschke/PayPlan/internal/pkg/config"
	"github.com/ManuelReschke/PayPlan/internal/pkg/database"
	"github.com/ManuelReschke/PayPlan/internal/pkg/env"
	"github.com/ManuelReschke/PayPlan/internal/pkg/statistics"
)

// accountFlags holds the parsed flags of the account commands.
type accountFlags struct {
	username string
	email    string
	password string
}

func main() {
	root := &cobra.Command{
		Use:          "payplanctl",
		Short:        "Administer PayPlan accounts",
		SilenceUsage: true,
	}

	var flags accountFlags
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Create, inspect and delete accounts",
	}

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Register an account with its token and profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			reg, err := svc.Register(cmd.Context(), flags.username, flags.email, flags.password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "account:     %d\n", reg.Account.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "token:       %s\n", reg.Token.Key)
			fmt.Fprintf(cmd.OutOrStdout(), "survey code: %s\n", reg.Profile.SurveyCode)
			return nil
		},
	}
	cf := createCmd.Flags()
	cf.StringVar(&flags.username, "username", "", "Login name")
	cf.StringVar(&flags.email, "email", "", "Contact email address")
	cf.StringVar(&flags.password, "password", "", "Password (at least 6 characters)")
	_ = createCmd.MarkFlagRequired("username")
	_ = createCmd.MarkFlagRequired("password")

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Print the API token of an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			key, err := svc.Token(cmd.Context(), flags.username)
			if err != nil {
				return notFound(err, flags.username)
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
	tokenCmd.Flags().StringVar(&flags.username, "username", "", "Login name")
	_ = tokenCmd.MarkFlagRequired("username")

	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an account with its profile, plans and payers",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService()
			if err != nil {
				return err
			}
			if err := svc.DeleteAccount(cmd.Context(), flags.username); err != nil {
				return notFound(err, flags.username)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted account %s\n", flags.username)
			return nil
		},
	}
	deleteCmd.Flags().StringVar(&flags.username, "username", "", "Login name")
	_ = deleteCmd.MarkFlagRequired("username")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Print installation-wide record counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := connect(); err != nil {
				return err
			}
			data, err := statistics.GetStatistics(database.GetDB(), time.Now())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "accounts:           %d\n", data.TotalAccounts)
			fmt.Fprintf(out, "plans:              %d\n", data.TotalPlans)
			fmt.Fprintf(out, "payers:             %d\n", data.TotalPayers)
			fmt.Fprintf(out, "transactions today: %d\n", data.TodayTransactions)
			return nil
		},
	}

	accountCmd.AddCommand(createCmd, tokenCmd, deleteCmd)
	root.AddCommand(accountCmd, statsCmd)

	if err := root.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// connect opens the configured database and cache.
func connect() error {
	env.SetupEnvFile()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	database.SetupDatabase(cfg.Database)
	cache.SetupCache(cfg.Cache)
	return nil
}

func newService() (*accounts.Service, error) {
	if err := connect(); err != nil {
		return nil, err
	}
	return accounts.NewService(database.GetDB()), nil
}

func notFound(err error, username string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("no account named %q", username)
	}
	return err
}
