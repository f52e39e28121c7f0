package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"salonhub-backend/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type globalOptions struct {
	databaseURL string
	logLevel    string
}

func rootCommand() *cobra.Command {
	_ = godotenv.Load()

	opts := &globalOptions{}
	cmd := &cobra.Command{
		Use:           "salonctl",
		Short:         "SalonHub operator CLI",
		Long:          "Operator utilities for SalonHub. Commands run without a tenant unless --salon is given.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.PersistentFlags().StringVar(&opts.databaseURL, "database-url", os.Getenv("DB_URL"), "Postgres connection string (env DB_URL)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level")

	cmd.AddCommand(migrateCommand(opts))
	cmd.AddCommand(seedCategoriesCommand(opts))
	cmd.AddCommand(salonsCommand(opts))
	cmd.AddCommand(appointmentsCommand(opts))
	return cmd
}

func (o *globalOptions) open() (*gorm.DB, *zap.Logger, error) {
	if o.databaseURL == "" {
		return nil, nil, errors.New("--database-url or DB_URL is required")
	}
	logger, err := config.NewLogger(o.logLevel, "salonctl")
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	db, err := config.ConnectDB(&config.Config{DatabaseURL: o.databaseURL})
	if err != nil {
		return nil, nil, err
	}
	return db, logger, nil
}

func migrateCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, logger, err := opts.open()
			if err != nil {
				return err
			}
			if err := config.Migrate(db.WithContext(commandContext(cmd)), logger); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

func seedCategoriesCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed-categories",
		Short: "Insert the hair, skin and nails service categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := opts.open()
			if err != nil {
				return err
			}
			created, err := config.SeedCategories(db.WithContext(commandContext(cmd)))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d categories created\n", created)
			return nil
		},
	}
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
