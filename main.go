package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/libraryhub/library/internal/config"
	"github.com/libraryhub/library/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var envFile string

	loadConfig := func() (*config.Config, error) {
		if err := config.LoadEnvFile(envFile); err != nil {
			return nil, err
		}
		return config.NewConfig(), nil
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default if no command given)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			entrypoint.Run(cfg, Version)
			return nil
		},
	}

	root := &cobra.Command{
		Use:           "library",
		Short:         "Library Management System API",
		Version:       fmt.Sprintf("%s (%s)", Version, Commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          serve.RunE,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "dotenv file loaded before reading the environment")

	seed := &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample books and members into empty tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := entrypoint.Seed(cfg); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			log.Printf("Sample data ready")
			return nil
		},
	}

	check := &cobra.Command{
		Use:   "check",
		Short: "Verify that book availability matches open borrowings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ok, err := entrypoint.Check(context.Background(), cfg, cmd.OutOrStdout())
			if err != nil {
				return fmt.Errorf("check: %w", err)
			}
			if !ok {
				return fmt.Errorf("inconsistent availability found")
			}
			return nil
		},
	}

	root.AddCommand(serve, seed, check)
	return root
}
