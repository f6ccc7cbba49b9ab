// FILE: lixenwraith/petmaster/cmd/petmaster/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lixenwraith/petmaster"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "petmaster",
		Short:        "PetMaster configuration lifecycle manager",
		Long:         "Loads, backs up and migrates the PetMaster settings and language documents, and reports whether the plugin can run.",
		SilenceUsage: true,
	}
	fv := registerFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "check",
			Short: "Run the initial lifecycle once and print the report",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withManager(cmd, fv, func(ctx context.Context, m *petmaster.Manager, _ options, _ *zap.Logger) error {
					fmt.Fprint(cmd.OutOrStdout(), m.Debug())
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "dump",
			Short: "Print the effective settings as TOML",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withManager(cmd, fv, func(ctx context.Context, m *petmaster.Manager, _ options, _ *zap.Logger) error {
					return m.Settings().Dump(cmd.OutOrStdout())
				})
			},
		},
		&cobra.Command{
			Use:   "run",
			Short: "Start, watch the documents and accept petm commands on stdin",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withManager(cmd, fv, serve)
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

type session func(ctx context.Context, m *petmaster.Manager, opts options, logger *zap.Logger) error

// withManager resolves options, builds the Manager, runs the initial lifecycle and hands over to fn.
// A fatal lifecycle error is returned so the process exits non-zero.
func withManager(cmd *cobra.Command, fv *flagValues, fn session) error {
	opts, err := loadOptions(cmd.Flags(), fv)
	if err != nil {
		return err
	}

	logger, err := newLogger(opts.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host := newConsoleHost(stop, logger)
	m, err := petmaster.NewBuilder().
		WithDataDir(opts.DataDir).
		WithSettingsFile(opts.SettingsFile).
		WithRegistry(petmaster.StaticRegistry{Plugins: opts.Plugins, Services: opts.Services}).
		WithHost(host).
		WithLogger(logger).
		WithValidator(petmaster.ValidatePrices).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build manager: %w", err)
	}

	rep, err := m.Start(ctx)
	if err != nil {
		return err
	}
	logger.Info("Lifecycle finished",
		zap.String("state", rep.State.String()),
		zap.String("data_dir", opts.DataDir),
		zap.Duration("took", rep.Duration))

	return fn(ctx, m, opts, logger)
}
