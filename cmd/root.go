// Copyright (c) 2025 Passgate
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for the Passgate CLI.
// It implements subcommands for signing in, registering, inspecting and
// clearing the stored session using the Cobra CLI framework, all driving
// the authentication state machine in internal/auth.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"passgate/cli/internal/auth"
	"passgate/cli/internal/backend"
	"passgate/cli/internal/config"
	"passgate/cli/internal/discovery"
	"passgate/cli/internal/logging"
	"passgate/cli/internal/store"
)

var (
	showVersion bool
)

// errReported signals a failure the command has already presented to the
// user; Execute only sets the exit code for it.
var errReported = errors.New("command failed")

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "passgate",
	Short:         "Passgate CLI for managing your account session",
	Long:          `Passgate is a command-line tool that signs you in to your account and keeps the resulting session available on this machine.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			status := "reachable"
			if a, err := newApp(cmd.Context()); err != nil {
				status = "unknown"
			} else if err := a.svc.Health(cmd.Context()); err != nil {
				status = "unreachable"
			}
			fmt.Printf("passgate %s\nservice %s\n", Version, status)
			return nil
		}
		// If no flag is set, show help
		return cmd.Help()
	},
}

// Execute runs the CLI application.
// It executes the root command and handles any errors that occur during execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, logging.PresentError("error", err))
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI version and service reachability")
}

// app bundles what a command needs: loaded configuration, logger, session
// store, credential service and the state machine wired on top of them.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	store   store.Store
	svc     backend.CredentialService
	machine *auth.Machine
}

// newApp loads configuration and assembles the state machine. Every command
// builds its own app; nothing is shared between invocations.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logging.New(os.Stderr, cfg.SlogLevel(), cfg.LogFormat)
	if err := discovery.Resolve(ctx, cfg); err != nil {
		log.Debug("endpoint discovery failed, using configured endpoints", "error", err)
	}
	st, err := store.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	svc := backend.New(cfg)
	machine := auth.New(svc, st,
		auth.WithLogger(log),
		auth.WithMinPasswordLen(cfg.MinPasswordLen),
	)
	return &app{cfg: cfg, log: log, store: st, svc: svc, machine: machine}, nil
}

// restore brings the machine out of Unknown so the command sees settled
// state. Restore fails open, so the returned state is always usable.
func (a *app) restore(ctx context.Context) auth.State {
	st, err := a.machine.Restore(ctx)
	if err != nil {
		a.log.Warn("session restore did not complete", "error", err)
	}
	return st
}
