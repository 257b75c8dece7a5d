// Copyright (c) 2025 Passgate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"passgate/cli/internal/auth"
	"passgate/cli/internal/logging"
)

// registerCmd creates a new account and signs in with it in one step.
var registerCmd = &cobra.Command{
	Use:     "register",
	Aliases: []string{"signup"},
	Short:   "Create an account and sign in",
	Long: `The register command creates a new account with the credential service and
signs in with it. You will be asked for a display name, an email and a
password; the password must meet the minimum length policy (8 characters
unless configured otherwise).`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		if st := a.restore(ctx); st.Authenticated() {
			fmt.Printf("Already logged in as %s\n", st.Session.User.Email)
			fmt.Println("   Run 'passgate logout' first to create a different account.")
			return nil
		}

		name, err := promptLine("Name: ")
		if err != nil {
			return err
		}
		email, err := promptLine("Email: ")
		if err != nil {
			return err
		}
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			fmt.Println("❌ The passwords do not match. Nothing was sent.")
			return errReported
		}

		stop := startAuthSpinner("Creating your account")
		st, err := a.machine.Register(ctx, auth.RegisterRequest{Name: name, Email: email, Password: password})
		stop()
		if err != nil {
			logging.PresentFailure("Registration failed", err)
			return errReported
		}

		fmt.Println(randomLoginGreeting(st.Session.User))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
}
