// Copyright (c) 2025 Passgate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// logoutCmd represents the logout command for clearing authentication state.
// It removes the stored session from the local system and tells the
// credential service to invalidate the token (best-effort remote logout).
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored session from this machine",
	Long: `The logout command removes the session stored on this machine and attempts
to notify the credential service so the token is invalidated (best-effort).

Local state is removed even when the service cannot be reached or the stored
session cannot be cleared cleanly; after logout you are always signed out.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		a.restore(ctx)
		a.machine.Logout(ctx)

		fmt.Println("✅ Signed out; the stored session has been removed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
