// Copyright (c) 2025 Passgate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"passgate/cli/internal/account"
	"passgate/cli/internal/auth"
	"passgate/cli/internal/logging"
)

var loginEmail string

// loginCmd represents the login command for password authentication.
// It prompts for the credentials, exchanges them for a session and stores
// that session so later commands can reuse it.
var loginCmd = &cobra.Command{
	Use:     "login",
	Aliases: []string{"signin"},
	Short:   "Sign in and store the session on this machine",
	Long: `The login command asks for your email and password and exchanges them for a
session with the credential service. The session is stored locally (OS keychain
when available) and reused by other commands until you run 'passgate logout'.

If a usable session is already stored, the login flow is skipped.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		// If a stored session restores cleanly, short-circuit
		if st := a.restore(ctx); st.Authenticated() {
			fmt.Printf("Already logged in as %s\n", st.Session.User.Email)
			return nil
		}

		email := loginEmail
		if email == "" {
			if email, err = promptLine("Email: "); err != nil {
				return err
			}
		}
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}

		stop := startAuthSpinner("Signing in")
		st, err := a.machine.Login(ctx, auth.LoginRequest{Email: email, Password: password})
		stop()
		if err != nil {
			logging.PresentFailure("Login failed", err)
			return errReported
		}

		fmt.Println(randomLoginGreeting(st.Session.User))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email to sign in with (prompted when omitted)")
}

// randomLoginGreeting returns a random greeting phrase with the user's name,
// falling back to the email when the account has none.
func randomLoginGreeting(u account.User) string {
	who := u.Name
	if who == "" {
		who = u.Email
	}
	greetings := []string{
		"🎉 Welcome back, %s!",
		"✨ Great to see you, %s!",
		"🚀 You're all set, %s!",
		"💫 Successfully authenticated as %s",
		"🌟 Welcome aboard, %s!",
		"⚡ Logged in as %s - let's go!",
		"🔓 Access granted! Welcome %s!",
	}
	return fmt.Sprintf(greetings[rand.Intn(len(greetings))], who)
}
