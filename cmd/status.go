// Copyright (c) 2025 Passgate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// statusCmd summarizes the local authentication state: the machine phase,
// the account, token expiry, session storage and service reachability.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session, storage and service status",
	Long: `The status command shows where authentication stands on this machine: the
current state, the signed-in account and its token expiry, whether a session
is stored and in which backend, and whether the credential service is
reachable from here.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		st := a.restore(ctx)

		rows := pterm.TableData{
			{"State", string(st.Phase)},
		}
		if st.Authenticated() {
			rows = append(rows, []string{"Account", st.Session.User.Email})
			if exp, ok := tokenExpiry(st.Session.Token); ok {
				rows = append(rows, []string{"Token expires", exp.Local().Format(time.RFC1123)})
			}
		}

		present, perr := a.store.Present(ctx)
		switch {
		case perr != nil:
			rows = append(rows, []string{"Stored session", "unreadable"})
		case present:
			rows = append(rows, []string{"Stored session", "yes"})
		default:
			rows = append(rows, []string{"Stored session", "no"})
		}
		rows = append(rows, []string{"Storage", a.cfg.Store})
		rows = append(rows, []string{"Service", a.cfg.BaseURL})

		stop := startInlineSpinner(os.Stderr, "Checking service")
		herr := a.svc.Health(ctx)
		stop()
		if herr != nil {
			rows = append(rows, []string{"Reachability", "unreachable"})
		} else {
			rows = append(rows, []string{"Reachability", "ok"})
		}

		return pterm.DefaultTable.WithData(rows).Render()
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

// tokenExpiry reads the exp claim without verifying the signature. The token
// is otherwise opaque to the CLI; this is for display only.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
