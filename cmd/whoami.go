package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"passgate/cli/internal/guard"
)

// whoamiCmd represents the whoami command for displaying the current account.
// It refreshes the account data from the credential service when reachable
// and falls back to the stored session when offline.
var whoamiCmd = &cobra.Command{
	Use:     "whoami",
	Aliases: []string{"me"},
	Short:   "Show the current authenticated account",
	Long: `The whoami command displays information about the currently authenticated
account. When the credential service is reachable, the account data is
refreshed; otherwise the stored session is shown.

If no valid session exists, it will indicate that the user is not logged in.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := newApp(ctx)
		if err != nil {
			return err
		}

		st := a.restore(ctx)
		if guard.Require(a.machine) != nil {
			fmt.Println("🔒 You're not logged in yet!")
			fmt.Println("   Run 'passgate login' to get started.")
			return nil
		}

		// Try fresh data first; the payload shape is tolerated loosely
		if raw, err := a.svc.Me(ctx, st.Session.Token); err == nil && raw != nil {
			if inner, ok := raw["user"].(map[string]any); ok {
				raw = inner
			}
			if email, ok := raw["email"].(string); ok && email != "" {
				fmt.Println(whoamiPhrase(email))
				return nil
			}
			if id, ok := raw["id"].(string); ok && id != "" {
				fmt.Println(whoamiPhrase(id))
				return nil
			}
		}

		// Offline fallback: the stored session
		fmt.Println(whoamiPhrase(st.Session.User.Email))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// whoamiPhrase returns a friendly phrase with the user's identifier
func whoamiPhrase(identifier string) string {
	return fmt.Sprintf("👤 Current user: %s", identifier)
}
