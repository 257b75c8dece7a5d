// Copyright (c) 2025 Passgate
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"passgate/cli/internal/backend"
	"passgate/cli/internal/config"
)

var (
	configBaseURL string
	configStore   string
	configMinPw   int
)

// configCmd represents the config command for inspecting and changing CLI
// settings. Changing the service URL verifies that the new endpoint answers
// before anything is saved.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change CLI configuration",
	Long: `Without flags, the config command prints the current configuration. With
flags, it validates the new values, verifies a changed service URL against the
service's health endpoint and writes the result to the configuration file.

Sessions are never kept in the configuration file; they live in the session
store selected by the 'store' setting.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		changed := false
		urlChanged := false
		if configBaseURL != "" {
			cfg.BaseURL = strings.TrimRight(configBaseURL, "/")
			changed = true
			urlChanged = true
		}
		if configStore != "" {
			cfg.Store = configStore
			changed = true
		}
		if configMinPw > 0 {
			cfg.MinPasswordLen = configMinPw
			changed = true
		}

		if !changed {
			rows := pterm.TableData{
				{"Setting", "Value"},
				{"base_url", cfg.BaseURL},
				{"store", cfg.Store},
				{"discover", strconv.FormatBool(cfg.Discover)},
				{"log_level", cfg.LogLevel},
				{"log_format", cfg.LogFormat},
				{"http_timeout_sec", strconv.Itoa(cfg.HTTPTimeoutSec)},
				{"min_password_len", strconv.Itoa(cfg.MinPasswordLen)},
			}
			return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
		}

		if err := cfg.Validate(); err != nil {
			fmt.Println("❌ " + err.Error())
			return errReported
		}

		if urlChanged {
			stop := startInlineSpinner(os.Stdout, "verifying service")
			herr := backend.New(cfg).Health(ctx)
			stop()
			if herr != nil {
				fmt.Println("❌ The service at that URL did not answer. Nothing was saved.")
				fmt.Println("   Check the URL and your connection, then try again.")
				return errReported
			}
		}

		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Println("✅ Configuration saved!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().StringVar(&configBaseURL, "base-url", "", "Credential service base URL")
	configCmd.Flags().StringVar(&configStore, "store", "", "Session store backend (auto, keychain, file, sqlite, memory)")
	configCmd.Flags().IntVar(&configMinPw, "min-password-len", 0, "Minimum password length for registration")
}
