package main

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"
)

type inspectResult struct {
	SignedAt time.Time      `json:"signed_at"`
	Age      string         `json:"age"`
	Data     map[string]any `json:"data"`
}

func inspectCmd(flags *rootFlags) *cobra.Command {
	var (
		maxAge   time.Duration
		noExpiry bool
	)

	cmd := &cobra.Command{
		Use:   "inspect TOKEN",
		Short: "Verify a session token and print its contents",
		Long: `Verify a session token with the configured secret and print its
data as JSON. Tokens older than the permanent lifetime are rejected
unless --no-expiry is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			s, err := newSigner(cfg.Session)
			if err != nil {
				return err
			}

			limit := cfg.Session.PermanentLifetime
			if cmd.Flags().Changed("max-age") {
				limit = maxAge
			}
			if noExpiry {
				limit = 0
			}

			data, signedAt, err := s.DecodeWithTimestamp(args[0], limit)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(inspectResult{
				SignedAt: signedAt.UTC(),
				Age:      time.Since(signedAt).Truncate(time.Second).String(),
				Data:     data,
			})
		},
	}

	cmd.Flags().DurationVar(&maxAge, "max-age", 0, "maximum token age (defaults to the permanent lifetime)")
	cmd.Flags().BoolVar(&noExpiry, "no-expiry", false, "skip the age check")
	return cmd
}
