package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/browsersession/pkg/session"
	"github.com/dmitrymomot/browsersession/pkg/signer"
)

var errInvalidPair = errors.New("expected key=value")

func signCmd(flags *rootFlags) *cobra.Command {
	var (
		rawJSON   string
		permanent bool
	)

	cmd := &cobra.Command{
		Use:   "sign [key=value ...]",
		Short: "Create a session token",
		Long: `Create a session token signed with the configured secret.

Values are taken as strings unless --json is used.`,
		Example: `  browsersession sign user=alice role=admin
  browsersession sign --json '{"user":"alice","visits":3}' --permanent`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			s, err := newSigner(cfg.Session)
			if err != nil {
				return err
			}

			data, err := parseSessionData(rawJSON, args)
			if err != nil {
				return err
			}
			if permanent {
				data[session.PermanentKey] = true
			}

			token, err := s.Encode(data)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&rawJSON, "json", "", "session data as a JSON object")
	cmd.Flags().BoolVar(&permanent, "permanent", false, "mark the session permanent")
	return cmd
}

func parseSessionData(rawJSON string, pairs []string) (map[string]any, error) {
	data := make(map[string]any, len(pairs))
	if rawJSON != "" {
		if err := json.Unmarshal([]byte(rawJSON), &data); err != nil {
			return nil, fmt.Errorf("parse --json: %w", err)
		}
	}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w, got %q", errInvalidPair, pair)
		}
		data[key] = value
	}
	return data, nil
}

func newSigner(cfg session.Config) (*signer.Signer, error) {
	return signer.New(cfg.SecretKey,
		signer.WithSalt(cfg.Salt),
		signer.WithDigest(cfg.DigestMethod),
		signer.WithKeyDerivation(cfg.KeyDerivation),
		signer.WithFallbackSecrets(cfg.FallbackSecretKeys...),
	)
}
