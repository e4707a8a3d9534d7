package main

import (
	"DotWars/internal/shared/security"
	"DotWars/internal/shared/serverconfig"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var (
		subject string
		secret  string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the admin API",
		Long: `Issue a bearer token for the HTTP admin API and the /ws endpoint.
The signing secret comes from --secret, then auth.secret in conf.yml, then JWT_SECRET.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				var conf serverconfig.Config
				if err := serverconfig.LoadInto(cfgPath, &conf); err == nil {
					secret = conf.Auth.Secret
					if ttl == 0 {
						ttl = conf.Auth.TokenTTL
					}
				}
			}
			issuer, err := security.NewIssuer(secret, ttl)
			if err != nil {
				return err
			}
			token, err := issuer.Award(subject)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "admin", "Token subject")
	cmd.Flags().StringVar(&secret, "secret", "", "Signing secret")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (default auth.token_ttl or 24h)")
	return cmd
}
