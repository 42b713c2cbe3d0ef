package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"arbiter/internal/signer"
	"arbiter/pkg/domain"
)

func tokenCmd(g *globalFlags) *cobra.Command {
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a bearer token signed by --key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, err := issueToken(g, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", time.Minute, "token lifetime; the server caps it")
	return cmd
}

func issueToken(g *globalFlags, ttl time.Duration) (string, error) {
	priv, err := loadKey(g.keyFile)
	if err != nil {
		return "", err
	}
	return signer.Issue(priv, domain.APIVersionV1, ttl, time.Now())
}
