package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"arbiter/internal/resolver/models"
	"arbiter/pkg/domain"
)

func deriveCmd(g *globalFlags) *cobra.Command {
	subCmd := &cobra.Command{
		Use:   "derive",
		Short: "Derive resolver program addresses",
	}

	add := func(use, short string, n int, derive func(program domain.Address, keys []domain.Address) (models.Derived, error)) {
		subCmd.AddCommand(&cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.ExactArgs(n),
			RunE: func(cmd *cobra.Command, args []string) error {
				program, err := domain.ParseAddress(g.program)
				if err != nil {
					return fmt.Errorf("--program: %w", err)
				}
				keys, err := parseAddresses(args)
				if err != nil {
					return err
				}
				d, err := derive(program, keys)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s bump=%d\n", d.Address, d.Bump)
				return nil
			},
		})
	}

	add("config", "Program config address", 0, func(p domain.Address, _ []domain.Address) (models.Derived, error) {
		return models.ConfigAddress(p)
	})
	add("policy <ncn>", "NCN policy address", 1, func(p domain.Address, k []domain.Address) (models.Derived, error) {
		return models.NcnPolicyAddress(p, k[0])
	})
	add("resolver <base>", "Resolver address", 1, func(p domain.Address, k []domain.Address) (models.Derived, error) {
		return models.ResolverAddress(p, k[0])
	})
	add("slasher <base>", "Slasher address", 1, func(p domain.Address, k []domain.Address) (models.Derived, error) {
		return models.SlasherAddress(p, k[0])
	})
	add("proposal <ncn> <operator> <slasher>", "Slash proposal address", 3, func(p domain.Address, k []domain.Address) (models.Derived, error) {
		return models.SlashProposalAddress(p, k[0], k[1], k[2])
	})
	add("ticket <ncn> <proposal>", "Proposal routing ticket address", 2, func(p domain.Address, k []domain.Address) (models.Derived, error) {
		return models.ProposalTicketAddress(p, k[0], k[1])
	})
	return subCmd
}
