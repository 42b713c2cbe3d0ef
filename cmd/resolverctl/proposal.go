package main

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"arbiter/pkg/domain"
)

func proposalCmd(g *globalFlags) *cobra.Command {
	subCmd := &cobra.Command{
		Use:   "proposal",
		Short: "Slash proposal commands",
	}

	getCmd := &cobra.Command{
		Use:   "get <proposal>",
		Short: "Show a proposal and its routing ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := domain.ParseAddress(args[0])
			if err != nil {
				return err
			}
			return newAPIClient(g).do(cmd.Context(), cmd.OutOrStdout(), http.MethodGet, "/v1/proposals/"+p.String(), false, nil)
		},
	}

	var ncn, operator, status string
	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List proposals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			q := url.Values{}
			if ncn != "" {
				q.Set("ncn", ncn)
			}
			if operator != "" {
				q.Set("operator", operator)
			}
			if status != "" {
				q.Set("status", status)
			}
			if limit > 0 {
				q.Set("limit", strconv.Itoa(limit))
			}
			path := "/v1/proposals"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}
			return newAPIClient(g).do(cmd.Context(), cmd.OutOrStdout(), http.MethodGet, path, false, nil)
		},
	}
	listCmd.Flags().StringVar(&ncn, "ncn", "", "filter by ncn")
	listCmd.Flags().StringVar(&operator, "operator", "", "filter by operator")
	listCmd.Flags().StringVar(&status, "status", "", "comma-separated statuses")
	listCmd.Flags().IntVar(&limit, "limit", 0, "maximum results")

	var amount uint64
	proposeCmd := &cobra.Command{
		Use:   "propose <ncn> <operator> <slasher>",
		Short: "Open a slash proposal as the slasher admin",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := parseAddresses(args)
			if err != nil {
				return err
			}
			return newAPIClient(g).do(cmd.Context(), cmd.OutOrStdout(), http.MethodPost, "/v1/proposals", true, map[string]any{
				"ncn":      keys[0],
				"operator": keys[1],
				"slasher":  keys[2],
				"amount":   amount,
			})
		},
	}
	proposeCmd.Flags().Uint64Var(&amount, "amount", 0, "amount to slash")

	assignCmd := proposalAction(g, "assign <proposal> <resolver>", "Route a proposal to a resolver", http.MethodPut, "/resolver", "resolver")
	vetoCmd := proposalAction(g, "veto <proposal> <resolver>", "Veto a proposal as the resolver admin", http.MethodPost, "/veto", "resolver")
	executeCmd := proposalAction(g, "execute <proposal> <vault>", "Execute a proposal against a vault", http.MethodPost, "/execute", "vault")

	deleteCmd := &cobra.Command{
		Use:   "delete <proposal>",
		Short: "Delete a completed proposal past its delete deadline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := domain.ParseAddress(args[0])
			if err != nil {
				return err
			}
			return newAPIClient(g).do(cmd.Context(), cmd.OutOrStdout(), http.MethodDelete, "/v1/proposals/"+p.String(), false, nil)
		},
	}

	subCmd.AddCommand(getCmd, listCmd, proposeCmd, assignCmd, vetoCmd, executeCmd, deleteCmd)
	return subCmd
}

// proposalAction builds a signed command that sends {field: <arg1>} to the
// proposal in arg0.
func proposalAction(g *globalFlags, use, short, method, suffix, field string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := parseAddresses(args)
			if err != nil {
				return err
			}
			path := "/v1/proposals/" + keys[0].String() + suffix
			return newAPIClient(g).do(cmd.Context(), cmd.OutOrStdout(), method, path, true, map[string]any{field: keys[1]})
		},
	}
}

func parseAddresses(args []string) ([]domain.Address, error) {
	out := make([]domain.Address, len(args))
	for i, arg := range args {
		a, err := domain.ParseAddress(arg)
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}
