package main

import (
	"os"

	"github.com/spf13/cobra"

	"arbiter/internal/platform/config"
)

type globalFlags struct {
	server  string
	keyFile string
	program string
}

func rootCmd() *cobra.Command {
	g := &globalFlags{}
	root := &cobra.Command{
		Use:           "resolverctl",
		Short:         "Manage signer keys and slash disputes.",
		SilenceUsage:  true,
	}

	server := os.Getenv("ARBITER_URL")
	if server == "" {
		server = "http://localhost:8080"
	}
	root.PersistentFlags().StringVar(&g.server, "server", server, "arbiter base URL (env ARBITER_URL)")
	root.PersistentFlags().StringVar(&g.keyFile, "key", os.Getenv("ARBITER_KEY"), "signer key file (env ARBITER_KEY)")
	root.PersistentFlags().StringVar(&g.program, "program", config.DefaultProgramID, "resolver program id")

	root.AddCommand(keysCmd(g))
	root.AddCommand(tokenCmd(g))
	root.AddCommand(deriveCmd(g))
	root.AddCommand(proposalCmd(g))
	return root
}
