package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/spf13/cobra"

	"arbiter/pkg/domain"
)

func keysCmd(g *globalFlags) *cobra.Command {
	subCmd := &cobra.Command{
		Use:   "keys",
		Short: "Signer key commands",
	}

	generateCmd := &cobra.Command{
		Use:   "generate <path>",
		Short: "Write a new ed25519 key and print its address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, priv, err := ed25519.GenerateKey(rand.Reader)
			if err != nil {
				return err
			}
			if err := writeKey(args[0], priv); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), addressOf(priv))
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the address of --key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			priv, err := loadKey(g.keyFile)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), addressOf(priv))
			return nil
		},
	}

	subCmd.AddCommand(generateCmd)
	subCmd.AddCommand(showCmd)
	return subCmd
}

// Key files hold the base58 64-byte private key on one line.
func writeKey(path string, priv ed25519.PrivateKey) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("create key file: %w", err)
	}
	if _, err := fmt.Fprintln(f, base58.Encode(priv)); err != nil {
		_ = f.Close()
		return fmt.Errorf("write key file: %w", err)
	}
	return f.Close()
}

func loadKey(path string) (ed25519.PrivateKey, error) {
	if path == "" {
		return nil, errors.New("no signer key: pass --key or set ARBITER_KEY")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	decoded, err := base58.Decode(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("decode key file: %w", err)
	}
	if len(decoded) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("key file holds %d bytes, want %d", len(decoded), ed25519.PrivateKeySize)
	}
	return ed25519.PrivateKey(decoded), nil
}

func addressOf(priv ed25519.PrivateKey) domain.Address {
	return domain.AddressFromPublicKey(priv.Public().(ed25519.PublicKey))
}
