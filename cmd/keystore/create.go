package keystore

import (
	"context"
	"fmt"

	"github.com/chapool/rosetta-signer/internal/config"
	"github.com/chapool/rosetta-signer/internal/util/command"
	"github.com/chapool/rosetta-signer/internal/wallet"
	"github.com/spf13/cobra"
)

func newCreate() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Generates a 24 word mnemonic and stores it in a new encrypted keystore",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWrite(cmd, func(context.Context, config.Signer) (string, error) {
				return "", nil
			})
		},
	}

	cmd.Flags().String(outFlag, "", "Keystore file to create")

	return cmd
}

// runWrite creates the keystore at --out with the mnemonic returned by source
// (empty to generate one) and prints where it went
func runWrite(cmd *cobra.Command, source func(context.Context, config.Signer) (string, error)) error {
	cfg, err := command.LoadConfig(cmd, map[string]string{
		"wallet.keystore_path": outFlag,
	})
	if err != nil {
		return err
	}

	return command.WithConfig(cmd.Context(), cfg, func(ctx context.Context, cfg config.Signer) error {
		keystoreService, err := newKeystoreService(cfg)
		if err != nil {
			return err
		}

		mnemonic, err := source(ctx, cfg)
		if err != nil {
			return err
		}

		generated := mnemonic == ""

		stored, err := wallet.CreateKeystore(ctx, keystoreService, mnemonic, cfg.Wallet.KeystorePassword, wallet.PromptPassword)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Keystore: %s\n", cfg.Wallet.KeystorePath)
		if generated {
			fmt.Fprintln(out, "Write down this mnemonic, it will not be shown again:")
			fmt.Fprintln(out, stored)
		}

		return nil
	})
}
