package keystore

import (
	"context"

	"github.com/chapool/rosetta-signer/internal/config"
	"github.com/chapool/rosetta-signer/internal/wallet"
	"github.com/chapool/rosetta-signer/internal/wallet/keystore"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newImport() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Stores an existing mnemonic in a new encrypted keystore",
		Long: `Stores an existing mnemonic in a new encrypted keystore.

The mnemonic is taken from SIGNER_WALLET_MNEMONIC or read from the terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWrite(cmd, func(_ context.Context, cfg config.Signer) (string, error) {
				if cfg.Wallet.Mnemonic != "" {
					return cfg.Wallet.Mnemonic, nil
				}

				mnemonic, err := wallet.PromptPassword("Enter mnemonic: ")
				if err != nil {
					return "", err
				}
				if mnemonic == "" {
					return "", errors.New("mnemonic is empty")
				}
				return mnemonic, nil
			})
		},
	}

	cmd.Flags().String(outFlag, "", "Keystore file to create")

	return cmd
}

//nolint:ireturn // keystore.Service is the package's public contract
func newKeystoreService(cfg config.Signer) (keystore.Service, error) {
	if cfg.Wallet.KeystorePath == "" {
		return nil, errors.New("no keystore path: set --out or SIGNER_WALLET_KEYSTORE_PATH")
	}

	keystoreService, err := keystore.NewService(cfg.Wallet.KeystorePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create keystore service")
	}

	return keystoreService, nil
}
