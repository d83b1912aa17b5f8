package sign

import (
	"context"
	"fmt"

	"github.com/chapool/rosetta-signer/internal/config"
	"github.com/chapool/rosetta-signer/internal/util"
	"github.com/chapool/rosetta-signer/internal/util/command"
	"github.com/chapool/rosetta-signer/internal/wallet"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	accountFlag         string = "account"
	indexFlag           string = "index"
	withStakeKeyFlag    string = "with-stake-key"
	stakeIndexFlag      string = "stake-index"
	expectKeyHashFlag   string = "expect-key-hash"
	keystoreFlag        string = "keystore"
	metricsTextfileFlag string = "metrics-textfile"
	pathFlag            string = "path"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sign [tx-hex]",
		Short: "Signs a Rosetta unsigned transaction with keys derived from the wallet mnemonic",
		Long: `Signs a Rosetta unsigned transaction with keys derived from the wallet mnemonic.

The mnemonic is read from SIGNER_WALLET_MNEMONIC, or decrypted from the
keystore given by --keystore / SIGNER_WALLET_KEYSTORE_PATH. The payment key
m/1852'/1815'/account'/0/index always signs; --with-stake-key adds the stake
key m/1852'/1815'/account'/2/stake-index.

The payload is normalized first; a payload that cannot be signed fails
before the mnemonic is read or a keystore password is asked for.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSign,
	}

	command.AddTransactionFlags(cmd)
	cmd.Flags().Uint32(accountFlag, 0, "Account index (hardened)")
	cmd.Flags().Uint32(indexFlag, 0, "Payment address index")
	cmd.Flags().Bool(withStakeKeyFlag, false, "Also sign with the stake key")
	cmd.Flags().Uint32(stakeIndexFlag, 0, "Stake key index")
	cmd.Flags().String(expectKeyHashFlag, "", "Abort unless the payment key hash equals this hex value")
	cmd.Flags().String(keystoreFlag, "", "Encrypted keystore file holding the mnemonic")
	cmd.Flags().String(metricsTextfileFlag, "", "Write prometheus counters to this file")
	cmd.Flags().String(pathFlag, "", "Payment key path, e.g. m/1852'/1815'/0'/1/4 (overrides --account and --index)")

	return cmd
}

func runSign(cmd *cobra.Command, args []string) error {
	cfg, err := command.LoadConfig(cmd, map[string]string{
		"derivation.account":        accountFlag,
		"derivation.index":          indexFlag,
		"derivation.with_stake_key": withStakeKeyFlag,
		"derivation.stake_index":    stakeIndexFlag,
		"wallet.keystore_path":      keystoreFlag,
		"metrics.textfile":          metricsTextfileFlag,
		"derivation.path":           pathFlag,
	})
	if err != nil {
		return err
	}

	return command.WithConfig(cmd.Context(), cfg, func(ctx context.Context, cfg config.Signer) error {
		log := util.LogFromContext(ctx)

		unsignedTx, err := command.TransactionInput(cmd, args)
		if err != nil {
			return err
		}

		expectedKeyHash, _ := cmd.Flags().GetString(expectKeyHashFlag)

		components, err := wallet.InitializeComponents(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to initialize components")
		}
		defer components.Close()

		if cfg.Metrics.Textfile != "" {
			defer func() {
				if err := components.Metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
					log.Warn().Err(err).Msg("Failed to write metrics")
				}
			}()
		}

		// a payload that cannot be signed is rejected before any key material is read
		normalized, err := components.Service.Normalize(ctx, unsignedTx)
		if err != nil {
			return err
		}

		if err := unlockSigner(ctx, components, cfg); err != nil {
			return err
		}

		res, err := components.Service.SignNormalized(ctx, normalized, &wallet.SignRequest{
			Account:         cfg.Derivation.Account,
			Index:           cfg.Derivation.Index,
			WithStakeKey:    cfg.Derivation.WithStakeKey,
			StakeIndex:      cfg.Derivation.StakeIndex,
			Path:            cfg.Derivation.Path,
			ExpectedKeyHash: expectedKeyHash,
		})
		if err != nil {
			return err
		}

		for _, w := range res.Witnesses {
			log.Info().
				Str("path", w.Path).
				Str("key_hash", w.KeyHash).
				Bool("added", w.Added).
				Msg("Witness")
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Unsigned Transaction: %s\n", res.UnsignedTx)
		fmt.Fprintf(out, "Signed Transaction: %s\n", res.SignedTx)
		fmt.Fprintf(out, "Transaction Hash: %s\n", res.TxHash)

		return nil
	})
}
