package derive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/chapool/rosetta-signer/internal/config"
	"github.com/chapool/rosetta-signer/internal/util/command"
	"github.com/chapool/rosetta-signer/internal/wallet"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const (
	accountFlag  string = "account"
	indexFlag    string = "index"
	networkFlag  string = "network"
	keystoreFlag string = "keystore"
	formatFlag   string = "format"
	pathFlag     string = "path"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "Prints the payment and stake keys, key hashes and addresses of the wallet",
		Args:  cobra.NoArgs,
		RunE:  runDerive,
	}

	cmd.Flags().Uint32(accountFlag, 0, "Account index (hardened)")
	cmd.Flags().Uint32(indexFlag, 0, "Payment address index")
	cmd.Flags().String(networkFlag, "testnet", "mainnet, testnet, preprod or preview")
	cmd.Flags().String(keystoreFlag, "", "Encrypted keystore file holding the mnemonic")
	cmd.Flags().String(formatFlag, "text", "Output format: text, json or toml")
	cmd.Flags().String(pathFlag, "", "Payment key path, e.g. m/1852'/1815'/0'/1/4 (overrides --account and --index)")

	return cmd
}

func runDerive(cmd *cobra.Command, _ []string) error {
	cfg, err := command.LoadConfig(cmd, map[string]string{
		"derivation.account":   accountFlag,
		"derivation.index":     indexFlag,
		"network":              networkFlag,
		"wallet.keystore_path": keystoreFlag,
		"derivation.path":      pathFlag,
	})
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString(formatFlag)

	return command.WithConfig(cmd.Context(), cfg, func(ctx context.Context, cfg config.Signer) error {
		components, err := wallet.Open(ctx, cfg, wallet.PromptPassword)
		if err != nil {
			return errors.Wrap(err, "failed to initialize wallet")
		}
		defer components.Close()

		paymentPath, err := cfg.Derivation.PaymentPath()
		if err != nil {
			return err
		}

		keys, err := components.Service.DeriveKeysAtPath(ctx, paymentPath)
		if err != nil {
			return err
		}

		return writeKeys(cmd.OutOrStdout(), format, keys)
	})
}

func writeKeys(w io.Writer, format string, keys *wallet.KeySet) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(keys)
	case "toml":
		return toml.NewEncoder(w).Encode(keys)
	case "text":
		fmt.Fprintf(w, "Network: %s\n", keys.Network)
		fmt.Fprintf(w, "Payment Path: %s\n", keys.PaymentPath)
		fmt.Fprintf(w, "Payment Public Key: %s\n", keys.PaymentPublicKey)
		fmt.Fprintf(w, "Payment Key Hash: %s\n", keys.PaymentKeyHash)
		fmt.Fprintf(w, "Stake Path: %s\n", keys.StakePath)
		fmt.Fprintf(w, "Stake Public Key: %s\n", keys.StakePublicKey)
		fmt.Fprintf(w, "Stake Key Hash: %s\n", keys.StakeKeyHash)
		fmt.Fprintf(w, "Enterprise Address: %s\n", keys.EnterpriseAddress)
		fmt.Fprintf(w, "Base Address: %s\n", keys.BaseAddress)
		fmt.Fprintf(w, "Reward Address: %s\n", keys.RewardAddress)
		return nil
	default:
		return errors.Errorf("unsupported format %q", format)
	}
}
