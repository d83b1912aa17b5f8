package normalize

import (
	"context"
	"fmt"

	"github.com/chapool/rosetta-signer/internal/config"
	"github.com/chapool/rosetta-signer/internal/util/command"
	"github.com/chapool/rosetta-signer/internal/wallet"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalize [tx-hex]",
		Short: "Wraps a Rosetta unsigned transaction into a signable Cardano envelope",
		Long: `Wraps a Rosetta unsigned transaction into a signable Cardano envelope.

Accepts a bare transaction body (CBOR map) or the Rosetta array whose first
element is the body as hex text. No key material is needed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runNormalize,
	}

	command.AddTransactionFlags(cmd)

	return cmd
}

func runNormalize(cmd *cobra.Command, args []string) error {
	cfg, err := command.LoadConfig(cmd, nil)
	if err != nil {
		return err
	}

	return command.WithConfig(cmd.Context(), cfg, func(ctx context.Context, cfg config.Signer) error {
		unsignedTx, err := command.TransactionInput(cmd, args)
		if err != nil {
			return err
		}

		components, err := wallet.InitializeComponents(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to initialize components")
		}

		res, err := components.Service.Normalize(ctx, unsignedTx)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Unsigned Transaction: %s\n", res.Envelope)

		return nil
	})
}
