package inspect

import (
	"context"
	"fmt"

	"github.com/chapool/rosetta-signer/internal/config"
	"github.com/chapool/rosetta-signer/internal/util/command"
	"github.com/chapool/rosetta-signer/internal/wallet"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var errInvalidWitness = errors.New("transaction has invalid witnesses")

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [tx-hex]",
		Short: "Prints the hash of a Cardano transaction and verifies its vkey witnesses",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInspect,
	}

	command.AddTransactionFlags(cmd)

	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := command.LoadConfig(cmd, nil)
	if err != nil {
		return err
	}

	return command.WithConfig(cmd.Context(), cfg, func(ctx context.Context, cfg config.Signer) error {
		envelope, err := command.TransactionInput(cmd, args)
		if err != nil {
			return err
		}

		components, err := wallet.InitializeComponents(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to initialize components")
		}

		inspection, err := components.Service.Inspect(ctx, envelope)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Transaction Hash: %s\n", inspection.TxHash)
		fmt.Fprintf(out, "Is Valid: %t\n", inspection.IsValid)
		fmt.Fprintf(out, "Witnesses: %d\n", len(inspection.Witnesses))

		for _, w := range inspection.Witnesses {
			if w.Valid {
				fmt.Fprintf(out, "✅ %s signature valid\n", w.KeyHash)
			} else {
				fmt.Fprintf(out, "❌ %s signature does NOT match the transaction body\n", w.KeyHash)
			}
		}

		if !inspection.AllValid() {
			return errInvalidWitness
		}

		return nil
	})
}
