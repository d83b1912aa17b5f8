package sign

import (
	"context"

	"github.com/chapool/rosetta-signer/internal/config"
	"github.com/chapool/rosetta-signer/internal/wallet"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// unlockSigner picks the key source named by cfg and initializes the seed of components
func unlockSigner(ctx context.Context, components *wallet.Components, cfg config.Signer) error {
	log := log.With().Str("component", "signer_init").Logger()

	switch {
	case cfg.Wallet.Mnemonic != "":
		log.Debug().Msg("Using mnemonic from environment")
	case cfg.Wallet.KeystorePath != "":
		log.Debug().Str("path", cfg.Wallet.KeystorePath).Msg("Using keystore")
	default:
		return errors.New("no key material: set SIGNER_WALLET_MNEMONIC or --keystore")
	}

	if err := components.Unlock(ctx, cfg.Wallet, wallet.PromptPassword); err != nil {
		return errors.Wrap(err, "failed to initialize wallet")
	}

	return nil
}
