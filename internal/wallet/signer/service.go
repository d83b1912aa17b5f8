package signer

import (
	"context"

	"github.com/chapool/rosetta-signer/internal/wallet/address"
	"github.com/chapool/rosetta-signer/internal/wallet/seed"
	"github.com/pkg/errors"
)

type service struct {
	seedManager    seed.Manager
	addressService address.Service
}

// NewService creates a new SignerService
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(seedManager seed.Manager, addressService address.Service) (Service, error) {
	return &service{
		seedManager:    seedManager,
		addressService: addressService,
	}, nil
}

// SignTransaction signs a Cardano transaction envelope with the keys at req.Paths
func (s *service) SignTransaction(ctx context.Context, req *SignRequest) (*SignResponse, error) {
	if req == nil || len(req.Envelope) == 0 {
		return nil, errors.New("empty transaction")
	}
	if len(req.Paths) == 0 {
		return nil, errors.New("no derivation paths to sign with")
	}

	// Get root key from memory
	root, err := s.seedManager.GetRootKey()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get root key")
	}

	// Clear root key after use
	defer root.Clear()

	return s.signFixedTransaction(ctx, req, root)
}
