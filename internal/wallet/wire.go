//go:build wireinject
// +build wireinject

package wallet

import (
	"github.com/chapool/rosetta-signer/internal/config"
	"github.com/chapool/rosetta-signer/internal/metrics"
	"github.com/chapool/rosetta-signer/internal/wallet/address"
	"github.com/chapool/rosetta-signer/internal/wallet/seed"
	"github.com/chapool/rosetta-signer/internal/wallet/signer"
	"github.com/google/wire"
)

var pipelineSet = wire.NewSet(
	NewNormalizer,
	seed.NewManager,
	address.NewService,
	signer.NewService,
	metrics.New,
	NewService,
	wire.Struct(new(Components), "*"),
)

// InitializeComponents wires the signing pipeline from configuration
func InitializeComponents(cfg config.Signer) (*Components, error) {
	wire.Build(pipelineSet)
	return nil, nil
}
