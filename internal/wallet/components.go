package wallet

import (
	"github.com/chapool/rosetta-signer/internal/metrics"
	"github.com/chapool/rosetta-signer/internal/wallet/address"
	"github.com/chapool/rosetta-signer/internal/wallet/seed"
	"github.com/chapool/rosetta-signer/internal/wallet/signer"
)

// Components is the wired pipeline. SeedManager must be initialized
// (see InitializeSeed) before Service signs or derives.
type Components struct {
	Service        Service
	SeedManager    seed.Manager
	AddressService address.Service
	SignerService  signer.Service
	Metrics        *metrics.Metrics
}

// Close zeroes key material held by the seed manager
func (c *Components) Close() {
	c.SeedManager.Clear()
}
