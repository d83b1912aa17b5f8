package wallet

import (
	"encoding/hex"

	"github.com/chapool/rosetta-signer/internal/wallet/address"
	"github.com/chapool/rosetta-signer/internal/wallet/signer"
	"github.com/chapool/rosetta-signer/internal/wallet/tx"
)

// ToWitnessInfo converts a signer witness to its printable form
func ToWitnessInfo(w signer.Witness) WitnessInfo {
	return WitnessInfo{
		Path:      w.Path.String(),
		Role:      w.Path.RoleName(),
		PublicKey: hex.EncodeToString(w.PublicKey),
		KeyHash:   hex.EncodeToString(w.KeyHash),
		Added:     w.Added,
	}
}

// ToWitnessInfos converts signer witnesses in order
func ToWitnessInfos(witnesses []signer.Witness) []WitnessInfo {
	out := make([]WitnessInfo, 0, len(witnesses))
	for _, w := range witnesses {
		out = append(out, ToWitnessInfo(w))
	}
	return out
}

// ToWitnessCheck converts a transaction witness check to its printable form
func ToWitnessCheck(c tx.WitnessCheck) WitnessCheck {
	return WitnessCheck{
		PublicKey: hex.EncodeToString(c.VKey),
		KeyHash:   hex.EncodeToString(address.KeyHash(c.VKey)),
		Valid:     c.Valid,
	}
}
