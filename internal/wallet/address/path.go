package address

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chapool/rosetta-signer/internal/wallet/hdkey"
)

const pathSegments = 5

// ParsePath parses "m/1852'/1815'/0'/0/0" (hardened marker ' or h).
// The first three segments must be hardened, the last two must not.
func ParsePath(path string) (DerivationPath, error) {
	indices, err := parseIndices(path)
	if err != nil {
		return DerivationPath{}, err
	}

	if len(indices) != pathSegments {
		return DerivationPath{}, fmt.Errorf("invalid derivation path %q: expected %d segments, got %d", path, pathSegments, len(indices))
	}

	for i, index := range indices {
		wantHardened := i < 3
		if hdkey.IsHardened(index) != wantHardened {
			return DerivationPath{}, fmt.Errorf("invalid derivation path %q: segment %d hardened=%t", path, i+1, !wantHardened)
		}
	}

	return DerivationPath{
		Purpose:  indices[0] - hdkey.HardenedOffset,
		CoinType: indices[1] - hdkey.HardenedOffset,
		Account:  indices[2] - hdkey.HardenedOffset,
		Role:     indices[3],
		Index:    indices[4],
	}, nil
}

// parseIndices parses a BIP32 style path string into indices
// Example: "m/1852'/1815'/0'/0/0" -> [2147485500, 2147485463, 2147483648, 0, 0]
func parseIndices(path string) ([]uint32, error) {
	path = strings.TrimSpace(path)
	if path == "" || path[0] != 'm' {
		return nil, fmt.Errorf("invalid derivation path: %q", path)
	}

	path = strings.TrimPrefix(strings.TrimPrefix(path, "m"), "/")
	if path == "" {
		return nil, nil
	}

	parts := strings.Split(path, "/")
	indices := make([]uint32, 0, len(parts))
	for _, part := range parts {
		hardened := false
		if strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h") {
			hardened = true
			part = part[:len(part)-1]
		}

		val, err := strconv.ParseUint(part, 10, 31)
		if err != nil {
			return nil, fmt.Errorf("invalid path segment %q: %w", part, err)
		}

		index := uint32(val)
		if hardened {
			index = hdkey.Harden(index)
		}

		indices = append(indices, index)
	}

	return indices, nil
}
