package util

import (
	"encoding/hex"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
)

// ReadHexInput returns the hex given inline, or the content of path.
// Files may hold hex text (as written by cardano-cli or copied from a
// Rosetta response) or raw CBOR bytes, which are hex encoded.
func ReadHexInput(inline string, path string) (string, error) {
	inline = strings.TrimSpace(inline)

	switch {
	case inline != "" && path != "":
		return "", errors.New("provide either an inline transaction or a file, not both")
	case inline != "":
		return inline, nil
	case path == "":
		return "", errors.New("no transaction given")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", path)
	}

	if len(data) == 0 {
		return "", errors.Errorf("%s is empty", path)
	}

	if mimetype.Detect(data).Is("text/plain") {
		return strings.TrimSpace(string(data)), nil
	}

	return hex.EncodeToString(data), nil
}
