package keystore

import (
	"github.com/chapool/rosetta-signer/internal/util/command"
	"github.com/spf13/cobra"
)

const (
	outFlag string = "out"
)

func New() *cobra.Command {
	return command.NewSubcommandGroup("keystore",
		newCreate(),
		newImport(),
	)
}
