package cmd

import (
	"fmt"
	"os"

	"github.com/chapool/rosetta-signer/cmd/derive"
	"github.com/chapool/rosetta-signer/cmd/inspect"
	"github.com/chapool/rosetta-signer/cmd/keystore"
	"github.com/chapool/rosetta-signer/cmd/normalize"
	"github.com/chapool/rosetta-signer/cmd/sign"
	"github.com/chapool/rosetta-signer/internal/config"
	"github.com/chapool/rosetta-signer/internal/util/command"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: config.GetFormattedBuildArgs(),
	Use:     "rosetta-signer",
	Short:   config.ModuleName,
	Long: fmt.Sprintf(`%v

Signs Cardano transactions produced by a Rosetta construction API.
Configuration is read from ENV (prefix %s_), an optional .env file
and an optional config file.`, config.ModuleName, config.EnvPrefix),
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	rootCmd.PersistentFlags().String(command.ConfigFlag, "", "Config file (yaml, toml or json)")

	// attach the subcommands
	rootCmd.AddCommand(
		derive.New(),
		inspect.New(),
		keystore.New(),
		normalize.New(),
		sign.New(),
	)

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("Failed to execute root command")
		os.Exit(1)
	}
}
