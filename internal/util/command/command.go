package command

import (
	"context"
	"fmt"
	"time"

	"github.com/chapool/rosetta-signer/internal/config"
	"github.com/chapool/rosetta-signer/internal/util"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// WithConfig sets up the global logger from cfg and runs f with a context carrying it
func WithConfig(ctx context.Context, cfg config.Signer, f func(ctx context.Context, cfg config.Signer) error) error {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(cfg.LogLevel())

	if cfg.Logger.PrettyPrintConsole {
		log.Logger = log.Output(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
			w.TimeFormat = "15:04:05"
		}))
	}

	logger := log.With().Str("module", config.ModuleName).Logger()

	return f(util.WithLogger(ctx, logger), cfg)
}

// NewSubcommandGroup returns a command that only groups subCommands and prints help
func NewSubcommandGroup(name string, subCommands ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s <subcommand>", name),
		Short: fmt.Sprintf("%s related subcommands", name),
		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				log.Error().Err(err).Msg("Failed to print help")
			}
		},
	}

	cmd.AddCommand(subCommands...)

	return cmd
}

// ConfigFlag is the persistent root flag naming an optional config file
const ConfigFlag = "config"

// LoadConfig loads the configuration for cmd. bindings maps config keys to
// flag names of cmd; a flag that was set overrides env and config file.
func LoadConfig(cmd *cobra.Command, bindings map[string]string) (config.Signer, error) {
	v := config.NewViper()

	for key, flagName := range bindings {
		flag := cmd.Flags().Lookup(flagName)
		if flag == nil {
			return config.Signer{}, errors.Errorf("unknown flag %q bound to %q", flagName, key)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return config.Signer{}, errors.Wrapf(err, "failed to bind flag %q", flagName)
		}
	}

	configFile, _ := cmd.Flags().GetString(ConfigFlag)

	return config.Load(v, configFile)
}

const (
	TxFlag     = "tx"
	TxFileFlag = "tx-file"
)

// AddTransactionFlags registers --tx and --tx-file on cmd
func AddTransactionFlags(cmd *cobra.Command) {
	cmd.Flags().String(TxFlag, "", "Transaction hex (may also be given as the only argument)")
	cmd.Flags().String(TxFileFlag, "", "File holding the transaction as hex text or raw CBOR")
}

// TransactionInput returns the transaction hex given by --tx, --tx-file or the first argument
func TransactionInput(cmd *cobra.Command, args []string) (string, error) {
	inline, _ := cmd.Flags().GetString(TxFlag)
	path, _ := cmd.Flags().GetString(TxFileFlag)

	if inline == "" && len(args) > 0 {
		inline = args[0]
	}

	return util.ReadHexInput(inline, path)
}
