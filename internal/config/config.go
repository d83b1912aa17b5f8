package config

import (
	"encoding/hex"
	"os"
	"strings"

	"github.com/chapool/rosetta-signer/internal/wallet/address"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// EnvPrefix is prepended to every environment variable, e.g. SIGNER_WALLET_MNEMONIC
const EnvPrefix = "SIGNER"

// DotEnvFile is loaded into the environment when present
const DotEnvFile = ".env"

const maxSoftIndex = 1<<31 - 1

type Logger struct {
	Level              string `mapstructure:"level" json:"level"`
	PrettyPrintConsole bool   `mapstructure:"pretty_print_console" json:"pretty_print_console"`
}

// Wallet holds the key material sources. Secrets are never serialized.
type Wallet struct {
	Mnemonic         string `mapstructure:"mnemonic" json:"-"`
	Passphrase       string `mapstructure:"passphrase" json:"-"`
	KeystorePath     string `mapstructure:"keystore_path" json:"keystore_path"`
	KeystorePassword string `mapstructure:"keystore_password" json:"-"`
}

type Derivation struct {
	Account      uint32 `mapstructure:"account" json:"account"`
	Index        uint32 `mapstructure:"index" json:"index"`
	WithStakeKey bool   `mapstructure:"with_stake_key" json:"with_stake_key"`
	StakeIndex   uint32 `mapstructure:"stake_index" json:"stake_index"`
	Path         string `mapstructure:"path" json:"path"` // overrides Account and Index when set
}

type Payload struct {
	MapPrefixes   []string `mapstructure:"map_prefixes" json:"map_prefixes"`
	AllowEnvelope bool     `mapstructure:"allow_envelope" json:"allow_envelope"`
}

type Metrics struct {
	Textfile string `mapstructure:"textfile" json:"textfile"`
}

// Signer is the complete runtime configuration
type Signer struct {
	Logger     Logger     `mapstructure:"logger" json:"logger"`
	Wallet     Wallet     `mapstructure:"wallet" json:"wallet"`
	Derivation Derivation `mapstructure:"derivation" json:"derivation"`
	Network    string     `mapstructure:"network" json:"network"`
	Payload    Payload    `mapstructure:"payload" json:"payload"`
	Metrics    Metrics    `mapstructure:"metrics" json:"metrics"`
}

// DefaultSignerConfig returns the configuration used when nothing is set
func DefaultSignerConfig() Signer {
	return Signer{
		Logger: Logger{
			Level:              zerolog.InfoLevel.String(),
			PrettyPrintConsole: true,
		},
		Derivation: Derivation{
			Account: address.DefaultAccount,
			Index:   address.DefaultIndex,
		},
		Network: "testnet",
		Payload: Payload{
			MapPrefixes:   []string{"a4", "a5"},
			AllowEnvelope: true,
		},
	}
}

// NewViper returns a viper instance with defaults and SIGNER_* environment binding.
// Cobra flags are bound onto it before Load.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := DefaultSignerConfig()
	v.SetDefault("logger.level", d.Logger.Level)
	v.SetDefault("logger.pretty_print_console", d.Logger.PrettyPrintConsole)
	v.SetDefault("wallet.mnemonic", d.Wallet.Mnemonic)
	v.SetDefault("wallet.passphrase", d.Wallet.Passphrase)
	v.SetDefault("wallet.keystore_path", d.Wallet.KeystorePath)
	v.SetDefault("wallet.keystore_password", d.Wallet.KeystorePassword)
	v.SetDefault("derivation.account", d.Derivation.Account)
	v.SetDefault("derivation.index", d.Derivation.Index)
	v.SetDefault("derivation.with_stake_key", d.Derivation.WithStakeKey)
	v.SetDefault("derivation.stake_index", d.Derivation.StakeIndex)
	v.SetDefault("derivation.path", d.Derivation.Path)
	v.SetDefault("network", d.Network)
	v.SetDefault("payload.map_prefixes", d.Payload.MapPrefixes)
	v.SetDefault("payload.allow_envelope", d.Payload.AllowEnvelope)
	v.SetDefault("metrics.textfile", d.Metrics.Textfile)

	return v
}

// Load reads the optional .env and config file into v and returns the validated configuration
func Load(v *viper.Viper, configFile string) (Signer, error) {
	if err := loadDotEnv(DotEnvFile); err != nil {
		return Signer{}, err
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Signer{}, errors.Wrapf(err, "failed to read config file %s", configFile)
		}
	}

	var cfg Signer
	if err := v.Unmarshal(&cfg); err != nil {
		return Signer{}, errors.Wrap(err, "failed to decode config")
	}

	if err := cfg.Validate(); err != nil {
		return Signer{}, err
	}

	return cfg, nil
}

// DefaultSignerConfigFromEnv loads the configuration from the environment only
func DefaultSignerConfigFromEnv() (Signer, error) {
	return Load(NewViper(), "")
}

// Validate checks value ranges and formats
func (c Signer) Validate() error {
	if _, err := zerolog.ParseLevel(c.Logger.Level); err != nil {
		return errors.Wrapf(err, "invalid logger.level %q", c.Logger.Level)
	}

	if _, err := address.ParseNetwork(c.Network); err != nil {
		return errors.Wrap(err, "invalid network")
	}

	if c.Derivation.Account > maxSoftIndex {
		return errors.Errorf("derivation.account %d out of range", c.Derivation.Account)
	}
	if c.Derivation.Index > maxSoftIndex || c.Derivation.StakeIndex > maxSoftIndex {
		return errors.New("derivation index out of range")
	}

	if _, err := c.Derivation.PaymentPath(); err != nil {
		return err
	}

	for _, prefix := range c.Payload.MapPrefixes {
		b, err := hex.DecodeString(prefix)
		if err != nil || len(b) != 1 || b[0]>>5 != 5 {
			return errors.Errorf("payload.map_prefixes: %q is not a CBOR map header byte", prefix)
		}
	}

	return nil
}

// PaymentPath returns Path when set, otherwise the payment path of Account and Index
func (d Derivation) PaymentPath() (address.DerivationPath, error) {
	if d.Path == "" {
		return address.PaymentPath(d.Account, d.Index), nil
	}

	path, err := address.ParsePath(d.Path)
	if err != nil {
		return address.DerivationPath{}, errors.Wrap(err, "invalid derivation.path")
	}
	return path, nil
}

// LogLevel returns the parsed logger level, defaulting to info
func (c Signer) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Logger.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return errors.Wrap(err, "failed to stat .env")
	}

	if err := gotenv.Load(path); err != nil {
		return errors.Wrapf(err, "failed to load %s", path)
	}

	return nil
}
