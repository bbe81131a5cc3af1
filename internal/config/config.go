// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

// Package config loads the faucet's deployment configuration.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/errors"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/ledger"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/stellar/go/keypair"
	"github.com/stellar/go/network"
	"github.com/stellar/go/strkey"
	"github.com/stellar/go/txnbuild"
)

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "FAUCET"

// Default endpoints of the test network.
const (
	TestnetHorizon   = "https://horizon-testnet.stellar.org"
	TestnetFriendbot = "https://friendbot.stellar.org"
)

type Config struct {
	Network     Network     `mapstructure:"network" toml:"network" yaml:"network"`
	Asset       Asset       `mapstructure:"asset" toml:"asset" yaml:"asset"`
	Distributor Distributor `mapstructure:"distributor" toml:"distributor" yaml:"distributor"`
	Faucet      Faucet      `mapstructure:"faucet" toml:"faucet" yaml:"faucet"`
	HTTP        HTTP        `mapstructure:"http" toml:"http" yaml:"http"`
	Metrics     Metrics     `mapstructure:"metrics" toml:"metrics" yaml:"metrics"`
	Logging     Logging     `mapstructure:"logging" toml:"logging" yaml:"logging"`
}

type Network struct {
	HorizonURL   string        `mapstructure:"horizon-url" toml:"horizon-url" yaml:"horizon-url" validate:"required,url"`
	Passphrase   string        `mapstructure:"passphrase" toml:"passphrase" yaml:"passphrase"`
	FriendbotURL string        `mapstructure:"friendbot-url" toml:"friendbot-url,omitempty" yaml:"friendbot-url,omitempty" validate:"omitempty,url"`
	Timeout      time.Duration `mapstructure:"timeout" toml:"timeout" yaml:"timeout" validate:"gte=0"`
}

// Asset describes the distributed asset.
type Asset struct {
	Code   string `mapstructure:"code" toml:"code" yaml:"code" validate:"required,alphanum,min=1,max=12"`
	Name   string `mapstructure:"name" toml:"name,omitempty" yaml:"name,omitempty"`
	Issuer string `mapstructure:"issuer" toml:"issuer" yaml:"issuer" validate:"required,address"`
}

// Distributor holds the custody account's key.
type Distributor struct {
	Secret string `mapstructure:"secret" toml:"secret,omitempty" yaml:"secret,omitempty" validate:"omitempty,seed"`
}

type Faucet struct {
	// Amounts is the allow-list of amounts a requester can choose from.
	Amounts []string `mapstructure:"amounts" toml:"amounts" yaml:"amounts" validate:"min=1,dive,numeric"`

	// TrustlineLimit caps trustlines built by the faucet. Empty means the
	// maximum the network allows.
	TrustlineLimit string `mapstructure:"trustline-limit" toml:"trustline-limit,omitempty" yaml:"trustline-limit,omitempty" validate:"omitempty,numeric"`

	TrustlineWindow time.Duration `mapstructure:"trustline-window" toml:"trustline-window" yaml:"trustline-window" validate:"gt=0"`
	PaymentWindow   time.Duration `mapstructure:"payment-window" toml:"payment-window" yaml:"payment-window" validate:"gt=0"`
	BaseFee         int64         `mapstructure:"base-fee" toml:"base-fee" yaml:"base-fee" validate:"gte=100"`
}

type HTTP struct {
	Listen            string        `mapstructure:"listen" toml:"listen" yaml:"listen"`
	CorsOrigins       []string      `mapstructure:"cors-origins" toml:"cors-origins" yaml:"cors-origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read-header-timeout" toml:"read-header-timeout" yaml:"read-header-timeout"`
	ConnectionLimit   int           `mapstructure:"connection-limit" toml:"connection-limit" yaml:"connection-limit" validate:"gte=0"`
}

type Metrics struct {
	// Listen is the address of the metrics endpoint. Empty disables it.
	Listen string `mapstructure:"listen" toml:"listen,omitempty" yaml:"listen,omitempty"`
}

type Logging struct {
	Level  string `mapstructure:"level" toml:"level" yaml:"level"`
	Format string `mapstructure:"format" toml:"format" yaml:"format" validate:"omitempty,oneof=text plain json"`
}

// Default returns the configuration of a test network deployment without an
// asset.
func Default() *Config {
	return &Config{
		Network: Network{
			HorizonURL:   TestnetHorizon,
			Passphrase:   network.TestNetworkPassphrase,
			FriendbotURL: TestnetFriendbot,
			Timeout:      30 * time.Second,
		},
		Asset: Asset{
			Code: "TRUST",
		},
		Faucet: Faucet{
			Amounts:         []string{"10", "25", "50"},
			TrustlineWindow: 300 * time.Second,
			PaymentWindow:   30 * time.Second,
			BaseFee:         txnbuild.MinBaseFee,
		},
		HTTP: HTTP{
			Listen:            ":8080",
			ReadHeaderTimeout: 10 * time.Second,
			ConnectionLimit:   500,
		},
		Logging: Logging{
			Level:  "error;faucet=info;api=info",
			Format: "text",
		},
	}
}

// legacyEnv maps settings to the variable names of earlier deployments.
var legacyEnv = map[string]string{
	"asset.code":         "NEXT_PUBLIC_TOKEN_SYMBOL",
	"asset.name":         "NEXT_PUBLIC_TOKEN_NAME",
	"asset.issuer":       "STELLAR_ISSUER_PUBLIC_KEY",
	"distributor.secret": "STELLAR_DISTRIBUTOR_SECRET_KEY",
}

// Options are the options for [Load].
type Options struct {
	// File is an optional TOML, YAML, or JSON file. References of the form
	// ${VAR} in the file are expanded from the environment.
	File string

	// DotEnv is a .env file loaded into the environment, if it exists.
	// Variables that are already set take precedence. Defaults to .env next
	// to File, or in the working directory.
	DotEnv string
}

// Load loads the configuration from defaults, the file, and the environment,
// in increasing order of precedence, and validates it.
func Load(opts Options) (*Config, error) {
	err := loadDotEnv(opts)
	if err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, legacy := range legacyEnv {
		err = v.BindEnv(key, envName(key), legacy)
		if err != nil {
			return nil, errors.InternalError.WithFormat("bind %s: %w", key, err)
		}
	}

	if opts.File != "" {
		b, err := os.ReadFile(opts.File)
		if err != nil {
			return nil, errors.BadRequest.WithFormat("read config: %w", err)
		}
		v.SetConfigType(strings.TrimPrefix(filepath.Ext(opts.File), "."))
		err = v.ReadConfig(bytes.NewReader([]byte(os.ExpandEnv(string(b)))))
		if err != nil {
			return nil, errors.BadRequest.WithFormat("parse %s: %w", opts.File, err)
		}
	}

	c := new(Config)
	err = v.Unmarshal(c, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.DecodeHookFuncType(splitList),
	)))
	if err != nil {
		return nil, errors.BadRequest.WithFormat("unmarshal: %w", err)
	}

	err = c.Validate()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func loadDotEnv(opts Options) error {
	file := opts.DotEnv
	if file == "" {
		file = ".env"
		if opts.File != "" {
			file = filepath.Join(filepath.Dir(opts.File), file)
		}
	}

	err := godotenv.Load(file)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, os.ErrNotExist):
		if opts.DotEnv != "" {
			return errors.BadRequest.WithFormat("load %s: %w", file, err)
		}
		return nil
	default:
		return errors.BadRequest.WithFormat("load %s: %w", file, err)
	}
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(key))
}

// setDefaults registers every setting with viper so that environment
// variables are picked up by Unmarshal.
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("network.horizon-url", c.Network.HorizonURL)
	v.SetDefault("network.passphrase", c.Network.Passphrase)
	v.SetDefault("network.friendbot-url", c.Network.FriendbotURL)
	v.SetDefault("network.timeout", c.Network.Timeout)
	v.SetDefault("asset.code", c.Asset.Code)
	v.SetDefault("asset.name", c.Asset.Name)
	v.SetDefault("asset.issuer", c.Asset.Issuer)
	v.SetDefault("distributor.secret", c.Distributor.Secret)
	v.SetDefault("faucet.amounts", c.Faucet.Amounts)
	v.SetDefault("faucet.trustline-limit", c.Faucet.TrustlineLimit)
	v.SetDefault("faucet.trustline-window", c.Faucet.TrustlineWindow)
	v.SetDefault("faucet.payment-window", c.Faucet.PaymentWindow)
	v.SetDefault("faucet.base-fee", c.Faucet.BaseFee)
	v.SetDefault("http.listen", c.HTTP.Listen)
	v.SetDefault("http.cors-origins", c.HTTP.CorsOrigins)
	v.SetDefault("http.read-header-timeout", c.HTTP.ReadHeaderTimeout)
	v.SetDefault("http.connection-limit", c.HTTP.ConnectionLimit)
	v.SetDefault("metrics.listen", c.Metrics.Listen)
	v.SetDefault("logging.level", c.Logging.Level)
	v.SetDefault("logging.format", c.Logging.Format)
}

var validate = func() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("address", func(fl validator.FieldLevel) bool {
		return strkey.IsValidEd25519PublicKey(fl.Field().String())
	})
	_ = v.RegisterValidation("seed", func(fl validator.FieldLevel) bool {
		_, err := keypair.ParseFull(fl.Field().String())
		return err == nil
	})
	return v
}()

// Validate checks the configuration.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err != nil {
		return errors.BadRequest.WithFormat("invalid configuration: %w", err)
	}

	_, err = c.AllowedAmounts()
	return err
}

// LedgerAsset returns the configured asset.
func (c *Config) LedgerAsset() ledger.Asset {
	return ledger.Asset{Code: c.Asset.Code, Issuer: c.Asset.Issuer}
}

// splitList decodes a comma-separated environment value, such as
// FAUCET_HTTP_CORS_ORIGINS="https://a, https://b", into a trimmed list.
func splitList(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice {
		return data, nil
	}
	s := data.(string)
	if s == "" {
		return []string{}, nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts, nil
}

// AllowedAmounts parses the amount allow-list.
func (c *Config) AllowedAmounts() ([]decimal.Decimal, error) {
	amounts := make([]decimal.Decimal, len(c.Faucet.Amounts))
	for i, s := range c.Faucet.Amounts {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, errors.BadRequest.WithFormat("amount %q: %w", s, err)
		}
		err = ledger.ValidateAmount(d)
		if err != nil {
			return nil, errors.BadRequest.WithFormat("invalid configuration: %w", err)
		}
		amounts[i] = d
	}
	return amounts, nil
}

// Redacted returns a copy with secrets removed.
func (c *Config) Redacted() *Config {
	d := *c
	if d.Distributor.Secret != "" {
		d.Distributor.Secret = "<redacted>"
	}
	return &d
}

// SaveTOML writes the configuration as TOML.
func (c *Config) SaveTOML(file string) error {
	f, err := os.OpenFile(file, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return errors.BadRequest.WithFormat("create %s: %w", file, err)
	}
	defer f.Close()

	err = c.Text(f)
	if err != nil {
		return errors.EncodingError.WithFormat("encode %s: %w", file, err)
	}
	return nil
}

// Text writes the configuration as TOML.
func (c *Config) Text(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
