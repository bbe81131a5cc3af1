// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/Trustless-Work/Testnet-Faucet/internal/config"
	"github.com/Trustless-Work/Testnet-Faucet/internal/logging"
	. "github.com/Trustless-Work/Testnet-Faucet/internal/util/cmd"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/ledger/horizon"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/stellar/go/keypair"
)

func main() {
	_ = cmd.ExecuteContext(ContextForMainProcess(context.Background()))
}

var cmd = &cobra.Command{
	Use:   "faucet-bootstrap",
	Short: "Create and fund the issuer and distributor of a testnet faucet",
	Long: `Create and fund the issuer and distributor of a testnet faucet.

Generates keys (unless they are supplied), funds both accounts with friendbot,
opens the distributor's trustline, issues the supply to the distributor, and
writes the settings the faucet server needs.`,
	Args: cobra.NoArgs,
	Run:  run,
}

var flag = struct {
	Horizon           string
	Friendbot         string
	Passphrase        string
	Code              string
	Name              string
	Supply            string
	IssuerSecret      string
	DistributorSecret string
	EnvFile           string
	ConfigFile        string
	LogLevel          string
	Output            OutputFlags
}{}

func init() {
	def := config.Default()
	cmd.Flags().StringVar(&flag.Horizon, "horizon", def.Network.HorizonURL, "Horizon endpoint")
	cmd.Flags().StringVar(&flag.Friendbot, "friendbot", def.Network.FriendbotURL, "Friendbot endpoint (empty to require existing accounts)")
	cmd.Flags().StringVar(&flag.Passphrase, "network", def.Network.Passphrase, "Network passphrase")
	cmd.Flags().StringVar(&flag.Code, "code", def.Asset.Code, "Asset code")
	cmd.Flags().StringVar(&flag.Name, "name", "", "Asset display name")
	cmd.Flags().StringVar(&flag.Supply, "supply", "1000000", "Amount issued to the distributor")
	cmd.Flags().StringVar(&flag.IssuerSecret, "issuer-secret", os.Getenv("STELLAR_ISSUER_SECRET_KEY"), "Issuer secret key (generated if empty)")
	cmd.Flags().StringVar(&flag.DistributorSecret, "distributor-secret", os.Getenv("STELLAR_DISTRIBUTOR_SECRET_KEY"), "Distributor secret key (generated if empty)")
	cmd.Flags().StringVar(&flag.EnvFile, "env-file", ".env", "Write the server's environment to this file (empty to skip)")
	cmd.Flags().StringVar(&flag.ConfigFile, "config-file", "", "Write the server's configuration to this TOML file")
	cmd.Flags().StringVar(&flag.LogLevel, "log-level", "error;bootstrap=info", "Log level rules")
	flag.Output.Register(cmd.Flags())
}

func loadOrGenerate(seed, name string) *keypair.Full {
	if seed == "" {
		Warnf("Generating a new %s key", name)
		return keypair.MustRandom()
	}
	kp, err := keypair.ParseFull(seed)
	Checkf(err, "%s key", name)
	return kp
}

func run(c *cobra.Command, _ []string) {
	logger, err := logging.Setup(logging.Options{Level: flag.LogLevel})
	Check(err)

	supply, err := decimal.NewFromString(flag.Supply)
	Checkf(err, "supply")

	plan := &Plan{
		Issuer:      loadOrGenerate(flag.IssuerSecret, "issuer"),
		Distributor: loadOrGenerate(flag.DistributorSecret, "distributor"),
		Code:        flag.Code,
		Supply:      supply,
	}

	b := &Bootstrapper{
		Logger:     logger,
		Ledger:     horizon.New(horizon.Options{URL: flag.Horizon}),
		Passphrase: flag.Passphrase,
	}
	if flag.Friendbot != "" {
		b.Funder = &horizon.Friendbot{URL: flag.Friendbot}
	}

	steps, err := b.Run(c.Context(), plan)
	if err != nil {
		// Print the keys so a repeated run can pick up where this one stopped
		printResult(c.ErrOrStderr(), plan, steps)
		Check(err)
	}

	cfg := configFor(plan)
	if flag.EnvFile != "" {
		Check(writeEnv(flag.EnvFile, cfg, plan))
		Successf(c.ErrOrStderr(), "Wrote %s", flag.EnvFile)
	}
	if flag.ConfigFile != "" {
		Check(cfg.SaveTOML(flag.ConfigFile))
		Successf(c.ErrOrStderr(), "Wrote %s", flag.ConfigFile)
	}
	printResult(c.OutOrStdout(), plan, steps)
}

func configFor(plan *Plan) *config.Config {
	cfg := config.Default()
	cfg.Network.HorizonURL = flag.Horizon
	cfg.Network.FriendbotURL = flag.Friendbot
	cfg.Network.Passphrase = flag.Passphrase
	cfg.Asset.Code = plan.Code
	cfg.Asset.Name = flag.Name
	cfg.Asset.Issuer = plan.Issuer.Address()
	cfg.Distributor.Secret = plan.Distributor.Seed()
	return cfg
}

// writeEnv writes the variables the server reads, under both the current and
// the legacy names.
func writeEnv(file string, cfg *config.Config, plan *Plan) error {
	env := map[string]string{
		"FAUCET_NETWORK_HORIZON_URL":     cfg.Network.HorizonURL,
		"FAUCET_NETWORK_PASSPHRASE":      cfg.Network.Passphrase,
		"FAUCET_ASSET_CODE":              cfg.Asset.Code,
		"FAUCET_ASSET_ISSUER":            cfg.Asset.Issuer,
		"FAUCET_DISTRIBUTOR_SECRET":      cfg.Distributor.Secret,
		"NEXT_PUBLIC_TOKEN_SYMBOL":       cfg.Asset.Code,
		"STELLAR_ISSUER_PUBLIC_KEY":      cfg.Asset.Issuer,
		"STELLAR_ISSUER_SECRET_KEY":      plan.Issuer.Seed(),
		"STELLAR_DISTRIBUTOR_PUBLIC_KEY": plan.Distributor.Address(),
		"STELLAR_DISTRIBUTOR_SECRET_KEY": cfg.Distributor.Secret,
	}
	if cfg.Asset.Name != "" {
		env["FAUCET_ASSET_NAME"] = cfg.Asset.Name
		env["NEXT_PUBLIC_TOKEN_NAME"] = cfg.Asset.Name
	}

	err := godotenv.Write(env, file)
	if err != nil {
		return err
	}
	return os.Chmod(file, 0600)
}

type result struct {
	Asset       string  `json:"asset" yaml:"asset"`
	Issuer      string  `json:"issuer" yaml:"issuer"`
	Distributor string  `json:"distributor" yaml:"distributor"`
	Steps       []*Step `json:"steps" yaml:"steps"`
}

func (r *result) Text(w io.Writer) error {
	var rows [][]string
	for _, s := range r.Steps {
		detail := s.Note
		if s.Result != nil {
			detail = s.Result.String()
		}
		rows = append(rows, []string{s.Name, detail})
	}
	Table(w, []string{"Step", "Result"}, rows)
	Table(w, []string{"Account", "Address"}, [][]string{
		{"Issuer", r.Issuer},
		{"Distributor", r.Distributor},
	})
	return nil
}

func printResult(w io.Writer, plan *Plan, steps []*Step) {
	r := &result{
		Asset:       plan.Asset().String(),
		Issuer:      plan.Issuer.Address(),
		Distributor: plan.Distributor.Address(),
		Steps:       steps,
	}
	err := Print(w, flag.Output.Format(), r)
	if err != nil {
		slog.Error("Failed to print the result", "error", err)
	}
	if flag.EnvFile == "" && flag.ConfigFile == "" {
		Warnf("No output file was written, the secret keys are:\n  issuer:      %s\n  distributor: %s",
			plan.Issuer.Seed(), plan.Distributor.Seed())
	}
}
