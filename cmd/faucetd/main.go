// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/Trustless-Work/Testnet-Faucet/internal/config"
	"github.com/Trustless-Work/Testnet-Faucet/internal/faucet"
	"github.com/Trustless-Work/Testnet-Faucet/internal/logging"
	. "github.com/Trustless-Work/Testnet-Faucet/internal/util/cmd"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/api/rest"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/ledger/horizon"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"github.com/stellar/go/keypair"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = cmd.Execute()
}

var cmd = &cobra.Command{
	Use:   "faucetd",
	Short: "Testnet token faucet server",
	Args:  cobra.NoArgs,
	Run:   run,
}

var cmdConfig = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration with secrets removed",
	Args:  cobra.NoArgs,
	Run:   printConfig,
}

var flag = struct {
	Config        string
	DotEnv        string
	LogLevel      string
	LogFormat     string
	Listen        string
	MetricsListen string
	CorsOrigins   []string
	Output        OutputFlags
}{}

func init() {
	cmd.AddCommand(cmdConfig)

	cmd.PersistentFlags().StringVarP(&flag.Config, "config", "c", "", "Configuration file (TOML, YAML, or JSON)")
	cmd.PersistentFlags().StringVar(&flag.DotEnv, "env-file", "", "Environment file to load (default .env)")
	cmd.Flags().StringVar(&flag.LogLevel, "log-level", "", "Log level rules, for example error;faucet=debug")
	cmd.Flags().StringVar(&flag.LogFormat, "log-format", "", "Log format (text or json)")
	cmd.Flags().StringVarP(&flag.Listen, "listen", "l", "", "HTTP listening address")
	cmd.Flags().StringVar(&flag.MetricsListen, "metrics-listen", "", "Metrics listening address")
	cmd.Flags().StringSliceVar(&flag.CorsOrigins, "cors-origin", nil, "Allowed CORS origins")
	flag.Output.Register(cmdConfig.Flags())
}

func loadConfig(c *cobra.Command) *config.Config {
	cfg, err := config.Load(config.Options{File: flag.Config, DotEnv: flag.DotEnv})
	Check(err)

	if c.Flags().Changed("log-level") {
		cfg.Logging.Level = flag.LogLevel
	}
	if c.Flags().Changed("log-format") {
		cfg.Logging.Format = flag.LogFormat
	}
	if c.Flags().Changed("listen") {
		cfg.HTTP.Listen = flag.Listen
	}
	if c.Flags().Changed("metrics-listen") {
		cfg.Metrics.Listen = flag.MetricsListen
	}
	if c.Flags().Changed("cors-origin") {
		cfg.HTTP.CorsOrigins = flag.CorsOrigins
	}
	return cfg
}

func printConfig(c *cobra.Command, _ []string) {
	cfg := loadConfig(c)
	Check(Print(c.OutOrStdout(), flag.Output.Format(), cfg.Redacted()))
}

func run(c *cobra.Command, _ []string) {
	ctx := ContextForMainProcess(context.Background())
	cfg := loadConfig(c)

	logger, err := logging.Setup(logging.Options{
		Format: cfg.Logging.Format,
		Level:  cfg.Logging.Level,
	})
	Check(err)

	var custody *keypair.Full
	if cfg.Distributor.Secret == "" {
		Warnf("No distributor key is configured, distribution is disabled")
	} else {
		custody, err = keypair.ParseFull(cfg.Distributor.Secret)
		Checkf(err, "distributor key")
	}

	amounts, err := cfg.AllowedAmounts()
	Check(err)

	svc, err := faucet.New(faucet.Options{
		Logger: logger,
		Ledger: horizon.New(horizon.Options{
			URL:     cfg.Network.HorizonURL,
			Timeout: cfg.Network.Timeout,
		}),
		Asset:             cfg.LedgerAsset(),
		AssetName:         cfg.Asset.Name,
		NetworkPassphrase: cfg.Network.Passphrase,
		Custody:           custody,
		Amounts:           amounts,
		TrustlineLimit:    cfg.Faucet.TrustlineLimit,
		TrustlineWindow:   cfg.Faucet.TrustlineWindow,
		PaymentWindow:     cfg.Faucet.PaymentWindow,
		BaseFee:           cfg.Faucet.BaseFee,
	})
	Check(err)

	api, err := rest.NewHandler(rest.Options{Logger: logger, Faucet: svc})
	Check(err)

	c2 := cors.New(cors.Options{
		AllowedOrigins: cfg.HTTP.CorsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", rest.RequestIDHeader},
	})
	server := &http.Server{
		Handler:           c2.Handler(api),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
	}

	errg, ctx := errgroup.WithContext(ctx)
	l, err := net.Listen("tcp", cfg.HTTP.Listen)
	Check(err)
	l = limitConns(l, cfg.HTTP.ConnectionLimit)
	slog.Info("Serving the faucet", "module", "faucet", "address", l.Addr(), "asset", cfg.LedgerAsset(), "custody", svc.CustodyAddress())
	serve(ctx, errg, server, l)

	if cfg.Metrics.Listen != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metrics := &http.Server{
			Handler:           mux,
			ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		}
		l, err := net.Listen("tcp", cfg.Metrics.Listen)
		Check(err)
		slog.Info("Serving metrics", "module", "faucet", "address", l.Addr())
		serve(ctx, errg, metrics, l)
	}

	err = errg.Wait()
	if err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

// serve runs the server until it fails or ctx is canceled, then shuts it
// down.
func serve(ctx context.Context, errg *errgroup.Group, server *http.Server, l net.Listener) {
	errg.Go(func() error {
		err := server.Serve(l)
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	})

	errg.Go(func() error {
		<-ctx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	})
}
