// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"context"
	"os"

	"github.com/Trustless-Work/Testnet-Faucet/internal/logging"
	. "github.com/Trustless-Work/Testnet-Faucet/internal/util/cmd"
	"github.com/Trustless-Work/Testnet-Faucet/pkg/api/rest"
	"github.com/spf13/cobra"
	"github.com/stellar/go/network"
)

func main() {
	_ = cmd.ExecuteContext(ContextForMainProcess(context.Background()))
}

var cmd = &cobra.Command{
	Use:   "faucet",
	Short: "Request testnet tokens from a faucet",
	PersistentPreRun: func(*cobra.Command, []string) {
		_, err := logging.Setup(logging.Options{Level: flag.LogLevel})
		Check(err)
	},
}

var flag = struct {
	Server     string
	Passphrase string
	LogLevel   string
	Output     OutputFlags
}{}

func init() {
	server := os.Getenv("FAUCET_SERVER")
	if server == "" {
		server = "http://localhost:8080"
	}

	cmd.PersistentFlags().StringVarP(&flag.Server, "server", "s", server, "Faucet server")
	cmd.PersistentFlags().StringVar(&flag.Passphrase, "network", network.TestNetworkPassphrase, "Network passphrase, used when the server does not name one")
	cmd.PersistentFlags().StringVar(&flag.LogLevel, "log-level", "error", "Log level rules, for example error;flow=debug")
	flag.Output.Register(cmd.PersistentFlags())
}

func client() *rest.Client {
	return rest.NewClient(flag.Server)
}
