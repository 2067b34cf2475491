// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/vechain/supermajority/log"
	"github.com/vechain/supermajority/metrics"
	cli "gopkg.in/urfave/cli.v1"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "main")
)

const configKey = "config"

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Version = fullVersion()
	app.Name = "supermajority"
	app.Usage = "Validator management by supermajority vote"
	app.Copyright = "2025 VeChain Foundation <https://vechain.org/>"
	app.Flags = []cli.Flag{
		dataDirFlag,
		configFlag,
		verbosityFlag,
		logFormatFlag,
		fromFlag,
		contractAddressFlag,
		metricsFileFlag,
		cacheFlag,
	}
	app.Commands = commands
	app.Metadata = make(map[string]interface{})
	app.Before = before
	app.After = after
	app.Action = func(ctx *cli.Context) error {
		if ctx.NArg() > 0 {
			return errors.Errorf("unknown command %v", ctx.Args().First())
		}
		return cli.ShowAppHelp(ctx)
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func before(ctx *cli.Context) error {
	if err := initLogger(ctx, os.Stderr); err != nil {
		return err
	}
	if ctx.String(metricsFileFlag.Name) != "" {
		metrics.InitializePrometheusMetrics()
	}

	cfg, err := loadConfig(ctx.String(configFlag.Name))
	if err != nil {
		return err
	}
	// flags override the file
	if ctx.IsSet(dataDirFlag.Name) || cfg.DataDir == "" {
		cfg.DataDir = ctx.String(dataDirFlag.Name)
	}
	if ctx.IsSet(contractAddressFlag.Name) {
		cfg.ContractAddress = ctx.String(contractAddressFlag.Name)
	}
	if ctx.IsSet(cacheFlag.Name) {
		cfg.Cache = ctx.Int(cacheFlag.Name)
	}
	if err := cfg.resolve(); err != nil {
		return err
	}
	ctx.App.Metadata[configKey] = cfg
	return nil
}

func after(ctx *cli.Context) error {
	if path := ctx.String(metricsFileFlag.Name); path != "" {
		metrics.CollectProcessStats()
		return errors.Wrap(metrics.WriteTextfile(path), "write metrics")
	}
	return nil
}

func configOf(ctx *cli.Context) *config {
	return ctx.App.Metadata[configKey].(*config)
}
