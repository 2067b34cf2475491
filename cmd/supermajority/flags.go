// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for registry databases",
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a YAML config file",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 3,
		Usage: "log verbosity (0-5)",
	}
	logFormatFlag = cli.StringFlag{
		Name:  "log-format",
		Value: "terminal",
		Usage: "log output format (terminal|logfmt|json)",
	}
	fromFlag = cli.StringFlag{
		Name:  "from",
		Usage: "account sending the vote, as a hexadecimal string",
	}
	contractAddressFlag = cli.StringFlag{
		Name:  "contract-address",
		Value: defaultContractAddress,
		Usage: "address of the validator management contract",
	}
	metricsFileFlag = cli.StringFlag{
		Name:  "metrics-file",
		Usage: "write prometheus metrics to this file on exit",
	}
	cacheFlag = cli.IntFlag{
		Name:  "cache",
		Value: defaultCacheMB,
		Usage: "megabytes of ram allocated to the registry database",
	}

	validatorsFlag = cli.StringFlag{
		Name:  "validators",
		Value: "initialValidators.txt",
		Usage: "file with one validator address per line",
	}
	adminFlag = cli.StringFlag{
		Name:  "admin",
		Usage: "admin account, allowed to add validators without a vote",
	}
	accountFlag = cli.StringFlag{
		Name:  "account",
		Usage: "only events sent by or concerning this account",
	}
	kindFlag = cli.StringFlag{
		Name:  "kind",
		Usage: "only events of this kind (vote|validator)",
	}
	descFlag = cli.BoolFlag{
		Name:  "desc",
		Usage: "list the latest events first",
	}
	limitFlag = cli.Uint64Flag{
		Name:  "limit",
		Usage: "maximum number of events to list",
	}
	outFlag = cli.StringFlag{
		Name:  "out",
		Usage: "write the genesis fragment to this file instead of stdout",
	}
)
