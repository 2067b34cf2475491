// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/elastic/gosigar"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/vechain/supermajority/eventdb"
	"github.com/vechain/supermajority/log"
	"github.com/vechain/supermajority/lvldb"
	"github.com/vechain/supermajority/registry"
	"github.com/vechain/supermajority/thor"
	cli "gopkg.in/urfave/cli.v1"
)

func initLogger(ctx *cli.Context, w io.Writer) error {
	var level slog.LevelVar
	level.Set(log.FromLegacyLevel(ctx.Int(verbosityFlag.Name)))

	var handler slog.Handler
	switch format := ctx.String(logFormatFlag.Name); format {
	case "terminal":
		useColor := false
		if f, ok := w.(*os.File); ok {
			useColor = (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) && os.Getenv("TERM") != "dumb"
		}
		handler = log.NewTerminalHandlerWithLevel(w, &level, useColor)
	case "logfmt":
		handler = log.LogfmtHandlerWithLevel(w, &level)
	case "json":
		handler = log.JSONHandlerWithLevel(w, &level)
	default:
		return errors.Errorf("unknown log format %q", format)
	}
	log.SetDefault(log.NewLogger(handler))
	return nil
}

// copy from go-ethereum
func defaultDataDir() string {
	if home := homeDir(); home != "" {
		switch runtime.GOOS {
		case "darwin":
			return filepath.Join(home, "Library", "Application Support", "org.vechain.supermajority")
		case "windows":
			return filepath.Join(home, "AppData", "Roaming", "org.vechain.supermajority")
		default:
			return filepath.Join(home, ".org.vechain.supermajority")
		}
	}
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// normalizeCacheSize keeps the db cache between the leveldb minimum and half of the physical ram.
func normalizeCacheSize(sizeMB int) int {
	if sizeMB < defaultCacheMB {
		sizeMB = defaultCacheMB
	}

	var mem gosigar.Mem
	if err := mem.Get(); err != nil {
		logger.Warn("failed to get total mem", "err", err)
		return sizeMB
	}
	if limitMB := int(mem.Total / 1024 / 1024 / 2); sizeMB > limitMB {
		logger.Warn("cache size(MB) limited", "limit", limitMB)
		return limitMB
	}
	return sizeMB
}

// instanceDir is where the registry of one contract lives under the data dir.
func instanceDir(cfg *config) string {
	return filepath.Join(cfg.DataDir, fmt.Sprintf("instance-%x", cfg.contract.Bytes()[12:]))
}

func openStore(cfg *config) (*lvldb.LevelDB, error) {
	dir := instanceDir(cfg)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.Wrapf(err, "create instance dir [%v]", dir)
	}
	path := filepath.Join(dir, "registry.db")
	db, err := lvldb.New(path, lvldb.Options{CacheSize: cfg.Cache})
	if err != nil {
		return nil, errors.Wrapf(err, "open registry database [%v]", path)
	}
	logger.Debug("registry database opened", "path", path)
	return db, nil
}

func openEventDB(cfg *config) (*eventdb.EventDB, error) {
	dir := instanceDir(cfg)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, errors.Wrapf(err, "create instance dir [%v]", dir)
	}
	path := filepath.Join(dir, "events.db")
	db, err := eventdb.New(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open event database [%v]", path)
	}
	return db, nil
}

// withRegistry loads the registry, runs fn and saves the registry back when
// fn asks for it.
func withRegistry(ctx *cli.Context, fn func(r *registry.Registry, db *lvldb.LevelDB) (save bool, err error)) error {
	cfg := configOf(ctx)
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	r, err := registry.Load(db)
	if err != nil {
		if errors.Is(err, registry.ErrNotInitialized) {
			return errors.Errorf("no registry for contract %v, run init first", cfg.contract)
		}
		return err
	}

	save, err := fn(r, db)
	if err != nil {
		return err
	}
	if save {
		return r.Save(db)
	}
	return nil
}

// parseHexAddress parses an address given as 40 hex digits with or without 0x prefix.
func parseHexAddress(name, s string) (thor.Address, error) {
	addr, err := thor.ParseAddress(s)
	if err != nil {
		msg := fmt.Sprintf("invalid hex string for %s: %s", name, s)
		digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
		if len(digits) != 2*len(thor.Address{}) {
			msg += fmt.Sprintf(", expected length is %d digits, actual length is %d digits", 2*len(thor.Address{}), len(digits))
		}
		return thor.Address{}, errors.New(msg)
	}
	return addr, nil
}

func accountArg(ctx *cli.Context) (thor.Address, error) {
	if ctx.NArg() != 1 {
		return thor.Address{}, errors.Errorf("%v expects exactly one <account> argument", ctx.Command.Name)
	}
	return parseHexAddress("account", ctx.Args().First())
}

func fromAccount(ctx *cli.Context) (thor.Address, error) {
	from := ctx.GlobalString(fromFlag.Name)
	if from == "" {
		return thor.Address{}, errors.Errorf("-%s is required to send a vote", fromFlag.Name)
	}
	return parseHexAddress(fromFlag.Name, from)
}

// reverted turns a rejected registry operation into the revert message.
func reverted(err error) error {
	if _, ok := registry.KindOf(err); ok {
		return errors.Errorf("execution reverted with revert reason:\n%v", err)
	}
	return err
}
