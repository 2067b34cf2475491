// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/vechain/supermajority/eventdb"
	"github.com/vechain/supermajority/genesis"
	"github.com/vechain/supermajority/lvldb"
	"github.com/vechain/supermajority/registry"
	"github.com/vechain/supermajority/thor"
	cli "gopkg.in/urfave/cli.v1"
)

var commands = []cli.Command{
	{
		Name:   "init",
		Usage:  "create the registry with the initial validators",
		Flags:  []cli.Flag{validatorsFlag, adminFlag},
		Action: initAction,
	},
	{
		Name:      "addValidator",
		Usage:     "vote for a node to be added as new validator",
		ArgsUsage: "<account>",
		Action:    voteAction(voteToAdd),
	},
	{
		Name:      "removeValidator",
		Usage:     "vote for a validator to be removed",
		ArgsUsage: "<account>",
		Action:    voteAction(voteToRemove),
	},
	{
		Name:      "removeVote",
		Usage:     "remove the vote for an account",
		ArgsUsage: "<account>",
		Action:    voteAction(removeVote),
	},
	{
		Name:      "adminVote",
		Usage:     "add a validator as the admin, without a vote",
		ArgsUsage: "<account>",
		Action:    voteAction(adminVote),
	},
	{
		Name:   "getResult",
		Usage:  "get the result of the latest vote",
		Action: getResultAction,
	},
	{
		Name:   "getValidators",
		Usage:  "get current validators",
		Action: getValidatorsAction,
	},
	{
		Name:   "getAdmin",
		Usage:  "get current admin",
		Action: getAdminAction,
	},
	{
		Name:      "storage",
		Usage:     "print the contract storage as a genesis fragment, or a single slot",
		ArgsUsage: "[slot]",
		Action:    storageAction,
	},
	{
		Name:   "events",
		Usage:  "list the recorded Vote and Validator events",
		Flags:  []cli.Flag{accountFlag, kindFlag, descFlag, limitFlag},
		Action: eventsAction,
	},
	{
		Name:   "genesis",
		Usage:  "create the genesis fragment of the contract from a validator list",
		Flags:  []cli.Flag{validatorsFlag, outFlag},
		Action: genesisAction,
	},
}

func initAction(ctx *cli.Context) error {
	cfg := configOf(ctx)

	validators, err := readValidatorsFile(ctx.String(validatorsFlag.Name))
	if err != nil {
		return err
	}
	admin, err := parseHexAddress(adminFlag.Name, ctx.String(adminFlag.Name))
	if err != nil {
		return err
	}
	r, err := registry.New(validators, admin)
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	switch _, err := registry.Load(db); {
	case err == nil:
		return errors.Errorf("registry for contract %v already initialized in %v", cfg.contract, instanceDir(cfg))
	case !errors.Is(err, registry.ErrNotInitialized):
		return err
	}
	if err := r.Save(db); err != nil {
		return err
	}
	logger.Info("registry initialized", "contract", cfg.contract, "validators", len(validators), "admin", admin)
	fmt.Fprintf(ctx.App.Writer, "Initialized contract %v with %d validators, admin %v\n", cfg.contract, len(validators), admin)
	return nil
}

type vote struct {
	describe func(from, account thor.Address) string
	apply    func(r *registry.Registry, account, from thor.Address) (*registry.Receipt, error)
	done     string
}

var (
	voteToAdd = vote{
		describe: func(from, account thor.Address) string {
			return fmt.Sprintf("Account %v votes to add address %v to the validators", from, account)
		},
		apply: (*registry.Registry).VoteToAdd,
	}
	voteToRemove = vote{
		describe: func(from, account thor.Address) string {
			return fmt.Sprintf("Account %v votes to remove validator %v", from, account)
		},
		apply: (*registry.Registry).VoteToRemove,
	}
	removeVote = vote{
		describe: func(from, account thor.Address) string {
			return fmt.Sprintf("Account %v removes its vote for account %v", from, account)
		},
		apply: (*registry.Registry).RemoveVote,
	}
	adminVote = vote{
		describe: func(from, account thor.Address) string {
			return fmt.Sprintf("Account %v adds validator %v as admin", from, account)
		},
		apply: (*registry.Registry).AdminVoteToAdd,
		done:  "Admin successfully added the new validator",
	}
)

func voteAction(v vote) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		account, err := accountArg(ctx)
		if err != nil {
			return err
		}
		from, err := fromAccount(ctx)
		if err != nil {
			return err
		}
		w := ctx.App.Writer

		var receipt *registry.Receipt
		if err := withRegistry(ctx, func(r *registry.Registry, _ *lvldb.LevelDB) (bool, error) {
			fmt.Fprintln(w, v.describe(from, account))
			receipt, err = v.apply(r, account, from)
			if err != nil {
				return false, reverted(err)
			}
			return true, nil
		}); err != nil {
			return err
		}

		// saved, the change is final
		printReceipt(w, receipt)
		if v.done != "" {
			fmt.Fprintln(w, v.done)
		}
		if err := recordEvents(configOf(ctx), receipt); err != nil {
			logger.Error("change saved but missing from the event history", "err", err)
			return err
		}
		return nil
	}
}

func recordEvents(cfg *config, receipt *registry.Receipt) error {
	db, err := openEventDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	op, err := db.Insert(eventdb.NewEvents(receipt, uint64(time.Now().Unix())))
	if err != nil {
		return errors.Wrap(err, "record events")
	}
	logger.Debug("events recorded", "op", op)
	return nil
}

func eventsAction(ctx *cli.Context) error {
	filter := &eventdb.Filter{
		Kind:  eventdb.Kind(ctx.String(kindFlag.Name)),
		Order: eventdb.ASC,
	}
	switch filter.Kind {
	case "", eventdb.Vote, eventdb.Validator:
	default:
		return errors.Errorf("unknown event kind %q", filter.Kind)
	}
	if ctx.Bool(descFlag.Name) {
		filter.Order = eventdb.DESC
	}
	if s := ctx.String(accountFlag.Name); s != "" {
		account, err := parseHexAddress(accountFlag.Name, s)
		if err != nil {
			return err
		}
		filter.Account = &account
	}
	if limit := ctx.Uint64(limitFlag.Name); limit > 0 {
		filter.Options = &eventdb.Options{Limit: limit}
	}

	db, err := openEventDB(configOf(ctx))
	if err != nil {
		return err
	}
	defer db.Close()

	events, err := db.Filter(filter)
	if err != nil {
		return err
	}
	for _, ev := range events {
		printEvent(ctx.App.Writer, ev)
	}
	return nil
}

func getResultAction(ctx *cli.Context) error {
	return withRegistry(ctx, func(r *registry.Registry, _ *lvldb.LevelDB) (bool, error) {
		result, ok := r.Result()
		if !ok {
			fmt.Fprintln(ctx.App.Writer, "Result: no vote yet")
			return false, nil
		}
		fmt.Fprintf(ctx.App.Writer, "Result: %v\n", result)
		return false, nil
	})
}

func getValidatorsAction(ctx *cli.Context) error {
	return withRegistry(ctx, func(r *registry.Registry, _ *lvldb.LevelDB) (bool, error) {
		printValidators(ctx.App.Writer, r.Validators())
		return false, nil
	})
}

func getAdminAction(ctx *cli.Context) error {
	return withRegistry(ctx, func(r *registry.Registry, _ *lvldb.LevelDB) (bool, error) {
		fmt.Fprintf(ctx.App.Writer, "Admin: %v\n", r.Admin())
		return false, nil
	})
}

func storageAction(ctx *cli.Context) error {
	cfg := configOf(ctx)
	return withRegistry(ctx, func(r *registry.Registry, db *lvldb.LevelDB) (bool, error) {
		if ctx.NArg() > 0 {
			key, err := thor.ParseBytes32(ctx.Args().First())
			if err != nil {
				return false, errors.Wrap(err, "slot")
			}
			value, err := registry.ReadStorage(db, key)
			if err != nil {
				return false, err
			}
			fmt.Fprintln(ctx.App.Writer, value.Hex())
			return false, nil
		}

		f, err := cfg.fragment(genesis.Storage(r.Storage()))
		if err != nil {
			return false, err
		}
		if err := genesis.WriteFragment(ctx.App.Writer, cfg.contract, f); err != nil {
			return false, err
		}
		fmt.Fprintln(ctx.App.Writer)
		return false, nil
	})
}

func genesisAction(ctx *cli.Context) error {
	cfg := configOf(ctx)

	validators, err := readValidatorsFile(ctx.String(validatorsFlag.Name))
	if err != nil {
		return err
	}
	storage, err := genesis.EncodeChecked(validators)
	if err != nil {
		return err
	}
	f, err := cfg.fragment(storage)
	if err != nil {
		return err
	}

	var w io.Writer = ctx.App.Writer
	if out := ctx.String(outFlag.Name); out != "" {
		file, err := os.Create(out)
		if err != nil {
			return errors.Wrap(err, "create genesis fragment")
		}
		defer file.Close()
		w = file
	}
	if err := genesis.WriteFragment(w, cfg.contract, f); err != nil {
		return errors.Wrap(err, "write genesis fragment")
	}
	logger.Info("genesis fragment written", "validators", len(validators), "slots", len(storage))
	return nil
}

func readValidatorsFile(path string) ([]thor.Address, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open validators")
	}
	defer file.Close()

	validators, err := genesis.ReadValidators(file)
	if err != nil {
		return nil, errors.Wrapf(err, "read validators %v", path)
	}
	return validators, nil
}
