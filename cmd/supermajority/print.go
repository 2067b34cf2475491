// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/vechain/supermajority/eventdb"
	"github.com/vechain/supermajority/registry"
	"github.com/vechain/supermajority/thor"
)

func printReceipt(w io.Writer, receipt *registry.Receipt) {
	if receipt == nil || (len(receipt.Votes) == 0 && receipt.Validator == nil) {
		fmt.Fprintln(w, "No event was received.")
		return
	}
	for _, ev := range receipt.Votes {
		printVote(w, ev)
	}
	if ev := receipt.Validator; ev != nil {
		printValidator(w, ev)
	}
}

func printVote(w io.Writer, ev *registry.VoteEvent) {
	direction := "remove"
	if ev.VoteToAdd {
		direction = "add"
	}
	action := "has voted"
	if ev.VoteRemoved {
		action = "removed their vote"
	}
	votes := fmt.Sprintf("are %d votes", ev.NumVotes)
	if ev.NumVotes == 1 {
		votes = "is 1 vote"
	}
	fmt.Fprintf(w, "Success: Account %v %s to %s account %v.\n", ev.VotingAccount, action, direction, ev.AccountVotedFor)
	fmt.Fprintf(w, "There %s now and %d needed to %s this account.\n", votes, ev.NumVotesNeeded, direction)
}

func printValidator(w io.Writer, ev *registry.ValidatorEvent) {
	added := "removed"
	if ev.Added {
		added = "added"
	}
	fmt.Fprintf(w, "Success: Account %v has %s validator %v. Active validators: %d.\n",
		ev.ByAccount, added, ev.Validator, ev.NumValidators)
}

func printValidators(w io.Writer, validators []thor.Address) {
	list := make([]string, 0, len(validators))
	for _, v := range validators {
		list = append(list, v.String())
	}
	fmt.Fprintf(w, "Validators: %s\n", strings.Join(list, ","))
}

func printEvent(w io.Writer, ev *eventdb.Event) {
	fmt.Fprintf(w, "#%d.%d %s ", ev.Op, ev.Index, time.Unix(int64(ev.Time), 0).UTC().Format(time.RFC3339))
	if vote := ev.VoteEvent(); vote != nil {
		printVote(w, vote)
	} else if validator := ev.ValidatorEvent(); validator != nil {
		printValidator(w, validator)
	}
}
