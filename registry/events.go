// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"fmt"

	"github.com/vechain/supermajority/thor"
)

// Direction is the change a pending vote works toward.
type Direction uint8

const (
	Add Direction = iota + 1
	Remove
)

func (d Direction) String() string {
	switch d {
	case Add:
		return "add"
	case Remove:
		return "remove"
	default:
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
}

// ValidatorEvent is emitted when the validator set actually changes.
type ValidatorEvent struct {
	ByAccount     thor.Address
	Added         bool
	Validator     thor.Address
	NumValidators uint64
}

// VoteEvent is emitted for every vote cast or withdrawn.
type VoteEvent struct {
	VotingAccount   thor.Address
	VoteToAdd       bool
	AccountVotedFor thor.Address
	VoteRemoved     bool
	NumVotes        uint64
	NumVotesNeeded  uint64
}

// Receipt collects the events emitted by one registry operation.
type Receipt struct {
	Votes     []*VoteEvent
	Validator *ValidatorEvent
}

// Result describes the outcome of the latest successful vote, vote withdrawal or admin vote.
type Result struct {
	Voter          thor.Address
	Candidate      thor.Address
	Direction      Direction
	VoteRemoved    bool
	ByAdmin        bool
	NumVotes       uint64
	NumVotesNeeded uint64
	Applied        bool
	NumValidators  uint64
}

func (r Result) String() string {
	switch {
	case r.ByAdmin:
		return fmt.Sprintf("admin %v added validator %v, %d active validators",
			r.Voter, r.Candidate, r.NumValidators)
	case r.Applied:
		return fmt.Sprintf("vote to %v %v passed with %d/%d votes, %d active validators",
			r.Direction, r.Candidate, r.NumVotes, r.NumVotesNeeded, r.NumValidators)
	case r.VoteRemoved:
		return fmt.Sprintf("%v withdrew vote to %v %v, %d/%d votes",
			r.Voter, r.Direction, r.Candidate, r.NumVotes, r.NumVotesNeeded)
	default:
		return fmt.Sprintf("vote to %v %v pending with %d/%d votes",
			r.Direction, r.Candidate, r.NumVotes, r.NumVotesNeeded)
	}
}
