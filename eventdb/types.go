// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package eventdb

import (
	"github.com/vechain/supermajority/registry"
	"github.com/vechain/supermajority/thor"
)

type Kind string

const (
	Vote      Kind = "vote"
	Validator Kind = "validator"
)

type OrderType string

const (
	ASC  OrderType = "ASC"
	DESC OrderType = "DESC"
)

// Event is a stored Vote or Validator event. Op numbers the registry operation
// that emitted it, Index its position in the operation's receipt.
type Event struct {
	Op    uint64
	Index uint32
	Kind  Kind
	Time  uint64

	// voting account, or the account that applied the change
	Sender thor.Address
	// account voted for, or the validator added or removed
	Account thor.Address
	ToAdd   bool

	VoteRemoved    bool
	NumVotes       uint64
	NumVotesNeeded uint64
	NumValidators  uint64
}

// NewEvents flattens a receipt, votes first.
func NewEvents(receipt *registry.Receipt, time uint64) []*Event {
	var events []*Event
	for _, v := range receipt.Votes {
		events = append(events, &Event{
			Index:          uint32(len(events)),
			Kind:           Vote,
			Time:           time,
			Sender:         v.VotingAccount,
			Account:        v.AccountVotedFor,
			ToAdd:          v.VoteToAdd,
			VoteRemoved:    v.VoteRemoved,
			NumVotes:       v.NumVotes,
			NumVotesNeeded: v.NumVotesNeeded,
		})
	}
	if v := receipt.Validator; v != nil {
		events = append(events, &Event{
			Index:         uint32(len(events)),
			Kind:          Validator,
			Time:          time,
			Sender:        v.ByAccount,
			Account:       v.Validator,
			ToAdd:         v.Added,
			NumValidators: v.NumValidators,
		})
	}
	return events
}

// VoteEvent converts back a Vote event, nil for other kinds.
func (e *Event) VoteEvent() *registry.VoteEvent {
	if e.Kind != Vote {
		return nil
	}
	return &registry.VoteEvent{
		VotingAccount:   e.Sender,
		VoteToAdd:       e.ToAdd,
		AccountVotedFor: e.Account,
		VoteRemoved:     e.VoteRemoved,
		NumVotes:        e.NumVotes,
		NumVotesNeeded:  e.NumVotesNeeded,
	}
}

// ValidatorEvent converts back a Validator event, nil for other kinds.
func (e *Event) ValidatorEvent() *registry.ValidatorEvent {
	if e.Kind != Validator {
		return nil
	}
	return &registry.ValidatorEvent{
		ByAccount:     e.Sender,
		Added:         e.ToAdd,
		Validator:     e.Account,
		NumValidators: e.NumValidators,
	}
}

type Options struct {
	Offset uint64
	Limit  uint64
}

// Filter selects events. Account matches either side of an event.
type Filter struct {
	Account *thor.Address
	Kind    Kind
	Order   OrderType // default asc
	Options *Options
}
