// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package registry implements the supermajority validator contract: validators vote to add
// or remove an account and the change applies once more than half of them agree.
package registry

import (
	"slices"
	"sync"

	"github.com/vechain/supermajority/log"
	"github.com/vechain/supermajority/thor"
)

var logger = log.WithContext("pkg", "registry")

// Registry holds the ordered validator list, the admin and the pending votes.
// Every mutating method runs under an exclusive lock and either applies completely
// or returns an *Error and changes nothing.
type Registry struct {
	mu sync.RWMutex

	admin      thor.Address
	validators []thor.Address
	members    map[thor.Address]struct{}
	ledger     *voteLedger
	layout     *layout
	result     *Result
}

// New creates a registry with the initial validators and admin.
func New(validators []thor.Address, admin thor.Address) (*Registry, error) {
	if len(validators) == 0 {
		return nil, newError(InvalidConfiguration, "validator list cannot be empty")
	}
	if admin.IsZero() {
		return nil, newError(InvalidConfiguration, "admin cannot be the zero address")
	}
	members := make(map[thor.Address]struct{}, len(validators))
	for _, v := range validators {
		if v.IsZero() {
			return nil, newError(InvalidConfiguration, "validator cannot be the zero address")
		}
		if _, ok := members[v]; ok {
			return nil, newError(InvalidConfiguration, "duplicate validator %v", v)
		}
		members[v] = struct{}{}
	}

	validators = slices.Clone(validators)
	metricValidators().Set(int64(len(validators)))
	return &Registry{
		admin:      admin,
		validators: validators,
		members:    members,
		ledger:     newVoteLedger(),
		layout:     newLayout(validators),
	}, nil
}

func (r *Registry) isValidator(addr thor.Address) bool {
	_, ok := r.members[addr]
	return ok
}

func reject(err *Error) (*Receipt, error) {
	metricRejectedCounter().AddWithLabel(1, map[string]string{"kind": err.Kind.String()})
	return nil, err
}

// VoteToAdd casts voter's vote to add candidate to the validators.
func (r *Registry) VoteToAdd(candidate, voter thor.Address) (*Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isValidator(voter) {
		return reject(ErrUnauthorized)
	}
	if candidate.IsZero() {
		return reject(ErrInvalidAddress)
	}
	if r.isValidator(candidate) {
		return reject(ErrAlreadyValidator)
	}
	return r.vote(candidate, Add, voter), nil
}

// VoteToRemove casts voter's vote to remove candidate from the validators.
// The last validator can never be removed.
func (r *Registry) VoteToRemove(candidate, voter thor.Address) (*Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isValidator(voter) {
		return reject(ErrUnauthorized)
	}
	if candidate.IsZero() {
		return reject(ErrInvalidAddress)
	}
	if len(r.validators) == 1 {
		return reject(ErrEmptyValidatorSet)
	}
	if !r.isValidator(candidate) {
		return reject(ErrNotValidator)
	}
	return r.vote(candidate, Remove, voter), nil
}

// vote records the vote and applies the change once the supermajority of the
// current validator count is reached.
func (r *Registry) vote(candidate thor.Address, direction Direction, voter thor.Address) *Receipt {
	count, needed := r.ledger.record(candidate, direction, voter, len(r.validators))
	metricVoteCounter().AddWithLabel(1, map[string]string{"direction": direction.String(), "event": "cast"})

	receipt := &Receipt{
		Votes: []*VoteEvent{{
			VotingAccount:   voter,
			VoteToAdd:       direction == Add,
			AccountVotedFor: candidate,
			NumVotes:        count,
			NumVotesNeeded:  needed,
		}},
	}
	result := &Result{
		Voter:          voter,
		Candidate:      candidate,
		Direction:      direction,
		NumVotes:       count,
		NumVotesNeeded: needed,
	}
	logger.Debug("vote cast", "voter", voter, "direction", direction, "candidate", candidate, "votes", count, "needed", needed)

	if count >= needed {
		if direction == Add {
			r.add(candidate)
		} else {
			r.remove(candidate)
		}
		receipt.Validator = &ValidatorEvent{
			ByAccount:     voter,
			Added:         direction == Add,
			Validator:     candidate,
			NumValidators: uint64(len(r.validators)),
		}
		result.Applied = true
		metricValidatorChanges().AddWithLabel(1, map[string]string{"direction": direction.String(), "by": "vote"})
	}
	result.NumValidators = uint64(len(r.validators))
	r.result = result
	return receipt
}

func (r *Registry) add(candidate thor.Address) {
	r.layout.push(candidate, len(r.validators))
	r.validators = append(r.validators, candidate)
	r.members[candidate] = struct{}{}
	r.ledger.clear(candidate)

	metricValidators().Set(int64(len(r.validators)))
	logger.Info("validator added", "validator", candidate, "count", len(r.validators))
}

func (r *Registry) remove(candidate thor.Address) {
	i := slices.Index(r.validators, candidate)
	r.layout.remove(r.validators, i)
	r.validators = slices.Delete(r.validators, i, i+1)
	delete(r.members, candidate)
	r.ledger.clear(candidate)
	r.ledger.purgeVoter(candidate)

	metricValidators().Set(int64(len(r.validators)))
	logger.Info("validator removed", "validator", candidate, "count", len(r.validators))
}

// RemoveVote withdraws voter's pending votes for candidate, in whichever direction they were cast.
func (r *Registry) RemoveVote(candidate, voter thor.Address) (*Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isValidator(voter) {
		return reject(ErrUnauthorized)
	}
	if candidate.IsZero() {
		return reject(ErrInvalidAddress)
	}

	needed := Supermajority(len(r.validators))
	receipt := &Receipt{}
	for _, direction := range []Direction{Add, Remove} {
		if !r.ledger.removeVoter(candidate, direction, voter) {
			continue
		}
		count := r.ledger.count(candidate, direction)
		receipt.Votes = append(receipt.Votes, &VoteEvent{
			VotingAccount:   voter,
			VoteToAdd:       direction == Add,
			AccountVotedFor: candidate,
			VoteRemoved:     true,
			NumVotes:        count,
			NumVotesNeeded:  needed,
		})
		r.result = &Result{
			Voter:          voter,
			Candidate:      candidate,
			Direction:      direction,
			VoteRemoved:    true,
			NumVotes:       count,
			NumVotesNeeded: needed,
			NumValidators:  uint64(len(r.validators)),
		}
		metricVoteCounter().AddWithLabel(1, map[string]string{"direction": direction.String(), "event": "removed"})
		logger.Debug("vote removed", "voter", voter, "direction", direction, "candidate", candidate, "votes", count)
	}
	if len(receipt.Votes) == 0 {
		return reject(ErrNotFound)
	}
	return receipt, nil
}

// AdminVoteToAdd lets the admin add candidate without a vote.
func (r *Registry) AdminVoteToAdd(candidate, sender thor.Address) (*Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sender != r.admin {
		return reject(ErrAdminOnly)
	}
	if candidate.IsZero() {
		return reject(ErrInvalidAddress)
	}
	if r.isValidator(candidate) {
		return reject(ErrAlreadyValidator)
	}

	r.add(candidate)
	r.result = &Result{
		Voter:         sender,
		Candidate:     candidate,
		Direction:     Add,
		ByAdmin:       true,
		Applied:       true,
		NumValidators: uint64(len(r.validators)),
	}
	metricValidatorChanges().AddWithLabel(1, map[string]string{"direction": Add.String(), "by": "admin"})

	return &Receipt{
		Validator: &ValidatorEvent{
			ByAccount:     sender,
			Added:         true,
			Validator:     candidate,
			NumValidators: uint64(len(r.validators)),
		},
	}, nil
}

// Validators returns the validators in insertion order.
func (r *Registry) Validators() []thor.Address {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.validators)
}

// IsValidator returns whether addr is a validator.
func (r *Registry) IsValidator(addr thor.Address) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.isValidator(addr)
}

// Admin returns the admin account.
func (r *Registry) Admin() thor.Address {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.admin
}

// Result returns the outcome of the latest vote related operation,
// false if there was none yet.
func (r *Registry) Result() (Result, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.result == nil {
		return Result{}, false
	}
	return *r.result, true
}

// PendingVotes returns who currently votes to add and to remove candidate.
func (r *Registry) PendingVotes(candidate thor.Address) (add, remove []thor.Address) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.ledger.voters(candidate, Add), r.ledger.voters(candidate, Remove)
}

// Storage returns the contract storage the validator list occupies.
func (r *Registry) Storage() map[thor.Bytes32]thor.Bytes32 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.layout.snapshot()
}

// StorageAt returns a single storage slot, zero if unset.
func (r *Registry) StorageAt(key thor.Bytes32) thor.Bytes32 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.layout.get(key)
}
