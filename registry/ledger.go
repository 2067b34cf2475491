// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"bytes"
	"slices"

	"github.com/vechain/supermajority/thor"
)

// Supermajority returns the number of votes needed among n validators,
// the smallest k with 2k > n.
func Supermajority(n int) uint64 {
	return uint64(n/2 + 1)
}

type voteKey struct {
	candidate thor.Address
	direction Direction
}

// voteLedger tracks pending votes per candidate and direction.
// It holds no validator state, callers authorize before touching it.
type voteLedger struct {
	pending map[voteKey][]thor.Address
}

func newVoteLedger() *voteLedger {
	return &voteLedger{pending: make(map[voteKey][]thor.Address)}
}

// record adds voter to the pending vote. A repeated vote is not counted twice.
func (l *voteLedger) record(candidate thor.Address, direction Direction, voter thor.Address, numValidators int) (count, needed uint64) {
	key := voteKey{candidate, direction}
	voters := l.pending[key]
	if !slices.Contains(voters, voter) {
		voters = append(voters, voter)
		l.pending[key] = voters
	}
	return uint64(len(voters)), Supermajority(numValidators)
}

// removeVoter withdraws the vote and reports whether there was one.
func (l *voteLedger) removeVoter(candidate thor.Address, direction Direction, voter thor.Address) bool {
	key := voteKey{candidate, direction}
	voters := l.pending[key]
	i := slices.Index(voters, voter)
	if i < 0 {
		return false
	}
	voters = slices.Delete(voters, i, i+1)
	if len(voters) == 0 {
		delete(l.pending, key)
	} else {
		l.pending[key] = voters
	}
	return true
}

func (l *voteLedger) count(candidate thor.Address, direction Direction) uint64 {
	return uint64(len(l.pending[voteKey{candidate, direction}]))
}

func (l *voteLedger) voters(candidate thor.Address, direction Direction) []thor.Address {
	return slices.Clone(l.pending[voteKey{candidate, direction}])
}

// clear drops the pending votes of both directions.
func (l *voteLedger) clear(candidate thor.Address) {
	delete(l.pending, voteKey{candidate, Add})
	delete(l.pending, voteKey{candidate, Remove})
}

// purgeVoter withdraws every vote cast by voter.
func (l *voteLedger) purgeVoter(voter thor.Address) {
	for key := range l.pending {
		l.removeVoter(key.candidate, key.direction, voter)
	}
}

type pendingEntry struct {
	Candidate thor.Address
	Direction Direction
	Voters    []thor.Address
}

// entries lists pending votes ordered by candidate then direction.
func (l *voteLedger) entries() []pendingEntry {
	entries := make([]pendingEntry, 0, len(l.pending))
	for key, voters := range l.pending {
		entries = append(entries, pendingEntry{key.candidate, key.direction, slices.Clone(voters)})
	}
	slices.SortFunc(entries, func(a, b pendingEntry) int {
		if c := bytes.Compare(a.Candidate[:], b.Candidate[:]); c != 0 {
			return c
		}
		return int(a.Direction) - int(b.Direction)
	})
	return entries
}
