// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vechain/supermajority/thor"
)

func TestSupermajority(t *testing.T) {
	tests := []struct {
		n    int
		want uint64
	}{
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 3},
		{5, 3},
		{6, 4},
		{7, 4},
		{100, 51},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Supermajority(tt.n), "n=%d", tt.n)
	}

	// smallest k with 2k > n
	for n := 1; n <= 200; n++ {
		k := Supermajority(n)
		assert.Greater(t, 2*k, uint64(n))
		assert.LessOrEqual(t, 2*(k-1), uint64(n))
	}
}

func TestVoteLedger(t *testing.T) {
	var (
		a = thor.BytesToAddress([]byte("a"))
		b = thor.BytesToAddress([]byte("b"))
		c = thor.BytesToAddress([]byte("c"))
		x = thor.BytesToAddress([]byte("x"))
	)
	l := newVoteLedger()

	count, needed := l.record(x, Add, a, 4)
	assert.Equal(t, uint64(1), count)
	assert.Equal(t, uint64(3), needed)

	// idempotent per voter
	count, _ = l.record(x, Add, a, 4)
	assert.Equal(t, uint64(1), count)

	count, _ = l.record(x, Add, b, 4)
	assert.Equal(t, uint64(2), count)

	// directions are independent
	count, needed = l.record(x, Remove, c, 5)
	assert.Equal(t, uint64(1), count)
	assert.Equal(t, uint64(3), needed)
	assert.Equal(t, []thor.Address{a, b}, l.voters(x, Add))

	assert.False(t, l.removeVoter(x, Remove, a))
	assert.True(t, l.removeVoter(x, Add, a))
	assert.False(t, l.removeVoter(x, Add, a))
	assert.Equal(t, uint64(1), l.count(x, Add))

	// an emptied entry is dropped
	assert.True(t, l.removeVoter(x, Remove, c))
	assert.Len(t, l.pending, 1)

	l.clear(x)
	assert.Empty(t, l.pending)
}

func TestVoteLedgerPurge(t *testing.T) {
	var (
		a = thor.BytesToAddress([]byte("a"))
		b = thor.BytesToAddress([]byte("b"))
		x = thor.BytesToAddress([]byte("x"))
		y = thor.BytesToAddress([]byte("y"))
	)
	l := newVoteLedger()
	l.record(x, Add, a, 3)
	l.record(x, Add, b, 3)
	l.record(y, Remove, a, 3)

	l.purgeVoter(a)
	assert.Equal(t, []thor.Address{b}, l.voters(x, Add))
	assert.Zero(t, l.count(y, Remove))
	assert.Equal(t, []pendingEntry{{x, Add, []thor.Address{b}}}, l.entries())
}
