// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"maps"

	"github.com/vechain/supermajority/cache"
	"github.com/vechain/supermajority/slot"
	"github.com/vechain/supermajority/thor"
)

// Storage positions of the governance contract state variables.
var (
	ValidatorsPos = slot.Pos(0) // address[] validators
	MembersPos    = slot.Pos(1) // mapping(address => bool) isValidator
)

// keccak of the membership mapping key, per address
var memberSlots = func() *cache.LRU[thor.Address, thor.Bytes32] {
	c, err := cache.NewLRU[thor.Address, thor.Bytes32](4096)
	if err != nil {
		panic(err)
	}
	return c
}()

func memberSlot(addr thor.Address) thor.Bytes32 {
	return memberSlots.GetOrLoad(addr, func(addr thor.Address) thor.Bytes32 {
		return slot.Mapping(addr, MembersPos)
	})
}

// layout mirrors the validator list into contract storage slots.
// Zero values are never kept, writing zero clears the slot as SSTORE does.
type layout struct {
	slots map[thor.Bytes32]thor.Bytes32
	dirty map[thor.Bytes32]struct{}
}

func newLayout(validators []thor.Address) *layout {
	l := &layout{
		slots: make(map[thor.Bytes32]thor.Bytes32),
		dirty: make(map[thor.Bytes32]struct{}),
	}
	l.set(ValidatorsPos, slot.Uint(uint64(len(validators))))
	for i, v := range validators {
		l.set(slot.Array(ValidatorsPos, uint64(i)), slot.Address(v))
		l.set(memberSlot(v), slot.Bool(true))
	}
	return l
}

func (l *layout) set(key, value thor.Bytes32) {
	if value.IsZero() {
		delete(l.slots, key)
	} else {
		l.slots[key] = value
	}
	l.dirty[key] = struct{}{}
}

// push mirrors validators = append(validators, addr), where n is the length before.
func (l *layout) push(addr thor.Address, n int) {
	l.set(slot.Array(ValidatorsPos, uint64(n)), slot.Address(addr))
	l.set(ValidatorsPos, slot.Uint(uint64(n+1)))
	l.set(memberSlot(addr), slot.Bool(true))
}

// remove mirrors removing prev[index] while keeping the order of the rest.
func (l *layout) remove(prev []thor.Address, index int) {
	n := len(prev)
	for i := index; i < n-1; i++ {
		l.set(slot.Array(ValidatorsPos, uint64(i)), slot.Address(prev[i+1]))
	}
	l.set(slot.Array(ValidatorsPos, uint64(n-1)), thor.Bytes32{})
	l.set(ValidatorsPos, slot.Uint(uint64(n-1)))
	l.set(memberSlot(prev[index]), thor.Bytes32{})
}

func (l *layout) get(key thor.Bytes32) thor.Bytes32 {
	return l.slots[key]
}

func (l *layout) snapshot() map[thor.Bytes32]thor.Bytes32 {
	return maps.Clone(l.slots)
}

// flush hands every slot written since the last clean to fn.
func (l *layout) flush(fn func(key, value thor.Bytes32) error) error {
	for key := range l.dirty {
		if err := fn(key, l.slots[key]); err != nil {
			return err
		}
	}
	return nil
}

// clean marks all slots as persisted.
func (l *layout) clean() {
	clear(l.dirty)
}
