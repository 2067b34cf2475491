// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package slot derives storage positions the way the EVM lays out Solidity state variables.
//
// A state variable declared at position p occupies slot p. A dynamic array at p keeps its
// length in slot p and its elements from keccak256(p) onwards, one per slot. A mapping at p
// keeps the value for key k at keccak256(pad32(k) ++ p).
package slot

import (
	"github.com/holiman/uint256"
	"github.com/vechain/supermajority/thor"
)

// Key is anything usable as a mapping key.
type Key interface {
	Bytes() []byte
}

// Pos returns the storage position of a state variable declared at index n.
func Pos(n uint64) thor.Bytes32 {
	return uint256.NewInt(n).Bytes32()
}

// Array returns the slot holding element index of the dynamic array declared at base.
// The addition wraps at 2^256, as it does in the EVM.
func Array(base thor.Bytes32, index uint64) thor.Bytes32 {
	start := thor.Keccak256(base.Bytes())

	var pos uint256.Int
	pos.SetBytes32(start[:])
	pos.AddUint64(&pos, index)
	return pos.Bytes32()
}

// Mapping returns the slot holding the value for key in the mapping declared at base.
// Keys shorter than 32 bytes are left-padded with zeros.
func Mapping(key Key, base thor.Bytes32) thor.Bytes32 {
	padded := thor.BytesToBytes32(key.Bytes())
	return thor.Keccak256(padded.Bytes(), base.Bytes())
}

// Uint encodes n as a big-endian 32-byte word.
func Uint(n uint64) thor.Bytes32 {
	return Pos(n)
}

// Bool encodes b as a 32-byte word, 1 for true.
func Bool(b bool) thor.Bytes32 {
	if b {
		return Uint(1)
	}
	return thor.Bytes32{}
}

// Address encodes addr as a 32-byte word, left-padded with zeros.
func Address(addr thor.Address) thor.Bytes32 {
	return thor.BytesToBytes32(addr.Bytes())
}
