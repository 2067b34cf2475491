// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package genesis derives the genesis storage of the validator contract, so a network can
// start with its initial validators in place instead of adding them by transactions.
package genesis

import (
	"encoding/binary"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/vechain/supermajority/slot"
	"github.com/vechain/supermajority/thor"
)

var (
	validatorsPos = slot.Pos(0)
	membersPos    = slot.Pos(1)
)

// Storage is contract storage, slot to value.
type Storage map[thor.Bytes32]thor.Bytes32

var (
	_ json.Marshaler   = (Storage)(nil)
	_ json.Unmarshaler = (*Storage)(nil)
)

// Encode returns the storage the contract holds after validators were added in order.
// The list is expected to be free of duplicates, see EncodeChecked.
//
// For N validators it holds 2N+1 slots: the array length, the N array elements and the
// N membership flags.
func Encode(validators []thor.Address) Storage {
	storage := make(Storage, 2*len(validators)+1)
	storage[validatorsPos] = slot.Uint(uint64(len(validators)))
	for i, v := range validators {
		storage[slot.Array(validatorsPos, uint64(i))] = slot.Address(v)
		storage[slot.Mapping(v, membersPos)] = slot.Bool(true)
	}
	return storage
}

// EncodeChecked is Encode with the validator list checked first.
func EncodeChecked(validators []thor.Address) (Storage, error) {
	if len(validators) == 0 {
		return nil, errors.New("at least one validator")
	}
	seen := make(map[thor.Address]struct{}, len(validators))
	for _, v := range validators {
		if v.IsZero() {
			return nil, errors.New("zero address validator")
		}
		if _, ok := seen[v]; ok {
			return nil, errors.Errorf("duplicate validator %v", v)
		}
		seen[v] = struct{}{}
	}
	return Encode(validators), nil
}

// Decode reads the validator list back from storage.
func Decode(storage Storage) ([]thor.Address, error) {
	length := storage[validatorsPos]
	for _, b := range length[:24] {
		if b != 0 {
			return nil, errors.Errorf("validator count out of range: %v", length)
		}
	}
	n := binary.BigEndian.Uint64(length[24:])
	if n > uint64(len(storage)) {
		return nil, errors.Errorf("validator count %d exceeds storage size", n)
	}

	validators := make([]thor.Address, 0, n)
	for i := uint64(0); i < n; i++ {
		value, ok := storage[slot.Array(validatorsPos, i)]
		if !ok {
			return nil, errors.Errorf("missing validator %d", i)
		}
		addr := thor.BytesToAddress(value.Bytes())
		if storage[slot.Mapping(addr, membersPos)] != slot.Bool(true) {
			return nil, errors.Errorf("validator %v not flagged as member", addr)
		}
		validators = append(validators, addr)
	}
	return validators, nil
}

// MarshalJSON writes keys and values as 64 lower-case hex digits without prefix.
// encoding/json sorts the keys, so the output is deterministic.
func (s Storage) MarshalJSON() ([]byte, error) {
	m := make(map[string]string, len(s))
	for k, v := range s {
		m[k.Hex()] = v.Hex()
	}
	return json.Marshal(m)
}

// UnmarshalJSON accepts keys and values with or without 0x prefix.
func (s *Storage) UnmarshalJSON(data []byte) error {
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	storage := make(Storage, len(m))
	for k, v := range m {
		key, err := thor.ParseBytes32(k)
		if err != nil {
			return errors.Wrapf(err, "storage key %q", k)
		}
		value, err := thor.ParseBytes32(v)
		if err != nil {
			return errors.Wrapf(err, "storage value %q", v)
		}
		storage[key] = value
	}
	*s = storage
	return nil
}
