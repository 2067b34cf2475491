// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
	"github.com/vechain/supermajority/kv"
	"github.com/vechain/supermajority/thor"
)

var (
	snapshotKey = []byte("registry")

	// StorageBucket holds the mirrored contract storage, keyed by slot.
	StorageBucket = kv.Bucket("s")

	// ErrNotInitialized is returned by Load when the store holds no registry.
	ErrNotInitialized = errors.New("registry not initialized")
)

type snapshot struct {
	Admin      thor.Address
	Validators []thor.Address
	Pending    []pendingEntry
	Result     []Result // at most one
}

// Save writes the registry into store in a single batch.
func (r *Registry) Save(store kv.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := snapshot{
		Admin:      r.admin,
		Validators: r.validators,
		Pending:    r.ledger.entries(),
	}
	if r.result != nil {
		snap.Result = []Result{*r.result}
	}
	data, err := rlp.EncodeToBytes(&snap)
	if err != nil {
		return errors.Wrap(err, "encode registry")
	}

	batch := store.NewBatch()
	if err := batch.Put(snapshotKey, data); err != nil {
		return err
	}
	putter := StorageBucket.NewPutter(batch)
	if err := r.layout.flush(func(key, value thor.Bytes32) error {
		if value.IsZero() {
			return putter.Delete(key.Bytes())
		}
		return putter.Put(key.Bytes(), value.Bytes())
	}); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		// slots stay dirty for the next save
		return errors.Wrap(err, "write registry")
	}
	r.layout.clean()
	return nil
}

// Load reads a registry saved by Save.
func Load(store kv.Getter) (*Registry, error) {
	data, err := store.Get(snapshotKey)
	if err != nil {
		if store.IsNotFound(err) {
			return nil, ErrNotInitialized
		}
		return nil, errors.Wrap(err, "read registry")
	}

	var snap snapshot
	if err := rlp.DecodeBytes(data, &snap); err != nil {
		return nil, errors.Wrap(err, "decode registry")
	}

	r, err := New(snap.Validators, snap.Admin)
	if err != nil {
		return nil, errors.Wrap(err, "corrupted registry")
	}
	for _, entry := range snap.Pending {
		for _, voter := range entry.Voters {
			r.ledger.record(entry.Candidate, entry.Direction, voter, len(r.validators))
		}
	}
	if len(snap.Result) > 0 {
		result := snap.Result[0]
		r.result = &result
	}
	// the stored slots already match
	r.layout.clean()
	return r, nil
}

// ReadStorage reads a mirrored storage slot from store, zero if unset.
func ReadStorage(store kv.Getter, key thor.Bytes32) (thor.Bytes32, error) {
	data, err := StorageBucket.NewGetter(store).Get(key.Bytes())
	if err != nil {
		if store.IsNotFound(err) {
			return thor.Bytes32{}, nil
		}
		return thor.Bytes32{}, err
	}
	return thor.BytesToBytes32(data), nil
}
