// Copyright (c) 2021 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errNotFound = errors.New("not found")

type memStore map[string][]byte

func (m memStore) Get(key []byte) ([]byte, error) {
	if v, ok := m[string(key)]; ok {
		return v, nil
	}
	return nil, errNotFound
}

func (m memStore) Has(key []byte) (bool, error) {
	_, ok := m[string(key)]
	return ok, nil
}

func (m memStore) IsNotFound(err error) bool { return err == errNotFound }

func (m memStore) Put(key, val []byte) error {
	m[string(key)] = val
	return nil
}

func (m memStore) Delete(key []byte) error {
	delete(m, string(key))
	return nil
}

func TestBucket(t *testing.T) {
	src := memStore{}

	b1 := Bucket("b1")
	b2 := Bucket("b2")

	assert.Nil(t, b1.NewPutter(src).Put([]byte("k"), []byte("v1")))
	assert.Nil(t, b2.NewPutter(src).Put([]byte("k"), []byte("v2")))

	assert.Equal(t, []byte("v1"), src["b1k"])
	assert.Equal(t, []byte("v2"), src["b2k"])

	v, err := b1.NewGetter(src).Get([]byte("k"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("v1"), v)

	has, err := b2.NewGetter(src).Has([]byte("k"))
	assert.Nil(t, err)
	assert.True(t, has)

	assert.Nil(t, b1.NewPutter(src).Delete([]byte("k")))
	_, err = b1.NewGetter(src).Get([]byte("k"))
	assert.True(t, b1.NewGetter(src).IsNotFound(err))

	// the other bucket is untouched
	v, err = b2.NewGetter(src).Get([]byte("k"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("v2"), v)
}
