// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/supermajority/genesis"
	"github.com/vechain/supermajority/thor"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := loadConfig("")
		require.NoError(t, err)
		assert.Equal(t, defaultConfig(), cfg)

		require.NoError(t, cfg.resolve())
		assert.Equal(t, thor.MustParseAddress(defaultContractAddress), cfg.contract)
	})

	t.Run("empty file", func(t *testing.T) {
		cfg, err := loadConfig(writeFile(t, "empty.yaml", ""))
		require.NoError(t, err)
		assert.Equal(t, defaultConfig(), cfg)
	})

	t.Run("file", func(t *testing.T) {
		cfg, err := loadConfig(writeFile(t, "config.yaml", `
dataDir: /tmp/registry
contractAddress: "0000000000000000000000000000000000001234"
genesis:
  comment: validators
  balance: "0x10"
`))
		require.NoError(t, err)
		assert.Equal(t, "/tmp/registry", cfg.DataDir)
		assert.Equal(t, "validators", cfg.Genesis.Comment)
		assert.Equal(t, "0x10", cfg.Genesis.Balance)
		assert.Equal(t, genesis.CodePlaceholder, cfg.Genesis.Code)

		require.NoError(t, cfg.resolve())
		assert.Equal(t, thor.MustParseAddress("0x0000000000000000000000000000000000001234"), cfg.contract)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := loadConfig(writeFile(t, "config.yaml", "dataDirectory: /tmp\n"))
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorContains(t, err, "open config")
	})
}

func TestConfigResolve(t *testing.T) {
	cfg := defaultConfig()
	cfg.ContractAddress = "0x1234"
	assert.EqualError(t, cfg.resolve(),
		"invalid hex string for contract-address: 0x1234, expected length is 40 digits, actual length is 4 digits")

	cfg = defaultConfig()
	cfg.DataDir = ""
	assert.ErrorContains(t, cfg.resolve(), "unable to infer default data dir")
}

func TestConfigFragment(t *testing.T) {
	storage := genesis.Encode([]thor.Address{thor.MustParseAddress("0x00000000000000000000000000000000000000aa")})

	f, err := defaultConfig().fragment(storage)
	require.NoError(t, err)
	assert.Equal(t, genesis.NewFragment(storage), f)

	cfg := defaultConfig()
	cfg.Genesis.Code = "0x6080"
	f, err = cfg.fragment(storage)
	require.NoError(t, err)
	assert.Equal(t, "0x6080", f.Code)

	cfg.Genesis.Balance = "ten"
	_, err = cfg.fragment(storage)
	assert.ErrorContains(t, err, "genesis config")
}
