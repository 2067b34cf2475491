// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/vechain/supermajority/genesis"
	"github.com/vechain/supermajority/thor"
	"gopkg.in/yaml.v3"
)

const (
	defaultContractAddress = "0x0000000000000000000000000000000000007777"
	defaultCacheMB         = 16
)

type genesisConfig struct {
	Comment string `yaml:"comment"`
	Balance string `yaml:"balance"`
	Code    string `yaml:"code"`
}

type config struct {
	DataDir         string        `yaml:"dataDir"`
	ContractAddress string        `yaml:"contractAddress"`
	Cache           int           `yaml:"cache"`
	Genesis         genesisConfig `yaml:"genesis"`

	contract thor.Address
}

func defaultConfig() *config {
	return &config{
		DataDir:         defaultDataDir(),
		ContractAddress: defaultContractAddress,
		Cache:           defaultCacheMB,
		Genesis: genesisConfig{
			Comment: genesis.DefaultComment,
			Balance: genesis.DefaultBalance,
			Code:    genesis.CodePlaceholder,
		},
	}
}

// loadConfig reads the YAML file at path over the defaults. An empty path
// yields the defaults.
func loadConfig(path string) (*config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer file.Close()

	dec := yaml.NewDecoder(file)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "decode config %v", path)
	}
	return cfg, nil
}

// resolve validates the settings once flags have been applied.
func (c *config) resolve() error {
	if c.DataDir == "" {
		return errors.Errorf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name)
	}
	addr, err := parseHexAddress(contractAddressFlag.Name, c.ContractAddress)
	if err != nil {
		return err
	}
	c.contract = addr
	c.Cache = normalizeCacheSize(c.Cache)
	return nil
}

// fragment returns the genesis alloc entry holding storage.
func (c *config) fragment(storage genesis.Storage) (*genesis.Fragment, error) {
	f := genesis.NewFragment(storage)
	if c.Genesis.Comment != "" {
		f.Comment = c.Genesis.Comment
	}
	if c.Genesis.Balance != "" {
		f.Balance = c.Genesis.Balance
	}
	if c.Genesis.Code != "" {
		f.Code = c.Genesis.Code
	}
	if err := f.Validate(); err != nil {
		return nil, errors.Wrap(err, "genesis config")
	}
	return f, nil
}
