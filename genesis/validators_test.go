// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/supermajority/thor"
)

func TestReadValidators(t *testing.T) {
	input := `
0x7567d83b7b8d80addcb281a71d54fc7b3364ffed
# comment
  8FF0B30B0A1C1BC0E72A4B1E4A3BD20F0D6AE4D3

`
	validators, err := ReadValidators(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []thor.Address{
		thor.MustParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed"),
		thor.MustParseAddress("0x8ff0b30b0a1c1bc0e72a4b1e4a3bd20f0d6ae4d3"),
	}, validators)
}

func TestReadValidatorsErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   string
	}{
		{"empty", "\n\n", "no validators"},
		{"short", "0x7567d83b7b8d80addcb281a71d54fc7b3364ff", "line 1"},
		{"not hex", "0x7567d83b7b8d80addcb281a71d54fc7b3364ffzz", "line 1"},
		{"duplicate", "0x7567d83b7b8d80addcb281a71d54fc7b3364ffed\n7567d83b7b8d80addcb281a71d54fc7b3364ffed", "line 2: duplicate of line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadValidators(strings.NewReader(tt.input))
			assert.ErrorContains(t, err, tt.err)
		})
	}
}
