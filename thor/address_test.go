// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	const hex = "0000000000000000000000000000000000007777"

	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"no prefix", hex, false},
		{"lower prefix", "0x" + hex, false},
		{"upper prefix", "0X" + hex, false},
		{"mixed case digits", "0xAbCdEf0000000000000000000000000000007777", false},
		{"bad prefix", "1x" + hex, true},
		{"too short", hex[2:], true},
		{"too long", hex + "00", true},
		{"not hex", "0x" + hex[:38] + "zz", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := ParseAddress(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, byte(0x77), addr[AddressLength-1])
		})
	}
}

func TestAddressIsZero(t *testing.T) {
	assert.False(t, MustParseAddress("0x7567d83b7b8d80addcb281a71d54fc7b3364ffed").IsZero())
	assert.True(t, Address{}.IsZero())
}

func TestBytesToAddress(t *testing.T) {
	addr := BytesToAddress([]byte("p1"))
	assert.Equal(t, "0x0000000000000000000000000000000000007031", addr.String())
	assert.Equal(t, addr, BytesToAddress(BytesToBytes32(addr.Bytes()).Bytes()))
}
