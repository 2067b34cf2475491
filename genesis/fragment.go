// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"io"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"github.com/vechain/supermajority/thor"
)

const (
	DefaultComment  = "validator smart contract"
	DefaultBalance  = "0x00"
	CodePlaceholder = "0x<Contract Code>"
)

// Fragment is the genesis alloc entry of the validator contract.
type Fragment struct {
	Comment string  `json:"comment"`
	Balance string  `json:"balance"`
	Code    string  `json:"code"`
	Storage Storage `json:"storage"`
}

// NewFragment returns a fragment holding storage, with the default comment,
// zero balance and a code placeholder.
func NewFragment(storage Storage) *Fragment {
	return &Fragment{
		Comment: DefaultComment,
		Balance: DefaultBalance,
		Code:    CodePlaceholder,
		Storage: storage,
	}
}

// Validate checks balance and code are hex, the code placeholder is allowed.
func (f *Fragment) Validate() error {
	if _, err := hexutil.DecodeBig(f.Balance); err != nil {
		// leading zeros, as in 0x00, are rejected by DecodeBig
		if _, err2 := hexutil.Decode(f.Balance); err2 != nil {
			return errors.Wrapf(err, "balance %q", f.Balance)
		}
	}
	if f.Code != CodePlaceholder {
		if _, err := hexutil.Decode(f.Code); err != nil {
			return errors.Wrap(err, "code")
		}
	}
	return nil
}

// WriteFragment writes the alloc section for the contract at addr, tab indented and
// without the enclosing braces, ready to be pasted into the alloc of a genesis file.
func WriteFragment(w io.Writer, addr thor.Address, f *Fragment) error {
	section := map[string]*Fragment{
		hex.EncodeToString(addr.Bytes()): f,
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// keep "0x<Contract Code>" readable
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "\t")
	if err := enc.Encode(section); err != nil {
		return errors.Wrap(err, "encode fragment")
	}
	// strip "{\n" and "\n}\n"
	data := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	_, err := w.Write(data[2 : len(data)-2])
	return err
}
