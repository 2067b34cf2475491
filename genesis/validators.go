// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"bufio"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/vechain/supermajority/thor"
)

// ReadValidators reads one address per line. Blank lines and lines starting with '#'
// are skipped.
func ReadValidators(r io.Reader) ([]thor.Address, error) {
	var (
		validators []thor.Address
		seen       = make(map[thor.Address]int)
		scanner    = bufio.NewScanner(r)
		line       int
	)
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		addr, err := thor.ParseAddress(text)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d: invalid address %q", line, text)
		}
		if prev, ok := seen[addr]; ok {
			return nil, errors.Errorf("line %d: duplicate of line %d: %v", line, prev, addr)
		}
		seen[addr] = line
		validators = append(validators, addr)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read validators")
	}
	if len(validators) == 0 {
		return nil, errors.New("no validators")
	}
	return validators, nil
}
