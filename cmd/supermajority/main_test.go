// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vechain/supermajority/genesis"
	"github.com/vechain/supermajority/metrics"
	"github.com/vechain/supermajority/thor"
)

// meters are bound on first use, enable prometheus before any command runs
func TestMain(m *testing.M) {
	metrics.InitializePrometheusMetrics()
	os.Exit(m.Run())
}

var (
	accA  = thor.MustParseAddress("0x000000000000000000000000000000000000000a")
	accB  = thor.MustParseAddress("0x000000000000000000000000000000000000000b")
	accC  = thor.MustParseAddress("0x000000000000000000000000000000000000000c")
	accD  = thor.MustParseAddress("0x000000000000000000000000000000000000000d")
	accE  = thor.MustParseAddress("0x000000000000000000000000000000000000000e")
	accF  = thor.MustParseAddress("0x000000000000000000000000000000000000000f")
	admin = thor.MustParseAddress("0x00000000000000000000000000000000000000ad")
)

type testCLI struct {
	t       *testing.T
	dataDir string
}

func newTestCLI(t *testing.T) *testCLI {
	return &testCLI{t: t, dataDir: t.TempDir()}
}

func (c *testCLI) run(args ...string) (string, error) {
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	err := app.Run(append([]string{"supermajority", "--data-dir", c.dataDir, "--verbosity", "1"}, args...))
	return buf.String(), err
}

func (c *testCLI) mustRun(args ...string) string {
	out, err := c.run(args...)
	require.NoError(c.t, err, strings.Join(args, " "))
	return out
}

func (c *testCLI) vote(from thor.Address, command string, account thor.Address) string {
	return c.mustRun("--from", from.String(), command, account.String())
}

func validatorsFile(t *testing.T, validators ...thor.Address) string {
	lines := []string{"# initial validators", ""}
	for _, v := range validators {
		lines = append(lines, v.String())
	}
	return writeFile(t, "initialValidators.txt", strings.Join(lines, "\n"))
}

func (c *testCLI) init() {
	file := validatorsFile(c.t, accA, accB, accC, accD)
	out := c.mustRun("init", "--validators", file, "--admin", admin.String())
	assert.Contains(c.t, out, "with 4 validators")
}

func TestVoteCommands(t *testing.T) {
	c := newTestCLI(t)
	c.init()

	out := c.vote(accA, "addValidator", accE)
	assert.Equal(t,
		"Account "+accA.String()+" votes to add address "+accE.String()+" to the validators\n"+
			"Success: Account "+accA.String()+" has voted to add account "+accE.String()+".\n"+
			"There is 1 vote now and 3 needed to add this account.\n",
		out)

	out = c.vote(accB, "addValidator", accE)
	assert.Contains(t, out, "There are 2 votes now and 3 needed to add this account.")
	assert.NotContains(t, out, "has added validator")

	out = c.vote(accC, "addValidator", accE)
	assert.Contains(t, out, "Success: Account "+accC.String()+" has added validator "+accE.String()+". Active validators: 5.")

	out = c.mustRun("getValidators")
	assert.Equal(t, "Validators: "+strings.Join([]string{
		accA.String(), accB.String(), accC.String(), accD.String(), accE.String(),
	}, ",")+"\n", out)

	out = c.mustRun("getResult")
	assert.Contains(t, out, "passed with 3/3 votes")

	c.vote(accA, "removeValidator", accD)
	out = c.vote(accA, "removeVote", accD)
	assert.Contains(t, out, "removed their vote to remove account "+accD.String())
	assert.Contains(t, out, "There are 0 votes now and 3 needed to remove this account.")

	_, err := c.run("--from", accA.String(), "removeVote", accD.String())
	assert.EqualError(t, err, "execution reverted with revert reason:\nsender has not voted for this account")
}

func TestAdminCommands(t *testing.T) {
	c := newTestCLI(t)
	c.init()

	assert.Equal(t, "Admin: "+admin.String()+"\n", c.mustRun("getAdmin"))

	_, err := c.run("--from", accA.String(), "adminVote", accF.String())
	assert.EqualError(t, err, "execution reverted with revert reason:\nsender is not the admin")

	out := c.vote(admin, "adminVote", accF)
	assert.Contains(t, out, "Success: Account "+admin.String()+" has added validator "+accF.String()+". Active validators: 5.")
	assert.Contains(t, out, "Admin successfully added the new validator")

	out = c.mustRun("getResult")
	assert.Contains(t, out, "admin "+admin.String())
}

func TestRejectedVote(t *testing.T) {
	c := newTestCLI(t)
	c.init()

	_, err := c.run("--from", accE.String(), "addValidator", accF.String())
	assert.EqualError(t, err, "execution reverted with revert reason:\nsender is not a validator")

	_, err = c.run("--from", accA.String(), "addValidator", "0x1234")
	assert.ErrorContains(t, err, "invalid hex string for account: 0x1234")

	_, err = c.run("addValidator", accF.String())
	assert.ErrorContains(t, err, "-from is required")

	_, err = c.run("--from", accA.String(), "addValidator")
	assert.ErrorContains(t, err, "exactly one <account> argument")

	// nothing was saved
	assert.Equal(t, "Result: no vote yet\n", c.mustRun("getResult"))
}

func TestInit(t *testing.T) {
	c := newTestCLI(t)

	_, err := c.run("getValidators")
	assert.ErrorContains(t, err, "run init first")

	c.init()
	_, err = c.run("init", "--validators", validatorsFile(t, accA), "--admin", admin.String())
	assert.ErrorContains(t, err, "already initialized")

	_, err = c.run("init", "--validators", validatorsFile(t), "--admin", admin.String())
	assert.ErrorContains(t, err, "no validators")

	// another contract has its own registry
	_, err = c.run("--contract-address", "0x0000000000000000000000000000000000008888", "getValidators")
	assert.ErrorContains(t, err, "run init first")
}

func TestUnknownCommand(t *testing.T) {
	c := newTestCLI(t)

	_, err := c.run("frobnicate")
	assert.EqualError(t, err, "unknown command frobnicate")
}

func TestStorageCommand(t *testing.T) {
	c := newTestCLI(t)
	c.init()
	for _, voter := range []thor.Address{accA, accB, accC} {
		c.vote(voter, "removeValidator", accB)
	}

	out := c.mustRun("storage")
	var section map[string]*genesis.Fragment
	require.NoError(t, json.Unmarshal([]byte("{"+out+"}"), &section))
	f := section["0000000000000000000000000000000000007777"]
	require.NotNil(t, f)
	assert.Equal(t, genesis.DefaultComment, f.Comment)
	assert.Equal(t, genesis.Encode([]thor.Address{accA, accC, accD}), f.Storage)

	out = c.mustRun("storage", thor.Bytes32{}.Hex())
	assert.Equal(t, thor.BytesToBytes32([]byte{3}).Hex()+"\n", out)
}

func TestGenesisCommand(t *testing.T) {
	c := newTestCLI(t)
	out := filepath.Join(t.TempDir(), "Storage.txt")
	config := writeFile(t, "config.yaml", "genesis:\n  comment: custom\n")

	c.mustRun("--config", config, "genesis", "--validators", validatorsFile(t, accA, accB), "--out", out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "\t\"0000000000000000000000000000000000007777\": {"))

	var section map[string]*genesis.Fragment
	require.NoError(t, json.Unmarshal(append(append([]byte("{"), data...), '}'), &section))
	f := section["0000000000000000000000000000000000007777"]
	require.NotNil(t, f)
	assert.Equal(t, "custom", f.Comment)
	assert.Equal(t, genesis.CodePlaceholder, f.Code)
	assert.Equal(t, genesis.Encode([]thor.Address{accA, accB}), f.Storage)

	_, err = c.run("genesis", "--validators", validatorsFile(t, accA, accA))
	assert.ErrorContains(t, err, "duplicate")
}

func TestMetricsFile(t *testing.T) {
	c := newTestCLI(t)
	c.init()

	path := filepath.Join(t.TempDir(), "supermajority.prom")
	c.mustRun("--metrics-file", path, "--from", accA.String(), "addValidator", accE.String())

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()
	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(file)
	require.NoError(t, err)

	require.Contains(t, families, "supermajority_validators")
	assert.Equal(t, float64(4), families["supermajority_validators"].Metric[0].GetGauge().GetValue())

	require.Contains(t, families, "supermajority_vote_count")
	var cast float64
	for _, m := range families["supermajority_vote_count"].Metric {
		labels := make(map[string]string)
		for _, l := range m.GetLabel() {
			labels[l.GetName()] = l.GetValue()
		}
		if labels["direction"] == "add" && labels["event"] == "cast" {
			cast = m.GetCounter().GetValue()
		}
	}
	assert.GreaterOrEqual(t, cast, float64(1))

	require.Contains(t, families, "supermajority_event_stored_count")
	if runtime.GOOS == "linux" {
		assert.Contains(t, families, "supermajority_process_memory_bytes")
	}
}

func TestVoteWithoutEventHistory(t *testing.T) {
	c := newTestCLI(t)
	c.init()

	// a directory in place of the event db cannot be opened
	cfg := &config{DataDir: c.dataDir, contract: thor.MustParseAddress(defaultContractAddress)}
	require.NoError(t, os.MkdirAll(filepath.Join(instanceDir(cfg), "events.db"), 0700))

	out, err := c.run("--from", accA.String(), "addValidator", accE.String())
	assert.ErrorContains(t, err, "open event database")
	// the vote was saved before the history failed
	assert.Contains(t, out, "has voted to add account "+accE.String())
	assert.Contains(t, c.mustRun("getResult"), "pending with 1/3 votes")
}

func TestNormalizeCacheSize(t *testing.T) {
	assert.Equal(t, defaultCacheMB, normalizeCacheSize(0))
	assert.Equal(t, 64, normalizeCacheSize(64))
	assert.Less(t, normalizeCacheSize(1<<40), 1<<40)
}

func TestEventsCommand(t *testing.T) {
	c := newTestCLI(t)
	c.init()

	c.vote(accA, "addValidator", accE)
	c.vote(accB, "addValidator", accE)
	c.vote(accC, "addValidator", accE)
	c.vote(accA, "removeValidator", accD)

	out := c.mustRun("events")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// two lines per vote, one per validator change
	assert.Len(t, lines, 4*2+1)
	assert.True(t, strings.HasPrefix(lines[0], "#1.0 "))
	assert.Contains(t, lines[0], "Account "+accA.String()+" has voted to add account "+accE.String())

	out = c.mustRun("events", "--kind", "validator")
	assert.Contains(t, out, "#3.1 ")
	assert.Contains(t, out, "has added validator "+accE.String()+". Active validators: 5.")

	out = c.mustRun("events", "--account", accD.String(), "--desc", "--limit", "1")
	assert.True(t, strings.HasPrefix(out, "#4.0 "))
	assert.Contains(t, out, "to remove account "+accD.String())

	_, err := c.run("events", "--kind", "transfer")
	assert.ErrorContains(t, err, "unknown event kind")
}
