// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNoopMetrics(t *testing.T) {
	// 2 ways of accessing it - useful to avoid lookups
	count1 := Counter("count1")
	Counter("count2").Add(1)
	count1.Add(1)

	CounterVec("countVec1", []string{"direction"}).AddWithLabel(1, map[string]string{"direction": "add"})
	Gauge("gauge1").Set(4)
	GaugeVec("gaugeVec1", []string{"direction"}).SetWithLabel(1, map[string]string{"thisIsNonsense": "butDoesntBreak"})

	path := filepath.Join(t.TempDir(), "metrics.prom")
	require.NoError(t, WriteTextfile(path))

	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))
}
