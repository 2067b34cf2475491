// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/require"
)

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()

	count := Counter("prom_count")
	countVec := CounterVec("prom_count_vec", []string{"direction"})
	gauge := Gauge("prom_gauge")
	gaugeVec := GaugeVec("prom_gauge_vec", []string{"direction"})

	count.Add(1)
	Counter("prom_count").Add(2)
	for range 5 {
		countVec.AddWithLabel(1, map[string]string{"direction": "add"})
	}
	countVec.AddWithLabel(1, map[string]string{"direction": "remove"})
	gauge.Set(7)
	gauge.Add(-2)
	gaugeVec.SetWithLabel(3, map[string]string{"direction": "add"})
	gaugeVec.AddWithLabel(1, map[string]string{"direction": "add"})

	metricFamilies, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	families := make(map[string]*dto.MetricFamily)
	for _, mf := range metricFamilies {
		families[mf.GetName()] = mf
	}

	require.Equal(t, float64(3), families["supermajority_prom_count"].Metric[0].GetCounter().GetValue())
	require.Equal(t, float64(5), families["supermajority_prom_gauge"].Metric[0].GetGauge().GetValue())
	require.Len(t, families["supermajority_prom_count_vec"].Metric, 2)
	require.Equal(t, float64(4), families["supermajority_prom_gauge_vec"].Metric[0].GetGauge().GetValue())

	path := filepath.Join(t.TempDir(), "metrics.prom")
	require.NoError(t, WriteTextfile(path))
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var parser expfmt.TextParser
	parsed, err := parser.TextToMetricFamilies(file)
	require.NoError(t, err)
	require.Equal(t, float64(3), parsed["supermajority_prom_count"].Metric[0].GetCounter().GetValue())
	require.Equal(t, float64(5), parsed["supermajority_prom_gauge"].Metric[0].GetGauge().GetValue())
}
