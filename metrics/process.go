// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"os"

	"github.com/elastic/gosigar"
)

var (
	metricProcessMemory = LazyLoadGaugeVec("process_memory_bytes", []string{"type"})
	metricProcessCPU    = LazyLoadGaugeVec("process_cpu_milliseconds", []string{"mode"})
)

// CollectProcessStats samples memory and cpu time of the running process.
// A short lived command calls it once, right before writing the textfile.
func CollectProcessStats() {
	pid := os.Getpid()

	var mem gosigar.ProcMem
	if err := mem.Get(pid); err != nil {
		logger.Warn("failed to get process memory", "err", err)
	} else {
		metricProcessMemory().SetWithLabel(int64(mem.Resident), map[string]string{"type": "resident"})
		metricProcessMemory().SetWithLabel(int64(mem.Size), map[string]string{"type": "virtual"})
	}

	var cpu gosigar.ProcTime
	if err := cpu.Get(pid); err != nil {
		logger.Warn("failed to get process cpu time", "err", err)
	} else {
		metricProcessCPU().SetWithLabel(int64(cpu.User), map[string]string{"mode": "user"})
		metricProcessCPU().SetWithLabel(int64(cpu.Sys), map[string]string{"mode": "system"})
	}
}
