// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import "github.com/vechain/supermajority/metrics"

var (
	metricVoteCounter      = metrics.LazyLoadCounterVec("vote_count", []string{"direction", "event"})
	metricValidatorChanges = metrics.LazyLoadCounterVec("validator_change_count", []string{"direction", "by"})
	metricRejectedCounter  = metrics.LazyLoadCounterVec("rejected_count", []string{"kind"})
	metricValidators       = metrics.LazyLoadGauge("validators")
)
