// Copyright 2026 The Testnet Faucet Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package faucet

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	mTrustlineChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "faucet",
		Subsystem: "trustline",
		Name:      "checks_total",
		Help:      "Number of trustline checks by status",
	}, []string{"status"})
	mEnvelopesBuilt = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "faucet",
		Subsystem: "trustline",
		Name:      "envelopes_built_total",
		Help:      "Number of unsigned trustline envelopes built",
	})
	mSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "faucet",
		Subsystem: "ledger",
		Name:      "submissions_total",
		Help:      "Number of envelopes submitted by kind and result code",
	}, []string{"kind", "result"})
	mDistributed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "faucet",
		Subsystem: "distribution",
		Name:      "amount_total",
		Help:      "Total amount of the asset distributed",
	})
	mLockWait = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "faucet",
		Subsystem: "ledger",
		Name:      "submission_lock_wait_seconds",
		Help:      "Time spent waiting for an account's submission lock",
		Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
	})
)

func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	return codeOf(err).String()
}
