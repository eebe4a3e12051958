package pipeline

import (
	"errors"

	"github.com/shouni/go-pixetale/pkg/generator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "pixetale"

var (
	questsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "quests_total",
		Help:      "Number of finished quest runs by result.",
	}, []string{"result"})

	illustrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "illustrations_total",
		Help:      "Number of illustration steps by target and result.",
	}, []string{"target", "result"})

	questDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "quest_duration_seconds",
		Help:      "Wall time of successful quest runs.",
		Buckets:   prometheus.ExponentialBuckets(5, 2, 8),
	})
)

func illustrationOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, generator.ErrRateLimited):
		return "rate_limited"
	}
	return "failed"
}
