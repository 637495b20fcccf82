package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "aiwiki", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "aiwiki", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	ChatRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "aiwiki", Name: "chat_requests_total", Help: "Chat passthrough requests by outcome (forwarded|fallback|rejected)."},
		[]string{"outcome"},
	)
	ArtifactReads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "aiwiki", Name: "artifact_reads_total", Help: "Fresh artifact reads from disk by availability."},
		[]string{"available"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(ChatRequests)
	reg.MustRegister(ArtifactReads)
}
