// Package metrics exposes Prometheus collectors for the notice board service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "noticeboard"

// Submission results.
const (
	ResultAccepted = "accepted"
	ResultFailed   = "failed"
	ResultInFlight = "in_flight"
)

type Manager struct {
	draftsOpened      prometheus.Counter
	draftsEvicted     prometheus.Counter
	draftMutations    *prometheus.CounterVec
	submissions       *prometheus.CounterVec
	noticesPersisted  prometheus.Counter
	queuePublishFails prometheus.Counter
	topicCacheLookups *prometheus.CounterVec

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewManager registers every collector on reg. Passing a fresh
// prometheus.NewRegistry() keeps tests isolated from the default registry.
func NewManager(reg prometheus.Registerer) *Manager {
	m := &Manager{
		draftsOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "drafts", Name: "opened_total",
			Help: "Drafts opened.",
		}),
		draftsEvicted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "drafts", Name: "evicted_total",
			Help: "Idle drafts evicted.",
		}),
		draftMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "drafts", Name: "mutations_total",
			Help: "Draft mutations by operation and outcome.",
		}, []string{"op", "outcome"}),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "submissions", Name: "total",
			Help: "Submission attempts by result.",
		}, []string{"result"}),
		noticesPersisted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "notices", Name: "persisted_total",
			Help: "Notices written to the database by the worker.",
		}),
		queuePublishFails: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "queue", Name: "publish_failures_total",
			Help: "Failed queue publishes.",
		}),
		topicCacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "topics", Name: "cache_lookups_total",
			Help: "Topic cache lookups by result.",
		}, []string{"result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "http", Name: "requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "http", Name: "request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		m.draftsOpened,
		m.draftsEvicted,
		m.draftMutations,
		m.submissions,
		m.noticesPersisted,
		m.queuePublishFails,
		m.topicCacheLookups,
		m.httpRequests,
		m.httpRequestDuration,
	)
	return m
}

// NewNop returns a Manager registered on a private registry, for callers that do not export metrics.
func NewNop() *Manager {
	return NewManager(prometheus.NewRegistry())
}

func (m *Manager) DraftOpened() {
	m.draftsOpened.Inc()
}

func (m *Manager) DraftsEvicted(n int) {
	m.draftsEvicted.Add(float64(n))
}

func (m *Manager) NoticePersisted() {
	m.noticesPersisted.Inc()
}

func (m *Manager) QueuePublishFailed() {
	m.queuePublishFails.Inc()
}

func (m *Manager) Submission(result string) {
	m.submissions.WithLabelValues(result).Inc()
}

func (m *Manager) TopicCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.topicCacheLookups.WithLabelValues(result).Inc()
}

func (m *Manager) DraftMutation(op string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	m.draftMutations.WithLabelValues(op, outcome).Inc()
}

func (m *Manager) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
