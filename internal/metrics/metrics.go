// Package metrics collects Prometheus metrics for the HTTP layer, the domain
// services and the fan-out worker.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Domain event names recorded by the services.
const (
	EventTweetCreated   = "tweet_created"
	EventTweetUpdated   = "tweet_updated"
	EventTweetDeleted   = "tweet_deleted"
	EventCommentCreated = "comment_created"
	EventCommentDeleted = "comment_deleted"
	EventLike           = "like"
	EventUnlike         = "unlike"
	EventRetweet        = "retweet"
	EventUnretweet      = "unretweet"
	EventFollow         = "follow"
	EventUnfollow       = "unfollow"
	EventRegister       = "register"
	EventLoginFailed    = "login_failed"
)

// EventRecorder is what the services depend on.
type EventRecorder interface {
	RecordEvent(event string)
}

// Collector is the Prometheus backed recorder.
type Collector struct {
	events          *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
	fanoutProcessed prometheus.Counter
	fanoutFailed    prometheus.Counter
	fanoutPushed    prometheus.Counter
}

// NewCollector registers every metric on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chirp_domain_events_total",
			Help: "Domain events by name.",
		}, []string{"event"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "chirp_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chirp_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		fanoutProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chirp_fanout_processed_total",
			Help: "Fan-out queue records marked done.",
		}),
		fanoutFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chirp_fanout_failures_total",
			Help: "Fan-out steps that failed.",
		}),
		fanoutPushed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chirp_fanout_timeline_pushes_total",
			Help: "Timeline entries written by the fan-out worker.",
		}),
	}

	reg.MustRegister(
		c.events,
		c.httpRequests,
		c.httpLatency,
		c.fanoutProcessed,
		c.fanoutFailed,
		c.fanoutPushed,
	)
	return c
}

func (c *Collector) RecordEvent(event string) {
	c.events.WithLabelValues(event).Inc()
}

func (c *Collector) RecordHTTPRequest(method, route string, status int, d time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpLatency.WithLabelValues(method, route).Observe(d.Seconds())
}

func (c *Collector) RecordFanoutProcessed() { c.fanoutProcessed.Inc() }

func (c *Collector) RecordFanoutFailure() { c.fanoutFailed.Inc() }

func (c *Collector) RecordTimelinePushes(n int) { c.fanoutPushed.Add(float64(n)) }

// Handler serves the metrics gathered from g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// Nop discards everything; used where metrics are not wired.
type Nop struct{}

func (Nop) RecordEvent(string) {}

func (Nop) RecordHTTPRequest(string, string, int, time.Duration) {}

func (Nop) RecordFanoutProcessed() {}

func (Nop) RecordFanoutFailure() {}

func (Nop) RecordTimelinePushes(int) {}
