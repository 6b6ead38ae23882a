package mimiry

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// retryTransport retries transport-level failures (connection resets, DNS
// errors) with exponential backoff. Any HTTP response, including 5xx, is
// passed through untouched: status handling belongs to the error classifier.
// On exhaustion the final underlying error is surfaced as-is, so callers see
// no difference between one failed attempt and an exhausted retry budget.
type retryTransport struct {
	next http.RoundTripper

	maxRetries      int
	initialDelay    time.Duration
	maxDelay        time.Duration
	backoffMultiple float64
}

func newRetryTransport(next http.RoundTripper, maxRetries int) *retryTransport {
	return &retryTransport{
		next:            next,
		maxRetries:      maxRetries,
		initialDelay:    500 * time.Millisecond,
		maxDelay:        10 * time.Second,
		backoffMultiple: 2.0,
	}
}

func (t *retryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= t.maxRetries; attempt++ {
		r := req
		if attempt > 0 && req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, err
			}
			r = req.Clone(req.Context())
			r.Body = body
		}

		resp, err := t.next.RoundTrip(r)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		// A consumed body without GetBody cannot be replayed.
		if req.Body != nil && req.GetBody == nil {
			break
		}
		if attempt == t.maxRetries {
			break
		}

		select {
		case <-req.Context().Done():
			return nil, req.Context().Err()
		case <-time.After(t.backoff(attempt)):
		}
	}

	return nil, lastErr
}

func (t *retryTransport) backoff(attempt int) time.Duration {
	delay := float64(t.initialDelay) * math.Pow(t.backoffMultiple, float64(attempt))
	if delay > float64(t.maxDelay) {
		delay = float64(t.maxDelay)
	}
	return time.Duration(delay)
}

// metricsTransport counts requests and errors and observes latency per HTTP
// attempt. It sits beneath the retry transport so retried attempts are each
// recorded.
type metricsTransport struct {
	next http.RoundTripper

	requests *prometheus.CounterVec
	errors   *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

func newMetricsTransport(next http.RoundTripper, reg prometheus.Registerer) *metricsTransport {
	m := &metricsTransport{
		next: next,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mimiry_requests_total",
				Help: "Total number of API requests",
			},
			[]string{"method", "status"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mimiry_request_errors_total",
				Help: "Total number of API requests that failed in transport",
			},
			[]string{"method"},
		),
		latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mimiry_request_latency_seconds",
				Help:    "API request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
	reg.MustRegister(m.requests, m.errors, m.latency)
	return m
}

func (m *metricsTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := m.next.RoundTrip(req)
	m.latency.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
	if err != nil {
		m.errors.WithLabelValues(req.Method).Inc()
		return nil, err
	}
	m.requests.WithLabelValues(req.Method, strconv.Itoa(resp.StatusCode)).Inc()
	return resp, nil
}
