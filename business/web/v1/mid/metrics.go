package mid

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/minechain/minechain/foundation/web"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collectors for the request counts and latencies served by the node. They
// are registered once on the default registry and exposed through the debug
// mux.
var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "minechain",
		Subsystem: "web",
		Name:      "requests_total",
		Help:      "Total number of requests served.",
	}, []string{"method", "path", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "minechain",
		Subsystem: "web",
		Name:      "request_duration_seconds",
		Help:      "Latency of served requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	errorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "minechain",
		Subsystem: "web",
		Name:      "errors_total",
		Help:      "Total number of requests that ended in error.",
	})
)

// Metrics updates the prometheus collectors for each request.
func Metrics() web.Middleware {

	// This is the actual middleware function to be executed.
	m := func(handler web.Handler) web.Handler {

		// Create the handler that will be attached in the middleware chain.
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {

			start := time.Now()

			// Call the next handler.
			err := handler(ctx, w, r)

			status := 0
			if v, verr := web.GetValues(ctx); verr == nil {
				status = v.StatusCode
			}

			requestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(status)).Inc()
			requestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
			if err != nil {
				errorsTotal.Inc()
			}

			// Return the error so it can be handled further up the chain.
			return err
		}

		return h
	}

	return m
}
