package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Rate limiter
	RateLimitDecisions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uigen_ratelimit_decisions_total",
			Help: "Rate limiter decisions by result",
		},
		[]string{"result"}, // admitted|rejected|error
	)

	// Completion proxy
	Generations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uigen_generations_total",
			Help: "Completion requests by provider and outcome",
		},
		[]string{"provider", "result"}, // result: success|upstream_error|stream_error|client_closed
	)
	StreamBytes = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "uigen_stream_bytes_total",
			Help: "Bytes relayed from the completion provider to callers",
		},
	)
	GenerationDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "uigen_generation_duration_seconds",
			Help:    "Duration of relayed completion streams",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8), // 0.25s..32s
		},
		[]string{"provider"},
	)
)

func init() {
	prometheus.MustRegister(
		RateLimitDecisions,
		Generations,
		StreamBytes,
		GenerationDurationSeconds,
	)
}

// serves /metrics on its own listener until ctx is done
func StartMetricsServer(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx) //nolint:errcheck,gosec // best-effort on shutdown
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// Rate limiter
func IncRateLimitDecision(result string) {
	RateLimitDecisions.WithLabelValues(result).Inc()
}

// Completion proxy
func IncGeneration(provider, result string) {
	Generations.WithLabelValues(provider, result).Inc()
}

func AddStreamBytes(n int64) {
	StreamBytes.Add(float64(n))
}

func ObserveGenerationDuration(provider string, d time.Duration) {
	GenerationDurationSeconds.WithLabelValues(provider).Observe(d.Seconds())
}
