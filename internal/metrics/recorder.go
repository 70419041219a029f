// Package metrics records conversation and model-call metrics with Prometheus.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/alexanderramin/dayframe/internal/coaching"
	"github.com/alexanderramin/dayframe/internal/domain"
	"github.com/alexanderramin/dayframe/internal/llm"
)

// Recorder implements coaching.TurnObserver and llm.Observer. Each Recorder
// owns its registry, so several can coexist in one process.
type Recorder struct {
	registry     *prometheus.Registry
	turnsTotal   *prometheus.CounterVec
	fallbacks    *prometheus.CounterVec
	plansSaved   *prometheus.CounterVec
	callDuration *prometheus.HistogramVec
}

var (
	_ coaching.TurnObserver = (*Recorder)(nil)
	_ llm.Observer          = (*Recorder)(nil)
)

// NewRecorder creates a Recorder with its collectors registered.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		registry: reg,
		turnsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dayframe_turns_total",
				Help: "User turns by flow and outcome",
			},
			[]string{"flow", "outcome"},
		),
		fallbacks: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dayframe_fallbacks_total",
				Help: "Static fallback replies by flow and conversation phase",
			},
			[]string{"flow", "phase"},
		),
		plansSaved: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dayframe_plans_saved_total",
				Help: "Plans confirmed and saved by flow",
			},
			[]string{"flow"},
		),
		callDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "dayframe_llm_call_duration_seconds",
				Help:    "Duration of model calls in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"provider", "status"},
		),
	}
}

func (r *Recorder) OnTurn(flow domain.Flow, outcome string) {
	r.turnsTotal.WithLabelValues(string(flow), outcome).Inc()
}

func (r *Recorder) OnFallback(flow domain.Flow, phase domain.Phase) {
	r.fallbacks.WithLabelValues(string(flow), string(phase)).Inc()
}

func (r *Recorder) OnPlanSaved(flow domain.Flow) {
	r.plansSaved.WithLabelValues(string(flow)).Inc()
}

// OnCallComplete records one model call. Failed calls are labelled with
// their error code.
func (r *Recorder) OnCallComplete(event llm.LLMCallEvent) {
	status := "success"
	if !event.Success {
		status = event.ErrorCode
		if status == "" {
			status = "error"
		}
	}
	d := time.Duration(event.LatencyMs) * time.Millisecond
	r.callDuration.WithLabelValues(string(event.Provider), status).Observe(d.Seconds())
}

// Registry exposes the underlying registry for scraping and tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the recorder's metrics in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is canceled.
func (r *Recorder) Serve(ctx context.Context, addr string, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("serving metrics", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
