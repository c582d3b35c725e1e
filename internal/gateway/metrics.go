package gateway

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"nexus-engine/internal/models"
)

// Outcome labels
const (
	OutcomeOK     = "ok"
	OutcomeEmpty  = "empty"
	OutcomeFailed = "error"
)

// Metrics counts gateway calls per operation and outcome.
type Metrics struct {
	Calls   *prometheus.CounterVec
	Latency *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Calls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nexus",
			Subsystem: "gateway",
			Name:      "calls_total",
			Help:      "AI gateway calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "nexus",
			Subsystem: "gateway",
			Name:      "call_duration_seconds",
			Help:      "AI gateway call latency.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"operation"}),
	}
	if reg != nil {
		reg.MustRegister(m.Calls, m.Latency)
	}
	return m
}

func (m *Metrics) observe(op Operation, start time.Time, outcome string) {
	m.Calls.WithLabelValues(string(op), outcome).Inc()
	m.Latency.WithLabelValues(string(op)).Observe(time.Since(start).Seconds())
}

// Instrumented records Metrics around another Gateway.
type Instrumented struct {
	next    Gateway
	metrics *Metrics
}

func Instrument(next Gateway, m *Metrics) *Instrumented {
	return &Instrumented{next: next, metrics: m}
}

func (i *Instrumented) GenerateReply(ctx context.Context, req ReplyRequest) (Text, error) {
	start := time.Now()
	t, err := i.next.GenerateReply(ctx, req)
	i.metrics.observe(OpReply, start, textOutcome(t, err))
	return t, err
}

func (i *Instrumented) SynthesizeSpeech(ctx context.Context, text string, voice models.VoiceName) ([]byte, error) {
	start := time.Now()
	pcm, err := i.next.SynthesizeSpeech(ctx, text, voice)
	outcome := OutcomeOK
	switch {
	case err != nil:
		outcome = OutcomeFailed
	case len(pcm) == 0:
		outcome = OutcomeEmpty
	}
	i.metrics.observe(OpSpeech, start, outcome)
	return pcm, err
}

func (i *Instrumented) GenerateFunnelHTML(ctx context.Context, prompt string) (Text, error) {
	start := time.Now()
	t, err := i.next.GenerateFunnelHTML(ctx, prompt)
	i.metrics.observe(OpFunnel, start, textOutcome(t, err))
	return t, err
}

func textOutcome(t Text, err error) string {
	if err != nil {
		return OutcomeFailed
	}
	if !t.Present {
		return OutcomeEmpty
	}
	return OutcomeOK
}
