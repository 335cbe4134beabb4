package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "statsembed"

type RequestType int

const (
	MessageFetch RequestType = iota
	MessageCreate
	MessageEdit
)

var RequestTypeStrings = []string{
	"message_fetch",
	"message_create",
	"message_edit",
}

func (t RequestType) String() string {
	if int(t) < 0 || int(t) >= len(RequestTypeStrings) {
		return "unknown"
	}
	return RequestTypeStrings[t]
}

// Cycle results
const (
	ResultSuccess    = "success"
	ResultDataSource = "data_source_error"
	ResultSurface    = "surface_error"
	ResultOther      = "error"
)

// Skip reasons
const (
	SkipInFlight        = "in_flight"
	SkipLockHeld        = "lock_held"
	SkipLockUnavailable = "lock_error"
)

// Recorder is what the refresher and the surface report into.
type Recorder interface {
	DiscordRequest(t RequestType)
	CycleFinished(result string, took time.Duration)
	CycleSkipped(reason string)
}

type Noop struct{}

func (Noop) DiscordRequest(RequestType)          {}
func (Noop) CycleFinished(string, time.Duration) {}
func (Noop) CycleSkipped(string)                 {}

// Service is the prometheus backed Recorder.
type Service struct {
	cycles      *prometheus.CounterVec
	duration    prometheus.Histogram
	skipped     *prometheus.CounterVec
	requests    *prometheus.CounterVec
	lastSuccess prometheus.Gauge
	now         func() time.Time
}

func NewService(reg prometheus.Registerer) (*Service, error) {
	s := &Service{
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_total",
			Help:      "Number of finished refresh cycles, by result",
		}, []string{"result"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cycle_duration_seconds",
			Help:      "Wall time of refresh cycles",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
		}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cycles_skipped_total",
			Help:      "Number of scheduled ticks that did not start a cycle, by reason",
		}, []string{"reason"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "discord_requests_total",
			Help:      "Number of discord requests made, differentiated by type",
		}, []string{"type"}),
		lastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last cycle that updated the surface",
		}),
		now: time.Now,
	}
	for _, c := range []prometheus.Collector{s.cycles, s.duration, s.skipped, s.requests, s.lastSuccess} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	// pre-create the request series so dashboards see zeros
	for _, str := range RequestTypeStrings {
		s.requests.WithLabelValues(str)
	}
	return s, nil
}

func (s *Service) DiscordRequest(t RequestType) {
	s.requests.WithLabelValues(t.String()).Inc()
}

func (s *Service) CycleFinished(result string, took time.Duration) {
	s.cycles.WithLabelValues(result).Inc()
	s.duration.Observe(took.Seconds())
	if result == ResultSuccess {
		s.lastSuccess.Set(float64(s.now().Unix()))
	}
}

func (s *Service) CycleSkipped(reason string) {
	s.skipped.WithLabelValues(reason).Inc()
}
