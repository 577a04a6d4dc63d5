package monitoring

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// 排课运行
	runsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "timetabler_runs_total",
			Help: "Total number of finished scheduler runs",
		},
		[]string{"variant"},
	)

	runDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "timetabler_run_duration_seconds",
			Help:    "Duration of a whole timetable generation request",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
		[]string{"catalog"},
	)

	// 每一代
	generationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "timetabler_generations_total",
			Help: "Total number of generations evaluated",
		},
		[]string{"variant"},
	)

	evaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "timetabler_evaluations_total",
			Help: "Total number of fitness evaluations",
		},
		[]string{"variant"},
	)

	generationMinFitness = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "timetabler_generation_min_fitness",
			Help: "Lowest conflict score of the latest generation",
		},
		[]string{"variant"},
	)

	// 结果
	bestFitness = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "timetabler_best_fitness",
			Help: "Conflict score of the best timetable found by the latest run",
		},
		[]string{"catalog", "variant"},
	)

	// HTTP
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "timetabler_http_requests_total",
			Help: "Total number of handled HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "timetabler_http_request_duration_seconds",
			Help:    "Duration of handled HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "timetabler_errors_total",
			Help: "Total number of errors",
		},
		[]string{"type"},
	)
)

func init() {
	prometheus.MustRegister(runsTotal)
	prometheus.MustRegister(runDuration)
	prometheus.MustRegister(generationsTotal)
	prometheus.MustRegister(evaluationsTotal)
	prometheus.MustRegister(generationMinFitness)
	prometheus.MustRegister(bestFitness)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(errorsTotal)
}

type MetricsHandler struct{}

func NewMetricsHandler() *MetricsHandler {
	return &MetricsHandler{}
}

func (m *MetricsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// RecordGeneration 记录一代的统计，可以直接作为 scheduler 的观察者
func RecordGeneration(variant string, evaluations int, minFitness int) {
	generationsTotal.WithLabelValues(variant).Inc()
	evaluationsTotal.WithLabelValues(variant).Add(float64(evaluations))
	generationMinFitness.WithLabelValues(variant).Set(float64(minFitness))
}

func RecordRun(catalog, variant string, fitness int) {
	runsTotal.WithLabelValues(variant).Inc()
	bestFitness.WithLabelValues(catalog, variant).Set(float64(fitness))
}

func ObserveRunDuration(catalog string, seconds float64) {
	runDuration.WithLabelValues(catalog).Observe(seconds)
}

// ObserveHTTPRequest 的 route 应当是路由模板而不是实际路径，避免标签数量无限增长
func ObserveHTTPRequest(method, route string, status int, seconds float64) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

func RecordError(errorType string) {
	errorsTotal.WithLabelValues(errorType).Inc()
}
