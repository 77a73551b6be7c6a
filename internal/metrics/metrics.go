package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"research-saver/internal/model"
)

// Metrics 保存接口的Prometheus指标
// 使用独立的registry，方便测试中多次创建
type Metrics struct {
	registry *prometheus.Registry

	Requests      *prometheus.CounterVec
	SavedBytes    prometheus.Counter
	WriteDuration prometheus.Histogram
}

// New 创建并注册指标
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		registry: reg,

		// 按结果统计请求数
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "research_save_requests_total",
			Help: "Total number of save requests by outcome",
		}, []string{"outcome"}),

		SavedBytes: factory.NewCounter(prometheus.CounterOpts{
			Name: "research_save_bytes_total",
			Help: "Total bytes of pretty-printed JSON written to disk",
		}),

		WriteDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "research_save_write_duration_seconds",
			Help:    "Time spent writing a research file",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
	}

	// 预先创建所有label，未出现的结果也会输出0
	for _, o := range model.AllOutcomes {
		m.Requests.WithLabelValues(string(o))
	}

	return m
}

// RecordOutcome 记录一次请求结果
func (m *Metrics) RecordOutcome(o model.Outcome) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(string(o)).Inc()
}

// RecordWrite 记录一次文件写入（成功或失败都记录耗时）
func (m *Metrics) RecordWrite(bytes int, d time.Duration, ok bool) {
	if m == nil {
		return
	}
	m.WriteDuration.Observe(d.Seconds())
	if ok {
		m.SavedBytes.Add(float64(bytes))
	}
}

// Handler 返回 /metrics 处理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
