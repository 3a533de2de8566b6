// Package metrics 定义 Prometheus 指标
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ReconcileTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gcgviz_reconcile_total",
			Help: "Total number of year reconciliations",
		},
		[]string{"status"},
	)

	ReconcileDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gcgviz_reconcile_duration_seconds",
			Help:    "Load-merge-persist duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
	)

	StoreLoadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gcgviz_store_load_duration_seconds",
			Help:    "Table store load duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2},
		},
		[]string{"caller"},
	)

	PersistedRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gcgviz_persisted_records",
			Help: "Number of records in the table after the last save",
		},
	)

	UploadTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gcgviz_upload_total",
			Help: "Total number of workbook extractions",
		},
		[]string{"format_type"},
	)
)

// 与 ReconcileTotal 配合使用的状态值
const (
	StatusSuccess   = "success"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

var registerOnce sync.Once

// Register 注册全部指标到默认 registry（重复调用无副作用）
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			ReconcileTotal,
			ReconcileDuration,
			StoreLoadDuration,
			PersistedRecords,
			UploadTotal,
		)
	})
}
