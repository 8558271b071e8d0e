package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seedbed_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "seedbed_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// AIGenerationsTotal counts AI generation calls by operation and outcome.
	AIGenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seedbed_ai_generations_total",
		Help: "Total number of AI generation attempts by operation and outcome",
	}, []string{"operation", "outcome"})

	// AIGenerationLatency records end-to-end AI generation latency per operation.
	AIGenerationLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "seedbed_ai_generation_latency_seconds",
		Help:    "AI generation latency in seconds",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"operation"})

	// AIQuotaRejectionsTotal counts gardener requests rejected by the per-post quota.
	AIQuotaRejectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "seedbed_ai_quota_rejections_total",
		Help: "Total number of gardener comment requests rejected by the per-post quota",
	})

	// ImageUploadsTotal counts image uploads by kind (post or profile).
	ImageUploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "seedbed_image_uploads_total",
		Help: "Total number of image uploads by kind",
	}, []string{"kind"})
)

// RecordAIGeneration records one AI generation attempt with its outcome and latency.
func RecordAIGeneration(operation, outcome string, start time.Time) {
	AIGenerationsTotal.WithLabelValues(operation, outcome).Inc()
	AIGenerationLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// ObserveQuery records the latency of one database query.
func ObserveQuery(operation, table string, start time.Time) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
}

const queryStartKey = "observability:query_start"

// InstrumentDB registers gorm callbacks so every create, query, update and
// delete reports its latency to DatabaseQueryLatency.
func InstrumentDB(db *gorm.DB) error {
	start := func(db *gorm.DB) {
		db.InstanceSet(queryStartKey, time.Now())
	}
	finish := func(operation string) func(*gorm.DB) {
		return func(db *gorm.DB) {
			raw, ok := db.InstanceGet(queryStartKey)
			if !ok {
				return
			}
			begun, ok := raw.(time.Time)
			if !ok {
				return
			}
			table := db.Statement.Table
			if table == "" {
				table = "unknown"
			}
			ObserveQuery(operation, table, begun)
		}
	}

	if err := db.Callback().Create().Before("gorm:create").Register("metrics:before_create", start); err != nil {
		return err
	}
	if err := db.Callback().Create().After("gorm:create").Register("metrics:after_create", finish("create")); err != nil {
		return err
	}
	if err := db.Callback().Query().Before("gorm:query").Register("metrics:before_query", start); err != nil {
		return err
	}
	if err := db.Callback().Query().After("gorm:query").Register("metrics:after_query", finish("query")); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("metrics:before_update", start); err != nil {
		return err
	}
	if err := db.Callback().Update().After("gorm:update").Register("metrics:after_update", finish("update")); err != nil {
		return err
	}
	if err := db.Callback().Delete().Before("gorm:delete").Register("metrics:before_delete", start); err != nil {
		return err
	}
	if err := db.Callback().Delete().After("gorm:delete").Register("metrics:after_delete", finish("delete")); err != nil {
		return err
	}
	return nil
}
