package reconcile

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"gcgviz/internal/logging"
	"gcgviz/internal/metrics"
	"gcgviz/internal/model"
	"gcgviz/internal/store"
)

// Result 一次整年保存的结果
type Result struct {
	AssessmentID string
	SavedAt      time.Time
	Year         int
	Persisted    int
	YearRecords  []model.Record
}

// Service 负责 load -> merge -> persist
type Service struct {
	store  store.TableStore
	mu     sync.Locker
	logger *zap.Logger
	now    func() time.Time
}

// Option Service 可选项
type Option func(*Service)

// WithLocker 注入进程内写锁；跨进程互斥由存储的 WriteLocker 负责
func WithLocker(l sync.Locker) Option {
	return func(s *Service) { s.mu = l }
}

// WithLogger 注入 logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = logging.OrNop(l) }
}

// WithClock 注入时钟（测试用）
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService 创建 Service
func NewService(ts store.TableStore, opts ...Option) *Service {
	s := &Service{
		store:  ts,
		mu:     &sync.Mutex{},
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ReconcileYear 用提交内容整体替换 sub.Year 的记录并持久化
func (s *Service) ReconcileYear(ctx context.Context, sub model.Submission) (*Result, error) {
	timer := prometheus.NewTimer(metrics.ReconcileDuration)
	defer timer.ObserveDuration()

	savedAt := s.now()
	incoming := BuildIncoming(sub, savedAt)

	s.mu.Lock()
	defer s.mu.Unlock()

	// 进程内的锁挡不住另一个进程（import 命令与 serve）写同一份文件
	if wl, ok := s.store.(store.WriteLocker); ok {
		unlock, err := wl.LockWrites(ctx)
		if err != nil {
			metrics.ReconcileTotal.WithLabelValues(metrics.StatusFailed).Inc()
			return nil, fmt.Errorf("failed to lock store for year %d: %w", sub.Year, err)
		}
		defer unlock()
	}

	loadStart := time.Now()
	existing, err := s.store.Load(ctx)
	metrics.StoreLoadDuration.WithLabelValues("reconcile").Observe(time.Since(loadStart).Seconds())
	if err != nil {
		// 无法读取的表按空表处理，随后的保存会覆盖它
		s.logger.Warn("failed to load table, treating as empty",
			zap.Int("year", sub.Year),
			zap.Error(err),
		)
		existing = nil
	}

	merged := Reconcile(existing, sub.Year, incoming)

	if err := ctx.Err(); err != nil {
		metrics.ReconcileTotal.WithLabelValues(metrics.StatusCancelled).Inc()
		return nil, fmt.Errorf("reconcile year %d cancelled: %w", sub.Year, err)
	}

	if err := s.store.Save(ctx, merged); err != nil {
		metrics.ReconcileTotal.WithLabelValues(metrics.StatusFailed).Inc()
		s.logger.Error("failed to persist table",
			zap.Int("year", sub.Year),
			zap.Int("records", len(merged)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to persist year %d: %w", sub.Year, err)
	}

	res := &Result{
		AssessmentID: uuid.NewString(),
		SavedAt:      savedAt,
		Year:         sub.Year,
		Persisted:    len(merged),
		YearRecords:  YearSlice(merged, sub.Year),
	}

	metrics.ReconcileTotal.WithLabelValues(metrics.StatusSuccess).Inc()
	metrics.PersistedRecords.Set(float64(len(merged)))

	if sl, ok := s.store.(store.SaveLogger); ok {
		entry := store.SaveLogEntry{
			AssessmentID: res.AssessmentID,
			Year:         res.Year,
			Method:       sub.Method,
			YearRows:     len(res.YearRecords),
			TotalRows:    res.Persisted,
			SavedAt:      savedAt,
		}
		if err := sl.AppendSaveLog(ctx, entry); err != nil {
			s.logger.Warn("failed to append save log", zap.String("assessment_id", res.AssessmentID), zap.Error(err))
		}
	}

	s.logger.Info("year reconciled",
		zap.String("assessment_id", res.AssessmentID),
		zap.Int("year", res.Year),
		zap.Int("year_records", len(res.YearRecords)),
		zap.Int("persisted", res.Persisted),
		zap.String("method", sub.Method),
	)
	return res, nil
}
