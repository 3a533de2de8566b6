package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gcgviz/internal/importer"
	"gcgviz/internal/logging"
	"gcgviz/internal/model"
	"gcgviz/internal/service/reconcile"
	"gcgviz/internal/service/view"
	"gcgviz/internal/store"
)

// DefaultMaxUploadBytes 上传文件大小上限的默认值
const DefaultMaxUploadBytes int64 = 16 << 20

// Reconciler 整年保存
type Reconciler interface {
	ReconcileYear(ctx context.Context, sub model.Submission) (*reconcile.Result, error)
}

// Handler API 处理器
type Handler struct {
	store          store.TableStore
	reconciler     Reconciler
	views          *view.Builder
	coordinator    *importer.Coordinator
	logger         *zap.Logger
	maxUploadBytes int64
}

// NewHandler 创建 API 处理器
func NewHandler(ts store.TableStore, reconciler Reconciler, logger *zap.Logger, maxUploadBytes int64) *Handler {
	logger = logging.OrNop(logger)
	if maxUploadBytes <= 0 {
		maxUploadBytes = DefaultMaxUploadBytes
	}
	return &Handler{
		store:          ts,
		reconciler:     reconciler,
		views:          view.NewBuilder(ts, logger),
		coordinator:    importer.NewCoordinator(logger),
		logger:         logger,
		maxUploadBytes: maxUploadBytes,
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/health", h.Health)

	// 整年保存 / 读取
	router.POST("/save", h.Save)
	router.GET("/load/:year", h.LoadYear)
	router.GET("/save-logs", h.ListSaveLogs)

	// 仪表盘
	router.GET("/dashboard", h.Dashboard)
	router.GET("/dashboard-data", h.Dashboard)

	// 上传解析（不落盘）
	router.POST("/upload", h.Upload)

	// 导出全表
	router.GET("/export", h.Export)
}
