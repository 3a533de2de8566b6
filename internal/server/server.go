package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gcgviz/internal/api"
	"gcgviz/internal/config"
	"gcgviz/internal/logging"
	"gcgviz/internal/metrics"
	"gcgviz/internal/service/reconcile"
	"gcgviz/internal/store"
)

// Server HTTP服务器
type Server struct {
	router *gin.Engine
	store  store.TableStore
	api    *api.Handler
	logger *zap.Logger
	http   *http.Server
}

// New 创建服务器；写锁在同一存储的所有写入者之间共享
func New(cfg *config.AppConfig, ts store.TableStore, writeLock sync.Locker, logger *zap.Logger) *Server {
	logger = logging.OrNop(logger)
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}
	if writeLock == nil {
		writeLock = &sync.Mutex{}
	}

	metrics.Register()

	svc := reconcile.NewService(ts, reconcile.WithLocker(writeLock), reconcile.WithLogger(logger))

	s := &Server{
		router: gin.New(),
		store:  ts,
		api:    api.NewHandler(ts, svc, logger, cfg.Upload.MaxBytes),
		logger: logger,
	}
	s.setupRoutes()
	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	s.router.Use(gin.Recovery(), s.requestLogger())

	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	group := s.router.Group("/api")
	{
		s.api.RegisterRoutes(group)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// requestLogger 访问日志
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

// Handler 返回 http.Handler（用于测试）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 启动服务器，ctx 取消后优雅关闭
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.String("addr", s.http.Addr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
