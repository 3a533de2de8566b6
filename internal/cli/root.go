// Package cli gcgviz 命令行
package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gcgviz/internal/config"
	"gcgviz/internal/logging"
	"gcgviz/internal/store"
)

// App 命令执行期间共享的依赖
type App struct {
	ConfigPath string
	LogLevel   string
	DataDir    string

	Config *config.AppConfig
	Logger *zap.Logger
	Store  store.TableStore
	// WriteLock 进程内所有写入者共享
	WriteLock sync.Locker

	Out io.Writer
}

// NewRootCmd 构建命令树
func NewRootCmd() *cobra.Command {
	app := &App{WriteLock: &sync.Mutex{}}

	root := &cobra.Command{
		Use:   "gcgviz",
		Short: "GCG governance scorecard store",
		Long: `gcgviz keeps yearly GCG (Good Corporate Governance) assessment scorecards in a
single flat table. Each save replaces one year's rows as a whole; other years are
never touched.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			app.Out = cmd.OutOrStdout()
			return app.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.close()
		},
	}

	root.PersistentFlags().StringVarP(&app.ConfigPath, "config", "c", "", "配置文件路径 (默认: 可执行文件同目录 config.toml)")
	root.PersistentFlags().StringVar(&app.LogLevel, "log-level", "", "日志级别 (覆盖配置文件)")
	root.PersistentFlags().StringVar(&app.DataDir, "data-dir", "", "数据目录 (覆盖配置文件)")

	root.AddCommand(serveCmd(app))
	root.AddCommand(importCmd(app))
	root.AddCommand(showCmd(app))
	root.AddCommand(dashboardCmd(app))
	root.AddCommand(historyCmd(app))
	root.AddCommand(configCmd(app))
	return root
}

// configFile --config 或默认路径
func (a *App) configFile() string {
	if a.ConfigPath != "" {
		return a.ConfigPath
	}
	return config.DefaultPath()
}

// setup 加载配置、日志与存储
func (a *App) setup() error {
	path := a.configFile()
	cfg, _, err := config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if a.LogLevel != "" {
		cfg.Log.Level = a.LogLevel
	}
	if a.DataDir != "" {
		cfg.Data.DataDir = a.DataDir
	}
	a.Config = cfg

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.Logger = logger

	dataDir, err := config.ResolveDataDir(cfg)
	if err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	ts, err := store.Open(cfg.Store.Backend, dataDir, cfg.Store.File)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	a.Store = ts

	a.Logger.Debug("store opened",
		zap.String("backend", cfg.Store.Backend),
		zap.String("data_dir", dataDir),
	)
	return nil
}

func (a *App) close() {
	if c, ok := a.Store.(io.Closer); ok {
		_ = c.Close()
	}
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
}
