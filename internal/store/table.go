package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"gcgviz/internal/model"
)

// 支持的存储后端
const (
	BackendXLSX   = "xlsx"
	BackendSQLite = "sqlite"
)

// ErrUnsupportedBackend 未知的存储后端
var ErrUnsupportedBackend = errors.New("unsupported store backend")

// TableStore 全量记录表的读写
//
// Load 在底层文件不存在时返回空集合而不是错误；Save 整体覆盖且对读者原子可见。
type TableStore interface {
	Load(ctx context.Context) ([]model.Record, error)
	Save(ctx context.Context, records []model.Record) error
}

// SaveLogEntry 一次整年保存的审计记录
type SaveLogEntry struct {
	AssessmentID string    `json:"assessment_id"`
	Year         int       `json:"year"`
	Method       string    `json:"method"`
	YearRows     int       `json:"year_rows"`
	TotalRows    int       `json:"total_rows"`
	SavedAt      time.Time `json:"saved_at"`
}

// SaveLogger 可选能力：记录保存日志（审计用途，不保存历史版本）
type SaveLogger interface {
	AppendSaveLog(ctx context.Context, entry SaveLogEntry) error
}

// SaveLogReader 可选能力：查询保存日志
type SaveLogReader interface {
	ListSaveLogs(ctx context.Context, year int, limit int) ([]SaveLogEntry, error)
}

// Open 按后端名创建存储；path 为相对 dataDir 的文件名或绝对路径
func Open(backend, dataDir, path string) (TableStore, error) {
	if path != "" && !filepath.IsAbs(path) {
		path = filepath.Join(dataDir, path)
	}

	switch backend {
	case "", BackendXLSX:
		if path == "" {
			path = filepath.Join(dataDir, "output.xlsx")
		}
		return NewXLSXStore(path), nil
	case BackendSQLite:
		if path == "" {
			path = filepath.Join(dataDir, "gcgviz.db")
		}
		return New(path)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, backend)
	}
}
