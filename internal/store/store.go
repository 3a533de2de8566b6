package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"gcgviz/internal/model"
)

//go:embed schema.sql
var schemaFS embed.FS

// Store SQLite 记录表存储
//
// 与 xlsx 后端语义相同：Save 在单个事务内清空并重写 records，读者只会看到提交前或提交后的状态。
type Store struct {
	db   *sql.DB
	path string
}

// New 创建新的 Store 实例
func New(dbPath string) (*Store, error) {
	// 确保 data 目录存在
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite 建议单连接
	db.SetMaxIdleConns(1)

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema 初始化数据库结构
func (s *Store) initSchema() error {
	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := s.db.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// Close 关闭数据库连接
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LockWrites 在 <dbPath>.lock 上获取跨进程写锁（Load 与 Save 是两个独立事务）
func (s *Store) LockWrites(ctx context.Context) (func(), error) {
	return lockFile(ctx, s.path+".lock")
}

// Load 按写入顺序读取全部记录
func (s *Store) Load(ctx context.Context) ([]model.Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT level, type, section, no, deskripsi, jumlah_parameter, bobot, skor, capaian,
		       penjelasan, tahun, penilai, jenis_penilaian, export_date
		FROM records
		ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("query records failed: %w", err)
	}
	defer rows.Close()

	records := []model.Record{}
	for rows.Next() {
		var (
			r           model.Record
			level, kind string
		)
		if err := rows.Scan(
			&level, &kind, &r.Section, &r.Number, &r.Description, &r.ParameterCount,
			&r.Weight, &r.Score, &r.Achievement, &r.Explanation, &r.Year,
			&r.Assessor, &r.AssessmentKind, &r.ExportDate,
		); err != nil {
			return nil, fmt.Errorf("scan record failed: %w", err)
		}
		r.Level = model.Level(level)
		r.Kind = model.Kind(kind)
		records = append(records, r.Sanitized())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records failed: %w", err)
	}
	return records, nil
}

// Save 事务内整体替换 records
func (s *Store) Save(ctx context.Context, records []model.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (
			seq, level, type, section, no, deskripsi, jumlah_parameter, bobot, skor, capaian,
			penjelasan, tahun, penilai, jenis_penilaian, export_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx,
			i+1, string(r.Level), string(r.Kind), r.Section, r.Number, r.Description, r.ParameterCount,
			r.Weight, r.Score, r.Achievement, r.Explanation, r.Year,
			r.Assessor, r.AssessmentKind, r.ExportDate,
		); err != nil {
			return fmt.Errorf("failed to insert record %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit records: %w", err)
	}
	return nil
}

// AppendSaveLog 记录一次保存
func (s *Store) AppendSaveLog(ctx context.Context, entry SaveLogEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO save_logs (assessment_id, tahun, method, year_rows, total_rows, saved_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.AssessmentID, entry.Year, entry.Method, entry.YearRows, entry.TotalRows, entry.SavedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to append save log: %w", err)
	}
	return nil
}

// ListSaveLogs 按时间倒序列出某年份的保存记录（year <= 0 表示全部）
func (s *Store) ListSaveLogs(ctx context.Context, year int, limit int) ([]SaveLogEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT assessment_id, tahun, method, year_rows, total_rows, saved_at
		FROM save_logs
		WHERE ? <= 0 OR tahun = ?
		ORDER BY saved_at DESC
		LIMIT ?
	`, year, year, limit)
	if err != nil {
		return nil, fmt.Errorf("query save logs failed: %w", err)
	}
	defer rows.Close()

	var out []SaveLogEntry
	for rows.Next() {
		var e SaveLogEntry
		if err := rows.Scan(&e.AssessmentID, &e.Year, &e.Method, &e.YearRows, &e.TotalRows, &e.SavedAt); err != nil {
			return nil, fmt.Errorf("scan save log failed: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate save logs failed: %w", err)
	}
	return out, nil
}
