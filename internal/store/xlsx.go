package store

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"gcgviz/internal/model"
)

// SheetName 记录表所在 sheet
const SheetName = "GCG"

// XLSXStore 以单个 xlsx 文件作为全量记录表
type XLSXStore struct {
	path string
}

// NewXLSXStore 创建 xlsx 存储
func NewXLSXStore(path string) *XLSXStore {
	return &XLSXStore{path: path}
}

// Path 文件路径
func (s *XLSXStore) Path() string {
	return s.path
}

// LockWrites 在 <path>.lock 上获取跨进程写锁
func (s *XLSXStore) LockWrites(ctx context.Context) (func(), error) {
	return lockFile(ctx, s.path+".lock")
}

// Load 读取全部记录；文件不存在返回空集合
func (s *XLSXStore) Load(ctx context.Context) ([]model.Record, error) {
	if !fileExists(s.path) {
		return []model.Record{}, nil
	}

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := SheetName
	if idx, _ := f.GetSheetIndex(sheet); idx < 0 {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return []model.Record{}, nil
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	if len(rows) <= 1 {
		return []model.Record{}, nil
	}

	idx := headerIndex(rows[0])
	records := make([]model.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if i%512 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if isEmptyRow(row) {
			continue
		}
		records = append(records, decodeRow(row, idx))
	}
	return records, nil
}

// Save 整体覆盖写入（写临时文件后 rename）
func (s *XLSXStore) Save(ctx context.Context, records []model.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := EncodeWorkbook(records)
	if err != nil {
		return err
	}
	if err := writeBytesAtomic(s.path, data); err != nil {
		return fmt.Errorf("failed to persist table: %w", err)
	}
	return nil
}

// EncodeWorkbook 把记录编码为单 sheet 的 xlsx 内容（存储与导出共用）
func EncodeWorkbook(records []model.Record) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
	})
	if err == nil {
		_ = f.SetRowStyle(SheetName, 1, 1, headerStyle)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		row := encodeRow(r)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	_ = f.SetColWidth(SheetName, "E", "E", 60)
	_ = f.SetColWidth(SheetName, "J", "J", 20)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func isEmptyRow(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
