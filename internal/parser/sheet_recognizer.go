package parser

import (
	"strings"

	"gcgviz/internal/model"
	"gcgviz/internal/service/classify"
)

// headerScanRows 表头可能出现的前几行（外部文件常带标题行）
const headerScanRows = 5

// SheetRecognizer Sheet 识别器：定位表头、统计数据行、给出预判形态
type SheetRecognizer struct {
	mapper *FieldMapper
}

// NewSheetRecognizer 创建识别器
func NewSheetRecognizer(mapper *FieldMapper) *SheetRecognizer {
	if mapper == nil {
		mapper = NewFieldMapper()
	}
	return &SheetRecognizer{mapper: mapper}
}

// BuildSheet 从原始行构建 Sheet
// 表头取前几行中第一个能解析出 section 列的行，找不到时取第一行；全空的数据行被丢弃。
func (r *SheetRecognizer) BuildSheet(name string, rows [][]string) Sheet {
	sheet := Sheet{Name: name}
	if len(rows) == 0 {
		return sheet
	}

	headerIdx := 0
	for i := 0; i < len(rows) && i < headerScanRows; i++ {
		if _, ok := r.mapper.Resolve(rows[i])[FieldSection]; ok {
			headerIdx = i
			break
		}
	}

	sheet.Columns = rows[headerIdx]
	for _, row := range rows[headerIdx+1:] {
		if isBlankRow(row) {
			continue
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet
}

// Recognize 识别 sheet：是否可作为摘要表、列映射、按行数预判的形态
func (r *SheetRecognizer) Recognize(sheet Sheet) model.SheetReport {
	return model.SheetReport{
		SheetName:  sheet.Name,
		RowCount:   sheet.RowCount(),
		Eligible:   sheet.Eligible(),
		FormatType: classify.ClassifySheet(sheet.RowCount()),
		Columns:    r.mapper.ResolvedColumns(sheet.Columns),
	}
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
