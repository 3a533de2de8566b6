package parser

// Field 标准字段名（摘要子集）
type Field string

const (
	FieldSection     Field = "section"
	FieldDescription Field = "description"
	FieldWeight      Field = "weight"
	FieldScore       Field = "score"
	FieldAchievement Field = "achievement"
	FieldExplanation Field = "explanation"
)

// 可作为摘要表的行数范围（不含表头）
const (
	MinSummaryRows = 3
	MaxSummaryRows = 20
)

// Sheet 外部表格的一个工作表：列名 + 原始单元格
type Sheet struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// RowCount 数据行数
func (s Sheet) RowCount() int {
	return len(s.Rows)
}

// Eligible 行数是否落在摘要表范围内
func (s Sheet) Eligible() bool {
	n := s.RowCount()
	return n >= MinSummaryRows && n <= MaxSummaryRows
}

// fieldKeywords 每个标准字段的关键字（按匹配顺序）
var fieldKeywords = []struct {
	Field    Field
	Keywords []string
}{
	{FieldSection, []string{"aspek", "section", "aspect"}},
	{FieldDescription, []string{"deskripsi", "description", "uraian"}},
	{FieldWeight, []string{"bobot", "weight"}},
	{FieldScore, []string{"skor", "score"}},
	{FieldAchievement, []string{"capaian", "achievement"}},
	{FieldExplanation, []string{"penjelasan", "explanation", "keterangan"}},
}
