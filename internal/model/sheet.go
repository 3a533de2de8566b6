package model

// ColumnMapping 外部表格列与标准字段的对应关系
type ColumnMapping struct {
	ColumnIndex int    `json:"columnIndex"` // Excel 列索引
	ColumnName  string `json:"columnName"`  // Excel 列名
	Field       string `json:"field"`       // 标准字段名
	Keyword     string `json:"keyword"`     // 命中的关键字
}

// SheetReport 上传工作簿中单个 sheet 的识别结果
type SheetReport struct {
	SheetName  string          `json:"sheetName"`
	RowCount   int             `json:"rowCount"`
	Eligible   bool            `json:"eligible"`
	FormatType FormatType      `json:"formatType"`
	Columns    []ColumnMapping `json:"columns"`
	Mapped     int             `json:"mapped"`
}

// ExtractReport 上传文件的摘要抽取结果（不落库）
type ExtractReport struct {
	Filename      string          `json:"filename"`
	TotalSheets   int             `json:"totalSheets"`
	SourceSheet   string          `json:"sourceSheet"`
	FormatType    FormatType      `json:"format_type"`
	Records       []Record        `json:"data"`
	AspectSummary []AspectSummary `json:"aspek_summary_data"`
	Sheets        []SheetReport   `json:"sheets"`
}
