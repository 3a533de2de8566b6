package model

// SubmissionRow 客户端提交的表格行
type SubmissionRow struct {
	Number         string  `json:"no"`
	Section        string  `json:"aspek"`
	Description    string  `json:"deskripsi"`
	ParameterCount int     `json:"jumlah_parameter"`
	Weight         float64 `json:"bobot"`
	Score          float64 `json:"skor"`
	Achievement    float64 `json:"capaian"`
	Explanation    string  `json:"penjelasan"`
}

// Submission 一次整年保存的提交内容
type Submission struct {
	Year           int             `json:"year"`
	Rows           []SubmissionRow `json:"data"`
	AspectSummary  []SubmissionRow `json:"aspectSummaryData"`
	Assessor       string          `json:"auditor"`
	AssessmentKind string          `json:"jenis_asesmen"`
	Method         string          `json:"method"`
}

// AspectSummary 方面汇总（小计行的视图形态）
type AspectSummary struct {
	Section        string  `json:"aspek"`
	Description    string  `json:"deskripsi"`
	ParameterCount int     `json:"jumlah_parameter"`
	Weight         float64 `json:"bobot"`
	Score          float64 `json:"skor"`
	Achievement    float64 `json:"capaian"`
	Explanation    string  `json:"penjelasan"`
}

// YearView 单年编辑视图
type YearView struct {
	Year           int             `json:"year"`
	FormatType     FormatType      `json:"format_type"`
	Rows           []Record        `json:"data"`
	AspectSummary  []AspectSummary `json:"aspek_summary_data"`
	Auditor        string          `json:"auditor"`
	AssessmentKind string          `json:"jenis_asesmen"`
	Summary        string          `json:"summary"`
}

// IsDetailed 是否为 DETAILED 形态
func (v *YearView) IsDetailed() bool {
	return v.FormatType == FormatDetailed
}

// SectionAchievement 仪表盘中单个方面的达成率
type SectionAchievement struct {
	Section     string  `json:"section"`
	Weight      float64 `json:"bobot"`
	Score       float64 `json:"skor"`
	Achievement float64 `json:"capaian"`
}

// YearBucket 仪表盘中单个年份的数据
type YearBucket struct {
	Auditor        string               `json:"auditor"`
	AssessmentKind string               `json:"jenis_asesmen"`
	TotalScore     float64              `json:"total_score"`
	Sections       []SectionAchievement `json:"sections"`
	Records        []Record             `json:"data"`
}

// Dashboard 全年份聚合
type Dashboard struct {
	Years          map[int]*YearBucket `json:"years_data"`
	AvailableYears []int               `json:"available_years"`
}
