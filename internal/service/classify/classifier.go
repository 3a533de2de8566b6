// Package classify 判断评分表的结构形态（BRIEF / DETAILED）。
//
// 两条规则互相独立：ClassifySheet 只看原始表格行数，用于导入前的粗分；
// ClassifyRecords 看记录的 kind 分布，记录存在后以它为准。两者对同一份数据可能给出
// 不同结论，这是预期行为。
package classify

import "gcgviz/internal/model"

const (
	// BriefSheetMaxRows 原始 sheet 行数不超过该值时预判为 BRIEF
	BriefSheetMaxRows = 15
	// DetailedMinIndicators DETAILED 需要的指标行数（严格大于）
	DetailedMinIndicators = 10
)

// ClassifySheet 按原始行数预判形态
func ClassifySheet(rowCount int) model.FormatType {
	if rowCount <= BriefSheetMaxRows {
		return model.FormatBrief
	}
	return model.FormatDetailed
}

// Counts 记录按 kind 的计数
type Counts struct {
	Headers    int
	Indicators int
	Subtotals  int
}

// CountKinds 统计 kind 分布
func CountKinds(records []model.Record) Counts {
	var c Counts
	for _, r := range records {
		switch r.Kind {
		case model.KindHeader:
			c.Headers++
		case model.KindIndicator:
			c.Indicators++
		case model.KindSubtotal:
			c.Subtotals++
		}
	}
	return c
}

// ClassifyRecords 按已存储记录判定形态：指标行 > 10 且至少一行小计为 DETAILED，否则 BRIEF
func ClassifyRecords(records []model.Record) model.FormatType {
	c := CountKinds(records)
	if c.Indicators > DetailedMinIndicators && c.Subtotals > 0 {
		return model.FormatDetailed
	}
	return model.FormatBrief
}
