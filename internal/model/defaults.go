package model

import "math"

// 脏数据兜底值。
//
// 读写流程对脏单元格采取"失败开放"策略：无法解析的数值记为 0，缺失的定性说明记为
// 固定文案，而不是报错。这会静默掩盖数据质量问题；改成严格校验属于行为变更，需要
// 产品确认后再做。
const (
	// FallbackNumber 无法解析的数值单元格
	FallbackNumber = 0.0
	// FallbackExplanation 视图中缺失的"penjelasan"
	FallbackExplanation = "-"
	// FallbackAssessor 年度元数据中缺失的评估人
	FallbackAssessor = "Unknown"
	// FallbackAssessmentKind 年度元数据中缺失的评估类型
	FallbackAssessmentKind = "Internal"
	// PlaceholderNaN 表格工具导出的字符串 NaN
	PlaceholderNaN = "nan"
	// SubtotalPrefix 小计行描述前缀
	SubtotalPrefix = "JUMLAH "
)

// FiniteOrFallback NaN/Inf 返回 FallbackNumber
func FiniteOrFallback(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return FallbackNumber
	}
	return v
}

// OrDefault 空字符串返回 fallback
func OrDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
