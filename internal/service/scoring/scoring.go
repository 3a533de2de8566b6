// Package scoring 计算达成率（capaian）与定性说明（penjelasan），并把指标汇总为方面小计。
package scoring

import (
	"math"
	"strings"

	"gcgviz/internal/model"
)

// 定性说明文案
const (
	LabelExcellent = "Sangat Baik"
	LabelGood      = "Baik"
	LabelFair      = "Cukup Baik"
	LabelPoor      = "Kurang Baik"
	LabelBad       = "Tidak Baik"
)

// roundHalfUp 与前端一致：.5 向正无穷取整
func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

// Achievement 达成率（百分比，取整）
//
// bobot 为 0 视为满分；bobot 为负表示"负面事项"评估：skor 为 0 记 0%，否则按
// -(min(|skor|,|bobot|)/|bobot|)*100 计，下限 -100%。
func Achievement(score, weight float64) float64 {
	score = model.FiniteOrFallback(score)
	weight = model.FiniteOrFallback(weight)

	if weight == 0 {
		return 100
	}
	if weight < 0 {
		if score == 0 {
			return 0
		}
		absWeight := math.Abs(weight)
		ratio := math.Min(math.Abs(score), absWeight) / absWeight
		return -roundHalfUp(ratio * 100)
	}
	return roundHalfUp(score / weight * 100)
}

// Label 定性说明
func Label(score, weight float64) string {
	if weight < 0 {
		if score == 0 {
			return LabelExcellent
		}
		return LabelBad
	}

	capaian := Achievement(score, weight)
	switch {
	case capaian > 85:
		return LabelExcellent
	case capaian >= 76:
		return LabelGood
	case capaian >= 61:
		return LabelFair
	case capaian >= 51:
		return LabelPoor
	default:
		return LabelBad
	}
}

// SummarizeAspects 按 section 汇总指标行（header/subtotal 行不参与），顺序为 section 首次出现的顺序
// 负 bobot 的指标以 skor 计入 bobot 合计。
func SummarizeAspects(records []model.Record) []model.AspectSummary {
	type group struct {
		summary model.AspectSummary
		count   int
	}

	order := make([]string, 0)
	groups := make(map[string]*group)

	for _, r := range records {
		if r.Kind == model.KindHeader || r.Kind == model.KindSubtotal || r.Kind == model.KindTotal {
			continue
		}
		section := strings.TrimSpace(r.Section)
		if section == "" {
			continue
		}
		g, ok := groups[section]
		if !ok {
			g = &group{summary: model.AspectSummary{Section: section}}
			groups[section] = g
			order = append(order, section)
		}

		weight := model.FiniteOrFallback(r.Weight)
		score := model.FiniteOrFallback(r.Score)
		if weight < 0 {
			g.summary.Weight += score
		} else {
			g.summary.Weight += weight
		}
		g.summary.Score += score
		g.summary.ParameterCount += r.ParameterCount
		if g.summary.Description == "" {
			g.summary.Description = r.Description
		}
		g.count++
	}

	out := make([]model.AspectSummary, 0, len(order))
	for _, section := range order {
		s := groups[section].summary
		if groups[section].count > 1 || s.Description == "" {
			s.Description = "Ringkasan Aspek " + section
		}
		if s.Weight > 0 {
			s.Achievement = s.Score / s.Weight * 100
		}
		s.Explanation = Label(s.Score, s.Weight)
		out = append(out, s)
	}
	return out
}
