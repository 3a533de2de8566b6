// Package reconcile 实现按年份整体替换的记录合并。
//
// 保存一个年份时，该年份的旧记录全部丢弃，由新提交的记录替代；其它年份原样保留。
// 客户端删除的行不在新提交中，因此在这里自然消失，不存在单独的删除接口。
package reconcile

import (
	"sort"
	"strings"
	"time"

	"gcgviz/internal/model"
)

// ExportDateLayout 记录中 export_date 的格式
const ExportDateLayout = "2006-01-02"

// BuildIncoming 把一次提交转换为记录
//
// 主表行：序号为纯数字 -> indicator（level 2），否则 -> header（level 1）。
// 方面汇总：未编辑的占位行（纯罗马数字 section 且无描述）跳过；描述非空且 bobot 或 skor
// 非零的方面生成两条记录：header（仅描述）与 subtotal（"JUMLAH <section>"，携带分值）。
func BuildIncoming(sub model.Submission, savedAt time.Time) []model.Record {
	base := model.Record{
		Year:           sub.Year,
		Assessor:       strings.TrimSpace(sub.Assessor),
		AssessmentKind: strings.TrimSpace(sub.AssessmentKind),
		ExportDate:     savedAt.Format(ExportDateLayout),
	}

	incoming := make([]model.Record, 0, len(sub.Rows)+2*len(sub.AspectSummary))

	for _, row := range sub.Rows {
		r := base
		r.Section = strings.TrimSpace(row.Section)
		r.Number = strings.TrimSpace(row.Number)
		r.Description = strings.TrimSpace(row.Description)
		r.Weight = row.Weight
		r.Score = row.Score
		r.Achievement = row.Achievement
		r.Explanation = strings.TrimSpace(row.Explanation)

		if model.IsDigits(r.Number) {
			r.Kind = model.KindIndicator
			r.Level = model.LevelIndicator
			r.ParameterCount = max(row.ParameterCount, 0)
		} else {
			r.Kind = model.KindHeader
			r.Level = model.LevelSection
		}
		incoming = append(incoming, r.Sanitized())
	}

	for _, aspect := range sub.AspectSummary {
		section := strings.TrimSpace(aspect.Section)
		description := strings.TrimSpace(aspect.Description)

		if model.IsRomanNumeral(section) && description == "" {
			continue
		}
		if description == "" || (aspect.Weight == 0 && aspect.Score == 0) {
			continue
		}

		header := base
		header.Kind = model.KindHeader
		header.Level = model.LevelSection
		header.Section = section
		header.Description = description

		subtotal := base
		subtotal.Kind = model.KindSubtotal
		subtotal.Level = model.LevelSection
		subtotal.Section = section
		subtotal.Description = model.SubtotalPrefix + section
		subtotal.Weight = aspect.Weight
		subtotal.Score = aspect.Score
		subtotal.Achievement = aspect.Achievement
		subtotal.Explanation = strings.TrimSpace(aspect.Explanation)

		incoming = append(incoming, header.Sanitized(), subtotal.Sanitized())
	}

	return incoming
}

// Partition 按目标年份拆分：retained 为其它年份，discarded 为目标年份
func Partition(records []model.Record, year int) (retained, discarded []model.Record) {
	retained = make([]model.Record, 0, len(records))
	for _, r := range records {
		if r.Year == year {
			discarded = append(discarded, r)
			continue
		}
		retained = append(retained, r)
	}
	return retained, discarded
}

// Dedup 按 (year, section, number, description) 去重，保留最后一次出现（位置也取最后一次）
func Dedup(records []model.Record) []model.Record {
	seen := make(map[model.RecordKey]struct{}, len(records))
	out := make([]model.Record, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		key := records[i].Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, records[i])
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Less 复合排序键：year, section, kind 优先级, 数值序号（非数字视为 +Inf）
func Less(a, b model.Record) bool {
	if a.Year != b.Year {
		return a.Year < b.Year
	}
	if a.Section != b.Section {
		return a.Section < b.Section
	}
	if pa, pb := a.Kind.Priority(), b.Kind.Priority(); pa != pb {
		return pa < pb
	}
	return a.NumericNumber() < b.NumericNumber()
}

// Sort 稳定排序（原地）
func Sort(records []model.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return Less(records[i], records[j])
	})
}

// Reconcile 用 incoming 整体替换 existing 中 year 的切片，返回去重排序后的完整集合
func Reconcile(existing []model.Record, year int, incoming []model.Record) []model.Record {
	retained, _ := Partition(existing, year)

	merged := make([]model.Record, 0, len(retained)+len(incoming))
	merged = append(merged, retained...)
	for _, r := range incoming {
		r.Year = year
		merged = append(merged, r)
	}

	merged = Dedup(merged)
	Sort(merged)
	return merged
}

// YearSlice 返回某年份的记录（保持原顺序）
func YearSlice(records []model.Record, year int) []model.Record {
	_, slice := Partition(records, year)
	return slice
}
