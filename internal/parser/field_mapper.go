package parser

import (
	"iter"
	"slices"
	"strings"

	"gcgviz/internal/model"
)

// FieldMapper 字段映射器：把外部表格的列按关键字映射到标准字段
//
// 匹配规则：列名小写后做子串包含；字段按 section, description, weight, score,
// achievement, explanation 的顺序尝试，字段内关键字按顺序尝试，首个命中即生效。
// 多个列命中同一字段时，靠后的列覆盖靠前的列。已存储文件依赖这套规则，不要收紧。
type FieldMapper struct{}

// NewFieldMapper 创建字段映射器
func NewFieldMapper() *FieldMapper {
	return &FieldMapper{}
}

// MatchColumn 返回单个列名命中的字段与关键字
func (m *FieldMapper) MatchColumn(columnName string) (Field, string, bool) {
	col := NormalizeColumnName(columnName)
	if col == "" {
		return "", "", false
	}
	for _, fk := range fieldKeywords {
		if kw, ok := ContainsAny(col, fk.Keywords); ok {
			return fk.Field, kw, true
		}
	}
	return "", "", false
}

// Resolve 解析列名 -> 字段映射（同字段后列覆盖前列）
func (m *FieldMapper) Resolve(columns []string) map[Field]model.ColumnMapping {
	mappings := make(map[Field]model.ColumnMapping)
	for idx, name := range columns {
		field, kw, ok := m.MatchColumn(name)
		if !ok {
			continue
		}
		mappings[field] = model.ColumnMapping{
			ColumnIndex: idx,
			ColumnName:  name,
			Field:       string(field),
			Keyword:     kw,
		}
	}
	return mappings
}

// ResolvedColumns 按列顺序返回映射结果（用于诊断展示）
func (m *FieldMapper) ResolvedColumns(columns []string) []model.ColumnMapping {
	resolved := m.Resolve(columns)
	out := make([]model.ColumnMapping, 0, len(resolved))
	for _, cm := range resolved {
		out = append(out, cm)
	}
	slices.SortFunc(out, func(a, b model.ColumnMapping) int {
		return a.ColumnIndex - b.ColumnIndex
	})
	return out
}

// Map 惰性地把 sheet 行转换为摘要形态的部分记录
// 行数不在摘要范围内的 sheet 不产出任何记录；section 为空或为 "nan" 的行被跳过。
func (m *FieldMapper) Map(sheet Sheet) iter.Seq[model.Record] {
	return func(yield func(model.Record) bool) {
		if !sheet.Eligible() {
			return
		}
		mappings := m.Resolve(sheet.Columns)
		if _, ok := mappings[FieldSection]; !ok {
			return
		}

		for _, row := range sheet.Rows {
			cell := func(f Field) string {
				cm, ok := mappings[f]
				if !ok || cm.ColumnIndex >= len(row) {
					return ""
				}
				return strings.TrimSpace(row[cm.ColumnIndex])
			}

			section := cell(FieldSection)
			if IsPlaceholder(section) {
				continue
			}

			rec := model.Record{
				Section:     section,
				Description: cell(FieldDescription),
				Weight:      ParseNumber(cell(FieldWeight)),
				Score:       ParseNumber(cell(FieldScore)),
				Achievement: ParseNumber(cell(FieldAchievement)),
				Explanation: cell(FieldExplanation),
			}
			if IsPlaceholder(rec.Description) {
				rec.Description = ""
			}
			if IsPlaceholder(rec.Explanation) {
				rec.Explanation = ""
			}
			if !yield(rec) {
				return
			}
		}
	}
}

// MapAll 收集 Map 的全部结果
func (m *FieldMapper) MapAll(sheet Sheet) []model.Record {
	return slices.Collect(m.Map(sheet))
}
