package store

import (
	"strconv"
	"strings"

	"gcgviz/internal/model"
	"gcgviz/internal/parser"
)

// Columns 持久化列（与历史 output.xlsx 保持一致）
var Columns = []string{
	"Level",
	"Type",
	"Section",
	"No",
	"Deskripsi",
	"Jumlah_Parameter",
	"Bobot",
	"Skor",
	"Capaian",
	"Penjelasan",
	"Tahun",
	"Penilai",
	"Jenis_Penilaian",
	"Export_Date",
}

// encodeRow 记录 -> 行（按 Columns 顺序）
func encodeRow(r model.Record) []interface{} {
	return []interface{}{
		string(r.Level),
		string(r.Kind),
		r.Section,
		r.Number,
		r.Description,
		r.ParameterCount,
		r.Weight,
		r.Score,
		r.Achievement,
		r.Explanation,
		r.Year,
		r.Assessor,
		r.AssessmentKind,
		r.ExportDate,
	}
}

// headerIndex 列名 -> 索引（忽略大小写与首尾空白）
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, ok := idx[key]; !ok {
			idx[key] = i
		}
	}
	return idx
}

// decodeRow 行 -> 记录；脏单元格按兜底值处理，不返回错误
func decodeRow(row []string, idx map[string]int) model.Record {
	get := func(col string) string {
		i, ok := idx[strings.ToLower(col)]
		if !ok || i >= len(row) {
			return ""
		}
		v := strings.TrimSpace(row[i])
		if strings.EqualFold(v, model.PlaceholderNaN) {
			return ""
		}
		return v
	}

	r := model.Record{
		Level:          model.Level(normalizeInteger(get("Level"))),
		Kind:           model.Kind(strings.ToLower(get("Type"))),
		Section:        get("Section"),
		Number:         normalizeInteger(get("No")),
		Description:    get("Deskripsi"),
		ParameterCount: int(parser.ParseNumber(get("Jumlah_Parameter"))),
		Weight:         parser.ParseNumber(get("Bobot")),
		Score:          parser.ParseNumber(get("Skor")),
		Achievement:    parser.ParseNumber(get("Capaian")),
		Explanation:    get("Penjelasan"),
		Year:           int(parser.ParseNumber(get("Tahun"))),
		Assessor:       get("Penilai"),
		AssessmentKind: get("Jenis_Penilaian"),
		ExportDate:     get("Export_Date"),
	}
	return r.Sanitized()
}

// normalizeInteger "3.0" -> "3"；其它值原样返回
func normalizeInteger(v string) string {
	if v == "" || model.IsDigits(v) {
		return v
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != float64(int64(f)) {
		return v
	}
	return strconv.FormatInt(int64(f), 10)
}
