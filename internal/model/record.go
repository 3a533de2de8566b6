package model

import (
	"math"
	"strconv"
	"strings"
)

// Level 行层级
type Level string

const (
	LevelSection   Level = "1" // 章节级（标题/小计）
	LevelIndicator Level = "2" // 指标级
)

// Kind 行的结构角色
type Kind string

const (
	KindHeader    Kind = "header"
	KindIndicator Kind = "indicator"
	KindSubtotal  Kind = "subtotal"
	// KindTotal 仅出现在旧版导出文件中，读取时容忍，不会由保存流程生成
	KindTotal Kind = "total"
)

// Priority 同一年份内的排序优先级：header < indicator < subtotal < 其它
func (k Kind) Priority() int {
	switch k {
	case KindHeader:
		return 0
	case KindIndicator:
		return 1
	case KindSubtotal:
		return 2
	default:
		return 3
	}
}

// FormatType 评分表结构形态
type FormatType string

const (
	FormatBrief    FormatType = "BRIEF"
	FormatDetailed FormatType = "DETAILED"
)

// Record 评分表中的一行（存储的唯一实体）
type Record struct {
	Level          Level   `json:"level"`
	Kind           Kind    `json:"type"`
	Section        string  `json:"section"`
	Number         string  `json:"no"`
	Description    string  `json:"deskripsi"`
	ParameterCount int     `json:"jumlah_parameter"`
	Weight         float64 `json:"bobot"`
	Score          float64 `json:"skor"`
	Achievement    float64 `json:"capaian"`
	Explanation    string  `json:"penjelasan"`
	Year           int     `json:"tahun"`
	Assessor       string  `json:"penilai"`
	AssessmentKind string  `json:"jenis_penilaian"`
	ExportDate     string  `json:"export_date"`
}

// RecordKey 去重键 (year, section, number, description)
type RecordKey struct {
	Year        int
	Section     string
	Number      string
	Description string
}

// Key 返回记录的去重键
func (r Record) Key() RecordKey {
	return RecordKey{
		Year:        r.Year,
		Section:     r.Section,
		Number:      r.Number,
		Description: r.Description,
	}
}

// NumericNumber 序号的数值形式；非数字或为空时返回 +Inf，使其排在最后
func (r Record) NumericNumber() float64 {
	n := strings.TrimSpace(r.Number)
	if n == "" {
		return math.Inf(1)
	}
	v, err := strconv.ParseFloat(n, 64)
	if err != nil || math.IsNaN(v) {
		return math.Inf(1)
	}
	return v
}

// Sanitized 返回数值字段 NaN/Inf 归零后的副本
func (r Record) Sanitized() Record {
	r.Weight = FiniteOrFallback(r.Weight)
	r.Score = FiniteOrFallback(r.Score)
	r.Achievement = FiniteOrFallback(r.Achievement)
	if r.ParameterCount < 0 {
		r.ParameterCount = 0
	}
	return r
}

// IsDigits 判断字符串是否为纯数字（用于区分指标行与标题行）
func IsDigits(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// IsRomanNumeral 判断是否为纯罗马数字的方面代码（I, II, ... VI 等）
func IsRomanNumeral(s string) bool {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return false
	}
	for _, c := range s {
		switch c {
		case 'I', 'V', 'X', 'L', 'C', 'D', 'M':
		default:
			return false
		}
	}
	return true
}
