package parser

import (
	"regexp"
	"strconv"
	"strings"

	"gcgviz/internal/model"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// NormalizeColumnName 规范化列名：去除首尾空白、换行，压缩连续空白，转小写
func NormalizeColumnName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "\n", " ")
	name = strings.ReplaceAll(name, "\r", " ")
	name = strings.ReplaceAll(name, "\t", " ")
	name = whitespaceRe.ReplaceAllString(name, " ")
	return strings.ToLower(name)
}

// ContainsAny 返回第一个被包含的关键字
func ContainsAny(text string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return kw, true
		}
	}
	return "", false
}

// ParseNumber 解析数值单元格，失败时返回 model.FallbackNumber
// 支持: "80" / " 80.5 " / "85%" / "85,5"（小数逗号）/ "1,250.5"（千分位）；"1,250" 没有小数点，按小数逗号读作 1.25
func ParseNumber(raw string) float64 {
	val := strings.TrimSpace(raw)
	val = strings.TrimSuffix(val, "%")
	val = strings.TrimSpace(val)
	if val == "" {
		return model.FallbackNumber
	}
	if strings.Contains(val, ",") {
		if strings.Contains(val, ".") {
			// 千分位分隔符
			val = strings.ReplaceAll(val, ",", "")
		} else {
			val = strings.ReplaceAll(val, ",", ".")
		}
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return model.FallbackNumber
	}
	return model.FiniteOrFallback(f)
}

// IsPlaceholder 空值或字符串 NaN
func IsPlaceholder(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, model.PlaceholderNaN)
}
