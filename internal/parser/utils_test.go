package parser

import "testing"

func TestNormalizeColumnName(t *testing.T) {
	t.Parallel()

	if got := NormalizeColumnName("  Jumlah\nParameter \t Bobot "); got != "jumlah parameter bobot" {
		t.Fatalf("unexpected normalized name: %q", got)
	}
}

func TestParseNumber(t *testing.T) {
	t.Parallel()

	cases := map[string]float64{
		"80":       80,
		" 80.5 ":   80.5,
		"85%":      85,
		"85,5":     85.5,
		"1,250.5":  1250.5,
		"":         0,
		"n/a":      0,
		"NaN":      0,
		"Inf":      0,
		"-1":       -1,
		" 12,75 %": 12.75,
		// 没有小数点时逗号一律按小数点处理
		"1,250":    1.25,
	}
	for in, want := range cases {
		if got := ParseNumber(in); got != want {
			t.Errorf("ParseNumber(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestIsPlaceholder(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"", "  ", "nan", "NaN", " NAN "} {
		if !IsPlaceholder(v) {
			t.Errorf("IsPlaceholder(%q) = false", v)
		}
	}
	if IsPlaceholder("I") {
		t.Errorf("IsPlaceholder(\"I\") = true")
	}
}
