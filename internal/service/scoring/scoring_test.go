package scoring

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"gcgviz/internal/model"
)

func TestAchievement(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score, weight float64
		want          float64
	}{
		{80, 100, 80},
		{2, 3, 67},
		{1, 0, 100},
		{0, -5, 0},
		{2, -4, -50},
		{10, -4, -100},
	}
	for _, tc := range cases {
		if got := Achievement(tc.score, tc.weight); got != tc.want {
			t.Fatalf("Achievement(%v,%v) got=%v want=%v", tc.score, tc.weight, got, tc.want)
		}
	}
}

func TestLabel_Thresholds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score float64
		want  string
	}{
		{90, LabelExcellent},
		{86, LabelExcellent},
		{85, LabelGood},
		{76, LabelGood},
		{75, LabelFair},
		{61, LabelFair},
		{60, LabelPoor},
		{51, LabelPoor},
		{50, LabelBad},
		{0, LabelBad},
	}
	for _, tc := range cases {
		if got := Label(tc.score, 100); got != tc.want {
			t.Fatalf("Label(%v,100) got=%q want=%q", tc.score, got, tc.want)
		}
	}

	if got := Label(0, -3); got != LabelExcellent {
		t.Fatalf("negative weight, zero score: got=%q", got)
	}
	if got := Label(1, -3); got != LabelBad {
		t.Fatalf("negative weight, bad events: got=%q", got)
	}
}

func TestSummarizeAspects(t *testing.T) {
	t.Parallel()

	records := []model.Record{
		{Kind: model.KindHeader, Section: "I", Description: "Komitmen"},
		{Kind: model.KindIndicator, Section: "I", Number: "1", Weight: 2, Score: 1.5, ParameterCount: 3},
		{Kind: model.KindIndicator, Section: "I", Number: "2", Weight: 2, Score: 2, ParameterCount: 1},
		{Kind: model.KindIndicator, Section: "II", Number: "1", Description: "RUPS", Weight: -1, Score: 0.5},
		{Kind: model.KindSubtotal, Section: "I", Description: "JUMLAH I", Weight: 99, Score: 99},
	}

	got := SummarizeAspects(records)
	want := []model.AspectSummary{
		{Section: "I", Description: "Ringkasan Aspek I", ParameterCount: 4, Weight: 4, Score: 3.5, Achievement: 87.5, Explanation: LabelExcellent},
		{Section: "II", Description: "RUPS", Weight: 0.5, Score: 0.5, Achievement: 100, Explanation: LabelExcellent},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("SummarizeAspects mismatch (-want +got):\n%s", diff)
	}
}
