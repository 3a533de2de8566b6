package parser

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"gcgviz/internal/model"
)

func TestFieldMapper_MatchColumn(t *testing.T) {
	t.Parallel()

	m := NewFieldMapper()
	cases := []struct {
		column string
		field  Field
		ok     bool
	}{
		{"Aspek", FieldSection, true},
		{"ASPECT CODE", FieldSection, true},
		{"Uraian", FieldDescription, true},
		{"Bobot (%)", FieldWeight, true},
		{"Total Score", FieldScore, true},
		{"Capaian", FieldAchievement, true},
		{"Keterangan", FieldExplanation, true},
		// 按字段顺序，section 优先于 score
		{"Skor Aspek", FieldSection, true},
		{"Penilai", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		field, _, ok := m.MatchColumn(tc.column)
		if field != tc.field || ok != tc.ok {
			t.Errorf("MatchColumn(%q) = %q,%v want %q,%v", tc.column, field, ok, tc.field, tc.ok)
		}
	}
}

func TestFieldMapper_LaterColumnWins(t *testing.T) {
	t.Parallel()

	resolved := NewFieldMapper().Resolve([]string{"Skor", "Aspek", "Score Akhir"})
	if got := resolved[FieldScore].ColumnIndex; got != 2 {
		t.Fatalf("score should resolve to the later column, got %d", got)
	}
}

func TestFieldMapper_PartialRecords(t *testing.T) {
	t.Parallel()

	rows := make([][]string, 8)
	for i := range rows {
		rows[i] = []string{fmt.Sprintf("A%d", i+1), fmt.Sprint(10 + i), fmt.Sprint(20 + i)}
	}
	sheet := Sheet{Name: "Ringkasan", Columns: []string{"Aspek", "Skor", "Bobot"}, Rows: rows}

	got := NewFieldMapper().MapAll(sheet)
	if len(got) != 8 {
		t.Fatalf("expected 8 records, got %d", len(got))
	}
	for i, r := range got {
		want := model.Record{
			Section: fmt.Sprintf("A%d", i+1),
			Score:   float64(10 + i),
			Weight:  float64(20 + i),
		}
		if diff := cmp.Diff(want, r); diff != "" {
			t.Errorf("record %d (-want +got):\n%s", i, diff)
		}
	}
}

func TestFieldMapper_SkipsPlaceholderSections(t *testing.T) {
	t.Parallel()

	sheet := Sheet{
		Columns: []string{"Aspek", "Deskripsi", "Penjelasan"},
		Rows: [][]string{
			{"I", "nan", "NaN"},
			{"nan", "x", ""},
			{"", "y", ""},
			{"II", "Direksi"},
		},
	}
	got := NewFieldMapper().MapAll(sheet)
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].Description != "" || got[0].Explanation != "" {
		t.Errorf("placeholder text should be blank: %+v", got[0])
	}
	if got[1].Explanation != "" {
		t.Errorf("short row should leave missing cells empty: %+v", got[1])
	}
}

func TestFieldMapper_IneligibleOrUnmapped(t *testing.T) {
	t.Parallel()

	m := NewFieldMapper()
	small := Sheet{Columns: []string{"Aspek"}, Rows: [][]string{{"I"}, {"II"}}}
	if n := len(m.MapAll(small)); n != 0 {
		t.Errorf("sheet with 2 rows should yield nothing, got %d", n)
	}

	noSection := Sheet{Columns: []string{"Skor"}, Rows: [][]string{{"1"}, {"2"}, {"3"}}}
	if n := len(m.MapAll(noSection)); n != 0 {
		t.Errorf("sheet without section column should yield nothing, got %d", n)
	}
}

func TestFieldMapper_MapStopsEarly(t *testing.T) {
	t.Parallel()

	sheet := Sheet{Columns: []string{"Aspek"}, Rows: [][]string{{"I"}, {"II"}, {"III"}, {"IV"}}}
	count := 0
	for range NewFieldMapper().Map(sheet) {
		count++
		if count == 2 {
			break
		}
	}
	if count != 2 {
		t.Fatalf("iteration should stop after break, got %d", count)
	}
}
