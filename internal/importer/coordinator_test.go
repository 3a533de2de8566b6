package importer

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"gcgviz/internal/model"
	"gcgviz/internal/service/reconcile"
)

var reconcileTime = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

func buildWorkbook(t *testing.T, sheets map[string][][]interface{}, order []string) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })
	for i, name := range order {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(name); err != nil {
			t.Fatalf("new sheet: %v", err)
		}
		for r, row := range sheets[name] {
			cell, _ := excelize.CoordinatesToCellName(1, r+1)
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				t.Fatalf("set row: %v", err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf
}

func TestExtract_PicksFirstEligibleSheet(t *testing.T) {
	t.Parallel()

	summary := [][]interface{}{
		{"Laporan Penilaian GCG 2023"},
		{"Aspek", "Deskripsi", "Bobot", "Skor", "Keterangan"},
		{"I", "Komitmen", 7, 6.3, ""},
		{"II", "Pemegang Saham", 9, 8.1, "nan"},
		{"III", "Dewan Komisaris", 35, "30,5", "Baik"},
		{"nan", "", "", "", ""},
		{"IV", "Direksi", 35, 20, ""},
	}
	buf := buildWorkbook(t, map[string][][]interface{}{
		"Cover":     {{"PT Contoh"}},
		"Ringkasan": summary,
		"Lain":      summary,
	}, []string{"Cover", "Ringkasan", "Lain"})

	c := NewCoordinator(nil)
	var events []string
	c.OnProgress(func(evt ProgressEvent) { events = append(events, evt.Type) })

	report, err := c.Extract(context.Background(), "/tmp/upload/gcg-2023.xlsx", buf)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}

	if report.Filename != "gcg-2023.xlsx" || report.TotalSheets != 3 {
		t.Errorf("unexpected report header: %+v", report)
	}
	if report.SourceSheet != "Ringkasan" || report.FormatType != model.FormatBrief {
		t.Errorf("source=%q format=%s", report.SourceSheet, report.FormatType)
	}
	if report.Sheets[0].Eligible {
		t.Errorf("cover sheet should not be eligible")
	}
	if len(report.Records) != 4 {
		t.Fatalf("expected 4 records (nan row skipped), got %d", len(report.Records))
	}

	dewan := report.Records[2]
	if dewan.Score != 30.5 || dewan.Explanation != "Baik" {
		t.Errorf("unexpected III record: %+v", dewan)
	}
	direksi := report.Records[3]
	if direksi.Achievement != 57 || direksi.Explanation != "Kurang Baik" {
		t.Errorf("scores not filled: %+v", direksi)
	}
	if len(report.AspectSummary) != 4 || report.AspectSummary[0].Description != "Komitmen" {
		t.Errorf("unexpected aspect summary: %+v", report.AspectSummary)
	}
	if events[0] != "start" || events[len(events)-1] != "done" {
		t.Errorf("unexpected progress events: %v", events)
	}
}

func TestExtract_UnreadableWorkbook(t *testing.T) {
	t.Parallel()

	_, err := NewCoordinator(nil).Extract(context.Background(), "x.xlsx", strings.NewReader("not a zip"))
	if !errors.Is(err, ErrUnreadableWorkbook) {
		t.Fatalf("expected ErrUnreadableWorkbook, got %v", err)
	}
}

func TestExtract_NoEligibleSheet(t *testing.T) {
	t.Parallel()

	buf := buildWorkbook(t, map[string][][]interface{}{
		"Data": {{"Aspek", "Skor"}, {"I", 1}},
	}, []string{"Data"})

	report, err := NewCoordinator(nil).Extract(context.Background(), "kecil.xlsx", buf)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if report.SourceSheet != "" || len(report.Records) != 0 || report.FormatType != model.FormatBrief {
		t.Fatalf("expected empty BRIEF report, got %+v", report)
	}
}

func TestToSubmission_SurvivesAspectGuard(t *testing.T) {
	t.Parallel()

	report := &model.ExtractReport{AspectSummary: []model.AspectSummary{
		{Section: "I", Weight: 7, Score: 6},
		{Section: "II", Description: "Pemegang Saham", Weight: 9, Score: 8},
	}}
	sub := ToSubmission(report, 2023, "BPKP", "External")
	if sub.Method != "otomatis" || sub.AspectSummary[0].Description != "Aspek I" {
		t.Fatalf("unexpected submission: %+v", sub)
	}

	records := reconcile.BuildIncoming(sub, reconcileTime)
	if len(records) != 4 {
		t.Fatalf("expected both aspects to be kept, got %d records", len(records))
	}
}
