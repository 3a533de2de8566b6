package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"

	"gcgviz/internal/model"
)

func sampleRecords() []model.Record {
	return []model.Record{
		{Level: model.LevelSection, Kind: model.KindHeader, Section: "I", Description: "Komitmen", Year: 2022, Assessor: "BPKP", AssessmentKind: "External", ExportDate: "2022-12-01"},
		{Level: model.LevelIndicator, Kind: model.KindIndicator, Section: "I", Number: "1", Description: "Pedoman GCG", ParameterCount: 3, Weight: 1.218, Score: 1.1, Achievement: 90.31, Explanation: "Sangat Baik", Year: 2022, Assessor: "BPKP", AssessmentKind: "External", ExportDate: "2022-12-01"},
		{Level: model.LevelSection, Kind: model.KindSubtotal, Section: "I", Description: "JUMLAH I", Weight: 7, Score: 6.5, Achievement: 92.86, Explanation: "Sangat Baik", Year: 2022, Assessor: "BPKP", AssessmentKind: "External", ExportDate: "2022-12-01"},
		{Level: model.LevelIndicator, Kind: model.KindIndicator, Section: "A", Number: "2", Description: "Audit", Weight: 10, Score: 8, Year: 2023, Assessor: "Internal Audit", AssessmentKind: "Internal", ExportDate: "2023-11-30"},
	}
}

func TestXLSXStore_MissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	s := NewXLSXStore(filepath.Join(t.TempDir(), "output.xlsx"))
	records, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load missing file: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty store, got %d records", len(records))
	}
}

func TestXLSXStore_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "output.xlsx")
	s := NewXLSXStore(path)
	ctx := context.Background()

	want := sampleRecords()
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if leftovers, _ := filepath.Glob(path + ".*.tmp"); len(leftovers) != 0 {
		t.Fatalf("temporary files left behind: %v", leftovers)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestXLSXStore_LoadToleratesDirtyCells(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "legacy.xlsx")
	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Tahun", "Section", "No", "Deskripsi", "Skor", "Bobot", "Type", "Level", "Penjelasan"},
		{2021, "II", 3.0, "RUPS", "n/a", "5,5", "Indicator", 2.0, "nan"},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("write legacy row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save legacy file: %v", err)
	}
	_ = f.Close()

	got, err := NewXLSXStore(path).Load(context.Background())
	if err != nil {
		t.Fatalf("load legacy: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	r := got[0]
	if r.Year != 2021 || r.Number != "3" || r.Level != model.LevelIndicator || r.Kind != model.KindIndicator {
		t.Fatalf("unexpected identity fields: %+v", r)
	}
	if r.Score != 0 || r.Weight != 5.5 || r.Explanation != "" {
		t.Fatalf("unexpected defaults: score=%v weight=%v explanation=%q", r.Score, r.Weight, r.Explanation)
	}
}

func TestXLSXStore_FailedRenameKeepsPreviousTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.xlsx")
	s := NewXLSXStore(path)
	ctx := context.Background()

	if err := s.Save(ctx, sampleRecords()[:1]); err != nil {
		t.Fatalf("initial save: %v", err)
	}

	orig := osRename
	osRename = func(string, string) error { return errors.New("disk full") }
	t.Cleanup(func() { osRename = orig })

	if err := s.Save(ctx, sampleRecords()); err == nil {
		t.Fatalf("expected persist failure")
	}
	if leftovers, _ := filepath.Glob(path + ".*.tmp"); len(leftovers) != 0 {
		t.Fatalf("temporary file should be removed: %v", leftovers)
	}

	osRename = orig
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load after failed save: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("previous table should be intact, got %d records", len(got))
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	t.Parallel()

	_, err := Open("csv", t.TempDir(), "")
	if !errors.Is(err, ErrUnsupportedBackend) {
		t.Fatalf("expected ErrUnsupportedBackend, got %v", err)
	}
}
