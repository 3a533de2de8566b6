package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"gcgviz/internal/config"
	"gcgviz/internal/store"
)

func writeConfig(t *testing.T, dir, backend string) string {
	t.Helper()

	path := filepath.Join(dir, "config.toml")
	content := "[data]\ndata_dir = \"" + filepath.ToSlash(filepath.Join(dir, "data")) + "\"\n\n" +
		"[store]\nbackend = \"" + backend + "\"\n\n" +
		"[log]\nlevel = \"error\"\noutput = \"stderr\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func writeSummaryWorkbook(t *testing.T, dir string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	rows := [][]interface{}{
		{"Aspek", "Deskripsi", "Bobot", "Skor"},
		{"I", "Komitmen", 7, 6.3},
		{"II", "Pemegang Saham", 9, 8.1},
		{"III", "Dewan Komisaris", 35, 30},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	path := filepath.Join(dir, "ringkasan.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestImportShowDashboard(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "sqlite")
	xlsx := writeSummaryWorkbook(t, dir)

	out, err := run(t, "--config", cfg, "import", xlsx, "--year", "2023", "--auditor", "BPKP", "--kind", "External")
	if err != nil {
		t.Fatalf("import: %v\n%s", err, out)
	}
	if !strings.Contains(out, "year 2023 saved: 6 rows") {
		t.Fatalf("unexpected import output:\n%s", out)
	}

	out, err = run(t, "--config", cfg, "show", "2023")
	if err != nil {
		t.Fatalf("show: %v\n%s", err, out)
	}
	if !strings.Contains(out, "BPKP / External") || !strings.Contains(out, "Komitmen") {
		t.Fatalf("unexpected show output:\n%s", out)
	}

	out, err = run(t, "--config", cfg, "dashboard")
	if err != nil {
		t.Fatalf("dashboard: %v\n%s", err, out)
	}
	if !strings.Contains(out, "2023") || !strings.Contains(out, "total 44.400") {
		t.Fatalf("unexpected dashboard output:\n%s", out)
	}

	out, err = run(t, "--config", cfg, "history", "--year", "2023")
	if err != nil {
		t.Fatalf("history: %v\n%s", err, out)
	}
	if !strings.Contains(out, "otomatis") {
		t.Fatalf("save log missing:\n%s", out)
	}
}

func TestImportDryRunDoesNotWrite(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "xlsx")
	xlsx := writeSummaryWorkbook(t, dir)

	out, err := run(t, "--config", cfg, "import", xlsx, "--dry-run")
	if err != nil {
		t.Fatalf("dry run: %v\n%s", err, out)
	}
	if !strings.Contains(out, "extracted 3 aspects") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "data", "output.xlsx")); !os.IsNotExist(err) {
		t.Fatalf("dry run must not create the table, stat err=%v", err)
	}

	if _, err := run(t, "--config", cfg, "show", "2023"); err == nil {
		t.Fatalf("expected error for missing year")
	}
}

func TestConfigInit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "conf", "config.toml")
	dataDir := filepath.Join(dir, "data")

	out, err := run(t, "config", "init", "-c", path, "--data-dir", dataDir)
	if err != nil {
		t.Fatalf("config init failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, path) {
		t.Fatalf("expected written path in output, got %q", out)
	}

	cfg, info, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if !info.FromFile {
		t.Fatalf("expected config to be read from file")
	}
	if cfg.Data.DataDir != dataDir || cfg.Store.Backend != store.BackendXLSX {
		t.Fatalf("unexpected config: data_dir=%q backend=%q", cfg.Data.DataDir, cfg.Store.Backend)
	}

	if _, err := run(t, "config", "init", "-c", path); err == nil {
		t.Fatalf("expected error when config already exists")
	}
	if out, err := run(t, "config", "init", "-c", path, "--force"); err != nil {
		t.Fatalf("config init --force failed: %v\n%s", err, out)
	}
}
