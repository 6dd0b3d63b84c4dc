package dataset

import (
	"path/filepath"
	"testing"

	"formatbench/internal/model"
)

func TestExcelRoundTrip(t *testing.T) {
	ds, err := Generate("roundtrip", 25, 10, 42)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "roundtrip.xlsx")
	if err := WriteExcel(ds, path); err != nil {
		t.Fatalf("WriteExcel failed: %v", err)
	}

	got, err := ReadExcel(path)
	if err != nil {
		t.Fatalf("ReadExcel failed: %v", err)
	}

	if got.Name != "roundtrip" {
		t.Errorf("Expected dataset name 'roundtrip', got %q", got.Name)
	}
	if got.Rows != ds.Rows {
		t.Errorf("Expected %d rows, got %d", ds.Rows, got.Rows)
	}
	if got.NumColumns() != ds.NumColumns() {
		t.Fatalf("Expected %d columns, got %d", ds.NumColumns(), got.NumColumns())
	}

	for i := range ds.Columns {
		if got.Columns[i].Name != ds.Columns[i].Name {
			t.Errorf("Column %d: expected name %q, got %q", i, ds.Columns[i].Name, got.Columns[i].Name)
		}
		if got.Columns[i].Type != ds.Columns[i].Type {
			t.Errorf("Column %q: expected type %s, got %s",
				ds.Columns[i].Name, ds.Columns[i].Type, got.Columns[i].Type)
		}
	}
}

func TestReadExcelMissingFile(t *testing.T) {
	if _, err := ReadExcel(filepath.Join(t.TempDir(), "absent.xlsx")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestInferType(t *testing.T) {
	cases := []struct {
		values   []string
		expected model.ColumnType
	}{
		{[]string{"1", "2", "3"}, model.ColumnTypeInteger},
		{[]string{"1.5", "2", "3.25"}, model.ColumnTypeFloat},
		{[]string{"true", "FALSE", "true"}, model.ColumnTypeBoolean},
		{[]string{"2023-01-01T00:00:00Z", "2023-06-15T12:30:00Z"}, model.ColumnTypeDatetime},
		{[]string{"hello", "1", "true"}, model.ColumnTypeString},
		{[]string{"", ""}, model.ColumnTypeString},
	}

	for _, tc := range cases {
		if got := inferType(tc.values); got != tc.expected {
			t.Errorf("inferType(%v): expected %s, got %s", tc.values, tc.expected, got)
		}
	}
}

func TestListInputFilesSortedBySize(t *testing.T) {
	dir := t.TempDir()

	big, _ := Generate("big", 200, 10, 1)
	small, _ := Generate("small", 10, 5, 1)

	if err := WriteExcel(big, filepath.Join(dir, "big.xlsx")); err != nil {
		t.Fatalf("WriteExcel failed: %v", err)
	}
	if err := WriteExcel(small, filepath.Join(dir, "small.xlsx")); err != nil {
		t.Fatalf("WriteExcel failed: %v", err)
	}

	files, err := ListInputFiles(dir)
	if err != nil {
		t.Fatalf("ListInputFiles failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 files, got %d", len(files))
	}
	if filepath.Base(files[0]) != "small.xlsx" {
		t.Errorf("Expected smallest file first, got %s", filepath.Base(files[0]))
	}
}
