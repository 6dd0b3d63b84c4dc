package engines

import (
	"path/filepath"
	"testing"

	"formatbench/internal/dataset"
	"formatbench/internal/model"
	"formatbench/internal/utils"
)

// roundTrips lists the native code path of every engine. Each entry is
// written and read back through the engine's own API.
var roundTrips = map[model.EngineType][]model.FormatType{
	model.EngineArrow:     {model.FormatCSV, model.FormatParquet, model.FormatFeather},
	model.EngineParquetGo: {model.FormatParquet},
	model.EngineStdCodec:  {model.FormatCSV, model.FormatJSON},
	model.EngineExcelize:  {model.FormatExcel},
	model.EngineGoAvro:    {model.FormatAvro},
}

func testDataset(t *testing.T) *model.Dataset {
	t.Helper()
	ds, err := dataset.Generate("engines", 40, 10, 42)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return ds
}

func TestEngineRoundTrips(t *testing.T) {
	ds := testDataset(t)
	dir := t.TempDir()

	for _, eng := range All() {
		for _, format := range roundTrips[eng.Name()] {
			name := string(eng.Name()) + "_" + string(format)
			t.Run(name, func(t *testing.T) {
				path := filepath.Join(dir, name+"."+format.Extension())

				if err := eng.Write(ds, format, path); err != nil {
					t.Fatalf("Write failed: %v", err)
				}

				result, err := eng.Read(format, path)
				if err != nil {
					t.Fatalf("Read failed: %v", err)
				}

				if result.Rows != int64(ds.Rows) {
					t.Errorf("Expected %d rows, got %d", ds.Rows, result.Rows)
				}
				assertSameColumns(t, ds.ColumnNames(), result.Columns)
			})
		}
	}
}

func TestEngineOrderMatchesAll(t *testing.T) {
	engines := All()
	if len(engines) != len(model.EngineOrder) {
		t.Fatalf("Expected %d engines, got %d", len(model.EngineOrder), len(engines))
	}
	for i, eng := range engines {
		if eng.Name() != model.EngineOrder[i] {
			t.Errorf("Position %d: expected %s, got %s", i, model.EngineOrder[i], eng.Name())
		}
	}
}

func TestUnsupportedFormatRejected(t *testing.T) {
	ds := testDataset(t)
	path := filepath.Join(t.TempDir(), "unsupported.avro")

	eng := NewArrowEngine()
	if err := eng.Write(ds, model.FormatAvro, path); err == nil {
		t.Error("Expected error writing avro through the arrow engine")
	} else if !utils.IsErrorType(err, utils.ErrCodeUnsupported) {
		t.Errorf("Expected unsupported-combination error, got %v", err)
	}

	if _, err := eng.Read(model.FormatAvro, path); err == nil {
		t.Error("Expected error reading avro through the arrow engine")
	}
}

func TestReadMissingFileFails(t *testing.T) {
	dir := t.TempDir()

	for _, eng := range All() {
		for _, format := range roundTrips[eng.Name()] {
			path := filepath.Join(dir, "absent."+format.Extension())
			if _, err := eng.Read(format, path); err == nil {
				t.Errorf("%s/%s: expected error reading missing file", eng.Name(), format)
			}
		}
	}
}

// assertSameColumns compares column names as sets. Some readers do not
// preserve column order, row-oriented codecs in particular.
func assertSameColumns(t *testing.T, expected, got []string) {
	t.Helper()

	if len(expected) != len(got) {
		t.Errorf("Expected %d columns, got %d: %v", len(expected), len(got), got)
		return
	}
	want := make(map[string]bool, len(expected))
	for _, name := range expected {
		want[name] = true
	}
	for _, name := range got {
		if !want[name] {
			t.Errorf("Unexpected column %q in read result", name)
		}
	}
}
