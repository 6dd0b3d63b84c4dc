package dataset

import (
	"testing"

	"formatbench/internal/model"
	"formatbench/internal/utils"
)

func TestGenerateShape(t *testing.T) {
	ds, err := Generate("shape", 50, 12, 42)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if ds.Rows != 50 {
		t.Errorf("Expected 50 rows, got %d", ds.Rows)
	}
	if ds.NumColumns() != 12 {
		t.Errorf("Expected 12 columns, got %d", ds.NumColumns())
	}

	// Column types cycle through the supported primitives.
	for i, col := range ds.Columns {
		expected := model.ColumnTypes[i%len(model.ColumnTypes)]
		if col.Type != expected {
			t.Errorf("Column %d: expected type %s, got %s", i, expected, col.Type)
		}
		if col.Len() != 50 {
			t.Errorf("Column %s: expected 50 values, got %d", col.Name, col.Len())
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate("det", 30, 10, 7)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, err := Generate("det", 30, 10, 7)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for i := range a.Columns {
		for r := 0; r < a.Rows; r++ {
			if a.Columns[i].Text(r) != b.Columns[i].Text(r) {
				t.Fatalf("Column %s row %d differs between identical seeds: %q vs %q",
					a.Columns[i].Name, r, a.Columns[i].Text(r), b.Columns[i].Text(r))
			}
		}
	}
}

func TestGenerateSeedChangesContent(t *testing.T) {
	a, _ := Generate("seed", 20, 5, 1)
	b, _ := Generate("seed", 20, 5, 2)

	same := true
	for r := 0; r < a.Rows && same; r++ {
		if a.Columns[0].Text(r) != b.Columns[0].Text(r) {
			same = false
		}
	}
	if same {
		t.Error("Different seeds produced identical integer columns")
	}
}

func TestGenerateRejectsBadCounts(t *testing.T) {
	cases := []struct {
		rows, columns int
	}{
		{0, 10},
		{-1, 10},
		{10, 0},
		{10, -5},
	}

	for _, tc := range cases {
		_, err := Generate("bad", tc.rows, tc.columns, 42)
		if err == nil {
			t.Errorf("Expected error for rows=%d columns=%d", tc.rows, tc.columns)
			continue
		}
		if !utils.IsErrorType(err, utils.ErrCodeGeneration) {
			t.Errorf("Expected generation error code, got %v", err)
		}
	}
}
