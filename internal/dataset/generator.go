package dataset

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"formatbench/internal/model"
	"formatbench/internal/utils"
)

// baseNames gives each column type its column-name stem. Columns cycle
// through the types, so a 12-column dataset gets quantity_1, price_2,
// description_3, available_4, recorded_5, quantity_6, ...
var baseNames = map[model.ColumnType]string{
	model.ColumnTypeInteger:  "quantity",
	model.ColumnTypeFloat:    "price",
	model.ColumnTypeString:   "description",
	model.ColumnTypeBoolean:  "available",
	model.ColumnTypeDatetime: "recorded",
}

// vocabulary for synthetic text columns
var words = []string{
	"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing",
	"elit", "sed", "eiusmod", "tempor", "incididunt", "labore", "dolore",
	"magna", "aliqua", "enim", "minim", "veniam", "quis", "nostrud",
	"exercitation", "ullamco", "laboris", "nisi", "aliquip", "commodo",
}

// Generate produces a deterministic synthetic dataset. Column types cycle
// through the supported primitives and all values come from a PRNG seeded
// with the given seed, so identical parameters always produce identical
// content.
func Generate(name string, rows, columns int, seed int64) (*model.Dataset, error) {
	if rows < 1 {
		return nil, utils.NewGenerationError(fmt.Sprintf("row count must be positive, got %d", rows))
	}
	if columns < 1 {
		return nil, utils.NewGenerationError(fmt.Sprintf("column count must be positive, got %d", columns))
	}

	rng := rand.New(rand.NewSource(seed))
	epoch := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	ds := &model.Dataset{
		Name:    name,
		Rows:    rows,
		Columns: make([]model.Column, 0, columns),
	}

	for i := 0; i < columns; i++ {
		ctype := model.ColumnTypes[i%len(model.ColumnTypes)]
		col := model.Column{
			Name: fmt.Sprintf("%s_%d", baseNames[ctype], i+1),
			Type: ctype,
		}

		switch ctype {
		case model.ColumnTypeInteger:
			col.Ints = make([]int64, rows)
			for r := 0; r < rows; r++ {
				col.Ints[r] = rng.Int63n(1000)
			}
		case model.ColumnTypeFloat:
			col.Floats = make([]float64, rows)
			for r := 0; r < rows; r++ {
				col.Floats[r] = rng.Float64() * 100
			}
		case model.ColumnTypeString:
			col.Strings = make([]string, rows)
			for r := 0; r < rows; r++ {
				col.Strings[r] = sentence(rng)
			}
		case model.ColumnTypeBoolean:
			col.Bools = make([]bool, rows)
			for r := 0; r < rows; r++ {
				col.Bools[r] = rng.Intn(2) == 1
			}
		case model.ColumnTypeDatetime:
			col.Times = make([]time.Time, rows)
			for r := 0; r < rows; r++ {
				day := rng.Intn(365)
				second := rng.Intn(24 * 3600)
				col.Times[r] = epoch.AddDate(0, 0, day).Add(time.Duration(second) * time.Second)
			}
		}

		ds.Columns = append(ds.Columns, col)
	}

	return ds, nil
}

// sentence builds a short pseudo-random text value.
func sentence(rng *rand.Rand) string {
	n := 6 + rng.Intn(7)
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = words[rng.Intn(len(words))]
	}
	s := strings.Join(parts, " ")
	return strings.ToUpper(s[:1]) + s[1:] + "."
}
