package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"formatbench/internal/model"
	"formatbench/internal/utils"
)

const sheetName = "Sheet1"

// WriteExcel materializes a dataset as the canonical xlsx source file.
// Datetime cells are stored as RFC3339 text so ingestion does not depend on
// spreadsheet date serials.
func WriteExcel(ds *model.Dataset, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return utils.NewGenerationError(fmt.Sprintf("cannot create output directory: %v", err))
	}

	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return utils.NewGenerationError(err.Error())
	}

	header := make([]interface{}, len(ds.Columns))
	for i := range ds.Columns {
		header[i] = ds.Columns[i].Name
	}
	cell, _ := excelize.CoordinatesToCellName(1, 1)
	if err := sw.SetRow(cell, header); err != nil {
		return utils.NewGenerationError(err.Error())
	}

	for r := 0; r < ds.Rows; r++ {
		row := make([]interface{}, len(ds.Columns))
		for i := range ds.Columns {
			col := &ds.Columns[i]
			if col.Type == model.ColumnTypeDatetime {
				row[i] = col.Times[r].Format(model.TimeLayout)
			} else {
				row[i] = col.Value(r)
			}
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := sw.SetRow(cell, row); err != nil {
			return utils.NewGenerationError(err.Error())
		}
	}

	if err := sw.Flush(); err != nil {
		return utils.NewGenerationError(err.Error())
	}
	if err := f.SaveAs(path); err != nil {
		return utils.NewGenerationError(fmt.Sprintf("cannot write %s: %v", path, err))
	}
	return nil
}

// ReadExcel ingests an xlsx file into a Dataset. Column types are inferred
// per column from the cell text: integer, float, boolean and RFC3339
// datetime are recognized, everything else stays a string.
func ReadExcel(path string) (*model.Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, utils.NewSetupError(err, fmt.Sprintf("cannot open dataset %s", path))
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, utils.NewSetupError(nil, fmt.Sprintf("dataset %s has no sheets", path))
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, utils.NewSetupError(err, fmt.Sprintf("cannot read dataset %s", path))
	}
	if len(rows) == 0 {
		return nil, utils.NewSetupError(nil, fmt.Sprintf("dataset %s is empty", path))
	}

	header := rows[0]
	data := rows[1:]

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	ds := &model.Dataset{
		Name:    name,
		Rows:    len(data),
		Columns: make([]model.Column, 0, len(header)),
	}

	for j, colName := range header {
		values := make([]string, len(data))
		for r, row := range data {
			if j < len(row) {
				values[r] = row[j]
			}
		}
		ds.Columns = append(ds.Columns, buildColumn(colName, values))
	}

	return ds, nil
}

// buildColumn infers the column type and converts the raw cell text.
func buildColumn(name string, values []string) model.Column {
	col := model.Column{Name: name, Type: inferType(values)}

	switch col.Type {
	case model.ColumnTypeInteger:
		col.Ints = make([]int64, len(values))
		for i, v := range values {
			col.Ints[i], _ = strconv.ParseInt(v, 10, 64)
		}
	case model.ColumnTypeFloat:
		col.Floats = make([]float64, len(values))
		for i, v := range values {
			col.Floats[i], _ = strconv.ParseFloat(v, 64)
		}
	case model.ColumnTypeBoolean:
		col.Bools = make([]bool, len(values))
		for i, v := range values {
			col.Bools[i] = strings.EqualFold(v, "true")
		}
	case model.ColumnTypeDatetime:
		col.Times = make([]time.Time, len(values))
		for i, v := range values {
			col.Times[i], _ = time.Parse(model.TimeLayout, v)
		}
	default:
		col.Strings = values
	}

	return col
}

// inferType picks the narrowest type every non-empty value fits.
func inferType(values []string) model.ColumnType {
	isInt, isFloat, isBool, isTime := true, true, true, true
	seen := false

	for _, v := range values {
		if v == "" {
			continue
		}
		seen = true
		if _, err := strconv.ParseInt(v, 10, 64); err != nil {
			isInt = false
		}
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			isFloat = false
		}
		if !strings.EqualFold(v, "true") && !strings.EqualFold(v, "false") {
			isBool = false
		}
		if _, err := time.Parse(model.TimeLayout, v); err != nil {
			isTime = false
		}
	}

	switch {
	case !seen:
		return model.ColumnTypeString
	case isBool:
		return model.ColumnTypeBoolean
	case isInt:
		return model.ColumnTypeInteger
	case isFloat:
		return model.ColumnTypeFloat
	case isTime:
		return model.ColumnTypeDatetime
	default:
		return model.ColumnTypeString
	}
}

// ListInputFiles returns the xlsx files in dir sorted by file size
// ascending, so small datasets are benchmarked first.
func ListInputFiles(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.xlsx"))
	if err != nil {
		return nil, utils.NewSetupError(err, fmt.Sprintf("cannot scan input directory %s", dir))
	}

	type sized struct {
		path string
		size int64
	}
	files := make([]sized, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil {
			continue
		}
		files = append(files, sized{path: m, size: info.Size()})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].size < files[j].size })

	paths := make([]string, len(files))
	for i := range files {
		paths[i] = files[i].path
	}
	return paths, nil
}
