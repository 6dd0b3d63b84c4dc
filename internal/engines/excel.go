package engines

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"formatbench/internal/model"
)

// ExcelizeEngine benchmarks xuri/excelize. Excel xlsx is its only format;
// writes go through the stream writer to keep memory flat on large
// datasets.
type ExcelizeEngine struct{}

// NewExcelizeEngine creates a new excelize engine
func NewExcelizeEngine() *ExcelizeEngine {
	return &ExcelizeEngine{}
}

// Name returns the engine identifier
func (e *ExcelizeEngine) Name() model.EngineType {
	return model.EngineExcelize
}

// Write serializes the dataset into an xlsx workbook at path.
func (e *ExcelizeEngine) Write(ds *model.Dataset, format model.FormatType, path string) error {
	if format != model.FormatExcel {
		return errUnsupported(model.EngineExcelize, format)
	}

	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter("Sheet1")
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	header := make([]interface{}, len(ds.Columns))
	for i := range ds.Columns {
		header[i] = ds.Columns[i].Name
	}
	cell, _ := excelize.CoordinatesToCellName(1, 1)
	if err := sw.SetRow(cell, header); err != nil {
		return fmt.Errorf("xlsx header write failed: %w", err)
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
			return fmt.Errorf("xlsx write failed at row %d: %w", r, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("xlsx flush failed: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// Read deserializes the first sheet of the workbook at path.
func (e *ExcelizeEngine) Read(format model.FormatType, path string) (*ReadResult, error) {
	if format != model.FormatExcel {
		return nil, errUnsupported(model.EngineExcelize, format)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx read failed: %w", err)
	}
	if len(rows) == 0 {
		return &ReadResult{}, nil
	}

	return &ReadResult{Rows: int64(len(rows) - 1), Columns: rows[0]}, nil
}
