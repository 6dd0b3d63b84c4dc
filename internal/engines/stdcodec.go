package engines

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"formatbench/internal/model"
)

// StdCodecEngine benchmarks the standard library codecs: encoding/csv for
// CSV and line-delimited encoding/json for JSON. It is a benchmark subject
// like any other engine, giving the comparison a baseline.
type StdCodecEngine struct{}

// NewStdCodecEngine creates a new standard library codec engine
func NewStdCodecEngine() *StdCodecEngine {
	return &StdCodecEngine{}
}

// Name returns the engine identifier
func (e *StdCodecEngine) Name() model.EngineType {
	return model.EngineStdCodec
}

// Write serializes the dataset with the format's stdlib codec.
func (e *StdCodecEngine) Write(ds *model.Dataset, format model.FormatType, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case model.FormatCSV:
		return writeCSV(ds, f)
	case model.FormatJSON:
		return writeJSONLines(ds, f)
	default:
		return errUnsupported(model.EngineStdCodec, format)
	}
}

// Read deserializes the file at path with the format's stdlib codec.
func (e *StdCodecEngine) Read(format model.FormatType, path string) (*ReadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case model.FormatCSV:
		return readCSV(f)
	case model.FormatJSON:
		return readJSONLines(f)
	default:
		return nil, errUnsupported(model.EngineStdCodec, format)
	}
}

func writeCSV(ds *model.Dataset, f *os.File) error {
	w := csv.NewWriter(f)

	if err := w.Write(ds.ColumnNames()); err != nil {
		return fmt.Errorf("csv header write failed: %w", err)
	}

	record := make([]string, len(ds.Columns))
	for r := 0; r < ds.Rows; r++ {
		for i := range ds.Columns {
			record[i] = ds.Columns[i].Text(r)
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("csv write failed at row %d: %w", r, err)
		}
	}

	w.Flush()
	return w.Error()
}

func readCSV(f *os.File) (*ReadResult, error) {
	r := csv.NewReader(f)
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("csv header read failed: %w", err)
	}
	columns := make([]string, len(header))
	copy(columns, header)

	var rows int64
	for {
		if _, err := r.Read(); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("csv read failed: %w", err)
		}
		rows++
	}

	return &ReadResult{Rows: rows, Columns: columns}, nil
}

func writeJSONLines(ds *model.Dataset, f *os.File) error {
	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)

	for r := 0; r < ds.Rows; r++ {
		row := make(map[string]interface{}, len(ds.Columns))
		for i := range ds.Columns {
			col := &ds.Columns[i]
			if col.Type == model.ColumnTypeDatetime {
				row[col.Name] = col.Times[r].Format(model.TimeLayout)
			} else {
				row[col.Name] = col.Value(r)
			}
		}
		if err := enc.Encode(row); err != nil {
			return fmt.Errorf("json write failed at row %d: %w", r, err)
		}
	}

	return w.Flush()
}

func readJSONLines(f *os.File) (*ReadResult, error) {
	dec := json.NewDecoder(bufio.NewReader(f))

	var rows int64
	var columns []string
	for {
		var row map[string]interface{}
		if err := dec.Decode(&row); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("json read failed: %w", err)
		}
		if columns == nil {
			for name := range row {
				columns = append(columns, name)
			}
		}
		rows++
	}

	return &ReadResult{Rows: rows, Columns: columns}, nil
}
