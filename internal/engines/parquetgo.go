package engines

import (
	"encoding/json"
	"fmt"

	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"

	"formatbench/internal/model"
)

// ParquetGoEngine benchmarks xitongsys/parquet-go through its JSON row
// codec. Parquet is its only native format.
type ParquetGoEngine struct{}

// NewParquetGoEngine creates a new parquet-go engine
func NewParquetGoEngine() *ParquetGoEngine {
	return &ParquetGoEngine{}
}

// Name returns the engine identifier
func (e *ParquetGoEngine) Name() model.EngineType {
	return model.EngineParquetGo
}

// Write serializes the dataset to a Parquet file, one JSON-encoded row at a
// time. Datetime values travel as TIMESTAMP_MILLIS.
func (e *ParquetGoEngine) Write(ds *model.Dataset, format model.FormatType, path string) error {
	if format != model.FormatParquet {
		return errUnsupported(model.EngineParquetGo, format)
	}

	pf, err := CreateLocalFile(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	schema, err := jsonSchema(ds)
	if err != nil {
		pf.Close()
		return err
	}

	w, err := writer.NewJSONWriter(schema, pf, 4)
	if err != nil {
		pf.Close()
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}

	for r := 0; r < ds.Rows; r++ {
		row := make(map[string]interface{}, len(ds.Columns))
		for i := range ds.Columns {
			col := &ds.Columns[i]
			if col.Type == model.ColumnTypeDatetime {
				row[col.Name] = col.Times[r].UnixMilli()
			} else {
				row[col.Name] = col.Value(r)
			}
		}
		encoded, err := json.Marshal(row)
		if err != nil {
			pf.Close()
			return fmt.Errorf("failed to encode row %d: %w", r, err)
		}
		if err := w.Write(string(encoded)); err != nil {
			pf.Close()
			return fmt.Errorf("parquet-go write failed: %w", err)
		}
	}

	if err := w.WriteStop(); err != nil {
		pf.Close()
		return fmt.Errorf("parquet-go finalize failed: %w", err)
	}
	return pf.Close()
}

// Read deserializes every row group of the Parquet file at path.
func (e *ParquetGoEngine) Read(format model.FormatType, path string) (*ReadResult, error) {
	if format != model.FormatParquet {
		return nil, errUnsupported(model.EngineParquetGo, format)
	}

	pf, err := OpenLocalFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer pf.Close()

	r, err := reader.NewParquetReader(pf, nil, 4)
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}
	defer r.ReadStop()

	rows := r.GetNumRows()
	if rows > 0 {
		if _, err := r.ReadByNumber(int(rows)); err != nil {
			return nil, fmt.Errorf("parquet-go read failed: %w", err)
		}
	}

	// Infos[0] is the schema root, the rest are the leaf columns.
	var columns []string
	for _, info := range r.SchemaHandler.Infos[1:] {
		columns = append(columns, info.ExName)
	}

	return &ReadResult{Rows: rows, Columns: columns}, nil
}

// jsonSchema renders the parquet-go schema string for the dataset.
func jsonSchema(ds *model.Dataset) (string, error) {
	type fieldTag struct {
		Tag string `json:"Tag"`
	}
	type rootTag struct {
		Tag    string     `json:"Tag"`
		Fields []fieldTag `json:"Fields"`
	}

	root := rootTag{Tag: "name=parquet_go_root"}
	for i := range ds.Columns {
		col := &ds.Columns[i]
		var tag string
		switch col.Type {
		case model.ColumnTypeInteger:
			tag = fmt.Sprintf("name=%s, type=INT64", col.Name)
		case model.ColumnTypeFloat:
			tag = fmt.Sprintf("name=%s, type=DOUBLE", col.Name)
		case model.ColumnTypeString:
			tag = fmt.Sprintf("name=%s, type=BYTE_ARRAY, convertedtype=UTF8", col.Name)
		case model.ColumnTypeBoolean:
			tag = fmt.Sprintf("name=%s, type=BOOLEAN", col.Name)
		case model.ColumnTypeDatetime:
			tag = fmt.Sprintf("name=%s, type=INT64, convertedtype=TIMESTAMP_MILLIS", col.Name)
		default:
			return "", fmt.Errorf("unsupported column type %q", col.Type)
		}
		root.Fields = append(root.Fields, fieldTag{Tag: tag})
	}

	encoded, err := json.Marshal(root)
	if err != nil {
		return "", fmt.Errorf("failed to encode schema: %w", err)
	}
	return string(encoded), nil
}
