package engines

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/linkedin/goavro/v2"

	"formatbench/internal/model"
)

// GoAvroEngine benchmarks linkedin/goavro with the Avro object container
// format. Datetime values travel as long millisecond epochs.
type GoAvroEngine struct{}

// NewGoAvroEngine creates a new goavro engine
func NewGoAvroEngine() *GoAvroEngine {
	return &GoAvroEngine{}
}

// Name returns the engine identifier
func (e *GoAvroEngine) Name() model.EngineType {
	return model.EngineGoAvro
}

// Write serializes the dataset into an Avro OCF file at path.
func (e *GoAvroEngine) Write(ds *model.Dataset, format model.FormatType, path string) error {
	if format != model.FormatAvro {
		return errUnsupported(model.EngineGoAvro, format)
	}

	schema, err := avroSchema(ds)
	if err != nil {
		return err
	}

	codec, err := goavro.NewCodec(schema)
	if err != nil {
		return fmt.Errorf("failed to build avro codec: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w, err := goavro.NewOCFWriter(goavro.OCFConfig{W: f, Codec: codec})
	if err != nil {
		return fmt.Errorf("failed to create ocf writer: %w", err)
	}

	records := make([]interface{}, ds.Rows)
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
		records[r] = row
	}

	if err := w.Append(records); err != nil {
		return fmt.Errorf("avro write failed: %w", err)
	}
	return nil
}

// Read deserializes the Avro OCF file at path.
func (e *GoAvroEngine) Read(format model.FormatType, path string) (*ReadResult, error) {
	if format != model.FormatAvro {
		return nil, errUnsupported(model.EngineGoAvro, format)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r, err := goavro.NewOCFReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to create ocf reader: %w", err)
	}

	var rows int64
	var columns []string
	for r.Scan() {
		datum, err := r.Read()
		if err != nil {
			return nil, fmt.Errorf("avro read failed: %w", err)
		}
		if columns == nil {
			if record, ok := datum.(map[string]interface{}); ok {
				for name := range record {
					columns = append(columns, name)
				}
			}
		}
		rows++
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("avro read failed: %w", err)
	}

	return &ReadResult{Rows: rows, Columns: columns}, nil
}

// avroSchema renders the record schema for the dataset.
func avroSchema(ds *model.Dataset) (string, error) {
	type avroField struct {
		Name string `json:"name"`
		Type string `json:"type"`
	}
	schema := struct {
		Type   string      `json:"type"`
		Name   string      `json:"name"`
		Fields []avroField `json:"fields"`
	}{Type: "record", Name: "dataset"}

	for i := range ds.Columns {
		col := &ds.Columns[i]
		var avroType string
		switch col.Type {
		case model.ColumnTypeInteger, model.ColumnTypeDatetime:
			avroType = "long"
		case model.ColumnTypeFloat:
			avroType = "double"
		case model.ColumnTypeString:
			avroType = "string"
		case model.ColumnTypeBoolean:
			avroType = "boolean"
		default:
			return "", fmt.Errorf("unsupported column type %q", col.Type)
		}
		schema.Fields = append(schema.Fields, avroField{Name: col.Name, Type: avroType})
	}

	encoded, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("failed to encode schema: %w", err)
	}
	return string(encoded), nil
}
