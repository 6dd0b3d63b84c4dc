package engines

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/apache/arrow/go/v14/arrow"
	"github.com/apache/arrow/go/v14/arrow/array"
	arrowcsv "github.com/apache/arrow/go/v14/arrow/csv"
	"github.com/apache/arrow/go/v14/arrow/ipc"
	"github.com/apache/arrow/go/v14/arrow/memory"
	"github.com/apache/arrow/go/v14/parquet"
	"github.com/apache/arrow/go/v14/parquet/file"
	"github.com/apache/arrow/go/v14/parquet/pqarrow"

	"formatbench/internal/model"
)

// ArrowEngine benchmarks the Apache Arrow Go implementation: CSV through
// arrow/csv, Parquet through pqarrow, Feather through the Arrow IPC file
// format (Feather v2 is the IPC file layout).
type ArrowEngine struct {
	mem memory.Allocator
}

// NewArrowEngine creates a new Arrow engine
func NewArrowEngine() *ArrowEngine {
	return &ArrowEngine{mem: memory.NewGoAllocator()}
}

// Name returns the engine identifier
func (e *ArrowEngine) Name() model.EngineType {
	return model.EngineArrow
}

// Write serializes the dataset to path using Arrow's native writer for the
// format.
func (e *ArrowEngine) Write(ds *model.Dataset, format model.FormatType, path string) error {
	rec, err := e.record(ds)
	if err != nil {
		return err
	}
	defer rec.Release()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	switch format {
	case model.FormatCSV:
		w := arrowcsv.NewWriter(f, rec.Schema(), arrowcsv.WithHeader(true))
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("arrow csv write failed: %w", err)
		}
		return w.Flush()

	case model.FormatParquet:
		props := parquet.NewWriterProperties(parquet.WithAllocator(e.mem))
		arrProps := pqarrow.NewArrowWriterProperties(pqarrow.WithAllocator(e.mem))
		w, err := pqarrow.NewFileWriter(rec.Schema(), f, props, arrProps)
		if err != nil {
			return fmt.Errorf("failed to create parquet writer: %w", err)
		}
		if err := w.Write(rec); err != nil {
			w.Close()
			return fmt.Errorf("arrow parquet write failed: %w", err)
		}
		return w.Close()

	case model.FormatFeather:
		w, err := ipc.NewFileWriter(f, ipc.WithSchema(rec.Schema()), ipc.WithAllocator(e.mem))
		if err != nil {
			return fmt.Errorf("failed to create ipc writer: %w", err)
		}
		if err := w.Write(rec); err != nil {
			w.Close()
			return fmt.Errorf("arrow feather write failed: %w", err)
		}
		return w.Close()

	default:
		return errUnsupported(model.EngineArrow, format)
	}
}

// Read deserializes the file at path with Arrow's native reader for the
// format and reports the observed shape.
func (e *ArrowEngine) Read(format model.FormatType, path string) (*ReadResult, error) {
	switch format {
	case model.FormatCSV:
		return e.readCSV(path)
	case model.FormatParquet:
		return e.readParquet(path)
	case model.FormatFeather:
		return e.readFeather(path)
	default:
		return nil, errUnsupported(model.EngineArrow, format)
	}
}

func (e *ArrowEngine) readCSV(path string) (*ReadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := arrowcsv.NewInferringReader(f,
		arrowcsv.WithAllocator(e.mem),
		arrowcsv.WithHeader(true),
		arrowcsv.WithChunk(1024),
	)
	defer r.Release()

	var rows int64
	for r.Next() {
		rows += r.Record().NumRows()
	}
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("arrow csv read failed: %w", err)
	}

	return &ReadResult{Rows: rows, Columns: schemaColumns(r.Schema())}, nil
}

func (e *ArrowEngine) readParquet(path string) (*ReadResult, error) {
	pf, err := file.OpenParquetFile(path, false)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer pf.Close()

	fr, err := pqarrow.NewFileReader(pf, pqarrow.ArrowReadProperties{BatchSize: 1024}, e.mem)
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet reader: %w", err)
	}

	tbl, err := fr.ReadTable(context.Background())
	if err != nil {
		return nil, fmt.Errorf("arrow parquet read failed: %w", err)
	}
	defer tbl.Release()

	return &ReadResult{Rows: tbl.NumRows(), Columns: schemaColumns(tbl.Schema())}, nil
}

func (e *ArrowEngine) readFeather(path string) (*ReadResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r, err := ipc.NewFileReader(f, ipc.WithAllocator(e.mem))
	if err != nil {
		return nil, fmt.Errorf("failed to create ipc reader: %w", err)
	}
	defer r.Close()

	var rows int64
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("arrow feather read failed: %w", err)
		}
		rows += rec.NumRows()
	}

	return &ReadResult{Rows: rows, Columns: schemaColumns(r.Schema())}, nil
}

// record converts the dataset into a single Arrow record batch.
func (e *ArrowEngine) record(ds *model.Dataset) (arrow.Record, error) {
	fields := make([]arrow.Field, len(ds.Columns))
	for i := range ds.Columns {
		dt, err := arrowType(ds.Columns[i].Type)
		if err != nil {
			return nil, err
		}
		fields[i] = arrow.Field{Name: ds.Columns[i].Name, Type: dt}
	}
	schema := arrow.NewSchema(fields, nil)

	b := array.NewRecordBuilder(e.mem, schema)
	defer b.Release()

	for i := range ds.Columns {
		col := &ds.Columns[i]
		switch col.Type {
		case model.ColumnTypeInteger:
			b.Field(i).(*array.Int64Builder).AppendValues(col.Ints, nil)
		case model.ColumnTypeFloat:
			b.Field(i).(*array.Float64Builder).AppendValues(col.Floats, nil)
		case model.ColumnTypeString:
			b.Field(i).(*array.StringBuilder).AppendValues(col.Strings, nil)
		case model.ColumnTypeBoolean:
			b.Field(i).(*array.BooleanBuilder).AppendValues(col.Bools, nil)
		case model.ColumnTypeDatetime:
			tb := b.Field(i).(*array.TimestampBuilder)
			for _, t := range col.Times {
				tb.Append(arrow.Timestamp(t.UnixMilli()))
			}
		}
	}

	return b.NewRecord(), nil
}

func arrowType(t model.ColumnType) (arrow.DataType, error) {
	switch t {
	case model.ColumnTypeInteger:
		return arrow.PrimitiveTypes.Int64, nil
	case model.ColumnTypeFloat:
		return arrow.PrimitiveTypes.Float64, nil
	case model.ColumnTypeString:
		return arrow.BinaryTypes.String, nil
	case model.ColumnTypeBoolean:
		return arrow.FixedWidthTypes.Boolean, nil
	case model.ColumnTypeDatetime:
		return arrow.FixedWidthTypes.Timestamp_ms, nil
	default:
		return nil, fmt.Errorf("unsupported column type %q", t)
	}
}

func schemaColumns(schema *arrow.Schema) []string {
	if schema == nil {
		return nil
	}
	names := make([]string, len(schema.Fields()))
	for i, f := range schema.Fields() {
		names[i] = f.Name
	}
	return names
}
