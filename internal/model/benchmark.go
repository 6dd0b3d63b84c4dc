package model

import "time"

// EngineType identifies a data-processing library under benchmark.
type EngineType string

const (
	EngineArrow     EngineType = "arrow"
	EngineParquetGo EngineType = "parquetgo"
	EngineStdCodec  EngineType = "stdcodec"
	EngineExcelize  EngineType = "excelize"
	EngineGoAvro    EngineType = "goavro"
)

// EngineOrder is the declaration order of engines. It fixes both the
// execution order of the trial loop and the final tie-break when two
// engines post identical timings and file sizes.
var EngineOrder = []EngineType{
	EngineArrow,
	EngineParquetGo,
	EngineStdCodec,
	EngineExcelize,
	EngineGoAvro,
}

// FormatType identifies a tabular file format.
type FormatType string

const (
	FormatCSV     FormatType = "csv"
	FormatExcel   FormatType = "excel"
	FormatParquet FormatType = "parquet"
	FormatFeather FormatType = "feather"
	FormatJSON    FormatType = "json"
	FormatAvro    FormatType = "avro"
)

// FormatOrder is the declaration order of formats used by the trial loop.
var FormatOrder = []FormatType{
	FormatCSV,
	FormatExcel,
	FormatParquet,
	FormatFeather,
	FormatJSON,
	FormatAvro,
}

// Extension returns the file extension used for intermediate files.
func (f FormatType) Extension() string {
	switch f {
	case FormatExcel:
		return "xlsx"
	case FormatFeather:
		return "arrow"
	default:
		return string(f)
	}
}

// OperationKind distinguishes read trials from write trials.
type OperationKind string

const (
	OperationRead  OperationKind = "read"
	OperationWrite OperationKind = "write"
)

// OperationOrder fixes write-before-read: a read trial always consumes the
// file produced by the preceding write trial of the same engine.
var OperationOrder = []OperationKind{OperationWrite, OperationRead}

// Combination identifies one (engine, format, operation) cell of the
// benchmark matrix.
type Combination struct {
	Engine    EngineType
	Format    FormatType
	Operation OperationKind
}

// Trial is one timed execution of a single combination. Trials live only
// for the duration of a run; only aggregates are persisted.
type Trial struct {
	Dataset   string
	Engine    EngineType
	Format    FormatType
	Operation OperationKind
	Duration  time.Duration
	FileSize  int64 // populated for write trials only
	Success   bool
	Error     string
}

// Combination returns the matrix cell this trial belongs to.
func (t *Trial) Combination() Combination {
	return Combination{Engine: t.Engine, Format: t.Format, Operation: t.Operation}
}

// ResultStatus marks whether a combination produced usable samples.
type ResultStatus string

const (
	StatusOK    ResultStatus = "ok"
	StatusError ResultStatus = "error"
)

// AggregateResult summarizes all trials of one combination for one dataset.
// Immutable once computed.
type AggregateResult struct {
	Dataset     string
	Engine      EngineType
	Format      FormatType
	Operation   OperationKind
	TrimmedMean time.Duration
	Min         time.Duration
	Max         time.Duration
	FileSize    int64
	Trials      int
	Failures    int
	Fastest     bool
	Status      ResultStatus
}

// Report is the full set of aggregate rows for a run.
type Report struct {
	RunID   string
	Results []AggregateResult
}
