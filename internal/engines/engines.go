package engines

import (
	"fmt"

	"formatbench/internal/model"
	"formatbench/internal/utils"
)

// ReadResult reports the table shape observed by a read operation. It is
// what round-trip checks compare against the source dataset.
type ReadResult struct {
	Rows    int64
	Columns []string
}

// Engine is one data-processing library under benchmark. Every call performs
// exactly one I/O operation through the library's native API: writes
// overwrite the target path deterministically, reads are idempotent and do
// no warm-up caching beyond what the library does internally.
type Engine interface {
	Name() model.EngineType
	Write(ds *model.Dataset, format model.FormatType, path string) error
	Read(format model.FormatType, path string) (*ReadResult, error)
}

// All returns every engine in declaration order. The order matters: it is
// the execution order of the trial loop and the final aggregation tie-break.
func All() []Engine {
	return []Engine{
		NewArrowEngine(),
		NewParquetGoEngine(),
		NewStdCodecEngine(),
		NewExcelizeEngine(),
		NewGoAvroEngine(),
	}
}

func errUnsupported(engine model.EngineType, format model.FormatType) error {
	return utils.NewUnsupportedError(fmt.Sprintf("%s has no native %s code path", engine, format))
}
