package registry

import "formatbench/internal/model"

// capabilityMatrix declares which engine/format pairs are benchmarked. An
// engine is listed for a format only when it has a native, non-emulated
// code path for it; the table is policy, fixed here, never inferred at
// runtime. Read and write share the same entry.
var capabilityMatrix = map[model.EngineType]map[model.FormatType]bool{
	model.EngineArrow: {
		model.FormatCSV:     true,
		model.FormatParquet: true,
		model.FormatFeather: true,
	},
	model.EngineParquetGo: {
		model.FormatParquet: true,
	},
	model.EngineStdCodec: {
		model.FormatCSV:  true,
		model.FormatJSON: true,
	},
	model.EngineExcelize: {
		model.FormatExcel: true,
	},
	model.EngineGoAvro: {
		model.FormatAvro: true,
	},
}

// Enabled reports whether the combination is part of the benchmark matrix.
// Pure lookup, no side effects.
func Enabled(engine model.EngineType, format model.FormatType, op model.OperationKind) bool {
	formats, ok := capabilityMatrix[engine]
	if !ok {
		return false
	}
	return formats[format]
}

// EnabledFormats returns the formats an engine is benchmarked on, in
// declaration order.
func EnabledFormats(engine model.EngineType) []model.FormatType {
	var formats []model.FormatType
	for _, format := range model.FormatOrder {
		if Enabled(engine, format, model.OperationWrite) {
			formats = append(formats, format)
		}
	}
	return formats
}

// EnabledEngines returns the engines benchmarked on a format, in declaration
// order.
func EnabledEngines(format model.FormatType) []model.EngineType {
	var engines []model.EngineType
	for _, engine := range model.EngineOrder {
		if Enabled(engine, format, model.OperationWrite) {
			engines = append(engines, engine)
		}
	}
	return engines
}
