package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"formatbench/internal/model"
	"formatbench/internal/utils"
)

const (
	comparisonSheet = "Comparison"
	rawSheet        = "Raw"

	numberFormat = "#,##0.00"
)

// metricGroup is one block of engine columns in the comparison pivot.
type metricGroup struct {
	title     string
	operation model.OperationKind
	size      bool
	headFill  string
}

var metricGroups = []metricGroup{
	{title: "Write ms", operation: model.OperationWrite, headFill: "00B050"},
	{title: "Read ms", operation: model.OperationRead, headFill: "ED7D31"},
	{title: "Size KB", operation: model.OperationWrite, size: true, headFill: "4472C4"},
}

type resultKey struct {
	dataset   string
	engine    model.EngineType
	format    model.FormatType
	operation model.OperationKind
}

// Write renders the report workbook: a Comparison pivot sheet with one row
// per (format, dataset) and engine columns grouped by metric, plus a Raw
// sheet with every aggregate row. The workbook is the run's only persisted
// artifact.
func Write(report *model.Report, path string) error {
	if report == nil || len(report.Results) == 0 {
		return utils.NewReportWriteError(nil, "report contains no results")
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", comparisonSheet)
	if _, err := f.NewSheet(rawSheet); err != nil {
		return utils.NewReportWriteError(err, "failed to create raw sheet")
	}

	index := make(map[resultKey]*model.AggregateResult, len(report.Results))
	var datasets []string
	seen := make(map[string]bool)
	for i := range report.Results {
		r := &report.Results[i]
		index[resultKey{dataset: r.Dataset, engine: r.Engine, format: r.Format, operation: r.Operation}] = r
		if !seen[r.Dataset] {
			seen[r.Dataset] = true
			datasets = append(datasets, r.Dataset)
		}
	}

	if err := writeComparison(f, index, datasets); err != nil {
		return err
	}
	if err := writeRaw(f, report); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return utils.NewReportWriteError(err, fmt.Sprintf("failed to save workbook to %s", path))
	}
	return nil
}

// writeComparison fills the pivot sheet. Layout: two frozen index columns
// (format, dataset), then one column per engine under each metric group.
func writeComparison(f *excelize.File, index map[resultKey]*model.AggregateResult, datasets []string) error {
	styles, err := newStyleSet(f)
	if err != nil {
		return err
	}

	engines := model.EngineOrder
	groupWidth := len(engines)

	// Header rows.
	f.SetCellValue(comparisonSheet, "A1", "Format")
	f.SetCellValue(comparisonSheet, "B1", "Dataset")
	f.MergeCell(comparisonSheet, "A1", "A2")
	f.MergeCell(comparisonSheet, "B1", "B2")
	f.SetCellStyle(comparisonSheet, "A1", "B2", styles.index)

	col := 3
	for _, group := range metricGroups {
		start, _ := excelize.CoordinatesToCellName(col, 1)
		end, _ := excelize.CoordinatesToCellName(col+groupWidth-1, 1)
		f.SetCellValue(comparisonSheet, start, group.title)
		f.MergeCell(comparisonSheet, start, end)
		f.SetCellStyle(comparisonSheet, start, end, styles.groupHead[group.headFill])

		for i, engine := range engines {
			cell, _ := excelize.CoordinatesToCellName(col+i, 2)
			f.SetCellValue(comparisonSheet, cell, string(engine))
			f.SetCellStyle(comparisonSheet, cell, cell, styles.engineHead)
		}
		col += groupWidth
	}

	// Data rows.
	row := 3
	for _, format := range model.FormatOrder {
		for _, dataset := range datasets {
			if !formatHasRows(index, format, dataset) {
				continue
			}
			formatCell, _ := excelize.CoordinatesToCellName(1, row)
			datasetCell, _ := excelize.CoordinatesToCellName(2, row)
			f.SetCellValue(comparisonSheet, formatCell, string(format))
			f.SetCellValue(comparisonSheet, datasetCell, dataset)
			f.SetCellStyle(comparisonSheet, formatCell, datasetCell, styles.index)

			col = 3
			for _, group := range metricGroups {
				for i, engine := range engines {
					cell, _ := excelize.CoordinatesToCellName(col+i, row)
					r, ok := index[resultKey{dataset: dataset, engine: engine, format: format, operation: group.operation}]
					switch {
					case !ok:
						f.SetCellStyle(comparisonSheet, cell, cell, styles.blank)
					case r.Status != model.StatusOK:
						f.SetCellValue(comparisonSheet, cell, "error")
						f.SetCellStyle(comparisonSheet, cell, cell, styles.failed)
					case group.size:
						f.SetCellValue(comparisonSheet, cell, float64(r.FileSize)/1024.0)
						f.SetCellStyle(comparisonSheet, cell, cell, styles.number)
					default:
						f.SetCellValue(comparisonSheet, cell, milliseconds(r.TrimmedMean))
						if r.Fastest {
							f.SetCellStyle(comparisonSheet, cell, cell, styles.fastest)
						} else {
							f.SetCellStyle(comparisonSheet, cell, cell, styles.number)
						}
					}
				}
				col += groupWidth
			}
			row++
		}
	}
	lastRow := row - 1

	// A colour scale per timing block makes the slow engines jump out.
	// Size columns are left alone, bytes across formats are not comparable
	// on the same scale.
	col = 3
	for _, group := range metricGroups {
		if !group.size && lastRow >= 3 {
			start, _ := excelize.CoordinatesToCellName(col, 3)
			end, _ := excelize.CoordinatesToCellName(col+groupWidth-1, lastRow)
			err := f.SetConditionalFormat(comparisonSheet, fmt.Sprintf("%s:%s", start, end), []excelize.ConditionalFormatOptions{
				{
					Type:     "3_color_scale",
					Criteria: "=",
					MinType:  "min",
					MidType:  "percentile",
					MidValue: "50",
					MaxType:  "max",
					MinColor: "#63BE7B",
					MidColor: "#FFEB84",
					MaxColor: "#F8696B",
				},
			})
			if err != nil {
				return utils.NewReportWriteError(err, "failed to apply colour scale")
			}
		}
		col += groupWidth
	}

	f.SetColWidth(comparisonSheet, "A", "B", 14)
	lastColName, _ := excelize.ColumnNumberToName(2 + len(metricGroups)*groupWidth)
	f.SetColWidth(comparisonSheet, "C", lastColName, 11)

	err = f.SetPanes(comparisonSheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      2,
		YSplit:      2,
		TopLeftCell: "C3",
		ActivePane:  "bottomRight",
	})
	if err != nil {
		return utils.NewReportWriteError(err, "failed to freeze panes")
	}
	return nil
}

// writeRaw dumps every aggregate row, one result per line, durations in
// seconds.
func writeRaw(f *excelize.File, report *model.Report) error {
	headers := []string{
		"dataset", "engine", "format", "operation",
		"trimmed_mean_seconds", "min_seconds", "max_seconds",
		"file_size_bytes", "trials", "failures", "is_fastest", "status",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(rawSheet, cell, h)
	}

	for i := range report.Results {
		r := &report.Results[i]
		row := i + 2
		values := []interface{}{
			r.Dataset,
			string(r.Engine),
			string(r.Format),
			string(r.Operation),
			r.TrimmedMean.Seconds(),
			r.Min.Seconds(),
			r.Max.Seconds(),
			r.FileSize,
			r.Trials,
			r.Failures,
			r.Fastest,
			string(r.Status),
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, row)
			if err := f.SetCellValue(rawSheet, cell, v); err != nil {
				return utils.NewReportWriteError(err, "failed to write raw row")
			}
		}
	}
	return nil
}

func formatHasRows(index map[resultKey]*model.AggregateResult, format model.FormatType, dataset string) bool {
	for _, engine := range model.EngineOrder {
		for _, op := range model.OperationOrder {
			if _, ok := index[resultKey{dataset: dataset, engine: engine, format: format, operation: op}]; ok {
				return true
			}
		}
	}
	return false
}

func milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// styleSet holds the style IDs the comparison sheet uses.
type styleSet struct {
	index      int
	engineHead int
	groupHead  map[string]int
	number     int
	fastest    int
	failed     int
	blank      int
}

func newStyleSet(f *excelize.File) (*styleSet, error) {
	border := []excelize.Border{
		{Type: "left", Color: "B2B2B2", Style: 1},
		{Type: "right", Color: "B2B2B2", Style: 1},
		{Type: "top", Color: "B2B2B2", Style: 1},
		{Type: "bottom", Color: "B2B2B2", Style: 1},
	}
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	numFmt := numberFormat

	s := &styleSet{groupHead: make(map[string]int)}
	var err error

	s.index, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"BDD7EE"}},
		Alignment: center,
		Border:    border,
	})
	if err != nil {
		return nil, utils.NewReportWriteError(err, "failed to build styles")
	}

	s.engineHead, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 9, Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E1F2"}},
		Alignment: center,
		Border:    border,
	})
	if err != nil {
		return nil, utils.NewReportWriteError(err, "failed to build styles")
	}

	for _, group := range metricGroups {
		id, serr := f.NewStyle(&excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
			Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{group.headFill}},
			Alignment: center,
			Border:    border,
		})
		if serr != nil {
			return nil, utils.NewReportWriteError(serr, "failed to build styles")
		}
		s.groupHead[group.headFill] = id
	}

	s.number, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &numFmt,
		Alignment:    center,
		Border:       border,
	})
	if err != nil {
		return nil, utils.NewReportWriteError(err, "failed to build styles")
	}

	s.fastest, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		CustomNumFmt: &numFmt,
		Alignment:    center,
		Border:       border,
	})
	if err != nil {
		return nil, utils.NewReportWriteError(err, "failed to build styles")
	}

	s.failed, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Italic: true, Color: "9C0006"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFC7CE"}},
		Alignment: center,
		Border:    border,
	})
	if err != nil {
		return nil, utils.NewReportWriteError(err, "failed to build styles")
	}

	s.blank, err = f.NewStyle(&excelize.Style{
		Alignment: center,
		Border:    border,
	})
	if err != nil {
		return nil, utils.NewReportWriteError(err, "failed to build styles")
	}

	return s, nil
}
