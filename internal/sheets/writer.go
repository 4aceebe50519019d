package sheets

import (
	"fmt"
	"net/http"

	"github.com/xuri/excelize/v2"

	"SellerPulse/internal/sections"
	"SellerPulse/internal/tabular"
	"SellerPulse/internal/turnover"
)

// Grade fill colors, deficit red through dead-stock gray.
var gradeFills = map[string]string{
	turnover.GradeStrongDeficit: "FFC7CE",
	turnover.GradeDeficit:       "FFD7D7",
	turnover.GradeNorm:          "C6EFCE",
	turnover.GradeAttention:     "FFEB9C",
	turnover.GradeSurplus:       "FFE4B5",
	turnover.GradeHighSurplus:   "FFD099",
	turnover.GradeDeadStock:     "D9D9D9",
	turnover.GradeDeadStock100:  "BFBFBF",
	turnover.GradeSOS:           "FF9999",
}

// WriteOptions tunes the workbook layout.
type WriteOptions struct {
	SheetName string
	// GradeColumn, when set, fills each data row by its grade label.
	GradeColumn string
	// ColumnWidth applies to every data column; zero keeps the default.
	ColumnWidth float64
}

// WriteWorkbook renders report sections into one worksheet: a banner row per
// section, a styled header, data rows, and bold synthetic total rows. The
// engines only hand over plain rows with a declared column order; everything
// visual happens here.
func WriteWorkbook(secs []sections.Section, opts WriteOptions) (*excelize.File, error) {
	sheet := opts.SheetName
	if sheet == "" {
		sheet = "Sheet1"
	}
	f := excelize.NewFile()
	if sheet != "Sheet1" {
		f.SetSheetName("Sheet1", sheet)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	bannerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
	})
	if err != nil {
		return nil, err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"F2F2F2"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	fillStyles := make(map[string]int, len(gradeFills))
	for grade, color := range gradeFills {
		id, err := f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		})
		if err != nil {
			return nil, err
		}
		fillStyles[grade] = id
	}

	rowNo := 1
	for _, sec := range secs {
		cols := sec.Data.Columns
		if len(cols) == 0 {
			continue
		}
		lastCol, _ := excelize.ColumnNumberToName(len(cols))

		if sec.Name != "" {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNo), sec.Name)
			f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowNo), fmt.Sprintf("A%d", rowNo), bannerStyle)
			rowNo++
		}

		for j, col := range cols {
			cell, _ := excelize.CoordinatesToCellName(j+1, rowNo)
			f.SetCellValue(sheet, cell, col)
		}
		f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowNo), fmt.Sprintf("%s%d", lastCol, rowNo), headerStyle)
		rowNo++

		for _, row := range sec.Data.Rows {
			for j, col := range cols {
				cell, _ := excelize.CoordinatesToCellName(j+1, rowNo)
				setCell(f, sheet, cell, row[col])
			}
			first := fmt.Sprintf("A%d", rowNo)
			last := fmt.Sprintf("%s%d", lastCol, rowNo)
			if row[sections.TotalMarker].FloatOr(0) == 1 {
				f.SetCellStyle(sheet, first, last, totalStyle)
			} else if opts.GradeColumn != "" {
				if style, ok := fillStyles[row[opts.GradeColumn].String()]; ok {
					f.SetCellStyle(sheet, first, last, style)
				}
			}
			rowNo++
		}
		rowNo++ // blank row between sections
	}

	if opts.ColumnWidth > 0 {
		maxCols := 0
		for _, sec := range secs {
			if len(sec.Data.Columns) > maxCols {
				maxCols = len(sec.Data.Columns)
			}
		}
		if maxCols > 0 {
			lastCol, _ := excelize.ColumnNumberToName(maxCols)
			f.SetColWidth(sheet, "A", lastCol, opts.ColumnWidth)
		}
	}
	return f, nil
}

func setCell(f *excelize.File, sheet, cell string, v tabular.Value) {
	switch v.Kind {
	case tabular.KindNumber:
		f.SetCellValue(sheet, cell, v.Num)
	case tabular.KindMissing:
		// leave blank
	default:
		f.SetCellValue(sheet, cell, v.String())
	}
}

// ServeWorkbook streams the workbook as an attachment download.
func ServeWorkbook(w http.ResponseWriter, f *excelize.File, filename string) error {
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	return f.Write(w)
}
