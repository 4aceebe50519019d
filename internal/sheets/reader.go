// Package sheets adapts uploaded spreadsheet files (xlsx, legacy xls, csv)
// into raw tabular datasets and renders derived datasets back into styled
// downloadable workbooks. Value coercion is not done here; that belongs to
// the normalizer.
package sheets

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"SellerPulse/internal/tabular"
)

// ReadOptions declares where the table starts inside the uploaded file.
type ReadOptions struct {
	// SheetName selects the worksheet; empty means the first sheet.
	SheetName string
	// HeaderRow is the zero-based row index holding the column names.
	// Marketplace extracts often carry banner rows above the real header.
	HeaderRow int
}

// ReadTable parses file bytes into a dataset of text cells keyed by the
// header row. Format is tried in order: xlsx, legacy xls, csv.
func ReadTable(data []byte, opts ReadOptions) (*tabular.Dataset, error) {
	rows, err := readXLSX(data, opts.SheetName)
	if err != nil {
		var xlsErr error
		rows, xlsErr = readXLS(data, opts.SheetName)
		if xlsErr != nil {
			var csvErr error
			rows, csvErr = readCSV(data)
			if csvErr != nil {
				return nil, fmt.Errorf("failed to parse xlsx, xls, or csv: %w", err)
			}
		}
	}
	return gridToDataset(rows, opts.HeaderRow)
}

func readXLSX(data []byte, sheetName string) ([][]string, error) {
	xl, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer xl.Close()

	if sheetName == "" {
		sheetList := xl.GetSheetList()
		if len(sheetList) == 0 {
			return nil, errors.New("no sheets in workbook")
		}
		sheetName = sheetList[0]
	}
	rawRows, err := xl.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	// Re-read each cell with GetCellValue so formula cells come back
	// evaluated instead of as formula text.
	rows := make([][]string, len(rawRows))
	for i, rawRow := range rawRows {
		rows[i] = make([]string, len(rawRow))
		for j := range rawRow {
			colName, _ := excelize.ColumnNumberToName(j + 1)
			cellRef := fmt.Sprintf("%s%d", colName, i+1)
			if v, cellErr := xl.GetCellValue(sheetName, cellRef); cellErr == nil && v != "" {
				rows[i][j] = v
			} else {
				rows[i][j] = rawRow[j]
			}
		}
	}
	return rows, nil
}

func readXLS(data []byte, sheetName string) ([][]string, error) {
	// xls.OpenReader needs a seeker; a temp file also keeps large legacy
	// uploads off the heap twice.
	tmp, err := os.CreateTemp("", "upload-*.xls")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, err
	}
	tmp.Close()

	book, err := xls.Open(tmp.Name(), "utf-8")
	if err != nil {
		return nil, err
	}

	sheetIdx := 0
	if sheetName != "" {
		found := false
		for i := 0; i < book.NumSheets(); i++ {
			if s := book.GetSheet(i); s != nil && s.Name == sheetName {
				sheetIdx = i
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("sheet %q not found", sheetName)
		}
	}
	sheet := book.GetSheet(sheetIdx)
	if sheet == nil {
		return nil, errors.New("failed to get xls sheet")
	}

	var rows [][]string
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			rows = append(rows, nil)
			continue
		}
		var vals []string
		for j := 0; j < row.LastCol(); j++ {
			vals = append(vals, row.Col(j))
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

func readCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func gridToDataset(rows [][]string, headerRow int) (*tabular.Dataset, error) {
	if headerRow >= len(rows) {
		return nil, fmt.Errorf("header row %d beyond sheet end (%d rows)", headerRow, len(rows))
	}
	var header []string
	for _, h := range rows[headerRow] {
		header = append(header, strings.TrimSpace(h))
	}

	ds := &tabular.Dataset{Columns: header}
	for _, raw := range rows[headerRow+1:] {
		empty := true
		for _, cell := range raw {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}
		row := make(tabular.Row, len(header))
		for j, col := range header {
			if col == "" {
				continue
			}
			if j < len(raw) {
				row[col] = tabular.Text(strings.TrimSpace(raw[j]))
			} else {
				row[col] = tabular.Missing()
			}
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}
