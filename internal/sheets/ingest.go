package sheets

import (
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"SellerPulse/internal/checksum"
	"SellerPulse/internal/tabular"
)

// FileResult is the per-file entry of a batch upload summary. A batch keeps
// going past a failing file; the failure becomes a skip with a reason.
type FileResult struct {
	FileName string `json:"file_name"`
	Status   string `json:"status"` // uploaded | skipped
	Rows     int    `json:"rows"`
	Skipped  int    `json:"skipped_rows"`
	Digest   string `json:"-"`
	Reason   string `json:"reason,omitempty"`
}

// IngestFiles reads every uploaded file under one form field, normalizes each
// against the schema and concatenates the surviving rows. Files are processed
// sequentially; one bad file never aborts the rest of the batch.
func IngestFiles(form *multipart.Form, field string, opts ReadOptions, schema tabular.Schema) (*tabular.Dataset, []FileResult) {
	if form == nil {
		return nil, nil
	}
	var combined *tabular.Dataset
	var results []FileResult
	registry := checksum.NewRegistry()
	for _, header := range form.File[field] {
		results = append(results, ingestOne(header, opts, schema, registry, &combined))
	}
	return combined, results
}

func ingestOne(header *multipart.FileHeader, opts ReadOptions, schema tabular.Schema, registry *checksum.Registry, combined **tabular.Dataset) FileResult {
	res := FileResult{FileName: header.Filename, Status: "skipped"}

	file, err := header.Open()
	if err != nil {
		res.Reason = fmt.Sprintf("failed to open file: %v", err)
		return res
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		res.Reason = fmt.Sprintf("failed to read file: %v", err)
		return res
	}

	res.Digest = checksum.Digest(data)
	if first, fresh := registry.Record(res.Digest, header.Filename); !fresh {
		res.Reason = fmt.Sprintf("duplicate of %s", first)
		return res
	}

	raw, err := ReadTable(data, opts)
	if err != nil {
		res.Reason = err.Error()
		return res
	}
	clean, stats, err := tabular.Normalize(raw, schema)
	if err != nil {
		// SchemaMismatch and friends are fatal for this file only
		res.Reason = err.Error()
		return res
	}

	if *combined == nil {
		*combined = clean
	} else {
		(*combined).Rows = append((*combined).Rows, clean.Rows...)
	}
	res.Status = "uploaded"
	res.Rows = stats.Valid
	res.Skipped = stats.Skipped
	res.Reason = ""
	return res
}

// ReadOptionsFromValues builds read options from the optional header_row and
// sheet_name form fields.
func ReadOptionsFromValues(headerRow, sheetName string) ReadOptions {
	opts := ReadOptions{SheetName: sheetName}
	if headerRow != "" {
		if n, err := strconv.Atoi(headerRow); err == nil && n >= 0 {
			opts.HeaderRow = n
		}
	}
	return opts
}
