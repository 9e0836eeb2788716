// internal/app/system/csvutil/projects.go

// Package csvutil parses the project-import CSV used to migrate legacy
// spreadsheet data into FlatTrack. Parsing never touches the database;
// callers pre-scan first and only insert when the whole file is clean.
package csvutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ProjectCSVRow is a normalized row from the import file.
// Expected columns: Name, Client, Street, Suburb, Cost (dollars).
type ProjectCSVRow struct {
	Name       string
	ClientName string
	Street     string
	Suburb     string
	CostCents  int64
}

// RowError describes one rejected line.
type RowError struct {
	Line    int
	Message string
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// ParseResult holds the accepted rows and any per-line rejections.
type ParseResult struct {
	Rows   []ProjectCSVRow
	Errors []RowError
}

// HasErrors reports whether any line was rejected.
func (r ParseResult) HasErrors() bool { return len(r.Errors) > 0 }

// ParseOptions bounds the parse.
type ParseOptions struct {
	MaxRows int
}

// DefaultParseOptions returns the standard limits.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{MaxRows: MaxRows}
}

// ParseProjectCSV reads all rows, skipping a header line if present and
// a UTF-8 BOM if one leads the file. Blank lines are skipped; rows with
// missing required fields or malformed costs are collected as errors
// rather than aborting the parse.
func ParseProjectCSV(r io.Reader, opts ParseOptions) (ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var result ParseResult
	line := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return result, err
		}
		line++

		if line == 1 && len(record) > 0 {
			record[0] = strings.TrimPrefix(record[0], "\ufeff")
			if isHeader(record) {
				continue
			}
		}

		if isBlank(record) {
			continue
		}

		if opts.MaxRows > 0 && len(result.Rows) >= opts.MaxRows {
			result.Errors = append(result.Errors, RowError{
				Line:    line,
				Message: fmt.Sprintf("row limit of %d exceeded", opts.MaxRows),
			})
			break
		}

		row, rowErr := parseRow(record, line)
		if rowErr != nil {
			result.Errors = append(result.Errors, *rowErr)
			continue
		}
		result.Rows = append(result.Rows, row)
	}

	return result, nil
}

func parseRow(record []string, line int) (ProjectCSVRow, *RowError) {
	if len(record) < 4 {
		return ProjectCSVRow{}, &RowError{Line: line, Message: "expected at least 4 columns (name, client, street, suburb)"}
	}

	row := ProjectCSVRow{
		Name:       strings.TrimSpace(record[0]),
		ClientName: strings.TrimSpace(record[1]),
		Street:     strings.TrimSpace(record[2]),
		Suburb:     strings.TrimSpace(record[3]),
	}
	if row.Name == "" {
		return ProjectCSVRow{}, &RowError{Line: line, Message: "project name is required"}
	}
	if row.ClientName == "" {
		return ProjectCSVRow{}, &RowError{Line: line, Message: "client name is required"}
	}

	if len(record) >= 5 && strings.TrimSpace(record[4]) != "" {
		raw := strings.TrimSpace(record[4])
		raw = strings.TrimPrefix(raw, "$")
		raw = strings.ReplaceAll(raw, ",", "")
		dollars, err := strconv.ParseFloat(raw, 64)
		if err != nil || dollars < 0 {
			return ProjectCSVRow{}, &RowError{Line: line, Message: fmt.Sprintf("invalid cost %q", record[4])}
		}
		row.CostCents = int64(dollars*100 + 0.5)
	}

	return row, nil
}

func isHeader(record []string) bool {
	if len(record) < 2 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(record[0]))
	second := strings.ToLower(strings.TrimSpace(record[1]))
	return (first == "name" || first == "project" || first == "project name") &&
		(second == "client" || second == "client name")
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
