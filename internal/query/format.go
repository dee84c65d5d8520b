package query

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Format string

const (
	FormatParquet Format = "parquet"
	FormatCSV     Format = "csv"
	FormatJSON    Format = "json"
)

// DetectFormat picks a format from the file extension, falling back to parquet.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return FormatCSV
	case ".json", ".jsonl", ".ndjson":
		return FormatJSON
	default:
		return FormatParquet
	}
}

func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case FormatParquet:
		return FormatParquet, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported format %q", raw)
	}
}

// TableFunction returns the engine call that exposes path as a table. The path
// is emitted as a single-quoted string literal.
func (f Format) TableFunction(path string) string {
	literal := QuoteString(path)
	switch f {
	case FormatCSV:
		return "read_csv_auto(" + literal + ")"
	case FormatJSON:
		return "read_json_auto(" + literal + ")"
	default:
		return "read_parquet(" + literal + ")"
	}
}

func QuoteString(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}
