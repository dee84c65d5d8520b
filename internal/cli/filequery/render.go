package filequery

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/duckmesh/filequery/internal/query"
)

type renderer interface {
	Schema(w io.Writer, schema query.Schema) error
	Result(w io.Writer, result query.Result) error
}

func rendererFor(format string) (renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "table":
		return tableRenderer{}, nil
	case "json":
		return jsonRenderer{}, nil
	case "csv":
		return csvRenderer{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

type tableRenderer struct{}

func (tableRenderer) Schema(w io.Writer, schema query.Schema) error {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"column", "type"})
	for _, column := range schema.Columns {
		t.AppendRow(table.Row{column.Name, column.Type})
	}
	t.Render()
	return nil
}

func (tableRenderer) Result(w io.Writer, result query.Result) error {
	if len(result.Rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(result.Columns))
	for i, column := range result.Columns {
		header[i] = column
	}
	t.AppendHeader(header)
	for _, row := range result.Rows {
		cells := make(table.Row, len(row))
		for i, value := range row {
			cells[i] = value.String()
		}
		t.AppendRow(cells)
	}
	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(result.Rows))
	return nil
}

type jsonRenderer struct{}

type jsonColumn struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	EngineType string `json:"engine_type"`
}

type jsonResult struct {
	Columns []string        `json:"columns"`
	Rows    [][]query.Value `json:"rows"`
}

func (jsonRenderer) Schema(w io.Writer, schema query.Schema) error {
	columns := make([]jsonColumn, 0, len(schema.Columns))
	for _, column := range schema.Columns {
		columns = append(columns, jsonColumn(column))
	}
	return encodeJSON(w, columns)
}

func (jsonRenderer) Result(w io.Writer, result query.Result) error {
	rows := result.Rows
	if rows == nil {
		rows = [][]query.Value{}
	}
	return encodeJSON(w, jsonResult{Columns: result.Columns, Rows: rows})
}

func encodeJSON(w io.Writer, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

type csvRenderer struct{}

func (csvRenderer) Schema(w io.Writer, schema query.Schema) error {
	records := [][]string{{"column", "type"}}
	for _, column := range schema.Columns {
		records = append(records, []string{column.Name, column.Type})
	}
	return writeCSV(w, records)
}

func (csvRenderer) Result(w io.Writer, result query.Result) error {
	records := make([][]string, 0, len(result.Rows)+1)
	records = append(records, result.Columns)
	for _, row := range result.Rows {
		record := make([]string, len(row))
		for i, value := range row {
			if value.IsNull() {
				continue
			}
			record[i] = value.String()
		}
		records = append(records, record)
	}
	return writeCSV(w, records)
}

func writeCSV(w io.Writer, records [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(records); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
