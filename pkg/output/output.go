// Package output provides output formatting for the FreeAgent CLI.
// List results render as a plain table, CSV, JSON or YAML; single
// documents render as indented JSON.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

// Format selects an output rendering.
type Format string

const (
	FormatPlain Format = "plain"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates a --format flag value.
func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case FormatPlain, FormatCSV, FormatJSON, FormatYAML:
		return Format(value), nil
	}
	return "", fmt.Errorf("invalid format %q (want plain, csv, json or yaml)", value)
}

// Project reduces rows to the given fields, in order. Missing fields
// come out as empty strings so every row has the same shape.
func Project(rows []map[string]any, fields []string) []map[string]any {
	projected := make([]map[string]any, len(rows))
	for i, row := range rows {
		out := make(map[string]any, len(fields))
		for _, field := range fields {
			if value, ok := row[field]; ok {
				out[field] = value
			} else {
				out[field] = ""
			}
		}
		projected[i] = out
	}
	return projected
}

// Render writes rows in the requested format.
func Render(w io.Writer, rows []map[string]any, fields []string, format Format) error {
	projected := Project(rows, fields)

	switch format {
	case FormatCSV:
		return renderCSV(w, projected, fields)
	case FormatJSON:
		return PrintJSON(w, projected)
	case FormatYAML:
		return renderYAML(w, projected)
	default:
		return renderTable(w, projected, fields)
	}
}

// PrintJSON writes a value as indented JSON.
func PrintJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func renderTable(w io.Writer, rows []map[string]any, fields []string) error {
	table := tablewriter.NewWriter(w)

	header := make([]any, len(fields))
	for i, field := range fields {
		header[i] = field
	}
	table.Header(header...)

	for _, row := range rows {
		cells := make([]any, len(fields))
		for i, field := range fields {
			cells[i] = CellString(row[field])
		}
		if err := table.Append(cells...); err != nil {
			return fmt.Errorf("failed to append table row: %w", err)
		}
	}

	return table.Render()
}

func renderCSV(w io.Writer, rows []map[string]any, fields []string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(fields); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, len(fields))
	for _, row := range rows {
		for i, field := range fields {
			record[i] = CellString(row[field])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func renderYAML(w io.Writer, rows []map[string]any) error {
	data, err := yaml.Marshal(rows)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// PrintYAML writes a value as YAML.
func PrintYAML(w io.Writer, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// CellString renders a JSON value for a table or CSV cell. Numbers keep
// their plain decimal form and nested structures collapse to compact JSON.
func CellString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case json.Number:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
