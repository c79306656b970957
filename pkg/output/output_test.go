package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		value   string
		want    Format
		wantErr bool
	}{
		{"plain", FormatPlain, false},
		{"csv", FormatCSV, false},
		{"json", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := ParseFormat(tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, expected %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestProject(t *testing.T) {
	rows := []map[string]any{
		{"url": "https://api.example.com/v2/invoices/1", "reference": "INV-1", "extra": "dropped"},
		{"url": "https://api.example.com/v2/invoices/2"},
	}

	projected := Project(rows, []string{"url", "reference"})

	if len(projected) != 2 {
		t.Fatalf("Project() returned %d rows, expected 2", len(projected))
	}
	if _, ok := projected[0]["extra"]; ok {
		t.Error("Project() should drop fields outside the projection")
	}
	if projected[1]["reference"] != "" {
		t.Errorf("Project() missing field = %v, expected empty string", projected[1]["reference"])
	}
}

func TestCellString(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"nil", nil, ""},
		{"string", "hello", "hello"},
		{"bool", true, "true"},
		{"integer float", float64(100), "100"},
		{"decimal float", 123.45, "123.45"},
		{"json number", json.Number("99.9"), "99.9"},
		{"nested object", map[string]any{"method": "straight_line"}, `{"method":"straight_line"}`},
		{"nested array", []any{"a", "b"}, `["a","b"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CellString(tt.value); got != tt.want {
				t.Errorf("CellString(%v) = %q, expected %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestRenderCSV(t *testing.T) {
	rows := []map[string]any{
		{"reference": "INV-1", "total_value": 120.5},
		{"reference": "INV-2", "total_value": float64(99)},
	}

	var buf bytes.Buffer
	if err := Render(&buf, rows, []string{"reference", "total_value"}, FormatCSV); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("CSV output has %d lines, expected 3:\n%s", len(lines), buf.String())
	}
	if lines[0] != "reference,total_value" {
		t.Errorf("CSV header = %q", lines[0])
	}
	if lines[1] != "INV-1,120.5" {
		t.Errorf("CSV row = %q, expected INV-1,120.5", lines[1])
	}
	if lines[2] != "INV-2,99" {
		t.Errorf("CSV row = %q, expected INV-2,99", lines[2])
	}
}

func TestRenderJSON(t *testing.T) {
	rows := []map[string]any{{"name": "Checking", "currency": "GBP"}}

	var buf bytes.Buffer
	if err := Render(&buf, rows, []string{"name", "currency"}, FormatJSON); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("JSON output does not parse: %v", err)
	}
	if len(decoded) != 1 || decoded[0]["name"] != "Checking" {
		t.Errorf("JSON output = %v", decoded)
	}
}

func TestRenderTable(t *testing.T) {
	rows := []map[string]any{
		{"name": "Checking", "current_balance": 1500.75},
	}

	var buf bytes.Buffer
	if err := Render(&buf, rows, []string{"name", "current_balance"}, FormatPlain); err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Checking", "1500.75"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderYAML(t *testing.T) {
	rows := []map[string]any{{"reference": "INV-1"}}

	var buf bytes.Buffer
	if err := Render(&buf, rows, []string{"reference"}, FormatYAML); err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(buf.String(), "reference: INV-1") {
		t.Errorf("YAML output = %q", buf.String())
	}
}
