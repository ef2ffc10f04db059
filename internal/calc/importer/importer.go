// Package importer reads panel lists from Excel workbooks. Columns are found
// by case-insensitive header names, so sheets may order them freely.
package importer

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/siknue/gpg-back/internal/calc/glass"
	"github.com/siknue/gpg-back/internal/calc/stress"
	"github.com/xuri/excelize/v2"
)

// Row is one imported panel and where it came from.
type Row struct {
	Line  int          `json:"line"`
	Label string       `json:"label,omitempty"`
	Panel stress.Panel `json:"panel"`
}

type Result struct {
	Rows     []Row    `json:"rows"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// Panels returns the imported panels in sheet order.
func (r Result) Panels() []stress.Panel {
	out := make([]stress.Panel, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = row.Panel
	}
	return out
}

// headerAliases maps canonical column names to accepted headers (lowercase).
var headerAliases = map[string][]string{
	"label":      {"label", "name", "id", "mark"},
	"case":       {"case", "type", "support"},
	"a":          {"a", "short"},
	"b":          {"b", "long"},
	"a1":         {"a1"},
	"b1":         {"b1"},
	"free":       {"free"},
	"fix":        {"fix", "fixed"},
	"d":          {"d", "diameter"},
	"t":          {"t", "plies", "thickness"},
	"w":          {"w", "pressure"},
	"e":          {"e"},
	"nu":         {"nu"},
	"interlayer": {"interlayer"},
}

var required = []string{"case", "t", "w"}

// DetectColumns maps canonical names to column indices. The first column
// matching an alias wins.
func DetectColumns(header []string) map[string]int {
	cols := make(map[string]int)
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		for canon, aliases := range headerAliases {
			if _, seen := cols[canon]; seen {
				continue
			}
			for _, alias := range aliases {
				if name == alias {
					cols[canon] = i
					break
				}
			}
		}
	}
	return cols
}

// ParsePlies accepts "6+1.52+6", "6,6", "6;6" or a single thickness.
func ParsePlies(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '+' || r == ',' || r == ';' || r == '/'
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("no ply thickness in %q", s)
	}
	plies := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := parseNumber(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("invalid ply thickness %q", f)
		}
		plies = append(plies, v)
	}
	return plies, nil
}

// parseNumber accepts finite decimals only; "inf" and "nan" cells are errors.
func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%q is not a finite number", s)
	}
	return v, nil
}

func getCell(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// parseRow returns the panel, or an error message for the row.
func parseRow(row []string, cols map[string]int, line int) (Row, string) {
	label := fmt.Sprintf("Row %d", line)
	c, err := stress.ParseCase(getCell(row, cols, "case"))
	if err != nil {
		return Row{}, fmt.Sprintf("%s: %v", label, err)
	}
	plies, err := ParsePlies(getCell(row, cols, "t"))
	if err != nil {
		return Row{}, fmt.Sprintf("%s: %v", label, err)
	}

	p := stress.Panel{Case: c, Glazing: stress.Glazing{
		T:          plies,
		Interlayer: glass.Interlayer(strings.ToLower(getCell(row, cols, "interlayer"))),
	}}
	nums := []struct {
		name string
		dst  *float64
	}{
		{"w", &p.W}, {"a", &p.A}, {"b", &p.B}, {"a1", &p.A1}, {"b1", &p.B1},
		{"free", &p.Free}, {"fix", &p.Fix}, {"d", &p.D},
	}
	for _, n := range nums {
		s := getCell(row, cols, n.name)
		if s == "" {
			continue
		}
		v, err := parseNumber(s)
		if err != nil {
			return Row{}, fmt.Sprintf("%s: invalid %s '%s'", label, n.name, s)
		}
		*n.dst = v
	}
	for _, n := range []struct {
		name string
		dst  **float64
	}{{"e", &p.E}, {"nu", &p.Nu}} {
		s := getCell(row, cols, n.name)
		if s == "" {
			continue
		}
		v, err := parseNumber(s)
		if err != nil {
			return Row{}, fmt.Sprintf("%s: invalid %s '%s'", label, n.name, s)
		}
		*n.dst = &v
	}

	if l := getCell(row, cols, "label"); l != "" {
		label = l
	}
	return Row{Line: line, Label: label, Panel: p}, ""
}

// ImportRows parses a header row followed by panel rows.
func ImportRows(rows [][]string) Result {
	var result Result
	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}
	cols := DetectColumns(rows[0])
	var missing []string
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
		return result
	}

	for i := 1; i < len(rows); i++ {
		if isEmptyRow(rows[i]) {
			continue
		}
		row, msg := parseRow(rows[i], cols, i+1)
		if msg != "" {
			result.Errors = append(result.Errors, msg)
			continue
		}
		result.Rows = append(result.Rows, row)
	}
	if len(result.Rows) == 0 && len(result.Errors) == 0 {
		result.Warnings = append(result.Warnings, "No data rows found")
	}
	return result
}

// ImportExcel reads the first sheet of an .xlsx workbook.
func ImportExcel(r io.Reader) Result {
	var result Result
	f, err := excelize.OpenReader(r)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}
	return ImportRows(rows)
}
