package sheets

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrNoWorksheet = errors.New("no worksheet found")

// Table is the first worksheet of a workbook after header normalization.
// Every row has exactly len(Headers) cells.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Get returns the cell under header in row i, "" when the header is absent.
func (t *Table) Get(i int, header string) string {
	for j, h := range t.Headers {
		if h == header {
			return t.Rows[i][j]
		}
	}
	return ""
}

// Has reports whether header survived normalization.
func (t *Table) Has(header string) bool {
	for _, h := range t.Headers {
		if h == header {
			return true
		}
	}
	return false
}

// ReadTable reads the first worksheet as strings. Header names are trimmed, duplicate
// headers keep only their first column and short rows are padded with "". Blank rows
// after the last row with content are dropped; blank rows before it are kept.
// An empty worksheet yields an empty table.
func ReadTable(r io.Reader) (*Table, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, ErrNoWorksheet
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read rows of %q: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return &Table{}, nil
	}

	return normalize(rows), nil
}

func normalize(rows [][]string) *Table {
	seen := map[string]bool{}
	var keep []int
	t := &Table{}
	for idx, raw := range rows[0] {
		h := strings.TrimSpace(raw)
		if seen[h] {
			continue
		}
		seen[h] = true
		keep = append(keep, idx)
		t.Headers = append(t.Headers, h)
	}

	body := rows[1:]
	for len(body) > 0 && isBlank(body[len(body)-1]) {
		body = body[:len(body)-1]
	}
	for _, row := range body {
		out := make([]string, len(keep))
		for j, idx := range keep {
			out[j] = cellValue(row, idx)
		}
		t.Rows = append(t.Rows, out)
	}
	return t
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
