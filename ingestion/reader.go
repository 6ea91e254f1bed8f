package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/plantqa/qamatrix/core"
)

// ReadDefects parses one defect-report CSV stream. The header row is
// auto-detected within the first rows, columns are mapped fuzzily, and each
// following row becomes a core.Defect. Rows with neither description nor
// details are dropped. When the stream carries no source column, the
// provided defaultSource is stamped on every record.
func ReadDefects(r io.Reader, defaultSource string) ([]core.Defect, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading report rows: %w", err)
	}

	headerIdx, columns, err := detectHeader(rows)
	if err != nil {
		return nil, err
	}

	defects := make([]core.Defect, 0, len(rows)-headerIdx-1)
	for _, row := range rows[headerIdx+1:] {
		defect := parseRow(row, columns, defaultSource)
		if defect.MatchText() == "" {
			continue
		}
		defects = append(defects, defect)
	}
	return defects, nil
}

// parseRow maps one data row through the column map. Quantity defaults to 1
// and is clamped to >= 1; the source column overrides defaultSource when
// present and non-empty.
func parseRow(row []string, columns columnMap, defaultSource string) core.Defect {
	source := strings.ToUpper(columns.get(row, colSource))
	if source == "" {
		source = defaultSource
	}

	return core.Defect{
		Date:        columns.get(row, colDate),
		Location:    columns.get(row, colLocation),
		Code:        columns.get(row, colCode),
		Description: columns.get(row, colDescription),
		Details:     columns.get(row, colDetails),
		Gravity:     columns.get(row, colGravity),
		Quantity:    parseQuantity(columns.get(row, colQuantity)),
		Source:      source,
		Responsible: columns.get(row, colResponsible),
		POFFamily:   columns.get(row, colPOFFamily),
		POFCode:     columns.get(row, colPOFCode),
	}
}

func parseQuantity(s string) int {
	if s == "" {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
