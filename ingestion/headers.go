package ingestion

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Canonical column names used throughout the package.
const (
	colDate        = "date"
	colLocation    = "location"
	colCode        = "code"
	colDescription = "description"
	colDetails     = "details"
	colGravity     = "gravity"
	colQuantity    = "quantity"
	colSource      = "source"
	colResponsible = "responsible"
	colPOFFamily   = "pof_family"
	colPOFCode     = "pof_code"
)

// columnAliases maps each canonical column to header spellings seen in plant
// exports. Matching happens on normalized text, so diacritics and case do
// not matter here.
var columnAliases = map[string][]string{
	colDate:        {"date", "defect date", "jour"},
	colLocation:    {"location", "station", "poste", "workstation", "work station"},
	colCode:        {"code", "defect code", "code defaut"},
	colDescription: {"description", "defect", "defaut", "defect description", "libelle"},
	colDetails:     {"details", "detail", "commentaire", "comment", "remark"},
	colGravity:     {"gravity", "severity", "gravite", "grav"},
	colQuantity:    {"quantity", "qty", "qte", "quantite", "nb", "count"},
	colSource:      {"source", "origin", "origine"},
	colResponsible: {"responsible", "responsable", "resp"},
	colPOFFamily:   {"pof family", "famille pof", "family"},
	colPOFCode:     {"pof code", "code pof", "pof"},
}

// Columns a usable report cannot do without.
var requiredColumns = []string{colLocation, colDescription}

// headerScanWindow bounds how many leading rows are scanned for the header.
const headerScanWindow = 10

// minKnownHeaders is how many alias hits a row needs to count as the header.
const minKnownHeaders = 3

var diacriticStripper = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// normalizeHeader lower-cases a header cell, strips diacritics, and
// collapses internal whitespace, so "Gravité " and "gravite" compare equal.
func normalizeHeader(s string) string {
	stripped, _, err := transform.String(diacriticStripper, s)
	if err != nil {
		stripped = s
	}
	return strings.Join(strings.Fields(strings.ToLower(stripped)), " ")
}

// findColumn locates the index of a canonical column within a normalized
// header row. Exact alias match wins, then alias-prefix, then substring.
// Returns -1 when nothing matches.
func findColumn(headers []string, canonical string) int {
	aliases := columnAliases[canonical]

	for i, h := range headers {
		for _, alias := range aliases {
			if h == alias {
				return i
			}
		}
	}
	for i, h := range headers {
		for _, alias := range aliases {
			if strings.HasPrefix(h, alias) {
				return i
			}
		}
	}
	for i, h := range headers {
		for _, alias := range aliases {
			if strings.Contains(h, alias) {
				return i
			}
		}
	}
	return -1
}

// columnMap maps canonical column names to cell indices in the detected
// header row.
type columnMap map[string]int

// get returns the cell for canonical in row, or "" when the column is absent
// or the row is short.
func (c columnMap) get(row []string, canonical string) string {
	idx, ok := c[canonical]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// detectHeader scans the first headerScanWindow rows for the one that
// matches at least minKnownHeaders known column aliases, and builds the
// column map from it. Returns the header row index.
func detectHeader(rows [][]string) (int, columnMap, error) {
	if len(rows) == 0 {
		return 0, nil, ErrEmptyFile
	}

	window := len(rows)
	if window > headerScanWindow {
		window = headerScanWindow
	}

	for i := 0; i < window; i++ {
		normalized := make([]string, len(rows[i]))
		for j, cell := range rows[i] {
			normalized[j] = normalizeHeader(cell)
		}

		cm := make(columnMap, len(columnAliases))
		for canonical := range columnAliases {
			if idx := findColumn(normalized, canonical); idx >= 0 {
				cm[canonical] = idx
			}
		}
		if len(cm) < minKnownHeaders {
			continue
		}

		for _, required := range requiredColumns {
			if _, ok := cm[required]; !ok {
				return i, nil, ErrMissingColumns
			}
		}
		return i, cm, nil
	}

	return 0, nil, ErrNoHeaderRow
}
