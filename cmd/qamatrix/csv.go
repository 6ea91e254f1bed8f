// Copyright 2025 Plant QA Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/plantqa/qamatrix/core"
)

// writeDefectsCSV writes a cleaned defect list in the canonical column
// layout shared by all downstream commands.
func writeDefectsCSV(path string, defects []core.Defect) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"date", "location", "code", "description", "details",
		"gravity", "quantity", "source", "responsible",
		"pof_family", "pof_code",
	}); err != nil {
		return err
	}

	for _, d := range defects {
		row := []string{
			d.Date, d.Location, d.Code, d.Description, d.Details,
			d.Gravity, strconv.Itoa(d.Quantity), d.Source, d.Responsible,
			d.POFFamily, d.POFCode,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// writeMatchesCSV writes one row per input defect with its match outcome.
func writeMatchesCSV(path string, results []core.MatchResult, defects []core.Defect, concerns []core.Concern) error {
	bySerial := make(map[core.ConcernID]core.Concern, len(concerns))
	for _, c := range concerns {
		bySerial[c.SerialNo] = c
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{
		"defect_index", "location", "description", "quantity",
		"matched_serial", "concern", "confidence", "method", "reason",
	}); err != nil {
		return err
	}

	for _, r := range results {
		serial := ""
		concern := ""
		if r.MatchedSerial != nil {
			serial = strconv.Itoa(int(*r.MatchedSerial))
			concern = bySerial[*r.MatchedSerial].Text
		}

		var d core.Defect
		if r.DefectIndex >= 0 && r.DefectIndex < len(defects) {
			d = defects[r.DefectIndex]
		}

		row := []string{
			strconv.Itoa(r.DefectIndex),
			d.Location,
			d.Description,
			strconv.Itoa(d.Quantity),
			serial,
			concern,
			strconv.FormatFloat(r.Confidence, 'f', 3, 64),
			string(r.Method),
			r.Reason,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// readMatchesCSV reads a match output file back into per-concern aggregates.
// Rows without a matched serial or below the confidence threshold are
// dropped; quantities below 1 count as 1.
func readMatchesCSV(r io.Reader, confidenceThreshold float64) ([]core.AggregatedMatch, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading matches: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("matches file has no data rows")
	}

	columns := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"matched_serial", "quantity", "confidence"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("matches file is missing the %s column", required)
		}
	}

	field := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	grouped := make(map[core.ConcernID]*core.AggregatedMatch)
	sums := make(map[core.ConcernID]float64)
	counts := make(map[core.ConcernID]int)
	var order []core.ConcernID

	for n, row := range rows[1:] {
		serialText := field(row, "matched_serial")
		if serialText == "" {
			continue
		}
		serial, err := strconv.Atoi(serialText)
		if err != nil {
			return nil, fmt.Errorf("matches row %d: bad serial %q", n+2, serialText)
		}

		confidence, err := strconv.ParseFloat(field(row, "confidence"), 64)
		if err != nil {
			return nil, fmt.Errorf("matches row %d: bad confidence %q", n+2, field(row, "confidence"))
		}
		if confidence < confidenceThreshold {
			continue
		}

		quantity, err := strconv.Atoi(field(row, "quantity"))
		if err != nil || quantity < 1 {
			quantity = 1
		}

		id := core.ConcernID(serial)
		group, ok := grouped[id]
		if !ok {
			group = &core.AggregatedMatch{
				SerialNo: id,
				Concern:  field(row, "concern"),
			}
			grouped[id] = group
			order = append(order, id)
		}
		group.RepeatCount += quantity
		sums[id] += confidence
		counts[id]++
	}

	aggregated := make([]core.AggregatedMatch, 0, len(order))
	for _, id := range order {
		group := grouped[id]
		group.AvgConfidence = sums[id] / float64(counts[id])
		aggregated = append(aggregated, *group)
	}
	if len(aggregated) == 0 {
		return nil, fmt.Errorf("matches file has no accepted matches")
	}
	return aggregated, nil
}

// Catalog CSV column layout. Only "concern" is required per row; missing
// serials are assigned on import and missing ratings default to 1.
var catalogColumns = map[string]int{
	"serial_no":     -1,
	"concern":       -1,
	"station":       -1,
	"designation":   -1,
	"defect_rating": -1,
	"weekly":        -1,
}

// readCatalogCSV parses a concern catalog export into matrix entries.
func readCatalogCSV(r io.Reader) ([]core.MatrixEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("catalog has no data rows")
	}

	columns := make(map[string]int, len(catalogColumns))
	for name := range catalogColumns {
		columns[name] = -1
	}
	for i, h := range rows[0] {
		name := strings.ToLower(strings.TrimSpace(h))
		name = strings.ReplaceAll(name, " ", "_")
		if _, known := columns[name]; known {
			columns[name] = i
		}
	}
	if columns["concern"] < 0 {
		return nil, fmt.Errorf("catalog is missing a concern column")
	}

	field := func(row []string, name string) string {
		idx := columns[name]
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var entries []core.MatrixEntry
	for n, row := range rows[1:] {
		concern := field(row, "concern")
		if concern == "" {
			continue
		}

		entry := core.MatrixEntry{
			Concern:      concern,
			Station:      field(row, "station"),
			Designation:  field(row, "designation"),
			DefectRating: 1,
		}

		if s := field(row, "serial_no"); s != "" {
			serial, err := strconv.Atoi(s)
			if err != nil {
				return nil, fmt.Errorf("catalog row %d: bad serial %q", n+2, s)
			}
			entry.SerialNo = core.ConcernID(serial)
		}

		if s := field(row, "defect_rating"); s != "" {
			rating, err := strconv.Atoi(s)
			if err != nil || !core.ValidDefectRating(rating) {
				return nil, fmt.Errorf("catalog row %d: bad defect rating %q", n+2, s)
			}
			entry.DefectRating = rating
		}

		if s := field(row, "weekly"); s != "" {
			weekly, err := core.ParseWeeklyList(s)
			if err != nil {
				return nil, fmt.Errorf("catalog row %d: %w", n+2, err)
			}
			entry.Weekly = weekly
		}

		entries = append(entries, entry)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("catalog has no usable rows")
	}
	return entries, nil
}
