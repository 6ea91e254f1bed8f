// Package ingestion loads raw defect-report CSV exports into core.Defect
// records: header-row auto-detection, fuzzy column mapping, row validation,
// and duplicate merging. A Pipeline runs multiple files through a worker
// pool.
package ingestion
