package ingestion

import "errors"

var (
	// ErrNoHeaderRow is returned when no row in the scanned window looks
	// like a defect-report header.
	ErrNoHeaderRow = errors.New("no recognizable header row found")

	// ErrMissingColumns is returned when the detected header lacks the
	// required defect columns.
	ErrMissingColumns = errors.New("required columns missing from header")

	// ErrEmptyFile is returned when the input contains no rows at all.
	ErrEmptyFile = errors.New("input file is empty")
)
