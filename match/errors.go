package match

import "errors"

var (
	// ErrEmptyCatalog indicates matching was attempted without a concern
	// catalog. The combined score is undefined over an empty candidate set,
	// so this is a configuration error, not a degraded-mode condition.
	ErrEmptyCatalog = errors.New("concern catalog is empty")

	// ErrNoDefects indicates an empty defect list was submitted.
	ErrNoDefects = errors.New("no defects to match")
)
