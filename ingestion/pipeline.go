package ingestion

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/plantqa/qamatrix/core"
)

// Pipeline loads multiple defect-report files concurrently through a worker
// pool, then validates, merges, and deduplicates the combined records.
type Pipeline struct {
	pool   *ants.Pool
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent file loading.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new report-loading pipeline.
func NewPipeline(opts ...Option) (*Pipeline, error) {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		pool:   pool,
		logger: slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// FileResult is the outcome of loading a single report file.
type FileResult struct {
	Path       string
	Defects    []core.Defect
	Validation *ValidationResult
	Err        error
}

// LoadFiles reads every path concurrently and returns per-file results in
// input order. A file's source system defaults from its name (dvx/sca/yard
// substring); a source column in the file overrides it per row.
func (p *Pipeline) LoadFiles(paths []string) []FileResult {
	results := make([]FileResult, len(paths))
	var wg sync.WaitGroup

	for i, path := range paths {
		i, path := i, path
		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			results[i] = p.loadFile(path)
		})
		if submitErr != nil {
			wg.Done()
			results[i] = FileResult{Path: path, Err: submitErr}
		}
	}
	wg.Wait()

	return results
}

// Merge combines successful file results into one validated, deduplicated
// defect list.
func (p *Pipeline) Merge(results []FileResult) []core.Defect {
	var combined []core.Defect
	for _, r := range results {
		if r.Err != nil {
			p.logger.Warn("skipping failed report file", "path", r.Path, "err", r.Err)
			continue
		}
		combined = append(combined, r.Defects...)
	}

	merged := Deduplicate(combined)
	p.logger.Info("reports merged",
		"files", len(results),
		"rows", len(combined),
		"unique", len(merged))
	return merged
}

// Release releases the worker pool. The pipeline must not be used after
// calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

func (p *Pipeline) loadFile(path string) FileResult {
	f, err := os.Open(path)
	if err != nil {
		return FileResult{Path: path, Err: err}
	}
	defer f.Close()

	defects, err := ReadDefects(f, sourceFromPath(path))
	if err != nil {
		return FileResult{Path: path, Err: err}
	}

	kept, validation := Validate(defects)
	p.logger.Debug("report loaded",
		"path", path,
		"rows", len(defects),
		"valid", validation.Valid,
		"errors", len(validation.Errors),
		"warnings", len(validation.Warnings))

	return FileResult{Path: path, Defects: kept, Validation: validation}
}

// sourceFromPath infers the source system from the file name.
func sourceFromPath(path string) string {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.Contains(name, "dvx"):
		return core.SourceDVX
	case strings.Contains(name, "sca"):
		return core.SourceSCA
	case strings.Contains(name, "yard"):
		return core.SourceYARD
	}
	return ""
}
