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


// Package qamatrix links free-text manufacturing defect reports to a
// persisted QA concern catalog and maintains the catalog's weekly
// recurrence state, ratings, and OK/NG statuses.
package qamatrix

import (
	"context"
	"log/slog"

	"github.com/plantqa/qamatrix/core"
	"github.com/plantqa/qamatrix/rating"
	"github.com/plantqa/qamatrix/storage"
	"github.com/plantqa/qamatrix/storage/badger"
)

// Matrix is the facade over the persisted QA matrix: catalog import,
// weekly match recording, window shifts, and rating recalculation.
type Matrix struct {
	backend *badger.Backend
	repo    storage.MatrixRepository
	logger  *slog.Logger
}

// Open opens (or creates) a QA matrix database at the given directory.
func Open(filePath string) (*Matrix, error) {
	return open(filePath, false)
}

// OpenInMemory opens a transient QA matrix, used by tests.
func OpenInMemory() (*Matrix, error) {
	return open("", true)
}

func open(filePath string, inMemory bool) (*Matrix, error) {
	backend, err := badger.OpenBackend(filePath, inMemory)
	if err != nil {
		return nil, err
	}

	repo, err := badger.NewMatrixRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Matrix{
		backend: backend,
		repo:    repo,
		logger:  slog.Default().With("component", "qamatrix"),
	}, nil
}

// Close releases the repository and the underlying database.
func (m *Matrix) Close() error {
	if err := m.repo.Close(); err != nil {
		m.logger.Error("error closing matrix repository", "err", err)
		return err
	}
	if err := m.backend.Close(); err != nil {
		m.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// Repository exposes the underlying matrix repository.
func (m *Matrix) Repository() storage.MatrixRepository {
	return m.repo
}

// ImportCatalog stores new concern entries. Entries without a serial number
// get one assigned; each entry is recalculated before it is stored.
func (m *Matrix) ImportCatalog(ctx context.Context, entries []core.MatrixEntry) ([]core.ConcernID, error) {
	pointers := make([]*core.MatrixEntry, len(entries))
	for i := range entries {
		rating.Recalculate(&entries[i])
		pointers[i] = &entries[i]
	}

	added, err := m.repo.AddEntries(ctx, pointers...)
	if err != nil {
		return nil, err
	}

	serials := make([]core.ConcernID, len(added))
	for i, entry := range added {
		serials[i] = entry.SerialNo
	}
	m.logger.Info("catalog imported", "entries", len(serials))
	return serials, nil
}

// Concerns returns the matchable catalog view of every stored entry,
// ordered by serial number.
func (m *Matrix) Concerns(ctx context.Context) ([]core.Concern, error) {
	entries, err := m.repo.ListEntries(ctx)
	if err != nil {
		return nil, err
	}

	concerns := make([]core.Concern, len(entries))
	for i, entry := range entries {
		concerns[i] = entry.ConcernRecord()
	}
	return concerns, nil
}

// Entries returns every stored matrix entry ordered by serial number.
func (m *Matrix) Entries(ctx context.Context) ([]core.MatrixEntry, error) {
	stored, err := m.repo.ListEntries(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]core.MatrixEntry, len(stored))
	for i, entry := range stored {
		entries[i] = *entry
	}
	return entries, nil
}

// RecordMatches folds a week's aggregated match results into the stored
// matrix: repeat counts land in each matched entry's W-1 bucket and the
// entry's ratings and statuses are recalculated. Returns the number of
// entries updated.
func (m *Matrix) RecordMatches(ctx context.Context, aggregated []core.AggregatedMatch) (int, error) {
	entries, err := m.Entries(ctx)
	if err != nil {
		return 0, err
	}

	updated := rating.RecordRepeats(entries, aggregated)
	if updated == 0 {
		return 0, nil
	}

	if err := m.persist(ctx, entries); err != nil {
		return 0, err
	}
	m.logger.Info("weekly matches recorded", "groups", len(aggregated), "updated", updated)
	return updated, nil
}

// ShiftWeek advances every entry's recurrence window by one week.
// Called at the start of a new reporting week.
func (m *Matrix) ShiftWeek(ctx context.Context) error {
	entries, err := m.Entries(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}

	rating.ShiftAll(entries)
	if err := m.persist(ctx, entries); err != nil {
		return err
	}
	m.logger.Info("weekly window shifted", "entries", len(entries))
	return nil
}

// Recalculate rebuilds every entry's ratings and statuses from its stored
// scores and recurrence window, and persists the result.
func (m *Matrix) Recalculate(ctx context.Context) (rating.Summary, error) {
	entries, err := m.Entries(ctx)
	if err != nil {
		return rating.Summary{}, err
	}

	summary := rating.RecalculateAll(entries)
	if len(entries) > 0 {
		if err := m.persist(ctx, entries); err != nil {
			return rating.Summary{}, err
		}
	}
	return summary, nil
}

// Report summarizes the stored matrix per designation.
func (m *Matrix) Report(ctx context.Context) ([]rating.DesignationSummary, error) {
	entries, err := m.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return rating.Report(entries), nil
}

func (m *Matrix) persist(ctx context.Context, entries []core.MatrixEntry) error {
	pointers := make([]*core.MatrixEntry, len(entries))
	for i := range entries {
		pointers[i] = &entries[i]
	}
	_, err := m.repo.UpdateEntries(ctx, pointers...)
	return err
}
