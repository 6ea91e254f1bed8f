package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/plantqa/qamatrix/core"
	"github.com/plantqa/qamatrix/storage"
)

// MatrixRepository implements storage.MatrixRepository for BadgerDB.
type MatrixRepository struct {
	backend   *Backend
	serialSeq *badger.Sequence
}

var _ storage.MatrixRepository = (*MatrixRepository)(nil)

// NewMatrixRepository creates a new MatrixRepository.
func NewMatrixRepository(backend *Backend) (*MatrixRepository, error) {
	seq, err := backend.GetSequence(matrixSerialSeq)
	if err != nil {
		return nil, err
	}
	return &MatrixRepository{
		backend:   backend,
		serialSeq: seq,
	}, nil
}

// Close releases the serial sequence.
func (r *MatrixRepository) Close() error {
	if r.serialSeq != nil {
		return r.serialSeq.Release()
	}
	return nil
}

// WithTransaction delegates to the backend.
func (r *MatrixRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddEntries adds one or more matrix entries to storage.
func (r *MatrixRepository) AddEntries(ctx context.Context, entries ...*core.MatrixEntry) ([]*core.MatrixEntry, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, entry := range entries {
			if err := core.ValidateMatrixEntry(entry); err != nil {
				return err
			}

			if entry.SerialNo == 0 {
				serial, err := r.nextSerial()
				if err != nil {
					return err
				}
				entry.SerialNo = serial
			}

			entry.UpdatedAt = time.Now().UTC()

			key := makeEntryKey(entry.SerialNo)
			if err := tx.Set(key, storage.MarshalMatrixEntry(entry)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return entries, err
}

// UpdateEntries updates existing matrix entries.
func (r *MatrixRepository) UpdateEntries(ctx context.Context, entries ...*core.MatrixEntry) ([]*core.MatrixEntry, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, entry := range entries {
			key := makeEntryKey(entry.SerialNo)

			old, err := readEntry(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			entry.UpdatedAt = time.Now().UTC()

			if err := tx.Set(key, storage.MarshalMatrixEntry(entry)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return entries, err
}

// DeleteEntries removes matrix entries by their serial numbers.
func (r *MatrixRepository) DeleteEntries(ctx context.Context, serials ...core.ConcernID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, serial := range serials {
			key := makeEntryKey(serial)

			entry, err := readEntry(tx, key)
			if err != nil {
				return err
			}
			if entry == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetEntry retrieves a single matrix entry by serial number.
func (r *MatrixRepository) GetEntry(ctx context.Context, serial core.ConcernID) (*core.MatrixEntry, error) {
	var result *core.MatrixEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = readEntry(tx, makeEntryKey(serial))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetEntries retrieves multiple matrix entries by serial number.
func (r *MatrixRepository) GetEntries(ctx context.Context, serials ...core.ConcernID) ([]*core.MatrixEntry, error) {
	var result []*core.MatrixEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, serial := range serials {
			entry, err := readEntry(tx, makeEntryKey(serial))
			if err != nil {
				return err
			}
			if entry != nil {
				result = append(result, entry)
			}
		}
		return nil
	}, false)
	return result, err
}

// ListEntries retrieves every matrix entry ordered by serial number.
func (r *MatrixRepository) ListEntries(ctx context.Context) ([]*core.MatrixEntry, error) {
	var results []*core.MatrixEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		opts.Prefix = entryKeyPrefix()
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			item := iter.Item()

			var entry *core.MatrixEntry
			err := item.Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalMatrixEntry(val)
				return err
			})
			if err != nil {
				return err
			}
			if entry != nil {
				results = append(results, entry)
			}
		}
		return nil
	}, false)

	return results, err
}

// nextSerial draws the next serial number from the sequence.
// BadgerDB sequences can return 0 on first call, so we skip it.
func (r *MatrixRepository) nextSerial() (core.ConcernID, error) {
	next, err := r.serialSeq.Next()
	if err != nil {
		return 0, err
	}
	if next == 0 {
		next, err = r.serialSeq.Next()
		if err != nil {
			return 0, err
		}
	}
	return core.ConcernID(next), nil
}

// readEntry reads a matrix entry from the transaction.
// Returns nil without error when the key does not exist.
func readEntry(tx *badger.Txn, key []byte) (*core.MatrixEntry, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var entry *core.MatrixEntry
	err = item.Value(func(val []byte) error {
		var err error
		entry, err = storage.UnmarshalMatrixEntry(val)
		return err
	})
	return entry, err
}
