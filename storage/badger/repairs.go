package badger

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/compass/core"
	"github.com/poiesic/compass/storage"
)

// maxConflictRetries bounds retries when concurrent saves of the same raw
// text collide.
const maxConflictRetries = 5

// RepairRepository implements storage.RepairRepository for BadgerDB.
type RepairRepository struct {
	backend *Backend
}

var _ storage.RepairRepository = (*RepairRepository)(nil)

// NewRepairRepository creates a new RepairRepository.
func NewRepairRepository(backend *Backend) (*RepairRepository, error) {
	if backend == nil {
		return nil, errors.New("backend is required")
	}
	return &RepairRepository{backend: backend}, nil
}

// Close is a no-op; the backend is owned by the caller.
func (r *RepairRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *RepairRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// SaveRepair stores a repair outcome keyed by the hash of its raw text.
func (r *RepairRepository) SaveRepair(ctx context.Context, record *core.RepairRecord) (*core.RepairRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	record.Id = core.IDFromContent(record.Raw)
	if err := core.ValidateRepairRecord(record); err != nil {
		return nil, err
	}

	var err error
	for range maxConflictRetries {
		err = r.backend.WithTx(func(tx *badger.Txn) error {
			return r.save(tx, record)
		}, true)
		if !errors.Is(err, badger.ErrConflict) {
			break
		}
		r.backend.logger.Debug("retrying conflicting repair save", "id", record.Id)
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (r *RepairRepository) save(tx *badger.Txn, record *core.RepairRecord) error {
	key := makeRepairKey(record.Id)
	old, err := r.readRepair(tx, key)
	if err != nil {
		return err
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	record.InsertedAt = now
	record.Attempts = 1
	if old != nil {
		record.InsertedAt = old.InsertedAt
		record.Attempts = old.Attempts + 1
		if err := tx.Delete(makeRepairDateKey(old.UpdatedAt, old.Id)); err != nil {
			return err
		}
	}
	record.UpdatedAt = now

	if err := tx.Set(key, storage.MarshalRepairRecord(record)); err != nil {
		return err
	}
	dateKey := makeRepairDateKey(record.UpdatedAt, record.Id)
	if err := tx.Set(dateKey, storage.MarshalID(record.Id)); err != nil {
		return err
	}
	return tx.Commit()
}

// GetRepair retrieves a single repair record by ID.
func (r *RepairRepository) GetRepair(ctx context.Context, id core.ID) (*core.RepairRecord, error) {
	var record *core.RepairRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		record, err = r.readRepair(tx, makeRepairKey(id))
		return err
	}, false)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, storage.ErrNotFound
	}
	return record, nil
}

// GetRecentRepairs retrieves up to limit records, most recently saved first.
func (r *RepairRepository) GetRecentRepairs(ctx context.Context, limit int) ([]*core.RepairRecord, error) {
	if limit < 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.RepairRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Reverse Seek lands on the last key at or before startKey.
		startKey := makePartialRepairDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
		prefix := []byte(repairDatePrefix + ":")

		for iter.Seek(startKey); iter.Valid() && len(results) < limit; iter.Next() {
			if !bytes.HasPrefix(iter.Item().Key(), prefix) {
				break
			}

			var id core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				id, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			record, err := r.readRepair(tx, makeRepairKey(id))
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)

	return results, err
}

// CountByStage reports how many journaled records each stage produced.
func (r *RepairRepository) CountByStage(ctx context.Context) ([]core.StageCount, error) {
	counts := make(map[string]int)
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(repairRecordPrefix + ":")
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := iter.Item().Value(func(val []byte) error {
				record, err := storage.UnmarshalRepairRecord(val)
				if err != nil {
					return err
				}
				counts[record.Stage]++
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	result := make([]core.StageCount, 0, len(counts))
	for stage, n := range counts {
		result = append(result, core.StageCount{Stage: stage, Count: n})
	}
	slices.SortFunc(result, func(a, b core.StageCount) int {
		return strings.Compare(a.Stage, b.Stage)
	})
	return result, nil
}

// DeleteRepairs removes repair records and their recency index entries.
func (r *RepairRepository) DeleteRepairs(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeRepairKey(id)
			record, err := r.readRepair(tx, key)
			if err != nil {
				return err
			}
			if record == nil {
				return storage.ErrNotFound
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
			if err := tx.Delete(makeRepairDateKey(record.UpdatedAt, record.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// readRepair reads a repair record within a transaction.
// Returns nil, nil if the key does not exist.
func (r *RepairRepository) readRepair(tx *badger.Txn, key []byte) (*core.RepairRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var record *core.RepairRecord
	err = item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalRepairRecord(val)
		return err
	})
	return record, err
}
