package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"fjacquet/casa-ledger/internal/dateutils"
	"fjacquet/casa-ledger/internal/ledgererror"
	"fjacquet/casa-ledger/internal/models"
)

// MemoryStore is an in-memory Store implementation, safe for concurrent use.
// It backs the file store and the engine tests.
type MemoryStore struct {
	mu           sync.RWMutex
	transactions map[string]models.Transaction
	profiles     map[string]models.Profile

	// now is injectable for deterministic server timestamps in tests.
	now func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transactions: make(map[string]models.Transaction),
		profiles:     make(map[string]models.Profile),
		now:          time.Now,
	}
}

// SetClock overrides the commit-timestamp clock. Intended for tests.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.now = now
}

// PutProfile inserts or replaces a profile outside any batch. Used for
// seeding and snapshot loading.
func (s *MemoryStore) PutProfile(p models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.ID] = p
}

// PutTransaction inserts or replaces a transaction outside any batch. Used
// for seeding and snapshot loading. An empty id is assigned one.
func (s *MemoryStore) PutTransaction(tx models.Transaction) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	s.transactions[tx.ID] = tx
	return tx.ID
}

// GetTransaction retrieves a transaction by id.
func (s *MemoryStore) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tx, ok := s.transactions[id]
	if !ok {
		return nil, &ledgererror.NotFoundError{Collection: "transactions", ID: id}
	}
	cp := tx
	return &cp, nil
}

// GetProfile retrieves a profile by id.
func (s *MemoryStore) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, &ledgererror.NotFoundError{Collection: "profiles", ID: id}
	}
	cp := p
	return &cp, nil
}

// QueryTransactions returns all transactions matching the query, ordered by
// date with installment number as tie-breaker.
func (s *MemoryStore) QueryTransactions(ctx context.Context, q TransactionQuery) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Transaction
	for _, tx := range s.transactions {
		if q.ProfileID != "" && tx.ProfileID != q.ProfileID {
			continue
		}
		if q.SeriesID != "" && tx.SeriesID != q.SeriesID {
			continue
		}
		if q.ParentID != "" && tx.ParentID != q.ParentID {
			continue
		}
		if q.MonthKey != "" && dateutils.MonthKey(tx.Date) != q.MonthKey {
			continue
		}
		if q.MinInstallment > 0 && tx.CurrentInstallment < q.MinInstallment {
			continue
		}
		result = append(result, tx)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.Before(result[j].Date)
		}
		if result[i].CurrentInstallment != result[j].CurrentInstallment {
			return result[i].CurrentInstallment < result[j].CurrentInstallment
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// NewBatch starts an empty batch against this store.
func (s *MemoryStore) NewBatch() Batch {
	return &memoryBatch{store: s}
}

type batchOp struct {
	kind          string // "create", "update", "delete", "createProfile", "profile"
	id            string
	create        models.Transaction
	update        models.TransactionUpdate
	createProfile models.Profile
	profile       models.ProfileUpdate
}

type memoryBatch struct {
	store     *MemoryStore
	ops       []batchOp
	committed bool
}

// CreateTransaction buffers a create. The record id is assigned immediately
// so records created in the same batch can reference each other before
// commit.
func (b *memoryBatch) CreateTransaction(tx models.Transaction) string {
	if tx.ID == "" {
		tx.ID = uuid.NewString()
	}
	b.ops = append(b.ops, batchOp{kind: "create", id: tx.ID, create: tx})
	return tx.ID
}

func (b *memoryBatch) UpdateTransaction(id string, upd models.TransactionUpdate) {
	b.ops = append(b.ops, batchOp{kind: "update", id: id, update: upd})
}

func (b *memoryBatch) DeleteTransaction(id string) {
	b.ops = append(b.ops, batchOp{kind: "delete", id: id})
}

// CreateProfile buffers a profile create. As with transactions, the id is
// assigned immediately.
func (b *memoryBatch) CreateProfile(p models.Profile) string {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	b.ops = append(b.ops, batchOp{kind: "createProfile", id: p.ID, createProfile: p})
	return p.ID
}

func (b *memoryBatch) UpdateProfile(id string, upd models.ProfileUpdate) {
	b.ops = append(b.ops, batchOp{kind: "profile", id: id, profile: upd})
}

// Commit applies all buffered operations atomically. Every operation is
// validated against the current state before any of them is applied, so a
// failing batch leaves the store untouched.
func (b *memoryBatch) Commit(ctx context.Context) error {
	if b.committed {
		return &ledgererror.StoreCommitError{Err: fmt.Errorf("batch already committed")}
	}
	b.committed = true

	b.store.mu.Lock()
	defer b.store.mu.Unlock()

	if err := b.validateLocked(); err != nil {
		return &ledgererror.StoreCommitError{Err: err}
	}

	now := b.store.now()
	for _, op := range b.ops {
		switch op.kind {
		case "create":
			tx := op.create
			if tx.CreatedAt.IsZero() {
				tx.CreatedAt = now
			}
			b.store.transactions[tx.ID] = tx
		case "update":
			tx := b.store.transactions[op.id]
			op.update.Apply(&tx)
			b.store.transactions[op.id] = tx
		case "delete":
			delete(b.store.transactions, op.id)
		case "createProfile":
			b.store.profiles[op.id] = op.createProfile
		case "profile":
			p := b.store.profiles[op.id]
			op.profile.Apply(&p)
			b.store.profiles[op.id] = p
		}
	}
	return nil
}

// validateLocked checks that every target exists, taking into account
// records created or deleted earlier in the same batch.
func (b *memoryBatch) validateLocked() error {
	created := map[string]bool{}
	deleted := map[string]bool{}
	createdProfiles := map[string]bool{}

	exists := func(id string) bool {
		if deleted[id] {
			return false
		}
		if created[id] {
			return true
		}
		_, ok := b.store.transactions[id]
		return ok
	}

	for _, op := range b.ops {
		switch op.kind {
		case "create":
			if exists(op.id) {
				return fmt.Errorf("create: transaction %q already exists", op.id)
			}
			created[op.id] = true
			delete(deleted, op.id)
		case "update":
			if !exists(op.id) {
				return fmt.Errorf("update: transaction %q not found", op.id)
			}
		case "delete":
			if !exists(op.id) {
				return fmt.Errorf("delete: transaction %q not found", op.id)
			}
			deleted[op.id] = true
			delete(created, op.id)
		case "createProfile":
			if _, ok := b.store.profiles[op.id]; ok || createdProfiles[op.id] {
				return fmt.Errorf("create: profile %q already exists", op.id)
			}
			createdProfiles[op.id] = true
		case "profile":
			if _, ok := b.store.profiles[op.id]; !ok && !createdProfiles[op.id] {
				return fmt.Errorf("update: profile %q not found", op.id)
			}
		}
	}
	return nil
}

var _ Store = (*MemoryStore)(nil)
