package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"fjacquet/casa-ledger/internal/ledgererror"
	"fjacquet/casa-ledger/internal/logging"
	"fjacquet/casa-ledger/internal/models"
)

// ledgerDocument is the on-disk shape of the whole ledger.
type ledgerDocument struct {
	Profiles     []models.Profile     `yaml:"profiles"`
	Transactions []models.Transaction `yaml:"transactions"`
}

// FileStore is a Store persisted as a single YAML document. The full ledger
// is loaded into a MemoryStore at open time; each batch commit applies to
// memory and then rewrites the file atomically (temp file + rename). If the
// file write fails, the in-memory state is rolled back so memory and disk
// never diverge.
type FileStore struct {
	*MemoryStore
	path string
	log  logging.Logger
}

// OpenFileStore loads the ledger file at path. A missing file yields an
// empty ledger; it is created on the first commit.
func OpenFileStore(path string, log logging.Logger) (*FileStore, error) {
	fs := &FileStore{
		MemoryStore: NewMemoryStore(),
		path:        path,
		log:         log,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug("ledger file not found, starting empty", logging.F("path", path))
			return fs, nil
		}
		return nil, fmt.Errorf("error reading ledger file: %w", err)
	}

	var doc ledgerDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error parsing ledger file %s: %w", path, err)
	}
	fs.loadDocument(doc)

	log.Debug("ledger file loaded",
		logging.F("path", path),
		logging.F("profiles", len(doc.Profiles)),
		logging.F("transactions", len(doc.Transactions)))
	return fs, nil
}

// NewBatch starts a batch whose commit also persists the ledger file.
func (fs *FileStore) NewBatch() Batch {
	return &fileBatch{fs: fs, inner: fs.MemoryStore.NewBatch()}
}

type fileBatch struct {
	fs    *FileStore
	inner Batch
}

func (b *fileBatch) CreateTransaction(tx models.Transaction) string {
	return b.inner.CreateTransaction(tx)
}

func (b *fileBatch) UpdateTransaction(id string, upd models.TransactionUpdate) {
	b.inner.UpdateTransaction(id, upd)
}

func (b *fileBatch) DeleteTransaction(id string) {
	b.inner.DeleteTransaction(id)
}

func (b *fileBatch) CreateProfile(p models.Profile) string {
	return b.inner.CreateProfile(p)
}

func (b *fileBatch) UpdateProfile(id string, upd models.ProfileUpdate) {
	b.inner.UpdateProfile(id, upd)
}

func (b *fileBatch) Commit(ctx context.Context) error {
	prev := b.fs.document()

	if err := b.inner.Commit(ctx); err != nil {
		return err
	}

	if err := b.fs.save(); err != nil {
		// Disk write failed: undo the in-memory application so the batch is
		// all-or-nothing from the caller's point of view.
		b.fs.loadDocument(prev)
		return &ledgererror.StoreCommitError{Err: err}
	}
	return nil
}

// document returns a sorted snapshot of the current state.
func (s *MemoryStore) document() ledgerDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc := ledgerDocument{}
	for _, p := range s.profiles {
		doc.Profiles = append(doc.Profiles, p)
	}
	for _, tx := range s.transactions {
		doc.Transactions = append(doc.Transactions, tx)
	}
	sort.Slice(doc.Profiles, func(i, j int) bool { return doc.Profiles[i].ID < doc.Profiles[j].ID })
	sort.Slice(doc.Transactions, func(i, j int) bool {
		if !doc.Transactions[i].Date.Equal(doc.Transactions[j].Date) {
			return doc.Transactions[i].Date.Before(doc.Transactions[j].Date)
		}
		return doc.Transactions[i].ID < doc.Transactions[j].ID
	})
	return doc
}

// loadDocument replaces the current state with the given snapshot.
func (s *MemoryStore) loadDocument(doc ledgerDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles = make(map[string]models.Profile, len(doc.Profiles))
	for _, p := range doc.Profiles {
		s.profiles[p.ID] = p
	}
	s.transactions = make(map[string]models.Transaction, len(doc.Transactions))
	for _, tx := range doc.Transactions {
		s.transactions[tx.ID] = tx
	}
}

// save writes the ledger document atomically.
func (fs *FileStore) save() error {
	doc := fs.document()
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("error marshalling ledger: %w", err)
	}

	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating ledger directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".ledger-*.yaml")
	if err != nil {
		return fmt.Errorf("error creating temp ledger file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("error writing ledger file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error closing ledger file: %w", err)
	}
	if err := os.Rename(tmpName, fs.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("error replacing ledger file: %w", err)
	}
	return nil
}

var _ Store = (*FileStore)(nil)
