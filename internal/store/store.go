package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"stocktake-cli/internal/model"
)

const itemsFileName = "items.json"

var ErrNotFound = errors.New("item not found")

// DB is the single persisted blob: the whole item list plus the id counter.
// Every mutation is a whole-list read-modify-write; there are no partial updates.
type DB struct {
	Version int          `json:"version"`
	NextID  int64        `json:"nextId"`
	Items   []model.Item `json:"items"`
}

type Store struct {
	Dir string
}

// DiscoverDir walks upward from start looking for an existing .stocktake dir.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".stocktake")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir resolves the data dir: STOCKTAKE_DIR env, then an existing
// .stocktake discovered upward from cwd, then ./.stocktake.
func DefaultDir() (string, error) {
	if env := strings.TrimSpace(os.Getenv("STOCKTAKE_DIR")); env != "" {
		return env, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, ".stocktake"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) itemsPath() string {
	return filepath.Join(s.Dir, itemsFileName)
}

func (s Store) Load() (*DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(s.itemsPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &DB{Version: 1, NextID: 1, Items: []model.Item{}}, nil
		}
		return nil, err
	}
	var db DB
	if err := json.Unmarshal(b, &db); err != nil {
		return nil, fmt.Errorf("parse %s: %w", itemsFileName, err)
	}
	if db.Version == 0 {
		db.Version = 1
	}
	if db.Items == nil {
		db.Items = []model.Item{}
	}
	// NextID must stay ahead of every persisted id even if the counter was lost.
	for _, it := range db.Items {
		if it.ID >= db.NextID {
			db.NextID = it.ID + 1
		}
	}
	if db.NextID < 1 {
		db.NextID = 1
	}
	return &db, nil
}

func (s Store) Save(db *DB) error {
	if db == nil {
		return errors.New("nil db")
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	// Write-then-rename so a crash mid-save never leaves a truncated blob.
	tmp := s.itemsPath() + ".tmp"
	if err := os.WriteFile(tmp, append(b, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.itemsPath())
}

func (s Store) List() ([]model.Item, error) {
	db, err := s.Load()
	if err != nil {
		return nil, err
	}
	return db.Items, nil
}

// Create assigns a fresh id and persists the item. Name/quantity validation
// is the dialog's job; the store only owns identity and persistence.
func (s Store) Create(name string, quantity int, barcode string) (model.Item, error) {
	db, err := s.Load()
	if err != nil {
		return model.Item{}, err
	}
	now := time.Now().UTC()
	it := model.Item{
		ID:        db.NextID,
		Name:      name,
		Quantity:  quantity,
		Barcode:   barcode,
		CreatedAt: now,
		UpdatedAt: now,
	}
	db.NextID++
	db.Items = append(db.Items, it)
	if err := s.Save(db); err != nil {
		return model.Item{}, err
	}
	return it, nil
}

// Update replaces the stored item with the same id. An id that is not present
// is accepted as a pass-through: nothing is written and the input is returned
// unchanged. It never creates a new record.
func (s Store) Update(item model.Item) (model.Item, error) {
	db, err := s.Load()
	if err != nil {
		return model.Item{}, err
	}
	for i := range db.Items {
		if db.Items[i].ID != item.ID {
			continue
		}
		item.CreatedAt = db.Items[i].CreatedAt
		item.UpdatedAt = time.Now().UTC()
		db.Items[i] = item
		if err := s.Save(db); err != nil {
			return model.Item{}, err
		}
		return item, nil
	}
	return item, nil
}

func (s Store) DeleteByID(id int64) error {
	db, err := s.Load()
	if err != nil {
		return err
	}
	kept := db.Items[:0]
	for _, it := range db.Items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	db.Items = kept
	return s.Save(db)
}

func (db *DB) FindItem(id int64) (*model.Item, bool) {
	for i := range db.Items {
		if db.Items[i].ID == id {
			return &db.Items[i], true
		}
	}
	return nil, false
}
