// Package catalog keeps a SQLite history of batch renders, one row per
// source file, so repeated runs can be compared.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mrr-renderer/internal/batch"
)

// ErrNotFound is returned by Get when no row exists for a path.
var ErrNotFound = errors.New("catalog: not found")

// RenderRecord is the latest render outcome for one source file.
type RenderRecord struct {
	Path       string `gorm:"primaryKey"`
	Name       string `gorm:"index"`
	Joints     int
	Parts      int
	Bodies     int
	Triangles  int64
	Image      string
	Success    bool
	Error      string
	Kind       string
	RenderedAt time.Time
}

// Store wraps the catalog database.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the catalog at path and migrates its schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	if err := db.AutoMigrate(&RenderRecord{}); err != nil {
		return nil, fmt.Errorf("catalog: migrate %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// FromResult converts a batch result into a record stamped with at.
func FromResult(r batch.Result, at time.Time) RenderRecord {
	return RenderRecord{
		Path:       r.Path,
		Name:       r.Name,
		Joints:     r.Joints,
		Parts:      r.Parts,
		Bodies:     r.Bodies,
		Triangles:  r.Triangles,
		Image:      r.Image,
		Success:    r.Success,
		Error:      r.Error,
		Kind:       r.Kind,
		RenderedAt: at,
	}
}

// Record upserts one row per result in a single transaction.
func (s *Store) Record(results []batch.Result, at time.Time) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, r := range results {
			rec := FromResult(r, at)
			if err := tx.Save(&rec).Error; err != nil {
				return fmt.Errorf("catalog: save %s: %w", r.Path, err)
			}
		}
		return nil
	})
}

// Get returns the record for path.
func (s *Store) Get(path string) (RenderRecord, error) {
	var rec RenderRecord
	err := s.db.First(&rec, "path = ?", path).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return RenderRecord{}, ErrNotFound
	}
	if err != nil {
		return RenderRecord{}, fmt.Errorf("catalog: get %s: %w", path, err)
	}
	return rec, nil
}

// List returns every record ordered by path.
func (s *Store) List() ([]RenderRecord, error) {
	var recs []RenderRecord
	if err := s.db.Order("path").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("catalog: list: %w", err)
	}
	return recs, nil
}

// Failed returns the records whose last render failed.
func (s *Store) Failed() ([]RenderRecord, error) {
	var recs []RenderRecord
	if err := s.db.Where("success = ?", false).Order("path").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("catalog: list failed: %w", err)
	}
	return recs, nil
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
