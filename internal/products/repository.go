package product

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/grovechain/foodtrace-backend/pkg/db/models"
)

// RecordStore defines the persistence surface for product records. The store
// itself enforces nothing about versions; VersionGuard owns that policy.
type RecordStore interface {
	WithTx(tx *gorm.DB) RecordStore
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Insert(ctx context.Context, product *models.Product) error
	Remove(ctx context.Context, id uuid.UUID) (*models.Product, error)
	List(ctx context.Context, offset, limit int) ([]models.Product, error)
	Count(ctx context.Context) (int64, error)
	AppendHistory(ctx context.Context, entry *models.HistoryEntry) error
	AppendInspection(ctx context.Context, inspection *models.Inspection) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a gorm-backed record store.
func NewRepository(db *gorm.DB) RecordStore {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) RecordStore {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// FindByID loads the full aggregate: record, ordered history, ordered
// inspections.
func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Inspections", func(db *gorm.DB) *gorm.DB {
			return db.Order("recorded_at ASC")
		}).
		First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Insert upserts the record snapshot keyed by id. Creation and mutation
// commits both pass through here.
func (r *repository) Insert(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).
		Omit("History", "Inspections").
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(product).Error
}

// Remove deletes the record and returns the prior snapshot. Child rows go
// with it via FK cascade.
func (r *repository) Remove(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	prior, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Select("History", "Inspections").
		Delete(&models.Product{ID: id}).Error; err != nil {
		return nil, err
	}
	return prior, nil
}

// List returns a page of records in a stable order. Callers must not assume
// insertion order; the contract is only that the order is stable while the
// store is unmodified.
func (r *repository) List(ctx context.Context, offset, limit int) ([]models.Product, error) {
	var records []models.Product
	if err := r.db.WithContext(ctx).
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Inspections", func(db *gorm.DB) *gorm.DB {
			return db.Order("recorded_at ASC")
		}).
		Order("created_at ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *repository) AppendHistory(ctx context.Context, entry *models.HistoryEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) AppendInspection(ctx context.Context, inspection *models.Inspection) error {
	return r.db.WithContext(ctx).Create(inspection).Error
}
