package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/grovechain/foodtrace-backend/pkg/enums"
)

// Product is the versioned aggregate for one traced food item. Version moves
// forward by exactly one per accepted mutation; History and Inspections are
// append-only children removed only when the whole record is deleted.
type Product struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	Name            string              `gorm:"column:name;not null"`
	Origin          string              `gorm:"column:origin;not null"`
	CurrentLocation string              `gorm:"column:current_location;not null"`
	Owner           string              `gorm:"column:owner;not null"`
	Status          enums.ProductStatus `gorm:"column:status;not null"`
	ExpirationDate  time.Time           `gorm:"column:expiration_date;not null"`
	Version         int64               `gorm:"column:version;not null;default:1"`
	History         []HistoryEntry      `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Inspections     []Inspection        `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       *time.Time          `gorm:"column:updated_at;autoUpdateTime:false"`
}
