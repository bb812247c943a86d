package models

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry is one immutable line of a product's audit trail. Position is
// assigned at append time and never reused; rows are never updated or
// reordered.
type HistoryEntry struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	Position  int       `gorm:"column:position;not null"`
	Entry     string    `gorm:"column:entry;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName keeps the ledger table name explicit.
func (HistoryEntry) TableName() string {
	return "product_history"
}
