package models

import (
	"time"

	"github.com/google/uuid"
)

// Inspection records one quality-check event attached to a product.
type Inspection struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	ProductID      uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	Inspector      string    `gorm:"column:inspector;not null"`
	Result         string    `gorm:"column:result;not null"`
	Remarks        *string   `gorm:"column:remarks"`
	InspectionType *string   `gorm:"column:inspection_type"`
	BatchInfo      *string   `gorm:"column:batch_info"`
	Timestamp      time.Time `gorm:"column:recorded_at;not null"`
}
