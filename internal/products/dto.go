package product

import (
	"time"

	"github.com/google/uuid"

	"github.com/grovechain/foodtrace-backend/pkg/db/models"
)

// ProductDTO is the product payload returned to clients.
type ProductDTO struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Origin          string          `json:"origin"`
	CurrentLocation string          `json:"current_location"`
	Owner           string          `json:"owner"`
	Status          string          `json:"status"`
	ExpirationDate  time.Time       `json:"expiration_date"`
	Version         int64           `json:"version"`
	History         []string        `json:"history"`
	Inspections     []InspectionDTO `json:"inspections"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty"`
}

// InspectionDTO exposes one recorded quality check.
type InspectionDTO struct {
	ID             uuid.UUID `json:"id"`
	Inspector      string    `json:"inspector"`
	Result         string    `json:"result"`
	Remarks        *string   `json:"remarks,omitempty"`
	InspectionType *string   `json:"inspection_type,omitempty"`
	BatchInfo      *string   `json:"batch_info,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// ListResult bundles one page of products with paging metadata.
type ListResult struct {
	Items []ProductDTO `json:"items"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
	Total int64        `json:"total"`
}

// NewProductDTO builds a DTO from the persisted aggregate. History and
// Inspections are flattened in stored order.
func NewProductDTO(record *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:              record.ID,
		Name:            record.Name,
		Origin:          record.Origin,
		CurrentLocation: record.CurrentLocation,
		Owner:           record.Owner,
		Status:          record.Status.String(),
		ExpirationDate:  record.ExpirationDate,
		Version:         record.Version,
		History:         make([]string, 0, len(record.History)),
		Inspections:     make([]InspectionDTO, 0, len(record.Inspections)),
		CreatedAt:       record.CreatedAt,
		UpdatedAt:       record.UpdatedAt,
	}
	for _, entry := range record.History {
		dto.History = append(dto.History, entry.Entry)
	}
	for _, inspection := range record.Inspections {
		dto.Inspections = append(dto.Inspections, InspectionDTO{
			ID:             inspection.ID,
			Inspector:      inspection.Inspector,
			Result:         inspection.Result,
			Remarks:        inspection.Remarks,
			InspectionType: inspection.InspectionType,
			BatchInfo:      inspection.BatchInfo,
			Timestamp:      inspection.Timestamp,
		})
	}
	return dto
}
