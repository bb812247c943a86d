package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/grovechain/foodtrace-backend/pkg/db/models"
	"github.com/grovechain/foodtrace-backend/pkg/enums"
	pkgerrors "github.com/grovechain/foodtrace-backend/pkg/errors"
	"github.com/grovechain/foodtrace-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the product lifecycle operations. Every mutation commits
// atomically: record write, history append, and version bump land together
// or not at all.
type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	List(ctx context.Context, params pagination.Params) (*ListResult, error)
	Update(ctx context.Context, input UpdateProductInput) (*ProductDTO, error)
	Transfer(ctx context.Context, input TransferProductInput) (*ProductDTO, error)
	Inspect(ctx context.Context, input InspectProductInput) (*ProductDTO, error)
	Delete(ctx context.Context, id uuid.UUID) (*ProductDTO, error)
	History(ctx context.Context, id uuid.UUID) ([]string, error)
}

type service struct {
	repo  RecordStore
	tx    txRunner
	guard VersionGuard
	locks *recordLocks
}

// CreateProductInput carries the required fields for a new product record.
type CreateProductInput struct {
	Name           string
	Origin         string
	Owner          string
	ExpirationDate time.Time
}

// UpdateProductInput is a partial update; nil fields are left unchanged.
// ExpectedVersion nil means the caller opted out of optimistic locking.
type UpdateProductInput struct {
	ID              uuid.UUID
	Name            *string
	Status          *enums.ProductStatus
	ExpirationDate  *time.Time
	ExpectedVersion *int64
}

// TransferProductInput moves custody of a record to a new owner and location.
type TransferProductInput struct {
	ID          uuid.UUID
	NewOwner    string
	NewLocation string
}

// InspectProductInput records one quality check against a record.
type InspectProductInput struct {
	ID             uuid.UUID
	Inspector      string
	Result         string
	Remarks        *string
	InspectionType *string
	BatchInfo      *string
}

// NewService builds the product service with the required dependencies.
func NewService(repo RecordStore, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product record store required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:  repo,
		tx:    tx,
		locks: newRecordLocks(),
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if strings.TrimSpace(input.Origin) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "origin required")
	}
	if strings.TrimSpace(input.Owner) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "owner required")
	}
	if input.ExpirationDate.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "expiration date required")
	}

	record := &models.Product{
		ID:              uuid.New(),
		Name:            input.Name,
		Origin:          input.Origin,
		CurrentLocation: input.Origin,
		Owner:           input.Owner,
		Status:          enums.ProductStatusCreated,
		ExpirationDate:  input.ExpirationDate,
		Version:         1,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.Insert(ctx, record); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert product")
		}
		ledger := historyLedger{store: repo}
		if err := ledger.Append(ctx, record, creationEntry(input.Origin)); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append creation entry")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	record.CreatedAt = record.CreatedAt.UTC()
	return NewProductDTO(record), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	record, err := s.load(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	return NewProductDTO(record), nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*ListResult, error) {
	params = pagination.Normalize(params)

	records, err := s.repo.List(ctx, params.Offset(), params.Limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}

	result := &ListResult{
		Items: make([]ProductDTO, 0, len(records)),
		Page:  params.Page,
		Limit: params.Limit,
		Total: total,
	}
	for i := range records {
		result.Items = append(result.Items, *NewProductDTO(&records[i]))
	}
	return result, nil
}

func (s *service) Update(ctx context.Context, input UpdateProductInput) (*ProductDTO, error) {
	if input.Name == nil && input.Status == nil && input.ExpirationDate == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no updatable field supplied")
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name must not be empty")
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product status")
	}

	var dto *ProductDTO
	err := s.mutate(ctx, input.ID, func(ctx context.Context, repo RecordStore, record *models.Product) error {
		if err := s.guard.Check(record.Version, input.ExpectedVersion); err != nil {
			return err
		}

		var changed []string
		if input.Name != nil {
			record.Name = *input.Name
			changed = append(changed, "name")
		}
		if input.Status != nil {
			record.Status = *input.Status
			changed = append(changed, "status")
		}
		if input.ExpirationDate != nil {
			record.ExpirationDate = *input.ExpirationDate
			changed = append(changed, "expiration date")
		}

		if err := s.commit(ctx, repo, record, updateEntry(changed)); err != nil {
			return err
		}
		dto = NewProductDTO(record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *service) Transfer(ctx context.Context, input TransferProductInput) (*ProductDTO, error) {
	if strings.TrimSpace(input.NewOwner) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "new owner required")
	}
	if strings.TrimSpace(input.NewLocation) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "new location required")
	}

	var dto *ProductDTO
	err := s.mutate(ctx, input.ID, func(ctx context.Context, repo RecordStore, record *models.Product) error {
		record.Owner = input.NewOwner
		record.CurrentLocation = input.NewLocation
		record.Status = enums.ProductStatusInTransit

		if err := s.commit(ctx, repo, record, transferEntry(input.NewOwner, input.NewLocation)); err != nil {
			return err
		}
		dto = NewProductDTO(record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *service) Inspect(ctx context.Context, input InspectProductInput) (*ProductDTO, error) {
	if strings.TrimSpace(input.Inspector) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "inspector required")
	}
	if strings.TrimSpace(input.Result) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "result required")
	}

	var dto *ProductDTO
	err := s.mutate(ctx, input.ID, func(ctx context.Context, repo RecordStore, record *models.Product) error {
		inspection := models.Inspection{
			ID:             uuid.New(),
			ProductID:      record.ID,
			Inspector:      input.Inspector,
			Result:         input.Result,
			Remarks:        input.Remarks,
			InspectionType: input.InspectionType,
			BatchInfo:      input.BatchInfo,
			Timestamp:      now(),
		}
		if err := repo.AppendInspection(ctx, &inspection); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append inspection")
		}
		record.Inspections = append(record.Inspections, inspection)
		record.Status = statusForResult(input.Result)

		if err := s.commit(ctx, repo, record, inspectionEntry(input.Inspector, input.Result, record.Status)); err != nil {
			return err
		}
		dto = NewProductDTO(record)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	var dto *ProductDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		prior, err := repo.Remove(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
		}
		dto = NewProductDTO(prior)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (s *service) History(ctx context.Context, id uuid.UUID) ([]string, error) {
	record, err := s.load(ctx, s.repo, id)
	if err != nil {
		return nil, err
	}
	entries := make([]string, 0, len(record.History))
	for _, entry := range record.History {
		entries = append(entries, entry.Entry)
	}
	return entries, nil
}

// mutate runs fn inside the per-record critical section and one transaction.
// The loaded aggregate reflects the committed state including ordered history.
func (s *service) mutate(ctx context.Context, id uuid.UUID, fn func(ctx context.Context, repo RecordStore, record *models.Product) error) error {
	s.locks.Lock(id)
	defer s.locks.Unlock(id)

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		record, err := s.load(ctx, repo, id)
		if err != nil {
			return err
		}
		return fn(ctx, repo, record)
	})
}

// commit finalizes an admitted mutation: updatedAt, version bump, history
// append, persisted snapshot.
func (s *service) commit(ctx context.Context, repo RecordStore, record *models.Product, entry string) error {
	touched := now()
	record.UpdatedAt = &touched
	record.Version++

	if err := repo.Insert(ctx, record); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist product")
	}
	ledger := historyLedger{store: repo}
	if err := ledger.Append(ctx, record, entry); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "append history entry")
	}
	return nil
}

func (s *service) load(ctx context.Context, repo RecordStore, id uuid.UUID) (*models.Product, error) {
	record, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return record, nil
}

// statusForResult maps an inspection outcome onto the lifecycle. The result
// text itself stays free form; only the fail family flips the record to
// Rejected.
func statusForResult(result string) enums.ProductStatus {
	switch strings.ToLower(strings.TrimSpace(result)) {
	case "failed", "fail", "rejected", "reject":
		return enums.ProductStatusRejected
	default:
		return enums.ProductStatusInspected
	}
}
