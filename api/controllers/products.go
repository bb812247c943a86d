package controllers

import (
	"context"
	"math"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/grovechain/foodtrace-backend/api/responses"
	"github.com/grovechain/foodtrace-backend/api/validators"
	product "github.com/grovechain/foodtrace-backend/internal/products"
	"github.com/grovechain/foodtrace-backend/pkg/enums"
	pkgerrors "github.com/grovechain/foodtrace-backend/pkg/errors"
	"github.com/grovechain/foodtrace-backend/pkg/logger"
	"github.com/grovechain/foodtrace-backend/pkg/pagination"
)

const productIDParam = "productId"

// recordContext seeds the request context so log lines emitted below this
// handler carry the record id.
func recordContext(r *http.Request, logg *logger.Logger, id uuid.UUID) context.Context {
	if logg == nil {
		return r.Context()
	}
	return logg.WithProductID(r.Context(), id.String())
}

// dateOnly covers payloads like "2025-01-01"; full RFC 3339 stamps are also
// accepted.
const dateOnly = "2006-01-02"

func parseDate(value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts.UTC(), nil
	}
	ts, err := time.Parse(dateOnly, value)
	if err != nil {
		return time.Time{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "expiration_date must be a date or RFC 3339 timestamp")
	}
	return ts.UTC(), nil
}

type createProductRequest struct {
	Name           string `json:"name" validate:"required"`
	Origin         string `json:"origin" validate:"required"`
	Owner          string `json:"owner" validate:"required"`
	ExpirationDate string `json:"expiration_date" validate:"required"`
}

func (p createProductRequest) toInput() (product.CreateProductInput, error) {
	expiration, err := parseDate(p.ExpirationDate)
	if err != nil {
		return product.CreateProductInput{}, err
	}
	return product.CreateProductInput{
		Name:           validators.SanitizeString(p.Name, 0),
		Origin:         validators.SanitizeString(p.Origin, 0),
		Owner:          validators.SanitizeString(p.Owner, 0),
		ExpirationDate: expiration,
	}, nil
}

type updateProductRequest struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Status         *string `json:"status,omitempty" validate:"omitempty,min=1"`
	ExpirationDate *string `json:"expiration_date,omitempty" validate:"omitempty,min=1"`
	Version        *int64  `json:"version,omitempty" validate:"omitempty,min=1"`
}

func (p updateProductRequest) toInput() (product.UpdateProductInput, error) {
	input := product.UpdateProductInput{ExpectedVersion: p.Version}

	if p.Name != nil {
		name := validators.SanitizeString(*p.Name, 0)
		input.Name = &name
	}
	if p.Status != nil {
		status, err := enums.ParseProductStatus(*p.Status)
		if err != nil {
			return product.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		input.Status = &status
	}
	if p.ExpirationDate != nil {
		expiration, err := parseDate(*p.ExpirationDate)
		if err != nil {
			return product.UpdateProductInput{}, err
		}
		input.ExpirationDate = &expiration
	}
	return input, nil
}

type transferProductRequest struct {
	NewOwner    string `json:"new_owner" validate:"required"`
	NewLocation string `json:"new_location" validate:"required"`
}

type inspectProductRequest struct {
	Inspector      string  `json:"inspector" validate:"required"`
	Result         string  `json:"result" validate:"required"`
	Remarks        *string `json:"remarks,omitempty"`
	InspectionType *string `json:"inspection_type,omitempty"`
	BatchInfo      *string `json:"batch_info,omitempty"`
}

// CreateProduct registers a new product record at its origin.
func CreateProduct(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, created)
	}
}

// GetProduct returns the current snapshot of one record.
func GetProduct(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, productIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := recordContext(r, logg, id)
		record, err := svc.Get(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

// ListProducts returns one page of records.
func ListProducts(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParseQueryInt(r, "page", pagination.DefaultPage, 1, math.MaxInt32)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), pagination.Params{Page: page, Limit: limit})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// UpdateProduct applies a partial update, honoring an optional expected
// version for optimistic locking.
func UpdateProduct(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, productIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := recordContext(r, logg, id)
		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		input.ID = id

		updated, err := svc.Update(ctx, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

// DeleteProduct removes a record permanently and returns its last snapshot.
func DeleteProduct(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, productIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := recordContext(r, logg, id)
		snapshot, err := svc.Delete(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, snapshot)
	}
}

// TransferProduct moves custody to a new owner and location.
func TransferProduct(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, productIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := recordContext(r, logg, id)
		var payload transferProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		transferred, err := svc.Transfer(ctx, product.TransferProductInput{
			ID:          id,
			NewOwner:    validators.SanitizeString(payload.NewOwner, 0),
			NewLocation: validators.SanitizeString(payload.NewLocation, 0),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, transferred)
	}
}

// InspectProduct records a quality check against a record.
func InspectProduct(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, productIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := recordContext(r, logg, id)
		var payload inspectProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		inspected, err := svc.Inspect(ctx, product.InspectProductInput{
			ID:             id,
			Inspector:      validators.SanitizeString(payload.Inspector, 0),
			Result:         validators.SanitizeString(payload.Result, 0),
			Remarks:        payload.Remarks,
			InspectionType: payload.InspectionType,
			BatchInfo:      payload.BatchInfo,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, inspected)
	}
}

// ProductHistory returns the record's audit trail in append order.
func ProductHistory(svc product.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParseIDParam(r, productIDParam)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := recordContext(r, logg, id)
		entries, err := svc.History(ctx, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, entries)
	}
}
