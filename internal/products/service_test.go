package product

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovechain/foodtrace-backend/pkg/db/models"
	"github.com/grovechain/foodtrace-backend/pkg/enums"
	pkgerrors "github.com/grovechain/foodtrace-backend/pkg/errors"
	"github.com/grovechain/foodtrace-backend/pkg/pagination"
)

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	require.Equal(t, code, typed.Code())
}

func TestCreateRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created := mustCreateProduct(t, svc, "Apples")
	require.Equal(t, int64(1), created.Version)
	require.Len(t, created.History, 1)
	require.Empty(t, created.Inspections)
	require.Equal(t, enums.ProductStatusCreated.String(), created.Status)
	require.Equal(t, "Farm A", created.CurrentLocation)
	require.Nil(t, created.UpdatedAt)

	fetched, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, int64(1), fetched.Version)
	assert.Len(t, fetched.History, 1)
	assert.Empty(t, fetched.Inspections)
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateProductInput
	}{
		{"missingName", CreateProductInput{Origin: "Farm A", Owner: "Farm A", ExpirationDate: time.Now()}},
		{"missingOrigin", CreateProductInput{Name: "Apples", Owner: "Farm A", ExpirationDate: time.Now()}},
		{"missingOwner", CreateProductInput{Name: "Apples", Origin: "Farm A", ExpirationDate: time.Now()}},
		{"missingExpiration", CreateProductInput{Name: "Apples", Origin: "Farm A", Owner: "Farm A"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.input)
			requireCode(t, err, pkgerrors.CodeValidation)
		})
	}
}

func TestVersionMonotonicity(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created := mustCreateProduct(t, svc, "Apples")

	name := "Golden Apples"
	_, err := svc.Update(ctx, UpdateProductInput{ID: created.ID, Name: &name})
	require.NoError(t, err)

	_, err = svc.Transfer(ctx, TransferProductInput{ID: created.ID, NewOwner: "Distributor B", NewLocation: "Warehouse 1"})
	require.NoError(t, err)

	_, err = svc.Inspect(ctx, InspectProductInput{ID: created.ID, Inspector: "Insp1", Result: "Passed"})
	require.NoError(t, err)

	final, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, int64(4), final.Version, "three accepted mutations on a fresh record")
	require.Len(t, final.History, 4)
}

func TestUpdateMergesSuppliedFieldsOnly(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created := mustCreateProduct(t, svc, "Apples")

	status := enums.ProductStatusDelivered
	updated, err := svc.Update(ctx, UpdateProductInput{ID: created.ID, Status: &status})
	require.NoError(t, err)

	assert.Equal(t, "Apples", updated.Name)
	assert.Equal(t, enums.ProductStatusDelivered.String(), updated.Status)
	assert.Equal(t, created.ExpirationDate, updated.ExpirationDate)
	assert.Equal(t, int64(2), updated.Version)
	require.NotNil(t, updated.UpdatedAt)
}

func TestUpdateRequiresAField(t *testing.T) {
	svc, _ := newTestService(t)

	created := mustCreateProduct(t, svc, "Apples")
	_, err := svc.Update(context.Background(), UpdateProductInput{ID: created.ID})
	requireCode(t, err, pkgerrors.CodeValidation)
}

func TestUpdateLostUpdatePrevention(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created := mustCreateProduct(t, svc, "Apples")

	stale := created.Version - 1
	name := "Tampered"
	_, err := svc.Update(ctx, UpdateProductInput{ID: created.ID, Name: &name, ExpectedVersion: &stale})
	requireCode(t, err, pkgerrors.CodeConflict)

	unchanged, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Apples", unchanged.Name)
	assert.Equal(t, created.Version, unchanged.Version)
	assert.Len(t, unchanged.History, len(created.History))
}

func TestUpdateMatchingExpectedVersion(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created := mustCreateProduct(t, svc, "Apples")

	expected := created.Version
	name := "Golden Apples"
	updated, err := svc.Update(ctx, UpdateProductInput{ID: created.ID, Name: &name, ExpectedVersion: &expected})
	require.NoError(t, err)
	assert.Equal(t, created.Version+1, updated.Version)
	assert.Equal(t, "Golden Apples", updated.Name)
}

func TestHistoryIsAppendOnly(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created := mustCreateProduct(t, svc, "Apples")
	seen := append([]string{}, created.History...)

	mutations := []func() error{
		func() error {
			name := "Golden Apples"
			_, err := svc.Update(ctx, UpdateProductInput{ID: created.ID, Name: &name})
			return err
		},
		func() error {
			_, err := svc.Transfer(ctx, TransferProductInput{ID: created.ID, NewOwner: "Distributor B", NewLocation: "Warehouse 1"})
			return err
		},
		func() error {
			_, err := svc.Inspect(ctx, InspectProductInput{ID: created.ID, Inspector: "Insp1", Result: "Passed"})
			return err
		},
	}

	for _, mutate := range mutations {
		require.NoError(t, mutate())

		current, err := svc.History(ctx, created.ID)
		require.NoError(t, err)
		require.Len(t, current, len(seen)+1, "each mutation appends exactly one entry")
		for i, text := range seen {
			require.Equal(t, text, current[i], "existing entries must never change")
		}
		seen = current
	}
}

func TestListPagination(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	createdIDs := make(map[uuid.UUID]bool, 25)
	for i := 0; i < 25; i++ {
		dto := mustCreateProduct(t, svc, fmt.Sprintf("Item %02d", i))
		createdIDs[dto.ID] = true
	}

	seenIDs := make(map[uuid.UUID]bool, 25)
	wantSizes := map[int]int{1: 10, 2: 10, 3: 5, 4: 0}
	for page := 1; page <= 4; page++ {
		result, err := svc.List(ctx, pagination.Params{Page: page, Limit: 10})
		require.NoError(t, err)
		require.Len(t, result.Items, wantSizes[page], "page %d", page)
		require.Equal(t, int64(25), result.Total)

		for _, item := range result.Items {
			require.False(t, seenIDs[item.ID], "pages must not overlap")
			seenIDs[item.ID] = true
		}
	}
	require.Equal(t, createdIDs, seenIDs, "union of pages equals the full set")
}

func TestListDefaults(t *testing.T) {
	svc, _ := newTestService(t)

	result, err := svc.List(context.Background(), pagination.Params{})
	require.NoError(t, err)
	assert.Equal(t, pagination.DefaultPage, result.Page)
	assert.Equal(t, pagination.DefaultLimit, result.Limit)
}

func TestUnknownIDLeavesStoreUnchanged(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	missing := uuid.New()

	name := "Ghost"
	operations := map[string]func() error{
		"get": func() error {
			_, err := svc.Get(ctx, missing)
			return err
		},
		"update": func() error {
			_, err := svc.Update(ctx, UpdateProductInput{ID: missing, Name: &name})
			return err
		},
		"delete": func() error {
			_, err := svc.Delete(ctx, missing)
			return err
		},
		"transfer": func() error {
			_, err := svc.Transfer(ctx, TransferProductInput{ID: missing, NewOwner: "B", NewLocation: "W1"})
			return err
		},
		"inspect": func() error {
			_, err := svc.Inspect(ctx, InspectProductInput{ID: missing, Inspector: "Insp1", Result: "Passed"})
			return err
		},
		"history": func() error {
			_, err := svc.History(ctx, missing)
			return err
		},
	}

	for label, op := range operations {
		t.Run(label, func(t *testing.T) {
			requireCode(t, op(), pkgerrors.CodeNotFound)
		})
	}

	var products int64
	require.NoError(t, conn.Model(&models.Product{}).Count(&products).Error)
	require.Zero(t, products, "no record may materialize as a side effect")

	var inspections int64
	require.NoError(t, conn.Model(&models.Inspection{}).Count(&inspections).Error)
	require.Zero(t, inspections)
}

func TestDeleteReturnsLastSnapshot(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created := mustCreateProduct(t, svc, "Apples")
	_, err := svc.Transfer(ctx, TransferProductInput{ID: created.ID, NewOwner: "Distributor B", NewLocation: "Warehouse 1"})
	require.NoError(t, err)

	snapshot, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, snapshot.ID)
	assert.Equal(t, "Distributor B", snapshot.Owner)
	assert.Equal(t, int64(2), snapshot.Version)
	assert.Len(t, snapshot.History, 2)

	_, err = svc.Get(ctx, created.ID)
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestInspectRecordsOutcome(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	t.Run("passSetsInspected", func(t *testing.T) {
		created := mustCreateProduct(t, svc, "Apples")
		remarks := "cold chain intact"
		dto, err := svc.Inspect(ctx, InspectProductInput{
			ID:        created.ID,
			Inspector: "Insp1",
			Result:    "Passed",
			Remarks:   &remarks,
		})
		require.NoError(t, err)
		require.Len(t, dto.Inspections, 1)
		assert.Equal(t, enums.ProductStatusInspected.String(), dto.Status)
		assert.Equal(t, "Insp1", dto.Inspections[0].Inspector)
		require.NotNil(t, dto.Inspections[0].Remarks)
		assert.Equal(t, remarks, *dto.Inspections[0].Remarks)
	})

	t.Run("failSetsRejected", func(t *testing.T) {
		created := mustCreateProduct(t, svc, "Pears")
		dto, err := svc.Inspect(ctx, InspectProductInput{
			ID:        created.ID,
			Inspector: "Insp2",
			Result:    "Failed",
		})
		require.NoError(t, err)
		assert.Equal(t, enums.ProductStatusRejected.String(), dto.Status)
	})
}

func TestSupplyChainScenario(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateProductInput{
		Name:           "Apples",
		Origin:         "Farm A",
		Owner:          "Farm A",
		ExpirationDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), created.Version)

	transferred, err := svc.Transfer(ctx, TransferProductInput{
		ID:          created.ID,
		NewOwner:    "Distributor B",
		NewLocation: "Warehouse 1",
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), transferred.Version)
	require.Equal(t, "Distributor B", transferred.Owner)
	require.Equal(t, "Warehouse 1", transferred.CurrentLocation)
	require.Len(t, transferred.History, 2)

	inspected, err := svc.Inspect(ctx, InspectProductInput{
		ID:        created.ID,
		Inspector: "Insp1",
		Result:    "Passed",
	})
	require.NoError(t, err)
	require.Equal(t, int64(3), inspected.Version)
	require.Len(t, inspected.Inspections, 1)
	require.Len(t, inspected.History, 3)
}
