package product

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/grovechain/foodtrace-backend/pkg/db"
	"github.com/grovechain/foodtrace-backend/pkg/db/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	require.NoError(t, conn.AutoMigrate(
		&models.Product{},
		&models.HistoryEntry{},
		&models.Inspection{},
	))
	return conn
}

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()

	conn := openTestDB(t)
	client, err := db.NewWithConn(conn)
	require.NoError(t, err)

	svc, err := NewService(NewRepository(conn), client)
	require.NoError(t, err)
	return svc, conn
}

func mustCreateProduct(t *testing.T, svc Service, name string) *ProductDTO {
	t.Helper()

	dto, err := svc.Create(context.Background(), CreateProductInput{
		Name:           name,
		Origin:         "Farm A",
		Owner:          "Farm A",
		ExpirationDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return dto
}
