package product

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/grovechain/foodtrace-backend/pkg/db/models"
	"github.com/grovechain/foodtrace-backend/pkg/enums"
)

// historyLedger appends audit entries to one product's trail. Positions are
// dense and zero-based; the ledger never edits or removes an entry.
type historyLedger struct {
	store RecordStore
}

// Append writes one entry at the next position and mirrors it onto the
// in-memory aggregate so the caller sees the post-commit shape.
func (l historyLedger) Append(ctx context.Context, record *models.Product, text string) error {
	entry := models.HistoryEntry{
		ProductID: record.ID,
		Position:  len(record.History),
		Entry:     text,
	}
	if err := l.store.AppendHistory(ctx, &entry); err != nil {
		return err
	}
	record.History = append(record.History, entry)
	return nil
}

func creationEntry(origin string) string {
	return fmt.Sprintf("Product created at %s", origin)
}

func updateEntry(fields []string) string {
	return fmt.Sprintf("Updated %s", strings.Join(fields, ", "))
}

func transferEntry(owner, location string) string {
	return fmt.Sprintf("Ownership transferred to %s and moved to %s", owner, location)
}

func inspectionEntry(inspector, result string, status enums.ProductStatus) string {
	return fmt.Sprintf("Inspected by %s with result %q, status set to %s", inspector, result, status)
}

func now() time.Time {
	return time.Now().UTC()
}
