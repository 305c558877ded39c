package repositories

import (
	"context"

	"github.com/khaohom/savings/internal/models"
)

// LedgerRepository is the persistence boundary of the savings ledger.
// Transactions are only ever written through UpsertBatch; every read is
// side-effect free.
type LedgerRepository interface {
	ListAssets(ctx context.Context) ([]*models.Asset, error)
	GetAssetBySymbol(ctx context.Context, symbol string) (*models.Asset, error)

	// ListTransactions returns the full ledger ordered by date ascending.
	ListTransactions(ctx context.Context) ([]*models.Transaction, error)

	// ListTransactionDetails returns the ledger enriched with asset display
	// names, ordered by date descending for presentation.
	ListTransactionDetails(ctx context.Context) ([]*models.TransactionDetail, error)

	// UpsertBatch applies all rows inside one storage transaction. A row
	// matching an existing natural key updates the mutable fields; any other
	// row inserts. A database error rolls back every row in the batch.
	UpsertBatch(ctx context.Context, rows []*models.Transaction) (inserted, updated int, err error)
}
