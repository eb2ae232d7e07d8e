package ledger

import (
	"context"

	"shop/internal/types"
)

// Ledger - контракт движка покупок/возвратов для http-слоя.
// Все денежные операции атомарны: либо применились целиком, либо никак.
type Ledger interface {
	Purchase(ctx context.Context, userID, itemID string) (types.PurchaseResult, error)
	Refund(ctx context.Context, userID, itemID string) (types.RefundResult, error)
	Recharge(ctx context.Context, userID string, amount int) (int, error)

	OwnedItemIDs(ctx context.Context, userID string) ([]string, error)
	OwnedItems(ctx context.Context, userID string) ([]types.OwnedItem, error)
	History(ctx context.Context, userID string) ([]types.LedgerEntry, error)
}
