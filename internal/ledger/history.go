package ledger

import (
	"context"

	"shop/internal/types"
)

// Идентификаторы всех предметов пользователя.
// Фронт по ним красит кнопки "куплено" в каталоге.
func (lr *LedgerRepository) OwnedItemIDs(ctx context.Context, userID string) ([]string, error) {
	q := `
	SELECT item_id
	FROM purchases
	WHERE user_id = $1
	ORDER BY item_id
	`
	rows, err := lr.DB.QueryContext(ctx, q, userID)
	if err != nil {
		lr.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
		return nil, ErrInternalDB
	}
	defer func() {
		err = rows.Close()
		if err != nil {
			lr.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
		}
	}()

	ids := make([]string, 0, AllocSize)

	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			lr.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
			return nil, ErrInternalDB
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		lr.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
		return nil, ErrInternalDB
	}

	return ids, nil
}

// Инвентарь пользователя: предметы каталога вместе с ценой покупки,
// свежекупленные сверху.
func (lr *LedgerRepository) OwnedItems(ctx context.Context, userID string) ([]types.OwnedItem, error) {
	q := `
	SELECT c.id, c.name, COALESCE(c.description, ''), COALESCE(c.type, ''),
	       COALESCE(c.rarity, ''), COALESCE(c.image_url, ''),
	       c.price, COALESCE(c.bundle_id, ''),
	       p.price_paid, p.purchase_date
	FROM cosmetics c
	JOIN purchases p ON c.id = p.item_id
	WHERE p.user_id = $1
	ORDER BY p.purchase_date DESC, c.id
	`
	rows, err := lr.DB.QueryContext(ctx, q, userID)
	if err != nil {
		lr.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
		return nil, ErrInternalDB
	}
	defer func() {
		err = rows.Close()
		if err != nil {
			lr.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
		}
	}()

	items := make([]types.OwnedItem, 0, AllocSize)

	for rows.Next() {
		var oi types.OwnedItem
		err = rows.Scan(
			&oi.ID, &oi.Name, &oi.Description, &oi.Type,
			&oi.Rarity, &oi.ImageURL,
			&oi.Price, &oi.BundleID,
			&oi.PricePaid, &oi.PurchaseDate,
		)
		if err != nil {
			lr.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
			return nil, ErrInternalDB
		}

		items = append(items, oi)
	}

	if err = rows.Err(); err != nil {
		lr.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
		return nil, ErrInternalDB
	}

	return items, nil
}

/*
История операций кошелька, свежие сверху, не больше HistoryLimit штук.
Для покупки бандла в журнале лежит только предмет-триггер, поэтому
состав бандла подтягиваем из текущего каталога. Да, если bundle_id
предмета с тех пор поменялся, история "поедет" - так вел себя и
исходный проект, для учебного магазина это терпимо.
*/
func (lr *LedgerRepository) History(ctx context.Context, userID string) ([]types.LedgerEntry, error) {
	q := `
	SELECT w.type, COALESCE(w.item_id, ''), COALESCE(c.name, ''),
	       w.amount, w.created_at, COALESCE(c.bundle_id, '')
	FROM wallet_transactions w
	LEFT JOIN cosmetics c ON c.id = w.item_id
	WHERE w.user_id = $1
	ORDER BY w.created_at DESC, w.id DESC
	LIMIT $2
	`
	rows, err := lr.DB.QueryContext(ctx, q, userID, HistoryLimit)
	if err != nil {
		lr.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
		return nil, ErrInternalDB
	}
	defer func() {
		err = rows.Close()
		if err != nil {
			lr.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
		}
	}()

	entries := make([]types.LedgerEntry, 0, AllocSize)
	bundles := make([]string, 0, AllocSize) // bundle_id для каждой записи

	for rows.Next() {
		var e types.LedgerEntry
		var bundleID string

		err = rows.Scan(&e.Type, &e.ItemID, &e.ItemName, &e.Amount, &e.CreatedAt, &bundleID)
		if err != nil {
			lr.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
			return nil, ErrInternalDB
		}

		entries = append(entries, e)
		bundles = append(bundles, bundleID)
	}

	if err = rows.Err(); err != nil {
		lr.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
		return nil, ErrInternalDB
	}

	// Дозаполняем состав бандлов, каждый бандл запрашиваем один раз
	members := make(map[string][]string)
	for i, bundleID := range bundles {
		if bundleID == "" {
			continue
		}

		ids, found := members[bundleID]
		if !found {
			ids, err = lr.currentBundleMembers(ctx, bundleID)
			if err != nil {
				return nil, err
			}
			members[bundleID] = ids
		}

		entries[i].BundleItemIDs = ids
	}

	return entries, nil
}

func (lr *LedgerRepository) currentBundleMembers(ctx context.Context, bundleID string) ([]string, error) {
	q := `
	SELECT id
	FROM cosmetics
	WHERE bundle_id = $1
	ORDER BY id
	`
	rows, err := lr.DB.QueryContext(ctx, q, bundleID)
	if err != nil {
		lr.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
		return nil, ErrInternalDB
	}
	defer func() {
		err = rows.Close()
		if err != nil {
			lr.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
		}
	}()

	ids := make([]string, 0, AllocSize)

	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			lr.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
			return nil, ErrInternalDB
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		lr.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
		return nil, ErrInternalDB
	}

	return ids, nil
}
