package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"shop/internal/types"

	"go.uber.org/zap"
)

type CatalogRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewCatalogRepository(db *sql.DB, l *zap.SugaredLogger) *CatalogRepository {
	return &CatalogRepository{
		DB:     db,
		Logger: l,
	}
}

const itemColumns = `
	id, name, COALESCE(description, ''), COALESCE(type, ''),
	COALESCE(rarity, ''), COALESCE(set_text, ''), COALESCE(introduction_text, ''),
	COALESCE(image_url, ''), added_at, price, regular_price,
	is_new, is_for_sale, on_promotion, COALESCE(bundle_id, '')`

func scanItem(row interface{ Scan(...interface{}) error }) (types.Item, error) {
	var i types.Item
	err := row.Scan(
		&i.ID, &i.Name, &i.Description, &i.Type,
		&i.Rarity, &i.SetText, &i.IntroductionText,
		&i.ImageURL, &i.AddedAt, &i.Price, &i.RegularPrice,
		&i.IsNew, &i.IsForSale, &i.OnPromotion, &i.BundleID,
	)
	return i, err
}

// Карточка одного предмета.
func (cr *CatalogRepository) GetItem(ctx context.Context, itemID string) (types.Item, error) {
	q := `SELECT` + itemColumns + `
	FROM cosmetics
	WHERE id = $1
	`
	item, err := scanItem(cr.DB.QueryRowContext(ctx, q, itemID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			cr.Logger.Errorf("%v. More details: %v", ErrItemNotFound, err)
			return types.Item{}, ErrItemNotFound
		}

		cr.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
		return types.Item{}, ErrInternalDB
	}

	return item, nil
}

/*
Перевод фильтра в WHERE. Каждый критерий добавляет условие с
плейсхолдером, значения уходят в args - клиентская строка в текст
запроса не попадает никогда.
*/
func buildListQuery(f ListFilter) (where string, orderBy string, args []interface{}) {
	conds := make([]string, 0, 6)

	addCond := func(expr string, val interface{}) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(expr, len(args)))
	}

	if f.Type != "" {
		addCond("type = $%d", f.Type)
	}
	if f.Rarity != "" {
		addCond("rarity = $%d", f.Rarity)
	}
	if f.Search != "" {
		addCond("name ILIKE $%d", "%"+f.Search+"%")
	}
	if f.OnlyNew {
		conds = append(conds, "is_new = true")
	}
	if f.OnlyForSale {
		conds = append(conds, "is_for_sale = true")
	}
	if f.OnlyPromo {
		conds = append(conds, "on_promotion = true")
	}

	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	// ORDER BY только из фиксированного набора
	switch f.Sort {
	case SortByPriceAsc:
		orderBy = " ORDER BY price ASC, name ASC"
	case SortByPriceDesc:
		orderBy = " ORDER BY price DESC, name ASC"
	case SortByNewest:
		orderBy = " ORDER BY added_at DESC, name ASC"
	default:
		orderBy = " ORDER BY name ASC"
	}

	return where, orderBy, args
}

// Страница каталога: сами предметы плюс пагинация (как в исходном API).
func (cr *CatalogRepository) List(ctx context.Context, f ListFilter) (ListPage, error) {
	if f.Page < 1 {
		f.Page = 1
	}

	where, orderBy, args := buildListQuery(f)

	// Сначала общее количество под те же условия
	countQuery := `SELECT COUNT(*) FROM cosmetics` + where

	var total int
	err := cr.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total)
	if err != nil {
		cr.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
		return ListPage{}, ErrInternalDB
	}

	// Потом страница
	limitArgs := append(args, ItemsPerPage, (f.Page-1)*ItemsPerPage)
	listQuery := `SELECT` + itemColumns + `
	FROM cosmetics` + where + orderBy +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)

	rows, err := cr.DB.QueryContext(ctx, listQuery, limitArgs...)
	if err != nil {
		cr.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
		return ListPage{}, ErrInternalDB
	}
	defer func() {
		err = rows.Close()
		if err != nil {
			cr.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
		}
	}()

	items := make([]types.Item, 0, ItemsPerPage)

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			cr.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
			return ListPage{}, ErrInternalDB
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		cr.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
		return ListPage{}, ErrInternalDB
	}

	totalPages := (total + ItemsPerPage - 1) / ItemsPerPage

	return ListPage{
		Data: items,
		Pagination: Pagination{
			TotalItems:   total,
			TotalPages:   totalPages,
			CurrentPage:  f.Page,
			ItemsPerPage: ItemsPerPage,
		},
	}, nil
}
