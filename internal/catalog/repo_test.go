package catalog

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"shop/internal/types"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newTestCatalogRepository(t *testing.T) (*CatalogRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Не удалось создать мок базу данных: %v", err)
	}

	logger := zap.NewNop().Sugar()

	return NewCatalogRepository(db, logger), mock
}

func TestBuildListQuery(t *testing.T) {
	// Тестовые случаи на билдер фильтров
	tests := []struct {
		name          string
		filter        ListFilter
		expectedWhere string
		expectedOrder string
		expectedArgs  []interface{}
	}{
		{
			name:          "NoFilters",
			filter:        ListFilter{},
			expectedWhere: "",
			expectedOrder: " ORDER BY name ASC",
			expectedArgs:  nil,
		},
		{
			name: "TypeAndRarity",
			filter: ListFilter{
				Type:   "outfit",
				Rarity: "legendary",
			},
			expectedWhere: " WHERE type = $1 AND rarity = $2",
			expectedOrder: " ORDER BY name ASC",
			expectedArgs:  []interface{}{"outfit", "legendary"},
		},
		{
			name: "SearchWithFlags",
			filter: ListFilter{
				Search:      "raven",
				OnlyForSale: true,
				OnlyPromo:   true,
				Sort:        SortByPriceDesc,
			},
			expectedWhere: " WHERE name ILIKE $1 AND is_for_sale = true AND on_promotion = true",
			expectedOrder: " ORDER BY price DESC, name ASC",
			expectedArgs:  []interface{}{"%raven%"},
		},
		{
			name: "NewestSort",
			filter: ListFilter{
				OnlyNew: true,
				Sort:    SortByNewest,
			},
			expectedWhere: " WHERE is_new = true",
			expectedOrder: " ORDER BY added_at DESC, name ASC",
			expectedArgs:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, orderBy, args := buildListQuery(tt.filter)

			assert.Equal(t, tt.expectedWhere, where)
			assert.Equal(t, tt.expectedOrder, orderBy)
			assert.Equal(t, tt.expectedArgs, args)
		})
	}
}

func TestCatalogRepository_GetItem(t *testing.T) {
	addedAt := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		itemID        string
		mockDBSetup   func(sqlmock.Sqlmock)
		expectedItem  types.Item
		expectedError error
	}{
		{
			name:   "Success",
			itemID: "itemA",
			mockDBSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, .+ FROM cosmetics WHERE id = \$1`).
					WithArgs("itemA").
					WillReturnRows(sqlmock.NewRows([]string{
						"id", "name", "description", "type", "rarity", "set_text",
						"introduction_text", "image_url", "added_at", "price",
						"regular_price", "is_new", "is_for_sale", "on_promotion", "bundle_id",
					}).AddRow(
						"itemA", "Raven", "spooky", "outfit", "legendary", "Nevermore",
						"Chapter 1", "http://img/a.png", addedAt, 2000,
						2000, false, true, false, "",
					))
			},
			expectedItem: types.Item{
				ID:               "itemA",
				Name:             "Raven",
				Description:      "spooky",
				Type:             "outfit",
				Rarity:           "legendary",
				SetText:          "Nevermore",
				IntroductionText: "Chapter 1",
				ImageURL:         "http://img/a.png",
				AddedAt:          addedAt,
				Price:            2000,
				RegularPrice:     2000,
				IsForSale:        true,
			},
			expectedError: nil,
		},
		{
			name:   "NotFound",
			itemID: "ghost",
			mockDBSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, .+ FROM cosmetics WHERE id = \$1`).
					WithArgs("ghost").
					WillReturnError(sql.ErrNoRows)
			},
			expectedItem:  types.Item{},
			expectedError: ErrItemNotFound,
		},
		{
			name:   "DatabaseError",
			itemID: "itemA",
			mockDBSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, name, .+ FROM cosmetics WHERE id = \$1`).
					WithArgs("itemA").
					WillReturnError(errors.New("database error"))
			},
			expectedItem:  types.Item{},
			expectedError: ErrInternalDB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestCatalogRepository(t)
			tt.mockDBSetup(mock)

			item, err := repo.GetItem(context.Background(), tt.itemID)

			assert.Equal(t, tt.expectedError, err)
			assert.Equal(t, tt.expectedItem, item)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCatalogRepository_List(t *testing.T) {
	addedAt := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)

	repo, mock := newTestCatalogRepository(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM cosmetics WHERE type = \$1`).
		WithArgs("outfit").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(41))

	mock.ExpectQuery(`SELECT id, name, .+ FROM cosmetics WHERE type = \$1 ORDER BY name ASC LIMIT \$2 OFFSET \$3`).
		WithArgs("outfit", ItemsPerPage, 20).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "type", "rarity", "set_text",
			"introduction_text", "image_url", "added_at", "price",
			"regular_price", "is_new", "is_for_sale", "on_promotion", "bundle_id",
		}).AddRow(
			"itemB", "Drift", "", "outfit", "epic", "",
			"", "", addedAt, 1500,
			2000, true, true, true, "bundle1",
		))

	page, err := repo.List(context.Background(), ListFilter{Type: "outfit", Page: 2})

	assert.NoError(t, err)
	assert.Equal(t, Pagination{
		TotalItems:   41,
		TotalPages:   3,
		CurrentPage:  2,
		ItemsPerPage: ItemsPerPage,
	}, page.Pagination)
	assert.Len(t, page.Data, 1)
	assert.Equal(t, "itemB", page.Data[0].ID)
	assert.Equal(t, "bundle1", page.Data[0].BundleID)
	assert.True(t, page.Data[0].OnPromotion)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepository_ListCountError(t *testing.T) {
	repo, mock := newTestCatalogRepository(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM cosmetics`).
		WillReturnError(errors.New("database error"))

	_, err := repo.List(context.Background(), ListFilter{})

	assert.Equal(t, ErrInternalDB, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
