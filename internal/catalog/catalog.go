package catalog

import (
	"context"
	"errors"

	"shop/internal/types"
)

// Сколько предметов отдаем на одной странице каталога
const ItemsPerPage = 20

var (
	ErrInternalDB   = errors.New("database internal error")
	ErrItemNotFound = errors.New("item not found")
)

// Ключи сортировки каталога. Никаких строк от клиента в ORDER BY
// не попадает - хэндлер переводит query-параметр в этот enum.
type SortKey int

const (
	SortByName SortKey = iota
	SortByPriceAsc
	SortByPriceDesc
	SortByNewest
)

/*
Типизированный набор фильтров каталога. Раньше такие вещи любят
собирать конкатенацией строк - мы вместо этого перечисляем все
возможные критерии полями и переводим их в SQL билдером с
плейсхолдерами (см. buildListQuery).
*/
type ListFilter struct {
	Type        string // тип предмета (outfit, emote, ...)
	Rarity      string
	Search      string // подстрока имени, без учета регистра
	OnlyNew     bool
	OnlyForSale bool
	OnlyPromo   bool
	Sort        SortKey
	Page        int // страницы с единицы
}

// Страница каталога с метаданными пагинации для фронта.
type ListPage struct {
	Data       []types.Item `json:"data"`
	Pagination Pagination   `json:"pagination"`
}

type Pagination struct {
	TotalItems   int `json:"totalItems"`
	TotalPages   int `json:"totalPages"`
	CurrentPage  int `json:"currentPage"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// Catalog - контракт витрины для http-слоя.
type Catalog interface {
	GetItem(ctx context.Context, itemID string) (types.Item, error)
	List(ctx context.Context, f ListFilter) (ListPage, error)
}
