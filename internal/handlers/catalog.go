package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"shop/internal/catalog"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type CatalogHandlers struct {
	Catalog catalog.Catalog
	Logger  *zap.SugaredLogger
}

// parseSort переводит query-параметр в ключ сортировки. Все
// незнакомое молча превращается в сортировку по имени.
func parseSort(s string) catalog.SortKey {
	switch s {
	case "price_asc":
		return catalog.SortByPriceAsc
	case "price_desc":
		return catalog.SortByPriceDesc
	case "newest":
		return catalog.SortByNewest
	default:
		return catalog.SortByName
	}
}

func (h *CatalogHandlers) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := 1
	if p := q.Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			SendErrorTo(w, ErrInvalidPage, http.StatusBadRequest, h.Logger)
			return
		}
		page = n
	}

	f := catalog.ListFilter{
		Type:        q.Get("type"),
		Rarity:      q.Get("rarity"),
		Search:      q.Get("search"),
		OnlyNew:     q.Get("new") == "true",
		OnlyForSale: q.Get("for_sale") == "true",
		OnlyPromo:   q.Get("promo") == "true",
		Sort:        parseSort(q.Get("sort")),
		Page:        page,
	}

	listPage, err := h.Catalog.List(r.Context(), f)
	if err != nil {
		SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	SendJSONTo(w, listPage, h.Logger)
}

func (h *CatalogHandlers) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID := mux.Vars(r)["id"]
	if itemID == "" {
		SendErrorTo(w, ErrInvalidItemID, http.StatusBadRequest, h.Logger)
		return
	}

	item, err := h.Catalog.GetItem(r.Context(), itemID)
	if err != nil {
		if errors.Is(err, catalog.ErrItemNotFound) {
			SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}

		SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	SendJSONTo(w, item, h.Logger)
}
