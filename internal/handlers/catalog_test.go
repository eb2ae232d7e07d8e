package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shop/internal/catalog"
	"shop/internal/types"

	"github.com/golang/mock/gomock"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func NewCtrlAndCatalog(t *testing.T) (*catalog.MockCatalog, *CatalogHandlers) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockCatalog := catalog.NewMockCatalog(ctrl)
	logger := zap.NewNop().Sugar()

	handler := &CatalogHandlers{
		Catalog: mockCatalog,
		Logger:  logger,
	}

	return mockCatalog, handler
}

func TestCatalogHandlers_List(t *testing.T) {
	tests := map[string]func(t *testing.T){
		"successful list with filters": func(t *testing.T) {
			mockCatalog, handler := NewCtrlAndCatalog(t)

			expectedFilter := catalog.ListFilter{
				Type:        "outfit",
				OnlyForSale: true,
				Sort:        catalog.SortByPriceDesc,
				Page:        2,
			}
			page := catalog.ListPage{
				Data: []types.Item{{ID: "item1", Name: "Item One", Price: 300}},
				Pagination: catalog.Pagination{
					TotalItems:   41,
					TotalPages:   3,
					CurrentPage:  2,
					ItemsPerPage: catalog.ItemsPerPage,
				},
			}
			mockCatalog.EXPECT().
				List(gomock.Any(), expectedFilter).
				Return(page, nil).
				Times(1)

			req := httptest.NewRequest("GET", "/api/cosmetics?type=outfit&for_sale=true&sort=price_desc&page=2", nil)
			w := httptest.NewRecorder()

			handler.List(w, req)

			resp := w.Result()
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Errorf("expected status code %d, got %d", http.StatusOK, resp.StatusCode)
			}

			var response catalog.ListPage
			if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if response.Pagination.TotalPages != 3 {
				t.Errorf("expected 3 total pages, got %d", response.Pagination.TotalPages)
			}
		},

		"defaults without query params": func(t *testing.T) {
			mockCatalog, handler := NewCtrlAndCatalog(t)

			mockCatalog.EXPECT().
				List(gomock.Any(), catalog.ListFilter{Sort: catalog.SortByName, Page: 1}).
				Return(catalog.ListPage{Data: []types.Item{}}, nil).
				Times(1)

			req := httptest.NewRequest("GET", "/api/cosmetics", nil)
			w := httptest.NewRecorder()

			handler.List(w, req)

			resp := w.Result()
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Errorf("expected status code %d, got %d", http.StatusOK, resp.StatusCode)
			}
		},

		"invalid page": func(t *testing.T) {
			_, handler := NewCtrlAndCatalog(t)

			req := httptest.NewRequest("GET", "/api/cosmetics?page=zero", nil)
			w := httptest.NewRecorder()

			handler.List(w, req)

			resp := w.Result()
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("expected status code %d, got %d", http.StatusBadRequest, resp.StatusCode)
			}
		},
	}

	for name, test := range tests {
		t.Run(name, test)
	}
}

func TestCatalogHandlers_GetItem(t *testing.T) {
	tests := map[string]func(t *testing.T){
		"successful item retrieval": func(t *testing.T) {
			mockCatalog, handler := NewCtrlAndCatalog(t)

			item := types.Item{ID: "item1", Name: "Item One", Price: 300}
			mockCatalog.EXPECT().
				GetItem(gomock.Any(), "item1").
				Return(item, nil).
				Times(1)

			req := httptest.NewRequest("GET", "/api/cosmetics/item1", nil)
			req = mux.SetURLVars(req, map[string]string{"id": "item1"})
			w := httptest.NewRecorder()

			handler.GetItem(w, req)

			resp := w.Result()
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				t.Errorf("expected status code %d, got %d", http.StatusOK, resp.StatusCode)
			}

			var response types.Item
			if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if response.ID != "item1" {
				t.Errorf("expected item id %q, got %q", "item1", response.ID)
			}
		},

		"item not found": func(t *testing.T) {
			mockCatalog, handler := NewCtrlAndCatalog(t)

			mockCatalog.EXPECT().
				GetItem(gomock.Any(), "missing").
				Return(types.Item{}, catalog.ErrItemNotFound).
				Times(1)

			req := httptest.NewRequest("GET", "/api/cosmetics/missing", nil)
			req = mux.SetURLVars(req, map[string]string{"id": "missing"})
			w := httptest.NewRecorder()

			handler.GetItem(w, req)

			resp := w.Result()
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusNotFound {
				t.Errorf("expected status code %d, got %d", http.StatusNotFound, resp.StatusCode)
			}
		},
	}

	for name, test := range tests {
		t.Run(name, test)
	}
}
