package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

var ErrSyncUpstream = errors.New("upstream cosmetics api error")

const syncRequestTimeout = 30 * time.Second

/*
Syncer периодически перекачивает каталог из внешнего API в нашу бд.
Хэш последней выгрузки - это его собственное состояние (раньше он жил
глобальной переменной на весь процесс), поэтому храним его полем под
мьютексом и обновляем только после успешной синхронизации.
*/
type Syncer struct {
	DB      *sql.DB
	Logger  *zap.SugaredLogger
	Client  *http.Client
	BaseURL string

	mu       sync.Mutex
	lastHash string
}

func NewSyncer(db *sql.DB, l *zap.SugaredLogger, baseURL string) *Syncer {
	return &Syncer{
		DB:      db,
		Logger:  l,
		Client:  &http.Client{Timeout: syncRequestTimeout},
		BaseURL: baseURL,
	}
}

// Структуры под json внешнего API. Берем только нужные поля.
type apiItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        struct {
		Value string `json:"value"`
	} `json:"type"`
	Rarity struct {
		Value string `json:"value"`
	} `json:"rarity"`
	Set struct {
		Text string `json:"text"`
	} `json:"set"`
	Introduction struct {
		Text string `json:"text"`
	} `json:"introduction"`
	Images struct {
		Icon      string `json:"icon"`
		SmallIcon string `json:"smallIcon"`
	} `json:"images"`
	Added time.Time `json:"added"`
}

type allItemsResponse struct {
	Data []apiItem `json:"data"`
}

type shopEntry struct {
	OfferID      string    `json:"offerId"`
	FinalPrice   int       `json:"finalPrice"`
	RegularPrice int       `json:"regularPrice"`
	Items        []apiItem `json:"items"`
	Tracks       []apiItem `json:"tracks"`
	BrItems      []apiItem `json:"brItems"`
}

type shopResponse struct {
	Data struct {
		Entries []shopEntry `json:"entries"`
	} `json:"data"`
}

type newItemsResponse struct {
	Data struct {
		Hashes struct {
			BR string `json:"br"`
		} `json:"hashes"`
		Items struct {
			BR     []apiItem `json:"br"`
			Tracks []apiItem `json:"tracks"`
			Lego   []apiItem `json:"lego"`
		} `json:"items"`
	} `json:"data"`
}

// Start крутит синхронизацию по тикеру до отмены контекста.
// Первый прогон делаем сразу, не дожидаясь первого тика.
func (s *Syncer) Start(ctx context.Context, interval time.Duration) {
	if err := s.Run(ctx); err != nil {
		s.Logger.Errorf("catalog sync failed: %v", err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Run(ctx); err != nil {
				s.Logger.Errorf("catalog sync failed: %v", err)
			}
		}
	}
}

/*
Один прогон синхронизации, четыре этапа как в исходном API:
 1. залить/обновить все предметы
 2. сбросить статус магазина (цены, бандлы, флаги)
 3. применить текущий магазин (цены, промо, bundle_id)
 4. отметить новинки

Перед этим читаем хэш новинок: если он не поменялся с прошлого раза,
выгрузка та же и гонять все четыре этапа незачем.
*/
func (s *Syncer) Run(ctx context.Context) error {
	var newItems newItemsResponse
	if err := s.fetch(ctx, "/v2/cosmetics/new", &newItems); err != nil {
		return err
	}

	s.mu.Lock()
	skip := s.lastHash != "" && s.lastHash == newItems.Data.Hashes.BR
	s.mu.Unlock()

	if skip {
		s.Logger.Infof("catalog sync skipped, upstream hash unchanged")
		return nil
	}

	if err := s.upsertAllItems(ctx); err != nil {
		return err
	}

	if err := s.resetShopStatus(ctx); err != nil {
		return err
	}

	if err := s.applyShop(ctx); err != nil {
		return err
	}

	if err := s.markNewItems(ctx, newItems); err != nil {
		return err
	}

	s.mu.Lock()
	s.lastHash = newItems.Data.Hashes.BR
	s.mu.Unlock()

	s.Logger.Infof("catalog sync finished")
	return nil
}

func (s *Syncer) fetch(ctx context.Context, path string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+path, nil)
	if err != nil {
		s.Logger.Errorf("%v. More details: %v", ErrSyncUpstream, err)
		return ErrSyncUpstream
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		s.Logger.Errorf("%v. More details: %v", ErrSyncUpstream, err)
		return ErrSyncUpstream
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.Logger.Errorf("%v. More details: %s returned %d", ErrSyncUpstream, path, resp.StatusCode)
		return ErrSyncUpstream
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		s.Logger.Errorf("%v. More details: %v", ErrSyncUpstream, err)
		return ErrSyncUpstream
	}

	return nil
}

// Этап 1: вся база предметов.
func (s *Syncer) upsertAllItems(ctx context.Context) error {
	var all allItemsResponse
	if err := s.fetch(ctx, "/v2/cosmetics/br", &all); err != nil {
		return err
	}

	q := `
	INSERT INTO cosmetics (id, name, description, type, rarity, set_text,
	                       introduction_text, image_url, added_at, regular_price)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name, description = EXCLUDED.description,
		type = EXCLUDED.type, rarity = EXCLUDED.rarity,
		set_text = EXCLUDED.set_text, introduction_text = EXCLUDED.introduction_text,
		image_url = EXCLUDED.image_url, added_at = EXCLUDED.added_at
	`
	for _, item := range all.Data {
		imageURL := item.Images.Icon
		if imageURL == "" {
			imageURL = item.Images.SmallIcon
		}

		_, err := s.DB.ExecContext(ctx, q,
			item.ID, item.Name, item.Description,
			item.Type.Value, item.Rarity.Value, item.Set.Text,
			item.Introduction.Text, imageURL, item.Added,
		)
		if err != nil {
			s.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
			return ErrInternalDB
		}
	}

	s.Logger.Infof("catalog sync: %d items upserted", len(all.Data))
	return nil
}

// Этап 2: перед применением магазина все снимается с продажи.
func (s *Syncer) resetShopStatus(ctx context.Context) error {
	q := `
	UPDATE cosmetics
	SET price = 0, regular_price = 0, is_new = false,
	    is_for_sale = false, on_promotion = false, bundle_id = NULL
	`
	_, err := s.DB.ExecContext(ctx, q)
	if err != nil {
		s.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
		return ErrInternalDB
	}

	return nil
}

// Этап 3: текущий магазин - цены, промо и бандлы.
// Несколько предметов в одной entry = бандл, его id берем из offerId.
func (s *Syncer) applyShop(ctx context.Context) error {
	var shop shopResponse
	if err := s.fetch(ctx, "/v2/shop", &shop); err != nil {
		return err
	}

	q := `
	UPDATE cosmetics
	SET price = $1, is_for_sale = true, on_promotion = $2,
	    regular_price = $3, bundle_id = $4
	WHERE id = $5
	`
	updated := 0
	for _, entry := range shop.Data.Entries {
		if entry.FinalPrice <= 0 {
			continue
		}

		onPromotion := entry.FinalPrice < entry.RegularPrice

		entryItems := make([]apiItem, 0, len(entry.Items)+len(entry.Tracks)+len(entry.BrItems))
		entryItems = append(entryItems, entry.Items...)
		entryItems = append(entryItems, entry.Tracks...)
		entryItems = append(entryItems, entry.BrItems...)

		var bundleID sql.NullString
		if len(entryItems) > 1 {
			bundleID = sql.NullString{String: entry.OfferID, Valid: true}
		}

		for _, item := range entryItems {
			_, err := s.DB.ExecContext(ctx, q,
				entry.FinalPrice, onPromotion, entry.RegularPrice, bundleID, item.ID,
			)
			if err != nil {
				s.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
				return ErrInternalDB
			}
			updated++
		}
	}

	s.Logger.Infof("catalog sync: %d items priced", updated)
	return nil
}

// Этап 4: флаг новинки.
func (s *Syncer) markNewItems(ctx context.Context, newItems newItemsResponse) error {
	q := `
	UPDATE cosmetics
	SET is_new = true
	WHERE id = $1
	`
	marked := 0
	for _, group := range [][]apiItem{
		newItems.Data.Items.BR,
		newItems.Data.Items.Tracks,
		newItems.Data.Items.Lego,
	} {
		for _, item := range group {
			if _, err := s.DB.ExecContext(ctx, q, item.ID); err != nil {
				s.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
				return ErrInternalDB
			}
			marked++
		}
	}

	s.Logger.Infof("catalog sync: %d items marked new", marked)
	return nil
}

// LastHash нужен только для самопроверок и логов.
func (s *Syncer) LastHash() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastHash
}
