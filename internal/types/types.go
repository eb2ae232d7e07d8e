package types

import "time"

// Типы записей в журнале операций кошелька.
// В бд храним строкой, чтобы было видно глазами при отладке.
const (
	TxTypePurchase = "purchase"
	TxTypeRefund   = "refund"
	TxTypeRecharge = "recharge"
)

// Item - косметический предмет из каталога.
// Каталог заполняет синхронизатор, ядро его только читает.
type Item struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	Type             string    `json:"type,omitempty"`
	Rarity           string    `json:"rarity,omitempty"`
	SetText          string    `json:"set,omitempty"`
	IntroductionText string    `json:"introduction,omitempty"`
	ImageURL         string    `json:"imageUrl,omitempty"`
	AddedAt          time.Time `json:"addedAt"`
	Price            int       `json:"price"`
	RegularPrice     int       `json:"regularPrice"`
	IsNew            bool      `json:"isNew"`
	IsForSale        bool      `json:"isForSale"`
	OnPromotion      bool      `json:"onPromotion"`
	BundleID         string    `json:"bundleId,omitempty"` // пустая строка = не в бандле
}

// Предмет из инвентаря пользователя: сам предмет плюс
// зафиксированная на момент покупки цена.
type OwnedItem struct {
	Item
	PricePaid    int       `json:"pricePaid"`
	PurchaseDate time.Time `json:"purchasedAt"`
}

// Результат покупки. PurchasedItemIDs содержит весь набор предметов,
// который получил пользователь (для бандла - все его члены).
type PurchaseResult struct {
	NewBalance       int      `json:"newBalance"`
	PurchasedItemIDs []string `json:"purchasedItemIds"`
}

// Результат возврата.
type RefundResult struct {
	NewBalance     int      `json:"newBalance"`
	RefundAmount   int      `json:"refundAmount"`
	RemovedItemIDs []string `json:"removedItemIds"`
}

// Одна запись истории операций. BundleItemIDs - текущий состав бандла
// предмета-триггера, чтобы фронт мог показать, что именно входило в покупку.
type LedgerEntry struct {
	Type          string    `json:"type"`
	ItemID        string    `json:"itemId,omitempty"`
	ItemName      string    `json:"itemName,omitempty"`
	Amount        int       `json:"amount"`
	CreatedAt     time.Time `json:"createdAt"`
	BundleItemIDs []string  `json:"bundleItemIds,omitempty"`
}

// Профиль пользователя для личного кабинета.
type Profile struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Balance  int    `json:"balance"`
}
