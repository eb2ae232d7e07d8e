package ledger

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"shop/internal/types"

	"go.uber.org/zap"
)

const (
	// Правило хорошего тона заранее аллоцировать слайсы,
	// 10 - кажется более менее оптимальное число
	AllocSize = 10

	// Сколько записей истории отдаем за раз
	HistoryLimit = 50
)

var (
	ErrInternalDB        = errors.New("database internal error")
	ErrItemNotFound      = errors.New("item not found")
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAlreadyOwned      = errors.New("item already owned")
	ErrNotOwned          = errors.New("item not owned")
	ErrInvalidAmount     = errors.New("invalid amount")
)

type LedgerRepository struct {
	DB     *sql.DB
	Logger *zap.SugaredLogger
}

func NewLedgerRepository(db *sql.DB, l *zap.SugaredLogger) *LedgerRepository {
	return &LedgerRepository{
		DB:     db,
		Logger: l,
	}
}

/*
Обертка над транзакцией бд, чтобы не таскать BEGIN/COMMIT/ROLLBACK
руками по всем методам: выполняем замыкание, при ошибке откатываемся
(defer Rollback), при успехе коммитим. Так точно не останется
полуприменненного состояния, даже если кто-то забудет про rollback.
*/
func (lr *LedgerRepository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := lr.DB.BeginTx(ctx, nil)
	if err != nil {
		lr.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
		return ErrInternalDB
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		lr.Logger.Errorf("%v. More details: %v", ErrInternalDB, err)
		return ErrInternalDB
	}

	return nil
}

// Данные предмета, которые нужны движку: цена и принадлежность бандлу.
type saleItem struct {
	Price    int
	BundleID string
}

/*
Покупка предмета. Декомпозируем так же, как и возврат:
  - данные предмета (цена, бандл)     -> getItemForSale
  - блокировка и чтение баланса       -> lockBalance
  - хватает ли денег
  - набор покупки (бандл целиком)     -> bundleMemberIDs
  - списание                          -> debitBalance
  - выдача предметов                  -> grantOwnership
  - запись в журнал                   -> appendWalletTx

Цена списывается одна - цена предмета-триггера, сколько бы предметов
ни было в бандле. Уже имеющиеся члены бандла молча пропускаются
(ON CONFLICT DO NOTHING), а вот повторная покупка одиночного предмета -
ошибка, чтобы не списать деньги за воздух.
*/
func (lr *LedgerRepository) Purchase(ctx context.Context, userID, itemID string) (types.PurchaseResult, error) {
	var res types.PurchaseResult

	err := lr.withTx(ctx, func(tx *sql.Tx) error {
		item, err := getItemForSale(tx, itemID, lr.Logger)
		if err != nil {
			return err
		}

		balance, err := lockBalance(tx, userID, lr.Logger)
		if err != nil {
			return err
		}

		if balance < item.Price {
			return ErrInsufficientFunds
		}

		purchaseSet := []string{itemID}
		if item.BundleID != "" {
			purchaseSet, err = bundleMemberIDs(tx, item.BundleID, lr.Logger)
			if err != nil {
				return err
			}
		} else {
			// одиночный предмет повторно купить нельзя
			owned, err := isOwned(tx, userID, itemID, lr.Logger)
			if err != nil {
				return err
			}
			if owned {
				return ErrAlreadyOwned
			}
		}

		if err = debitBalance(tx, userID, item.Price, lr.Logger); err != nil {
			return err
		}

		now := time.Now()
		for _, memberID := range purchaseSet {
			if err = grantOwnership(tx, userID, memberID, item.Price, now, lr.Logger); err != nil {
				return err
			}
		}

		if err = appendWalletTx(tx, userID, itemID, types.TxTypePurchase, -item.Price, lr.Logger); err != nil {
			return err
		}

		res = types.PurchaseResult{
			NewBalance:       balance - item.Price,
			PurchasedItemIDs: purchaseSet,
		}
		return nil
	})
	if err != nil {
		return types.PurchaseResult{}, err
	}

	lr.Logger.Infof("item - %s - purchased by userID - %s -", itemID, userID)
	return res, nil
}

/*
Возврат предмета. Возвращается ровно price_paid с записи о покупке,
даже если цена в каталоге с тех пор поменялась. Если предмет из бандла -
снимаем с пользователя все члены бандла, которыми он еще владеет,
но деньги возвращаем один раз.
*/
func (lr *LedgerRepository) Refund(ctx context.Context, userID, itemID string) (types.RefundResult, error) {
	var res types.RefundResult

	err := lr.withTx(ctx, func(tx *sql.Tx) error {
		// Счет блокируем до чтения покупок. Иначе два конкурентных
		// возврата одного предмета оба увидят запись о покупке и
		// деньги вернутся дважды.
		balance, err := lockBalance(tx, userID, lr.Logger)
		if err != nil {
			return err
		}

		pricePaid, err := getPricePaid(tx, userID, itemID, lr.Logger)
		if err != nil {
			return err
		}

		bundleID, err := getBundleID(tx, itemID, lr.Logger)
		if err != nil {
			return err
		}

		refundSet := []string{itemID}
		if bundleID != "" {
			refundSet, err = ownedBundleMemberIDs(tx, userID, bundleID, lr.Logger)
			if err != nil {
				return err
			}
		}

		for _, memberID := range refundSet {
			if err = revokeOwnership(tx, userID, memberID, lr.Logger); err != nil {
				return err
			}
		}

		if err = creditBalance(tx, userID, pricePaid, lr.Logger); err != nil {
			return err
		}

		if err = appendWalletTx(tx, userID, itemID, types.TxTypeRefund, pricePaid, lr.Logger); err != nil {
			return err
		}

		res = types.RefundResult{
			NewBalance:     balance + pricePaid,
			RefundAmount:   pricePaid,
			RemovedItemIDs: refundSet,
		}
		return nil
	})
	if err != nil {
		return types.RefundResult{}, err
	}

	lr.Logger.Infof("item - %s - refunded by userID - %s -", itemID, userID)
	return res, nil
}

// Пополнение кошелька. В исходном проекте запись в журнал не делалась,
// но без нее история операций не сходится с балансом, поэтому пишем.
func (lr *LedgerRepository) Recharge(ctx context.Context, userID string, amount int) (int, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	var newBalance int

	err := lr.withTx(ctx, func(tx *sql.Tx) error {
		balance, err := lockBalance(tx, userID, lr.Logger)
		if err != nil {
			return err
		}

		if err = creditBalance(tx, userID, amount, lr.Logger); err != nil {
			return err
		}

		if err = appendWalletTx(tx, userID, "", types.TxTypeRecharge, amount, lr.Logger); err != nil {
			return err
		}

		newBalance = balance + amount
		return nil
	})
	if err != nil {
		return 0, err
	}

	return newBalance, nil
}

// Получение данных предмета для продажи. Предмет с нулевой ценой
// (или снятый с продажи) купить нельзя - для движка его "нет".
func getItemForSale(tx *sql.Tx, itemID string, l *zap.SugaredLogger) (saleItem, error) {
	q := `
	SELECT price, COALESCE(bundle_id, '')
	FROM cosmetics
	WHERE id = $1
	`
	var item saleItem
	err := tx.QueryRow(q, itemID).Scan(&item.Price, &item.BundleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.Errorf("%v. More details: %v", ErrItemNotFound, err)
			return saleItem{}, ErrItemNotFound
		}

		l.Errorf("%v. More details: %v", ErrInternalDB, err)
		return saleItem{}, ErrInternalDB
	}

	if item.Price <= 0 {
		l.Errorf("%v. More details: item - %s - is not for sale", ErrItemNotFound, itemID)
		return saleItem{}, ErrItemNotFound
	}

	return item, nil
}

// Блокировка счета на время транзакции.
// FOR UPDATE сериализует конкурентные покупки одного пользователя:
// вторая транзакция повиснет тут и увидит уже списанный баланс.
func lockBalance(tx *sql.Tx, userID string, l *zap.SugaredLogger) (int, error) {
	q := `
	SELECT balance
	FROM users
	WHERE id = $1
	FOR UPDATE
	`
	var balance int
	err := tx.QueryRow(q, userID).Scan(&balance)
	if err != nil {
		// Аутентифицированный пользователь без счета - это уже не 4xx,
		// а сломанные данные
		if errors.Is(err, sql.ErrNoRows) {
			l.Errorf("%v. More details: %v", ErrAccountNotFound, err)
			return 0, ErrAccountNotFound
		}

		l.Errorf("%v. More details: %v", ErrInternalDB, err)
		return 0, ErrInternalDB
	}

	return balance, nil
}

// Весь состав бандла по его идентификатору.
func bundleMemberIDs(tx *sql.Tx, bundleID string, l *zap.SugaredLogger) ([]string, error) {
	q := `
	SELECT id
	FROM cosmetics
	WHERE bundle_id = $1
	ORDER BY id
	`
	return queryIDs(tx, q, l, bundleID)
}

// Члены бандла, которыми пользователь владеет сейчас.
func ownedBundleMemberIDs(tx *sql.Tx, userID, bundleID string, l *zap.SugaredLogger) ([]string, error) {
	q := `
	SELECT p.item_id
	FROM purchases p
	JOIN cosmetics c ON c.id = p.item_id
	WHERE p.user_id = $1 AND c.bundle_id = $2
	ORDER BY p.item_id
	`
	return queryIDs(tx, q, l, userID, bundleID)
}

// Общий хелпер для запросов, возвращающих колонку идентификаторов.
func queryIDs(tx *sql.Tx, q string, l *zap.SugaredLogger, args ...interface{}) ([]string, error) {
	rows, err := tx.Query(q, args...)
	if err != nil {
		l.Errorf("%v. More details: %v", ErrInternalDB, err)
		return nil, ErrInternalDB
	}
	defer func() {
		err = rows.Close()
		if err != nil {
			l.Errorf("%v. More details: %v", ErrInternalDB, err)
		}
	}()

	ids := make([]string, 0, AllocSize)

	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			l.Errorf("%v. More details: %v", ErrInternalDB, err)
			return nil, ErrInternalDB
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		l.Errorf("%v. More details: %v", ErrInternalDB, err)
		return nil, ErrInternalDB
	}

	return ids, nil
}

// Проверка владения предметом.
func isOwned(tx *sql.Tx, userID, itemID string, l *zap.SugaredLogger) (bool, error) {
	q := `
	SELECT item_id
	FROM purchases
	WHERE user_id = $1 AND item_id = $2
	`
	var id string
	err := tx.QueryRow(q, userID, itemID).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		l.Errorf("%v. More details: %v", ErrInternalDB, err)
		return false, ErrInternalDB
	}

	return true, nil
}

// Зафиксированная при покупке цена. Ее отсутствие = предметом не владеют.
func getPricePaid(tx *sql.Tx, userID, itemID string, l *zap.SugaredLogger) (int, error) {
	q := `
	SELECT price_paid
	FROM purchases
	WHERE user_id = $1 AND item_id = $2
	`
	var pricePaid int
	err := tx.QueryRow(q, userID, itemID).Scan(&pricePaid)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			l.Errorf("%v. More details: %v", ErrNotOwned, err)
			return 0, ErrNotOwned
		}

		l.Errorf("%v. More details: %v", ErrInternalDB, err)
		return 0, ErrInternalDB
	}

	return pricePaid, nil
}

// Бандл предмета. Предмет мог пропасть из каталога после покупки,
// тогда считаем его одиночным и возвращаем пустую строку.
func getBundleID(tx *sql.Tx, itemID string, l *zap.SugaredLogger) (string, error) {
	q := `
	SELECT COALESCE(bundle_id, '')
	FROM cosmetics
	WHERE id = $1
	`
	var bundleID string
	err := tx.QueryRow(q, itemID).Scan(&bundleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		l.Errorf("%v. More details: %v", ErrInternalDB, err)
		return "", ErrInternalDB
	}

	return bundleID, nil
}

// Списание со счета средств
func debitBalance(tx *sql.Tx, userID string, amount int, l *zap.SugaredLogger) error {
	q := `
	UPDATE users
	SET balance = balance - $1
	WHERE id = $2
	`
	_, err := tx.Exec(q, amount, userID)
	if err != nil {
		l.Errorf("%v. More details: %v", ErrInternalDB, err)
		return ErrInternalDB
	}

	return nil
}

// Зачисление на счет средств
func creditBalance(tx *sql.Tx, userID string, amount int, l *zap.SugaredLogger) error {
	q := `
	UPDATE users
	SET balance = balance + $1
	WHERE id = $2
	`
	_, err := tx.Exec(q, amount, userID)
	if err != nil {
		l.Errorf("%v. More details: %v", ErrInternalDB, err)
		return ErrInternalDB
	}

	return nil
}

/*
Выдача предмета пользователю. ON CONFLICT DO NOTHING делает вставку
идемпотентной: при покупке бандла уже имеющиеся предметы молча
пропускаются, а не валят всю транзакцию. price_paid и purchase_date
фиксируются на момент покупки и дальше не меняются.
*/
func grantOwnership(
	tx *sql.Tx,
	userID, itemID string,
	pricePaid int,
	purchaseDate time.Time,
	l *zap.SugaredLogger,
) error {
	q := `
	INSERT INTO purchases (user_id, item_id, price_paid, purchase_date)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (user_id, item_id) DO NOTHING
	`
	_, err := tx.Exec(q, userID, itemID, pricePaid, purchaseDate)
	if err != nil {
		l.Errorf("%v. More details: %v", ErrInternalDB, err)
		return ErrInternalDB
	}

	return nil
}

// Снятие владения предметом при возврате.
func revokeOwnership(tx *sql.Tx, userID, itemID string, l *zap.SugaredLogger) error {
	q := `
	DELETE FROM purchases
	WHERE user_id = $1 AND item_id = $2
	`
	_, err := tx.Exec(q, userID, itemID)
	if err != nil {
		l.Errorf("%v. More details: %v", ErrInternalDB, err)
		return ErrInternalDB
	}

	return nil
}

// Запись в журнал операций. Журнал только пополняется, записи в нем
// никогда не изменяются и не удаляются. Для покупки бандла пишется
// одна запись с предметом-триггером, не по записи на каждый член.
func appendWalletTx(
	tx *sql.Tx,
	userID, itemID, txType string,
	amount int,
	l *zap.SugaredLogger,
) error {
	q := `
	INSERT INTO wallet_transactions (user_id, item_id, type, amount)
	VALUES ($1, $2, $3, $4)
	`
	// у пополнения нет предмета
	var item sql.NullString
	if itemID != "" {
		item = sql.NullString{String: itemID, Valid: true}
	}

	_, err := tx.Exec(q, userID, item, txType, amount)
	if err != nil {
		l.Errorf("%v. More details: %v", ErrInternalDB, err)
		return ErrInternalDB
	}

	return nil
}
