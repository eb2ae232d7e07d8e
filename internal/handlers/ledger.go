package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"shop/internal/ledger"
	"shop/internal/session"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type LedgerHandlers struct {
	Ledger ledger.Ledger
	Logger *zap.SugaredLogger
}

func (h *LedgerHandlers) Purchase(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.SessionFromContext(r.Context())
	if !ok {
		SendErrorTo(w, session.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	itemID := mux.Vars(r)["id"]
	if itemID == "" {
		SendErrorTo(w, ErrInvalidItemID, http.StatusBadRequest, h.Logger)
		return
	}

	res, err := h.Ledger.Purchase(r.Context(), sess.UserID, itemID)
	if err != nil {
		if errors.Is(err, ledger.ErrAlreadyOwned) {
			SendErrorTo(w, err, http.StatusConflict, h.Logger)
			return
		}
		if errors.Is(err, ledger.ErrItemNotFound) {
			SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}
		if errors.Is(err, ledger.ErrInsufficientFunds) {
			SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
			return
		}

		// счет аутентифицированного юзера обязан существовать,
		// его отсутствие - сломанные данные, а не ошибка клиента
		SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	SendJSONTo(w, res, h.Logger)
	h.Logger.Infof("item - %s - purchased successfully for userID - %s -", itemID, sess.UserID)
}

func (h *LedgerHandlers) Refund(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.SessionFromContext(r.Context())
	if !ok {
		SendErrorTo(w, session.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	itemID := mux.Vars(r)["id"]
	if itemID == "" {
		SendErrorTo(w, ErrInvalidItemID, http.StatusBadRequest, h.Logger)
		return
	}

	res, err := h.Ledger.Refund(r.Context(), sess.UserID, itemID)
	if err != nil {
		if errors.Is(err, ledger.ErrNotOwned) {
			SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
			return
		}

		SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	SendJSONTo(w, res, h.Logger)
	h.Logger.Infof("item - %s - refunded successfully for userID - %s -", itemID, sess.UserID)
}

type RechargeRequest struct {
	Amount int `json:"amount" validate:"required,gt=0"`
}

type RechargeResponse struct {
	NewBalance int `json:"new_balance"`
}

func (h *LedgerHandlers) Recharge(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.SessionFromContext(r.Context())
	if !ok {
		SendErrorTo(w, session.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	var req RechargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendErrorTo(w, ErrInvalidBody, http.StatusBadRequest, h.Logger)
		return
	}

	if err := validate.Struct(req); err != nil {
		SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}

	balance, err := h.Ledger.Recharge(r.Context(), sess.UserID, req.Amount)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidAmount) {
			SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
			return
		}

		SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	SendJSONTo(w, RechargeResponse{NewBalance: balance}, h.Logger)
	h.Logger.Infof("balance recharged by %d for userID - %s -", req.Amount, sess.UserID)
}

func (h *LedgerHandlers) MyItems(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.SessionFromContext(r.Context())
	if !ok {
		SendErrorTo(w, session.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	items, err := h.Ledger.OwnedItems(r.Context(), sess.UserID)
	if err != nil {
		SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	SendJSONTo(w, items, h.Logger)
}

func (h *LedgerHandlers) PurchasedIDs(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.SessionFromContext(r.Context())
	if !ok {
		SendErrorTo(w, session.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	ids, err := h.Ledger.OwnedItemIDs(r.Context(), sess.UserID)
	if err != nil {
		SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	SendJSONTo(w, ids, h.Logger)
}

func (h *LedgerHandlers) History(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.SessionFromContext(r.Context())
	if !ok {
		SendErrorTo(w, session.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	entries, err := h.Ledger.History(r.Context(), sess.UserID)
	if err != nil {
		SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	SendJSONTo(w, entries, h.Logger)
}
