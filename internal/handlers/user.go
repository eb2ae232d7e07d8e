package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"shop/internal/session"
	"shop/internal/user"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var validate = validator.New()

type UserHandlers struct {
	UserRepo user.UserRepo
	Sessions session.SessionManagerRepo
	Logger   *zap.SugaredLogger
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=5,max=32"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

func (h *UserHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendErrorTo(w, ErrInvalidBody, http.StatusBadRequest, h.Logger)
		return
	}

	if err := validate.Struct(req); err != nil {
		SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}

	u, err := h.UserRepo.Register(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) || errors.Is(err, user.ErrUsernameTaken) {
			SendErrorTo(w, err, http.StatusConflict, h.Logger)
			return
		}

		SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	sess, token, err := h.Sessions.Create(u.UserID, u.Username)
	if err != nil {
		SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(AuthResponse{Token: token}); err != nil {
		SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("session - %s - successfully created for new userID - %s -", sess.ID, sess.UserID)
}

func (h *UserHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendErrorTo(w, ErrInvalidBody, http.StatusBadRequest, h.Logger)
		return
	}

	if err := validate.Struct(req); err != nil {
		SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}

	u, err := h.UserRepo.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrBadCredentials) {
			SendErrorTo(w, err, http.StatusUnauthorized, h.Logger)
			return
		}

		SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	sess, token, err := h.Sessions.Create(u.UserID, u.Username)
	if err != nil {
		SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(AuthResponse{Token: token}); err != nil {
		SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	h.Logger.Infof("session - %s - successfully created for userID - %s -", sess.ID, sess.UserID)
}

func (h *UserHandlers) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.SessionFromContext(r.Context())
	if !ok {
		SendErrorTo(w, session.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	info, err := h.UserRepo.Info(r.Context(), sess.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}

		SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	SendJSONTo(w, info, h.Logger)
	h.Logger.Infof("successfully received information for userID - %s -", sess.UserID)
}

type UpdateProfileRequest struct {
	Username string `json:"username" validate:"omitempty,min=5,max=32"`
	Password string `json:"password" validate:"omitempty,min=6,max=72"`
}

func (h *UserHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.SessionFromContext(r.Context())
	if !ok {
		SendErrorTo(w, session.ErrNoAuth, http.StatusUnauthorized, h.Logger)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		SendErrorTo(w, ErrInvalidBody, http.StatusBadRequest, h.Logger)
		return
	}

	if err := validate.Struct(req); err != nil {
		SendErrorTo(w, err, http.StatusBadRequest, h.Logger)
		return
	}

	// Пустой запрос менять нечего
	if req.Username == "" && req.Password == "" {
		SendErrorTo(w, ErrInvalidBody, http.StatusBadRequest, h.Logger)
		return
	}

	err := h.UserRepo.UpdateProfile(r.Context(), sess.UserID, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			SendErrorTo(w, err, http.StatusConflict, h.Logger)
			return
		}
		if errors.Is(err, user.ErrUserNotFound) {
			SendErrorTo(w, err, http.StatusNotFound, h.Logger)
			return
		}

		SendErrorTo(w, err, http.StatusInternalServerError, h.Logger)
		return
	}

	w.WriteHeader(http.StatusOK)
	h.Logger.Infof("profile updated successfully for userID - %s -", sess.UserID)
}
