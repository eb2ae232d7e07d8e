package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

var (
	ErrInvalidBody   = errors.New("invalid request body")
	ErrInvalidItemID = errors.New("invalid item id")
	ErrInvalidPage   = errors.New("invalid page number")
)

type ServerError struct {
	Errors string `json:"errors"`
}

func (e *ServerError) Error() string {
	return e.Errors
}

func NewErrorServer(err error) ServerError {
	return ServerError{
		Errors: err.Error(),
	}
}

func SendErrorTo(w http.ResponseWriter, err error, statusCode int, logger *zap.SugaredLogger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if errEncode := json.NewEncoder(w).Encode(NewErrorServer(err)); errEncode != nil {
		logger.Error(errEncode)
	}
}

func SendJSONTo(w http.ResponseWriter, v interface{}, logger *zap.SugaredLogger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error(err)
	}
}
