package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
	"github.com/osse101/RestoLoyalty_Go/internal/logger"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// RewardBody is the reward granted by a claim
type RewardBody struct {
	Type   domain.RewardType `json:"type"`
	Amount int64             `json:"amount"`
}

// ClaimResponse is returned by POST /quests/{id}/claim
type ClaimResponse struct {
	Success bool       `json:"success"`
	Reward  RewardBody `json:"reward"`
}

// PurchaseResponse is returned by POST /shop/purchase
type PurchaseResponse struct {
	Success bool                 `json:"success"`
	Item    domain.InventoryItem `json:"item"`
	Renewed bool                 `json:"renewed"`
	Tokens  int64                `json:"tokens"`
}

// DataResponse wraps list and entity payloads
type DataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

func respondData(w http.ResponseWriter, status int, data interface{}) {
	respondJSON(w, status, DataResponse{Success: true, Data: data})
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Success: false, Error: message})
}

// respondServiceError maps err to a status and user message and logs it.
// Internal failures are logged at Error and answered with a generic message.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgRequestFailed, "path", r.URL.Path, "error", err)
	} else {
		log.Warn(LogMsgBusinessReject, "path", r.URL.Path, "kind", domain.KindOf(err), "error", err)
	}
	respondError(w, status, msg)
}

// mapServiceErrorToUserMessage converts a service error into an HTTP status and a
// user-facing message
func mapServiceErrorToUserMessage(err error) (int, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	case errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized, ErrMsgSessionExpiredError
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, ErrMsgUnauthorizedError
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, ErrMsgUserNotFoundError
	case errors.Is(err, domain.ErrQuestNotFound):
		return http.StatusNotFound, ErrMsgQuestNotFoundError
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, ErrMsgItemNotFoundError
	case errors.Is(err, domain.ErrQuestNotStarted):
		return http.StatusBadRequest, ErrMsgQuestNotStartedError
	case errors.Is(err, domain.ErrQuestNotCompleted):
		return http.StatusBadRequest, ErrMsgQuestNotCompletedErr
	case errors.Is(err, domain.ErrQuestAlreadyClaimed):
		return http.StatusBadRequest, ErrMsgAlreadyClaimedError
	case errors.Is(err, domain.ErrAlreadyOwned):
		return http.StatusBadRequest, ErrMsgAlreadyOwnedError
	case errors.Is(err, domain.ErrItemNotActive):
		return http.StatusBadRequest, ErrMsgItemNotActiveError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgInsufficientFundsErr
	case errors.Is(err, domain.ErrNegativeBalance):
		return http.StatusBadRequest, ErrMsgNegativeBalanceError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	default:
		return http.StatusInternalServerError, ErrMsgGenericServerError
	}
}
