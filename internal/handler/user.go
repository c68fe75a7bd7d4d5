package handler

import (
	"net/http"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
	"github.com/osse101/RestoLoyalty_Go/internal/user"
)

// BalanceResponse carries balances, tier and recent ledger entries
type BalanceResponse struct {
	Success bool `json:"success"`
	domain.Balance
}

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{userService: userService}
}

// HandleBalance returns the caller's balances
// @Summary Caller balance
// @Tags user
// @Produce json
// @Security BearerAuth
// @Success 200 {object} BalanceResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/user/balance [get]
func (h *UserHandler) HandleBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetSessionUserID(r, w)
	if !ok {
		return
	}
	balance, err := h.userService.Balance(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, BalanceResponse{Success: true, Balance: *balance})
}
