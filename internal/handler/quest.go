package handler

import (
	"net/http"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
	"github.com/osse101/RestoLoyalty_Go/internal/quest"
)

// QuestBoardResponse is the caller's quest board
type QuestBoardResponse struct {
	Success bool `json:"success"`
	domain.QuestBoard
}

type QuestHandler struct {
	questService quest.Service
}

func NewQuestHandler(questService quest.Service) *QuestHandler {
	return &QuestHandler{questService: questService}
}

// HandleListQuests returns the active quests merged with the caller's progress
// @Summary List quests
// @Description Active quest catalog with the caller's progress, loyalty points and tier
// @Tags quests
// @Produce json
// @Security BearerAuth
// @Success 200 {object} QuestBoardResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/quests [get]
func (h *QuestHandler) HandleListQuests(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetSessionUserID(r, w)
	if !ok {
		return
	}

	board, err := h.questService.ListForUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, QuestBoardResponse{Success: true, QuestBoard: *board})
}

// HandleClaim credits the reward of a completed quest
// @Summary Claim quest reward
// @Tags quests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Quest ID"
// @Success 200 {object} ClaimResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/quests/{id}/claim [post]
func (h *QuestHandler) HandleClaim(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetSessionUserID(r, w)
	if !ok {
		return
	}
	questID, ok := GetIDParam(r, w)
	if !ok {
		return
	}

	result, err := h.questService.Claim(r.Context(), userID, questID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, ClaimResponse{
		Success: true,
		Reward:  RewardBody{Type: result.RewardType, Amount: result.Amount},
	})
}
