package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
	"github.com/osse101/RestoLoyalty_Go/internal/eventlog"
	"github.com/osse101/RestoLoyalty_Go/internal/quest"
	"github.com/osse101/RestoLoyalty_Go/internal/shop"
	"github.com/osse101/RestoLoyalty_Go/internal/user"
)

// Admin event listing bounds
const (
	DefaultEventLimit = 50
	MaxEventLimit     = 500
)

// SessionIssuer creates bearer sessions
type SessionIssuer interface {
	Issue(ctx context.Context, userID string, ttl time.Duration) (*domain.Session, error)
}

// ActivityResponse lists quests completed by an activity report
type ActivityResponse struct {
	Success   bool  `json:"success"`
	Completed []int `json:"completed"`
}

// AdminHandler serves the API-key protected back office
type AdminHandler struct {
	quests   quest.Service
	shop     shop.Service
	users    user.Service
	sessions SessionIssuer
	events   eventlog.Service
}

func NewAdminHandler(quests quest.Service, shopService shop.Service, users user.Service, sessions SessionIssuer, events eventlog.Service) *AdminHandler {
	return &AdminHandler{
		quests:   quests,
		shop:     shopService,
		users:    users,
		sessions: sessions,
		events:   events,
	}
}

// HandleRecordActivity advances quest progress for completed orders
// @Summary Record activity
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body ActivityRequest true "Activity"
// @Success 200 {object} ActivityResponse
// @Router /api/v1/admin/activity [post]
func (h *AdminHandler) HandleRecordActivity(w http.ResponseWriter, r *http.Request) {
	var req ActivityRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Record activity"); err != nil {
		return
	}
	completed, err := h.quests.RecordActivity(r.Context(), req.UserID, req.Amount)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if completed == nil {
		completed = []int{}
	}
	respondJSON(w, http.StatusOK, ActivityResponse{Success: true, Completed: completed})
}

// HandleListQuests returns every quest, inactive ones included
func (h *AdminHandler) HandleListQuests(w http.ResponseWriter, r *http.Request) {
	quests, err := h.quests.ListQuests(r.Context(), false)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, quests)
}

// HandleCreateQuest adds a quest to the catalog
// @Summary Create quest
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body QuestRequest true "Quest"
// @Success 201 {object} DataResponse
// @Router /api/v1/admin/quests [post]
func (h *AdminHandler) HandleCreateQuest(w http.ResponseWriter, r *http.Request) {
	var req QuestRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create quest"); err != nil {
		return
	}
	q := req.toQuest(0)
	if err := h.quests.CreateQuest(r.Context(), q); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, q)
}

// HandleUpdateQuest replaces a quest definition
func (h *AdminHandler) HandleUpdateQuest(w http.ResponseWriter, r *http.Request) {
	id, ok := GetIDParam(r, w)
	if !ok {
		return
	}
	var req QuestRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update quest"); err != nil {
		return
	}
	q := req.toQuest(id)
	if err := h.quests.UpdateQuest(r.Context(), q); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, q)
}

// HandleDeactivateQuest hides a quest from the board
func (h *AdminHandler) HandleDeactivateQuest(w http.ResponseWriter, r *http.Request) {
	id, ok := GetIDParam(r, w)
	if !ok {
		return
	}
	if err := h.quests.DeactivateQuest(r.Context(), id); err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListItems returns every shop item, inactive ones included
func (h *AdminHandler) HandleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.shop.ListAllItems(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, items)
}

// HandleCreateItem adds an item to the shop
// @Summary Create shop item
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body ShopItemRequest true "Item"
// @Success 201 {object} DataResponse
// @Router /api/v1/admin/shop/items [post]
func (h *AdminHandler) HandleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req ShopItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create item"); err != nil {
		return
	}
	item := req.toItem(0)
	if err := h.shop.CreateItem(r.Context(), item); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, item)
}

// HandleUpdateItem replaces a shop item
func (h *AdminHandler) HandleUpdateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := GetIDParam(r, w)
	if !ok {
		return
	}
	var req ShopItemRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Update item"); err != nil {
		return
	}
	item := req.toItem(id)
	if err := h.shop.UpdateItem(r.Context(), item); err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, item)
}

// HandleDeactivateItem withdraws an item from sale. Owned copies are kept.
func (h *AdminHandler) HandleDeactivateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := GetIDParam(r, w)
	if !ok {
		return
	}
	if err := h.shop.DeactivateItem(r.Context(), id); err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleCreateUser registers a diner with empty balances
func (h *AdminHandler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Create user"); err != nil {
		return
	}
	u, err := h.users.CreateUser(r.Context(), req.Username)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, u)
}

// HandleGetUser returns a user's balances and recent ledger entries
func (h *AdminHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	balance, err := h.users.Balance(r.Context(), chiUserID(r))
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, balance)
}

// HandleAdjustBalance credits or debits a user's points or tokens
// @Summary Adjust balance
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Param request body AdjustRequest true "Adjustment"
// @Success 200 {object} DataResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/admin/users/{id}/adjust [post]
func (h *AdminHandler) HandleAdjustBalance(w http.ResponseWriter, r *http.Request) {
	var req AdjustRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Adjust balance"); err != nil {
		return
	}
	balance, err := h.users.Adjust(r.Context(), chiUserID(r), domain.Currency(req.Currency), req.Delta, req.Note)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, balance)
}

// HandleUserEvents returns the latest logged events of a user.
// Repeated or comma separated type parameters restrict the event types.
func (h *AdminHandler) HandleUserEvents(w http.ResponseWriter, r *http.Request) {
	limit := DefaultEventLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > MaxEventLimit {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidLimit)
			return
		}
		limit = n
	}
	var types []string
	for _, raw := range r.URL.Query()["type"] {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
	}

	records, err := h.events.RecentForUser(r.Context(), chiUserID(r), types, limit)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if records == nil {
		records = []eventlog.Record{}
	}
	respondData(w, http.StatusOK, records)
}

// HandleIssueSession creates a bearer session for a user
// @Summary Issue session
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body IssueSessionRequest true "Session"
// @Success 201 {object} DataResponse
// @Router /api/v1/admin/sessions [post]
func (h *AdminHandler) HandleIssueSession(w http.ResponseWriter, r *http.Request) {
	var req IssueSessionRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Issue session"); err != nil {
		return
	}
	sess, err := h.sessions.Issue(r.Context(), req.UserID, time.Duration(req.TTLSeconds)*time.Second)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, sess)
}

func (req QuestRequest) toQuest(id int) *domain.Quest {
	return &domain.Quest{
		ID:               id,
		Title:            req.Title,
		Description:      req.Description,
		RewardType:       domain.RewardType(req.RewardType),
		RewardAmount:     req.RewardAmount,
		RequiredProgress: req.RequiredProgress,
		Active:           activeOrDefault(req.Active),
	}
}

func (req ShopItemRequest) toItem(id int) *domain.ShopItem {
	return &domain.ShopItem{
		ID:       id,
		Name:     req.Name,
		Type:     req.Type,
		Price:    req.Price,
		Active:   activeOrDefault(req.Active),
		Metadata: req.Metadata,
	}
}
