package handler

import (
	"net/http"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
	"github.com/osse101/RestoLoyalty_Go/internal/shop"
)

// ShopItemsResponse lists catalog items
type ShopItemsResponse struct {
	Success bool              `json:"success"`
	Items   []domain.ShopItem `json:"items"`
}

// InventoryResponse lists the caller's inventory
type InventoryResponse struct {
	Success bool                   `json:"success"`
	Items   []domain.InventoryView `json:"items"`
}

// MultipliersResponse carries the caller's active reward multipliers
type MultipliersResponse struct {
	Success     bool                    `json:"success"`
	Multipliers domain.MultiplierResult `json:"multipliers"`
}

type ShopHandler struct {
	shopService shop.Service
}

func NewShopHandler(shopService shop.Service) *ShopHandler {
	return &ShopHandler{shopService: shopService}
}

// HandleListItems returns the active catalog ordered by type then price
// @Summary List shop items
// @Tags shop
// @Produce json
// @Success 200 {object} ShopItemsResponse
// @Router /api/v1/shop/items [get]
func (h *ShopHandler) HandleListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.shopService.ListItems(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, ShopItemsResponse{Success: true, Items: items})
}

// HandlePurchase buys an item with the caller's tokens
// @Summary Purchase item
// @Tags shop
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PurchaseRequest true "Item to buy"
// @Success 200 {object} PurchaseResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/shop/purchase [post]
func (h *ShopHandler) HandlePurchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetSessionUserID(r, w)
	if !ok {
		return
	}
	var req PurchaseRequest
	if err := DecodeAndValidateRequest(r, w, &req, "Purchase"); err != nil {
		return
	}

	result, err := h.shopService.Purchase(r.Context(), userID, req.ItemID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, PurchaseResponse{
		Success: true,
		Item:    result.Item,
		Renewed: result.Renewed,
		Tokens:  result.TokensNow,
	})
}

// HandleInventory returns the caller's inventory, newest unlock first
// @Summary Caller inventory
// @Tags shop
// @Produce json
// @Security BearerAuth
// @Success 200 {object} InventoryResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/user/inventory [get]
func (h *ShopHandler) HandleInventory(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetSessionUserID(r, w)
	if !ok {
		return
	}
	items, err := h.shopService.GetInventory(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, InventoryResponse{Success: true, Items: items})
}

// HandleMultipliers returns the caller's active reward multipliers
// @Summary Caller multipliers
// @Tags shop
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MultipliersResponse
// @Router /api/v1/user/multipliers [get]
func (h *ShopHandler) HandleMultipliers(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetSessionUserID(r, w)
	if !ok {
		return
	}
	result, err := h.shopService.Multipliers(r.Context(), userID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, MultipliersResponse{Success: true, Multipliers: result})
}
