package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
	"github.com/osse101/RestoLoyalty_Go/internal/eventlog"
)

type adminFixture struct {
	quests   *MockQuestService
	shop     *MockShopService
	users    *MockUserService
	sessions *MockSessionIssuer
	events   *MockEventLogService
	handler  *AdminHandler
}

func newAdminFixture() *adminFixture {
	f := &adminFixture{
		quests:   &MockQuestService{},
		shop:     &MockShopService{},
		users:    &MockUserService{},
		sessions: &MockSessionIssuer{},
		events:   &MockEventLogService{},
	}
	f.handler = NewAdminHandler(f.quests, f.shop, f.users, f.sessions, f.events)
	return f
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAdmin_RecordActivity(t *testing.T) {
	f := newAdminFixture()
	f.quests.On("RecordActivity", mock.Anything, testUserID, 2).Return([]int{1, 4}, nil)

	w := httptest.NewRecorder()
	f.handler.HandleRecordActivity(w, jsonRequest(http.MethodPost, "/api/v1/admin/activity",
		`{"userId":"`+testUserID+`","amount":2}`))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"completed":[1,4]}`, w.Body.String())

	w = httptest.NewRecorder()
	f.handler.HandleRecordActivity(w, jsonRequest(http.MethodPost, "/api/v1/admin/activity",
		`{"userId":"not-a-uuid","amount":2}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"userId"`)
}

func TestAdmin_CreateQuest(t *testing.T) {
	t.Run("valid quest defaults to active", func(t *testing.T) {
		f := newAdminFixture()
		f.quests.On("CreateQuest", mock.Anything, mock.MatchedBy(func(q *domain.Quest) bool {
			return q.Title == "Brunch" && q.RewardType == domain.RewardTypeToken && q.Active
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Quest).ID = 12
		}).Return(nil)

		w := httptest.NewRecorder()
		f.handler.HandleCreateQuest(w, jsonRequest(http.MethodPost, "/api/v1/admin/quests",
			`{"title":"Brunch","reward_type":"TOKEN","reward_amount":15,"required_progress":2}`))

		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":12`)
		f.quests.AssertExpectations(t)
	})

	t.Run("unknown reward type", func(t *testing.T) {
		f := newAdminFixture()
		w := httptest.NewRecorder()
		f.handler.HandleCreateQuest(w, jsonRequest(http.MethodPost, "/api/v1/admin/quests",
			`{"title":"Brunch","reward_type":"GOLD","reward_amount":15}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body ValidationErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Must be one of: XP TOKEN", body.Fields["reward_type"])
	})
}

func TestAdmin_UpdateAndDeactivate(t *testing.T) {
	f := newAdminFixture()
	f.shop.On("UpdateItem", mock.Anything, mock.MatchedBy(func(it *domain.ShopItem) bool {
		return it.ID == 3 && !it.Active && it.Price == 90
	})).Return(nil)
	f.shop.On("DeactivateItem", mock.Anything, 7).Return(domain.ErrItemNotFound)
	f.quests.On("DeactivateQuest", mock.Anything, 2).Return(nil)

	req := jsonRequest(http.MethodPut, "/api/v1/admin/shop/items/3",
		`{"name":"Thème Néon","type":"Cosmetics","price":90,"active":false}`)
	w := httptest.NewRecorder()
	f.handler.HandleUpdateItem(w, req.WithContext(withURLParam(req.Context(), "id", "3")))
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/admin/shop/items/7", nil)
	w = httptest.NewRecorder()
	f.handler.HandleDeactivateItem(w, req.WithContext(withURLParam(req.Context(), "id", "7")))
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/admin/quests/2", nil)
	w = httptest.NewRecorder()
	f.handler.HandleDeactivateQuest(w, req.WithContext(withURLParam(req.Context(), "id", "2")))
	assert.Equal(t, http.StatusNoContent, w.Code)

	f.shop.AssertExpectations(t)
	f.quests.AssertExpectations(t)
}

func TestAdmin_AdjustBalance(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{"credit tokens", `{"currency":"TOKENS","delta":20,"note":"birthday"}`, nil, http.StatusOK},
		{"debit below zero", `{"currency":"TOKENS","delta":-500}`, domain.ErrInsufficientFunds, http.StatusBadRequest},
		{"zero delta", `{"currency":"POINTS","delta":0}`, nil, http.StatusBadRequest},
		{"bad currency", `{"currency":"EUR","delta":5}`, nil, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newAdminFixture()
			if tt.err != nil {
				f.users.On("Adjust", mock.Anything, testUserID, mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)
			} else {
				f.users.On("Adjust", mock.Anything, testUserID, domain.CurrencyTokens, int64(20), "birthday").
					Return(&domain.Balance{UserID: testUserID, Tokens: 20}, nil)
			}

			req := jsonRequest(http.MethodPost, "/api/v1/admin/users/"+testUserID+"/adjust", tt.body)
			w := httptest.NewRecorder()
			f.handler.HandleAdjustBalance(w, req.WithContext(withURLParam(req.Context(), "id", testUserID)))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestAdmin_IssueSession(t *testing.T) {
	f := newAdminFixture()
	expires := time.Date(2026, 5, 6, 0, 0, 0, 0, time.UTC)
	f.sessions.On("Issue", mock.Anything, testUserID, time.Hour).
		Return(&domain.Session{Token: "abc", UserID: testUserID, ExpiresAt: expires}, nil)

	w := httptest.NewRecorder()
	f.handler.HandleIssueSession(w, jsonRequest(http.MethodPost, "/api/v1/admin/sessions",
		`{"userId":"`+testUserID+`","ttlSeconds":3600}`))

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"abc"`)
}

func TestAdmin_UserEvents(t *testing.T) {
	f := newAdminFixture()
	f.events.On("RecentForUser", mock.Anything, testUserID, []string(nil), DefaultEventLimit).
		Return([]eventlog.Record{{ID: 1, Type: "quest.claimed"}}, nil)
	f.events.On("RecentForUser", mock.Anything, testUserID, []string{"shop.item_purchased", "shop.item_renewed"}, 5).
		Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users/"+testUserID+"/events", nil)
	w := httptest.NewRecorder()
	f.handler.HandleUserEvents(w, req.WithContext(withURLParam(context.Background(), "id", testUserID)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "quest.claimed")

	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/users/"+testUserID+"/events?limit=5&type=shop.item_purchased,+shop.item_renewed", nil)
	w = httptest.NewRecorder()
	f.handler.HandleUserEvents(w, req.WithContext(withURLParam(context.Background(), "id", testUserID)))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":[]}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/users/"+testUserID+"/events?limit=9999", nil)
	w = httptest.NewRecorder()
	f.handler.HandleUserEvents(w, req.WithContext(withURLParam(context.Background(), "id", testUserID)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
