package handler

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/RestoLoyalty_Go/internal/domain"
	"github.com/osse101/RestoLoyalty_Go/internal/event"
	"github.com/osse101/RestoLoyalty_Go/internal/eventlog"
	"github.com/osse101/RestoLoyalty_Go/internal/session"
)

const testUserID = "8a1f0f3e-3c55-4a43-9d0e-5b2f7a9c1d11"

type MockQuestService struct {
	mock.Mock
}

func (m *MockQuestService) ListForUser(ctx context.Context, userID string) (*domain.QuestBoard, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuestBoard), args.Error(1)
}

func (m *MockQuestService) Claim(ctx context.Context, userID string, questID int) (*domain.ClaimResult, error) {
	args := m.Called(ctx, userID, questID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClaimResult), args.Error(1)
}

func (m *MockQuestService) RecordActivity(ctx context.Context, userID string, amount int) ([]int, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockQuestService) ListQuests(ctx context.Context, activeOnly bool) ([]domain.Quest, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Quest), args.Error(1)
}

func (m *MockQuestService) CreateQuest(ctx context.Context, q *domain.Quest) error {
	return m.Called(ctx, q).Error(0)
}

func (m *MockQuestService) UpdateQuest(ctx context.Context, q *domain.Quest) error {
	return m.Called(ctx, q).Error(0)
}

func (m *MockQuestService) DeactivateQuest(ctx context.Context, questID int) error {
	return m.Called(ctx, questID).Error(0)
}

type MockShopService struct {
	mock.Mock
}

func (m *MockShopService) ListItems(ctx context.Context) ([]domain.ShopItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShopItem), args.Error(1)
}

func (m *MockShopService) Purchase(ctx context.Context, userID string, itemID int) (*domain.PurchaseResult, error) {
	args := m.Called(ctx, userID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PurchaseResult), args.Error(1)
}

func (m *MockShopService) GetInventory(ctx context.Context, userID string) ([]domain.InventoryView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryView), args.Error(1)
}

func (m *MockShopService) Multipliers(ctx context.Context, userID string) (domain.MultiplierResult, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.MultiplierResult), args.Error(1)
}

func (m *MockShopService) ListAllItems(ctx context.Context) ([]domain.ShopItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShopItem), args.Error(1)
}

func (m *MockShopService) CreateItem(ctx context.Context, item *domain.ShopItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockShopService) UpdateItem(ctx context.Context, item *domain.ShopItem) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockShopService) DeactivateItem(ctx context.Context, itemID int) error {
	return m.Called(ctx, itemID).Error(0)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Balance(ctx context.Context, userID string) (*domain.Balance, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

func (m *MockUserService) Adjust(ctx context.Context, userID string, currency domain.Currency, delta int64, note string) (*domain.Balance, error) {
	args := m.Called(ctx, userID, currency, delta, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Balance), args.Error(1)
}

type MockSessionIssuer struct {
	mock.Mock
}

func (m *MockSessionIssuer) Issue(ctx context.Context, userID string, ttl time.Duration) (*domain.Session, error) {
	args := m.Called(ctx, userID, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

type MockEventLogService struct {
	mock.Mock
}

func (m *MockEventLogService) Subscribe(bus event.Bus) error {
	return m.Called(bus).Error(0)
}

func (m *MockEventLogService) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	args := m.Called(ctx, retentionDays)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEventLogService) RecentForUser(ctx context.Context, userID string, types []string, limit int) ([]eventlog.Record, error) {
	args := m.Called(ctx, userID, types, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]eventlog.Record), args.Error(1)
}

// withSession attaches an authenticated user to ctx the way the session middleware does
func withSession(ctx context.Context) context.Context {
	return session.WithUserID(ctx, testUserID)
}

// withURLParam sets a chi URL parameter on ctx
func withURLParam(ctx context.Context, key, value string) context.Context {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return context.WithValue(ctx, chi.RouteCtxKey, rctx)
}
