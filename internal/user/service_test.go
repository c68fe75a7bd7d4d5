package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/RestoLoyalty_Go/internal/database/memory"
	"github.com/osse101/RestoLoyalty_Go/internal/domain"
	"github.com/osse101/RestoLoyalty_Go/internal/event"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishWithRetry(ctx context.Context, evt event.Event) {
	m.Called(ctx, evt)
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStore(), nil)

	u, err := svc.CreateUser(ctx, "  lea ")
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "lea", u.Username)

	_, err = svc.CreateUser(ctx, "lea")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.CreateUser(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjust(t *testing.T) {
	ctx := context.Background()
	pub := &mockPublisher{}
	pub.On("PublishWithRetry", mock.Anything, mock.MatchedBy(func(e event.Event) bool {
		return e.Type == event.LedgerAdjusted
	})).Return()

	svc := NewService(memory.NewStore(), pub)
	u, err := svc.CreateUser(ctx, "sam")
	require.NoError(t, err)

	bal, err := svc.Adjust(ctx, u.ID, domain.CurrencyPoints, 600, "welcome bonus")
	require.NoError(t, err)
	assert.Equal(t, int64(600), bal.LoyaltyPoints)
	assert.Equal(t, domain.TierSilver, bal.Tier.Name)
	require.Len(t, bal.Recent, 1)
	assert.Equal(t, "welcome bonus", bal.Recent[0].Reference)
	assert.Equal(t, domain.LedgerReasonAdminAdjustment, bal.Recent[0].Reason)

	bal, err = svc.Adjust(ctx, u.ID, domain.CurrencyTokens, 40, "")
	require.NoError(t, err)
	assert.Equal(t, int64(40), bal.Tokens)

	_, err = svc.Adjust(ctx, u.ID, domain.CurrencyTokens, -41, "")
	assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
	_, err = svc.Adjust(ctx, u.ID, domain.CurrencyPoints, -601, "")
	assert.ErrorIs(t, err, domain.ErrNegativeBalance)

	bal, err = svc.Balance(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(600), bal.LoyaltyPoints)
	assert.Equal(t, int64(40), bal.Tokens)
	assert.Len(t, bal.Recent, 2)

	pub.AssertNumberOfCalls(t, "PublishWithRetry", 2)
}

func TestAdjust_InvalidInput(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStore(), nil)

	_, err := svc.Adjust(ctx, "u", "GOLD", 10, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.Adjust(ctx, "u", domain.CurrencyPoints, 0, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.Adjust(ctx, "missing", domain.CurrencyPoints, 5, "")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
