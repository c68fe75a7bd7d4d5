package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"nil", nil, ErrorKindNone},
		{"session expired", ErrSessionExpired, ErrorKindUnauthorized},
		{"quest missing", ErrQuestNotFound, ErrorKindNotFound},
		{"item missing", ErrItemNotFound, ErrorKindNotFound},
		{"quest not started", ErrQuestNotStarted, ErrorKindInvalidState},
		{"quest not completed", ErrQuestNotCompleted, ErrorKindInvalidState},
		{"already claimed", ErrQuestAlreadyClaimed, ErrorKindInvalidState},
		{"already owned", ErrAlreadyOwned, ErrorKindInvalidState},
		{"insufficient funds", ErrInsufficientFunds, ErrorKindInsufficientFunds},
		{"wrapped conflict", fmt.Errorf("claim: retry exhausted: %w", ErrTransactionConflict), ErrorKindConflict},
		{"unknown", errors.New("boom"), ErrorKindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}
