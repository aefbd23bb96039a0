package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"shipdesk/internal/domain"
)

// MockChatDelegate is a mock implementation of port.ChatDelegate.
type MockChatDelegate struct {
	mock.Mock
}

func (m *MockChatDelegate) Ask(ctx context.Context, question string) (*domain.ChatReply, error) {
	args := m.Called(ctx, question)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChatReply), args.Error(1)
}
