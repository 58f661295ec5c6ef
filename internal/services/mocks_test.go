package services

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Register(ctx context.Context, transactionID, subscriptionID int, userID, createdBy string) error {
	args := m.Called(ctx, transactionID, subscriptionID, userID, createdBy)
	return args.Error(0)
}
