package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// SubscriptionNotifier registers a completed payment with the external
// subscription system. A single attempt; any non-2xx response or transport
// error is a failure.
type SubscriptionNotifier interface {
	Register(ctx context.Context, transactionID, subscriptionID int, userID, createdBy string) error
}

// SubscriptionService calls the subscription system over HTTP.
type SubscriptionService struct {
	client *resty.Client
}

func NewSubscriptionService(baseURL string, timeout time.Duration) *SubscriptionService {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
	return &SubscriptionService{client: client}
}

func (s *SubscriptionService) Register(ctx context.Context, transactionID, subscriptionID int, userID, createdBy string) error {
	body := map[string]string{
		"transactionId": strconv.Itoa(transactionID),
		"serviceId":     strconv.Itoa(subscriptionID),
		"userId":        userID,
		"createdBy":     createdBy,
	}

	zap.S().Infof("[SUBSCRIPTION] Registering transaction %d for subscription %d, user %s", transactionID, subscriptionID, userID)

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/subscription/create")
	if err != nil {
		zap.S().Errorf("[SUBSCRIPTION] Request failed: %v", err)
		return fmt.Errorf("%w: Failed to subscription for service", ErrBusinessValidation)
	}

	if !resp.IsSuccess() {
		zap.S().Errorf("[SUBSCRIPTION] Registration rejected with status %d: %s", resp.StatusCode(), resp.String())
		return fmt.Errorf("%w: Failed to subscription for service", ErrBusinessValidation)
	}

	zap.S().Infof("[SUBSCRIPTION] Registered transaction %d successfully", transactionID)
	return nil
}
