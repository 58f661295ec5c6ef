package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/smsplatform/payments-service/internal/models"
)

// ErrorResponse represents error response structure
type ErrorResponse struct {
	Error   string            `json:"error"`             // Error message
	Details map[string]string `json:"details,omitempty"` // Validation details
}

// ValidationHelper provides shared validation functionality
type ValidationHelper struct {
	validator *validator.Validate
}

// NewValidationHelper creates a new validation helper
func NewValidationHelper() *ValidationHelper {
	return &ValidationHelper{
		validator: validator.New(),
	}
}

// ValidateStruct validates a struct and returns validation errors
func (vh *ValidationHelper) ValidateStruct(s any) error {
	return vh.validator.Struct(s)
}

// RequiredFieldMessage maps struct validation failures on a PaymentModel to
// the message of the most significant missing field. Amount wins over the
// identifiers, matching the check order in ValidatePaymentRequest.
func RequiredFieldMessage(verrs validator.ValidationErrors) string {
	fields := make(map[string]bool, len(verrs))
	for _, err := range verrs {
		fields[err.Field()] = true
	}

	switch {
	case fields["Amount"]:
		return "Payment amount is required"
	case fields["BankID"]:
		return "Bank ID is required"
	case fields["SubscriptionID"]:
		return "Subscription ID is required"
	}
	return "Validation failed"
}

// PaymentRequest is the validated form of a PaymentModel. Enum strings are
// parsed exactly once here; the balance direction is fixed at this point
// and never re-derived from strings downstream.
type PaymentRequest struct {
	BankID          int
	SubscriptionID  int
	UserID          string
	Amount          decimal.Decimal
	Direction       models.BalanceDirection
	PaymentMethod   models.PaymentMethod
	TransactionType models.TransactionType
	Status          models.Status
	UpdatedBy       string
}

// ValidatePaymentRequest checks structural correctness of a raw payment
// request. It has no side effects and touches no store; on failure the
// workflow must not have mutated anything.
func (vh *ValidationHelper) ValidatePaymentRequest(m *models.PaymentModel) (*PaymentRequest, error) {
	if strings.TrimSpace(m.Amount) == "" {
		return nil, fmt.Errorf("%w: Payment amount is required", ErrInvalidInput)
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(m.Amount))
	if err != nil {
		return nil, fmt.Errorf("%w: Payment amount must be a valid number", ErrInvalidInput)
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: Invalid payment amount", ErrInvalidInput)
	}

	if strings.TrimSpace(m.BankID) == "" {
		return nil, fmt.Errorf("%w: Bank ID is required", ErrInvalidInput)
	}
	bankID, err := strconv.Atoi(strings.TrimSpace(m.BankID))
	if err != nil {
		return nil, fmt.Errorf("%w: Bank ID must be a valid number", ErrInvalidInput)
	}

	if strings.TrimSpace(m.SubscriptionID) == "" {
		return nil, fmt.Errorf("%w: Subscription ID is required", ErrInvalidInput)
	}
	subscriptionID, err := strconv.Atoi(strings.TrimSpace(m.SubscriptionID))
	if err != nil {
		return nil, fmt.Errorf("%w: Subscription ID must be a valid number", ErrInvalidInput)
	}

	method := models.PaymentMethodDebit
	if m.PaymentMethod != "" {
		if method, err = models.ParsePaymentMethod(m.PaymentMethod); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	txType := models.TransactionTypeActivation
	if m.TransactionType != "" {
		if txType, err = models.ParseTransactionType(m.TransactionType); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	status := models.StatusActive
	if m.Status != "" {
		if status, err = models.ParseStatus(m.Status); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	if m.PaymentStatus != "" {
		if _, err = models.ParsePaymentStatus(m.PaymentStatus); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	return &PaymentRequest{
		BankID:          bankID,
		SubscriptionID:  subscriptionID,
		UserID:          strings.TrimSpace(m.UserID),
		Amount:          amount,
		Direction:       method.Direction(),
		PaymentMethod:   method,
		TransactionType: txType,
		Status:          status,
		UpdatedBy:       strings.TrimSpace(m.UpdatedBy),
	}, nil
}

// SendErrorResponse sends a JSON error response
func SendErrorResponse(w http.ResponseWriter, message string, statusCode int, validationErr error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResp := ErrorResponse{Error: message}
	if validationErr != nil {
		errorResp.Details = make(map[string]string)
		for _, err := range validationErr.(validator.ValidationErrors) {
			errorResp.Details[err.Field()] = fmt.Sprintf("Field Validation Failed on '%s' tag", err.Tag())
		}
	}

	json.NewEncoder(w).Encode(errorResp)
}
