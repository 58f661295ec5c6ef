package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/smsplatform/payments-service/internal/models"
	"github.com/smsplatform/payments-service/internal/services"
)

// PaymentHandler is the HTTP boundary for the payment workflow.
type PaymentHandler struct {
	service   *services.PaymentService
	validator *services.ValidationHelper
}

func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		service:   service,
		validator: services.NewValidationHelper(),
	}
}

// AddPaymentTransaction creates a payment transaction
// @Summary Create a payment transaction
// @Description Debits or credits the bank account, records the transaction and registers it with the subscription system
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body models.PaymentModel true "Payment request"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} services.ErrorResponse
// @Failure 422 {object} services.ErrorResponse
// @Failure 500 {object} services.ErrorResponse
// @Router /payment/transaction [post]
func (h *PaymentHandler) AddPaymentTransaction(w http.ResponseWriter, r *http.Request) {
	var model models.PaymentModel

	maxBytes := 1_048_576 // 1 MB
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&model); err != nil {
		services.SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		services.SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return
	}

	if err := h.validator.ValidateStruct(&model); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			services.SendErrorResponse(w, services.RequiredFieldMessage(verrs), http.StatusBadRequest, verrs)
			return
		}
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, nil)
		return
	}

	zap.S().Infof("[PAYMENT] Received request to create payment transaction for subscription ID: %s", model.SubscriptionID)

	processed, err := h.service.ProcessPayment(r.Context(), model)
	if err != nil {
		h.sendPaymentError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"message":     fmt.Sprintf("Payment transaction successfully added with ID: %s", processed.ID),
		"transaction": processed,
	})
}

func (h *PaymentHandler) sendPaymentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		services.SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
	case errors.Is(err, services.ErrUnauthorized):
		services.SendErrorResponse(w, err.Error(), http.StatusUnauthorized, nil)
	case errors.Is(err, services.ErrBusinessValidation):
		services.SendErrorResponse(w, err.Error(), http.StatusUnprocessableEntity, nil)
	default:
		zap.S().Errorf("[PAYMENT] Unexpected error: %v", err)
		services.SendErrorResponse(w, "An error occurred while processing the payment", http.StatusInternalServerError, nil)
	}
}

// GetTransaction retrieves a payment transaction by ID
// @Summary Get payment transaction
// @Tags payments
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} models.PaymentTransaction
// @Failure 404 {object} services.ErrorResponse
// @Router /payment/transaction/{id} [get]
func (h *PaymentHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		services.SendErrorResponse(w, "Transaction ID must be a valid number", http.StatusBadRequest, nil)
		return
	}

	txn, err := h.service.Transactions().FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			services.SendErrorResponse(w, "Transaction not found", http.StatusNotFound, nil)
		} else {
			zap.S().Errorf("[PAYMENT] Failed to fetch transaction %d: %v", id, err)
			services.SendErrorResponse(w, "Failed to fetch transaction", http.StatusInternalServerError, nil)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(txn)
}

// ListTransactions retrieves recent transactions for a bank account
// @Summary List payment transactions
// @Tags payments
// @Produce json
// @Param bankId query int true "Bank account ID"
// @Param limit query int false "Number of transactions to return (default: 50)"
// @Success 200 {object} map[string]interface{}
// @Router /payment/transactions [get]
func (h *PaymentHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	bankID, err := strconv.Atoi(r.URL.Query().Get("bankId"))
	if err != nil {
		services.SendErrorResponse(w, "bankId is required", http.StatusBadRequest, nil)
		return
	}

	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	transactions, err := h.service.Transactions().ListByBank(r.Context(), bankID, limit)
	if err != nil {
		zap.S().Errorf("[PAYMENT] Failed to fetch transactions for bank %d: %v", bankID, err)
		services.SendErrorResponse(w, "Failed to fetch transactions", http.StatusInternalServerError, nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"transactions": transactions,
		"count":        len(transactions),
	})
}

// GetBankBalance retrieves the current balance of a bank account
// @Summary Get bank account balance
// @Tags accounts
// @Produce json
// @Param id path int true "Bank account ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} services.ErrorResponse
// @Router /payment/bank/{id}/balance [get]
func (h *PaymentHandler) GetBankBalance(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		services.SendErrorResponse(w, "Bank account ID must be a valid number", http.StatusBadRequest, nil)
		return
	}

	account, err := h.service.Ledger().FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			services.SendErrorResponse(w, "Bank account not found", http.StatusNotFound, nil)
		} else {
			zap.S().Errorf("[PAYMENT] Failed to fetch bank account %d: %v", id, err)
			services.SendErrorResponse(w, "Failed to fetch bank account", http.StatusInternalServerError, nil)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"accountId":        account.ID,
		"accountNumber":    account.AccountNumber,
		"bankName":         account.BankName,
		"availableBalance": account.Balance,
		"status":           account.Status,
	})
}
