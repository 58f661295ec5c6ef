package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/smsplatform/payments-service/internal/config"
	"github.com/smsplatform/payments-service/internal/models"
)

// PaymentService runs the payment workflow: validate the request, debit or
// credit the bank account, record the transaction and register it with the
// subscription system. The balance update and the transaction insert share
// one database transaction with the account row locked, and the notifier is
// called before commit, so a failure anywhere leaves both stores untouched.
type PaymentService struct {
	db        *sql.DB
	ledger    *LedgerService
	store     *TransactionStore
	notifier  SubscriptionNotifier
	events    *redis.Client
	validator *ValidationHelper
	cfg       *config.Config
}

func NewPaymentService(db *sql.DB, events *redis.Client, notifier SubscriptionNotifier, cfg *config.Config) *PaymentService {
	return &PaymentService{
		db:        db,
		ledger:    NewLedgerService(db),
		store:     NewTransactionStore(db),
		notifier:  notifier,
		events:    events,
		validator: NewValidationHelper(),
		cfg:       cfg,
	}
}

// Ledger exposes the account store for read endpoints.
func (s *PaymentService) Ledger() *LedgerService { return s.ledger }

// Transactions exposes the transaction store for read endpoints.
func (s *PaymentService) Transactions() *TransactionStore { return s.store }

// ProcessPayment runs the full workflow for one payment request. Submitting
// the same logical request twice runs the workflow twice: there is no
// deduplication key.
func (s *PaymentService) ProcessPayment(ctx context.Context, model models.PaymentModel) (models.PaymentModel, error) {
	result, err := s.processPayment(ctx, model)
	paymentsProcessed.WithLabelValues(resultLabel(err)).Inc()
	return result, err
}

func (s *PaymentService) processPayment(ctx context.Context, model models.PaymentModel) (models.PaymentModel, error) {
	zap.S().Infof("[PAYMENT] Processing payment for subscription ID: %s", model.SubscriptionID)

	req, err := s.validator.ValidatePaymentRequest(&model)
	if err != nil {
		zap.S().Errorf("[PAYMENT] Validation failed: %v", err)
		return model, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		zap.S().Errorf("[PAYMENT] Failed to begin transaction: %v", err)
		return s.failed(model), fmt.Errorf("%w: could not start payment", ErrProcessing)
	}
	defer tx.Rollback()

	account, err := s.ledger.LockByID(ctx, tx, req.BankID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			zap.S().Errorf("[PAYMENT] Bank account with ID %d not found", req.BankID)
			return s.failed(model), fmt.Errorf("%w: Bank account not found", ErrBusinessValidation)
		}
		zap.S().Errorf("[PAYMENT] Failed to load bank account %d: %v", req.BankID, err)
		return s.failed(model), fmt.Errorf("%w: could not load bank account", ErrProcessing)
	}

	if account.Status != models.StatusActive {
		zap.S().Errorf("[PAYMENT] Bank account %d is not active", account.ID)
		return s.failed(model), fmt.Errorf("%w: Bank account is not active", ErrBusinessValidation)
	}

	switch req.Direction {
	case models.DirectionDebit:
		if account.Balance.LessThan(req.Amount) {
			zap.S().Errorf("[PAYMENT] Insufficient balance on account %d: available %s, required %s",
				account.ID, account.Balance, req.Amount)
			return s.failed(model), fmt.Errorf("%w: Insufficient balance in the account", ErrBusinessValidation)
		}
		account.Balance = account.Balance.Sub(req.Amount)
	case models.DirectionCredit:
		account.Balance = account.Balance.Add(req.Amount)
	}

	account.UpdatedBy = req.UpdatedBy
	if account.UpdatedBy == "" {
		account.UpdatedBy = s.cfg.ServiceActor
	}

	if err := s.ledger.UpdateBalanceTx(tx, account); err != nil {
		zap.S().Errorf("[PAYMENT] Failed to update balance for account %d: %v", account.ID, err)
		return s.failed(model), fmt.Errorf("%w: could not update account balance", ErrProcessing)
	}
	zap.S().Infof("[PAYMENT] Balance updated for account %s, new balance: %s", account.AccountNumber, account.Balance)

	now := time.Now()
	txn := models.PaymentTransaction{
		Reference:       uuid.NewString(),
		BankID:          req.BankID,
		SubscriptionID:  req.SubscriptionID,
		Amount:          req.Amount,
		PaymentStatus:   models.PaymentStatusSuccess,
		PaymentMethod:   req.PaymentMethod,
		Status:          models.StatusActive,
		TransactionType: req.TransactionType,
		CreatedDate:     now,
		UpdatedDate:     now,
		CreatedBy:       account.Name,
		UpdatedBy:       account.Name,
	}

	if err := s.store.InsertTx(tx, &txn); err != nil {
		zap.S().Errorf("[PAYMENT] Failed to store payment transaction: %v", err)
		return s.failed(model), fmt.Errorf("%w: could not store payment transaction", ErrProcessing)
	}

	// Notify before commit: if the subscription system refuses, the
	// rollback undoes the balance change and the transaction row together.
	if err := s.notifier.Register(ctx, txn.ID, req.SubscriptionID, req.UserID, txn.CreatedBy); err != nil {
		return s.failed(model), err
	}

	if err := tx.Commit(); err != nil {
		zap.S().Errorf("[PAYMENT] Failed to commit payment transaction: %v", err)
		return s.failed(model), fmt.Errorf("%w: could not commit payment", ErrProcessing)
	}

	zap.S().Infof("[PAYMENT] Payment transaction successfully completed with ID: %d", txn.ID)

	s.publishEvent(ctx, &txn)

	result := txn.Model()
	result.UserID = req.UserID
	return result, nil
}

// publishEvent queues the completed payment for downstream consumers.
// Post-commit and best-effort: a queue failure never fails the payment.
func (s *PaymentService) publishEvent(ctx context.Context, txn *models.PaymentTransaction) {
	if s.events == nil {
		return
	}

	// The payment is already committed; a client disconnect must not
	// cancel the queue push.
	ctx = context.WithoutCancel(ctx)

	data, err := json.Marshal(txn)
	if err != nil {
		paymentEventPublishFailures.Inc()
		zap.S().Errorf("[PAYMENT] Failed to encode payment event for transaction %d: %v", txn.ID, err)
		return
	}

	if err := s.events.RPush(ctx, s.cfg.EventQueueKey, data).Err(); err != nil {
		paymentEventPublishFailures.Inc()
		zap.S().Errorf("[PAYMENT] Failed to queue payment event for transaction %d: %v", txn.ID, err)
	}
}

func (s *PaymentService) failed(model models.PaymentModel) models.PaymentModel {
	model.PaymentStatus = string(models.PaymentStatusFailed)
	return model
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrBusinessValidation):
		return "business_validation"
	default:
		return "processing_error"
	}
}
