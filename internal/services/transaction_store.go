package services

import (
	"context"
	"database/sql"

	"github.com/smsplatform/payments-service/internal/models"
)

// TransactionStore is the append-only store for payment_transaction rows.
// Rows are inserted exactly once per successful payment and never updated
// or deleted here.
type TransactionStore struct {
	db *sql.DB
}

func NewTransactionStore(db *sql.DB) *TransactionStore {
	return &TransactionStore{db: db}
}

const transactionColumns = `id, reference, bank_id, subscription_id, amount, payment_status, payment_method, status, transaction_type, created_date, updated_date, created_by, updated_by`

// InsertTx writes the transaction record inside the caller's transaction
// and fills in the generated id.
func (s *TransactionStore) InsertTx(tx *sql.Tx, t *models.PaymentTransaction) error {
	return tx.QueryRow(`
		INSERT INTO payment_transaction
		(reference, bank_id, subscription_id, amount, payment_status, payment_method, status, transaction_type, created_date, updated_date, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		t.Reference, t.BankID, t.SubscriptionID, t.Amount,
		t.PaymentStatus, t.PaymentMethod, t.Status, t.TransactionType,
		t.CreatedDate, t.UpdatedDate, t.CreatedBy, t.UpdatedBy,
	).Scan(&t.ID)
}

// FindByID fetches a single transaction record.
func (s *TransactionStore) FindByID(ctx context.Context, id int) (*models.PaymentTransaction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+transactionColumns+`
		FROM payment_transaction
		WHERE id = $1`, id)

	var t models.PaymentTransaction
	if err := scanTransaction(row.Scan, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// ListByBank fetches the most recent transactions for a bank account.
func (s *TransactionStore) ListByBank(ctx context.Context, bankID, limit int) ([]models.PaymentTransaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM payment_transaction
		WHERE bank_id = $1
		ORDER BY created_date DESC
		LIMIT $2`, bankID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []models.PaymentTransaction{}
	for rows.Next() {
		var t models.PaymentTransaction
		if err := scanTransaction(rows.Scan, &t); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func scanTransaction(scan func(...any) error, t *models.PaymentTransaction) error {
	return scan(
		&t.ID, &t.Reference, &t.BankID, &t.SubscriptionID, &t.Amount,
		&t.PaymentStatus, &t.PaymentMethod, &t.Status, &t.TransactionType,
		&t.CreatedDate, &t.UpdatedDate, &t.CreatedBy, &t.UpdatedBy,
	)
}
