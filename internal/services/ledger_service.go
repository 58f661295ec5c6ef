package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/smsplatform/payments-service/internal/models"
)

// LedgerService is the store for user_bank rows. Balances are only ever
// changed through UpdateBalanceTx while the row is held under a FOR UPDATE
// lock, so concurrent payments against the same account serialize instead
// of losing updates.
type LedgerService struct {
	db *sql.DB
}

func NewLedgerService(db *sql.DB) *LedgerService {
	return &LedgerService{db: db}
}

const bankAccountColumns = `id, name, account_number, bank_name, balance, status, created_date, updated_date, created_by, updated_by`

// FindByID fetches a bank account without locking it. Read paths only.
func (s *LedgerService) FindByID(ctx context.Context, id int) (*models.BankAccount, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+bankAccountColumns+`
		FROM user_bank
		WHERE id = $1`, id)
	return scanBankAccount(row)
}

// LockByID fetches a bank account inside the caller's transaction with a
// row-level lock. Held until the transaction commits or rolls back.
func (s *LedgerService) LockByID(ctx context.Context, tx *sql.Tx, id int) (*models.BankAccount, error) {
	row := tx.QueryRowContext(ctx, `
		SELECT `+bankAccountColumns+`
		FROM user_bank
		WHERE id = $1
		FOR UPDATE`, id)
	return scanBankAccount(row)
}

// UpdateBalanceTx persists the account's new balance and audit fields
// inside the caller's transaction.
func (s *LedgerService) UpdateBalanceTx(tx *sql.Tx, account *models.BankAccount) error {
	account.UpdatedDate = time.Now()
	_, err := tx.Exec(`
		UPDATE user_bank
		SET balance = $1, updated_date = $2, updated_by = $3
		WHERE id = $4`,
		account.Balance, account.UpdatedDate, account.UpdatedBy, account.ID)
	return err
}

func scanBankAccount(row *sql.Row) (*models.BankAccount, error) {
	var account models.BankAccount
	err := row.Scan(
		&account.ID, &account.Name, &account.AccountNumber, &account.BankName,
		&account.Balance, &account.Status,
		&account.CreatedDate, &account.UpdatedDate,
		&account.CreatedBy, &account.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &account, nil
}
