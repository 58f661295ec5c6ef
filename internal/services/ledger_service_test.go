package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/smsplatform/payments-service/internal/models"
)

func bankAccountRows(id int, balance string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "account_number", "bank_name", "balance", "status",
		"created_date", "updated_date", "created_by", "updated_by",
	}).AddRow(id, "John Doe", "0123456789", "First Bank", balance, "ACTIVE",
		time.Now(), time.Now(), "admin", "admin")
}

func TestLedgerService_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewLedgerService(db)

	t.Run("existing account", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM user_bank WHERE id = \\$1").
			WithArgs(1).
			WillReturnRows(bankAccountRows(1, "100.00"))

		account, err := service.FindByID(context.Background(), 1)
		assert.NoError(t, err)
		assert.Equal(t, 1, account.ID)
		assert.Equal(t, "John Doe", account.Name)
		assert.True(t, account.Balance.Equal(decimal.RequireFromString("100.00")))
		assert.Equal(t, models.StatusActive, account.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown account", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM user_bank WHERE id = \\$1").
			WithArgs(99).
			WillReturnError(sql.ErrNoRows)

		_, err := service.FindByID(context.Background(), 99)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLedgerService_LockByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewLedgerService(db)

	t.Run("locks the row", func(t *testing.T) {
		mock.ExpectBegin()
		tx, _ := db.Begin()

		mock.ExpectQuery("SELECT (.+) FROM user_bank WHERE id = \\$1 FOR UPDATE").
			WithArgs(1).
			WillReturnRows(bankAccountRows(1, "250.75"))

		account, err := service.LockByID(context.Background(), tx, 1)
		assert.NoError(t, err)
		assert.True(t, account.Balance.Equal(decimal.RequireFromString("250.75")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLedgerService_UpdateBalanceTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	service := NewLedgerService(db)

	t.Run("persists balance and audit fields", func(t *testing.T) {
		mock.ExpectBegin()
		tx, _ := db.Begin()

		account := &models.BankAccount{
			ID:        1,
			Balance:   decimal.RequireFromString("60.00"),
			UpdatedBy: "payments-service",
		}

		mock.ExpectExec("UPDATE user_bank SET balance = \\$1, updated_date = \\$2, updated_by = \\$3 WHERE id = \\$4").
			WithArgs("60.00", sqlmock.AnyArg(), "payments-service", 1).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := service.UpdateBalanceTx(tx, account)
		assert.NoError(t, err)
		assert.False(t, account.UpdatedDate.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
