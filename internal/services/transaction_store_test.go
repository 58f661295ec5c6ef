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

func transactionRows(id int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "reference", "bank_id", "subscription_id", "amount",
		"payment_status", "payment_method", "status", "transaction_type",
		"created_date", "updated_date", "created_by", "updated_by",
	}).AddRow(id, "ref-1", 1, 42, "40.00", "SUCCESS", "DEBIT", "ACTIVE", "ACTIVATION",
		time.Now(), time.Now(), "John Doe", "John Doe")
}

func TestTransactionStore_InsertTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := NewTransactionStore(db)

	t.Run("insert returns generated id", func(t *testing.T) {
		mock.ExpectBegin()
		tx, _ := db.Begin()

		now := time.Now()
		txn := &models.PaymentTransaction{
			Reference:       "ref-1",
			BankID:          1,
			SubscriptionID:  42,
			Amount:          decimal.RequireFromString("40.00"),
			PaymentStatus:   models.PaymentStatusSuccess,
			PaymentMethod:   models.PaymentMethodDebit,
			Status:          models.StatusActive,
			TransactionType: models.TransactionTypeActivation,
			CreatedDate:     now,
			UpdatedDate:     now,
			CreatedBy:       "John Doe",
			UpdatedBy:       "John Doe",
		}

		mock.ExpectQuery("INSERT INTO payment_transaction").
			WithArgs("ref-1", 1, 42, "40.00", "SUCCESS", "DEBIT", "ACTIVE", "ACTIVATION",
				sqlmock.AnyArg(), sqlmock.AnyArg(), "John Doe", "John Doe").
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

		err := store.InsertTx(tx, txn)
		assert.NoError(t, err)
		assert.Equal(t, 7, txn.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransactionStore_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := NewTransactionStore(db)

	t.Run("existing transaction", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM payment_transaction WHERE id = \\$1").
			WithArgs(7).
			WillReturnRows(transactionRows(7))

		txn, err := store.FindByID(context.Background(), 7)
		assert.NoError(t, err)
		assert.Equal(t, 7, txn.ID)
		assert.Equal(t, 42, txn.SubscriptionID)
		assert.Equal(t, models.PaymentStatusSuccess, txn.PaymentStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown transaction", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM payment_transaction WHERE id = \\$1").
			WithArgs(404).
			WillReturnError(sql.ErrNoRows)

		_, err := store.FindByID(context.Background(), 404)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestTransactionStore_ListByBank(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	store := NewTransactionStore(db)

	t.Run("returns recent transactions", func(t *testing.T) {
		rows := transactionRows(7)
		rows.AddRow(8, "ref-2", 1, 43, "15.50", "SUCCESS", "CREDIT", "ACTIVE", "RENEWAL",
			time.Now(), time.Now(), "John Doe", "John Doe")

		mock.ExpectQuery("SELECT (.+) FROM payment_transaction WHERE bank_id = \\$1 ORDER BY created_date DESC LIMIT \\$2").
			WithArgs(1, 50).
			WillReturnRows(rows)

		transactions, err := store.ListByBank(context.Background(), 1, 50)
		assert.NoError(t, err)
		assert.Len(t, transactions, 2)
		assert.Equal(t, models.PaymentMethodCredit, transactions[1].PaymentMethod)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no transactions", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM payment_transaction WHERE bank_id = \\$1").
			WithArgs(2, 50).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "reference", "bank_id", "subscription_id", "amount",
				"payment_status", "payment_method", "status", "transaction_type",
				"created_date", "updated_date", "created_by", "updated_by",
			}))

		transactions, err := store.ListByBank(context.Background(), 2, 50)
		assert.NoError(t, err)
		assert.Empty(t, transactions)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
