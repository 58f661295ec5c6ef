package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankAccount is a row in the user_bank table. The balance is only ever
// mutated by the payment workflow while the row is locked.
type BankAccount struct {
	ID            int             `json:"id" db:"id"`
	Name          string          `json:"name" db:"name"`
	AccountNumber string          `json:"account_number" db:"account_number"`
	BankName      string          `json:"bank_name" db:"bank_name"`
	Balance       decimal.Decimal `json:"balance" db:"balance"`
	Status        Status          `json:"status" db:"status"`
	CreatedDate   time.Time       `json:"created_date" db:"created_date"`
	UpdatedDate   time.Time       `json:"updated_date" db:"updated_date"`
	CreatedBy     string          `json:"created_by" db:"created_by"`
	UpdatedBy     string          `json:"updated_by" db:"updated_by"`
}
