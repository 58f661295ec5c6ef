package models

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentTransaction is a row in the payment_transaction table. Rows are
// append-only: nothing in this service updates or deletes them.
type PaymentTransaction struct {
	ID              int             `json:"id" db:"id"`
	Reference       string          `json:"reference" db:"reference"`
	BankID          int             `json:"bank_id" db:"bank_id"`
	SubscriptionID  int             `json:"subscription_id" db:"subscription_id"`
	Amount          decimal.Decimal `json:"amount" db:"amount"`
	PaymentStatus   PaymentStatus   `json:"payment_status" db:"payment_status"`
	PaymentMethod   PaymentMethod   `json:"payment_method" db:"payment_method"`
	Status          Status          `json:"status" db:"status"`
	TransactionType TransactionType `json:"transaction_type" db:"transaction_type"`
	CreatedDate     time.Time       `json:"created_date" db:"created_date"`
	UpdatedDate     time.Time       `json:"updated_date" db:"updated_date"`
	CreatedBy       string          `json:"created_by" db:"created_by"`
	UpdatedBy       string          `json:"updated_by" db:"updated_by"`
}

// PaymentModel is the wire DTO for the payment endpoints. All numeric
// fields arrive as strings and are parsed during validation.
type PaymentModel struct {
	ID              string `json:"id,omitempty"`
	BankID          string `json:"bankId" validate:"required"`
	SubscriptionID  string `json:"subscriptionId" validate:"required"`
	UserID          string `json:"userId,omitempty"`
	Amount          string `json:"amount" validate:"required"`
	PaymentStatus   string `json:"paymentStatus,omitempty"`
	PaymentMethod   string `json:"paymentMethod,omitempty"`
	Status          string `json:"status,omitempty"`
	TransactionType string `json:"transactionType,omitempty"`
	CreatedBy       string `json:"createdBy,omitempty"`
	UpdatedBy       string `json:"updatedBy,omitempty"`
}

// Model maps the persisted transaction back onto the wire DTO.
func (t *PaymentTransaction) Model() PaymentModel {
	return PaymentModel{
		ID:              strconv.Itoa(t.ID),
		BankID:          strconv.Itoa(t.BankID),
		SubscriptionID:  strconv.Itoa(t.SubscriptionID),
		Amount:          t.Amount.String(),
		PaymentStatus:   string(t.PaymentStatus),
		PaymentMethod:   string(t.PaymentMethod),
		Status:          string(t.Status),
		TransactionType: string(t.TransactionType),
		CreatedBy:       t.CreatedBy,
		UpdatedBy:       t.UpdatedBy,
	}
}
