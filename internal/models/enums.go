package models

import (
	"fmt"
	"strings"
)

// PaymentStatus is the lifecycle of a single payment attempt.
type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
	PaymentStatusPending PaymentStatus = "PENDING"
)

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SUCCESS":
		return PaymentStatusSuccess, nil
	case "FAILED":
		return PaymentStatusFailed, nil
	case "PENDING":
		return PaymentStatusPending, nil
	}
	return "", fmt.Errorf("unknown payment status: %q", s)
}

// PaymentMethod is the payment instrument. It alone decides whether the
// bank balance is debited or credited; TransactionType never does.
type PaymentMethod string

const (
	PaymentMethodDebit  PaymentMethod = "DEBIT"
	PaymentMethodCredit PaymentMethod = "CREDIT"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBIT":
		return PaymentMethodDebit, nil
	case "CREDIT":
		return PaymentMethodCredit, nil
	}
	return "", fmt.Errorf("unknown payment method: %q", s)
}

// BalanceDirection is resolved once during validation from the parsed
// PaymentMethod and carried on the request from then on.
type BalanceDirection int

const (
	DirectionDebit BalanceDirection = iota
	DirectionCredit
)

func (m PaymentMethod) Direction() BalanceDirection {
	if m == PaymentMethodCredit {
		return DirectionCredit
	}
	return DirectionDebit
}

// TransactionType is the subscription lifecycle event the payment relates to.
type TransactionType string

const (
	TransactionTypeActivation   TransactionType = "ACTIVATION"
	TransactionTypeDeactivation TransactionType = "DEACTIVATION"
	TransactionTypeRenewal      TransactionType = "RENEWAL"
	TransactionTypeCancellation TransactionType = "CANCELLATION"
)

func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ACTIVATION":
		return TransactionTypeActivation, nil
	case "DEACTIVATION":
		return TransactionTypeDeactivation, nil
	case "RENEWAL":
		return TransactionTypeRenewal, nil
	case "CANCELLATION":
		return TransactionTypeCancellation, nil
	}
	return "", fmt.Errorf("unknown transaction type: %q", s)
}

// Status is the overall record status shared by bank accounts and
// payment transactions.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

func ParseStatus(s string) (Status, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ACTIVE":
		return StatusActive, nil
	case "INACTIVE":
		return StatusInactive, nil
	}
	return "", fmt.Errorf("unknown status: %q", s)
}
