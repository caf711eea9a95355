// Package domain holds the closed enumerations shared across features.
// Each enum has exactly one parse function; boundary code never compares
// raw request strings against enum values directly.
package domain

import (
	"strings"

	"github.com/expensio/expensio-backend/internal/apperr"
)

// Role is the authorization role carried in session tokens.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole accepts case-insensitive input and fails on anything unknown.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", apperr.Validationf("unknown role %q", s)
}

// RecordType classifies a financial record.
type RecordType string

const (
	TypeExpense RecordType = "EXPENSE"
	TypeIncome  RecordType = "INCOME"
)

func ParseRecordType(s string) (RecordType, error) {
	switch RecordType(strings.ToUpper(strings.TrimSpace(s))) {
	case TypeExpense:
		return TypeExpense, nil
	case TypeIncome:
		return TypeIncome, nil
	}
	return "", apperr.Validationf("unknown type %q", s)
}

// CategoryType mirrors RecordType for categories. Kept as its own type so a
// category cannot be assigned a record-only value by accident.
type CategoryType string

const (
	CategoryExpense CategoryType = "EXPENSE"
	CategoryIncome  CategoryType = "INCOME"
)

func ParseCategoryType(s string) (CategoryType, error) {
	switch CategoryType(strings.ToUpper(strings.TrimSpace(s))) {
	case CategoryExpense:
		return CategoryExpense, nil
	case CategoryIncome:
		return CategoryIncome, nil
	}
	return "", apperr.Validationf("unknown category type %q", s)
}

// PaymentMethod is optional on a record.
type PaymentMethod string

const (
	PayCash          PaymentMethod = "CASH"
	PayCreditCard    PaymentMethod = "CREDIT_CARD"
	PayDebitCard     PaymentMethod = "DEBIT_CARD"
	PayBankTransfer  PaymentMethod = "BANK_TRANSFER"
	PayDigitalWallet PaymentMethod = "DIGITAL_WALLET"
	PayOther         PaymentMethod = "OTHER"
)

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(strings.ToUpper(strings.TrimSpace(s))) {
	case PayCash:
		return PayCash, nil
	case PayCreditCard:
		return PayCreditCard, nil
	case PayDebitCard:
		return PayDebitCard, nil
	case PayBankTransfer:
		return PayBankTransfer, nil
	case PayDigitalWallet:
		return PayDigitalWallet, nil
	case PayOther:
		return PayOther, nil
	}
	return "", apperr.Validationf("unknown payment method %q", s)
}

// Frequency applies only to recurring records.
type Frequency string

const (
	FreqDaily   Frequency = "DAILY"
	FreqWeekly  Frequency = "WEEKLY"
	FreqMonthly Frequency = "MONTHLY"
	FreqYearly  Frequency = "YEARLY"
)

func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(strings.ToUpper(strings.TrimSpace(s))) {
	case FreqDaily:
		return FreqDaily, nil
	case FreqWeekly:
		return FreqWeekly, nil
	case FreqMonthly:
		return FreqMonthly, nil
	case FreqYearly:
		return FreqYearly, nil
	}
	return "", apperr.Validationf("unknown recurring frequency %q", s)
}
