package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrTransactionTitleEmpty    = errors.New("transaction titles must not be empty")
	ErrTransactionAmountInvalid = errors.New("transaction amounts must not be negative")
)

// Transaction represents a single income or expense entry.
type Transaction struct {
	DefaultModel
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:DECIMAL(20,8)"`
	Date        time.Time       `json:"date"`
	Type        TransactionType `json:"type"`
	Category    Category        `json:"category"`
	Note        string          `json:"note"`
	IsRecurring bool            `json:"isRecurring"`
}

// BeforeSave trims user input, defaults the date and enforces UTC.
func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Title = strings.TrimSpace(t.Title)
	t.Note = strings.TrimSpace(t.Note)

	if t.Date.IsZero() {
		t.Date = time.Now().In(time.UTC)
	} else {
		t.Date = t.Date.In(time.UTC)
	}

	return t.validate()
}

// AfterFind updates the date to use UTC as timezone, see DefaultModel.AfterFind.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	_ = t.DefaultModel.AfterFind(tx)

	t.Date = t.Date.In(time.UTC)
	return nil
}

func (t *Transaction) validate() error {
	if t.Title == "" {
		return ErrTransactionTitleEmpty
	}

	if t.Amount.IsNegative() {
		return ErrTransactionAmountInvalid
	}

	if !t.Type.Valid() {
		return ErrInvalidTransactionType
	}

	if !t.Category.Valid() {
		return ErrInvalidCategory
	}

	return nil
}
