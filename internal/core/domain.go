package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	Food          Category = "Food"
	Transport     Category = "Transport"
	Housing       Category = "Housing"
	Utilities     Category = "Utilities"
	Shopping      Category = "Shopping"
	Entertainment Category = "Entertainment"
	Health        Category = "Health"
	Education     Category = "Education"
	Travel        Category = "Travel"
	Salary        Category = "Salary"
	Freelance     Category = "Freelance"
	Investment    Category = "Investment"
	Gift          Category = "Gift"
	Other         Category = "Other"
)

type (
	TransactionType string

	Category string

	// Transaction is a single dated money movement as kept by the store.
	// Date is the economic event date as an ISO instant; CreatedAt is provenance only.
	Transaction struct {
		ID        string          `json:"id"`
		Amount    float64         `json:"amount"`
		Type      TransactionType `json:"type"`
		Category  Category        `json:"category"`
		Date      string          `json:"date"`
		CreatedAt time.Time       `json:"createdAt"`
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidDate     = errors.New("invalid date")
	ErrEmptyID         = errors.New("empty id")
)

var (
	expenseCategories = []Category{Food, Transport, Housing, Utilities, Shopping, Entertainment, Health, Education, Travel, Other}
	incomeCategories  = []Category{Salary, Freelance, Investment, Gift, Other}
)

// dateLayouts are tried in order when reading a stored date.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses an ISO date or instant and returns it in UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// FormatDate renders t as the canonical stored form.
func FormatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// When returns the parsed event date. ok is false for malformed dates.
func (t Transaction) When() (time.Time, bool) {
	d, err := ParseDate(t.Date)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func (tt TransactionType) Valid() bool {
	return tt == Income || tt == Expense
}

func (tt TransactionType) String() string {
	return string(tt)
}

func (c Category) String() string {
	return string(c)
}

// Valid reports whether c belongs to the closed category set.
func (c Category) Valid() bool {
	for _, set := range [][]Category{expenseCategories, incomeCategories} {
		for _, known := range set {
			if c == known {
				return true
			}
		}
	}
	return false
}

// CategoriesFor returns the categories offered for a transaction type.
func CategoriesFor(tt TransactionType) []Category {
	switch tt {
	case Income:
		return append([]Category(nil), incomeCategories...)
	case Expense:
		return append([]Category(nil), expenseCategories...)
	default:
		return nil
	}
}

// ParseCategory matches s case-insensitively against the known categories.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, set := range [][]Category{expenseCategories, incomeCategories} {
		for _, c := range set {
			if strings.EqualFold(string(c), s) {
				return c, nil
			}
		}
	}
	return "", ErrInvalidCategory
}

// ParseTransactionType matches s case-insensitively against income/expense.
func ParseTransactionType(s string) (TransactionType, error) {
	tt := TransactionType(strings.ToLower(strings.TrimSpace(s)))
	if !tt.Valid() {
		return "", ErrInvalidType
	}
	return tt, nil
}

// Validate checks a record before it is persisted. The analysis engine never
// calls this; it tolerates whatever the store hands it.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if !t.Category.Valid() {
		return ErrInvalidCategory
	}
	if _, err := ParseDate(t.Date); err != nil {
		return err
	}
	return nil
}
