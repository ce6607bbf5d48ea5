package models

import "time"

// ExpenseType is the binary discretionary classification of an expense.
type ExpenseType string

const (
	ExpenseTypeNeed ExpenseType = "Needs"
	ExpenseTypeWant ExpenseType = "Wants"
)

// ExpenseCategories is the closed set of spending categories. It is shared by
// the classifier and by manual category overrides.
var ExpenseCategories = []string{
	"Food", "Utilities", "Housing", "Transport", "Shopping", "Electronics",
	"Education", "Entertainment", "Health", "Personal Care", "Fitness",
	"Gifts", "Charity", "Other",
}

// IsValidCategory reports whether c is one of the closed category set.
func IsValidCategory(c string) bool {
	for _, known := range ExpenseCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Expense is a single spending record. Expenses are immutable once created;
// there is no edit or delete flow.
type Expense struct {
	Base
	UserID      string      `gorm:"type:uuid;not null;index" json:"user_id"`
	Description string      `gorm:"not null" json:"description"`
	Amount      float64     `gorm:"not null" json:"amount"`
	Date        time.Time   `gorm:"not null;index" json:"date"`
	Category    string      `gorm:"not null" json:"category"`
	Type        ExpenseType `gorm:"not null" json:"type"`
}
