package models

import "time"

// User represents an account holder. ZenMode gates "wants" purchases in the
// UI: when enabled, the client must ask for confirmation before submitting a
// Want expense. The server never blocks the write itself.
type User struct {
	Base
	Username         string     `gorm:"uniqueIndex;not null" json:"username"`
	Password         string     `gorm:"not null" json:"-"`
	ZenMode          bool       `gorm:"default:false" json:"zen_mode"`
	WantsBudget      float64    `gorm:"default:100" json:"wants_budget"`
	RefreshTokenHash string     `gorm:"size:64" json:"-"`
	LastLoginAt      *time.Time `json:"last_login_at,omitempty"`

	Expenses []Expense `gorm:"foreignKey:UserID" json:"expenses,omitempty"`
	Goals    []Goal    `gorm:"foreignKey:UserID" json:"goals,omitempty"`
}
