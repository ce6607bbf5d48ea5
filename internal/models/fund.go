package models

import "time"

// FundBalance holds the single running balance per user: all deposits minus
// all expenses and balance adjustments. Negative balances are allowed by
// policy (overdraft is not prevented at the data layer).
type FundBalance struct {
	Base
	UserID  string  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Balance float64 `gorm:"not null;default:0" json:"balance"`
}

// FundTransaction is an entry in the deposit log.
type FundTransaction struct {
	Base
	UserID      string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Description string    `json:"description"`
	Date        time.Time `gorm:"not null" json:"date"`
}
