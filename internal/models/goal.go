package models

// Goal is a savings goal. CurrentAmount only grows (contributions cannot be
// withdrawn) and Completed is a one-way transition: once current reaches
// target it is never reverted.
type Goal struct {
	Base
	UserID        string  `gorm:"type:uuid;not null;index" json:"user_id"`
	Name          string  `gorm:"not null" json:"name"`
	TargetAmount  float64 `gorm:"not null" json:"target_amount"`
	CurrentAmount float64 `gorm:"not null;default:0" json:"current_amount"`
	Completed     bool    `gorm:"default:false" json:"completed"`
}

// Progress returns the completion fraction in [0, 1].
func (g *Goal) Progress() float64 {
	if g.TargetAmount <= 0 {
		return 0
	}
	p := g.CurrentAmount / g.TargetAmount
	if p > 1 {
		return 1
	}
	return p
}

// Remaining returns the amount still needed to reach the target, never
// negative.
func (g *Goal) Remaining() float64 {
	r := g.TargetAmount - g.CurrentAmount
	if r < 0 {
		return 0
	}
	return r
}
