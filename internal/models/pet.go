package models

import "time"

// Default progression values for a freshly created pet.
const (
	PetStartLevel       = 1
	PetStartNextLevelXP = 75
	PetDefaultName      = "Penny"
)

// LevelUpMultiplier grows the XP threshold on each level-up:
// next = floor(prev * 1.3).
const LevelUpMultiplier = 1.3

// FinPet is the per-user progression state. XP is progress within the
// current level and stays below NextLevelXP at rest, except immediately
// after a level-up whose carry-over exceeded the new threshold (a single
// award resolves at most one level-up).
type FinPet struct {
	Base
	UserID      string    `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Level       int       `gorm:"not null;default:1" json:"level"`
	XP          int       `gorm:"not null;default:0" json:"xp"`
	NextLevelXP int       `gorm:"not null;default:75" json:"next_level_xp"`
	Name        string    `gorm:"not null;default:Penny" json:"name"`
	LastActive  time.Time `json:"last_active"`
	Rewards     []Reward  `gorm:"foreignKey:PetID" json:"rewards,omitempty"`
}

// Stage returns the pet's visual evolution stage derived from level:
// 0 = egg (1-9), 1 = hatched (10-19), 2 = teen (20-29), 3 = final (30+).
func (p *FinPet) Stage() int {
	switch {
	case p.Level < 10:
		return 0
	case p.Level < 20:
		return 1
	case p.Level < 30:
		return 2
	default:
		return 3
	}
}

// Reward is a one-time achievement record. Names are unique per pet; the
// composite index is a backstop for the idempotence rule enforced in the
// progression service. Rewards are append-only.
type Reward struct {
	Base
	PetID       string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_pet_reward_name" json:"pet_id"`
	Name        string    `gorm:"not null;uniqueIndex:idx_pet_reward_name" json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	AwardedAt   time.Time `gorm:"not null" json:"awarded_at"`
}
