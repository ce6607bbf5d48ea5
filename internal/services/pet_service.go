package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "finpet/internal/errors"
	"finpet/internal/models"
	"finpet/internal/pagination"
)

// petService implements the progression engine.
type petService struct {
	db *gorm.DB
}

// NewPetService creates a new PetServicer.
func NewPetService(db *gorm.DB) PetServicer {
	return &petService{db: db}
}

// levelMilestones maps the levels that issue a one-time reward when a
// level-up lands exactly on them.
var levelMilestones = map[int]struct{ name, description, icon string }{
	5:  {"Level 5 Badge", "Reached level 5 with your FinPet", "🌱"},
	10: {"Hatched", "Your FinPet hatched from its egg at level 10", "🐣"},
	20: {"Evolution", "Your FinPet evolved to its teen form", "✨"},
	30: {"Final Form", "Your FinPet reached its final form", "🌟"},
}

// savingsMilestones is the fixed ascending balance milestone table. Each
// milestone also grants bonus XP of threshold/100 when first reached.
var savingsMilestones = []struct {
	threshold   float64
	name        string
	description string
	icon        string
}{
	{100, "Saving Starter", "Saved your first $100", "💰"},
	{500, "Penny Pincher", "Reached $500 in savings", "🪙"},
	{1000, "Money Master", "Saved $1,000", "💵"},
	{5000, "Wealth Builder", "Accumulated $5,000 in savings", "🏆"},
}

// GetOrCreatePet returns the user's pet, creating it with default
// progression state on first access.
func (s *petService) GetOrCreatePet(userID string) (*models.FinPet, error) {
	return s.getOrCreatePet(s.db, userID)
}

func (s *petService) getOrCreatePet(tx *gorm.DB, userID string) (*models.FinPet, error) {
	var pet models.FinPet
	err := tx.Where("user_id = ?", userID).First(&pet).Error
	if err == nil {
		return &pet, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	pet = models.FinPet{
		UserID:      userID,
		Level:       models.PetStartLevel,
		XP:          0,
		NextLevelXP: models.PetStartNextLevelXP,
		Name:        models.PetDefaultName,
		LastActive:  time.Now(),
	}
	if err := tx.Create(&pet).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &pet, nil
}

// RenamePet changes the pet's display name.
func (s *petService) RenamePet(userID, name string) (*models.FinPet, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}

	pet, err := s.GetOrCreatePet(userID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(pet).Update("name", name).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	pet.Name = name
	return pet, nil
}

// AwardXP adds XP to the user's pet and resolves at most one level-up per
// award. When the award crosses the threshold, the level increments once and
// the excess XP carries over; the carry-over may itself exceed the new
// threshold, which the next award resolves. The returned bool reports
// whether a level-up occurred. Non-positive amounts are a no-op.
func (s *petService) AwardXP(tx *gorm.DB, userID string, amount int) (*models.FinPet, bool, error) {
	pet, err := s.getOrCreatePet(tx, userID)
	if err != nil {
		return nil, false, err
	}
	if amount <= 0 {
		return pet, false, nil
	}

	now := time.Now()
	newXP := pet.XP + amount

	if newXP < pet.NextLevelXP {
		updates := map[string]interface{}{"xp": newXP, "last_active": now}
		if err := tx.Model(pet).Updates(updates).Error; err != nil {
			return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		pet.XP = newXP
		pet.LastActive = now
		return pet, false, nil
	}

	pet.XP = newXP - pet.NextLevelXP
	pet.Level++
	pet.NextLevelXP = int(float64(pet.NextLevelXP) * models.LevelUpMultiplier)
	pet.LastActive = now

	updates := map[string]interface{}{
		"xp":            pet.XP,
		"level":         pet.Level,
		"next_level_xp": pet.NextLevelXP,
		"last_active":   now,
	}
	if err := tx.Model(pet).Updates(updates).Error; err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if m, ok := levelMilestones[pet.Level]; ok {
		if _, _, err := s.IssueReward(tx, userID, m.name, m.description, m.icon); err != nil {
			return nil, false, err
		}
	}

	return pet, true, nil
}

// IssueReward appends a named reward to the user's pet unless a reward with
// the same name already exists. This is the single dedup chokepoint for all
// milestone rewards. The bool reports whether a new reward was issued; an
// existing reward is returned unchanged.
func (s *petService) IssueReward(tx *gorm.DB, userID, name, description, icon string) (*models.Reward, bool, error) {
	if name == "" {
		return nil, false, apperrors.WithMessage(apperrors.ErrInvalidInput, "reward name is required")
	}

	pet, err := s.getOrCreatePet(tx, userID)
	if err != nil {
		return nil, false, err
	}

	var existing models.Reward
	err = tx.Where("pet_id = ? AND name = ?", pet.ID, name).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	reward := models.Reward{
		PetID:       pet.ID,
		Name:        name,
		Description: description,
		Icon:        icon,
		AwardedAt:   time.Now(),
	}
	if err := tx.Create(&reward).Error; err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &reward, true, nil
}

// CheckSavingsRewards issues every savings milestone whose threshold the
// balance has reached and that the pet does not already hold, along with the
// milestone's bonus XP. A reward already present by name is never re-issued,
// no matter how often the balance re-crosses its threshold. Returns the
// newly issued rewards and the total bonus XP awarded.
func (s *petService) CheckSavingsRewards(tx *gorm.DB, userID string, balance float64) ([]models.Reward, int, error) {
	var issued []models.Reward
	var bonusXP int

	for _, m := range savingsMilestones {
		if balance < m.threshold {
			continue
		}

		reward, isNew, err := s.IssueReward(tx, userID, m.name, m.description, m.icon)
		if err != nil {
			return nil, 0, err
		}
		if !isNew {
			continue
		}

		bonus := int(m.threshold) / 100
		if _, _, err := s.AwardXP(tx, userID, bonus); err != nil {
			return nil, 0, err
		}

		issued = append(issued, *reward)
		bonusXP += bonus
	}

	return issued, bonusXP, nil
}

// GetRewards returns the pet's rewards in award order.
func (s *petService) GetRewards(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Reward], error) {
	pet, err := s.GetOrCreatePet(userID)
	if err != nil {
		return nil, err
	}

	page.Defaults()

	base := s.db.Model(&models.Reward{}).Where("pet_id = ?", pet.ID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var rewards []models.Reward
	if err := base.Scopes(pagination.Paginate(page)).
		Order("awarded_at ASC").
		Find(&rewards).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(rewards, page.Page, page.PageSize, totalItems)
	return &result, nil
}
