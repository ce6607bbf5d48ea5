package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "finpet/internal/errors"
	"finpet/internal/models"
	"finpet/internal/pagination"
)

const (
	goalCompletionXP = 25
	goalProgressXP   = 3
)

// goalService handles savings goal business logic.
type goalService struct {
	db         *gorm.DB
	petService PetServicer
}

// NewGoalService creates a new GoalServicer.
func NewGoalService(db *gorm.DB, petService PetServicer) GoalServicer {
	return &goalService{db: db, petService: petService}
}

// CreateGoal creates a savings goal. The completed flag is derived from the
// amounts, never supplied by the caller.
func (s *goalService) CreateGoal(userID, name string, targetAmount, initialAmount float64) (*models.Goal, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "name is required")
	}
	if targetAmount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "target amount must be greater than zero")
	}
	if initialAmount < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "initial amount cannot be negative")
	}

	goal := &models.Goal{
		UserID:        userID,
		Name:          name,
		TargetAmount:  targetAmount,
		CurrentAmount: initialAmount,
		Completed:     initialAmount >= targetAmount,
	}
	if err := s.db.Create(goal).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return goal, nil
}

// GetUserGoals returns the user's goals, newest first.
func (s *goalService) GetUserGoals(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Goal], error) {
	page.Defaults()

	base := s.db.Model(&models.Goal{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var goals []models.Goal
	if err := base.Scopes(pagination.Paginate(page)).
		Order("created_at DESC").
		Find(&goals).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(goals, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetGoalByID returns a goal scoped to its owner.
func (s *goalService) GetGoalByID(userID, goalID string) (*models.Goal, error) {
	var goal models.Goal
	err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrGoalNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &goal, nil
}

// ContributeToGoal adds to a goal's progress. Completion is one-way: the
// contribution that first pushes the current amount to the target flips the
// goal to completed, awards the completion XP, and issues the goal reward.
// Later contributions still land and earn the small progress XP. The fund
// balance is never touched here; debiting it is a separate explicit call.
func (s *goalService) ContributeToGoal(userID, goalID string, amount float64) (*ContributionResult, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}

	var result *ContributionResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var goal models.Goal
		err := tx.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrGoalNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		wasCompleted := goal.Completed
		goal.CurrentAmount += amount
		justCompleted := !wasCompleted && goal.CurrentAmount >= goal.TargetAmount
		if justCompleted {
			goal.Completed = true
		}

		updates := map[string]interface{}{
			"current_amount": goal.CurrentAmount,
			"completed":      goal.Completed,
		}
		if err := tx.Model(&goal).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		xp := goalProgressXP
		if justCompleted {
			xp = goalCompletionXP
			desc := fmt.Sprintf("Completed the %q goal of $%.2f", goal.Name, goal.TargetAmount)
			if _, _, err := s.petService.IssueReward(tx, userID, "Goal Achieved", desc, "🏆"); err != nil {
				return err
			}
		}
		if _, _, err := s.petService.AwardXP(tx, userID, xp); err != nil {
			return err
		}

		result = &ContributionResult{Goal: &goal, Completed: justCompleted, XPAwarded: xp}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
