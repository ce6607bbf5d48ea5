package services

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"gorm.io/gorm"

	apperrors "finpet/internal/errors"
	"finpet/internal/models"
)

const (
	// weekWindow is the trailing window every weekly figure is computed
	// over, inclusive at both ends.
	weekWindow = 7 * 24 * time.Hour

	budgetClaimXP        = 10
	budgetChampionCutoff = 50.0
	budgetClaimCutoff    = 90.0
	maxTips              = 5
)

// insightService derives budget status, trends, and tips from recorded
// expenses.
type insightService struct {
	db         *gorm.DB
	petService PetServicer
	rng        *rand.Rand
}

// NewInsightService creates a new InsightServicer.
func NewInsightService(db *gorm.DB, petService PetServicer) InsightServicer {
	return newInsightService(db, petService, rand.New(rand.NewSource(time.Now().UnixNano())))
}

func newInsightService(db *gorm.DB, petService PetServicer, rng *rand.Rand) *insightService {
	return &insightService{db: db, petService: petService, rng: rng}
}

// sumExpenses totals expense amounts for a user, optionally restricted to a
// type, a category, or a [from, to] window. Nil window bounds mean all-time.
func (s *insightService) sumExpenses(userID string, expenseType *models.ExpenseType, category *string, from, to *time.Time) (float64, error) {
	q := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)
	if from != nil {
		q = q.Where("date >= ?", *from)
	}
	if to != nil {
		q = q.Where("date <= ?", *to)
	}
	if expenseType != nil {
		q = q.Where("type = ?", *expenseType)
	}
	if category != nil {
		q = q.Where("category = ?", *category)
	}

	var total float64
	if err := q.Select("COALESCE(SUM(amount), 0)").Scan(&total).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return total, nil
}

// WeeklyWantsSpending returns the total spent on wants over the trailing
// week.
func (s *insightService) WeeklyWantsSpending(userID string) (float64, error) {
	now := time.Now()
	weekAgo := now.Add(-weekWindow)
	wants := models.ExpenseTypeWant
	return s.sumExpenses(userID, &wants, nil, &weekAgo, &now)
}

// WeeklyWantsStatus compares the trailing week's wants spending against the
// user's weekly budget. PercentUsed saturates at 100 and is 0 when no budget
// is set.
func (s *insightService) WeeklyWantsStatus(userID string) (*WeeklyWantsStatus, error) {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	spent, err := s.WeeklyWantsSpending(userID)
	if err != nil {
		return nil, err
	}

	status := &WeeklyWantsStatus{Budget: user.WantsBudget, Spent: spent}
	if remaining := user.WantsBudget - spent; remaining > 0 {
		status.Remaining = remaining
	}
	if user.WantsBudget > 0 {
		pct := spent / user.WantsBudget * 100
		if pct > 100 {
			pct = 100
		}
		status.PercentUsed = pct
	}
	return status, nil
}

// ExpenseTrend returns the percent change of this week's total spending
// against the week before. A prior week with no spending yields 0 rather
// than a division blow-up.
func (s *insightService) ExpenseTrend(userID string) (float64, error) {
	now := time.Now()
	weekAgo := now.Add(-weekWindow)
	twoWeeksAgo := now.Add(-2 * weekWindow)

	current, err := s.sumExpenses(userID, nil, nil, &weekAgo, &now)
	if err != nil {
		return 0, err
	}
	previous, err := s.sumExpenses(userID, nil, nil, &twoWeeksAgo, &weekAgo)
	if err != nil {
		return 0, err
	}

	if previous == 0 {
		return 0, nil
	}
	return (current - previous) / previous * 100, nil
}

// NeedsWantsRatio returns the user's all-time spending split by type. Both
// keys are always present, even with no expenses.
func (s *insightService) NeedsWantsRatio(userID string) (map[models.ExpenseType]float64, error) {
	ratio := map[models.ExpenseType]float64{
		models.ExpenseTypeNeed: 0,
		models.ExpenseTypeWant: 0,
	}

	rows := []struct {
		Type  models.ExpenseType
		Total float64
	}{}
	err := s.db.Model(&models.Expense{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Where("user_id = ?", userID).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	for _, row := range rows {
		ratio[row.Type] = row.Total
	}
	return ratio, nil
}

// GenerateTips builds rule-based savings tips from the user's full expense
// history. At most five tips are returned; when more rules fire, a random
// subset is sampled.
func (s *insightService) GenerateTips(userID string) ([]string, error) {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenseCount int64
	if err := s.db.Model(&models.Expense{}).Where("user_id = ?", userID).Count(&expenseCount).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if expenseCount == 0 {
		return []string{"Start tracking your expenses to get personalized savings tips!"}, nil
	}

	tips := []string{
		"Set up automatic transfers to your savings account on payday.",
		"Try the 50/30/20 rule: 50% for needs, 30% for wants, 20% for savings.",
	}

	categoryRules := []struct {
		category  string
		threshold float64
		tip       string
	}{
		{"Food", 100, "Consider meal planning to reduce your food expenses."},
		{"Entertainment", 50, "Look for free or low-cost entertainment options in your area."},
		{"Shopping", 100, "Try a 24-hour waiting period before making non-essential purchases."},
	}
	for _, rule := range categoryRules {
		spent, err := s.sumExpenses(userID, nil, &rule.category, nil, nil)
		if err != nil {
			return nil, err
		}
		if spent > rule.threshold {
			tips = append(tips, rule.tip)
		}
	}

	wants := models.ExpenseTypeWant
	wantsSpent, err := s.sumExpenses(userID, &wants, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	totalSpent, err := s.sumExpenses(userID, nil, nil, nil, nil)
	if err != nil {
		return nil, err
	}
	if totalSpent > 0 {
		wantsPct := wantsSpent / totalSpent * 100
		if wantsPct > 40 {
			tips = append(tips, fmt.Sprintf("Your 'wants' spending is %.1f%% of your total. Try to keep it under 30%%.", wantsPct))
		}
	}

	if !user.ZenMode {
		tips = append(tips, "Activate Zen Mode to help you save money on non-essential purchases.")
	}

	if len(tips) > maxTips {
		sampled := make([]string, 0, maxTips)
		for _, i := range s.rng.Perm(len(tips))[:maxTips] {
			sampled = append(sampled, tips[i])
		}
		tips = sampled
	}
	return tips, nil
}

// ClaimWeeklyBudgetReward grants XP for staying inside the weekly wants
// budget. Claims are rejected once 90% of the budget is used or when no
// budget is set. Staying under half the budget also earns the Budget
// Champion reward, which is issued at most once. Claims are not tracked per
// week; repeated claims keep earning the XP.
func (s *insightService) ClaimWeeklyBudgetReward(userID string) (*BudgetRewardClaim, error) {
	status, err := s.WeeklyWantsStatus(userID)
	if err != nil {
		return nil, err
	}
	if status.Budget <= 0 || status.PercentUsed >= budgetClaimCutoff {
		return nil, apperrors.ErrBudgetExceeded
	}

	var claim *BudgetRewardClaim
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if _, _, err := s.petService.AwardXP(tx, userID, budgetClaimXP); err != nil {
			return err
		}

		claim = &BudgetRewardClaim{XPAwarded: budgetClaimXP}
		if status.PercentUsed < budgetChampionCutoff {
			reward, isNew, err := s.petService.IssueReward(tx, userID,
				"Budget Champion", "Used less than half of the weekly wants budget", "🎖️")
			if err != nil {
				return err
			}
			if isNew {
				claim.Reward = reward
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return claim, nil
}
