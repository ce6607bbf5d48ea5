package services

import (
	"time"

	"gorm.io/gorm"

	"finpet/internal/models"
	"finpet/internal/pagination"
)

// ExpenseClassifier is the two-stage classification pipeline consumed by the
// expense service. Stage one resolves the need/want type from the
// description; stage two picks a category conditioned on the resolved type.
type ExpenseClassifier interface {
	ClassifyType(description string) (models.ExpenseType, float64)
	ClassifyCategory(description string, expenseType models.ExpenseType) (string, float64)
}

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(username, password string) (*models.User, error)
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(username, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
	SetZenMode(userID string, enabled bool) (*models.User, error)
	SetWantsBudget(userID string, budget float64) (*models.User, error)
}

// ExpenseFilter holds optional filter parameters for listing expenses.
type ExpenseFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	Type     *models.ExpenseType
	Category *string
}

// ExpenseRecord is the result of recording an expense, including how missing
// classification fields were resolved. Confidence is only meaningful when
// AutoClassified is true; a low value signals a best-effort default guess.
type ExpenseRecord struct {
	Expense        *models.Expense `json:"expense"`
	AutoClassified bool            `json:"auto_classified"`
	Confidence     float64         `json:"confidence,omitempty"`
	XPAwarded      int             `json:"xp_awarded"`
}

// ExpenseServicer defines the contract for recording and listing expenses.
type ExpenseServicer interface {
	RecordExpense(userID, description string, amount float64, date *time.Time, category *string, expenseType *models.ExpenseType) (*ExpenseRecord, error)
	GetUserExpenses(userID string, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error)
}

// DepositRecord is the result of recording a deposit: the logged transaction,
// the post-deposit balance, the total XP awarded (deposit XP plus savings
// milestone bonuses), and any newly issued savings rewards.
type DepositRecord struct {
	Transaction *models.FundTransaction `json:"transaction"`
	Balance     float64                 `json:"balance"`
	XPAwarded   int                     `json:"xp_awarded"`
	NewRewards  []models.Reward         `json:"new_rewards"`
}

// FundServicer defines the contract for balance and deposit operations.
type FundServicer interface {
	GetBalance(userID string) (*models.FundBalance, error)
	RecordDeposit(userID string, amount float64, description string) (*DepositRecord, error)
	AdjustBalance(userID string, delta float64) (*models.FundBalance, error)
	UpdateBalance(tx *gorm.DB, userID string, delta float64) (*models.FundBalance, error)
	GetDeposits(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.FundTransaction], error)
}

// ContributionResult is the outcome of a goal contribution. Completed is true
// only when this contribution flipped the goal to completed.
type ContributionResult struct {
	Goal      *models.Goal `json:"goal"`
	Completed bool         `json:"completed"`
	XPAwarded int          `json:"xp_awarded"`
}

// GoalServicer defines the contract for savings goals. Contributions never
// debit the fund balance; the debit is a separate explicit
// FundServicer.AdjustBalance call made by the caller.
type GoalServicer interface {
	CreateGoal(userID, name string, targetAmount, initialAmount float64) (*models.Goal, error)
	GetUserGoals(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Goal], error)
	GetGoalByID(userID, goalID string) (*models.Goal, error)
	ContributeToGoal(userID, goalID string, amount float64) (*ContributionResult, error)
}

// PetServicer is the progression engine: XP awards, level transitions, and
// idempotent milestone rewards. Mutating methods take the transaction handle
// of the financial operation that triggered them so progression state moves
// atomically with the money.
type PetServicer interface {
	GetOrCreatePet(userID string) (*models.FinPet, error)
	RenamePet(userID, name string) (*models.FinPet, error)
	AwardXP(tx *gorm.DB, userID string, amount int) (*models.FinPet, bool, error)
	IssueReward(tx *gorm.DB, userID, name, description, icon string) (*models.Reward, bool, error)
	CheckSavingsRewards(tx *gorm.DB, userID string, balance float64) ([]models.Reward, int, error)
	GetRewards(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Reward], error)
}

// WeeklyWantsStatus summarizes the trailing-week wants budget.
type WeeklyWantsStatus struct {
	Budget      float64 `json:"budget"`
	Spent       float64 `json:"spent"`
	Remaining   float64 `json:"remaining"`
	PercentUsed float64 `json:"percent_used"`
}

// BudgetRewardClaim is the outcome of claiming the weekly under-budget
// reward. Reward is set only when the claim also earned Budget Champion.
type BudgetRewardClaim struct {
	XPAwarded int            `json:"xp_awarded"`
	Reward    *models.Reward `json:"reward,omitempty"`
}

// InsightServicer derives budget consumption and rule-based tips from
// historical records.
type InsightServicer interface {
	WeeklyWantsSpending(userID string) (float64, error)
	WeeklyWantsStatus(userID string) (*WeeklyWantsStatus, error)
	ExpenseTrend(userID string) (float64, error)
	NeedsWantsRatio(userID string) (map[models.ExpenseType]float64, error)
	GenerateTips(userID string) ([]string, error)
	ClaimWeeklyBudgetReward(userID string) (*BudgetRewardClaim, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
