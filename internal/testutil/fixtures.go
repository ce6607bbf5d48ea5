package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"finpet/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique username.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	username := fmt.Sprintf("user%d", nextID())
	return CreateTestUserWithUsername(t, db, username)
}

// CreateTestUserWithUsername creates a user with the given username.
func CreateTestUserWithUsername(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Password: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestExpense creates an expense with the given type, category, amount,
// and date.
func CreateTestExpense(t *testing.T, db *gorm.DB, userID string, amount float64, expenseType models.ExpenseType, category string, date time.Time) *models.Expense {
	t.Helper()

	expense := &models.Expense{
		UserID:      userID,
		Description: fmt.Sprintf("Test expense %d", nextID()),
		Amount:      amount,
		Date:        date,
		Category:    category,
		Type:        expenseType,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

// CreateTestGoal creates a savings goal.
func CreateTestGoal(t *testing.T, db *gorm.DB, userID string, target, current float64) *models.Goal {
	t.Helper()

	goal := &models.Goal{
		UserID:        userID,
		Name:          fmt.Sprintf("Test Goal %d", nextID()),
		TargetAmount:  target,
		CurrentAmount: current,
		Completed:     current >= target,
	}
	if err := db.Create(goal).Error; err != nil {
		t.Fatalf("failed to create test goal: %v", err)
	}
	return goal
}

// CreateTestPet creates a pet with the given progression state.
func CreateTestPet(t *testing.T, db *gorm.DB, userID string, level, xp, nextLevelXP int) *models.FinPet {
	t.Helper()

	pet := &models.FinPet{
		UserID:      userID,
		Level:       level,
		XP:          xp,
		NextLevelXP: nextLevelXP,
		Name:        models.PetDefaultName,
		LastActive:  time.Now(),
	}
	if err := db.Create(pet).Error; err != nil {
		t.Fatalf("failed to create test pet: %v", err)
	}
	return pet
}

// CreateTestBalance creates a fund balance with the given amount.
func CreateTestBalance(t *testing.T, db *gorm.DB, userID string, balance float64) *models.FundBalance {
	t.Helper()

	fb := &models.FundBalance{UserID: userID, Balance: balance}
	if err := db.Create(fb).Error; err != nil {
		t.Fatalf("failed to create test balance: %v", err)
	}
	return fb
}
