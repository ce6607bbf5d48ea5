package services

import (
	"testing"

	"finpet/internal/models"
	"finpet/internal/pagination"
	"finpet/internal/testutil"
)

func TestCreateGoal(t *testing.T) {
	t.Run("creates_goal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		goalSvc := NewGoalService(db, NewPetService(db))
		user := testutil.CreateTestUser(t, db)

		goal, err := goalSvc.CreateGoal(user.ID, "New laptop", 1200, 0)
		testutil.AssertNoError(t, err)

		if goal.Name != "New laptop" || goal.TargetAmount != 1200 {
			t.Errorf("unexpected goal: %+v", goal)
		}
		if goal.Completed {
			t.Error("expected new goal to be incomplete")
		}
	})

	t.Run("initial_amount_can_complete", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		goalSvc := NewGoalService(db, NewPetService(db))
		user := testutil.CreateTestUser(t, db)

		goal, err := goalSvc.CreateGoal(user.ID, "Emergency fund", 100, 100)
		testutil.AssertNoError(t, err)
		if !goal.Completed {
			t.Error("expected goal created at target to be completed")
		}
	})

	t.Run("validation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		goalSvc := NewGoalService(db, NewPetService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := goalSvc.CreateGoal(user.ID, "", 100, 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = goalSvc.CreateGoal(user.ID, "Bad target", 0, 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = goalSvc.CreateGoal(user.ID, "Bad initial", 100, -1)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestContributeToGoal(t *testing.T) {
	t.Run("progress_earns_small_xp", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		petSvc := NewPetService(db)
		goalSvc := NewGoalService(db, petSvc)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 500, 0)

		result, err := goalSvc.ContributeToGoal(user.ID, goal.ID, 100)
		testutil.AssertNoError(t, err)

		if result.Completed {
			t.Error("expected goal still incomplete")
		}
		if result.XPAwarded != 3 {
			t.Errorf("expected 3 XP, got %d", result.XPAwarded)
		}
		if result.Goal.CurrentAmount != 100 {
			t.Errorf("expected current 100, got %f", result.Goal.CurrentAmount)
		}
	})

	t.Run("completion_earns_bonus_and_reward", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		petSvc := NewPetService(db)
		goalSvc := NewGoalService(db, petSvc)
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 500, 450)

		result, err := goalSvc.ContributeToGoal(user.ID, goal.ID, 60)
		testutil.AssertNoError(t, err)

		if !result.Completed {
			t.Fatal("expected completion")
		}
		if result.XPAwarded != 25 {
			t.Errorf("expected 25 XP, got %d", result.XPAwarded)
		}
		if result.Goal.CurrentAmount != 510 {
			t.Errorf("expected current 510, got %f", result.Goal.CurrentAmount)
		}

		pet, err := petSvc.GetOrCreatePet(user.ID)
		testutil.AssertNoError(t, err)
		var reward models.Reward
		if err := db.Where("pet_id = ? AND name = ?", pet.ID, "Goal Achieved").First(&reward).Error; err != nil {
			t.Fatalf("expected Goal Achieved reward: %v", err)
		}
	})

	t.Run("contribution_after_completion_earns_progress_xp", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		goalSvc := NewGoalService(db, NewPetService(db))
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 100, 100)

		result, err := goalSvc.ContributeToGoal(user.ID, goal.ID, 50)
		testutil.AssertNoError(t, err)

		if result.Completed {
			t.Error("expected no completion transition on an already completed goal")
		}
		if result.XPAwarded != 3 {
			t.Errorf("expected 3 XP, got %d", result.XPAwarded)
		}
		if !result.Goal.Completed {
			t.Error("expected goal to stay completed")
		}
	})

	t.Run("unknown_goal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		goalSvc := NewGoalService(db, NewPetService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := goalSvc.ContributeToGoal(user.ID, "00000000-0000-0000-0000-000000000000", 10)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})

	t.Run("other_users_goal", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		goalSvc := NewGoalService(db, NewPetService(db))
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, other.ID, 100, 0)

		_, err := goalSvc.ContributeToGoal(user.ID, goal.ID, 10)
		testutil.AssertAppError(t, err, "GOAL_NOT_FOUND")
	})

	t.Run("rejects_non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		goalSvc := NewGoalService(db, NewPetService(db))
		user := testutil.CreateTestUser(t, db)
		goal := testutil.CreateTestGoal(t, db, user.ID, 100, 0)

		_, err := goalSvc.ContributeToGoal(user.ID, goal.ID, 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserGoals(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	goalSvc := NewGoalService(db, NewPetService(db))
	user := testutil.CreateTestUser(t, db)
	testutil.CreateTestGoal(t, db, user.ID, 100, 0)
	testutil.CreateTestGoal(t, db, user.ID, 200, 50)

	result, err := goalSvc.GetUserGoals(user.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)
	if result.TotalItems != 2 {
		t.Errorf("expected 2 goals, got %d", result.TotalItems)
	}
}

func TestGetGoalByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	goalSvc := NewGoalService(db, NewPetService(db))
	user := testutil.CreateTestUser(t, db)
	goal := testutil.CreateTestGoal(t, db, user.ID, 100, 25)

	got, err := goalSvc.GetGoalByID(user.ID, goal.ID)
	testutil.AssertNoError(t, err)
	if got.ID != goal.ID {
		t.Errorf("expected goal %s, got %s", goal.ID, got.ID)
	}
	if got.Progress() != 0.25 {
		t.Errorf("expected progress 0.25, got %f", got.Progress())
	}
	if got.Remaining() != 75 {
		t.Errorf("expected remaining 75, got %f", got.Remaining())
	}
}
