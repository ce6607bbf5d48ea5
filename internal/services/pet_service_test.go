package services

import (
	"testing"

	"finpet/internal/models"
	"finpet/internal/pagination"
	"finpet/internal/testutil"
)

func TestGetOrCreatePet(t *testing.T) {
	t.Run("creates_with_defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		petSvc := NewPetService(db)
		user := testutil.CreateTestUser(t, db)

		pet, err := petSvc.GetOrCreatePet(user.ID)
		testutil.AssertNoError(t, err)

		if pet.Level != models.PetStartLevel {
			t.Errorf("expected level %d, got %d", models.PetStartLevel, pet.Level)
		}
		if pet.XP != 0 {
			t.Errorf("expected 0 XP, got %d", pet.XP)
		}
		if pet.NextLevelXP != models.PetStartNextLevelXP {
			t.Errorf("expected next level XP %d, got %d", models.PetStartNextLevelXP, pet.NextLevelXP)
		}
		if pet.Name != models.PetDefaultName {
			t.Errorf("expected default name %q, got %q", models.PetDefaultName, pet.Name)
		}
	})

	t.Run("returns_existing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		petSvc := NewPetService(db)
		user := testutil.CreateTestUser(t, db)

		first, err := petSvc.GetOrCreatePet(user.ID)
		testutil.AssertNoError(t, err)
		second, err := petSvc.GetOrCreatePet(user.ID)
		testutil.AssertNoError(t, err)

		if first.ID != second.ID {
			t.Errorf("expected same pet, got %s and %s", first.ID, second.ID)
		}
	})
}

func TestAwardXP(t *testing.T) {
	t.Run("accumulates_below_threshold", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		petSvc := NewPetService(db)
		user := testutil.CreateTestUser(t, db)

		pet, leveledUp, err := petSvc.AwardXP(db, user.ID, 30)
		testutil.AssertNoError(t, err)

		if leveledUp {
			t.Error("expected no level-up")
		}
		if pet.Level != 1 || pet.XP != 30 || pet.NextLevelXP != 75 {
			t.Errorf("expected level 1, xp 30, next 75; got level %d, xp %d, next %d",
				pet.Level, pet.XP, pet.NextLevelXP)
		}
	})

	t.Run("single_level_up_with_carry_over", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		petSvc := NewPetService(db)
		user := testutil.CreateTestUser(t, db)

		pet, leveledUp, err := petSvc.AwardXP(db, user.ID, 80)
		testutil.AssertNoError(t, err)

		if !leveledUp {
			t.Fatal("expected a level-up")
		}
		if pet.Level != 2 {
			t.Errorf("expected level 2, got %d", pet.Level)
		}
		if pet.XP != 5 {
			t.Errorf("expected 5 carry-over XP, got %d", pet.XP)
		}
		if pet.NextLevelXP != 97 {
			t.Errorf("expected next threshold 97, got %d", pet.NextLevelXP)
		}
	})

	t.Run("at_most_one_level_per_award", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		petSvc := NewPetService(db)
		user := testutil.CreateTestUser(t, db)

		// A huge award still only advances one level; the excess waits for
		// the next award to resolve.
		pet, leveledUp, err := petSvc.AwardXP(db, user.ID, 500)
		testutil.AssertNoError(t, err)

		if !leveledUp {
			t.Fatal("expected a level-up")
		}
		if pet.Level != 2 {
			t.Errorf("expected level 2, got %d", pet.Level)
		}
		if pet.XP != 425 {
			t.Errorf("expected 425 carry-over XP, got %d", pet.XP)
		}

		pet, leveledUp, err = petSvc.AwardXP(db, user.ID, 1)
		testutil.AssertNoError(t, err)
		if !leveledUp {
			t.Fatal("expected the carried-over XP to resolve another level")
		}
		if pet.Level != 3 {
			t.Errorf("expected level 3, got %d", pet.Level)
		}
	})

	t.Run("non_positive_is_noop", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		petSvc := NewPetService(db)
		user := testutil.CreateTestUser(t, db)

		pet, leveledUp, err := petSvc.AwardXP(db, user.ID, 0)
		testutil.AssertNoError(t, err)
		if leveledUp || pet.XP != 0 {
			t.Errorf("expected untouched pet, got xp %d leveledUp %v", pet.XP, leveledUp)
		}

		pet, _, err = petSvc.AwardXP(db, user.ID, -10)
		testutil.AssertNoError(t, err)
		if pet.XP != 0 {
			t.Errorf("expected untouched pet, got xp %d", pet.XP)
		}
	})

	t.Run("level_milestone_issues_reward", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		petSvc := NewPetService(db)
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestPet(t, db, user.ID, 4, 0, 10)

		pet, leveledUp, err := petSvc.AwardXP(db, user.ID, 10)
		testutil.AssertNoError(t, err)
		if !leveledUp || pet.Level != 5 {
			t.Fatalf("expected level 5, got level %d leveledUp %v", pet.Level, leveledUp)
		}

		var reward models.Reward
		err = db.Where("pet_id = ? AND name = ?", pet.ID, "Level 5 Badge").First(&reward).Error
		if err != nil {
			t.Fatalf("expected Level 5 Badge reward: %v", err)
		}
	})
}

func TestRenamePet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	petSvc := NewPetService(db)
	user := testutil.CreateTestUser(t, db)

	pet, err := petSvc.RenamePet(user.ID, "Coin")
	testutil.AssertNoError(t, err)
	if pet.Name != "Coin" {
		t.Errorf("expected name Coin, got %q", pet.Name)
	}

	_, err = petSvc.RenamePet(user.ID, "")
	testutil.AssertAppError(t, err, "INVALID_INPUT")
}

func TestIssueReward(t *testing.T) {
	t.Run("idempotent_by_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		petSvc := NewPetService(db)
		user := testutil.CreateTestUser(t, db)

		first, isNew, err := petSvc.IssueReward(db, user.ID, "Saving Starter", "Saved your first $100", "💰")
		testutil.AssertNoError(t, err)
		if !isNew {
			t.Fatal("expected first issue to be new")
		}

		second, isNew, err := petSvc.IssueReward(db, user.ID, "Saving Starter", "different description", "x")
		testutil.AssertNoError(t, err)
		if isNew {
			t.Error("expected repeat issue to be deduplicated")
		}
		if second.ID != first.ID {
			t.Errorf("expected existing reward back, got %s and %s", first.ID, second.ID)
		}
		if second.Description != first.Description {
			t.Error("expected existing reward to be returned unchanged")
		}
	})

	t.Run("empty_name", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		petSvc := NewPetService(db)
		user := testutil.CreateTestUser(t, db)

		_, _, err := petSvc.IssueReward(db, user.ID, "", "desc", "x")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestCheckSavingsRewards(t *testing.T) {
	t.Run("issues_all_reached_milestones", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		petSvc := NewPetService(db)
		user := testutil.CreateTestUser(t, db)

		rewards, bonusXP, err := petSvc.CheckSavingsRewards(db, user.ID, 550)
		testutil.AssertNoError(t, err)

		if len(rewards) != 2 {
			t.Fatalf("expected 2 rewards, got %d", len(rewards))
		}
		if rewards[0].Name != "Saving Starter" || rewards[1].Name != "Penny Pincher" {
			t.Errorf("unexpected reward order: %s, %s", rewards[0].Name, rewards[1].Name)
		}
		// 100/100 + 500/100
		if bonusXP != 6 {
			t.Errorf("expected 6 bonus XP, got %d", bonusXP)
		}
	})

	t.Run("below_first_threshold", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		petSvc := NewPetService(db)
		user := testutil.CreateTestUser(t, db)

		rewards, bonusXP, err := petSvc.CheckSavingsRewards(db, user.ID, 99.99)
		testutil.AssertNoError(t, err)
		if len(rewards) != 0 || bonusXP != 0 {
			t.Errorf("expected nothing issued, got %d rewards, %d XP", len(rewards), bonusXP)
		}
	})

	t.Run("never_reissues_after_oscillation", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		petSvc := NewPetService(db)
		user := testutil.CreateTestUser(t, db)

		rewards, _, err := petSvc.CheckSavingsRewards(db, user.ID, 150)
		testutil.AssertNoError(t, err)
		if len(rewards) != 1 {
			t.Fatalf("expected 1 reward, got %d", len(rewards))
		}

		// Balance dips below and re-crosses the threshold.
		rewards, bonusXP, err := petSvc.CheckSavingsRewards(db, user.ID, 50)
		testutil.AssertNoError(t, err)
		if len(rewards) != 0 {
			t.Errorf("expected nothing issued below threshold, got %d", len(rewards))
		}

		rewards, bonusXP, err = petSvc.CheckSavingsRewards(db, user.ID, 150)
		testutil.AssertNoError(t, err)
		if len(rewards) != 0 || bonusXP != 0 {
			t.Errorf("expected no re-issue, got %d rewards, %d XP", len(rewards), bonusXP)
		}
	})
}

func TestGetRewards(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	petSvc := NewPetService(db)
	user := testutil.CreateTestUser(t, db)

	_, _, err := petSvc.CheckSavingsRewards(db, user.ID, 1200)
	testutil.AssertNoError(t, err)

	result, err := petSvc.GetRewards(user.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)

	if result.TotalItems != 3 {
		t.Fatalf("expected 3 rewards, got %d", result.TotalItems)
	}
	if result.Data[0].Name != "Saving Starter" {
		t.Errorf("expected award order, got %s first", result.Data[0].Name)
	}
}
