package services

import (
	"testing"

	"finpet/internal/pagination"
	"finpet/internal/testutil"
)

func TestGetBalance(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	fundSvc := NewFundService(db, NewPetService(db))
	user := testutil.CreateTestUser(t, db)

	balance, err := fundSvc.GetBalance(user.ID)
	testutil.AssertNoError(t, err)
	if balance.Balance != 0 {
		t.Errorf("expected zero starting balance, got %f", balance.Balance)
	}
}

func TestRecordDeposit(t *testing.T) {
	t.Run("credits_balance_and_awards_xp", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		petSvc := NewPetService(db)
		fundSvc := NewFundService(db, petSvc)
		user := testutil.CreateTestUser(t, db)

		record, err := fundSvc.RecordDeposit(user.ID, 120, "Paycheck")
		testutil.AssertNoError(t, err)

		if record.Balance != 120 {
			t.Errorf("expected balance 120, got %f", record.Balance)
		}
		// 2 deposit XP plus the $100 milestone bonus.
		if record.XPAwarded != 3 {
			t.Errorf("expected 3 XP, got %d", record.XPAwarded)
		}
		if len(record.NewRewards) != 1 || record.NewRewards[0].Name != "Saving Starter" {
			t.Fatalf("expected Saving Starter reward, got %+v", record.NewRewards)
		}
	})

	t.Run("deposit_xp_is_capped", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		petSvc := NewPetService(db)
		fundSvc := NewFundService(db, petSvc)
		user := testutil.CreateTestUser(t, db)

		record, err := fundSvc.RecordDeposit(user.ID, 550, "")
		testutil.AssertNoError(t, err)

		// Deposit XP caps at 10; the $100 and $500 milestones add 1 and 5.
		if record.XPAwarded != 16 {
			t.Errorf("expected 16 XP, got %d", record.XPAwarded)
		}
		if len(record.NewRewards) != 2 {
			t.Errorf("expected 2 savings rewards, got %d", len(record.NewRewards))
		}
		if record.Transaction.Description != "Deposit" {
			t.Errorf("expected default description, got %q", record.Transaction.Description)
		}
	})

	t.Run("small_deposit_earns_no_xp", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		fundSvc := NewFundService(db, NewPetService(db))
		user := testutil.CreateTestUser(t, db)

		record, err := fundSvc.RecordDeposit(user.ID, 49.99, "")
		testutil.AssertNoError(t, err)
		if record.XPAwarded != 0 {
			t.Errorf("expected 0 XP, got %d", record.XPAwarded)
		}
	})

	t.Run("rejects_non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		fundSvc := NewFundService(db, NewPetService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := fundSvc.RecordDeposit(user.ID, 0, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")

		_, err = fundSvc.RecordDeposit(user.ID, -50, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("milestones_not_reissued_on_later_deposits", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		fundSvc := NewFundService(db, NewPetService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := fundSvc.RecordDeposit(user.ID, 150, "")
		testutil.AssertNoError(t, err)

		record, err := fundSvc.RecordDeposit(user.ID, 60, "")
		testutil.AssertNoError(t, err)
		if len(record.NewRewards) != 0 {
			t.Errorf("expected no new rewards, got %d", len(record.NewRewards))
		}
		if record.XPAwarded != 1 {
			t.Errorf("expected 1 deposit XP, got %d", record.XPAwarded)
		}
	})
}

func TestAdjustBalance(t *testing.T) {
	t.Run("applies_signed_delta", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		fundSvc := NewFundService(db, NewPetService(db))
		user := testutil.CreateTestUser(t, db)
		testutil.CreateTestBalance(t, db, user.ID, 200)

		balance, err := fundSvc.AdjustBalance(user.ID, -75)
		testutil.AssertNoError(t, err)
		if balance.Balance != 125 {
			t.Errorf("expected balance 125, got %f", balance.Balance)
		}
	})

	t.Run("allows_overdraft", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		fundSvc := NewFundService(db, NewPetService(db))
		user := testutil.CreateTestUser(t, db)

		balance, err := fundSvc.AdjustBalance(user.ID, -30)
		testutil.AssertNoError(t, err)
		if balance.Balance != -30 {
			t.Errorf("expected balance -30, got %f", balance.Balance)
		}
	})

	t.Run("rejects_zero_delta", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		fundSvc := NewFundService(db, NewPetService(db))
		user := testutil.CreateTestUser(t, db)

		_, err := fundSvc.AdjustBalance(user.ID, 0)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetDeposits(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	fundSvc := NewFundService(db, NewPetService(db))
	user := testutil.CreateTestUser(t, db)

	for _, amount := range []float64{10, 20, 30} {
		_, err := fundSvc.RecordDeposit(user.ID, amount, "")
		testutil.AssertNoError(t, err)
	}

	result, err := fundSvc.GetDeposits(user.ID, pagination.PageRequest{})
	testutil.AssertNoError(t, err)

	if result.TotalItems != 3 {
		t.Fatalf("expected 3 deposits, got %d", result.TotalItems)
	}
}
