package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	apperrors "finpet/internal/errors"
	"finpet/internal/models"
	"finpet/internal/pagination"
)

// Deposits feed the pet: 1 XP per $50 deposited, capped at 10 XP per deposit.
const (
	depositXPDivisor = 50
	depositXPCap     = 10
)

// fundService handles balance and deposit business logic.
type fundService struct {
	db         *gorm.DB
	petService PetServicer
}

// NewFundService creates a new FundServicer.
func NewFundService(db *gorm.DB, petService PetServicer) FundServicer {
	return &fundService{db: db, petService: petService}
}

// GetBalance returns the user's fund balance, initializing it to zero on
// first access.
func (s *fundService) GetBalance(userID string) (*models.FundBalance, error) {
	return s.getOrCreateBalance(s.db, userID)
}

func (s *fundService) getOrCreateBalance(tx *gorm.DB, userID string) (*models.FundBalance, error) {
	var balance models.FundBalance
	err := tx.Where("user_id = ?", userID).First(&balance).Error
	if err == nil {
		return &balance, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	balance = models.FundBalance{UserID: userID, Balance: 0}
	if err := tx.Create(&balance).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &balance, nil
}

// UpdateBalance applies a signed delta to the user's balance within the
// given transaction. Overdrafts are allowed: the resulting balance is never
// checked against zero.
func (s *fundService) UpdateBalance(tx *gorm.DB, userID string, delta float64) (*models.FundBalance, error) {
	balance, err := s.getOrCreateBalance(tx, userID)
	if err != nil {
		return nil, err
	}

	newBalance := balance.Balance + delta
	if err := tx.Model(balance).Update("balance", newBalance).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	balance.Balance = newBalance
	return balance, nil
}

// AdjustBalance applies a signed delta as its own transaction. This is the
// second leg of the two-step goal contribution flow: contributing to a goal
// and debiting the balance are deliberately separate calls.
func (s *fundService) AdjustBalance(userID string, delta float64) (*models.FundBalance, error) {
	if delta == 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "delta must be non-zero")
	}

	var result *models.FundBalance
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		result, txErr = s.UpdateBalance(tx, userID, delta)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RecordDeposit logs a deposit, credits the balance, awards capped deposit
// XP, and then evaluates savings milestones against the post-deposit
// balance.
func (s *fundService) RecordDeposit(userID string, amount float64, description string) (*DepositRecord, error) {
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if description == "" {
		description = "Deposit"
	}

	var record *DepositRecord
	err := s.db.Transaction(func(tx *gorm.DB) error {
		entry := &models.FundTransaction{
			UserID:      userID,
			Amount:      amount,
			Description: description,
			Date:        time.Now(),
		}
		if err := tx.Create(entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		balance, err := s.UpdateBalance(tx, userID, amount)
		if err != nil {
			return err
		}

		xp := int(amount / depositXPDivisor)
		if xp > depositXPCap {
			xp = depositXPCap
		}
		if xp > 0 {
			if _, _, err := s.petService.AwardXP(tx, userID, xp); err != nil {
				return err
			}
		}

		rewards, bonusXP, err := s.petService.CheckSavingsRewards(tx, userID, balance.Balance)
		if err != nil {
			return err
		}

		record = &DepositRecord{
			Transaction: entry,
			Balance:     balance.Balance,
			XPAwarded:   xp + bonusXP,
			NewRewards:  rewards,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// GetDeposits returns the user's deposit log, newest first.
func (s *fundService) GetDeposits(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.FundTransaction], error) {
	page.Defaults()

	base := s.db.Model(&models.FundTransaction{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var deposits []models.FundTransaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&deposits).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(deposits, page.Page, page.PageSize, totalItems)
	return &result, nil
}
