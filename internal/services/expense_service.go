package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"finpet/internal/classifier"
	apperrors "finpet/internal/errors"
	"finpet/internal/logger"
	"finpet/internal/models"
	"finpet/internal/pagination"
)

// Logging a need earns a small XP reward; wants earn nothing.
const needExpenseXP = 5

// expenseService handles expense recording and history.
type expenseService struct {
	db          *gorm.DB
	classifier  ExpenseClassifier
	petService  PetServicer
	fundService FundServicer
}

// NewExpenseService creates a new ExpenseServicer.
func NewExpenseService(db *gorm.DB, c ExpenseClassifier, petService PetServicer, fundService FundServicer) ExpenseServicer {
	return &expenseService{db: db, classifier: c, petService: petService, fundService: fundService}
}

// RecordExpense validates and records an expense, classifying whichever of
// type and category the caller left unset, then atomically debits the
// balance and awards XP for needs. Validation happens before any write; a
// rejected expense leaves no partial state behind.
func (s *expenseService) RecordExpense(userID, description string, amount float64, date *time.Time, category *string, expenseType *models.ExpenseType) (*ExpenseRecord, error) {
	if description == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "description is required")
	}
	if amount <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if expenseType != nil && *expenseType != models.ExpenseTypeNeed && *expenseType != models.ExpenseTypeWant {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be Needs or Wants")
	}
	if category != nil && !models.IsValidCategory(*category) {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown category")
	}

	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Resolve missing classification fields. The type decision comes first
	// because the category model is conditioned on it.
	autoClassified := false
	confidence := 1.0

	resolvedType := models.ExpenseType("")
	if expenseType != nil {
		resolvedType = *expenseType
	} else {
		var conf float64
		resolvedType, conf = s.classifier.ClassifyType(description)
		autoClassified = true
		if conf < confidence {
			confidence = conf
		}
	}

	resolvedCategory := ""
	if category != nil {
		resolvedCategory = *category
	} else {
		var conf float64
		resolvedCategory, conf = s.classifier.ClassifyCategory(description, resolvedType)
		autoClassified = true
		if conf < confidence {
			confidence = conf
		}
	}

	if autoClassified && confidence < classifier.LowConfidence {
		logger.Get().Warnw("low-confidence expense classification",
			"user_id", userID,
			"type", resolvedType,
			"category", resolvedCategory,
			"confidence", confidence,
		)
	}

	expenseDate := time.Now()
	if date != nil {
		expenseDate = *date
	}

	expense := &models.Expense{
		UserID:      userID,
		Description: description,
		Amount:      amount,
		Date:        expenseDate,
		Category:    resolvedCategory,
		Type:        resolvedType,
	}

	xp := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(expense).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if _, err := s.fundService.UpdateBalance(tx, userID, -amount); err != nil {
			return err
		}

		if expense.Type == models.ExpenseTypeNeed {
			if _, _, err := s.petService.AwardXP(tx, userID, needExpenseXP); err != nil {
				return err
			}
			xp = needExpenseXP
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	record := &ExpenseRecord{
		Expense:        expense,
		AutoClassified: autoClassified,
		XPAwarded:      xp,
	}
	if autoClassified {
		record.Confidence = confidence
	}
	return record, nil
}

// GetUserExpenses returns the user's expense history, newest first, with
// optional date, type, and category filters.
func (s *expenseService) GetUserExpenses(userID string, page pagination.PageRequest, filter ExpenseFilter) (*pagination.PageResponse[models.Expense], error) {
	page.Defaults()

	base := s.db.Model(&models.Expense{}).Where("user_id = ?", userID)
	base = applyExpenseFilters(base, filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var expenses []models.Expense
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC").
		Find(&expenses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(expenses, page.Page, page.PageSize, totalItems)
	return &result, nil
}

func applyExpenseFilters(db *gorm.DB, filter ExpenseFilter) *gorm.DB {
	if filter.FromDate != nil {
		db = db.Where("date >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		db = db.Where("date <= ?", *filter.ToDate)
	}
	if filter.Type != nil {
		db = db.Where("type = ?", *filter.Type)
	}
	if filter.Category != nil {
		db = db.Where("category = ?", *filter.Category)
	}
	return db
}
