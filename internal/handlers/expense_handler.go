package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "finpet/internal/errors"
	"finpet/internal/models"
	"finpet/internal/pagination"
	"finpet/internal/services"
)

// ExpenseHandler handles expense-related requests.
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
	auditService   services.AuditServicer
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService services.ExpenseServicer, auditService services.AuditServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, auditService: auditService}
}

// CreateExpenseRequest represents the request payload for recording an
// expense. Type and category are optional; whichever is missing is
// classified from the description.
type CreateExpenseRequest struct {
	Description string  `json:"description" binding:"required,max=500"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Date        *string `json:"date"`
	Category    *string `json:"category" binding:"omitempty,expense_category"`
	Type        *string `json:"type" binding:"omitempty,expense_type"`
}

// CreateExpense records a new expense
// @Summary     Record an expense
// @Description Record an expense, auto-classifying type and category when omitted
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateExpenseRequest true "Expense details"
// @Success     201 {object} services.ExpenseRecord "Expense recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	var date *time.Time
	if req.Date != nil && *req.Date != "" {
		parsed, parseErr := parseFlexibleTime(*req.Date)
		if parseErr != nil {
			respondWithError(c, parseErr)
			return
		}
		date = &parsed
	}

	var expenseType *models.ExpenseType
	if req.Type != nil {
		t := models.ExpenseType(*req.Type)
		expenseType = &t
	}

	record, err := h.expenseService.RecordExpense(userID, req.Description, req.Amount, date, req.Category, expenseType)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "create_expense", "expense", record.Expense.ID, c.ClientIP(),
		map[string]interface{}{
			"amount":   req.Amount,
			"type":     record.Expense.Type,
			"category": record.Expense.Category,
		})

	c.JSON(http.StatusCreated, record)
}

// GetExpenses returns the user's expense history
// @Summary     Get expense history
// @Description Get a paginated list of the user's expenses with optional filters
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       from_date query string false "Filter by start date (RFC3339 or YYYY-MM-DD)"
// @Param       to_date   query string false "Filter by end date (RFC3339 or YYYY-MM-DD)"
// @Param       type      query string false "Filter by type (Needs, Wants)"
// @Param       category  query string false "Filter by category"
// @Success     200 {object} pagination.PageResponse[models.Expense] "Paginated expenses"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter, err := parseExpenseFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.expenseService.GetUserExpenses(userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parseExpenseFilter(c *gin.Context) (services.ExpenseFilter, error) {
	var filter services.ExpenseFilter

	if raw := c.Query("from_date"); raw != "" {
		t, err := parseFlexibleTime(raw)
		if err != nil {
			return filter, err
		}
		filter.FromDate = &t
	}
	if raw := c.Query("to_date"); raw != "" {
		t, err := parseFlexibleTime(raw)
		if err != nil {
			return filter, err
		}
		filter.ToDate = &t
	}
	if raw := c.Query("type"); raw != "" {
		t := models.ExpenseType(raw)
		if t != models.ExpenseTypeNeed && t != models.ExpenseTypeWant {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid type filter")
		}
		filter.Type = &t
	}
	if raw := c.Query("category"); raw != "" {
		if !models.IsValidCategory(raw) {
			return filter, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid category filter")
		}
		filter.Category = &raw
	}

	return filter, nil
}
