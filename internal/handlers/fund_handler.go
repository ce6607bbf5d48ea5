package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "finpet/internal/errors"
	"finpet/internal/pagination"
	"finpet/internal/services"
)

// FundHandler handles balance and deposit requests.
type FundHandler struct {
	fundService  services.FundServicer
	auditService services.AuditServicer
}

// NewFundHandler creates a new FundHandler.
func NewFundHandler(fundService services.FundServicer, auditService services.AuditServicer) *FundHandler {
	return &FundHandler{fundService: fundService, auditService: auditService}
}

// CreateDepositRequest represents the request payload for recording a deposit
type CreateDepositRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Description string  `json:"description" binding:"max=500"`
}

// AdjustBalanceRequest represents the request payload for a manual balance
// adjustment. Used as the second leg of a goal contribution, or to correct
// the balance.
type AdjustBalanceRequest struct {
	Delta float64 `json:"delta" binding:"required"`
}

// GetBalance returns the user's fund balance
// @Summary     Get fund balance
// @Description Get the authenticated user's current fund balance
// @Tags        funds
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.FundBalance "Current balance"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /funds/balance [get]
func (h *FundHandler) GetBalance(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	balance, err := h.fundService.GetBalance(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// CreateDeposit records a deposit
// @Summary     Record a deposit
// @Description Record a deposit, credit the balance, and award deposit XP and savings milestones
// @Tags        funds
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateDepositRequest true "Deposit details"
// @Success     201 {object} services.DepositRecord "Deposit recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /funds/deposits [post]
func (h *FundHandler) CreateDeposit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	record, err := h.fundService.RecordDeposit(userID, req.Amount, req.Description)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "create_deposit", "fund_transaction", record.Transaction.ID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount})

	c.JSON(http.StatusCreated, record)
}

// AdjustBalance applies a manual balance adjustment
// @Summary     Adjust fund balance
// @Description Apply a signed delta to the fund balance without logging a deposit
// @Tags        funds
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AdjustBalanceRequest true "Signed delta"
// @Success     200 {object} models.FundBalance "Updated balance"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /funds/adjust [post]
func (h *FundHandler) AdjustBalance(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AdjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	balance, err := h.fundService.AdjustBalance(userID, req.Delta)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "adjust_balance", "fund_balance", balance.ID, c.ClientIP(),
		map[string]interface{}{"delta": req.Delta})

	c.JSON(http.StatusOK, gin.H{"balance": balance})
}

// GetDeposits returns the user's deposit log
// @Summary     Get deposit log
// @Description Get a paginated list of the user's deposits, newest first
// @Tags        funds
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.FundTransaction] "Paginated deposits"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /funds/deposits [get]
func (h *FundHandler) GetDeposits(c *gin.Context) {
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

	result, err := h.fundService.GetDeposits(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
