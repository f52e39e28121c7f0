// controllers/transaction.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"salonhub-backend/models"
	"salonhub-backend/repository"
	"salonhub-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionController struct {
	Deps
}

type CreateTransactionInput struct {
	Type           models.TransactionType     `json:"type" binding:"required,oneof=income expense"`
	Category       models.TransactionCategory `json:"category" binding:"required,oneof=service supplier salary rent utilities other"`
	Description    string                     `json:"description" binding:"required"`
	Amount         decimal.Decimal            `json:"amount"`
	Date           string                     `json:"date"`
	Paid           bool                       `json:"paid"`
	ProfessionalID *uuid.UUID                 `json:"professionalId"`
	Notes          string                     `json:"notes"`
}

// FinancialSummary only counts paid transactions.
type FinancialSummary struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

type typeTotal struct {
	Type  models.TransactionType
	Total decimal.Decimal
}

func newSummary(totals []typeTotal) FinancialSummary {
	s := FinancialSummary{Income: decimal.Zero, Expense: decimal.Zero}
	for _, t := range totals {
		switch t.Type {
		case models.TransactionIncome:
			s.Income = s.Income.Add(t.Total)
		case models.TransactionExpense:
			s.Expense = s.Expense.Add(t.Total)
		}
	}
	s.Balance = s.Income.Sub(s.Expense)
	return s
}

// paidSummary totals paid transactions with from <= date < to. Zero bounds
// are open.
func paidSummary(ctx context.Context, scoped *repository.Scoped, from, to time.Time) (FinancialSummary, error) {
	q := scoped.Model(ctx, &models.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Where("paid = ?", true).
		Group("type")
	if !from.IsZero() {
		q = q.Where("date >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("date < ?", to)
	}

	var totals []typeTotal
	if err := q.Scan(&totals).Error; err != nil {
		return FinancialSummary{}, err
	}
	return newSummary(totals), nil
}

func (tc *TransactionController) GetTransactions(c *gin.Context) {
	q := tc.scoped(c).Query(c.Request.Context()).Order("date DESC, created_at DESC")
	if t := c.Query("type"); t != "" {
		q = q.Where("type = ?", t)
	}
	if paid := c.Query("paid"); paid != "" {
		q = q.Where("paid = ?", paid == "true")
	}

	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve transactions")
		return
	}
	c.JSON(http.StatusOK, transactions)
}

func (tc *TransactionController) CreateTransaction(c *gin.Context) {
	var input CreateTransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	if !input.Amount.IsPositive() {
		utils.RespondWithError(c, http.StatusBadRequest, "Amount must be positive")
		return
	}

	date := utils.DateOnly(tc.now())
	if input.Date != "" {
		d, err := utils.ParseDate(input.Date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		date = d
	}

	entry := models.Transaction{
		Type:           input.Type,
		Category:       input.Category,
		Description:    input.Description,
		Amount:         input.Amount.Round(2),
		Date:           date,
		Paid:           input.Paid,
		ProfessionalID: input.ProfessionalID,
		Notes:          input.Notes,
	}
	if err := tc.scoped(c).Create(c.Request.Context(), &entry); err != nil {
		tc.respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// MarkPaid settles a pending transaction.
func (tc *TransactionController) MarkPaid(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	res := tc.scoped(c).Model(c.Request.Context(), &models.Transaction{}).
		Where("id = ?", id).
		Update("paid", true)
	if res.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update transaction")
		return
	}
	if res.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Transaction not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction marked as paid"})
}

func (tc *TransactionController) GetSummary(c *gin.Context) {
	var from, to time.Time
	var err error
	if raw := c.Query("from"); raw != "" {
		if from, err = utils.ParseDate(raw); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = utils.ParseDate(raw); err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		to = to.AddDate(0, 0, 1)
	}

	summary, err := paidSummary(c.Request.Context(), tc.scoped(c), from, to)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}
