// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"finpet/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("expense_type", validateExpenseType)
		_ = v.RegisterValidation("expense_category", validateExpenseCategory)
	}
}

func validateExpenseType(fl validator.FieldLevel) bool {
	switch models.ExpenseType(fl.Field().String()) {
	case models.ExpenseTypeNeed, models.ExpenseTypeWant:
		return true
	}
	return false
}

func validateExpenseCategory(fl validator.FieldLevel) bool {
	return models.IsValidCategory(fl.Field().String())
}
