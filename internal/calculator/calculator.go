// internal/calculator/calculator.go

// Package calculator holds the stateless derived computations: compound
// interest projection and budget-vs-spend check. Pure functions, no
// storage access.
package calculator

import (
	"fmt"
	"math"

	"finance-tracker/internal/domain"
)

// CompoundInterest returns principal * (1 + rate/100)^years.
func CompoundInterest(principal, ratePercent, years float64) (float64, error) {
	if principal < 0 || ratePercent < 0 || years < 0 {
		return 0, fmt.Errorf("inputs must be non-negative: %w", domain.ErrValidation)
	}
	if math.IsNaN(principal) || math.IsNaN(ratePercent) || math.IsNaN(years) {
		return 0, fmt.Errorf("inputs must be numeric: %w", domain.ErrValidation)
	}
	return principal * math.Pow(1+ratePercent/100, years), nil
}

// CheckBudget reports whether totalSpent is over or within budget, with
// the absolute difference formatted to cents.
func CheckBudget(budget, totalSpent float64) string {
	if totalSpent > budget {
		return fmt.Sprintf("Budget exceeded by $%.2f", totalSpent-budget)
	}
	return fmt.Sprintf("Within budget by $%.2f", budget-totalSpent)
}
