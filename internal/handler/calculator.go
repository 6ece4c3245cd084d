// internal/handler/calculator.go
package handler

import (
	"net/http"

	"finance-tracker/internal/calculator"

	"github.com/gin-gonic/gin"
)

type CalculatorHandler struct{}

func NewCalculatorHandler() *CalculatorHandler {
	return &CalculatorHandler{}
}

// CalculateInterest godoc
// @Summary Compound interest projection
// @Description futureValue = principal * (1 + rate/100)^years. No auth required.
// @Accept json
// @Produce json
// @Param request body InterestRequest true "Projection inputs"
// @Success 200 {object} map[string]float64
// @Failure 400 {object} map[string]string
// @Router /api/calculate-interest [post]
func (h *CalculatorHandler) CalculateInterest(c *gin.Context) {
	var req InterestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	futureValue, err := calculator.CompoundInterest(*req.Principal, *req.Rate, *req.Years)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"futureValue": futureValue})
}

// CheckBudget godoc
// @Summary Compare total spend against a budget
// @Accept json
// @Produce json
// @Param request body BudgetRequest true "Budget and spend"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/check-budget [post]
func (h *CalculatorHandler) CheckBudget(c *gin.Context) {
	var req BudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": calculator.CheckBudget(*req.Budget, *req.TotalSpent)})
}

// === DTO ===

type InterestRequest struct {
	Principal *float64 `json:"principal" validate:"required,gte=0"`
	Rate      *float64 `json:"rate" validate:"required,gte=0"`
	Years     *float64 `json:"years" validate:"required,gte=0"`
}

type BudgetRequest struct {
	Budget     *float64 `json:"budget" validate:"required,gte=0"`
	TotalSpent *float64 `json:"totalSpent" validate:"required,gte=0"`
}
