// internal/handler/transaction.go
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"finance-tracker/internal/domain"
	"finance-tracker/internal/storage"

	"github.com/gin-gonic/gin"
)

type TransactionHandler struct {
	store storage.TransactionStorage
}

func NewTransactionHandler(store storage.TransactionStorage) *TransactionHandler {
	return &TransactionHandler{store: store}
}

// List godoc
// @Summary List the caller's transactions
// @Produce json
// @Success 200 {array} domain.Transaction
// @Router /api/transactions [get]
func (h *TransactionHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	list, err := h.store.List(c.Request.Context(), userID)
	if err != nil {
		slog.Error("List transactions failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if list == nil {
		list = []domain.Transaction{}
	}
	c.JSON(http.StatusOK, list)
}

// Create godoc
// @Summary Record a new transaction owned by the caller
// @Accept json
// @Produce json
// @Param request body CreateTransactionRequest true "Transaction fields"
// @Success 201 {object} map[string]int64
// @Failure 400 {object} map[string]string
// @Router /api/transactions [post]
func (h *TransactionHandler) Create(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := h.store.Create(c.Request.Context(), userID, domain.Transaction{
		Description: req.Description,
		Amount:      *req.Amount,
		Category:    req.Category,
		Date:        req.Date,
	})
	if err != nil {
		slog.Error("Create transaction failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	slog.Info("Transaction created", "id", id, "user_id", userID, "category", req.Category)
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// Update godoc
// @Summary Update description, amount and category of an owned transaction
// @Accept json
// @Produce json
// @Param id path int true "Transaction id"
// @Param request body UpdateTransactionRequest true "Updatable fields"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/transactions/{id} [put]
func (h *TransactionHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction id"})
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := validateStruct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.store.Update(c.Request.Context(), userID, id, req.Description, *req.Amount, req.Category); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		slog.Error("Update transaction failed", "error", err, "id", id, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction updated"})
}

// Delete godoc
// @Summary Delete an owned transaction
// @Param id path int true "Transaction id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/transactions/{id} [delete]
func (h *TransactionHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid transaction id"})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.store.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		slog.Error("Delete transaction failed", "error", err, "id", id, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}

// ClearAll godoc
// @Summary Delete every transaction owned by the caller
// @Success 200 {object} map[string]any
// @Router /api/transactions [delete]
func (h *TransactionHandler) ClearAll(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	deleted, err := h.store.ClearAll(c.Request.Context(), userID)
	if err != nil {
		slog.Error("Clear transactions failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}

	slog.Info("Transactions cleared", "user_id", userID, "deleted", deleted)
	c.JSON(http.StatusOK, gin.H{"message": "All transactions cleared", "deleted": deleted})
}

// CategorySummary godoc
// @Summary Per-category totals for the caller's transactions
// @Produce json
// @Success 200 {array} domain.CategorySummary
// @Router /api/category-summary [get]
func (h *TransactionHandler) CategorySummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	summary, err := h.store.CategorySummary(c.Request.Context(), userID)
	if err != nil {
		slog.Error("Category summary failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	if summary == nil {
		summary = []domain.CategorySummary{}
	}
	c.JSON(http.StatusOK, summary)
}

// === DTO ===

type CreateTransactionRequest struct {
	Description string   `json:"description" validate:"required,notblank,max=256"`
	Amount      *float64 `json:"amount" validate:"required"`
	Category    string   `json:"category" validate:"required,category"`
	Date        string   `json:"date" validate:"required,isodate"`
}

type UpdateTransactionRequest struct {
	Description string   `json:"description" validate:"required,notblank,max=256"`
	Amount      *float64 `json:"amount" validate:"required"`
	Category    string   `json:"category" validate:"required,category"`
}
