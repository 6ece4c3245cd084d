// internal/handler/router.go
package handler

import (
	"net/http"

	"finance-tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter mounts the full REST surface. Everything under the protected
// group passes through RequireAuth; register, login, the interest
// calculator and the health check are public.
func NewRouter(authHandler *AuthHandler, txHandler *TransactionHandler, calcHandler *CalculatorHandler, authMiddleware *middleware.AuthMiddleware) *gin.Engine {
	router := gin.Default()

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/api/register", authHandler.Register)
	router.POST("/api/login", authHandler.Login)
	router.POST("/api/calculate-interest", calcHandler.CalculateInterest)

	protected := router.Group("/api")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.POST("/logout", authHandler.Logout)
		protected.GET("/user", authHandler.CurrentUser)

		protected.GET("/transactions", txHandler.List)
		protected.POST("/transactions", txHandler.Create)
		protected.PUT("/transactions/:id", txHandler.Update)
		protected.DELETE("/transactions/:id", txHandler.Delete)
		protected.DELETE("/transactions", txHandler.ClearAll)
		protected.GET("/category-summary", txHandler.CategorySummary)

		protected.POST("/check-budget", calcHandler.CheckBudget)
	}

	return router
}
