package handlers

import (
	"github.com/gin-gonic/gin"

	"debtplanner/internal/middleware"
)

// Handlers groups every HTTP handler of the API.
type Handlers struct {
	Auth     *AuthHandler
	Debt     *DebtHandler
	Payment  *PaymentHandler
	Funding  *FundingHandler
	Plan     *PlanHandler
	Pipeline *PipelineHandler
}

// RegisterRoutes mounts the versioned API on v1. Pipeline routes require
// pipelineAPIKey in X-API-Key; everything else except auth requires a JWT.
func RegisterRoutes(v1 *gin.RouterGroup, h Handlers, pipelineAPIKey string) {
	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.RefreshToken)

	// Pipeline routes
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(pipelineAPIKey))
	pipeline.POST("/fundings/settle", h.Pipeline.SettleFundings)
	pipeline.POST("/snapshots", h.Pipeline.ComputeSnapshots)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/plan-settings", h.Auth.UpdatePlanSettings)

	debts := protected.Group("/debts")
	debts.POST("", h.Debt.CreateDebt)
	debts.GET("", h.Debt.GetUserDebts)
	debts.GET("/:id", h.Debt.GetDebtByID)
	debts.PUT("/:id", h.Debt.UpdateDebt)
	debts.DELETE("/:id", h.Debt.DeleteDebt)
	debts.GET("/:id/payoff", h.Debt.GetDebtPayoff)
	debts.POST("/:id/payments", h.Payment.RecordPayment)
	debts.GET("/:id/payments", h.Payment.GetDebtPayments)

	fundings := protected.Group("/fundings")
	fundings.POST("", h.Funding.CreateFunding)
	fundings.GET("", h.Funding.GetUserFundings)
	fundings.GET("/:id", h.Funding.GetFundingByID)
	fundings.PUT("/:id", h.Funding.UpdateFunding)
	fundings.DELETE("/:id", h.Funding.DeleteFunding)

	plans := protected.Group("/plans")
	plans.GET("/strategies", h.Plan.GetStrategies)
	plans.POST("/compare", h.Plan.Compare)
	plans.POST("/simulate", h.Plan.Simulate)
	plans.POST("/snapshots", h.Plan.RecordSnapshot)
	plans.GET("/snapshots", h.Plan.GetSnapshots)
}
