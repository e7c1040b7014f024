package services

import (
	"context"
	"time"

	"debtplanner/internal/models"
	"debtplanner/internal/pagination"
	"debtplanner/internal/payoff"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID, tokenHash string) error
	GetRefreshTokenHash(userID string) (string, error)
	UpdatePlanSettings(userID string, settings PlanSettings) (*models.User, error)
}

// PlanSettings holds the saved defaults for plan requests. Nil fields are
// left unchanged.
type PlanSettings struct {
	PayoffStrategy *string
	MonthlyBudget  *int64
	Currency       *string
}

// DebtInput holds the fields of a new debt. Money is in cents.
type DebtInput struct {
	Name             string
	Description      string
	Balance          int64
	InterestRate     float64
	MinimumPayment   int64
	Currency         string
	IsGoldLoan       bool
	FinalPayoffDate  *time.Time
	InterestIncluded bool
	OriginalRate     float64
}

// DebtUpdateFields holds optional fields for updating a debt.
type DebtUpdateFields struct {
	Name             *string
	Description      *string
	Balance          *int64
	InterestRate     *float64
	MinimumPayment   *int64
	IsActive         *bool
	IsGoldLoan       *bool
	FinalPayoffDate  *time.Time
	InterestIncluded *bool
	OriginalRate     *float64
}

// DebtServicer defines the contract for debt-related business logic.
type DebtServicer interface {
	CreateDebt(userID string, input DebtInput) (*models.Debt, error)
	GetUserDebts(userID string, page pagination.PageRequest, isActive *bool) (*pagination.PageResponse[models.Debt], error)
	GetDebtByID(userID, debtID string) (*models.Debt, error)
	UpdateDebt(userID, debtID string, fields DebtUpdateFields) (*models.Debt, error)
	DeleteDebt(userID, debtID string) error
	GetActiveDebts(userID string) ([]models.Debt, error)
}

// PaymentServicer defines the contract for debt payments.
type PaymentServicer interface {
	RecordPayment(userID, debtID string, amount int64, paidAt time.Time, note string) (*models.DebtPayment, error)
	GetDebtPayments(userID, debtID string, page pagination.PageRequest) (*pagination.PageResponse[models.DebtPayment], error)
	GetTotalPaid(userID, debtID string) (int64, error)
}

// FundingUpdateFields holds optional fields for updating a one-time funding.
type FundingUpdateFields struct {
	Amount      *int64
	PaymentDate *time.Time
	Note        *string
}

// FundingServicer defines the contract for one-time fundings.
type FundingServicer interface {
	CreateFunding(userID string, amount int64, paymentDate time.Time, currency, note string) (*models.OneTimeFunding, error)
	GetUserFundings(userID string, page pagination.PageRequest, isApplied *bool) (*pagination.PageResponse[models.OneTimeFunding], error)
	GetFundingByID(userID, fundingID string) (*models.OneTimeFunding, error)
	UpdateFunding(userID, fundingID string, fields FundingUpdateFields) (*models.OneTimeFunding, error)
	DeleteFunding(userID, fundingID string) error
	GetPendingFundings(userID string, now time.Time) ([]models.OneTimeFunding, error)
	SettleDueFundings(now time.Time) (int, error)
}

// PlanRequest selects how a plan is computed. Empty fields fall back to the
// user's saved plan settings.
type PlanRequest struct {
	Strategy        string `json:"strategy,omitempty"`
	MonthlyBudget   *int64 `json:"monthly_budget,omitempty"`
	IncludeSchedule bool   `json:"include_schedule,omitempty"`
}

// PlannerServicer runs payoff simulations over a user's stored debts.
type PlannerServicer interface {
	Strategies() []payoff.Strategy
	Compare(ctx context.Context, userID string, req PlanRequest) (*PlanComparison, error)
	Simulate(ctx context.Context, userID string, req PlanRequest) (*PlanSimulation, error)
	GetDebtPayoff(userID, debtID string) (*DebtPayoffSummary, error)
}

// PlanSnapshotServicer records and lists plan comparison history.
type PlanSnapshotServicer interface {
	RecordSnapshot(ctx context.Context, userID string, req PlanRequest) (*models.PlanSnapshot, error)
	GetSnapshots(userID string, from, to time.Time, page pagination.PageRequest) (*pagination.PageResponse[models.PlanSnapshot], error)
	ComputeAndRecordSnapshots(ctx context.Context, recordedAt time.Time) (int, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
