package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"debtplanner/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:          email,
		Password:       string(hash),
		IsActive:       true,
		PayoffStrategy: "avalanche",
		Currency:       "USD",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestDebt creates an active debt. Balance and minimum are in cents;
// rate is an annual percentage.
func CreateTestDebt(t *testing.T, db *gorm.DB, userID string, balance int64, rate float64, minimum int64) *models.Debt {
	t.Helper()

	debt := &models.Debt{
		UserID:         userID,
		Name:           fmt.Sprintf("Test Debt %d", nextID()),
		Balance:        balance,
		InterestRate:   rate,
		MinimumPayment: minimum,
		Currency:       "USD",
		IsActive:       true,
	}
	if err := db.Create(debt).Error; err != nil {
		t.Fatalf("failed to create test debt: %v", err)
	}
	return debt
}

// CreateTestGoldLoan creates a gold loan that matures on finalPayoff.
func CreateTestGoldLoan(t *testing.T, db *gorm.DB, userID string, balance int64, rate float64, minimum int64, finalPayoff time.Time) *models.Debt {
	t.Helper()

	debt := &models.Debt{
		UserID:          userID,
		Name:            fmt.Sprintf("Test Gold Loan %d", nextID()),
		Balance:         balance,
		InterestRate:    rate,
		MinimumPayment:  minimum,
		Currency:        "USD",
		IsActive:        true,
		IsGoldLoan:      true,
		FinalPayoffDate: &finalPayoff,
	}
	if err := db.Create(debt).Error; err != nil {
		t.Fatalf("failed to create test gold loan: %v", err)
	}
	return debt
}

// CreateTestPayment records a payment without touching the debt balance.
func CreateTestPayment(t *testing.T, db *gorm.DB, userID, debtID string, amount int64) *models.DebtPayment {
	t.Helper()

	payment := &models.DebtPayment{
		UserID: userID,
		DebtID: debtID,
		Amount: amount,
		PaidAt: time.Now(),
	}
	if err := db.Create(payment).Error; err != nil {
		t.Fatalf("failed to create test payment: %v", err)
	}
	return payment
}

// CreateTestFunding creates an unapplied one-time funding.
func CreateTestFunding(t *testing.T, db *gorm.DB, userID string, amount int64, paymentDate time.Time) *models.OneTimeFunding {
	t.Helper()

	funding := &models.OneTimeFunding{
		UserID:      userID,
		Amount:      amount,
		PaymentDate: paymentDate,
		Currency:    "USD",
	}
	if err := db.Create(funding).Error; err != nil {
		t.Fatalf("failed to create test funding: %v", err)
	}
	return funding
}
