package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "debtplanner/internal/errors"
	"debtplanner/internal/models"
	"debtplanner/internal/pagination"
	"debtplanner/internal/services"
)

type mockPaymentService struct {
	recordPaymentFn   func(userID, debtID string, amount int64, paidAt time.Time, note string) (*models.DebtPayment, error)
	getDebtPaymentsFn func(userID, debtID string, page pagination.PageRequest) (*pagination.PageResponse[models.DebtPayment], error)
	getTotalPaidFn    func(userID, debtID string) (int64, error)
}

func (m *mockPaymentService) RecordPayment(userID, debtID string, amount int64, paidAt time.Time, note string) (*models.DebtPayment, error) {
	if m.recordPaymentFn != nil {
		return m.recordPaymentFn(userID, debtID, amount, paidAt, note)
	}
	return &models.DebtPayment{}, nil
}

func (m *mockPaymentService) GetDebtPayments(userID, debtID string, page pagination.PageRequest) (*pagination.PageResponse[models.DebtPayment], error) {
	if m.getDebtPaymentsFn != nil {
		return m.getDebtPaymentsFn(userID, debtID, page)
	}
	resp := pagination.NewPageResponse([]models.DebtPayment{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockPaymentService) GetTotalPaid(userID, debtID string) (int64, error) {
	if m.getTotalPaidFn != nil {
		return m.getTotalPaidFn(userID, debtID)
	}
	return 0, nil
}

var _ services.PaymentServicer = (*mockPaymentService)(nil)

func setupPaymentRouter(handler *PaymentHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/debts/:id/payments", handler.RecordPayment)
	auth.GET("/debts/:id/payments", handler.GetDebtPayments)
	return r
}

func TestPaymentHandler_RecordPayment(t *testing.T) {
	t.Run("returns 201 with default paid_at", func(t *testing.T) {
		var gotPaidAt time.Time
		paymentSvc := &mockPaymentService{
			recordPaymentFn: func(_, debtID string, amount int64, paidAt time.Time, note string) (*models.DebtPayment, error) {
				gotPaidAt = paidAt
				return &models.DebtPayment{DebtID: debtID, Amount: amount, Note: note}, nil
			},
		}
		r := setupPaymentRouter(NewPaymentHandler(paymentSvc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/debts/"+testDebtID+"/payments", `{"amount":5000,"note":"extra"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !gotPaidAt.IsZero() {
			t.Errorf("expected zero paid_at to be passed through, got %v", gotPaidAt)
		}
		payment := parseJSON(t, rec)["payment"].(map[string]interface{})
		if payment["amount"] != float64(5000) {
			t.Errorf("expected 5000, got %v", payment["amount"])
		}
	})

	t.Run("parses paid_at", func(t *testing.T) {
		var gotPaidAt time.Time
		paymentSvc := &mockPaymentService{
			recordPaymentFn: func(_, _ string, _ int64, paidAt time.Time, _ string) (*models.DebtPayment, error) {
				gotPaidAt = paidAt
				return &models.DebtPayment{}, nil
			},
		}
		r := setupPaymentRouter(NewPaymentHandler(paymentSvc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/debts/"+testDebtID+"/payments", `{"amount":5000,"paid_at":"2025-03-01"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", rec.Code)
		}
		if !gotPaidAt.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected paid_at %v", gotPaidAt)
		}
	})

	t.Run("returns 400 on zero amount", func(t *testing.T) {
		r := setupPaymentRouter(NewPaymentHandler(&mockPaymentService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/debts/"+testDebtID+"/payments", `{"amount":0}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 when payment exceeds balance", func(t *testing.T) {
		paymentSvc := &mockPaymentService{
			recordPaymentFn: func(_, _ string, _ int64, _ time.Time, _ string) (*models.DebtPayment, error) {
				return nil, apperrors.ErrPaymentExceedsBalance
			},
		}
		r := setupPaymentRouter(NewPaymentHandler(paymentSvc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/debts/"+testDebtID+"/payments", `{"amount":999999}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "PAYMENT_EXCEEDS_BALANCE")
	})
}

func TestPaymentHandler_GetDebtPayments(t *testing.T) {
	t.Run("includes total paid", func(t *testing.T) {
		paymentSvc := &mockPaymentService{
			getDebtPaymentsFn: func(_, _ string, _ pagination.PageRequest) (*pagination.PageResponse[models.DebtPayment], error) {
				resp := pagination.NewPageResponse([]models.DebtPayment{{Amount: 100}, {Amount: 250}}, 1, 20, 2)
				return &resp, nil
			},
			getTotalPaidFn: func(_, _ string) (int64, error) { return 350, nil },
		}
		r := setupPaymentRouter(NewPaymentHandler(paymentSvc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/debts/"+testDebtID+"/payments", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["total_paid"] != float64(350) {
			t.Errorf("expected total_paid 350, got %v", result["total_paid"])
		}
		if len(result["data"].([]interface{})) != 2 {
			t.Errorf("expected 2 payments, got %v", result["data"])
		}
	})

	t.Run("returns 404 for another user's debt", func(t *testing.T) {
		paymentSvc := &mockPaymentService{
			getDebtPaymentsFn: func(_, _ string, _ pagination.PageRequest) (*pagination.PageResponse[models.DebtPayment], error) {
				return nil, apperrors.ErrDebtNotFound
			},
		}
		r := setupPaymentRouter(NewPaymentHandler(paymentSvc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/debts/"+testDebtID+"/payments", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}
