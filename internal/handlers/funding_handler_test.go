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

const testFundingID = "0191e0c2-8000-7000-8000-0000000000f1"

type mockFundingService struct {
	createFundingFn      func(userID string, amount int64, paymentDate time.Time, currency, note string) (*models.OneTimeFunding, error)
	getUserFundingsFn    func(userID string, page pagination.PageRequest, isApplied *bool) (*pagination.PageResponse[models.OneTimeFunding], error)
	getFundingByIDFn     func(userID, fundingID string) (*models.OneTimeFunding, error)
	updateFundingFn      func(userID, fundingID string, fields services.FundingUpdateFields) (*models.OneTimeFunding, error)
	deleteFundingFn      func(userID, fundingID string) error
	getPendingFundingsFn func(userID string, now time.Time) ([]models.OneTimeFunding, error)
	settleDueFundingsFn  func(now time.Time) (int, error)
}

func (m *mockFundingService) CreateFunding(userID string, amount int64, paymentDate time.Time, currency, note string) (*models.OneTimeFunding, error) {
	if m.createFundingFn != nil {
		return m.createFundingFn(userID, amount, paymentDate, currency, note)
	}
	return &models.OneTimeFunding{}, nil
}

func (m *mockFundingService) GetUserFundings(userID string, page pagination.PageRequest, isApplied *bool) (*pagination.PageResponse[models.OneTimeFunding], error) {
	if m.getUserFundingsFn != nil {
		return m.getUserFundingsFn(userID, page, isApplied)
	}
	resp := pagination.NewPageResponse([]models.OneTimeFunding{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockFundingService) GetFundingByID(userID, fundingID string) (*models.OneTimeFunding, error) {
	if m.getFundingByIDFn != nil {
		return m.getFundingByIDFn(userID, fundingID)
	}
	return &models.OneTimeFunding{}, nil
}

func (m *mockFundingService) UpdateFunding(userID, fundingID string, fields services.FundingUpdateFields) (*models.OneTimeFunding, error) {
	if m.updateFundingFn != nil {
		return m.updateFundingFn(userID, fundingID, fields)
	}
	return &models.OneTimeFunding{}, nil
}

func (m *mockFundingService) DeleteFunding(userID, fundingID string) error {
	if m.deleteFundingFn != nil {
		return m.deleteFundingFn(userID, fundingID)
	}
	return nil
}

func (m *mockFundingService) GetPendingFundings(userID string, now time.Time) ([]models.OneTimeFunding, error) {
	if m.getPendingFundingsFn != nil {
		return m.getPendingFundingsFn(userID, now)
	}
	return nil, nil
}

func (m *mockFundingService) SettleDueFundings(now time.Time) (int, error) {
	if m.settleDueFundingsFn != nil {
		return m.settleDueFundingsFn(now)
	}
	return 0, nil
}

var _ services.FundingServicer = (*mockFundingService)(nil)

func setupFundingRouter(handler *FundingHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("", injectUserID(testUserID))
	auth.POST("/fundings", handler.CreateFunding)
	auth.GET("/fundings", handler.GetUserFundings)
	auth.GET("/fundings/:id", handler.GetFundingByID)
	auth.PUT("/fundings/:id", handler.UpdateFunding)
	auth.DELETE("/fundings/:id", handler.DeleteFunding)
	return r
}

func TestFundingHandler_CreateFunding(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		var gotDate time.Time
		audit := &mockAuditService{}
		fundingSvc := &mockFundingService{
			createFundingFn: func(userID string, amount int64, paymentDate time.Time, currency, note string) (*models.OneTimeFunding, error) {
				gotDate = paymentDate
				return &models.OneTimeFunding{
					Base:        models.Base{ID: testFundingID},
					UserID:      userID,
					Amount:      amount,
					PaymentDate: paymentDate,
					Note:        note,
				}, nil
			},
		}
		r := setupFundingRouter(NewFundingHandler(fundingSvc, audit))

		rec := doRequest(r, "POST", "/fundings", `{"amount":100000,"payment_date":"2025-04-15","note":"tax refund"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !gotDate.Equal(time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected payment date %v", gotDate)
		}
		funding := parseJSON(t, rec)["funding"].(map[string]interface{})
		if funding["note"] != "tax refund" {
			t.Errorf("expected tax refund, got %v", funding["note"])
		}
		if len(audit.actions) != 1 || audit.actions[0] != "CREATE_FUNDING" {
			t.Errorf("expected CREATE_FUNDING audit entry, got %v", audit.actions)
		}
	})

	tests := []struct {
		name string
		body string
	}{
		{"missing amount", `{"payment_date":"2025-04-15"}`},
		{"negative amount", `{"amount":-10,"payment_date":"2025-04-15"}`},
		{"missing date", `{"amount":100}`},
		{"bad date", `{"amount":100,"payment_date":"next tuesday"}`},
	}
	for _, tt := range tests {
		t.Run("returns 400 on "+tt.name, func(t *testing.T) {
			r := setupFundingRouter(NewFundingHandler(&mockFundingService{}, &mockAuditService{}))

			rec := doRequest(r, "POST", "/fundings", tt.body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
		})
	}
}

func TestFundingHandler_GetUserFundings(t *testing.T) {
	t.Run("passes the is_applied filter", func(t *testing.T) {
		var filter *bool
		fundingSvc := &mockFundingService{
			getUserFundingsFn: func(_ string, _ pagination.PageRequest, isApplied *bool) (*pagination.PageResponse[models.OneTimeFunding], error) {
				filter = isApplied
				resp := pagination.NewPageResponse([]models.OneTimeFunding{}, 1, 20, 0)
				return &resp, nil
			},
		}
		r := setupFundingRouter(NewFundingHandler(fundingSvc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/fundings?is_applied=true", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if filter == nil || !*filter {
			t.Errorf("expected is_applied=true filter, got %v", filter)
		}
	})
}

func TestFundingHandler_UpdateFunding(t *testing.T) {
	t.Run("returns 409 for an applied funding", func(t *testing.T) {
		fundingSvc := &mockFundingService{
			updateFundingFn: func(_, _ string, _ services.FundingUpdateFields) (*models.OneTimeFunding, error) {
				return nil, apperrors.ErrFundingApplied
			},
		}
		r := setupFundingRouter(NewFundingHandler(fundingSvc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/fundings/"+testFundingID, `{"amount":500}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "FUNDING_APPLIED")
	})

	t.Run("parses a new payment date", func(t *testing.T) {
		var got services.FundingUpdateFields
		fundingSvc := &mockFundingService{
			updateFundingFn: func(_, id string, fields services.FundingUpdateFields) (*models.OneTimeFunding, error) {
				got = fields
				return &models.OneTimeFunding{Base: models.Base{ID: id}}, nil
			},
		}
		r := setupFundingRouter(NewFundingHandler(fundingSvc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/fundings/"+testFundingID, `{"payment_date":"2025-05-01T12:00:00Z"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.PaymentDate == nil || got.PaymentDate.Day() != 1 || got.Amount != nil {
			t.Errorf("unexpected fields %+v", got)
		}
	})
}

func TestFundingHandler_DeleteFunding(t *testing.T) {
	t.Run("returns 404 when missing", func(t *testing.T) {
		fundingSvc := &mockFundingService{
			deleteFundingFn: func(_, _ string) error { return apperrors.ErrFundingNotFound },
		}
		r := setupFundingRouter(NewFundingHandler(fundingSvc, &mockAuditService{}))

		rec := doRequest(r, "DELETE", "/fundings/"+testFundingID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "FUNDING_NOT_FOUND")
	})
}
