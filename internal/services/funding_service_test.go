package services

import (
	"testing"
	"time"

	"debtplanner/internal/models"
	"debtplanner/internal/pagination"
	"debtplanner/internal/testutil"
)

func TestCreateFunding(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFundingService(db)

		user := testutil.CreateTestUser(t, db)
		funding, err := svc.CreateFunding(user.ID, 100000, time.Now().AddDate(0, 1, 0), "", "tax refund")
		testutil.AssertNoError(t, err)

		if funding.Currency != "USD" {
			t.Errorf("expected default currency USD, got %s", funding.Currency)
		}
		if funding.IsApplied {
			t.Error("expected new funding to be unapplied")
		}
	})

	t.Run("non_positive_amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFundingService(db)

		user := testutil.CreateTestUser(t, db)
		_, err := svc.CreateFunding(user.ID, 0, time.Now(), "USD", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("missing_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFundingService(db)

		user := testutil.CreateTestUser(t, db)
		_, err := svc.CreateFunding(user.ID, 100, time.Time{}, "USD", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestGetUserFundings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewFundingService(db)

	user := testutil.CreateTestUser(t, db)
	later := testutil.CreateTestFunding(t, db, user.ID, 2000, time.Now().AddDate(0, 3, 0))
	sooner := testutil.CreateTestFunding(t, db, user.ID, 1000, time.Now().AddDate(0, 1, 0))
	db.Model(later).Update("is_applied", true)

	result, err := svc.GetUserFundings(user.ID, pagination.PageRequest{}, nil)
	testutil.AssertNoError(t, err)
	if result.TotalItems != 2 {
		t.Fatalf("expected 2 fundings, got %d", result.TotalItems)
	}
	if result.Data[0].ID != sooner.ID {
		t.Error("expected fundings ordered by payment date")
	}

	pending := false
	result, err = svc.GetUserFundings(user.ID, pagination.PageRequest{}, &pending)
	testutil.AssertNoError(t, err)
	if result.TotalItems != 1 || result.Data[0].ID != sooner.ID {
		t.Errorf("expected only the unapplied funding, got %+v", result.Data)
	}
}

func TestUpdateFunding(t *testing.T) {
	t.Run("changes_amount_and_date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFundingService(db)

		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestFunding(t, db, user.ID, 1000, time.Now().AddDate(0, 1, 0))

		amount := int64(5000)
		date := time.Now().AddDate(0, 2, 0)
		funding, err := svc.UpdateFunding(user.ID, created.ID, FundingUpdateFields{Amount: &amount, PaymentDate: &date})
		testutil.AssertNoError(t, err)

		if funding.Amount != 5000 {
			t.Errorf("expected amount 5000, got %d", funding.Amount)
		}
	})

	t.Run("applied_is_immutable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFundingService(db)

		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestFunding(t, db, user.ID, 1000, time.Now().AddDate(0, -1, 0))
		db.Model(created).Update("is_applied", true)

		amount := int64(5000)
		_, err := svc.UpdateFunding(user.ID, created.ID, FundingUpdateFields{Amount: &amount})
		testutil.AssertAppError(t, err, "FUNDING_APPLIED")
	})

	t.Run("not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFundingService(db)

		user := testutil.CreateTestUser(t, db)
		_, err := svc.UpdateFunding(user.ID, missingID, FundingUpdateFields{})
		testutil.AssertAppError(t, err, "FUNDING_NOT_FOUND")
	})
}

func TestDeleteFunding(t *testing.T) {
	t.Run("deletes_pending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFundingService(db)

		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestFunding(t, db, user.ID, 1000, time.Now().AddDate(0, 1, 0))

		testutil.AssertNoError(t, svc.DeleteFunding(user.ID, created.ID))
		_, err := svc.GetFundingByID(user.ID, created.ID)
		testutil.AssertAppError(t, err, "FUNDING_NOT_FOUND")
	})

	t.Run("applied_cannot_be_deleted", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewFundingService(db)

		user := testutil.CreateTestUser(t, db)
		created := testutil.CreateTestFunding(t, db, user.ID, 1000, time.Now().AddDate(0, -1, 0))
		db.Model(created).Update("is_applied", true)

		testutil.AssertAppError(t, svc.DeleteFunding(user.ID, created.ID), "FUNDING_APPLIED")
	})
}

func TestGetPendingFundings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewFundingService(db)

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	user := testutil.CreateTestUser(t, db)
	testutil.CreateTestFunding(t, db, user.ID, 1000, now.AddDate(0, 0, -1))
	today := testutil.CreateTestFunding(t, db, user.ID, 2000, time.Date(2025, 6, 15, 8, 0, 0, 0, time.UTC))
	future := testutil.CreateTestFunding(t, db, user.ID, 3000, now.AddDate(0, 2, 0))
	applied := testutil.CreateTestFunding(t, db, user.ID, 4000, now.AddDate(0, 1, 0))
	db.Model(applied).Update("is_applied", true)

	fundings, err := svc.GetPendingFundings(user.ID, now)
	testutil.AssertNoError(t, err)

	if len(fundings) != 2 {
		t.Fatalf("expected 2 pending fundings, got %d", len(fundings))
	}
	if fundings[0].ID != today.ID || fundings[1].ID != future.ID {
		t.Errorf("unexpected pending fundings: %+v", fundings)
	}
}

func TestSettleDueFundings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewFundingService(db)

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	user := testutil.CreateTestUser(t, db)
	past := testutil.CreateTestFunding(t, db, user.ID, 1000, now.AddDate(0, 0, -3))
	testutil.CreateTestFunding(t, db, user.ID, 2000, now)

	settled, err := svc.SettleDueFundings(now)
	testutil.AssertNoError(t, err)
	if settled != 1 {
		t.Errorf("expected 1 settled funding, got %d", settled)
	}

	var reloaded models.OneTimeFunding
	db.Where("id = ?", past.ID).First(&reloaded)
	if !reloaded.IsApplied || reloaded.AppliedAt == nil {
		t.Error("expected past funding to be applied with a timestamp")
	}

	settled, err = svc.SettleDueFundings(now)
	testutil.AssertNoError(t, err)
	if settled != 0 {
		t.Errorf("expected settling to be idempotent, got %d", settled)
	}
}
