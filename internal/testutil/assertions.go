package testutil

import (
	"errors"
	"testing"

	apperrors "debtplanner/internal/errors"
)

// AssertAppError checks that err is an *AppError with the expected error code.
func AssertAppError(t *testing.T, err error, expectedCode string) {
	t.Helper()
	appErr := requireAppError(t, err, expectedCode)
	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// AssertAppErrorStatus checks both the code and the HTTP status the error
// maps to.
func AssertAppErrorStatus(t *testing.T, err error, expected *apperrors.AppError) {
	t.Helper()
	appErr := requireAppError(t, err, expected.Code)
	if appErr.Code != expected.Code || appErr.StatusCode != expected.StatusCode {
		t.Errorf("expected %s/%d, got %s/%d", expected.Code, expected.StatusCode, appErr.Code, appErr.StatusCode)
	}
}

func requireAppError(t *testing.T, err error, expectedCode string) *apperrors.AppError {
	t.Helper()
	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	return appErr
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
