package integration

import (
	"fmt"
	"net/http"
	"testing"
	"time"
)

// firstOfNextMonth keeps a funding in simulated month 1 whatever today is.
func firstOfNextMonth() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}

func TestPlanFlow_CompareAndCache(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "plans@test.com", "password123")

	// Step 1: No debts yet
	rec := app.request("POST", "/api/v1/plans/compare", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	empty := parseJSON(t, rec)["comparison"].(map[string]interface{})
	if empty["accelerated_outcome"] != "no_debts" || empty["accelerated_months"].(float64) != 0 {
		t.Errorf("expected an empty comparison, got %v", empty)
	}

	// Step 2: 1000.00 at 0% with a 100.00 minimum, 200.00 a month
	app.createDebt(t, token, `{"name":"Loan","balance":100000,"interest_rate":0,"minimum_payment":10000}`)
	app.setPlanSettings(t, token, "avalanche", 20000)

	rec = app.request("POST", "/api/v1/plans/compare", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	comparison := parseJSON(t, rec)["comparison"].(map[string]interface{})
	if comparison["baseline_months"].(float64) != 10 || comparison["accelerated_months"].(float64) != 5 {
		t.Errorf("expected 10 vs 5 months, got %v vs %v", comparison["baseline_months"], comparison["accelerated_months"])
	}
	if comparison["months_saved"].(float64) != 5 {
		t.Errorf("expected 5 months saved, got %v", comparison["months_saved"])
	}
	if comparison["cached"] != false {
		t.Error("expected first comparison to be computed")
	}
	first := comparison["per_debt_first_month_payments"].([]interface{})[0].(map[string]interface{})
	if first["minimum"].(float64) != 10000 || first["extra"].(float64) != 10000 {
		t.Errorf("unexpected first month allocation %v", first)
	}

	// Step 3: Same inputs are served from cache
	rec = app.request("POST", "/api/v1/plans/compare", "", token)
	if parseJSON(t, rec)["comparison"].(map[string]interface{})["cached"] != true {
		t.Error("expected second comparison to be cached")
	}

	// Step 4: A request override changes the inputs
	rec = app.request("POST", "/api/v1/plans/compare", `{"monthly_budget":50000}`, token)
	comparison = parseJSON(t, rec)["comparison"].(map[string]interface{})
	if comparison["cached"] != false || comparison["accelerated_months"].(float64) != 2 {
		t.Errorf("expected fresh 2 month plan, got %v", comparison)
	}
}

func TestPlanFlow_FundingShortensPlan(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "boost@test.com", "password123")

	app.createDebt(t, token, `{"name":"Loan","balance":100000,"interest_rate":0,"minimum_payment":10000}`)
	app.setPlanSettings(t, token, "avalanche", 10000)

	body := fmt.Sprintf(`{"amount":50000,"payment_date":%q}`, firstOfNextMonth().Format("2006-01-02"))
	rec := app.request("POST", "/api/v1/fundings", body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = app.request("POST", "/api/v1/plans/simulate", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	simulation := parseJSON(t, rec)["simulation"].(map[string]interface{})
	if simulation["months"].(float64) != 5 {
		t.Errorf("expected 5 months with the funding, got %v", simulation["months"])
	}
	if simulation["outcome"] != "paid_off" {
		t.Errorf("expected paid_off, got %v", simulation["outcome"])
	}
}

func TestPlanFlow_SnowballRedistribution(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "snowball@test.com", "password123")

	smallID := app.createDebt(t, token, `{"name":"Small","balance":20000,"interest_rate":0,"minimum_payment":5000}`)
	largeID := app.createDebt(t, token, `{"name":"Large","balance":100000,"interest_rate":0,"minimum_payment":10000}`)

	rec := app.request("POST", "/api/v1/plans/simulate", `{"strategy":"snowball","monthly_budget":30000,"include_schedule":true}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	simulation := parseJSON(t, rec)["simulation"].(map[string]interface{})

	redistributions := simulation["redistributions"].([]interface{})
	if len(redistributions) != 1 {
		t.Fatalf("expected 1 redistribution, got %v", redistributions)
	}
	r := redistributions[0].(map[string]interface{})
	if r["from_debt_id"] != smallID || r["to_debt_id"] != largeID || r["amount"].(float64) != 5000 {
		t.Errorf("unexpected redistribution %v", r)
	}
	if len(simulation["schedule"].([]interface{})) != int(simulation["months"].(float64)) {
		t.Error("expected one schedule entry per month")
	}

	rec = app.request("GET", "/api/v1/plans/strategies", "", token)
	if len(parseJSON(t, rec)["strategies"].([]interface{})) != 3 {
		t.Error("expected 3 strategies")
	}
}

func TestPlanFlow_Snapshots(t *testing.T) {
	app := setupApp(t)
	token, _, _ := app.registerUser(t, "history@test.com", "password123")
	// A user without debts gets no snapshot
	app.registerUser(t, "idle@test.com", "password123")

	app.createDebt(t, token, `{"name":"Loan","balance":100000,"interest_rate":0,"minimum_payment":10000}`)
	app.setPlanSettings(t, token, "avalanche", 20000)

	// Step 1: Record one on demand
	rec := app.request("POST", "/api/v1/plans/snapshots", "", token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// Step 2: Pipeline records for every user with debts
	recordedAt := time.Now().UTC().Add(time.Minute).Format(time.RFC3339)
	rec = app.pipelineRequest("POST", "/api/v1/pipeline/snapshots", fmt.Sprintf(`{"recorded_at":%q}`, recordedAt))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if n := parseJSON(t, rec)["snapshots_recorded"].(float64); n != 1 {
		t.Errorf("expected 1 snapshot recorded, got %.0f", n)
	}

	// Step 3: Rerunning the same instant records nothing new
	rec = app.pipelineRequest("POST", "/api/v1/pipeline/snapshots", fmt.Sprintf(`{"recorded_at":%q}`, recordedAt))
	if n := parseJSON(t, rec)["snapshots_recorded"].(float64); n != 0 {
		t.Errorf("expected 0 on rerun, got %.0f", n)
	}

	// Step 4: Query history
	from := time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
	to := time.Now().UTC().Add(time.Hour).Format(time.RFC3339)
	rec = app.request("GET", fmt.Sprintf("/api/v1/plans/snapshots?from_date=%s&to_date=%s", from, to), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	history := parseJSON(t, rec)
	if history["total_items"].(float64) != 2 {
		t.Fatalf("expected 2 snapshots, got %v", history["total_items"])
	}
	latest := history["data"].([]interface{})[0].(map[string]interface{})
	if latest["baseline_months"].(float64) != 10 || latest["accelerated_months"].(float64) != 5 {
		t.Errorf("unexpected snapshot %v", latest)
	}
	if latest["total_balance"].(float64) != 100000 {
		t.Errorf("expected total_balance 100000, got %v", latest["total_balance"])
	}
}
