package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveSimulation(t *testing.T) {
	m := New()
	m.ObserveSimulation("compare", "paid_off", 24, 3*time.Millisecond)
	m.ObserveSimulation("compare", "paid_off", 12, time.Millisecond)
	m.ObserveSimulation("compare", "capped", -1, time.Millisecond)

	if got := testutil.ToFloat64(m.Simulations.WithLabelValues("compare", "paid_off")); got != 2 {
		t.Errorf("paid_off simulations = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.Simulations.WithLabelValues("compare", "capped")); got != 1 {
		t.Errorf("capped simulations = %v, want 1", got)
	}
	if got := testutil.CollectAndCount(m.SimulationMonths); got != 1 {
		t.Errorf("month series = %d, want 1", got)
	}
}

func TestCountersIgnoreNonPositive(t *testing.T) {
	m := New()
	m.AddFundingsSettled(0)
	m.AddFundingsSettled(3)
	m.AddSnapshotsRecorded(-2)

	if got := testutil.ToFloat64(m.FundingsSettled); got != 3 {
		t.Errorf("fundings settled = %v, want 3", got)
	}
	if got := testutil.ToFloat64(m.SnapshotsRecorded); got != 0 {
		t.Errorf("snapshots recorded = %v, want 0", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveHTTP("GET", "/x", 200, time.Millisecond)
	m.ObserveSimulation("compare", "paid_off", 1, time.Millisecond)
	m.RecordAnomaly("duplicate_debt")
	m.RecordCache(CacheHit)
	m.AddFundingsSettled(1)
	m.AddSnapshotsRecorded(1)
}

func TestHandlerExposesInstruments(t *testing.T) {
	m := New()
	m.RecordCache(CacheMiss)
	m.RecordAnomaly("monthly_interest_capped")
	m.ObserveHTTP("POST", "/api/v1/plans/compare", 200, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)

	for _, name := range []string{MetricPlanCacheTotal, MetricAnomaliesTotal, MetricHTTPRequestsTotal, "go_goroutines"} {
		if !strings.Contains(string(body), name) {
			t.Errorf("expected %s in exposition output", name)
		}
	}
}
