package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveSettlement(t *testing.T) {
	before := testutil.ToFloat64(settlementsComputed)

	ObserveSettlement(2, 3)
	ObserveSettlement(0, 0)

	if got := testutil.ToFloat64(settlementsComputed) - before; got != 2 {
		t.Errorf("settlements computed delta = %v, want 2", got)
	}
}

func TestObserveRPC(t *testing.T) {
	const procedure = "/splitmonth.v1.Test/Observe"

	ObserveRPC(procedure, "ok", 5*time.Millisecond)
	ObserveRPC(procedure, "ok", 7*time.Millisecond)
	ObserveRPC(procedure, "not_found", time.Millisecond)

	if got := testutil.ToFloat64(rpcRequests.WithLabelValues(procedure, "ok")); got != 2 {
		t.Errorf("ok count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(rpcRequests.WithLabelValues(procedure, "not_found")); got != 1 {
		t.Errorf("not_found count = %v, want 1", got)
	}
}

func TestHandler(t *testing.T) {
	ObserveSettlement(1, 2)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	for _, name := range []string{
		"splitmonth_settlements_computed_total",
		"splitmonth_settlement_transfers_bucket",
		"splitmonth_unsettled_members_count",
		"go_goroutines",
	} {
		if !strings.Contains(string(body), name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}
