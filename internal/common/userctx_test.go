package common

import (
	"context"
	"testing"
	"time"
)

func TestCorrelationID_RoundTrip(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "abc12345")
	if got := CorrelationIDFromContext(ctx); got != "abc12345" {
		t.Errorf("CorrelationIDFromContext = %q, want %q", got, "abc12345")
	}
}

func TestCorrelationID_Missing(t *testing.T) {
	if got := CorrelationIDFromContext(context.Background()); got != "" {
		t.Errorf("CorrelationIDFromContext = %q, want empty", got)
	}
}

func TestIsFresh(t *testing.T) {
	if IsFresh(time.Time{}, FreshnessDashboard) {
		t.Error("zero time should never be fresh")
	}
	if !IsFresh(time.Now().Add(-30*time.Second), FreshnessDashboard) {
		t.Error("30s old dashboard should be fresh")
	}
	if IsFresh(time.Now().Add(-3*RefreshInterval), FreshnessDashboard) {
		t.Error("three intervals old dashboard should be stale")
	}
}
