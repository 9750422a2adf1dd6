package observability

import (
	"context"
	"testing"
)

func TestInitMetrics(t *testing.T) {
	handler, shutdown, err := InitMetrics()
	if err != nil {
		t.Fatalf("InitMetrics failed: %v", err)
	}
	if handler == nil {
		t.Error("expected a metrics handler")
	}
	defer shutdown(context.Background())

	metrics, err := NewServerMetrics()
	if err != nil {
		t.Fatalf("NewServerMetrics failed: %v", err)
	}
	if metrics.JobsCreated == nil || metrics.JobsRejected == nil || metrics.StatusChanges == nil {
		t.Error("expected all counters to be registered")
	}

	// Recording must not panic.
	metrics.JobsCreated.Add(context.Background(), 1)
	metrics.JobsRejected.Add(context.Background(), 1)
	metrics.StatusChanges.Add(context.Background(), 1)
}
