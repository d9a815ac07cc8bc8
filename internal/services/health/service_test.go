package health

import (
	"testing"
	"time"
)

func TestStatusReportsUptime(t *testing.T) {
	svc := NewService("1.0.0", "dev")
	svc.now = func() time.Time { return svc.startedAt.Add(90 * time.Second) }

	got := svc.Status()
	if got["status"] != "healthy" {
		t.Fatalf("expected healthy, got %v", got["status"])
	}
	if got["version"] != "1.0.0" {
		t.Fatalf("expected version 1.0.0, got %v", got["version"])
	}
	if got["environment"] != "dev" {
		t.Fatalf("expected dev environment, got %v", got["environment"])
	}
	if got["uptime_seconds"] != int64(90) {
		t.Fatalf("expected uptime 90, got %v", got["uptime_seconds"])
	}
}
