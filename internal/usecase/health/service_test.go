package health

import (
	"context"
	"errors"
	"testing"
)

type mockChecker struct {
	err error
}

func (m *mockChecker) HealthCheck(context.Context) error { return m.err }

type mockCatalog struct {
	size int
}

func (m *mockCatalog) Len() int { return m.size }

func TestCheck_Healthy(t *testing.T) {
	svc := New(&mockChecker{}, &mockCatalog{size: 12})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("Status = %s, want %s", report.Status, Healthy)
	}
	if report.Checks["embedding"] != CheckOK {
		t.Errorf("embedding check = %s, want %s", report.Checks["embedding"], CheckOK)
	}
	if report.CatalogSize != 12 {
		t.Errorf("CatalogSize = %d, want 12", report.CatalogSize)
	}
}

func TestCheck_EmbeddingFailureDegrades(t *testing.T) {
	svc := New(&mockChecker{err: errors.New("provider down")}, &mockCatalog{})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("Status = %s, want %s", report.Status, Degraded)
	}
	if report.Checks["embedding"] != CheckError {
		t.Errorf("embedding check = %s, want %s", report.Checks["embedding"], CheckError)
	}
}

func TestCheck_NilCheckerStaysHealthy(t *testing.T) {
	svc := New(nil, &mockCatalog{size: 3})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("Status = %s, want %s", report.Status, Healthy)
	}
	if len(report.Checks) != 0 {
		t.Errorf("Checks = %v, want empty", report.Checks)
	}
}
