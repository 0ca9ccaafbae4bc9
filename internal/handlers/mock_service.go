package handlers

import (
	"context"

	"telemetry_monitor/internal/models"
	"telemetry_monitor/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockTelemetry struct {
	resp    models.Classification
	err     error
	lastReq service.IngestRequest
	calls   int
}

func (m *mockTelemetry) Ingest(ctx context.Context, in service.IngestRequest) (models.Classification, error) {
	m.calls++
	m.lastReq = in
	return m.resp, m.err
}

type mockErrorLog struct {
	list       []string
	listErr    error
	count      int
	countErr   error
	cleared    int
	clearErr   error
	clearCalls int
}

func (m *mockErrorLog) List(ctx context.Context) ([]string, error) {
	return m.list, m.listErr
}

func (m *mockErrorLog) Count(ctx context.Context) (int, error) {
	return m.count, m.countErr
}

func (m *mockErrorLog) Clear(ctx context.Context) (int, error) {
	m.clearCalls++
	return m.cleared, m.clearErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil)
	return h.InitRoutes()
}

func int64Ptr(v int64) *int64    { return &v }
func stringPtr(v string) *string { return &v }
