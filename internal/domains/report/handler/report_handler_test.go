package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dbtrain-backend/internal/domains/report/export"
	"dbtrain-backend/internal/domains/report/model"
)

type mockReportService struct {
	buildFunc           func(ctx context.Context) (*model.Report, error)
	snapshotFunc        func(ctx context.Context) (*model.Report, error)
	storeSnapshotFunc   func(ctx context.Context) (*model.Report, error)
	requestSnapshotFunc func(ctx context.Context) (string, error)
}

func (m *mockReportService) Build(ctx context.Context) (*model.Report, error) {
	if m.buildFunc != nil {
		return m.buildFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockReportService) Snapshot(ctx context.Context) (*model.Report, error) {
	if m.snapshotFunc != nil {
		return m.snapshotFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockReportService) StoreSnapshot(ctx context.Context) (*model.Report, error) {
	if m.storeSnapshotFunc != nil {
		return m.storeSnapshotFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockReportService) RequestSnapshot(ctx context.Context) (string, error) {
	if m.requestSnapshotFunc != nil {
		return m.requestSnapshotFunc(ctx)
	}
	return "", errors.New("not implemented")
}

func setupRouter(svc *mockReportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewReportHandler(svc)
	r := gin.New()
	r.GET("/report", h.Get)
	r.GET("/report/snapshot", h.GetSnapshot)
	r.POST("/report/snapshot", h.RequestSnapshot)
	r.GET("/report/export", h.Export)
	return r
}

func builtReport(context.Context) (*model.Report, error) {
	return &model.Report{
		Answer1:     []string{"anna"},
		Answer4:     2,
		Answer5:     model.AgreementRatio(0, 0),
		GeneratedAt: time.Date(2024, 6, 15, 12, 30, 0, 0, time.UTC),
	}, nil
}

func TestGet(t *testing.T) {
	w := httptest.NewRecorder()
	setupRouter(&mockReportService{buildFunc: builtReport}).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/report", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Answer1 []string            `json:"answer1"`
			Answer4 int64               `json:"answer4"`
			Answer5 model.RuleAgreement `json:"answer5"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, []string{"anna"}, body.Data.Answer1)
	assert.Equal(t, int64(2), body.Data.Answer4)
	assert.False(t, body.Data.Answer5.Defined)
}

func TestGet_Failure(t *testing.T) {
	svc := &mockReportService{
		buildFunc: func(context.Context) (*model.Report, error) { return nil, errors.New("db down") },
	}

	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/report", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "db down")
}

func TestGetSnapshot_Missing(t *testing.T) {
	svc := &mockReportService{
		snapshotFunc: func(context.Context) (*model.Report, error) { return nil, model.ErrSnapshotNotFound },
	}

	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/report/snapshot", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRequestSnapshot(t *testing.T) {
	svc := &mockReportService{
		requestSnapshotFunc: func(context.Context) (string, error) { return "task-42", nil },
	}

	w := httptest.NewRecorder()
	setupRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/report/snapshot", nil))

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Contains(t, w.Body.String(), "task-42")
}

func TestExport(t *testing.T) {
	w := httptest.NewRecorder()
	setupRouter(&mockReportService{buildFunc: builtReport}).
		ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/report/export", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "report_20240615_123000.xlsx")
	assert.NotEmpty(t, w.Body.Bytes())
}
