package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealthCheckHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		cacheErr   error
		wantStatus int
		wantBody   string
	}{
		{"all up", nil, http.StatusOK, `"status":"ok"`},
		{"cache down", errors.New("connection refused"), http.StatusServiceUnavailable, `"status":"degraded"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/health", healthCheckHandler("1.0.0", map[string]func(context.Context) error{
				"database": func(context.Context) error { return nil },
				"cache":    func(context.Context) error { return tt.cacheErr },
			}))

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}
