package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/tinytelemetry/subwatch/internal/devserver"
	"github.com/tinytelemetry/subwatch/internal/model"
)

func TestNewServer_ReleaseMode(t *testing.T) {
	prev := gin.Mode()
	t.Cleanup(func() { gin.SetMode(prev) })
	gin.SetMode(gin.DebugMode)

	srv := newServer("127.0.0.1:0", devserver.DefaultScript())
	t.Cleanup(func() { _ = srv.Stop() })

	if got := gin.Mode(); got != gin.ReleaseMode {
		t.Errorf("gin mode = %q, want %q", got, gin.ReleaseMode)
	}

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, model.PathHealth, nil))
	if w.Code != http.StatusOK {
		t.Errorf("health status = %d, want %d", w.Code, http.StatusOK)
	}
}
