package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/neko-jpg/boutique-agent-extension/internal/watchlist"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	repo := watchlist.NewInMemoryRepository()
	service := watchlist.NewService(repo)
	return New(watchlist.NewHandler(service))
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if body := w.Body.String(); body != `{"status":"ok"}` {
		t.Fatalf("unexpected health body: %s", body)
	}
}
