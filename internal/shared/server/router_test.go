package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"cat-resume-api/internal/media"
	"cat-resume-api/internal/shared/config"
	"cat-resume-api/internal/shared/server/middleware"
	"cat-resume-api/internal/shared/storage/object/local"
)

func testRouter(t *testing.T, deps RouterDeps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	deps.Config.Env = "dev"
	return NewRouter(deps)
}

func TestRootStatus(t *testing.T) {
	r := testRouter(t, RouterDeps{})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" || body["message"] == "" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name     string
		ping     func(ctx context.Context) error
		wantCode int
	}{
		{name: "memory history", ping: nil, wantCode: http.StatusOK},
		{name: "database up", ping: func(ctx context.Context) error { return nil }, wantCode: http.StatusOK},
		{name: "database down", ping: func(ctx context.Context) error { return errors.New("dial tcp: refused") }, wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			r := testRouter(t, RouterDeps{Ping: tt.ping})
			resp := httptest.NewRecorder()
			r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
			if resp.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d", tt.wantCode, resp.Code)
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	r := testRouter(t, RouterDeps{})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "resumes_received_total") {
		t.Fatalf("expected resume counters, got %s", resp.Body.String())
	}
}

func TestAudioServedFromObjectStore(t *testing.T) {
	store := local.New(t.TempDir())
	if _, err := store.SaveWithKey(context.Background(), "audio/cat_audio_1.mp3", "audio/mpeg", strings.NewReader("ID3")); err != nil {
		t.Fatalf("save: %v", err)
	}
	r := testRouter(t, RouterDeps{Audio: media.NewAudioHandler(store)})

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/audio/cat_audio_1.mp3", nil))
	if resp.Code != http.StatusOK || resp.Body.String() != "ID3" {
		t.Fatalf("unexpected audio response %d %q", resp.Code, resp.Body.String())
	}

	resp = httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/audio/cat_audio_2.mp3", nil))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing audio, got %d", resp.Code)
	}
}

func TestGenerationGroupOnlyLimitsUploads(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	r := NewRouter(RouterDeps{
		Config:      config.Config{RateLimitPerMinute: 1},
		RateLimiter: middleware.NewRateLimiter(func() time.Time { return now }),
	})
	r.POST("/api/resume", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/", nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("GET / request %d expected 200, got %d", i+1, resp.Code)
		}
	}

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/resume", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first upload expected 200, got %d", first.Code)
	}
	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/api/resume", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second upload expected 429, got %d", second.Code)
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{"": ":8080", "9000": ":9000", ":7000": ":7000"}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
