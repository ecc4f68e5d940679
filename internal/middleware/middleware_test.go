package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/examgen/examgen-backend/internal/model"
	"github.com/examgen/examgen-backend/internal/ratelimit"
	"github.com/examgen/examgen-backend/internal/response"
	"github.com/examgen/examgen-backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubValidator map[string]*service.Claims

func (s stubValidator) ValidateToken(token string) (*service.Claims, error) {
	if c, ok := s[token]; ok {
		return c, nil
	}
	return nil, io.EOF
}

var tokens = stubValidator{
	"admin-token":   {UserID: 1, Role: model.RoleAdmin},
	"teacher-token": {UserID: 2, Role: model.RoleTeacher},
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.ErrorBody {
	t.Helper()
	var body response.ErrorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestRequireAuthAndRole(t *testing.T) {
	r := gin.New()
	r.GET("/any", RequireAuth(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": GetClaims(c).UserID})
	})
	r.GET("/admin", RequireAuth(tokens), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name     string
		path     string
		header   string
		wantCode int
		wantErr  response.ErrCode
	}{
		{"no header", "/any", "", http.StatusUnauthorized, response.ErrTokenRequired},
		{"not bearer", "/any", "Basic abc", http.StatusUnauthorized, response.ErrTokenRequired},
		{"bad token", "/any", "Bearer nope", http.StatusUnauthorized, response.ErrTokenInvalid},
		{"teacher on any", "/any", "Bearer teacher-token", http.StatusOK, ""},
		{"lower-case scheme", "/any", "bearer teacher-token", http.StatusOK, ""},
		{"teacher on admin", "/admin", "Bearer teacher-token", http.StatusForbidden, response.ErrAdminAccessOnly},
		{"admin on admin", "/admin", "Bearer admin-token", http.StatusNoContent, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.wantCode, w.Body.String())
			}
			if tt.wantErr != "" {
				if got := decodeError(t, w).Code; got != tt.wantErr {
					t.Errorf("code = %s, want %s", got, tt.wantErr)
				}
			}
		})
	}
}

func TestRequireAdmin_Message(t *testing.T) {
	r := gin.New()
	r.GET("/admin", RequireAuth(tokens), RequireAdmin(), func(c *gin.Context) {})

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer teacher-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := decodeError(t, w).Error; got != "Access denied. Admins only." {
		t.Errorf("error = %q", got)
	}
}

func TestDailyAILimit(t *testing.T) {
	now := time.Date(2026, 3, 1, 23, 0, 0, 0, time.UTC)
	limiter := ratelimit.New(ratelimit.NewMemoryStore(), 2, ratelimit.WithClock(func() time.Time { return now }))

	handled := 0
	r := gin.New()
	r.POST("/gen", RequireAuth(tokens), DailyAILimit(limiter, zerolog.Nop()), func(c *gin.Context) {
		handled++
		c.Status(http.StatusOK)
	})

	call := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/gen", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	for i := 0; i < 2; i++ {
		if w := call("teacher-token"); w.Code != http.StatusOK {
			t.Fatalf("call %d status = %d", i+1, w.Code)
		}
	}

	w := call("teacher-token")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("third call status = %d, want 429", w.Code)
	}
	body := decodeError(t, w)
	if body.Code != response.ErrDailyLimitExceeded || !strings.Contains(body.Error, "(2/day)") {
		t.Errorf("body = %+v", body)
	}

	if w := call("admin-token"); w.Code != http.StatusOK {
		t.Errorf("other user status = %d", w.Code)
	}

	now = now.Add(2 * time.Hour)
	if w := call("teacher-token"); w.Code != http.StatusOK {
		t.Errorf("next day status = %d", w.Code)
	}
	if handled != 4 {
		t.Errorf("handler ran %d times, want 4", handled)
	}
}

func TestBrotli(t *testing.T) {
	large := strings.Repeat("question bank ", 200)
	r := gin.New()
	r.Use(Brotli())
	r.GET("/large", func(c *gin.Context) { c.String(http.StatusOK, large) })
	r.GET("/small", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, large) })

	get := func(path, accept string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set("Accept-Encoding", accept)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := get("/large", "gzip, br;q=0.9")
	if w.Header().Get("Content-Encoding") != "br" {
		t.Fatalf("large body not compressed")
	}
	plain, err := io.ReadAll(brotli.NewReader(bytes.NewReader(w.Body.Bytes())))
	if err != nil {
		t.Fatalf("decompress: %v", err)
	}
	if string(plain) != large {
		t.Error("round trip mismatch")
	}

	if w := get("/small", "br"); w.Header().Get("Content-Encoding") != "" || w.Body.String() != "ok" {
		t.Errorf("small body: encoding %q body %q", w.Header().Get("Content-Encoding"), w.Body.String())
	}
	if w := get("/large", "gzip"); w.Header().Get("Content-Encoding") != "" {
		t.Error("compressed without br in Accept-Encoding")
	}
	if w := get("/health", "br"); w.Header().Get("Content-Encoding") != "" {
		t.Error("excluded path compressed")
	}
}
