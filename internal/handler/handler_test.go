package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gambit/admin-api/internal/domain"
	"github.com/gambit/admin-api/internal/guard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelopeBody struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data"`
	Error   *struct {
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelopeBody {
	t.Helper()
	var body envelopeBody
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

// --- Respond Tests ---

func TestRespond(t *testing.T) {
	t.Run("200 with body", func(t *testing.T) {
		w := httptest.NewRecorder()
		Respond(w, http.StatusOK, map[string]string{"status": "ok"})
		assert.Equal(t, http.StatusOK, w.Code)

		body := decodeEnvelope(t, w)
		assert.True(t, body.Success)
		assert.Equal(t, "ok", body.Data["status"])
		assert.Nil(t, body.Error)
	})

	t.Run("201 with body", func(t *testing.T) {
		w := httptest.NewRecorder()
		Respond(w, http.StatusCreated, map[string]int{"id": 42})
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.True(t, decodeEnvelope(t, w).Success)
	})
}

// --- RespondError Tests ---

func TestRespondError(t *testing.T) {
	t.Run("AppError maps to correct status", func(t *testing.T) {
		tests := []struct {
			name       string
			err        *domain.AppError
			wantStatus int
			wantMsg    string
		}{
			{"not found", domain.ErrNotFound("Player", 123), 404, "Player with ID 123 not found"},
			{"validation", domain.ErrValidation("bad input"), 400, "bad input"},
			{"unauthorized", domain.ErrUnauthorized("no token"), 401, "no token"},
			{"forbidden", domain.ErrForbidden("not allowed"), 403, "not allowed"},
			{"conflict", domain.ErrConflict("Email already registered"), 409, "Email already registered"},
			{"duplicate", domain.ErrDuplicate("already exists"), 400, "already exists"},
			{"locked", domain.ErrAccountLocked("locked"), 429, "locked"},
			{"internal", domain.ErrInternal("find admin", nil), 500, "Internal server error"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				w := httptest.NewRecorder()
				RespondError(w, httptest.NewRequest(http.MethodGet, "/", nil), tt.err)
				assert.Equal(t, tt.wantStatus, w.Code)

				body := decodeEnvelope(t, w)
				assert.False(t, body.Success)
				require.NotNil(t, body.Error)
				assert.Equal(t, tt.wantMsg, body.Error.Message)
			})
		}
	})

	t.Run("details pass through", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		RespondError(w, r, domain.ErrValidation("bad input").WithDetails(map[string]any{"field": "email"}))

		body := decodeEnvelope(t, w)
		require.NotNil(t, body.Error)
		assert.Equal(t, "email", body.Error.Details["field"])
	})

	t.Run("generic error returns opaque 500", func(t *testing.T) {
		w := httptest.NewRecorder()
		RespondError(w, httptest.NewRequest(http.MethodGet, "/", nil), assert.AnError)
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		body := decodeEnvelope(t, w)
		assert.False(t, body.Success)
		require.NotNil(t, body.Error)
		assert.Equal(t, "Internal server error", body.Error.Message)
	})

	t.Run("server errors log the cause but hide it from the client", func(t *testing.T) {
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))

		r := httptest.NewRequest(http.MethodGet, "/api/admins", nil)
		ctx := context.WithValue(r.Context(), loggerKey, logger)
		ctx = context.WithValue(ctx, requestIDKey, "req-123")
		r = r.WithContext(ctx)

		w := httptest.NewRecorder()
		RespondError(w, r, domain.ErrInternal("find admin", assert.AnError))

		body := decodeEnvelope(t, w)
		require.NotNil(t, body.Error)
		assert.Equal(t, "Internal server error", body.Error.Message)

		out := logs.String()
		assert.Contains(t, out, "find admin")
		assert.Contains(t, out, assert.AnError.Error())
		assert.Contains(t, out, "req-123")
		assert.NotContains(t, w.Body.String(), assert.AnError.Error())
	})

	t.Run("client errors are not logged", func(t *testing.T) {
		var logs bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&logs, nil))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r = r.WithContext(context.WithValue(r.Context(), loggerKey, logger))

		w := httptest.NewRecorder()
		RespondError(w, r, domain.ErrNotFound("Player", 1))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, logs.String())
	})
}

// --- DecodeJSON Tests ---

func TestDecodeJSON(t *testing.T) {
	t.Run("valid JSON body", func(t *testing.T) {
		body := bytes.NewBufferString(`{"name":"test","value":42}`)
		r := httptest.NewRequest(http.MethodPost, "/", body)
		var dst struct {
			Name  string `json:"name"`
			Value int    `json:"value"`
		}
		require.NoError(t, DecodeJSON(r, &dst))
		assert.Equal(t, "test", dst.Name)
		assert.Equal(t, 42, dst.Value)
	})

	t.Run("invalid JSON returns validation error", func(t *testing.T) {
		body := bytes.NewBufferString(`{invalid`)
		r := httptest.NewRequest(http.MethodPost, "/", body)
		var dst map[string]interface{}
		err := DecodeJSON(r, &dst)
		require.Error(t, err)

		appErr, ok := err.(*domain.AppError)
		require.True(t, ok)
		assert.Equal(t, 400, appErr.Status)
	})
}

// --- Pagination Tests ---

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name            string
		total, page, pp int
		wantPages       int
		wantNext        bool
		wantPrev        bool
	}{
		{"first of several", 45, 1, 10, 5, true, false},
		{"middle page", 45, 3, 10, 5, true, true},
		{"last page", 45, 5, 10, 5, false, true},
		{"exact multiple", 40, 4, 10, 4, false, true},
		{"empty", 0, 1, 10, 0, false, false},
		{"single partial page", 7, 1, 10, 1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.total, tt.page, tt.pp)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.wantPages, p.Pages)
			assert.Equal(t, tt.wantNext, p.HasNext)
			assert.Equal(t, tt.wantPrev, p.HasPrev)
		})
	}
}

// --- QueryInt / QueryInt64 Tests ---

func TestQueryInt(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/?days=7", nil)
		assert.Equal(t, 7, QueryInt(r, "days", 30))
	})

	t.Run("absent falls back to default", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Equal(t, 30, QueryInt(r, "days", 30))
	})

	t.Run("garbage falls back to default", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/?days=soon", nil)
		assert.Equal(t, 30, QueryInt(r, "days", 30))
	})

	t.Run("non-positive falls back to default", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/?days=-1", nil)
		assert.Equal(t, 30, QueryInt(r, "days", 30))
	})
}

func TestQueryInt64(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/?league_id=9", nil)
		assert.Equal(t, int64(9), QueryInt64(r, "league_id"))
	})

	t.Run("absent is zero", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Equal(t, int64(0), QueryInt64(r, "league_id"))
	})
}

// --- clientIP Tests ---

func TestClientIP(t *testing.T) {
	t.Run("X-Forwarded-For single IP", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Forwarded-For", "1.2.3.4")
		assert.Equal(t, "1.2.3.4", clientIP(r))
	})

	t.Run("X-Forwarded-For multiple IPs takes first", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")
		assert.Equal(t, "1.2.3.4", clientIP(r))
	})

	t.Run("no X-Forwarded-For uses RemoteAddr", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "10.0.0.1:54321"
		assert.Equal(t, "10.0.0.1", clientIP(r))
	})

	t.Run("RemoteAddr without port", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.RemoteAddr = "10.0.0.1"
		assert.Equal(t, "10.0.0.1", clientIP(r))
	})
}

// --- RequestID Middleware Tests ---

func TestRequestID(t *testing.T) {
	t.Run("generates ID when none provided", func(t *testing.T) {
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := GetRequestID(r.Context())
			assert.NotEmpty(t, id)
			w.WriteHeader(http.StatusOK)
		}))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("uses provided X-Request-ID", func(t *testing.T) {
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := GetRequestID(r.Context())
			assert.Equal(t, "my-custom-id", id)
			w.WriteHeader(http.StatusOK)
		}))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Request-ID", "my-custom-id")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, "my-custom-id", w.Header().Get("X-Request-ID"))
	})
}

func TestGetRequestID_EmptyContext(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}

// --- JSONContentType Middleware Tests ---

func TestJSONContentType(t *testing.T) {
	handler := JSONContentType(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

// --- CORS Middleware Tests ---

func TestCORSWithOrigins(t *testing.T) {
	t.Run("sets CORS headers", func(t *testing.T) {
		handler := CORSWithOrigins("*")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "GET")
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
		assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "X-Request-ID")
	})

	t.Run("specific origin", func(t *testing.T) {
		handler := CORSWithOrigins("https://admin.gambit.app")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, "https://admin.gambit.app", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("OPTIONS returns 204", func(t *testing.T) {
		handler := CORSWithOrigins("")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		r := httptest.NewRequest(http.MethodOptions, "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRateLimit_BlocksOverLimit(t *testing.T) {
	limiter := guard.NewRateLimiter(2, time.Minute)
	handler := RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for i := 0; i < 2; i++ {
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		r.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.RemoteAddr = "10.0.0.1:1234"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// A different caller is unaffected.
	r = httptest.NewRequest(http.MethodPost, "/", nil)
	r.RemoteAddr = "10.0.0.2:1234"
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

// --- Recovery Middleware Tests ---

func TestRecovery(t *testing.T) {
	t.Run("recovers from panic", func(t *testing.T) {
		handler := Recovery(noopLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("something went wrong")
		}))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		assert.NotPanics(t, func() {
			handler.ServeHTTP(w, r)
		})

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		body := decodeEnvelope(t, w)
		assert.False(t, body.Success)
		require.NotNil(t, body.Error)
		assert.Equal(t, "Internal server error", body.Error.Message)
	})

	t.Run("passes through without panic", func(t *testing.T) {
		handler := Recovery(noopLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"success":true}`))
		}))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

// --- responseWriter Tests ---

func TestResponseWriter_CapturesStatus(t *testing.T) {
	w := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: w, status: 200}

	rw.WriteHeader(http.StatusNotFound)
	assert.Equal(t, 404, rw.status)
	assert.Equal(t, 404, w.Code)
}

// helper

func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
