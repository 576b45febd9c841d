package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-studio/internal/backend"
)

func tokenEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := backend.TokenFrom(r.Context())
		if !ok {
			token = "<none>"
		}
		_, _ = w.Write([]byte(token))
	})
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		required   bool
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", header: "Bearer abc.def", required: true, wantStatus: http.StatusOK, wantBody: "abc.def"},
		{name: "lowercase scheme", header: "bearer xyz", required: true, wantStatus: http.StatusOK, wantBody: "xyz"},
		{name: "missing header", header: "", required: true, wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic dXNlcg==", required: true, wantStatus: http.StatusUnauthorized},
		{name: "scheme only", header: "Bearer", required: true, wantStatus: http.StatusUnauthorized},
		{name: "extra parts", header: "Bearer a b", required: true, wantStatus: http.StatusUnauthorized},
		{name: "optional and missing", header: "", required: false, wantStatus: http.StatusOK, wantBody: "<none>"},
		{name: "optional and present", header: "Bearer opt", required: false, wantStatus: http.StatusOK, wantBody: "opt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/credits", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			BearerToken(tt.required)(tokenEcho()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
				assert.JSONEq(t, `{"error":"missing bearer token"}`, rec.Body.String())
			}
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	_, err := uuid.Parse(seen)
	require.NoError(t, err)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, incoming, seen)

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", seen)
	_, err = uuid.Parse(seen)
	assert.NoError(t, err)
}
