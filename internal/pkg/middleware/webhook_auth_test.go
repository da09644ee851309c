package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/live-ls/ls-fulfillment/pkg/applogger"
)

type fakeSecretProvider struct {
	secret string
	err    error
}

func (f *fakeSecretProvider) Get(_ context.Context, _ string) (string, error) {
	return f.secret, f.err
}

func TestWebhookAuthVerify(t *testing.T) {
	auth := NewWebhookAuth(applogger.GetLogrus(), &fakeSecretProvider{secret: "shared-secret"}, "VIVA_WEBHOOK_SECRET")

	protected := auth.Verify(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	cases := []struct {
		name     string
		decorate func(*http.Request)
		expected int
	}{
		{
			name:     "bearer token",
			decorate: func(r *http.Request) { r.Header.Set("Authorization", "Bearer shared-secret") },
			expected: http.StatusOK,
		},
		{
			name:     "direct authorization value",
			decorate: func(r *http.Request) { r.Header.Set("Authorization", "shared-secret") },
			expected: http.StatusOK,
		},
		{
			name:     "api key header",
			decorate: func(r *http.Request) { r.Header.Set("X-Api-Key", "shared-secret") },
			expected: http.StatusOK,
		},
		{
			name:     "signature header",
			decorate: func(r *http.Request) { r.Header.Set("X-Viva-Signature", "shared-secret") },
			expected: http.StatusOK,
		},
		{
			name:     "auth query parameter",
			decorate: func(r *http.Request) { r.URL.RawQuery = "auth=shared-secret" },
			expected: http.StatusOK,
		},
		{
			name:     "missing credential",
			decorate: func(r *http.Request) {},
			expected: http.StatusUnauthorized,
		},
		{
			name:     "wrong credential",
			decorate: func(r *http.Request) { r.Header.Set("Authorization", "Bearer wrong") },
			expected: http.StatusUnauthorized,
		},
		{
			name:     "wrong query credential",
			decorate: func(r *http.Request) { r.URL.RawQuery = "auth=wrong" },
			expected: http.StatusUnauthorized,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/webhooks/viva/transaction-payment-created", nil)
			tc.decorate(req)

			protected(rec, req)

			if rec.Code != tc.expected {
				t.Errorf("expected status %d, got %d", tc.expected, rec.Code)
			}
		})
	}
}

func TestWebhookAuthVerifyUnresolvableSecret(t *testing.T) {
	auth := NewWebhookAuth(applogger.GetLogrus(), &fakeSecretProvider{err: errors.New("secret store unreachable")}, "VIVA_WEBHOOK_SECRET")

	called := false
	protected := auth.Verify(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/viva/transaction-payment-created", nil)
	req.Header.Set("Authorization", "Bearer shared-secret")

	protected(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rec.Code)
	}
	if called {
		t.Error("expected the protected handler not to run")
	}
}
