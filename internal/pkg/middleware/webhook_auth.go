package middleware

import (
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/live-ls/ls-fulfillment/internal/pkg/secrets"
	"github.com/live-ls/ls-fulfillment/pkg/response"
	"github.com/live-ls/ls-fulfillment/pkg/status"
)

// WebhookAuth verifies that an inbound gateway notification carries the shared
// webhook secret, either as a bearer token, a direct header value or an auth
// query parameter. Requests without a matching credential are rejected before
// the pipeline runs.
type WebhookAuth struct {
	logger     *logrus.Logger
	secrets    secrets.Provider
	secretName string
}

func NewWebhookAuth(logger *logrus.Logger, provider secrets.Provider, secretName string) *WebhookAuth {
	return &WebhookAuth{
		logger:     logger,
		secrets:    provider,
		secretName: secretName,
	}
}

func (m *WebhookAuth) Verify(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		secret, err := m.secrets.Get(ctx, m.secretName)
		if err != nil {
			m.logger.WithContext(ctx).WithError(err).Error("unable to resolve webhook shared secret")
			response.JSON(w, http.StatusInternalServerError, response.RESTEnvelope{
				Status:  status.INTERNAL_SERVER_ERROR,
				Message: "webhook credentials are not configured",
			})

			return
		}

		if credential := extractCredential(r); credential == "" || credential != secret {
			m.logger.WithContext(ctx).Warn("webhook request rejected due to invalid credentials")
			response.JSON(w, http.StatusUnauthorized, response.RESTEnvelope{
				Status:  status.UNAUTHORIZED,
				Message: "invalid webhook credentials",
			})

			return
		}

		next(w, r)
	}
}

func extractCredential(r *http.Request) string {
	for _, header := range []string{"Authorization", "X-Api-Key", "X-Viva-Signature"} {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}

		if strings.HasPrefix(strings.ToLower(value), "bearer ") {
			return strings.TrimSpace(value[len("bearer "):])
		}

		return value
	}

	return r.URL.Query().Get("auth")
}
