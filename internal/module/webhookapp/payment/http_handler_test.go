package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/live-ls/ls-fulfillment/pkg/errors"
)

type stubUseCase struct {
	resp    TransactionPaymentCreatedResponse
	respErr error
	key     WebhookVerificationKeyResponse
	keyErr  error
}

func (s *stubUseCase) OnTransactionPaymentCreated(_ context.Context, _ TransactionPaymentCreatedEvent) (TransactionPaymentCreatedResponse, error) {
	return s.resp, s.respErr
}

func (s *stubUseCase) GetWebhookVerificationKey(_ context.Context) (WebhookVerificationKeyResponse, error) {
	return s.key, s.keyErr
}

func TestOnTransactionPaymentCreatedHandler(t *testing.T) {
	t.Run("malformed body yields 400", func(t *testing.T) {
		handler := HTTPHandler{PaymentWebhookUseCase: &stubUseCase{}}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/webhooks/viva/transaction-payment-created", strings.NewReader("{not json"))

		handler.OnTransactionPaymentCreated(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}

		var body TransactionPaymentCreatedResponse
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("unexpected decode error: %v", err)
		}
		if body.Code != MISSING_FIELDS {
			t.Errorf("expected code %q, got %q", MISSING_FIELDS, body.Code)
		}
	})

	t.Run("use case error maps to its http status", func(t *testing.T) {
		handler := HTTPHandler{PaymentWebhookUseCase: &stubUseCase{
			respErr: errors.New(http.StatusBadRequest, INVALID_AMOUNT, "amount must be greater than zero"),
		}}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/webhooks/viva/transaction-payment-created", strings.NewReader("{}"))

		handler.OnTransactionPaymentCreated(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", rec.Code)
		}

		var body TransactionPaymentCreatedResponse
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("unexpected decode error: %v", err)
		}
		if body.Code != INVALID_AMOUNT {
			t.Errorf("expected code %q, got %q", INVALID_AMOUNT, body.Code)
		}
	})

	t.Run("acknowledged pipeline result yields 200", func(t *testing.T) {
		handler := HTTPHandler{PaymentWebhookUseCase: &stubUseCase{
			resp: TransactionPaymentCreatedResponse{Code: INVALID_MERCHANT_TRNS, Message: "invalid merchantTrns format, expected orderId:eventId"},
		}}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/webhooks/viva/transaction-payment-created", strings.NewReader("{}"))

		handler.OnTransactionPaymentCreated(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}

		var body TransactionPaymentCreatedResponse
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("unexpected decode error: %v", err)
		}
		if body.Code != INVALID_MERCHANT_TRNS {
			t.Errorf("expected code %q, got %q", INVALID_MERCHANT_TRNS, body.Code)
		}
		if body.Data != nil {
			t.Error("expected no transaction summary on an acknowledged failure")
		}
	})
}

func TestGetWebhookVerificationKeyHandler(t *testing.T) {
	t.Run("returns the key", func(t *testing.T) {
		handler := HTTPHandler{PaymentWebhookUseCase: &stubUseCase{
			key: WebhookVerificationKeyResponse{Key: "verification-key"},
		}}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/webhooks/viva/transaction-payment-created", nil)

		handler.GetWebhookVerificationKey(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}

		var body WebhookVerificationKeyResponse
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("unexpected decode error: %v", err)
		}
		if body.Key != "verification-key" {
			t.Errorf("expected key 'verification-key', got %q", body.Key)
		}
	})

	t.Run("errors map to 500", func(t *testing.T) {
		handler := HTTPHandler{PaymentWebhookUseCase: &stubUseCase{
			keyErr: errors.New(http.StatusBadGateway, "VIVA_UNAVAILABLE", "viva service is unreachable"),
		}}

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/webhooks/viva/transaction-payment-created", nil)

		handler.GetWebhookVerificationKey(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected status 500, got %d", rec.Code)
		}

		var body WebhookErrorResponse
		if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
			t.Fatalf("unexpected decode error: %v", err)
		}
		if body.Error != "viva service is unreachable" {
			t.Errorf("unexpected error message %q", body.Error)
		}
	})
}
