package viva

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/live-ls/ls-fulfillment/pkg/errors"
)

type VivaRepository interface {
	CreateCheckoutOrder(ctx context.Context, req CheckoutOrderRequest) (CheckoutOrderResponse, error)
	GetWebhookVerificationKey(ctx context.Context) (WebhookVerificationKey, error)
}

type vivaRepository struct {
	baseURL      string
	basicAuthKey string
	logger       *logrus.Logger
	hc           *http.Client
}

func NewVivaRepository(baseURL string, basicAuthKey string, logger *logrus.Logger, hc *http.Client) VivaRepository {
	return &vivaRepository{
		baseURL:      baseURL,
		basicAuthKey: basicAuthKey,
		logger:       logger,
		hc:           hc,
	}
}

// CreateCheckoutOrder implements VivaRepository.
func (r *vivaRepository) CreateCheckoutOrder(ctx context.Context, req CheckoutOrderRequest) (CheckoutOrderResponse, error) {
	reqBuff, _ := json.Marshal(req)
	body := bytes.NewBuffer(reqBuff)
	endpoint := fmt.Sprintf("%s/checkout/v2/orders", r.baseURL)

	respBody, err := r.do(ctx, http.MethodPost, endpoint, body, "an error occurred while creating checkout order through viva")
	if err != nil {
		return CheckoutOrderResponse{}, err
	}

	var resp CheckoutOrderResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return CheckoutOrderResponse{}, errors.New(http.StatusBadGateway, VIVA_UNAVAILABLE, "an error occurred while creating checkout order through viva")
	}

	return resp, nil
}

// GetWebhookVerificationKey implements VivaRepository.
func (r *vivaRepository) GetWebhookVerificationKey(ctx context.Context) (WebhookVerificationKey, error) {
	endpoint := fmt.Sprintf("%s/api/messages/config/token", r.baseURL)

	respBody, err := r.do(ctx, http.MethodGet, endpoint, nil, "an error occurred while retrieving the webhook verification key from viva")
	if err != nil {
		return WebhookVerificationKey{}, err
	}

	var resp WebhookVerificationKey
	if err := json.Unmarshal(respBody, &resp); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return WebhookVerificationKey{}, errors.New(http.StatusBadGateway, VIVA_UNAVAILABLE, "an error occurred while retrieving the webhook verification key from viva")
	}

	return resp, nil
}

func (r *vivaRepository) do(ctx context.Context, method string, endpoint string, body io.Reader, failureMessage string) ([]byte, error) {
	hr, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusBadGateway, VIVA_UNAVAILABLE, failureMessage)
	}

	hr.Header.Add("Content-Type", "application/json")
	hr.Header.Add("Accept", "application/json")
	hr.Header.Add("Authorization", fmt.Sprintf("Basic %s", r.basicAuthKey))

	hresp, err := r.hc.Do(hr)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusBadGateway, VIVA_UNAVAILABLE, failureMessage)
	}

	defer hresp.Body.Close()

	respBody, err := io.ReadAll(hresp.Body)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusBadGateway, VIVA_UNAVAILABLE, failureMessage)
	}

	if hresp.StatusCode < 200 || hresp.StatusCode > 299 {
		err := fmt.Errorf("viva responded with status %d: %s", hresp.StatusCode, string(respBody))
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusBadGateway, VIVA_UNAVAILABLE, failureMessage)
	}

	return respBody, nil
}
