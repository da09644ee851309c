package order

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/live-ls/ls-fulfillment/internal/module/webhookapp/ticket"
	"github.com/live-ls/ls-fulfillment/pkg/errors"
)

// OrderRepository drives the external ticketing order service. Calls are made
// with the service api key, so they succeed regardless of the caller's
// identity; the webhook caller is the payment gateway, not an end user.
type OrderRepository interface {
	Confirm(ctx context.Context, eventID string, orderNumbers []string) (Confirmation, error)
	Get(ctx context.Context, eventID string, orderNumber string, fieldset []string) ([]ticket.Artifact, error)
}

type orderRepository struct {
	baseURL string
	apiKey  string
	logger  *logrus.Logger
	hc      *http.Client
}

func NewOrderRepository(baseURL string, apiKey string, logger *logrus.Logger, hc *http.Client) OrderRepository {
	return &orderRepository{
		baseURL: baseURL,
		apiKey:  apiKey,
		logger:  logger,
		hc:      hc,
	}
}

// Confirm implements OrderRepository.
func (r *orderRepository) Confirm(ctx context.Context, eventID string, orderNumbers []string) (Confirmation, error) {
	reqBuff, _ := json.Marshal(confirmOrderRequest{OrderNumber: orderNumbers})
	body := bytes.NewBuffer(reqBuff)
	endpoint := fmt.Sprintf("%s/v1/events/%s/orders/confirm", r.baseURL, url.PathEscape(eventID))

	respBody, err := r.do(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return Confirmation{}, err
	}

	var resp confirmOrderResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return Confirmation{}, errors.New(http.StatusBadGateway, RECONCILIATION_UNAVAILABLE, "an error occurred while confirming order through the order service")
	}

	if len(resp.Orders) == 0 || len(resp.Orders[0].Tickets) == 0 {
		return Confirmation{}, errors.New(http.StatusUnprocessableEntity, NO_TICKETS_IN_CONFIRMATION, "order confirmation contains no tickets")
	}

	first := resp.Orders[0]

	return Confirmation{
		OrderNumber: first.OrderNumber,
		EventID:     first.EventID,
		Status:      first.Status,
		Tickets:     ticket.Normalize(first.Tickets),
	}, nil
}

// Get implements OrderRepository.
func (r *orderRepository) Get(ctx context.Context, eventID string, orderNumber string, fieldset []string) ([]ticket.Artifact, error) {
	endpoint := fmt.Sprintf(
		"%s/v1/events/%s/orders/%s?fieldset=%s",
		r.baseURL,
		url.PathEscape(eventID),
		url.PathEscape(orderNumber),
		url.QueryEscape(strings.Join(fieldset, ",")),
	)

	respBody, err := r.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var resp orderDetail
	if err := json.Unmarshal(respBody, &resp); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusBadGateway, RECONCILIATION_UNAVAILABLE, "an error occurred while fetching order through the order service")
	}

	if len(resp.Tickets) == 0 {
		return nil, errors.New(http.StatusUnprocessableEntity, NO_TICKETS_IN_ORDER, "order contains no tickets")
	}

	return ticket.Normalize(resp.Tickets), nil
}

func (r *orderRepository) do(ctx context.Context, method string, endpoint string, body io.Reader) ([]byte, error) {
	hr, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusBadGateway, RECONCILIATION_UNAVAILABLE, "an error occurred while reaching the order service")
	}

	hr.Header.Add("Content-Type", "application/json")
	hr.Header.Add("Accept", "application/json")
	hr.Header.Add("Authorization", r.apiKey)

	hresp, err := r.hc.Do(hr)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusBadGateway, RECONCILIATION_UNAVAILABLE, "an error occurred while reaching the order service")
	}

	defer hresp.Body.Close()

	respBody, err := io.ReadAll(hresp.Body)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusBadGateway, RECONCILIATION_UNAVAILABLE, "an error occurred while reaching the order service")
	}

	if hresp.StatusCode < 200 || hresp.StatusCode > 299 {
		err := fmt.Errorf("order service responded with status %d: %s", hresp.StatusCode, string(respBody))
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusBadGateway, RECONCILIATION_UNAVAILABLE, "an error occurred while reaching the order service")
	}

	return respBody, nil
}
