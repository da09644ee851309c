package crm

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

type CRMRepository interface {
	CreateContact(ctx context.Context, req CreateContactRequest) (CreateContactResponse, error)
	EmailContact(ctx context.Context, templateID string, contactID string, variables map[string]string) error
}

type crmRepository struct {
	baseURL string
	apiKey  string
	logger  *logrus.Logger
	hc      *http.Client
}

func NewCRMRepository(baseURL string, apiKey string, logger *logrus.Logger, hc *http.Client) CRMRepository {
	return &crmRepository{
		baseURL: baseURL,
		apiKey:  apiKey,
		logger:  logger,
		hc:      hc,
	}
}

// CreateContact implements CRMRepository.
func (r *crmRepository) CreateContact(ctx context.Context, req CreateContactRequest) (CreateContactResponse, error) {
	respBody, err := r.do(ctx, fmt.Sprintf("%s/v1/contacts", r.baseURL), req, "an error occurred while creating contact through the crm service")
	if err != nil {
		return CreateContactResponse{}, err
	}

	var resp CreateContactResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return CreateContactResponse{}, errors.New(http.StatusBadGateway, DISPATCH_FAILED, "an error occurred while creating contact through the crm service")
	}

	return resp, nil
}

// EmailContact implements CRMRepository.
func (r *crmRepository) EmailContact(ctx context.Context, templateID string, contactID string, variables map[string]string) error {
	req := emailContactRequest{
		TemplateID: templateID,
		ContactID:  contactID,
		Variables:  variables,
	}

	if _, err := r.do(ctx, fmt.Sprintf("%s/v1/emails/trigger", r.baseURL), req, "an error occurred while sending triggered email through the crm service"); err != nil {
		return err
	}

	return nil
}

func (r *crmRepository) do(ctx context.Context, endpoint string, payload interface{}, failureMessage string) ([]byte, error) {
	reqBuff, _ := json.Marshal(payload)
	body := bytes.NewBuffer(reqBuff)

	hr, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusBadGateway, DISPATCH_FAILED, failureMessage)
	}

	hr.Header.Add("Content-Type", "application/json")
	hr.Header.Add("Accept", "application/json")
	hr.Header.Add("Authorization", r.apiKey)

	hresp, err := r.hc.Do(hr)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusBadGateway, DISPATCH_FAILED, failureMessage)
	}

	defer hresp.Body.Close()

	respBody, err := io.ReadAll(hresp.Body)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusBadGateway, DISPATCH_FAILED, failureMessage)
	}

	if hresp.StatusCode < 200 || hresp.StatusCode > 299 {
		err := fmt.Errorf("crm service responded with status %d: %s", hresp.StatusCode, string(respBody))
		r.logger.WithContext(ctx).WithError(err).Error()
		return nil, errors.New(http.StatusBadGateway, DISPATCH_FAILED, failureMessage)
	}

	return respBody, nil
}
