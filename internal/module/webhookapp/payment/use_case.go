package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/live-ls/ls-fulfillment/internal/module/webhookapp/crm"
	"github.com/live-ls/ls-fulfillment/internal/module/webhookapp/order"
	"github.com/live-ls/ls-fulfillment/internal/module/webhookapp/ticket"
	"github.com/live-ls/ls-fulfillment/internal/module/webhookapp/viva"
	"github.com/live-ls/ls-fulfillment/internal/pkg/auditlog"
	"github.com/live-ls/ls-fulfillment/internal/pkg/correlation"
	"github.com/live-ls/ls-fulfillment/internal/pkg/idempotency"
	"github.com/live-ls/ls-fulfillment/pkg/errors"
	"github.com/live-ls/ls-fulfillment/pkg/monitoring"
	"github.com/live-ls/ls-fulfillment/pkg/pubsub"
	"github.com/live-ls/ls-fulfillment/pkg/status"
)

type PaymentWebhookUseCase interface {
	OnTransactionPaymentCreated(ctx context.Context, e TransactionPaymentCreatedEvent) (TransactionPaymentCreatedResponse, error)
	GetWebhookVerificationKey(ctx context.Context) (WebhookVerificationKeyResponse, error)
}

type paymentWebhookUseCase struct {
	logger           *logrus.Logger
	timeout          time.Duration
	fulfillmentTopic string
	orderRepository  order.OrderRepository
	ticketMailer     crm.TicketMailer
	vivaRepository   viva.VivaRepository
	auditLog         auditlog.Store
	idempotencyStore idempotency.Store
	publisher        pubsub.Publisher
}

type PaymentWebhookUseCaseProperty struct {
	Logger           *logrus.Logger
	Timeout          time.Duration
	FulfillmentTopic string
	OrderRepository  order.OrderRepository
	TicketMailer     crm.TicketMailer
	VivaRepository   viva.VivaRepository
	AuditLog         auditlog.Store
	IdempotencyStore idempotency.Store
	Publisher        pubsub.Publisher
}

func NewPaymentWebhookUseCase(props PaymentWebhookUseCaseProperty) PaymentWebhookUseCase {
	return &paymentWebhookUseCase{
		logger:           props.Logger,
		timeout:          props.Timeout,
		fulfillmentTopic: props.FulfillmentTopic,
		orderRepository:  props.OrderRepository,
		ticketMailer:     props.TicketMailer,
		vivaRepository:   props.VivaRepository,
		auditLog:         props.AuditLog,
		idempotencyStore: props.IdempotencyStore,
		publisher:        props.Publisher,
	}
}

// GetWebhookVerificationKey implements PaymentWebhookUseCase.
func (u *paymentWebhookUseCase) GetWebhookVerificationKey(ctx context.Context) (WebhookVerificationKeyResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	key, err := u.vivaRepository.GetWebhookVerificationKey(ctx)
	if err != nil {
		return WebhookVerificationKeyResponse{}, err
	}

	if key.Key == "" {
		return WebhookVerificationKeyResponse{}, errors.New(http.StatusInternalServerError, status.INTERNAL_SERVER_ERROR, "failed to generate webhook key")
	}

	return WebhookVerificationKeyResponse{Key: key.Key}, nil
}

// OnTransactionPaymentCreated implements PaymentWebhookUseCase. The pipeline
// walks Received, Validated, CorrelationDecoded, OrderConfirmAttempted,
// OrderFetchAttempted, NotificationAttempted, Responded. Validation and
// correlation failures stop it; every later stage failure is recorded and the
// delivery is acknowledged anyway, since the contract with the gateway is
// "acknowledge receipt", not "guarantee fulfillment".
func (u *paymentWebhookUseCase) OnTransactionPaymentCreated(ctx context.Context, e TransactionPaymentCreatedEvent) (resp TransactionPaymentCreatedResponse, err error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	start := time.Now()
	lockAcquired := false

	defer func() {
		monitoring.PipelineDuration.Observe(time.Since(start).Seconds())

		code := resp.Code
		if err != nil {
			code = errors.Destruct(err).Status
		}
		monitoring.WebhookEventsTotal.WithLabelValues(code).Inc()
	}()

	defer func() {
		if r := recover(); r != nil {
			u.logger.WithContext(ctx).Errorf("recovered from panic while processing payment notification: %v", r)
			u.auditLog.Record(ctx, "webhook_processing_error", map[string]interface{}{
				"errorMessage": fmt.Sprintf("%v", r),
			})

			if lockAcquired {
				u.idempotencyStore.ReleaseProcessing(ctx, e.EventData.TransactionID)
			}

			resp = TransactionPaymentCreatedResponse{
				Code:    ACKNOWLEDGED,
				Message: "Webhook received but processing failed internally",
			}
			err = nil
		}
	}()

	d := e.EventData

	u.auditLog.Record(ctx, "webhook_data", map[string]interface{}{
		"eventTypeId":   e.EventTypeID,
		"orderCode":     d.OrderCode,
		"transactionId": d.TransactionID,
		"statusId":      d.StatusID,
		"amount":        d.Amount,
		"merchantTrns":  d.MerchantTrns,
		"currencyCode":  d.CurrencyCode,
		"merchantId":    d.MerchantID,
		"insDate":       d.InsDate,
		"cardNumber":    maskCardNumber(d.CardNumber),
	})

	if err := validateEvent(e); err != nil {
		u.logger.WithContext(ctx).WithError(err).Warn("payment notification failed validation")
		return TransactionPaymentCreatedResponse{}, err
	}

	identity, decodeErr := correlation.Decode(d.MerchantTrns)
	if decodeErr != nil {
		code := INVALID_MERCHANT_TRNS
		message := "invalid merchantTrns format, expected orderId:eventId"
		if decodeErr == correlation.ErrInvalidEventID {
			code = INVALID_EVENT_ID
			message = "eventId is not a valid UUID"
		}

		u.logger.WithContext(ctx).WithError(decodeErr).WithField("merchantTrns", d.MerchantTrns).Warn("payment notification carries an undecodable correlation token")
		u.auditLog.Record(ctx, "webhook_processing_error", map[string]interface{}{
			"errorMessage": message,
			"merchantTrns": d.MerchantTrns,
		})

		return TransactionPaymentCreatedResponse{Code: code, Message: message}, nil
	}

	acquired, idempotencyErr := u.idempotencyStore.AcquireProcessing(ctx, d.TransactionID)
	if idempotencyErr != nil {
		// Dedup degrades to at-least-once rather than dropping the delivery.
		u.logger.WithContext(ctx).WithError(idempotencyErr).Warn("idempotency store unavailable, processing without dedup")
		u.auditLog.Record(ctx, "webhook_idempotency_degraded", map[string]interface{}{
			"transactionId": d.TransactionID,
			"errorMessage":  idempotencyErr.Error(),
		})
		acquired = true
	} else if !acquired {
		u.auditLog.Record(ctx, "webhook_duplicate_delivery", map[string]interface{}{
			"transactionId": d.TransactionID,
			"orderId":       identity.OrderID,
			"eventId":       identity.EventID,
		})

		return TransactionPaymentCreatedResponse{
			Code:    ACKNOWLEDGED,
			Message: "duplicate delivery, transaction already processed",
		}, nil
	} else {
		lockAcquired = true
	}

	outcome := PipelineOutcome{
		Code:    SUCCESS,
		OrderID: identity.OrderID,
		EventID: identity.EventID,
	}

	u.confirmOrder(ctx, d, identity, &outcome)
	downloadURL := u.fetchTickets(ctx, d, identity, &outcome)
	u.dispatchNotification(ctx, d, identity, downloadURL, &outcome)

	if idempotencyErr == nil {
		if err := u.idempotencyStore.MarkProcessed(ctx, d.TransactionID, outcome.Code); err != nil {
			u.logger.WithContext(ctx).WithError(err).Warn("unable to mark transaction as processed")
		}
	}

	u.auditLog.Record(ctx, "webhook_processed", map[string]interface{}{
		"transactionId": d.TransactionID,
		"outcome":       outcome,
	})

	return TransactionPaymentCreatedResponse{
		Code:    SUCCESS,
		Message: "Transaction processed successfully",
		Data: &TransactionSummary{
			OrderCode:     d.OrderCode,
			TransactionID: d.TransactionID,
			Amount:        *d.Amount,
			CurrencyCode:  d.CurrencyCode,
			MerchantID:    d.MerchantID,
			OrderID:       identity.OrderID,
			EventID:       identity.EventID,
		},
	}, nil
}

func (u *paymentWebhookUseCase) confirmOrder(ctx context.Context, d EventData, identity correlation.Identity, outcome *PipelineOutcome) {
	outcome.OrderConfirmed.Attempted = true

	confirmation, err := u.orderRepository.Confirm(ctx, identity.EventID, []string{identity.OrderID})
	if err != nil {
		outcome.OrderConfirmed.Error = err.Error()
		monitoring.PipelineStageFailuresTotal.WithLabelValues("order_confirm").Inc()

		u.logger.WithContext(ctx).WithError(err).WithFields(logrus.Fields{
			"orderId": identity.OrderID,
			"eventId": identity.EventID,
		}).Error("order confirmation failed")
		u.auditLog.Record(ctx, "webhook_order_confirm_error", map[string]interface{}{
			"orderId":       identity.OrderID,
			"eventId":       identity.EventID,
			"transactionId": d.TransactionID,
			"orderCode":     d.OrderCode,
			"errorMessage":  err.Error(),
		})

		return
	}

	outcome.OrderConfirmed.Succeeded = true

	u.auditLog.Record(ctx, "webhook_order_confirm", map[string]interface{}{
		"orderId":       identity.OrderID,
		"eventId":       identity.EventID,
		"transactionId": d.TransactionID,
		"orderCode":     d.OrderCode,
		"amount":        d.Amount,
		"orderNumber":   confirmation.OrderNumber,
		"orderStatus":   confirmation.Status,
		"ticketCount":   len(confirmation.Tickets),
	})
}

func (u *paymentWebhookUseCase) fetchTickets(ctx context.Context, d EventData, identity correlation.Identity, outcome *PipelineOutcome) string {
	outcome.TicketsRetrieved.Attempted = true

	artifacts, err := u.orderRepository.Get(ctx, identity.EventID, identity.OrderID, []string{order.FieldsetTickets, order.FieldsetDetails})
	if err == nil && artifacts[0].ArtifactURL == "" {
		err = errors.New(http.StatusUnprocessableEntity, order.NO_TICKETS_IN_ORDER, "no valid ticket document url found")
	}

	if err != nil {
		outcome.TicketsRetrieved.Error = err.Error()
		monitoring.PipelineStageFailuresTotal.WithLabelValues("order_fetch").Inc()

		u.logger.WithContext(ctx).WithError(err).WithFields(logrus.Fields{
			"orderId": identity.OrderID,
			"eventId": identity.EventID,
		}).Error("order fetch failed")
		u.auditLog.Record(ctx, "get_order_error", map[string]interface{}{
			"orderId":      identity.OrderID,
			"eventId":      identity.EventID,
			"errorMessage": err.Error(),
		})

		return ""
	}

	outcome.TicketsRetrieved.Succeeded = true

	u.auditLog.Record(ctx, "get_order_complete", map[string]interface{}{
		"orderId":     identity.OrderID,
		"eventId":     identity.EventID,
		"ticketCount": len(artifacts),
	})

	u.publishFulfillment(ctx, d, identity, artifacts)

	return artifacts[0].ArtifactURL
}

func (u *paymentWebhookUseCase) dispatchNotification(ctx context.Context, d EventData, identity correlation.Identity, downloadURL string, outcome *PipelineOutcome) {
	if downloadURL == "" || d.Email == "" {
		u.logger.WithContext(ctx).WithFields(logrus.Fields{
			"hasDownloadUrl": downloadURL != "",
			"hasEmail":       d.Email != "",
		}).Warn("skipping ticket email, missing download url or customer email")
		u.auditLog.Record(ctx, "email_skipped", map[string]interface{}{
			"reason":  "missing downloadUrl or customerEmail",
			"orderId": identity.OrderID,
		})

		return
	}

	outcome.NotificationSent.Attempted = true

	name := d.FullName
	if name == "" {
		name = fallbackCustomerName
	}

	if err := u.ticketMailer.SendTicketEmail(ctx, name, d.Email, downloadURL); err != nil {
		outcome.NotificationSent.Error = err.Error()
		monitoring.PipelineStageFailuresTotal.WithLabelValues("notification").Inc()

		u.logger.WithContext(ctx).WithError(err).WithFields(logrus.Fields{
			"customerEmail": d.Email,
			"orderId":       identity.OrderID,
		}).Error("ticket email dispatch failed")
		u.auditLog.Record(ctx, "email_send_error", map[string]interface{}{
			"customerEmail": d.Email,
			"orderId":       identity.OrderID,
			"errorMessage":  err.Error(),
		})

		return
	}

	outcome.NotificationSent.Succeeded = true

	u.auditLog.Record(ctx, "email_sent_success", map[string]interface{}{
		"customerEmail": d.Email,
		"orderId":       identity.OrderID,
		"downloadUrl":   downloadURL,
	})
}

// publishFulfillment emits the ticket-fulfilled event once tickets are known
// to exist for the paid order. Publish failures are logged only; downstream
// consumers reconcile from the audit trail.
func (u *paymentWebhookUseCase) publishFulfillment(ctx context.Context, d EventData, identity correlation.Identity, artifacts []ticket.Artifact) {
	evt := TicketFulfilledEvent{
		OrderID:       identity.OrderID,
		EventID:       identity.EventID,
		OrderCode:     d.OrderCode,
		TransactionID: d.TransactionID,
		CurrencyCode:  d.CurrencyCode,
		Tickets:       artifacts,
		FulfilledAt:   time.Now().UTC(),
	}
	if d.Amount != nil {
		evt.Amount = *d.Amount
	}

	buff, _ := json.Marshal(evt)

	if err := u.publisher.Publish(ctx, u.fulfillmentTopic, d.TransactionID, nil, buff); err != nil {
		u.logger.WithContext(ctx).WithError(err).Warn("unable to publish ticket fulfilled event")
	}
}

func maskCardNumber(cardNumber string) string {
	if cardNumber == "" {
		return "N/A"
	}

	if len(cardNumber) <= 4 {
		return fmt.Sprintf("****%s", cardNumber)
	}

	return fmt.Sprintf("****%s", cardNumber[len(cardNumber)-4:])
}
