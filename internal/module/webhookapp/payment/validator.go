package payment

import (
	"fmt"
	"net/http"

	"github.com/live-ls/ls-fulfillment/pkg/errors"
)

// validateEvent runs the ordered payload checks, short-circuiting on the
// first failure. It has no side effects; the caller decides what to log.
func validateEvent(e TransactionPaymentCreatedEvent) error {
	if e.EventTypeID != TransactionPaymentCreatedTypeID {
		return errors.New(http.StatusBadRequest, INVALID_EVENT_TYPE, fmt.Sprintf("webhook event type is not Transaction Payment Created (%d)", TransactionPaymentCreatedTypeID))
	}

	d := e.EventData
	if d.OrderCode == "" || d.TransactionID == "" || d.StatusID == "" || d.Amount == nil || d.MerchantTrns == "" {
		return errors.New(http.StatusBadRequest, MISSING_FIELDS, "required fields (OrderCode, TransactionId, StatusId, Amount, MerchantTrns) are missing")
	}

	if d.StatusID != transactionStatusSuccessful {
		return errors.New(http.StatusBadRequest, TRANSACTION_NOT_SUCCESSFUL, fmt.Sprintf("transaction status is %s, expected '%s' for success", d.StatusID, transactionStatusSuccessful))
	}

	if *d.Amount <= 0 {
		return errors.New(http.StatusBadRequest, INVALID_AMOUNT, "amount must be a positive number")
	}

	return nil
}
