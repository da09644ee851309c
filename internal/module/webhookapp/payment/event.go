package payment

import (
	"time"

	"github.com/live-ls/ls-fulfillment/internal/module/webhookapp/ticket"
)

// EventData is the provider envelope's payload. Amount is a pointer so a
// missing field can be told apart from a zero amount.
type EventData struct {
	OrderCode     string   `json:"OrderCode"`
	TransactionID string   `json:"TransactionId"`
	StatusID      string   `json:"StatusId"`
	Amount        *float64 `json:"Amount"`
	FullName      string   `json:"fullName"`
	MerchantID    string   `json:"MerchantId"`
	Email         string   `json:"Email"`
	CustomerTrns  string   `json:"CustomerTrns"`
	MerchantTrns  string   `json:"MerchantTrns"`
	CurrencyCode  string   `json:"CurrencyCode"`
	InsDate       string   `json:"InsDate"`
	CardNumber    string   `json:"CardNumber"`
}

// TransactionPaymentCreatedEvent is the inbound payment notification as viva
// delivers it. It is constructed once per delivery and immutable after parse.
type TransactionPaymentCreatedEvent struct {
	EventTypeID int64     `json:"EventTypeId"`
	EventData   EventData `json:"EventData"`
}

// TicketFulfilledEvent is published after tickets were retrieved for a paid
// order, keyed by the gateway transaction id.
type TicketFulfilledEvent struct {
	OrderID       string            `json:"order_id"`
	EventID       string            `json:"event_id"`
	OrderCode     string            `json:"order_code"`
	TransactionID string            `json:"transaction_id"`
	Amount        float64           `json:"amount"`
	CurrencyCode  string            `json:"currency_code"`
	Tickets       []ticket.Artifact `json:"tickets"`
	FulfilledAt   time.Time         `json:"fulfilled_at"`
}
