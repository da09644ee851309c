package order

import "github.com/live-ls/ls-fulfillment/internal/module/webhookapp/ticket"

const (
	NO_TICKETS_IN_CONFIRMATION string = "NO_TICKETS_IN_CONFIRMATION"
	NO_TICKETS_IN_ORDER        string = "NO_TICKETS_IN_ORDER"
	RECONCILIATION_UNAVAILABLE string = "RECONCILIATION_UNAVAILABLE"
)

const (
	FieldsetTickets string = "TICKETS"
	FieldsetDetails string = "DETAILS"
)

// Confirmation is the normalized result of confirming an order: the first
// order entry's tickets plus the identifiers the confirmation was made for.
type Confirmation struct {
	OrderNumber string
	EventID     string
	Status      string
	Tickets     []ticket.Artifact
}

type orderDetail struct {
	OrderNumber     string             `json:"orderNumber"`
	EventID         string             `json:"eventId"`
	Status          string             `json:"status"`
	TicketsQuantity int64              `json:"ticketsQuantity"`
	Tickets         []ticket.RawTicket `json:"tickets"`
}

type confirmOrderRequest struct {
	OrderNumber []string `json:"orderNumber"`
}

type confirmOrderResponse struct {
	Orders []orderDetail `json:"orders"`
}
