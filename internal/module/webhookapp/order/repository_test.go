package order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/live-ls/ls-fulfillment/internal/module/webhookapp/ticket"
	"github.com/live-ls/ls-fulfillment/pkg/applogger"
	"github.com/live-ls/ls-fulfillment/pkg/errors"
)

const testEventID = "3fa85f64-5717-4562-b3fc-2c963f66afa6"

func TestConfirm(t *testing.T) {
	t.Run("normalizes the first order entry", func(t *testing.T) {
		var gotPath, gotAuth string
		var gotBody confirmOrderRequest

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			json.NewDecoder(r.Body).Decode(&gotBody)

			json.NewEncoder(w).Encode(confirmOrderResponse{
				Orders: []orderDetail{
					{
						OrderNumber:     "ORD1",
						EventID:         testEventID,
						Status:          "CONFIRMED",
						TicketsQuantity: 1,
						Tickets: []ticket.RawTicket{
							{TicketNumber: "TKT-1", Name: "GA", TicketPdfURL: "https://tickets.example.com/TKT-1.pdf"},
						},
					},
				},
			})
		}))
		defer ts.Close()

		repo := NewOrderRepository(ts.URL, "svc-api-key", applogger.GetLogrus(), ts.Client())

		confirmation, err := repo.Confirm(context.Background(), testEventID, []string{"ORD1"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if gotPath != "/v1/events/"+testEventID+"/orders/confirm" {
			t.Errorf("unexpected path %q", gotPath)
		}
		if gotAuth != "svc-api-key" {
			t.Errorf("expected the service api key, got %q", gotAuth)
		}
		if len(gotBody.OrderNumber) != 1 || gotBody.OrderNumber[0] != "ORD1" {
			t.Errorf("unexpected request body %+v", gotBody)
		}

		if confirmation.OrderNumber != "ORD1" || confirmation.Status != "CONFIRMED" {
			t.Errorf("unexpected confirmation %+v", confirmation)
		}
		if len(confirmation.Tickets) != 1 || confirmation.Tickets[0].ArtifactURL != "https://tickets.example.com/TKT-1.pdf" {
			t.Errorf("unexpected tickets %+v", confirmation.Tickets)
		}
		if confirmation.Tickets[0].FormattedPrice != ticket.UnknownPrice {
			t.Errorf("expected defaulted price, got %q", confirmation.Tickets[0].FormattedPrice)
		}
	})

	t.Run("zero tickets is a typed failure", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(confirmOrderResponse{
				Orders: []orderDetail{{OrderNumber: "ORD1", Tickets: nil}},
			})
		}))
		defer ts.Close()

		repo := NewOrderRepository(ts.URL, "svc-api-key", applogger.GetLogrus(), ts.Client())

		_, err := repo.Confirm(context.Background(), testEventID, []string{"ORD1"})
		assertStatus(t, err, NO_TICKETS_IN_CONFIRMATION, http.StatusUnprocessableEntity)
	})

	t.Run("upstream failure maps to reconciliation unavailable", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer ts.Close()

		repo := NewOrderRepository(ts.URL, "svc-api-key", applogger.GetLogrus(), ts.Client())

		_, err := repo.Confirm(context.Background(), testEventID, []string{"ORD1"})
		assertStatus(t, err, RECONCILIATION_UNAVAILABLE, http.StatusBadGateway)
	})
}

func TestGet(t *testing.T) {
	t.Run("passes the fieldset and normalizes tickets", func(t *testing.T) {
		var gotPath, gotFieldset string

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotFieldset = r.URL.Query().Get("fieldset")

			json.NewEncoder(w).Encode(orderDetail{
				OrderNumber: "ORD1",
				Tickets: []ticket.RawTicket{
					{
						TicketNumber: "TKT-1",
						Name:         "GA",
						Price:        &ticket.Price{Currency: "EUR", Amount: "10.50"},
						TicketPdfURL: "https://tickets.example.com/TKT-1.pdf",
					},
				},
			})
		}))
		defer ts.Close()

		repo := NewOrderRepository(ts.URL, "svc-api-key", applogger.GetLogrus(), ts.Client())

		artifacts, err := repo.Get(context.Background(), testEventID, "ORD1", []string{FieldsetTickets, FieldsetDetails})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if gotPath != "/v1/events/"+testEventID+"/orders/ORD1" {
			t.Errorf("unexpected path %q", gotPath)
		}
		if gotFieldset != "TICKETS,DETAILS" {
			t.Errorf("unexpected fieldset %q", gotFieldset)
		}

		if len(artifacts) != 1 {
			t.Fatalf("expected one artifact, got %d", len(artifacts))
		}
		if artifacts[0].FormattedPrice != "EUR 10.50" {
			t.Errorf("unexpected formatted price %q", artifacts[0].FormattedPrice)
		}
	})

	t.Run("zero tickets is a typed failure", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(orderDetail{OrderNumber: "ORD1"})
		}))
		defer ts.Close()

		repo := NewOrderRepository(ts.URL, "svc-api-key", applogger.GetLogrus(), ts.Client())

		_, err := repo.Get(context.Background(), testEventID, "ORD1", []string{FieldsetTickets})
		assertStatus(t, err, NO_TICKETS_IN_ORDER, http.StatusUnprocessableEntity)
	})

	t.Run("unreachable service maps to reconciliation unavailable", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		ts.Close()

		repo := NewOrderRepository(ts.URL, "svc-api-key", applogger.GetLogrus(), http.DefaultClient)

		_, err := repo.Get(context.Background(), testEventID, "ORD1", []string{FieldsetTickets})
		assertStatus(t, err, RECONCILIATION_UNAVAILABLE, http.StatusBadGateway)
	})
}

func assertStatus(t *testing.T, err error, expectedStatus string, expectedHTTPStatus int) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %s error, got nil", expectedStatus)
	}

	ae := errors.Destruct(err)
	if ae.Status != expectedStatus {
		t.Errorf("expected status %q, got %q", expectedStatus, ae.Status)
	}
	if ae.HTTPStatusCode != expectedHTTPStatus {
		t.Errorf("expected http status %d, got %d", expectedHTTPStatus, ae.HTTPStatusCode)
	}
}
