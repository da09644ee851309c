package checkout

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/live-ls/ls-fulfillment/internal/module/webhookapp/viva"
	"github.com/live-ls/ls-fulfillment/internal/pkg/auditlog"
	"github.com/live-ls/ls-fulfillment/internal/pkg/correlation"
	"github.com/live-ls/ls-fulfillment/pkg/errors"
	"github.com/live-ls/ls-fulfillment/pkg/monitoring"
)

var (
	centsShape       = regexp.MustCompile(`^\d+$`)
	decimalShape     = regexp.MustCompile(`^\d+(\.\d{1,2})$`)
	descriptionShape = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
)

const maxDescriptionLength = 20

type CheckoutUseCase interface {
	CreateTransaction(ctx context.Context, req CreateTransactionRequest) (CreateTransactionResponse, error)
}

type checkoutUseCase struct {
	logger           *logrus.Logger
	timeout          time.Duration
	sourceCode       string
	checkoutBaseURL  string
	ticketRepository TicketRepository
	vivaRepository   viva.VivaRepository
	auditLog         auditlog.Store
}

type CheckoutUseCaseProperty struct {
	Logger           *logrus.Logger
	Timeout          time.Duration
	SourceCode       string
	CheckoutBaseURL  string
	TicketRepository TicketRepository
	VivaRepository   viva.VivaRepository
	AuditLog         auditlog.Store
}

func NewCheckoutUseCase(props CheckoutUseCaseProperty) CheckoutUseCase {
	return &checkoutUseCase{
		logger:           props.Logger,
		timeout:          props.Timeout,
		sourceCode:       props.SourceCode,
		checkoutBaseURL:  props.CheckoutBaseURL,
		ticketRepository: props.TicketRepository,
		vivaRepository:   props.VivaRepository,
		auditLog:         props.AuditLog,
	}
}

// CreateTransaction implements CheckoutUseCase. It establishes the single
// event the cart belongs to, encodes the orderId:eventId correlation token
// into the gateway's merchant reference, and returns the smart checkout
// redirect url.
func (u *checkoutUseCase) CreateTransaction(ctx context.Context, req CreateTransactionRequest) (CreateTransactionResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	u.auditLog.Record(ctx, "checkout_started", map[string]interface{}{
		"orderId":     req.OrderID,
		"totalAmount": req.TotalAmount,
		"itemCount":   len(req.Items),
	})

	amount, err := normalizeAmount(req.TotalAmount)
	if err != nil {
		monitoring.CheckoutTransactionsTotal.WithLabelValues("rejected").Inc()
		return CreateTransactionResponse{}, err
	}

	itemIDs := make([]string, 0, len(req.Items))
	for _, item := range req.Items {
		if correlation.IsUUID(item.ID) {
			itemIDs = append(itemIDs, item.ID)
		}
	}

	u.auditLog.Record(ctx, "items_filtered", map[string]interface{}{
		"filteredItems": itemIDs,
		"count":         len(itemIDs),
	})

	if len(itemIDs) == 0 {
		monitoring.CheckoutTransactionsTotal.WithLabelValues("rejected").Inc()
		return CreateTransactionResponse{}, errors.New(http.StatusBadRequest, NO_VALID_ITEMS, "no valid ticket items found")
	}

	tickets, err := u.ticketRepository.FindManyByIDs(ctx, itemIDs)
	if err != nil {
		monitoring.CheckoutTransactionsTotal.WithLabelValues("failed").Inc()
		return CreateTransactionResponse{}, err
	}

	found := make(map[string]Ticket, len(tickets))
	for _, t := range tickets {
		found[t.ID] = t
	}

	for _, id := range itemIDs {
		if _, ok := found[id]; !ok {
			u.logger.WithContext(ctx).WithField("itemId", id).Warn("no ticket found for item")
			u.auditLog.Record(ctx, "ticket_error", map[string]interface{}{
				"itemId": id,
				"msg":    "no ticket found for item",
			})
		}
	}

	if len(tickets) == 0 {
		monitoring.CheckoutTransactionsTotal.WithLabelValues("rejected").Inc()
		return CreateTransactionResponse{}, errors.New(http.StatusBadRequest, NO_VALID_TICKETS, "no valid tickets found")
	}

	eventIDs := make(map[string]struct{}, 1)
	for _, t := range tickets {
		eventIDs[t.EventID] = struct{}{}
	}

	if len(eventIDs) > 1 {
		monitoring.CheckoutTransactionsTotal.WithLabelValues("rejected").Inc()
		return CreateTransactionResponse{}, errors.New(http.StatusBadRequest, MULTIPLE_EVENTS, "all tickets must belong to the same event")
	}

	eventID := tickets[0].EventID
	merchantTrns := correlation.Encode(req.OrderID, eventID)

	email := req.CustomerEmail
	if email == "" {
		email = defaultEmail
	}

	grossAmount := amount.Mul(decimal.NewFromInt(100)).IntPart()

	checkoutOrder, err := u.vivaRepository.CreateCheckoutOrder(ctx, viva.CheckoutOrderRequest{
		Amount:       grossAmount,
		CustomerTrns: sanitizeDescription(req.Description),
		Customer: viva.Customer{
			Email:       email,
			CountryCode: defaultCountryCode,
			RequestLang: defaultRequestLang,
		},
		SourceCode:   u.sourceCode,
		MerchantTrns: merchantTrns,
	})
	if err != nil {
		monitoring.CheckoutTransactionsTotal.WithLabelValues("failed").Inc()
		u.auditLog.Record(ctx, "checkout_error", map[string]interface{}{
			"orderId":      req.OrderID,
			"errorMessage": err.Error(),
		})

		return CreateTransactionResponse{}, err
	}

	redirectURL := fmt.Sprintf("%s/web/checkout?ref=%d", u.checkoutBaseURL, checkoutOrder.OrderCode)

	u.auditLog.Record(ctx, "checkout_url_created", map[string]interface{}{
		"orderId":      req.OrderID,
		"eventId":      eventID,
		"merchantTrns": merchantTrns,
		"orderCode":    checkoutOrder.OrderCode,
	})

	monitoring.CheckoutTransactionsTotal.WithLabelValues("created").Inc()

	return CreateTransactionResponse{RedirectURL: redirectURL}, nil
}

// normalizeAmount accepts either an integer cent amount or an already decimal
// amount with up to two fraction digits, and returns the decimal value.
func normalizeAmount(raw string) (decimal.Decimal, error) {
	switch {
	case centsShape.MatchString(raw):
		cents, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Decimal{}, errors.New(http.StatusBadRequest, INVALID_AMOUNT, "total amount must be a positive number")
		}

		return cents.Div(decimal.NewFromInt(100)).Round(2), nil
	case decimalShape.MatchString(raw):
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Decimal{}, errors.New(http.StatusBadRequest, INVALID_AMOUNT, "total amount must be a positive number")
		}

		return amount.Round(2), nil
	default:
		return decimal.Decimal{}, errors.New(http.StatusBadRequest, INVALID_AMOUNT, "total amount must be a positive number")
	}
}

func sanitizeDescription(description string) string {
	if description == "" {
		return defaultDescription
	}

	clean := descriptionShape.ReplaceAllString(description, "")
	if len(clean) > maxDescriptionLength {
		clean = clean[:maxDescriptionLength]
	}

	if clean == "" {
		return defaultDescription
	}

	return clean
}
