package payment

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	internalMiddleware "github.com/live-ls/ls-fulfillment/internal/pkg/middleware"
	publicMiddleware "github.com/live-ls/ls-fulfillment/pkg/middleware"
	"github.com/live-ls/ls-fulfillment/pkg/errors"
	"github.com/live-ls/ls-fulfillment/pkg/response"
)

type HTTPHandler struct {
	PaymentWebhookUseCase PaymentWebhookUseCase
}

func InitHTTPHandler(router *mux.Router, webhookAuth *internalMiddleware.WebhookAuth, paymentWebhookUseCase PaymentWebhookUseCase) {
	handler := &HTTPHandler{
		PaymentWebhookUseCase: paymentWebhookUseCase,
	}

	router.HandleFunc("/ls-fulfillment/v1/webhooks/viva/transaction-payment-created", publicMiddleware.SetRouteChain(handler.OnTransactionPaymentCreated, webhookAuth.Verify)).Methods(http.MethodPost)
	router.HandleFunc("/ls-fulfillment/v1/webhooks/viva/transaction-payment-created", publicMiddleware.SetRouteChain(handler.GetWebhookVerificationKey)).Methods(http.MethodGet)
}

func (handler HTTPHandler) OnTransactionPaymentCreated(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	e := TransactionPaymentCreatedEvent{}
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		response.JSON(w, http.StatusBadRequest, TransactionPaymentCreatedResponse{
			Code:    MISSING_FIELDS,
			Message: "request body is not a valid payment notification",
		})

		return
	}

	resp, err := handler.PaymentWebhookUseCase.OnTransactionPaymentCreated(ctx, e)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, TransactionPaymentCreatedResponse{
			Code:    ae.Status,
			Message: ae.Message,
		})

		return
	}

	response.JSON(w, http.StatusOK, resp)
}

func (handler HTTPHandler) GetWebhookVerificationKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resp, err := handler.PaymentWebhookUseCase.GetWebhookVerificationKey(ctx)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, http.StatusInternalServerError, WebhookErrorResponse{
			Error: ae.Message,
		})

		return
	}

	response.JSON(w, http.StatusOK, resp)
}
