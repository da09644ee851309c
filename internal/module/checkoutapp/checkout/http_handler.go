package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/live-ls/ls-fulfillment/pkg/errors"
	"github.com/live-ls/ls-fulfillment/pkg/response"
	"github.com/live-ls/ls-fulfillment/pkg/status"
)

type HTTPHandler struct {
	Validate        *validator.Validate
	CheckoutUseCase CheckoutUseCase
}

func InitHTTPHandler(router *mux.Router, validate *validator.Validate, checkoutUseCase CheckoutUseCase) {
	handler := &HTTPHandler{
		Validate:        validate,
		CheckoutUseCase: checkoutUseCase,
	}

	router.HandleFunc("/ls-fulfillment/v1/checkout/transactions", handler.CreateTransaction).Methods(http.MethodPost)
}

func (handler HTTPHandler) validate(ctx context.Context, payload interface{}) error {
	err := handler.Validate.StructCtx(ctx, payload)
	if err == nil {
		return nil
	}

	errorFields := err.(validator.ValidationErrors)

	errMessages := make([]string, len(errorFields))

	for k, errorField := range errorFields {
		errMessages[k] = fmt.Sprintf("invalid '%s' with value '%v'", errorField.Field(), errorField.Value())
	}

	return fmt.Errorf("%s", strings.Join(errMessages, ", "))
}

func (handler HTTPHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req := CreateTransactionRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.JSON(w, http.StatusUnprocessableEntity, response.RESTEnvelope{
			Status:  status.UNPROCESSABLE_ENTITY,
			Message: err.Error(),
		})

		return
	}

	if err := handler.validate(ctx, req); err != nil {
		response.JSON(w, http.StatusBadRequest, response.RESTEnvelope{
			Status:  status.BAD_REQUEST,
			Message: err.Error(),
		})

		return
	}

	resp, err := handler.CheckoutUseCase.CreateTransaction(ctx, req)
	if err != nil {
		ae := errors.Destruct(err)
		response.JSON(w, ae.HTTPStatusCode, response.RESTEnvelope{
			Status:  ae.Status,
			Message: ae.Message,
		})

		return
	}

	response.JSON(w, http.StatusCreated, response.RESTEnvelope{
		Status:  status.CREATED,
		Message: "checkout transaction has been successfully created",
		Data:    resp,
		Meta:    nil,
	})
}
