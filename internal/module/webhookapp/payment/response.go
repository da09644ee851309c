package payment

// TransactionSummary echoes the identifiers of a processed transaction back
// to the gateway.
type TransactionSummary struct {
	OrderCode     string  `json:"orderCode"`
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
	CurrencyCode  string  `json:"currencyCode"`
	MerchantID    string  `json:"merchantId"`
	OrderID       string  `json:"orderId"`
	EventID       string  `json:"eventId"`
}

// TransactionPaymentCreatedResponse is the webhook response body. Its shape
// is part of the contract with the payment gateway and deliberately does not
// use the generic REST envelope.
type TransactionPaymentCreatedResponse struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Data    *TransactionSummary `json:"data,omitempty"`
}

type WebhookVerificationKeyResponse struct {
	Key string `json:"Key"`
}

type WebhookErrorResponse struct {
	Error string `json:"error"`
}
