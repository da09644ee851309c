package viva

const VIVA_UNAVAILABLE string = "VIVA_UNAVAILABLE"

type Customer struct {
	Email       string `json:"email"`
	CountryCode string `json:"countryCode"`
	RequestLang string `json:"requestLang"`
}

// CheckoutOrderRequest creates a smart checkout payment order. Amount is in
// cents. MerchantTrns carries the orderId:eventId correlation token, which the
// gateway echoes back verbatim on the payment webhook.
type CheckoutOrderRequest struct {
	Amount       int64    `json:"amount"`
	CustomerTrns string   `json:"customerTrns"`
	Customer     Customer `json:"customer"`
	SourceCode   string   `json:"sourceCode"`
	MerchantTrns string   `json:"merchantTrns"`
}

type CheckoutOrderResponse struct {
	OrderCode int64 `json:"orderCode"`
}

type WebhookVerificationKey struct {
	Key string `json:"Key"`
}
