package payment

// TransactionPaymentCreatedTypeID is the viva event type for a completed
// transaction payment.
const TransactionPaymentCreatedTypeID int64 = 1796

// transactionStatusSuccessful is the single-character status a successful
// transaction carries.
const transactionStatusSuccessful = "F"

const fallbackCustomerName = "Customer New"

// Outcome codes returned to the payment gateway. Validation codes are fatal
// and produce an HTTP 400; correlation codes are acknowledged with HTTP 200 so
// the gateway does not retry an unrecoverable delivery.
const (
	SUCCESS                    string = "SUCCESS"
	ACKNOWLEDGED               string = "ACKNOWLEDGED"
	INVALID_EVENT_TYPE         string = "INVALID_EVENT_TYPE"
	MISSING_FIELDS             string = "MISSING_FIELDS"
	TRANSACTION_NOT_SUCCESSFUL string = "TRANSACTION_NOT_SUCCESSFUL"
	INVALID_AMOUNT             string = "INVALID_AMOUNT"
	INVALID_MERCHANT_TRNS      string = "INVALID_MERCHANT_TRNS"
	INVALID_EVENT_ID           string = "INVALID_EVENT_ID"
)

// StageOutcome records whether an individual pipeline stage ran and how it
// ended. Stages fail independently; one stage's failure does not invalidate
// another's success.
type StageOutcome struct {
	Attempted bool   `json:"attempted"`
	Succeeded bool   `json:"succeeded"`
	Error     string `json:"error,omitempty"`
}

// PipelineOutcome is the end-to-end result of one webhook delivery. It is
// owned by the pipeline processing that delivery and never shared across
// requests.
type PipelineOutcome struct {
	Code             string       `json:"code"`
	OrderID          string       `json:"order_id"`
	EventID          string       `json:"event_id"`
	OrderConfirmed   StageOutcome `json:"order_confirmed"`
	TicketsRetrieved StageOutcome `json:"tickets_retrieved"`
	NotificationSent StageOutcome `json:"notification_sent"`
}
