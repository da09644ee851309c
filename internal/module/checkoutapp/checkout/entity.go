package checkout

const (
	NO_VALID_ITEMS   string = "NO_VALID_ITEMS"
	NO_VALID_TICKETS string = "NO_VALID_TICKETS"
	MULTIPLE_EVENTS  string = "MULTIPLE_EVENTS"
	INVALID_AMOUNT   string = "INVALID_AMOUNT"
)

const (
	defaultDescription = "Order Payment"
	defaultEmail       = "customer@example.com"
	defaultCountryCode = "pt"
	defaultRequestLang = "en-US"
)

// Ticket is a sellable ticket row, looked up to establish which event a cart
// belongs to.
type Ticket struct {
	ID      string
	EventID string
	Name    string
}
