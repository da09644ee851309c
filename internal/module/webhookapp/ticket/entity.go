package ticket

const (
	UnknownTicketName = "Unknown"
	UnknownPrice      = "N/A"
)

// Price is the nested price object returned by the order service.
type Price struct {
	Currency string `json:"currency"`
	Amount   string `json:"amount"`
}

// RawTicket is a ticket as the order service returns it, both from order
// confirmation and from order retrieval.
type RawTicket struct {
	TicketNumber string `json:"ticketNumber"`
	Name         string `json:"name"`
	Price        *Price `json:"price"`
	TicketPdfURL string `json:"ticketPdfUrl"`
}

// Artifact is the normalized downloadable ticket document handed to the
// notification stage and echoed in fulfillment events.
type Artifact struct {
	ID             string `json:"id"`
	DisplayName    string `json:"display_name"`
	FormattedPrice string `json:"formatted_price"`
	ArtifactURL    string `json:"artifact_url"`
}
