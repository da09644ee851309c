package ticket

import "fmt"

// Normalize maps every raw ticket onto an Artifact. Entries are never
// dropped; missing fields get their documented defaults instead.
func Normalize(raw []RawTicket) []Artifact {
	artifacts := make([]Artifact, len(raw))
	for k, t := range raw {
		artifacts[k] = NormalizeOne(t)
	}

	return artifacts
}

func NormalizeOne(t RawTicket) Artifact {
	artifact := Artifact{
		ID:             t.TicketNumber,
		DisplayName:    t.Name,
		FormattedPrice: UnknownPrice,
		ArtifactURL:    t.TicketPdfURL,
	}

	if artifact.DisplayName == "" {
		artifact.DisplayName = UnknownTicketName
	}

	if t.Price != nil && t.Price.Currency != "" && t.Price.Amount != "" {
		artifact.FormattedPrice = fmt.Sprintf("%s %s", t.Price.Currency, t.Price.Amount)
	}

	return artifact
}
