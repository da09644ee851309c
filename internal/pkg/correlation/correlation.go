// Package correlation encodes and decodes the composite token that links a
// payment gateway transaction back to a ticketing order and its event. The
// token travels to the gateway inside the checkout request's merchant
// reference field and comes back verbatim on the payment webhook.
package correlation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrMalformedToken = errors.New("correlation: token must be in orderId:eventId format")
	ErrInvalidEventID = errors.New("correlation: event id is not a valid UUID")
)

type Identity struct {
	OrderID string
	EventID string
}

// Encode joins the order id and event id into a correlation token. The order
// id always comes first; Decode depends on this position.
func Encode(orderID, eventID string) string {
	return fmt.Sprintf("%s:%s", orderID, eventID)
}

// Decode splits token on the first colon. Both halves must be non-empty and
// the event id must be a canonical RFC 4122 UUID, otherwise decoding fails
// closed.
func Decode(token string) (Identity, error) {
	orderID, eventID, found := strings.Cut(token, ":")
	if !found || orderID == "" || eventID == "" {
		return Identity{}, ErrMalformedToken
	}

	if !IsUUID(eventID) {
		return Identity{}, ErrInvalidEventID
	}

	return Identity{OrderID: orderID, EventID: eventID}, nil
}

// IsUUID reports whether id is a canonical 8-4-4-4-12 UUID of versions 1
// through 5 with an RFC 4122 variant. uuid.Parse also accepts braced, urn
// prefixed and unhyphenated forms, so the length is checked explicitly.
func IsUUID(id string) bool {
	if len(id) != 36 {
		return false
	}

	u, err := uuid.Parse(id)
	if err != nil {
		return false
	}

	if u.Variant() != uuid.RFC4122 {
		return false
	}

	version := u.Version()

	return version >= 1 && version <= 5
}
