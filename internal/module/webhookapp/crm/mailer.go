package crm

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/live-ls/ls-fulfillment/pkg/errors"
)

const (
	variableDownloadURL = "DOWNLOAD_URL"
	variableSiteURL     = "SITE_URL"
)

var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// TicketMailer dispatches the fulfillment notification: it creates or updates
// a contact for the purchaser and sends the ticket template email carrying the
// artifact download url. Duplicate contacts are allowed by design.
type TicketMailer interface {
	SendTicketEmail(ctx context.Context, name string, email string, downloadURL string) error
}

type ticketMailer struct {
	logger        *logrus.Logger
	templateID    string
	siteURL       string
	crmRepository CRMRepository
}

func NewTicketMailer(logger *logrus.Logger, templateID string, siteURL string, crmRepository CRMRepository) TicketMailer {
	return &ticketMailer{
		logger:        logger,
		templateID:    templateID,
		siteURL:       siteURL,
		crmRepository: crmRepository,
	}
}

// SendTicketEmail implements TicketMailer.
func (m *ticketMailer) SendTicketEmail(ctx context.Context, name string, email string, downloadURL string) error {
	if name == "" || email == "" {
		return errors.New(http.StatusBadRequest, INVALID_RECIPIENT, "recipient name and email are required")
	}

	if !emailShape.MatchString(email) {
		return errors.New(http.StatusBadRequest, INVALID_RECIPIENT, "recipient email format is invalid")
	}

	parts := strings.Fields(name)
	if len(parts) == 0 {
		return errors.New(http.StatusBadRequest, INVALID_RECIPIENT, "recipient name and email are required")
	}

	firstName := parts[0]
	lastName := strings.Join(parts[1:], " ")

	createResp, err := m.crmRepository.CreateContact(ctx, CreateContactRequest{
		Info: ContactInfo{
			Name: Name{First: firstName, Last: lastName},
			Emails: []EmailAddress{
				{Email: email, Tag: emailTagWork, Primary: true},
			},
		},
		AllowDuplicates: true,
	})
	if err != nil {
		return err
	}

	if createResp.Contact.ID == "" {
		return errors.New(http.StatusBadGateway, CONTACT_CREATION_FAILED, "crm service returned no contact id")
	}

	variables := map[string]string{
		variableDownloadURL: downloadURL,
		variableSiteURL:     m.siteURL,
	}

	if err := m.crmRepository.EmailContact(ctx, m.templateID, createResp.Contact.ID, variables); err != nil {
		return err
	}

	return nil
}
