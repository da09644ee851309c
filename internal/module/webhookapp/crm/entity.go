package crm

const (
	INVALID_RECIPIENT       string = "INVALID_RECIPIENT"
	CONTACT_CREATION_FAILED string = "CONTACT_CREATION_FAILED"
	DISPATCH_FAILED         string = "DISPATCH_FAILED"
)

const emailTagWork = "WORK"

type Name struct {
	First string `json:"first"`
	Last  string `json:"last"`
}

type EmailAddress struct {
	Email   string `json:"email"`
	Tag     string `json:"tag"`
	Primary bool   `json:"primary"`
}

type ContactInfo struct {
	Name   Name           `json:"name"`
	Emails []EmailAddress `json:"emails"`
}

type CreateContactRequest struct {
	Info            ContactInfo `json:"info"`
	AllowDuplicates bool        `json:"allowDuplicates"`
}

type CreateContactResponse struct {
	Contact struct {
		ID string `json:"id"`
	} `json:"contact"`
}

type emailContactRequest struct {
	TemplateID string            `json:"templateId"`
	ContactID  string            `json:"contactId"`
	Variables  map[string]string `json:"variables"`
}
